package workmode

// CompanyMenu is the full company-portal sidebar before mode filtering.
// Group labels and item titles are translation keys resolved client side.
var CompanyMenu = []Group{
	{
		Label: "menu.attendance",
		Items: []Item{
			{Title: "menu.timesheet", URL: "/company/timesheet", Icon: "clock"},
			{Title: "menu.attendanceRequests", URL: "/company/attendance-requests", Icon: "inbox"},
			{Title: "menu.shifts", URL: "/company/shifts", Icon: "calendar"},
			{Title: "menu.shiftRequests", URL: "/company/shift-requests", Icon: "swap"},
		},
	},
	{
		Label: "menu.scheduling",
		Items: []Item{
			{Title: "menu.shiftSchedules", URL: "/company/shifts/schedules", Icon: "grid"},
			{Title: "menu.shiftTemplates", URL: "/company/shifts/templates", Icon: "copy"},
		},
	},
	{
		Label: "menu.people",
		Items: []Item{
			{Title: "menu.employees", URL: "/company/employees", Icon: "users"},
			{Title: "menu.leave", URL: "/company/leave", Icon: "sun"},
		},
	},
	{
		Label: "menu.payroll",
		Items: []Item{
			{Title: "menu.payroll", URL: "/company/payroll", Icon: "banknote"},
			{Title: "menu.payslips", URL: "/company/payslips", Icon: "file"},
		},
	},
	{
		Label: "menu.company",
		Items: []Item{
			{Title: "menu.settings", URL: "/company/settings", Icon: "settings"},
			{Title: "menu.notifications", URL: "/company/notifications", Icon: "bell"},
		},
	},
}

// SidebarFor returns the mode-filtered company menu. Callers get a fresh
// slice; the static definition is never mutated.
func SidebarFor(mode Mode) []Group {
	return FilterGroups(CompanyMenu, mode)
}
