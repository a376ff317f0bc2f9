package workmode

// Mode is the company-wide attendance policy. It is set per company,
// changes rarely, and the layout fetches it once per session.
type Mode string

const (
	FixedHours    Mode = "FIXED_HOURS"
	FlexibleShift Mode = "FLEXIBLE_SHIFT"
)

// Default applies to companies created before the mode column existed.
const Default = FixedHours

func Parse(value string) (Mode, bool) {
	switch Mode(value) {
	case FixedHours:
		return FixedHours, true
	case FlexibleShift:
		return FlexibleShift, true
	}
	return Default, false
}
