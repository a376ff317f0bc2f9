package workmode

// Rule decides whether a UI element is shown under a given work mode.
// The zero value (no rule configured) means always visible.
type Rule string

const (
	RuleAlways Rule = "always"
	RuleNever  Rule = "never"

	RuleFixedHoursOnly    = Rule(FixedHours)
	RuleFlexibleShiftOnly = Rule(FlexibleShift)
)

// tabRules is keyed by dotted path: "tabKey" or "tabKey.sectionKey".
// Keys not present here default to visible, so a new tab ships open
// everywhere until someone restricts it.
var tabRules = map[string]Rule{
	"shifts.schedules":       RuleFlexibleShiftOnly,
	"shifts.templates":       RuleFlexibleShiftOnly,
	"shifts.requests":        RuleFlexibleShiftOnly,
	"attendance.overtime":    RuleFixedHoursOnly,
	"settings.worktime":      RuleFixedHoursOnly,
	"settings.shiftPatterns": RuleFlexibleShiftOnly,
	"reports.legacyExport":   RuleNever,
}

// Visible evaluates a rule against the active mode. An empty rule is the
// absent-key case and is treated as always visible.
func Visible(rule Rule, mode Mode) bool {
	switch rule {
	case "", RuleAlways:
		return true
	case RuleNever:
		return false
	}
	return rule == Rule(mode)
}

// TabVisible looks the dotted key up in the static rule table.
func TabVisible(key string, mode Mode) bool {
	return Visible(tabRules[key], mode)
}

type Tab struct {
	Key string `json:"key"`
}

// VisibleTabs filters an ordered tab list against the rule table. The
// relative order of surviving tabs is preserved and filtering an already
// filtered list changes nothing.
func VisibleTabs(tabs []Tab, mode Mode) []Tab {
	out := make([]Tab, 0, len(tabs))
	for _, tab := range tabs {
		if TabVisible(tab.Key, mode) {
			out = append(out, tab)
		}
	}
	return out
}
