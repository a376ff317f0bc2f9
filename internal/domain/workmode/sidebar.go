package workmode

type Item struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

type Group struct {
	Label string `json:"label"`
	Items []Item `json:"items"`
}

// hiddenURLs lists sidebar destinations that make no sense under a mode.
// An absent or empty list hides nothing at the item level.
var hiddenURLs = map[Mode][]string{
	FixedHours: {
		"/company/shifts/schedules",
		"/company/shifts/templates",
		"/company/shift-requests",
	},
	FlexibleShift: {},
}

// hiddenTabsByURL covers composite pages that host their own tab strip:
// the page itself stays reachable while some of its embedded tabs are
// suppressed for the mode.
var hiddenTabsByURL = map[Mode]map[string][]string{
	FixedHours: {
		"/company/shifts": {"schedules", "templates"},
	},
}

// IsURLHidden consults the item-level hidden list only; it does not look
// at hiddenTabsByURL.
func IsURLHidden(url string, mode Mode) bool {
	for _, hidden := range hiddenURLs[mode] {
		if hidden == url {
			return true
		}
	}
	return false
}

// FilterItems drops items whose URL is hidden under the mode, keeping the
// original order of the survivors.
func FilterItems(items []Item, mode Mode) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if !IsURLHidden(item.URL, mode) {
			out = append(out, item)
		}
	}
	return out
}

// FilterGroups filters every group's items and then drops groups left
// empty, so the sidebar never renders a heading with nothing under it.
func FilterGroups(groups []Group, mode Mode) []Group {
	out := make([]Group, 0, len(groups))
	for _, group := range groups {
		items := FilterItems(group.Items, mode)
		if len(items) == 0 {
			continue
		}
		out = append(out, Group{Label: group.Label, Items: items})
	}
	return out
}

// HiddenTabsForURL returns the embedded tab keys to suppress for the page
// at url under the mode, or an empty list when nothing is configured.
func HiddenTabsForURL(url string, mode Mode) []string {
	tabs := hiddenTabsByURL[mode][url]
	if len(tabs) == 0 {
		return []string{}
	}
	out := make([]string, len(tabs))
	copy(out, tabs)
	return out
}
