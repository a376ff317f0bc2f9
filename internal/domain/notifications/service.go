package notifications

import (
	"time"

	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
)

// Rendered is the user-facing projection of a stored notification: the
// code resolved to a localized message plus a coarse relative timestamp.
type Rendered struct {
	ID        string         `json:"id"`
	Code      string         `json:"code"`
	Params    map[string]any `json:"params,omitempty"`
	Message   string         `json:"message"`
	TimeAgo   string         `json:"timeAgo"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Render resolves a batch of notifications in the given locale. The raw
// code and params travel along so clients can re-render after a locale
// switch without another round trip.
func Render(items []Notification, t i18n.TranslateFunc, locale i18n.Locale, clock i18n.Clock) []Rendered {
	out := make([]Rendered, 0, len(items))
	for _, item := range items {
		out = append(out, Rendered{
			ID:        item.ID,
			Code:      item.Code,
			Params:    item.Params,
			Message:   i18n.TranslateNotification(item.Code, item.Params, t, locale),
			TimeAgo:   i18n.FormatNotificationTime(item.CreatedAt.Format(time.RFC3339), t, clock),
			Read:      item.ReadAt != nil,
			CreatedAt: item.CreatedAt,
		})
	}
	return out
}
