package i18n

import (
	"fmt"
	"time"
)

var vietnameseWeekdays = [7]string{
	"Chủ Nhật", "Thứ Hai", "Thứ Ba", "Thứ Tư", "Thứ Năm", "Thứ Sáu", "Thứ Bảy",
}

var japaneseWeekdays = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// FormatDateWithWeekday renders a yyyy-MM-dd date in the locale's
// "date with day-of-week" convention.
func FormatDateWithWeekday(value string, locale Locale) (string, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "", err
	}
	switch locale {
	case LocaleVI:
		return fmt.Sprintf("%s, %s", vietnameseWeekdays[parsed.Weekday()], parsed.Format("02/01/2006")), nil
	case LocaleJA:
		return fmt.Sprintf("%s（%s）", parsed.Format("2006年1月2日"), japaneseWeekdays[parsed.Weekday()]), nil
	default:
		return parsed.Format("Mon, Jan 2, 2006"), nil
	}
}
