package services

import (
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// parseDate accepts a calendar date, tolerating a full RFC 3339 timestamp by
// truncating it to its date.
func parseDate(value string) (datatypes.Date, bool) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return datatypes.Date{}, false
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return datatypes.Date(t), true
}

func formatDate(date datatypes.Date) string {
	return time.Time(date).Format(dateLayout)
}

func formatDatePtr(date *datatypes.Date) *string {
	if date == nil {
		return nil
	}
	formatted := formatDate(*date)
	return &formatted
}

func dateBefore(a, b datatypes.Date) bool {
	return time.Time(a).Before(time.Time(b))
}
