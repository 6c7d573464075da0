package todo

import "time"

// DateLayout is the ISO calendar date format used for created_at and due.
const DateLayout = "2006-01-02"

// IsValidDate reports whether text is a real YYYY-MM-DD calendar date.
// Month and day must be two digits; February 29 is accepted only in leap
// years. Year 0000 is rejected.
func IsValidDate(text string) bool {
	if len(text) != len(DateLayout) {
		return false
	}
	t, err := time.Parse(DateLayout, text)
	return err == nil && t.Year() >= 1
}

// Today formats now as a YYYY-MM-DD date in its own location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
