package domain

// HijriDate is a date in the tracked lunar calendar.
type HijriDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// FallbackHijriDate is used whenever the calendar provider fails.
var FallbackHijriDate = HijriDate{Year: 1447, Month: 9, Day: 1}

type CalendarProvider interface {
	// CurrentDate returns today's date in the Hijri calendar.
	CurrentDate() (HijriDate, error)
}
