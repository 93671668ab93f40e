package domain

import "sort"

// YearRecord holds the status of every day of one year's observance.
// Index i is day i+1.
type YearRecord [DaysInMonth]DayStatus

// NewYearRecord returns an all-Pending record.
func NewYearRecord() *YearRecord {
	return &YearRecord{}
}

func ValidDayIndex(index int) bool {
	return index >= 0 && index < DaysInMonth
}

// History maps a Hijri year to its record. Records are created lazily.
type History map[int]*YearRecord

func NewHistory() History {
	return make(History)
}

// Years returns the known years in ascending order.
func (h History) Years() []int {
	years := make([]int, 0, len(h))
	for y := range h {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
