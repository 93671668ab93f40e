// Package calendar provides Hijri calendar providers for the tracker.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

var ErrBeforeEpoch = errors.New("date precedes the Hijri epoch")

var _ domain.CalendarProvider = (*TabularCalendar)(nil)

const (
	// Julian day number of 1 Muharram 1 AH in the civil (Friday) epoch.
	civilEpochJDN = 1948440

	// Days in one 30-year cycle of the tabular calendar.
	cycleDays = 10631
)

// TabularCalendar computes the arithmetic (civil) Islamic calendar from the
// clock's local date. It may differ by a day from sighting-based calendars.
type TabularCalendar struct {
	Clock Clock
}

func NewTabularCalendar(clock Clock) *TabularCalendar {
	if clock == nil {
		clock = RealClock{}
	}
	return &TabularCalendar{Clock: clock}
}

func (c *TabularCalendar) CurrentDate() (domain.HijriDate, error) {
	return FromGregorian(c.Clock.Now())
}

// FromGregorian converts the civil date of t (in t's location).
func FromGregorian(t time.Time) (domain.HijriDate, error) {
	y, m, d := t.Date()
	jdn := julianDayNumber(y, int(m), d)
	if jdn < civilEpochJDN {
		return domain.HijriDate{}, fmt.Errorf("%w: %s", ErrBeforeEpoch, t.Format(time.DateOnly))
	}

	l := jdn - civilEpochJDN + cycleDays + 1
	n := (l - 1) / cycleDays
	l = l - cycleDays*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29

	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30

	return domain.HijriDate{Year: year, Month: month, Day: day}, nil
}

func julianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// FixedCalendar always reports the same date. Useful to pin the "current"
// year, e.g. when reviewing a past observance.
type FixedCalendar struct {
	Date domain.HijriDate
}

func (c FixedCalendar) CurrentDate() (domain.HijriDate, error) {
	return c.Date, nil
}
