package services

import (
	"math"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

func CompletedCount(record domain.YearRecord) int {
	return countStatus(record, domain.StatusCompleted)
}

func QazaCount(record domain.YearRecord) int {
	return countStatus(record, domain.StatusQaza)
}

func PendingCount(record domain.YearRecord) int {
	return countStatus(record, domain.StatusPending)
}

// CompletionPercent rounds half up, so 15 of 30 days is 50.
func CompletionPercent(record domain.YearRecord) int {
	ratio := float64(CompletedCount(record)) / float64(domain.DaysInMonth)
	return int(math.Floor(ratio*100 + 0.5))
}

// CurrentStreak counts consecutive Completed days ending at the last touched
// day. Trailing Pending days are days not reached yet and never break the
// streak; any Qaza or Pending day before that does.
func CurrentStreak(record domain.YearRecord) int {
	end := len(record) - 1
	for end >= 0 && record[end] == domain.StatusPending {
		end--
	}

	streak := 0
	for i := end; i >= 0; i-- {
		if record[i] != domain.StatusCompleted {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of consecutive Completed days anywhere in
// the record.
func LongestStreak(record domain.YearRecord) int {
	longest, run := 0, 0
	for _, status := range record {
		if status != domain.StatusCompleted {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

func Summarize(record domain.YearRecord) domain.Summary {
	return domain.Summary{
		Completed:     CompletedCount(record),
		Qaza:          QazaCount(record),
		Pending:       PendingCount(record),
		Percent:       CompletionPercent(record),
		CurrentStreak: CurrentStreak(record),
		LongestStreak: LongestStreak(record),
	}
}

func countStatus(record domain.YearRecord, want domain.DayStatus) int {
	n := 0
	for _, status := range record {
		if status == want {
			n++
		}
	}
	return n
}
