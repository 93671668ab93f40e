package domain

// Summary holds the analytics derived from one YearRecord.
type Summary struct {
	Completed     int `json:"completed"`
	Qaza          int `json:"qaza"`
	Pending       int `json:"pending"`
	Percent       int `json:"percent"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// Snapshot is what the render collaborator receives after every mutation
// or year shift.
type Snapshot struct {
	Year          int         `json:"year"`
	CurrentYear   int         `json:"current_year"`
	IsCurrentYear bool        `json:"is_current_year"`
	Today         HijriDate   `json:"today"`
	Days          []DayStatus `json:"days"`
	Summary       Summary     `json:"summary"`
	Animate       bool        `json:"animate"`
	ChangedIndex  *int        `json:"changed_index,omitempty"`
}

type RenderSink interface {
	// Refresh must not call back into the tracker.
	Refresh(snapshot Snapshot)
}
