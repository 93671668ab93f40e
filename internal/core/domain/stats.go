package domain

type YearStats struct {
	Year    int     `json:"year"`
	Summary Summary `json:"summary"`
}
