package models

// ScoreCounts is a user's score distribution: how many 1s, 2s, ... and Xs
// they have recorded.
type ScoreCounts map[Score]int

// UserOverview summarises one user's raw record for the overview page.
type UserOverview struct {
	Username    string      `json:"username"`
	GamesPlayed int         `json:"games_played"`
	Scores      ScoreCounts `json:"scores"`
	Wins        int         `json:"wins"`
}

// DaySummary is one day's participation count for the overview page.
type DaySummary struct {
	Day          int `json:"day"`
	Participants int `json:"participants"`
}

// Overview is the whole-database summary: totals, the day range, and
// per-user score distributions.
type Overview struct {
	TotalDays    int            `json:"total_days"`
	TotalUsers   int            `json:"total_users"`
	TotalResults int            `json:"total_results"`
	MinDay       int            `json:"min_day"`
	MaxDay       int            `json:"max_day"`
	MissingDays  int            `json:"missing_days"`
	Users        []UserOverview `json:"users"`
	RecentDays   []DaySummary   `json:"recent_days"`
}
