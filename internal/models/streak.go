package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a query references a day or user that does not
// exist in the store.
var ErrNotFound = errors.New("not found")

// User represents one player, created implicitly the first time a parsed
// message mentions their name.
type User struct {
	ID        int64
	Username  string
	FirstSeen time.Time
}

// Streak represents one imported day of the group game.
type Streak struct {
	ID         int64
	Day        int
	ImportedAt time.Time
}

// Result is one user's recorded outcome for one day. At most one Result
// exists per (day, user) pair; re-imports overwrite.
type Result struct {
	ID        int64
	StreakDay int
	UserID    int64
	Score     Score
	IsWinner  bool
}

// ResultRow is a result joined with its username, as read back for the
// statistics engines. Rows are ordered by day, then username.
type ResultRow struct {
	Day      int
	Username string
	Score    Score
	IsWinner bool
}

// ParsedResult is one (username, score, winner) triple extracted from a
// streak message, before it touches the store.
type ParsedResult struct {
	Username string `json:"username"`
	Score    Score  `json:"score"`
	IsWinner bool   `json:"is_winner"`
}

// ParsedMessage is the structured form of one streak message.
type ParsedMessage struct {
	Day     int            `json:"day"`
	Results []ParsedResult `json:"results"`
}

// ImportSummary reports what a single message import touched.
type ImportSummary struct {
	Day          int      `json:"day"`
	ResultsAdded int      `json:"results_added"`
	Users        []string `json:"users"`
}

// DayDetail is the full record of one day: who played, what they scored, and
// who wore the crown.
type DayDetail struct {
	Day          int         `json:"day"`
	ImportedAt   time.Time   `json:"imported_at"`
	Participants int         `json:"participants"`
	Results      []DayResult `json:"results"`
}

// DayResult is one entry inside a DayDetail.
type DayResult struct {
	Username string `json:"username"`
	Score    Score  `json:"score"`
	IsWinner bool   `json:"is_winner"`
}
