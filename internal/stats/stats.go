// Package stats derives per-user statistics, rankings, and curated facts
// from stored results. All computations are pure functions over joined
// result rows; nothing in here touches the database.
package stats

import (
	"sort"

	"wordletracker/internal/models"
)

// UserStats is one user's derived record for a period.
type UserStats struct {
	Username          string         `json:"username"`
	GamesPlayed       int            `json:"games_played"`
	Scores            []models.Score `json:"scores"`
	NumericScores     []int          `json:"numeric_scores"`
	AverageScore      float64        `json:"average_score"`
	ScoreVariance     float64        `json:"score_variance"`
	DaysParticipated  int            `json:"days_participated"`
	ParticipationRate float64        `json:"participation_rate"`
	LongestStreak     int            `json:"longest_streak"`
	AverageGap        float64        `json:"average_gap"`
	ConsistencyScore  float64        `json:"consistency_score"`
	Wins              int            `json:"wins"`
}

// Compute folds joined result rows into one complete record per user.
// rows must be ordered by day then username, so each user's days arrive
// ascending. totalDays is the period's participation denominator.
func Compute(rows []models.ResultRow, totalDays int) map[string]UserStats {
	type accumulator struct {
		scores  []models.Score
		numeric []int
		days    []int
		wins    int
	}

	accs := make(map[string]*accumulator)
	for _, row := range rows {
		a := accs[row.Username]
		if a == nil {
			a = &accumulator{}
			accs[row.Username] = a
		}
		a.scores = append(a.scores, row.Score)
		a.numeric = append(a.numeric, row.Score.Numeric())
		a.days = append(a.days, row.Day)
		if row.IsWinner {
			a.wins++
		}
	}

	out := make(map[string]UserStats, len(accs))
	for username, a := range accs {
		avgGap := averageGap(a.days)
		s := UserStats{
			Username:         username,
			GamesPlayed:      len(a.numeric),
			Scores:           a.scores,
			NumericScores:    a.numeric,
			AverageScore:     mean(a.numeric),
			ScoreVariance:    sampleVariance(a.numeric),
			DaysParticipated: len(a.days),
			LongestStreak:    longestRun(a.days),
			AverageGap:       avgGap,
			ConsistencyScore: 1 / (1 + avgGap),
			Wins:             a.wins,
		}
		if totalDays > 0 {
			s.ParticipationRate = float64(s.DaysParticipated) / float64(totalDays)
		}
		out[username] = s
	}
	return out
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// sampleVariance uses the n-1 denominator. Fewer than two samples yields 0.
func sampleVariance(values []int) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := float64(v) - m
		sum += d * d
	}
	return sum / float64(len(values)-1)
}

// longestRun returns the length of the longest run of strictly consecutive
// integers in days, which must be sorted ascending.
func longestRun(days []int) int {
	if len(days) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i] == days[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// averageGap is the mean of (gap - 1) over every pair of consecutive
// participated days whose gap exceeds 1. Fully consecutive participation,
// or a single data point, yields 0.
func averageGap(days []int) float64 {
	var sum, count int
	for i := 1; i < len(days); i++ {
		if gap := days[i] - days[i-1]; gap > 1 {
			sum += gap - 1
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// sortedUsernames returns the usernames of a stats map in ascending order,
// so every consumer iterates deterministically.
func sortedUsernames(stats map[string]UserStats) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
