package stats

import "sort"

// minGamesForRanking excludes users with too small a sample to rank fairly.
const minGamesForRanking = 3

// Entry is one position in a ranking.
type Entry struct {
	Username string    `json:"username"`
	Stats    UserStats `json:"stats"`
}

// Rankings holds the five named orderings. Scores run from 1 (best) to 7
// (failed), so average score and variance rank ascending.
type Rankings struct {
	AverageScore      []Entry `json:"average_score"`
	Participation     []Entry `json:"participation"`
	ScoreConsistency  []Entry `json:"score_consistency"`
	StreakConsistency []Entry `json:"streak_consistency"`
	LongestStreak     []Entry `json:"longest_streak"`
}

// ComputeRankings sorts eligible users into each ordering. Ties break on
// username ascending, which the stable sort preserves from the base list.
func ComputeRankings(stats map[string]UserStats) *Rankings {
	var base []Entry
	for _, username := range sortedUsernames(stats) {
		s := stats[username]
		if s.GamesPlayed < minGamesForRanking {
			continue
		}
		base = append(base, Entry{Username: username, Stats: s})
	}

	return &Rankings{
		AverageScore: ranked(base, func(a, b Entry) bool {
			return a.Stats.AverageScore < b.Stats.AverageScore
		}),
		Participation: ranked(base, func(a, b Entry) bool {
			return a.Stats.DaysParticipated > b.Stats.DaysParticipated
		}),
		ScoreConsistency: ranked(base, func(a, b Entry) bool {
			return a.Stats.ScoreVariance < b.Stats.ScoreVariance
		}),
		StreakConsistency: ranked(base, func(a, b Entry) bool {
			return a.Stats.ConsistencyScore > b.Stats.ConsistencyScore
		}),
		LongestStreak: ranked(base, func(a, b Entry) bool {
			return a.Stats.LongestStreak > b.Stats.LongestStreak
		}),
	}
}

func ranked(base []Entry, less func(a, b Entry) bool) []Entry {
	out := make([]Entry, len(base))
	copy(out, base)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
