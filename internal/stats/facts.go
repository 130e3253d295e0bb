package stats

import (
	"fmt"

	"wordletracker/internal/models"
)

// Fact is one curated highlight. Each fact rule is independent: an unmet
// precondition omits the fact, never fails the computation.
type Fact struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Username string `json:"username"`
	Detail   string `json:"detail"`
}

// Thresholds for the individual fact rules.
const (
	improvedMinKnownDays  = 14
	improvedMinPerWindow  = 2
	consistentMinGames    = 5
	comebackMinCount      = 3
	precisionMinCount     = 3
	weekendMinResults     = 5
	milestoneMinResults   = 100
	activeStreakMinLength = 5
)

// ComputeFacts derives the achievement list for one period. rows must be
// ordered by day then username and stats must come from Compute over the
// same rows. knownDays is the period's day count from the day table; a day
// recorded with no results counts as known even though no row carries it.
// allTime enables the week-over-week improvement comparison.
// weekendOffsets holds the day-number mod 7 values treated as weekend.
func ComputeFacts(rows []models.ResultRow, stats map[string]UserStats, knownDays int, allTime bool, weekendOffsets map[int]bool) []Fact {
	var facts []Fact

	usernames := sortedUsernames(stats)

	if f := oneGuessFact(rows); f != nil {
		facts = append(facts, *f)
	}
	if allTime {
		if f := mostImprovedFact(rows, usernames, knownDays); f != nil {
			facts = append(facts, *f)
		}
	}
	if f := mostConsistentFact(stats, usernames); f != nil {
		facts = append(facts, *f)
	}
	if f := scoreCountFact(rows, usernames, map[int]bool{5: true, 6: true}, comebackMinCount,
		"comeback", "Comeback Player", "%d wins on the fifth or sixth guess"); f != nil {
		facts = append(facts, *f)
	}
	if f := scoreCountFact(rows, usernames, map[int]bool{2: true, 3: true}, precisionMinCount,
		"precision", "Precision Scorer", "%d results in two or three guesses"); f != nil {
		facts = append(facts, *f)
	}
	if f := weekendFact(rows, usernames, weekendOffsets); f != nil {
		facts = append(facts, *f)
	}
	if f := milestoneFact(stats, usernames); f != nil {
		facts = append(facts, *f)
	}
	if f := activeStreakFact(stats, usernames); f != nil {
		facts = append(facts, *f)
	}

	return facts
}

// oneGuessFact highlights the first user in day order to solve in one guess.
func oneGuessFact(rows []models.ResultRow) *Fact {
	for _, row := range rows {
		if row.Score == "1" {
			return &Fact{
				Kind:     "one_guess",
				Title:    "One-Guess Wonder",
				Username: row.Username,
				Detail:   fmt.Sprintf("solved day %d on the first guess", row.Day),
			}
		}
	}
	return nil
}

// mostImprovedFact compares each user's mean score over the most recent
// seven day numbers against the seven before that. Lower is better, so a
// positive (previous - recent) difference is an improvement.
func mostImprovedFact(rows []models.ResultRow, usernames []string, knownDays int) *Fact {
	if knownDays < improvedMinKnownDays {
		return nil
	}

	maxDay := 0
	for _, row := range rows {
		if row.Day > maxDay {
			maxDay = row.Day
		}
	}

	type windows struct {
		recentSum, recentN     int
		previousSum, previousN int
	}
	byUser := make(map[string]*windows)
	for _, row := range rows {
		w := byUser[row.Username]
		if w == nil {
			w = &windows{}
			byUser[row.Username] = w
		}
		switch {
		case row.Day >= maxDay-6:
			w.recentSum += row.Score.Numeric()
			w.recentN++
		case row.Day >= maxDay-13:
			w.previousSum += row.Score.Numeric()
			w.previousN++
		}
	}

	var best *Fact
	bestDelta := 0.0
	for _, username := range usernames {
		w := byUser[username]
		if w == nil || w.recentN < improvedMinPerWindow || w.previousN < improvedMinPerWindow {
			continue
		}
		recent := float64(w.recentSum) / float64(w.recentN)
		previous := float64(w.previousSum) / float64(w.previousN)
		delta := previous - recent
		if delta > bestDelta {
			bestDelta = delta
			best = &Fact{
				Kind:     "most_improved",
				Title:    "Most Improved",
				Username: username,
				Detail:   fmt.Sprintf("average score down %.2f this week", delta),
			}
		}
	}
	return best
}

func mostConsistentFact(stats map[string]UserStats, usernames []string) *Fact {
	var best *Fact
	bestVariance := 0.0
	for _, username := range usernames {
		s := stats[username]
		if s.GamesPlayed < consistentMinGames {
			continue
		}
		if best == nil || s.ScoreVariance < bestVariance {
			bestVariance = s.ScoreVariance
			best = &Fact{
				Kind:     "most_consistent",
				Title:    "Most Consistent",
				Username: username,
				Detail:   fmt.Sprintf("score variance of %.2f over %d games", s.ScoreVariance, s.GamesPlayed),
			}
		}
	}
	return best
}

// scoreCountFact covers the comeback and precision rules: count results
// whose numeric score falls in qualifying, highlight the user with the most
// provided they reach minCount.
func scoreCountFact(rows []models.ResultRow, usernames []string, qualifying map[int]bool, minCount int, kind, title, detailFormat string) *Fact {
	counts := make(map[string]int)
	for _, row := range rows {
		if qualifying[row.Score.Numeric()] {
			counts[row.Username]++
		}
	}

	var best *Fact
	bestCount := 0
	for _, username := range usernames {
		count := counts[username]
		if count < minCount || count <= bestCount {
			continue
		}
		bestCount = count
		best = &Fact{
			Kind:     kind,
			Title:    title,
			Username: username,
			Detail:   fmt.Sprintf(detailFormat, count),
		}
	}
	return best
}

// weekendFact finds the best mean score on weekend day numbers, where
// "weekend" is any day whose value mod 7 appears in offsets.
func weekendFact(rows []models.ResultRow, usernames []string, offsets map[int]bool) *Fact {
	type tally struct {
		sum, n int
	}
	byUser := make(map[string]*tally)
	for _, row := range rows {
		if !offsets[row.Day%7] {
			continue
		}
		t := byUser[row.Username]
		if t == nil {
			t = &tally{}
			byUser[row.Username] = t
		}
		t.sum += row.Score.Numeric()
		t.n++
	}

	var best *Fact
	bestMean := 0.0
	for _, username := range usernames {
		t := byUser[username]
		if t == nil || t.n < weekendMinResults {
			continue
		}
		m := float64(t.sum) / float64(t.n)
		if best == nil || m < bestMean {
			bestMean = m
			best = &Fact{
				Kind:     "weekend_specialist",
				Title:    "Weekend Specialist",
				Username: username,
				Detail:   fmt.Sprintf("averages %.2f across %d weekend games", m, t.n),
			}
		}
	}
	return best
}

func milestoneFact(stats map[string]UserStats, usernames []string) *Fact {
	var best *Fact
	bestGames := 0
	for _, username := range usernames {
		s := stats[username]
		if s.GamesPlayed < milestoneMinResults || s.GamesPlayed <= bestGames {
			continue
		}
		bestGames = s.GamesPlayed
		best = &Fact{
			Kind:     "milestone",
			Title:    "Century Club",
			Username: username,
			Detail:   fmt.Sprintf("%d games recorded", s.GamesPlayed),
		}
	}
	return best
}

func activeStreakFact(stats map[string]UserStats, usernames []string) *Fact {
	var best *Fact
	bestStreak := 0
	for _, username := range usernames {
		s := stats[username]
		if s.LongestStreak < activeStreakMinLength || s.LongestStreak <= bestStreak {
			continue
		}
		bestStreak = s.LongestStreak
		best = &Fact{
			Kind:     "active_streak",
			Title:    "Streak Machine",
			Username: username,
			Detail:   fmt.Sprintf("%d consecutive days played", s.LongestStreak),
		}
	}
	return best
}
