package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordletracker/internal/models"
)

func row(day int, username string, score models.Score) models.ResultRow {
	return models.ResultRow{Day: day, Username: username, Score: score}
}

func rowsForDays(username string, days []int, score models.Score) []models.ResultRow {
	var rows []models.ResultRow
	for _, day := range days {
		rows = append(rows, row(day, username, score))
	}
	return rows
}

func TestComputeAverageScore(t *testing.T) {
	rows := []models.ResultRow{
		row(1, "alice", "2"),
		row(2, "alice", "4"),
	}

	result := Compute(rows, 2)
	require.Contains(t, result, "alice")
	assert.Equal(t, 3.0, result["alice"].AverageScore)
	assert.Equal(t, 2, result["alice"].GamesPlayed)
}

func TestComputeSampleVariance(t *testing.T) {
	rows := []models.ResultRow{
		row(1, "alice", "2"),
		row(2, "alice", "4"),
		row(3, "alice", "6"),
	}

	result := Compute(rows, 3)
	// mean 4, squared deviations sum to 8, n-1 denominator gives 4.0
	assert.Equal(t, 4.0, result["alice"].ScoreVariance)
}

func TestComputeVarianceSingleSample(t *testing.T) {
	result := Compute([]models.ResultRow{row(1, "alice", "3")}, 1)
	assert.Equal(t, 0.0, result["alice"].ScoreVariance)
}

func TestComputeFailedScoreMapsToSeven(t *testing.T) {
	rows := []models.ResultRow{
		row(1, "eve", "X"),
		row(2, "eve", "1"),
	}

	result := Compute(rows, 2)
	assert.Equal(t, []int{7, 1}, result["eve"].NumericScores)
	assert.Equal(t, 4.0, result["eve"].AverageScore)
}

func TestComputeLongestStreak(t *testing.T) {
	rows := rowsForDays("alice", []int{1, 2, 3, 5, 6, 7, 8}, "3")

	result := Compute(rows, 8)
	assert.Equal(t, 4, result["alice"].LongestStreak)
}

func TestComputeConsistencyScore(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want float64
	}{
		{"no gaps", []int{1, 2, 3}, 1.0},
		{"single data point", []int{4}, 1.0},
		{"one gap of four", []int{1, 5}, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(rowsForDays("alice", tt.days, "3"), len(tt.days))
			assert.Equal(t, tt.want, result["alice"].ConsistencyScore)
		})
	}
}

func TestComputeParticipationRate(t *testing.T) {
	rows := []models.ResultRow{
		row(1, "alice", "3"),
		row(1, "bob", "4"),
		row(2, "alice", "2"),
		row(3, "alice", "5"),
		row(4, "alice", "3"),
	}

	result := Compute(rows, 4)
	assert.Equal(t, 1.0, result["alice"].ParticipationRate)
	assert.Equal(t, 0.25, result["bob"].ParticipationRate)
}

func TestComputeTrailingWeekDenominatorIsFixed(t *testing.T) {
	// Only three days have data, but the trailing-7 denominator stays 7.
	rows := rowsForDays("alice", []int{94, 96, 100}, "3")

	result := Compute(rows, 7)
	assert.InDelta(t, 3.0/7.0, result["alice"].ParticipationRate, 1e-9)
}

func TestComputeCountsWins(t *testing.T) {
	rows := []models.ResultRow{
		{Day: 1, Username: "alice", Score: "1", IsWinner: true},
		{Day: 2, Username: "alice", Score: "4", IsWinner: false},
	}

	result := Compute(rows, 2)
	assert.Equal(t, 1, result["alice"].Wins)
}

func TestComputeEmptyInput(t *testing.T) {
	result := Compute(nil, 0)
	assert.Empty(t, result)
}
