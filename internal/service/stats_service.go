package service

import (
	"fmt"

	"wordletracker/internal/models"
	"wordletracker/internal/repository"
	"wordletracker/internal/stats"
)

// trailingWindowDays is the length of the "last week" period. Its
// participation denominator is fixed regardless of how many of those days
// actually have data.
const trailingWindowDays = 7

// StatsService computes statistics, rankings, facts, and plot series over
// the result store. All reads are pure functions of current store state.
type StatsService struct {
	streakRepo     *repository.StreakRepository
	resultRepo     *repository.ResultRepository
	weekendOffsets map[int]bool
}

// NewStatsService creates a new stats service. weekendOffsets holds the
// day-number mod 7 values treated as weekend days.
func NewStatsService(streakRepo *repository.StreakRepository, resultRepo *repository.ResultRepository, weekendOffsets []int) *StatsService {
	offsets := make(map[int]bool, len(weekendOffsets))
	for _, o := range weekendOffsets {
		offsets[o] = true
	}
	return &StatsService{
		streakRepo:     streakRepo,
		resultRepo:     resultRepo,
		weekendOffsets: offsets,
	}
}

// AllTimeStats computes per-user statistics over every stored day. The
// participation denominator is the count of known days.
func (s *StatsService) AllTimeStats() (map[string]stats.UserStats, error) {
	rows, err := s.resultRepo.AllRows()
	if err != nil {
		return nil, err
	}
	totalDays, err := s.streakRepo.CountDays()
	if err != nil {
		return nil, err
	}
	return stats.Compute(rows, totalDays), nil
}

// LastWeekStats computes per-user statistics over the trailing seven day
// numbers ending at the maximum known day.
func (s *StatsService) LastWeekStats() (map[string]stats.UserStats, error) {
	rows, err := s.lastWeekRows()
	if err != nil {
		return nil, err
	}
	return stats.Compute(rows, trailingWindowDays), nil
}

func (s *StatsService) lastWeekRows() ([]models.ResultRow, error) {
	maxDay, err := s.streakRepo.MaxDay()
	if err != nil {
		return nil, err
	}
	if maxDay == 0 {
		return nil, nil
	}
	return s.resultRepo.RowsInRange(maxDay-trailingWindowDays+1, maxDay)
}

// Rankings computes the named orderings over all-time statistics
func (s *StatsService) Rankings() (*stats.Rankings, error) {
	allTime, err := s.AllTimeStats()
	if err != nil {
		return nil, err
	}
	return stats.ComputeRankings(allTime), nil
}

// Days lists every imported day number in ascending order
func (s *StatsService) Days() ([]int, error) {
	return s.streakRepo.ListDays()
}

// DayDetail returns one day's full record, or models.ErrNotFound
func (s *StatsService) DayDetail(day int) (*models.DayDetail, error) {
	return s.streakRepo.DayDetail(day)
}

// Overview builds the whole-store summary with the ten most recent days
func (s *StatsService) Overview() (*models.Overview, error) {
	return s.streakRepo.Overview(10)
}

// FactsResponse pairs the all-time and trailing-week achievement lists
type FactsResponse struct {
	AllTime   []stats.Fact `json:"all_time"`
	Last7Days []stats.Fact `json:"last_7_days"`
}

// InterestingFacts derives both achievement lists. A non-nil startDay or
// endDay restricts the all-time list to that inclusive day range.
func (s *StatsService) InterestingFacts(startDay, endDay *int) (*FactsResponse, error) {
	var rows []models.ResultRow
	var err error
	switch {
	case startDay != nil || endDay != nil:
		start, end := 0, int(^uint(0)>>1)
		if startDay != nil {
			start = *startDay
		}
		if endDay != nil {
			end = *endDay
		}
		if start > end {
			return nil, fmt.Errorf("invalid day range: %d > %d", start, end)
		}
		rows, err = s.resultRepo.RowsInRange(start, end)
	default:
		rows, err = s.resultRepo.AllRows()
	}
	if err != nil {
		return nil, err
	}

	totalDays, err := s.streakRepo.CountDays()
	if err != nil {
		return nil, err
	}
	allTimeFacts := stats.ComputeFacts(rows, stats.Compute(rows, totalDays), totalDays, true, s.weekendOffsets)

	weekRows, err := s.lastWeekRows()
	if err != nil {
		return nil, err
	}
	weekFacts := stats.ComputeFacts(weekRows, stats.Compute(weekRows, trailingWindowDays), trailingWindowDays, false, s.weekendOffsets)

	return &FactsResponse{AllTime: allTimeFacts, Last7Days: weekFacts}, nil
}
