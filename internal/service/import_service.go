package service

import (
	"wordletracker/internal/cache"
	"wordletracker/internal/models"
	"wordletracker/internal/parser"
	"wordletracker/internal/repository"
)

// ImportService owns every write path into the result store. Each mutation
// purges the stats cache so reads never serve pre-import numbers past the
// cache TTL.
type ImportService struct {
	streakRepo *repository.StreakRepository
	resultRepo *repository.ResultRepository
	statsCache *cache.StatsCache
}

// NewImportService creates a new import service
func NewImportService(streakRepo *repository.StreakRepository, resultRepo *repository.ResultRepository, statsCache *cache.StatsCache) *ImportService {
	return &ImportService{
		streakRepo: streakRepo,
		resultRepo: resultRepo,
		statsCache: statsCache,
	}
}

// ImportMessage parses one streak message and stores its results
// atomically. A parse failure leaves the store untouched.
func (s *ImportService) ImportMessage(text string) (*models.ImportSummary, error) {
	parsed, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}

	summary, err := s.resultRepo.ImportDay(parsed.Day, parsed.Results)
	if err != nil {
		return nil, err
	}

	s.statsCache.Purge()
	return summary, nil
}

// BatchOutcome reports one message's fate inside a batch import
type BatchOutcome struct {
	Index   int                   `json:"index"`
	Summary *models.ImportSummary `json:"summary,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// ImportBatch imports several messages independently. A message that fails
// to parse or store is reported in its outcome and does not stop the rest.
func (s *ImportService) ImportBatch(messages []string) []BatchOutcome {
	outcomes := make([]BatchOutcome, 0, len(messages))
	for i, text := range messages {
		outcome := BatchOutcome{Index: i}
		summary, err := s.ImportMessage(text)
		if err != nil {
			outcome.Error = err.Error()
		} else {
			outcome.Summary = summary
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// DeleteDay removes one day and all of its results
func (s *ImportService) DeleteDay(day int) error {
	if err := s.streakRepo.DeleteDay(day); err != nil {
		return err
	}
	s.statsCache.Purge()
	return nil
}

// Reset wipes the entire store
func (s *ImportService) Reset() error {
	if err := s.streakRepo.Reset(); err != nil {
		return err
	}
	s.statsCache.Purge()
	return nil
}
