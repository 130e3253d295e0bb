package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"wordletracker/internal/database"
	"wordletracker/internal/models"
)

func setupTestDB(t *testing.T) (*database.DB, *UserRepository, *StreakRepository, *ResultRepository) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := NewUserRepository(db)
	streakRepo := NewStreakRepository(db)
	resultRepo := NewResultRepository(db, userRepo)
	return db, userRepo, streakRepo, resultRepo
}

func TestImportDayStoresResults(t *testing.T) {
	_, _, _, resultRepo := setupTestDB(t)

	summary, err := resultRepo.ImportDay(100, []models.ParsedResult{
		{Username: "alice", Score: "1", IsWinner: true},
		{Username: "bob", Score: "4"},
	})
	if err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}
	if summary.Day != 100 {
		t.Errorf("summary.Day = %d, want 100", summary.Day)
	}
	if summary.ResultsAdded != 2 {
		t.Errorf("summary.ResultsAdded = %d, want 2", summary.ResultsAdded)
	}

	rows, err := resultRepo.AllRows()
	if err != nil {
		t.Fatalf("AllRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Username != "alice" || !rows[0].IsWinner || rows[0].Score != "1" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
}

func TestImportDayOverwritesOnConflict(t *testing.T) {
	_, _, _, resultRepo := setupTestDB(t)

	if _, err := resultRepo.ImportDay(5, []models.ParsedResult{{Username: "a", Score: "3"}}); err != nil {
		t.Fatalf("first ImportDay() error = %v", err)
	}
	if _, err := resultRepo.ImportDay(5, []models.ParsedResult{{Username: "a", Score: "1"}}); err != nil {
		t.Fatalf("second ImportDay() error = %v", err)
	}

	rows, err := resultRepo.AllRows()
	if err != nil {
		t.Fatalf("AllRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows after re-import, want exactly 1", len(rows))
	}
	if rows[0].Score != "1" {
		t.Errorf("score = %q after re-import, want %q", rows[0].Score, "1")
	}
}

func TestImportDayHandlesDuplicateUserInOneMessage(t *testing.T) {
	_, _, _, resultRepo := setupTestDB(t)

	// Malformed input can list the same user under two score lines; the
	// last write for that user and day wins.
	summary, err := resultRepo.ImportDay(7, []models.ParsedResult{
		{Username: "a", Score: "2"},
		{Username: "a", Score: "5"},
	})
	if err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}
	if summary.ResultsAdded != 1 {
		t.Errorf("summary.ResultsAdded = %d, want 1 (duplicates collapse)", summary.ResultsAdded)
	}
	if len(summary.Users) != 1 || summary.Users[0] != "a" {
		t.Errorf("summary.Users = %v, want [a]", summary.Users)
	}

	rows, err := resultRepo.AllRows()
	if err != nil {
		t.Fatalf("AllRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Score != "5" {
		t.Errorf("score = %q, want %q (last write wins)", rows[0].Score, "5")
	}
}

func TestDeleteDayCascades(t *testing.T) {
	_, _, streakRepo, resultRepo := setupTestDB(t)

	if _, err := resultRepo.ImportDay(10, []models.ParsedResult{
		{Username: "a", Score: "3"},
		{Username: "b", Score: "4"},
	}); err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}
	if _, err := resultRepo.ImportDay(11, []models.ParsedResult{{Username: "a", Score: "2"}}); err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}

	if err := streakRepo.DeleteDay(10); err != nil {
		t.Fatalf("DeleteDay() error = %v", err)
	}

	rows, err := resultRepo.AllRows()
	if err != nil {
		t.Fatalf("AllRows() error = %v", err)
	}
	for _, row := range rows {
		if row.Day == 10 {
			t.Errorf("found stray result for deleted day: %+v", row)
		}
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows after cascade delete, want 1", len(rows))
	}

	if _, err := streakRepo.DayDetail(10); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("DayDetail(10) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteDayCascadesOnFreshConnection(t *testing.T) {
	db, _, streakRepo, resultRepo := setupTestDB(t)

	// Pin the connection that ran the migrations so the import and delete
	// below are served by other, freshly opened pool connections. Cascade
	// enforcement must hold on every connection, not just the first.
	ctx := context.Background()
	pinned, err := db.DB.Conn(ctx)
	if err != nil {
		t.Fatalf("Failed to pin connection: %v", err)
	}
	defer pinned.Close()

	if _, err := resultRepo.ImportDay(10, []models.ParsedResult{{Username: "a", Score: "3"}}); err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}
	if err := streakRepo.DeleteDay(10); err != nil {
		t.Fatalf("DeleteDay() error = %v", err)
	}

	rows, err := resultRepo.AllRows()
	if err != nil {
		t.Fatalf("AllRows() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("stray results remain after cascade delete: %+v", rows)
	}
}

func TestDeleteMissingDayReturnsNotFound(t *testing.T) {
	_, _, streakRepo, _ := setupTestDB(t)

	if err := streakRepo.DeleteDay(42); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("DeleteDay(42) error = %v, want ErrNotFound", err)
	}
}

func TestDayDetail(t *testing.T) {
	_, _, streakRepo, resultRepo := setupTestDB(t)

	if _, err := resultRepo.ImportDay(20, []models.ParsedResult{
		{Username: "bob", Score: "4"},
		{Username: "alice", Score: "2", IsWinner: true},
	}); err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}

	detail, err := streakRepo.DayDetail(20)
	if err != nil {
		t.Fatalf("DayDetail() error = %v", err)
	}
	if detail.Participants != 2 {
		t.Errorf("Participants = %d, want 2", detail.Participants)
	}
	// Results come back ordered by username
	if detail.Results[0].Username != "alice" || !detail.Results[0].IsWinner {
		t.Errorf("unexpected first result: %+v", detail.Results[0])
	}
}

func TestReset(t *testing.T) {
	_, userRepo, streakRepo, resultRepo := setupTestDB(t)

	if _, err := resultRepo.ImportDay(1, []models.ParsedResult{{Username: "a", Score: "3"}}); err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}

	if err := streakRepo.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if count, _ := resultRepo.Count(); count != 0 {
		t.Errorf("result count = %d after reset, want 0", count)
	}
	if count, _ := streakRepo.CountDays(); count != 0 {
		t.Errorf("day count = %d after reset, want 0", count)
	}
	if count, _ := userRepo.Count(); count != 0 {
		t.Errorf("user count = %d after reset, want 0", count)
	}
}

func TestMaxDayEmptyStore(t *testing.T) {
	_, _, streakRepo, _ := setupTestDB(t)

	maxDay, err := streakRepo.MaxDay()
	if err != nil {
		t.Fatalf("MaxDay() error = %v", err)
	}
	if maxDay != 0 {
		t.Errorf("MaxDay() = %d on empty store, want 0", maxDay)
	}
}

func TestOverview(t *testing.T) {
	_, _, streakRepo, resultRepo := setupTestDB(t)

	if _, err := resultRepo.ImportDay(1, []models.ParsedResult{
		{Username: "a", Score: "3"},
		{Username: "b", Score: "X"},
	}); err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}
	if _, err := resultRepo.ImportDay(3, []models.ParsedResult{{Username: "a", Score: "2"}}); err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}

	overview, err := streakRepo.Overview(10)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if overview.TotalDays != 2 || overview.TotalUsers != 2 || overview.TotalResults != 3 {
		t.Errorf("totals = (%d, %d, %d), want (2, 2, 3)",
			overview.TotalDays, overview.TotalUsers, overview.TotalResults)
	}
	if overview.MinDay != 1 || overview.MaxDay != 3 || overview.MissingDays != 1 {
		t.Errorf("range = (%d, %d, missing %d), want (1, 3, missing 1)",
			overview.MinDay, overview.MaxDay, overview.MissingDays)
	}
	if len(overview.Users) != 2 || overview.Users[0].Username != "a" {
		t.Fatalf("unexpected user overviews: %+v", overview.Users)
	}
	if overview.Users[0].Scores["2"] != 1 || overview.Users[0].Scores["3"] != 1 {
		t.Errorf("unexpected score counts for a: %+v", overview.Users[0].Scores)
	}
}
