package service

import (
	"path/filepath"
	"testing"

	"wordletracker/internal/database"
	"wordletracker/internal/models"
	"wordletracker/internal/repository"
)

func setupStatsService(t *testing.T) (*StatsService, *repository.ResultRepository) {
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

	userRepo := repository.NewUserRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	resultRepo := repository.NewResultRepository(db, userRepo)
	return NewStatsService(streakRepo, resultRepo, []int{0, 1}), resultRepo
}

func TestPlotDataUsesNullMarkerForMissingDays(t *testing.T) {
	statsService, resultRepo := setupStatsService(t)

	if _, err := resultRepo.ImportDay(1, []models.ParsedResult{
		{Username: "alice", Score: "3"},
		{Username: "bob", Score: "4"},
	}); err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}
	if _, err := resultRepo.ImportDay(2, []models.ParsedResult{
		{Username: "alice", Score: "X"},
	}); err != nil {
		t.Fatalf("ImportDay() error = %v", err)
	}

	plot, err := statsService.PlotData()
	if err != nil {
		t.Fatalf("PlotData() error = %v", err)
	}

	if len(plot.Days) != 2 || plot.Days[0] != 1 || plot.Days[1] != 2 {
		t.Fatalf("Days = %v, want [1 2]", plot.Days)
	}
	if len(plot.Users) != 2 {
		t.Fatalf("got %d user series, want 2", len(plot.Users))
	}

	// Users come back alphabetically; every series carries a point for
	// every known day.
	alice, bob := plot.Users[0], plot.Users[1]
	if alice.Name != "alice" || bob.Name != "bob" {
		t.Fatalf("series order = [%s %s], want [alice bob]", alice.Name, bob.Name)
	}
	if len(bob.Data) != 2 {
		t.Fatalf("bob has %d points, want one per known day (2)", len(bob.Data))
	}

	// bob did not play day 2: the point exists at x=2 with an explicit
	// null marker, never an omission and never a zero.
	if bob.Data[1].X != 2 {
		t.Errorf("bob point x = %d, want 2", bob.Data[1].X)
	}
	if bob.Data[1].Y != nil {
		t.Errorf("bob y at day 2 = %d, want nil", *bob.Data[1].Y)
	}

	if alice.Data[1].Y == nil || *alice.Data[1].Y != 7 {
		t.Errorf("alice y at day 2 = %v, want 7", alice.Data[1].Y)
	}
	if alice.Color == "" || bob.Color == "" || alice.Color == bob.Color {
		t.Errorf("series colors = (%q, %q), want distinct non-empty", alice.Color, bob.Color)
	}
}

func TestLastWeekStatsWindowBounds(t *testing.T) {
	statsService, resultRepo := setupStatsService(t)

	// Max known day is 100, so the trailing window is days 94 through 100.
	// Day 93 sits just outside; day 1 is far outside.
	for _, day := range []int{1, 93, 94, 100} {
		if _, err := resultRepo.ImportDay(day, []models.ParsedResult{
			{Username: "alice", Score: "2"},
		}); err != nil {
			t.Fatalf("ImportDay(%d) error = %v", day, err)
		}
	}

	lastWeek, err := statsService.LastWeekStats()
	if err != nil {
		t.Fatalf("LastWeekStats() error = %v", err)
	}

	alice, ok := lastWeek["alice"]
	if !ok {
		t.Fatal("alice missing from last-week stats")
	}
	if alice.GamesPlayed != 2 {
		t.Errorf("GamesPlayed = %d, want 2 (days 94 and 100 only)", alice.GamesPlayed)
	}

	// Denominator stays fixed at 7 even though only two window days exist.
	if got, want := alice.ParticipationRate, 2.0/7.0; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("ParticipationRate = %v, want %v", got, want)
	}
}

func TestLastWeekStatsEmptyStore(t *testing.T) {
	statsService, _ := setupStatsService(t)

	lastWeek, err := statsService.LastWeekStats()
	if err != nil {
		t.Fatalf("LastWeekStats() error = %v", err)
	}
	if len(lastWeek) != 0 {
		t.Errorf("got %d users on empty store, want 0", len(lastWeek))
	}
}
