package repository

import (
	"database/sql"
	"fmt"
	"wordletracker/internal/database"
	"wordletracker/internal/models"
)

// StreakRepository handles database operations for imported days
type StreakRepository struct {
	db *database.DB
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(db *database.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// ListDays returns every imported day number in ascending order
func (r *StreakRepository) ListDays() ([]int, error) {
	rows, err := r.db.Query("SELECT day FROM streaks ORDER BY day")
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer rows.Close()

	var days []int
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// MaxDay returns the highest imported day number, or 0 when the store is
// empty.
func (r *StreakRepository) MaxDay() (int, error) {
	var day sql.NullInt64
	if err := r.db.QueryRow("SELECT MAX(day) FROM streaks").Scan(&day); err != nil {
		return 0, fmt.Errorf("failed to query max day: %w", err)
	}
	if !day.Valid {
		return 0, nil
	}
	return int(day.Int64), nil
}

// CountDays returns the number of imported days
func (r *StreakRepository) CountDays() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM streaks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count days: %w", err)
	}
	return count, nil
}

// DayDetail returns the full record of one day, or models.ErrNotFound when
// the day was never imported.
func (r *StreakRepository) DayDetail(day int) (*models.DayDetail, error) {
	detail := &models.DayDetail{Day: day}
	err := r.db.QueryRow("SELECT imported_at FROM streaks WHERE day = ?", day).
		Scan(&detail.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day: %w", err)
	}

	query := `
		SELECT u.username, r.score, r.is_winner
		FROM results r
		JOIN users u ON u.id = r.user_id
		WHERE r.streak_day = ?
		ORDER BY u.username
	`
	rows, err := r.db.Query(query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query day results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var res models.DayResult
		if err := rows.Scan(&res.Username, &res.Score, &res.IsWinner); err != nil {
			return nil, fmt.Errorf("failed to scan day result: %w", err)
		}
		detail.Results = append(detail.Results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	detail.Participants = len(detail.Results)
	return detail, nil
}

// DeleteDay removes one day and, through the foreign key cascade, all of its
// results. Returns models.ErrNotFound when the day does not exist.
func (r *StreakRepository) DeleteDay(day int) error {
	result, err := r.db.Exec("DELETE FROM streaks WHERE day = ?", day)
	if err != nil {
		return fmt.Errorf("failed to delete day: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Reset wipes all results, days, and users in one transaction
func (r *StreakRepository) Reset() error {
	return r.db.WithTx(func(tx *database.Tx) error {
		for _, stmt := range []string{
			"DELETE FROM results",
			"DELETE FROM streaks",
			"DELETE FROM users",
		} {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to reset: %w", err)
			}
		}
		return nil
	})
}

// Overview builds the whole-database summary: totals, the day range with its
// gap count, per-user score distributions, and recent participation.
func (r *StreakRepository) Overview(recentLimit int) (*models.Overview, error) {
	overview := &models.Overview{}

	var minDay, maxDay sql.NullInt64
	err := r.db.QueryRow("SELECT COUNT(*), MIN(day), MAX(day) FROM streaks").
		Scan(&overview.TotalDays, &minDay, &maxDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query day range: %w", err)
	}
	if minDay.Valid {
		overview.MinDay = int(minDay.Int64)
		overview.MaxDay = int(maxDay.Int64)
		overview.MissingDays = overview.MaxDay - overview.MinDay + 1 - overview.TotalDays
	}

	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&overview.TotalUsers); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := r.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&overview.TotalResults); err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}

	users, err := r.userOverviews()
	if err != nil {
		return nil, err
	}
	overview.Users = users

	recent, err := r.recentDays(recentLimit)
	if err != nil {
		return nil, err
	}
	overview.RecentDays = recent

	return overview, nil
}

func (r *StreakRepository) userOverviews() ([]models.UserOverview, error) {
	query := `
		SELECT u.username, r.score, r.is_winner
		FROM results r
		JOIN users u ON u.id = r.user_id
		ORDER BY u.username, r.streak_day
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user overviews: %w", err)
	}
	defer rows.Close()

	var users []models.UserOverview
	var current *models.UserOverview
	for rows.Next() {
		var username string
		var score models.Score
		var isWinner bool
		if err := rows.Scan(&username, &score, &isWinner); err != nil {
			return nil, fmt.Errorf("failed to scan user overview: %w", err)
		}
		if current == nil || current.Username != username {
			users = append(users, models.UserOverview{
				Username: username,
				Scores:   models.ScoreCounts{},
			})
			current = &users[len(users)-1]
		}
		current.GamesPlayed++
		current.Scores[score]++
		if isWinner {
			current.Wins++
		}
	}
	return users, rows.Err()
}

func (r *StreakRepository) recentDays(limit int) ([]models.DaySummary, error) {
	query := `
		SELECT s.day, COUNT(r.id)
		FROM streaks s
		LEFT JOIN results r ON r.streak_day = s.day
		GROUP BY s.day
		ORDER BY s.day DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent days: %w", err)
	}
	defer rows.Close()

	var days []models.DaySummary
	for rows.Next() {
		var d models.DaySummary
		if err := rows.Scan(&d.Day, &d.Participants); err != nil {
			return nil, fmt.Errorf("failed to scan recent day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
