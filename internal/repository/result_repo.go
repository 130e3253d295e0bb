package repository

import (
	"fmt"
	"wordletracker/internal/database"
	"wordletracker/internal/models"
)

// ResultRepository handles database operations for per-day results
type ResultRepository struct {
	db    *database.DB
	users *UserRepository
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *database.DB, users *UserRepository) *ResultRepository {
	return &ResultRepository{db: db, users: users}
}

// ImportDay stores one parsed day atomically. The day row and every result
// are written in a single transaction, and a result that already exists for
// a (day, user) pair is overwritten rather than duplicated.
func (r *ResultRepository) ImportDay(day int, results []models.ParsedResult) (*models.ImportSummary, error) {
	summary := &models.ImportSummary{Day: day}

	err := r.db.WithTx(func(tx *database.Tx) error {
		if err := upsertDay(tx, day); err != nil {
			return err
		}

		seen := make(map[string]bool, len(results))
		for _, res := range results {
			userID, err := r.users.GetOrCreateTx(tx, res.Username)
			if err != nil {
				return err
			}
			if err := upsertResult(tx, day, userID, res); err != nil {
				return err
			}
			if !seen[res.Username] {
				seen[res.Username] = true
				summary.Users = append(summary.Users, res.Username)
			}
		}

		// Report the day's stored row count, not the parsed entry count;
		// a duplicated (day, user) occurrence collapses into one row.
		return tx.QueryRow(
			"SELECT COUNT(*) FROM results WHERE streak_day = ?", day,
		).Scan(&summary.ResultsAdded)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// upsertDay records the day if it has not been imported before. Re-imports
// keep the original imported_at.
func upsertDay(tx *database.Tx, day int) error {
	var exists int
	err := tx.QueryRow("SELECT COUNT(*) FROM streaks WHERE day = ?", day).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check day: %w", err)
	}
	if exists > 0 {
		return nil
	}
	if _, err := tx.Exec("INSERT INTO streaks (day) VALUES (?)", day); err != nil {
		return fmt.Errorf("failed to insert day: %w", err)
	}
	return nil
}

// upsertResult updates the existing (day, user) row or inserts a new one.
// UPDATE-then-INSERT keeps the statement portable across all three engines.
func upsertResult(tx *database.Tx, day int, userID int64, res models.ParsedResult) error {
	update := `
		UPDATE results
		SET score = ?, is_winner = ?
		WHERE streak_day = ? AND user_id = ?
	`
	result, err := tx.Exec(update, string(res.Score), res.IsWinner, day, userID)
	if err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	insert := `
		INSERT INTO results (streak_day, user_id, score, is_winner)
		VALUES (?, ?, ?, ?)
	`
	if _, err := tx.Exec(insert, day, userID, string(res.Score), res.IsWinner); err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// AllRows returns every stored result joined with its username, ordered by
// day then username. This is the single read feeding the statistics engines.
func (r *ResultRepository) AllRows() ([]models.ResultRow, error) {
	return r.rows("", nil)
}

// RowsInRange returns results for days in [startDay, endDay] inclusive,
// ordered by day then username.
func (r *ResultRepository) RowsInRange(startDay, endDay int) ([]models.ResultRow, error) {
	return r.rows("WHERE r.streak_day BETWEEN ? AND ?", []interface{}{startDay, endDay})
}

func (r *ResultRepository) rows(where string, args []interface{}) ([]models.ResultRow, error) {
	query := fmt.Sprintf(`
		SELECT r.streak_day, u.username, r.score, r.is_winner
		FROM results r
		JOIN users u ON u.id = r.user_id
		%s
		ORDER BY r.streak_day, u.username
	`, where)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var out []models.ResultRow
	for rows.Next() {
		var row models.ResultRow
		if err := rows.Scan(&row.Day, &row.Username, &row.Score, &row.IsWinner); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Count returns the number of stored results
func (r *ResultRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}
