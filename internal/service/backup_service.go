package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"wordletracker/internal/database"
)

// BackupData is the complete portable snapshot of the store. Results
// reference days and users by value, not by row ID, so a backup restores
// cleanly into any engine.
type BackupData struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Users      []UserBackup   `json:"users"`
	Days       []DayBackup    `json:"days"`
	Results    []ResultBackup `json:"results"`
}

// UserBackup is one user record in a backup
type UserBackup struct {
	Username  string    `json:"username"`
	FirstSeen time.Time `json:"first_seen"`
}

// DayBackup is one imported day record in a backup
type DayBackup struct {
	Day        int       `json:"day"`
	ImportedAt time.Time `json:"imported_at"`
}

// ResultBackup is one result record in a backup
type ResultBackup struct {
	Day      int    `json:"day"`
	Username string `json:"username"`
	Score    string `json:"score"`
	IsWinner bool   `json:"is_winner"`
}

// BackupService exports and restores complete store snapshots
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the store to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Export completed: %s", outputPath)
	return nil
}

// ExportToWriter writes a complete backup of the store as JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportDays(backup); err != nil {
		return fmt.Errorf("failed to export days: %w", err)
	}
	if err := s.exportResults(backup); err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Import restores a backup from a file, replacing the current store
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	if err := s.ImportFromReader(file); err != nil {
		return err
	}

	log.Println("Import completed")
	return nil
}

// ImportFromReader restores a backup in one transaction. The existing
// store contents are replaced; a failure partway rolls everything back.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	backup := &BackupData{}
	if err := json.NewDecoder(reader).Decode(backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	return s.db.WithTx(func(tx *database.Tx) error {
		for _, stmt := range []string{
			"DELETE FROM results",
			"DELETE FROM streaks",
			"DELETE FROM users",
		} {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to clear store: %w", err)
			}
		}

		userIDs := make(map[string]int64, len(backup.Users))
		for _, u := range backup.Users {
			id, err := tx.ExecReturningID(
				"INSERT INTO users (username, first_seen) VALUES (?, ?)",
				u.Username, u.FirstSeen,
			)
			if err != nil {
				return fmt.Errorf("failed to restore user %s: %w", u.Username, err)
			}
			userIDs[u.Username] = id
		}

		for _, d := range backup.Days {
			if _, err := tx.Exec(
				"INSERT INTO streaks (day, imported_at) VALUES (?, ?)",
				d.Day, d.ImportedAt,
			); err != nil {
				return fmt.Errorf("failed to restore day %d: %w", d.Day, err)
			}
		}

		for _, r := range backup.Results {
			userID, ok := userIDs[r.Username]
			if !ok {
				return fmt.Errorf("backup references unknown user %s", r.Username)
			}
			if _, err := tx.Exec(
				"INSERT INTO results (streak_day, user_id, score, is_winner) VALUES (?, ?, ?, ?)",
				r.Day, userID, r.Score, r.IsWinner,
			); err != nil {
				return fmt.Errorf("failed to restore result for day %d: %w", r.Day, err)
			}
		}
		return nil
	})
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT username, first_seen FROM users ORDER BY username")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.Username, &u.FirstSeen); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportDays(backup *BackupData) error {
	rows, err := s.db.Query("SELECT day, imported_at FROM streaks ORDER BY day")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d DayBackup
		if err := rows.Scan(&d.Day, &d.ImportedAt); err != nil {
			return err
		}
		backup.Days = append(backup.Days, d)
	}
	return rows.Err()
}

func (s *BackupService) exportResults(backup *BackupData) error {
	query := `
		SELECT r.streak_day, u.username, r.score, r.is_winner
		FROM results r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.streak_day, u.username
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r ResultBackup
		if err := rows.Scan(&r.Day, &r.Username, &r.Score, &r.IsWinner); err != nil {
			return err
		}
		backup.Results = append(backup.Results, r)
	}
	return rows.Err()
}
