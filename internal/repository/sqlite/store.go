// Package sqlite keeps terminal sessions on disk with the pure-Go
// modernc.org/sqlite driver: the saved state of each session and the games
// it finished.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

type Store struct {
	db *sql.DB
}

// Open creates or opens the database at dbPath, creating parent directories
// and expanding a leading ~.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("sqlite: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: cannot open database: %w", err)
	}
	// one writer; the driver serialises anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS state (
			session_id TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS games (
			game_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			winner INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			total_moves INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			board TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_games_session ON games(session_id, finished_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context, sessionID string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM state WHERE session_id = ?`, sessionID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load state: %w", err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO state (session_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, sessionID, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("sqlite: save state: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM state WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("sqlite: delete state: %w", err)
	}
	return nil
}

// SaveGame records a finished game; the same game id overwrites.
func (s *Store) SaveGame(ctx context.Context, record domain.GameRecord) error {
	board, err := json.Marshal(record.Board)
	if err != nil {
		return fmt.Errorf("sqlite: encode board: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO games
			(game_id, session_id, mode, difficulty, winner, reason, total_moves, duration_secs, created_at, finished_at, board)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.GameID, record.SessionID, string(record.Mode), string(record.Difficulty),
		int(record.Winner), record.Reason, record.TotalMoves, record.DurationSeconds,
		record.CreatedAt.Unix(), record.FinishedAt.Unix(), string(board),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save game: %w", err)
	}
	return nil
}

// ListGames returns the latest games of a session, newest first.
func (s *Store) ListGames(ctx context.Context, sessionID string, limit int) ([]domain.GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, session_id, mode, difficulty, winner, reason, total_moves, duration_secs, created_at, finished_at, board
		FROM games
		WHERE session_id = ?
		ORDER BY finished_at DESC, rowid DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list games: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		var (
			rec                   domain.GameRecord
			mode, difficulty      string
			winner                int
			createdAt, finishedAt int64
			board                 sql.NullString
		)
		if err := rows.Scan(&rec.GameID, &rec.SessionID, &mode, &difficulty, &winner, &rec.Reason,
			&rec.TotalMoves, &rec.DurationSeconds, &createdAt, &finishedAt, &board); err != nil {
			return nil, fmt.Errorf("sqlite: scan game: %w", err)
		}
		rec.Mode = domain.Mode(mode)
		rec.Difficulty = domain.Difficulty(difficulty)
		rec.Winner = domain.PlayerID(winner)
		rec.CreatedAt = time.Unix(createdAt, 0)
		rec.FinishedAt = time.Unix(finishedAt, 0)
		if board.Valid {
			if err := json.Unmarshal([]byte(board.String), &rec.Board); err != nil {
				return nil, fmt.Errorf("sqlite: decode board: %w", err)
			}
		}
		games = append(games, rec)
	}
	return games, rows.Err()
}

// DeleteOlderThan removes games finished more than days ago.
func (s *Store) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Unix()
	result, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE finished_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sqlite: delete old games: %w", err)
	}
	return result.RowsAffected()
}
