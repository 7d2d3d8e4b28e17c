package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame stores a finished game. Saving the same game id twice keeps the
// latest result.
func (r *GameRepo) SaveGame(ctx context.Context, record domain.GameRecord) error {
	boardJSON, err := json.Marshal(record.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %v", err)
	}

	query := `
	INSERT INTO game (game_id, session_id, mode, difficulty, winner, reason, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO UPDATE SET
		winner = EXCLUDED.winner,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		board_state = EXCLUDED.board_state;
	`

	_, err = r.DB.ExecContext(ctx, query,
		record.GameID,
		record.SessionID,
		string(record.Mode),
		string(record.Difficulty),
		int(record.Winner),
		record.Reason,
		record.TotalMoves,
		record.DurationSeconds,
		record.CreatedAt,
		record.FinishedAt,
		boardJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %v", err)
	}
	return nil
}

// ListGames returns the latest games of a session, newest first.
func (r *GameRepo) ListGames(ctx context.Context, sessionID string, limit int) ([]domain.GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT game_id, session_id, mode, difficulty, winner, reason, total_moves,
	       duration_seconds, created_at, finished_at, board_state
	FROM game
	WHERE session_id = $1
	ORDER BY finished_at DESC
	LIMIT $2;
	`

	rows, err := r.DB.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %v", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		var (
			record     domain.GameRecord
			mode       string
			difficulty string
			winner     int
			boardJSON  []byte
		)

		err := rows.Scan(
			&record.GameID,
			&record.SessionID,
			&mode,
			&difficulty,
			&winner,
			&record.Reason,
			&record.TotalMoves,
			&record.DurationSeconds,
			&record.CreatedAt,
			&record.FinishedAt,
			&boardJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %v", err)
		}

		record.Mode = domain.Mode(mode)
		record.Difficulty = domain.Difficulty(difficulty)
		record.Winner = domain.PlayerID(winner)
		if boardJSON != nil {
			if err := json.Unmarshal(boardJSON, &record.Board); err != nil {
				return nil, fmt.Errorf("failed to unmarshal board state: %v", err)
			}
		}

		games = append(games, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game history: %v", err)
	}
	return games, nil
}

// DeleteOlderThan removes games finished more than olderThanDays ago.
func (r *GameRepo) DeleteOlderThan(ctx context.Context, olderThanDays int) (int64, error) {
	query := `
	DELETE FROM game
	WHERE finished_at < NOW() - INTERVAL '1 day' * $1;
	`
	result, err := r.DB.ExecContext(ctx, query, olderThanDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old games: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %v", err)
	}

	return rowsAffected, nil
}
