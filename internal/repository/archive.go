package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playgrid/tictactoe-backend/internal/apperror"
	"github.com/playgrid/tictactoe-backend/internal/entity"
)

// ArchivedGame is the durable record kept for a finished game.
type ArchivedGame struct {
	ID         string    `json:"id"`
	Board      [9]string `json:"board"`
	Outcome    string    `json:"outcome"`
	FinishedAt time.Time `json:"finished_at"`
}

type ArchiveRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*ArchivedGame, error)
	CountByOutcome(ctx context.Context, outcome string) (int, error)
}

type dbArchive struct {
	db *sql.DB
}

func NewArchiveRepository(db *sql.DB) ArchiveRepository {
	return &dbArchive{
		db: db,
	}
}

func (that *dbArchive) Save(ctx context.Context, game *entity.Game) error {
	boardJSON, err := json.Marshal(game.Board)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	query := `INSERT OR REPLACE INTO finished_games (id, board, outcome, finished_at) VALUES (?, ?, ?, ?)`

	if _, err = that.db.ExecContext(ctx, query, game.ID, string(boardJSON), game.Outcome, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	return nil
}

func (that *dbArchive) GetByID(ctx context.Context, id string) (*ArchivedGame, error) {
	query := `SELECT id, board, outcome, finished_at FROM finished_games WHERE id = ?`

	var (
		archived  ArchivedGame
		boardJSON string
	)

	row := that.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&archived.ID, &boardJSON, &archived.Outcome, &archived.FinishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrGameNotFound
		}

		return nil, fmt.Errorf("failed to get archived game by id: %w", err)
	}

	if err := json.Unmarshal([]byte(boardJSON), &archived.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	return &archived, nil
}

func (that *dbArchive) CountByOutcome(ctx context.Context, outcome string) (int, error) {
	query := `SELECT COUNT(*) FROM finished_games WHERE outcome = ?`

	var count int
	if err := that.db.QueryRowContext(ctx, query, outcome).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count archived games: %w", err)
	}

	return count, nil
}
