package apperror

import "errors"

var (
	ErrInvalidPosition = errors.New("position is outside the board")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameOver        = errors.New("game is already over")

	ErrGameNotStarted   = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrGameNotFound     = errors.New("game not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrGameFull         = errors.New("game already has two players")
	ErrNoAvailableMoves = errors.New("no available moves")
)
