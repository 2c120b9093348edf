package entity

import (
	"fmt"

	"github.com/playgrid/tictactoe-backend/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// Outcome values of a game. OutcomeOngoing is the only non-terminal one:
// once a game reaches any other outcome it accepts no further moves.
const (
	OutcomeOngoing = "ongoing"
	OutcomeXWon    = "x_won"
	OutcomeOWon    = "o_won"
	OutcomeDraw    = "draw"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

// WinCombos lists the 8 winning lines: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game holds the 3x3 board in row-major order (index = row*3 + col),
// the mark of the player whose turn it is, and the current outcome.
type Game struct {
	ID      string    `json:"id"`
	Board   [9]string `json:"board"`
	Turn    string    `json:"turn"`
	Outcome string    `json:"outcome"`
	Players []*Player `json:"players,omitempty"`
	Type    string    `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:      id,
		Board:   [9]string{},
		Turn:    PlayerX,
		Outcome: OutcomeOngoing,
		Type:    gameType,
	}
}

// Winner maps a player mark to the outcome declaring that player the winner.
func Winner(mark string) string {
	if mark == PlayerX {
		return OutcomeXWon
	}
	return OutcomeOWon
}

// ApplyMove places the active player's mark on the given cell and returns
// the resulting outcome. On any error the game is left untouched. When the
// move ends the game, Turn stays on the player who made it — moves are no
// longer accepted, so the value is never consulted again.
func (that *Game) ApplyMove(cell int) (string, error) {
	if cell < 0 || cell >= len(that.Board) {
		return that.Outcome, fmt.Errorf("%w: cell %d", apperror.ErrInvalidPosition, cell)
	}

	if that.Board[cell] != EmptyCell {
		return that.Outcome, apperror.ErrCellOccupied
	}

	if that.IsOver() {
		return that.Outcome, apperror.ErrGameOver
	}

	that.Board[cell] = that.Turn

	that.Outcome = determineOutcome(that.Board)
	if that.Outcome == OutcomeOngoing {
		that.Turn = toggleMark(that.Turn)
	}

	return that.Outcome, nil
}

func (that *Game) IsOver() bool {
	return that.Outcome != OutcomeOngoing
}

func (that *Game) IsOngoing() bool {
	return that.Outcome == OutcomeOngoing
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func determineOutcome(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Winner(a)
		}
	}

	// the game continues until every cell is occupied
	for _, cell := range board {
		if cell == EmptyCell {
			return OutcomeOngoing
		}
	}

	return OutcomeDraw
}
