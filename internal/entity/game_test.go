package entity

import (
	"testing"

	"github.com/playgrid/tictactoe-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// Given: a new game
	game := NewGame("123", PrivateType)

	// Then: the board is empty, X moves first and the game is ongoing
	expectedGame := &Game{
		ID:      "123",
		Board:   [9]string{"", "", "", "", "", "", "", "", ""},
		Turn:    PlayerX,
		Outcome: OutcomeOngoing,
		Type:    PrivateType,
	}

	require.Equal(t, expectedGame, game)
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Each position accepts exactly one move", func(t *testing.T) {
		for cell := 0; cell < 9; cell++ {
			// Given: a fresh game
			game := NewGame("123", PrivateType)

			// When: the first move goes to the cell
			outcome, err := game.ApplyMove(cell)

			// Then: the move is accepted and the game continues
			require.NoError(t, err)
			assert.Equal(t, OutcomeOngoing, outcome)
			assert.Equal(t, PlayerX, game.Board[cell])

			// When: the second move targets the same cell
			_, err = game.ApplyMove(cell)

			// Then: it fails with ErrCellOccupied and the board is unchanged
			require.ErrorIs(t, err, apperror.ErrCellOccupied)
			assert.Equal(t, PlayerX, game.Board[cell])
			assert.Equal(t, PlayerO, game.Turn)
		}
	})

	t.Run("Players strictly alternate starting with X", func(t *testing.T) {
		// Given: a fresh game
		game := NewGame("123", PrivateType)

		// When/Then: after n moves it is X's turn iff n is even
		sequence := []int{4, 0, 8, 2, 6}
		for n, cell := range sequence {
			if n%2 == 0 {
				assert.Equal(t, PlayerX, game.Turn, "move %d", n)
			} else {
				assert.Equal(t, PlayerO, game.Turn, "move %d", n)
			}

			_, err := game.ApplyMove(cell)
			require.NoError(t, err)
		}
	})

	t.Run("Error on position outside the board", func(t *testing.T) {
		game := NewGame("123", PrivateType)

		// When: positions outside [0,8] are played
		_, errHigh := game.ApplyMove(9)
		_, errLow := game.ApplyMove(-1)

		// Then: both fail with ErrInvalidPosition and nothing changes
		require.ErrorIs(t, errHigh, apperror.ErrInvalidPosition)
		require.ErrorIs(t, errLow, apperror.ErrInvalidPosition)
		assert.Equal(t, NewGame("123", PrivateType), game)
	})

	t.Run("Failing move is idempotent", func(t *testing.T) {
		// Given: a game with cell 0 occupied
		game := NewGame("123", PrivateType)
		_, err := game.ApplyMove(0)
		require.NoError(t, err)

		snapshot := *game

		// When: the same invalid move is attempted twice
		_, errFirst := game.ApplyMove(0)
		_, errSecond := game.ApplyMove(0)

		// Then: both attempts fail identically and the game is untouched
		require.ErrorIs(t, errFirst, apperror.ErrCellOccupied)
		require.Equal(t, errFirst, errSecond)
		require.Equal(t, snapshot, *game)
	})

	t.Run("X wins on the top row", func(t *testing.T) {
		// Given: X plays 0,1,2 while O plays 3,4
		game := NewGame("123", PrivateType)

		for _, cell := range []int{0, 3, 1, 4} {
			outcome, err := game.ApplyMove(cell)
			require.NoError(t, err)
			require.Equal(t, OutcomeOngoing, outcome)
		}

		// When: X completes the row
		outcome, err := game.ApplyMove(2)

		// Then: X wins and the turn stays on X
		require.NoError(t, err)
		assert.Equal(t, OutcomeXWon, outcome)
		assert.Equal(t, OutcomeXWon, game.Outcome)
		assert.Equal(t, PlayerX, game.Turn)
		assert.True(t, game.IsOver())

		// When: any further move is attempted
		_, err = game.ApplyMove(5)

		// Then: it fails with ErrGameOver
		require.ErrorIs(t, err, apperror.ErrGameOver)
	})

	t.Run("O wins on the left column", func(t *testing.T) {
		// Given: O plays 0,3 while X plays 4,5,8 and it is O's turn
		game := NewGame("123", PrivateType)

		for _, cell := range []int{4, 0, 5, 3, 8} {
			_, err := game.ApplyMove(cell)
			require.NoError(t, err)
		}
		require.Equal(t, PlayerO, game.Turn)

		// When: O completes the column
		outcome, err := game.ApplyMove(6)

		// Then: O wins
		require.NoError(t, err)
		assert.Equal(t, OutcomeOWon, outcome)
		assert.Equal(t, PlayerO, game.Turn)
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a sequence that fills the board with no 3-in-a-row
		game := NewGame("123", PrivateType)

		sequence := []int{0, 1, 2, 4, 3, 5, 7, 6}
		for _, cell := range sequence {
			outcome, err := game.ApplyMove(cell)
			require.NoError(t, err)
			require.Equal(t, OutcomeOngoing, outcome)
		}

		// When: the ninth move fills the last cell
		outcome, err := game.ApplyMove(8)

		// Then: the game is a draw and further moves are rejected
		require.NoError(t, err)
		assert.Equal(t, OutcomeDraw, outcome)
		assert.True(t, game.IsOver())

		_, err = game.ApplyMove(8)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Occupied cell is reported even after the game is over", func(t *testing.T) {
		// Given: a finished game
		game := NewGame("123", PrivateType)
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err := game.ApplyMove(cell)
			require.NoError(t, err)
		}
		require.True(t, game.IsOver())

		// When: a move targets an already occupied cell
		_, err := game.ApplyMove(0)

		// Then: the occupied-cell check fires before the game-over check
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})
}

func TestDetermineOutcome(t *testing.T) {
	t.Run("Returns OutcomeXWon when X holds a diagonal", func(t *testing.T) {
		board := [9]string{
			PlayerX, PlayerO, EmptyCell,
			PlayerO, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerX,
		}

		assert.Equal(t, OutcomeXWon, determineOutcome(board))
	})

	t.Run("Returns OutcomeOWon when O holds a column", func(t *testing.T) {
		board := [9]string{
			EmptyCell, PlayerO, PlayerX,
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerO, PlayerX,
		}

		assert.Equal(t, OutcomeOWon, determineOutcome(board))
	})

	t.Run("Returns OutcomeDraw on a full board without a line", func(t *testing.T) {
		board := [9]string{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerO,
		}

		assert.Equal(t, OutcomeDraw, determineOutcome(board))
	})

	t.Run("Returns OutcomeOngoing while cells remain", func(t *testing.T) {
		board := [9]string{
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerO,
		}

		assert.Equal(t, OutcomeOngoing, determineOutcome(board))
	})
}

func TestWinner(t *testing.T) {
	assert.Equal(t, OutcomeXWon, Winner(PlayerX))
	assert.Equal(t, OutcomeOWon, Winner(PlayerO))
}
