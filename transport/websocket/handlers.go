package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/playgrid/tictactoe-backend/internal/apperror"
	"github.com/playgrid/tictactoe-backend/internal/entity"
)

// playerID - resolves the player identity of a message: the id the client
// sent, falling back to the connection's session id.
func playerID(payload *Payload, sessionID string) string {
	if payload.Player != nil && payload.Player.ID != "" {
		return payload.Player.ID
	}
	return sessionID
}

func (that *Server) handleConnect(ctx context.Context, sessionID string, msg *Message, connection *conn) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	player, err := that.players.GetOrCreatePlayer(ctx, playerID(&payloadReq, sessionID))
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		return that.sendErrorResponse(connection, msg.Action, "failed to create a new player")
	}

	that.trackConnection(player.ID, connection)

	payloadResp := Payload{
		Player: player,
	}

	if err = that.sendMessage(connection, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "player_id", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, sessionID string, msg *Message, connection *conn) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Game == nil {
		log.Error("game is missing in payload")
		return that.sendErrorResponse(connection, msg.Action, "game is required")
	}

	id := playerID(&payloadReq, sessionID)
	that.trackConnection(id, connection)

	var (
		game *entity.Game
		err  error
	)

	if payloadReq.Game.IsPublic() {
		game, err = that.gamePlay.JoinWaitingPublicGame(ctx, id)
	} else {
		game, err = that.gamePlay.GetOrCreateGame(ctx, id, payloadReq.Game.Type)
	}

	if err != nil {
		log.Error("failed to create game", "game_type", payloadReq.Game.Type, "error", err)
		return that.sendErrorResponse(connection, msg.Action, "failed to create a new game")
	}

	that.broadcastGame(msg.Action, game)

	log.Info("game ready", "game_id", game.ID)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, sessionID string, msg *Message, connection *conn) error {
	log := that.logger.With("method", "handleJoinGame")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		log.Error("game id is missing in payload")
		return that.sendErrorResponse(connection, msg.Action, "game id is required")
	}

	id := playerID(&payloadReq, sessionID)
	that.trackConnection(id, connection)

	game, err := that.gamePlay.JoinGameByID(ctx, payloadReq.Game.ID, id)
	if err != nil {
		log.Error("failed to join game", "game_id", payloadReq.Game.ID, "error", err)
		return that.sendErrorResponse(connection, msg.Action, fmt.Sprintf("game %s: %v", payloadReq.Game.ID, err))
	}

	that.broadcastGame(msg.Action, game)

	log.Info("player joined game", "game_id", game.ID, "player_id", id)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, sessionID string, msg *Message, connection *conn) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Cell == nil {
		log.Error("cell is missing in payload")
		return that.sendErrorResponse(connection, msg.Action, "cell is required")
	}

	id := playerID(&payloadReq, sessionID)
	that.trackConnection(id, connection)

	game, err := that.gamePlay.MakeTurn(ctx, id, *payloadReq.Cell)

	switch {
	case errors.Is(err, apperror.ErrInvalidPosition),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameOver),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameNotStarted):
		return that.sendErrorResponse(connection, msg.Action, err.Error())
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return that.sendErrorResponse(connection, msg.Action, "failed to make turn")
	}

	that.broadcastGame(msg.Action, game)

	log.Info("player made a turn", "game_id", game.ID, "player_id", id, "outcome", game.Outcome)

	return nil
}
