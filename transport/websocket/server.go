package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/playgrid/tictactoe-backend/internal/entity"
)

const sessionCookieName = "session"

var ErrUnknownAction = errors.New("unknown action")

type gamePlay interface {
	GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	JoinWaitingPublicGame(ctx context.Context, playerID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
}

type playerService interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
}

// conn wraps a websocket connection with a write lock; gorilla connections
// allow only one concurrent writer.
type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (that *conn) send(message Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ws.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger *slog.Logger

	players  playerService
	gamePlay gamePlay

	upgrader websocket.Upgrader

	connectionsMutex sync.RWMutex
	connections      map[string]*conn

	handlers map[string]func(ctx context.Context, sessionID string, msg *Message, c *conn) error
}

func New(logger *slog.Logger, players playerService, gamePlay gamePlay) *Server {
	server := &Server{
		logger:   logger,
		players:  players,
		gamePlay: gamePlay,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},

		connections: make(map[string]*conn),
		handlers:    make(map[string]func(context.Context, string, *Message, *conn) error),
	}

	server.handlers["connect"] = server.handleConnect
	server.handlers["game:new"] = server.handleNewGame
	server.handlers["game:join"] = server.handleJoinGame
	server.handlers["game:turn"] = server.handleGameTurn

	return server
}

// Start - starts the WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and runs the message loop.
func (that *Server) serveWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	sessionID, responseHeader := that.sessionID(req)

	wsConn, err := that.upgrader.Upgrade(writer, req, responseHeader)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer wsConn.Close()

	log.Info("WebSocket connection established", "session_id", sessionID)

	connection := &conn{ws: wsConn}

	// srv.Shutdown does not touch hijacked connections; close this one
	// ourselves on shutdown so the blocked read loop exits.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = wsConn.Close()
		case <-done:
		}
	}()

	if err = that.handleMessages(ctx, sessionID, connection); err != nil {
		log.Error("error handling messages", "error", err)
	}

	that.dropConnection(sessionID)
}

// handleMessages - processes messages from the client until the connection
// closes or ctx is canceled.
func (that *Server) handleMessages(ctx context.Context, sessionID string, connection *conn) error {
	log := that.logger.With("method", "handleMessages", "session_id", sessionID)

	for {
		if ctx.Err() != nil {
			return nil
		}

		var message Message
		if err := connection.ws.ReadJSON(&message); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)

			if err := that.sendErrorResponse(connection, message.Action, ErrUnknownAction.Error()); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, sessionID, &message, connection); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// sessionID - reads the session cookie, issuing a fresh id (and the cookie
// header to set it) when the client has none.
func (that *Server) sessionID(req *http.Request) (string, http.Header) {
	if cookie, err := req.Cookie(sessionCookieName); err == nil {
		return cookie.Value, nil
	}

	cookie := &http.Cookie{
		Name:    sessionCookieName,
		Value:   uuid.NewString(),
		Expires: time.Now().Add(24 * time.Hour),
		Path:    "/ws",
	}

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return cookie.Value, header
}

func (that *Server) trackConnection(playerID string, connection *conn) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.connections[playerID] = connection
}

func (that *Server) dropConnection(playerID string) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	delete(that.connections, playerID)
}

func (that *Server) connectionFor(playerID string) (*conn, bool) {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	connection, ok := that.connections[playerID]

	return connection, ok
}

func (that *Server) sendMessage(connection *conn, action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return connection.send(Message{
		Action:  action,
		Payload: raw,
	})
}

func (that *Server) sendErrorResponse(connection *conn, action, message string) error {
	return that.sendMessage(connection, action, Payload{Error: message})
}

// broadcastGame - sends the game state to every seated human player that has
// a live connection.
func (that *Server) broadcastGame(action string, game *entity.Game) {
	log := that.logger.With("method", "broadcastGame", "game_id", game.ID)

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		connection, ok := that.connectionFor(player.ID)
		if !ok {
			log.Warn("connection not found for player", "player_id", player.ID)
			continue
		}

		payload := Payload{
			Player: player,
			Game:   game,
		}

		if err := that.sendMessage(connection, action, payload); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}
