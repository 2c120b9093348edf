package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/playgrid/tictactoe-backend/internal/entity"
)

type statsProvider interface {
	CountByOutcome(ctx context.Context, outcome string) (int, error)
}

// Stats summarizes the archived (finished) games.
type Stats struct {
	XWon  int `json:"x_won"`
	OWon  int `json:"o_won"`
	Draws int `json:"draws"`
}

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "statsHandler")

	var (
		stats Stats
		err   error
	)

	ctx := r.Context()

	if stats.XWon, err = that.stats.CountByOutcome(ctx, entity.OutcomeXWon); err == nil {
		if stats.OWon, err = that.stats.CountByOutcome(ctx, entity.OutcomeOWon); err == nil {
			stats.Draws, err = that.stats.CountByOutcome(ctx, entity.OutcomeDraw)
		}
	}

	if err != nil {
		log.Error("failed to count archived games", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(stats); err != nil {
		log.Error("failed to encode stats", "error", err)
	}
}
