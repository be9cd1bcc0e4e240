package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"coinbot/domain/interfaces"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// DebugResponse represents the response from a debug endpoint
type DebugResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// GuildInfo represents basic guild information
type GuildInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GuildSource lists the guilds the bot is connected to
type GuildSource interface {
	GetGuilds() []GuildInfo
}

// Saver flushes the store on demand
type Saver interface {
	Save(ctx context.Context) error
}

// DebugAPI is an internal HTTP API bound to localhost
type DebugAPI struct {
	guilds     GuildSource
	statistics interfaces.StatisticsService
	saver      Saver
	server     *http.Server
}

// NewDebugAPI creates the API over its data sources
func NewDebugAPI(guilds GuildSource, statistics interfaces.StatisticsService, saver Saver) *DebugAPI {
	return &DebugAPI{
		guilds:     guilds,
		statistics: statistics,
		saver:      saver,
	}
}

// Router builds the chi router serving the debug endpoints
func (a *DebugAPI) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/debug", func(r chi.Router) {
		r.Get("/guilds", a.handleGuilds)
		r.Get("/stats/{guildID}", a.handleStats)
		r.Post("/save", a.handleSave)
	})

	return r
}

// Start serves the API in the background on 127.0.0.1:port
func (a *DebugAPI) Start(port int) {
	a.server = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", port),
		Handler:      a.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Debug API listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Debug API server error: %v", err)
		}
	}()
}

// Shutdown stops the server if it was started
func (a *DebugAPI) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func (a *DebugAPI) handleGuilds(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, a.guilds.GetGuilds())
}

func (a *DebugAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")
	respondWithData(w, a.statistics.Statistics(guildID))
}

func (a *DebugAPI) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := a.saver.Save(r.Context()); err != nil {
		respondWithError(w, fmt.Sprintf("Failed to save: %v", err), http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, "Snapshot saved")
}

func respondWithData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DebugResponse{
		Success: true,
		Data:    data,
	})
}

func respondWithSuccess(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DebugResponse{
		Success: true,
		Message: message,
	})
}

func respondWithError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DebugResponse{
		Success: false,
		Error:   message,
	})
}
