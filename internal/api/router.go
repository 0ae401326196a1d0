package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/showquiz/tvtrivia/internal/api/handler"
	"github.com/showquiz/tvtrivia/internal/api/middleware"
	"github.com/showquiz/tvtrivia/internal/services/auth"
	"github.com/showquiz/tvtrivia/internal/services/bank"
	"github.com/showquiz/tvtrivia/internal/services/roster"
	"github.com/showquiz/tvtrivia/internal/services/session"
	"github.com/showquiz/tvtrivia/internal/services/shows"
	"github.com/showquiz/tvtrivia/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	SessionController *session.Controller
	RosterService     *roster.Service
	ShowService       *shows.Service
	BankService       *bank.Service
	HubManager        *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController, cfg.HubManager, cfg.Logger)
	rosterHandler := handler.NewRosterHandler(cfg.RosterService, cfg.HubManager, cfg.Logger)
	showsHandler := handler.NewShowsHandler(cfg.ShowService, cfg.HubManager, cfg.Logger)
	bankHandler := handler.NewBankHandler(cfg.BankService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required to register/log in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Decade routes
	api.HandleFunc("/decades", showsHandler.Decades).Methods(http.MethodGet)
	api.HandleFunc("/decades/{decade}/shows", showsHandler.Presets).Methods(http.MethodGet)

	// Question bank routes
	api.HandleFunc("/questions/{decade}", bankHandler.GetLatest).Methods(http.MethodGet)
	api.HandleFunc("/questions/{decade}/status", bankHandler.Status).Methods(http.MethodGet)

	// Host-only routes (auth required)
	guarded := api.NewRoute().Subrouter()
	guarded.Use(authMiddleware)
	guarded.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)
	guarded.HandleFunc("/questions/seed", bankHandler.Seed).Methods(http.MethodPost)
	guarded.HandleFunc("/decades/{decade}/popular-shows", bankHandler.PopularShows).Methods(http.MethodGet)

	// Session routes
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{session_id}", sessionHandler.Delete).Methods(http.MethodDelete)
	sessions.HandleFunc("/{session_id}/decade", sessionHandler.SetDecade).Methods(http.MethodPatch)
	sessions.HandleFunc("/{session_id}/events", sessionHandler.Events).Methods(http.MethodGet)

	// Turn flow
	sessions.HandleFunc("/{session_id}/select-show", sessionHandler.SelectShow).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/spin-show", sessionHandler.SpinShow).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/draw", sessionHandler.DrawQuestion).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/reveal", sessionHandler.RevealAnswer).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/skip", sessionHandler.SkipQuestion).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/resolve", sessionHandler.ResolveTurn).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/new-round", sessionHandler.NewRound).Methods(http.MethodPost)

	// Theme
	sessions.HandleFunc("/{session_id}/theme", sessionHandler.GetTheme).Methods(http.MethodGet)
	sessions.HandleFunc("/{session_id}/theme", sessionHandler.SetTheme).Methods(http.MethodPut)

	// Roster
	sessions.HandleFunc("/{session_id}/roster", rosterHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{session_id}/roster/players", rosterHandler.AddPlayer).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/roster/players/{player_id}", rosterHandler.RenamePlayer).Methods(http.MethodPatch)
	sessions.HandleFunc("/{session_id}/roster/players/{player_id}", rosterHandler.RemovePlayer).Methods(http.MethodDelete)
	sessions.HandleFunc("/{session_id}/roster/players/{player_id}/score", rosterHandler.ApplyScoreDelta).Methods(http.MethodPost)

	// Show selections
	sessions.HandleFunc("/{session_id}/selections", showsHandler.Toggle).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/selections/{decade}", showsHandler.Selected).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
