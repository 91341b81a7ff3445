package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/palcut/palcut-go/internal/api/handler"
	"github.com/palcut/palcut-go/internal/api/middleware"
	"github.com/palcut/palcut-go/internal/services/auth"
	"github.com/palcut/palcut-go/internal/services/history"
	"github.com/palcut/palcut-go/internal/services/report"
	"github.com/palcut/palcut-go/internal/services/room"
	"github.com/palcut/palcut-go/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	RoomController    room.ControllerInterface
	HistoryController history.ControllerInterface
	ReportService     *report.Service
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.AuthService, cfg.Broadcaster, cfg.HubManager, cfg.Logger)
	historyHandler := handler.NewHistoryHandler(cfg.HistoryController, cfg.AuthService, cfg.Broadcaster)
	reportHandler := handler.NewReportHandler(cfg.ReportService, cfg.AuthService, cfg.Logger)
	eventsHandler := handler.NewEventsHandler(cfg.AuthService, cfg.HubManager)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session creation requires no auth; everything else does
	api.HandleFunc("/session", sessionHandler.Create).Methods(http.MethodPost)

	session := api.PathPrefix("/session").Subrouter()
	session.Use(authMiddleware)
	session.HandleFunc("", sessionHandler.Delete).Methods(http.MethodDelete)
	session.HandleFunc("/me", sessionHandler.GetMe).Methods(http.MethodGet)
	session.HandleFunc("/names", sessionHandler.GetNames).Methods(http.MethodGet)
	session.HandleFunc("/names", sessionHandler.RememberNames).Methods(http.MethodPost)
	session.HandleFunc("/names/{name}", sessionHandler.ForgetName).Methods(http.MethodDelete)

	// Room routes (all require auth; membership is checked per-handler)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}", roomHandler.Delete).Methods(http.MethodDelete)
	rooms.HandleFunc("/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/players", roomHandler.AddPlayer).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/players/{player_id}", roomHandler.RemovePlayer).Methods(http.MethodDelete)
	rooms.HandleFunc("/{code}/players/{player_id}/rejoin", roomHandler.RejoinPlayer).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/buy-in", roomHandler.SetBuyIn).Methods(http.MethodPut)
	rooms.HandleFunc("/{code}/start", roomHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/rounds", roomHandler.SubmitRound).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/rounds/undo", roomHandler.UndoRound).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/finish", roomHandler.Finish).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/reset", roomHandler.Reset).Methods(http.MethodPost)

	// History and report routes
	rooms.HandleFunc("/{code}/history", historyHandler.List).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/history/{record_id}", historyHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/history/{record_id}", historyHandler.Delete).Methods(http.MethodDelete)
	rooms.HandleFunc("/{code}/report", reportHandler.Get).Methods(http.MethodGet)

	// Live updates stream
	rooms.HandleFunc("/{code}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
