package handler

import (
	"log/slog"
	"net/http"

	"github.com/palcut/palcut-go/internal/api/middleware"
	"github.com/palcut/palcut-go/internal/services/auth"
	"github.com/palcut/palcut-go/internal/services/report"
)

// ReportHandler serves the printable room report
type ReportHandler struct {
	reportService *report.Service
	authService   *auth.Service
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.Service, authService *auth.Service, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		authService:   authService,
		logger:        logger.With(slog.String("component", "report-handler")),
	}
}

// Get handles GET /api/v1/rooms/{code}/report
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	code := roomCode(r)
	if err := h.authService.CheckRoom(session.Token, code); err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.reportService.Render(r.Context(), w, code); err != nil {
		// Headers are already out; all we can do is log
		h.logger.Error("report render failed",
			slog.String("room", string(code)),
			slog.Any("error", err))
	}
}
