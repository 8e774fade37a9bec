package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mathquiz/mathquiz/internal/api/shared"
	"github.com/mathquiz/mathquiz/internal/domain"
)

// StatsService is the statistics engine as seen by the HTTP layer.
type StatsService interface {
	Today(ctx context.Context, tz string) (domain.Statistic, error)
	Daily(ctx context.Context, year, month, day int, tz string) (domain.Statistic, error)
	RollingN(ctx context.Context, n int, tz string) (domain.RollingStatistics, error)
	History(ctx context.Context, tz string) ([]domain.DailyStatistic, error)
}

// StatsHandler serves per-day statistics. Every route accepts an optional
// ?timezone= IANA name; the server default applies when it is absent.
type StatsHandler struct {
	stats  StatsService
	logger *slog.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats StatsService, logger *slog.Logger) *StatsHandler {
	if stats == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("stats cannot be nil for StatsHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{
		stats:  stats,
		logger: logger.With(slog.String("component", "stats_handler")),
	}
}

// Today handles GET /api/today.
func (h *StatsHandler) Today(w http.ResponseWriter, r *http.Request) {
	stat, err := h.stats.Today(r.Context(), timezoneParam(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get today's statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stat)
}

// Daily handles GET /api/daily/{year}/{month}/{day}.
func (h *StatsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	var parts [3]int
	for i, name := range []string{"year", "month", "day"} {
		n, err := getPathInt(r, name, domain.ErrInvalidDate)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		parts[i] = n
	}

	stat, err := h.stats.Daily(r.Context(), parts[0], parts[1], parts[2], timezoneParam(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get daily statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stat)
}

// LastN handles GET /api/last/{n}.
func (h *StatsHandler) LastN(w http.ResponseWriter, r *http.Request) {
	n, err := getPathInt(r, "n", domain.ErrInvalidWindow)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	rolling, err := h.stats.RollingN(r.Context(), n, timezoneParam(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, rolling)
}

// History handles GET /api/daily.
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.stats.History(r.Context(), timezoneParam(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get statistics history")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, history)
}
