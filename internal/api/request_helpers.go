package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mathquiz/mathquiz/internal/domain"
)

// TimezoneParam is the query parameter naming an IANA zone.
const TimezoneParam = "timezone"

// parseTimeParam reads an optional RFC 3339 timestamp from the query string.
// An absent parameter yields nil.
func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, domain.NewValidationError(name, fmt.Sprintf("%q is not an RFC 3339 timestamp", raw),
			domain.ErrInvalidTimeRange)
	}
	return &t, nil
}

// getPathInt extracts an integer path parameter. Failures wrap sentinel so the
// error maps to the right client message.
func getPathInt(r *http.Request, paramName string, sentinel error) (int, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", sentinel)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", sentinel)
	}
	return n, nil
}

func timezoneParam(r *http.Request) string {
	return r.URL.Query().Get(TimezoneParam)
}
