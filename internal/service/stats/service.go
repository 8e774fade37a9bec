// Package stats computes accuracy statistics over calendar days in a
// caller-chosen timezone.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mathquiz/mathquiz/internal/domain"
	"github.com/mathquiz/mathquiz/internal/platform/logger"
)

// DefaultMaxWindowDays caps RollingN when no limit is configured.
const DefaultMaxWindowDays = 366

// RangeCounter counts answers in an absolute timestamp range.
type RangeCounter interface {
	GetStatistics(ctx context.Context, start, end *time.Time) (domain.Statistic, error)
}

// HistorySource lists every recorded answer.
type HistorySource interface {
	AnswerHistory(ctx context.Context) ([]domain.AnswerRecord, error)
}

// Source is what the statistics engine reads from; the quiz service satisfies it.
type Source interface {
	RangeCounter
	HistorySource
}

// Config tunes the statistics engine.
type Config struct {
	// DefaultTimezone is used when a request names no zone. "Local" and IANA names are accepted.
	DefaultTimezone string
	// MaxWindowDays bounds RollingN.
	MaxWindowDays int
	// Now is the engine clock. Defaults to time.Now.
	Now func() time.Time
}

// Service answers per-day statistics queries.
type Service struct {
	source      Source
	defaultZone *time.Location
	maxWindow   int
	now         func() time.Time
	logger      *slog.Logger
}

// NewService creates a statistics engine reading from source. It fails when
// the default timezone cannot be resolved.
func NewService(source Source, cfg Config, logger *slog.Logger) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("source cannot be nil")
	}

	name := strings.TrimSpace(cfg.DefaultTimezone)
	if name == "" {
		name = "Local"
	}
	zone, err := time.LoadLocation(name)
	if err != nil {
		return nil, domain.NewValidationError("default_timezone",
			fmt.Sprintf("unknown timezone %q", name), domain.ErrInvalidTimezone)
	}

	if cfg.MaxWindowDays <= 0 {
		cfg.MaxWindowDays = DefaultMaxWindowDays
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		source:      source,
		defaultZone: zone,
		maxWindow:   cfg.MaxWindowDays,
		now:         cfg.Now,
		logger:      logger.With(slog.String("component", "stats_service")),
	}, nil
}

// ResolveLocation maps a timezone name to a location. An empty name yields
// the configured default zone.
func (s *Service) ResolveLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.defaultZone, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, domain.NewValidationError("timezone",
			fmt.Sprintf("unknown timezone %q", name), domain.ErrInvalidTimezone)
	}
	return loc, nil
}

// Today counts answers from local midnight of the current day in tz up to now.
func (s *Service) Today(ctx context.Context, tz string) (domain.Statistic, error) {
	loc, err := s.ResolveLocation(tz)
	if err != nil {
		return domain.Statistic{}, err
	}

	now := s.now().In(loc)
	start, err := domain.DateOf(now).StartIn(loc)
	if err != nil {
		return domain.Statistic{}, err
	}

	return s.count(ctx, start, now)
}

// Daily counts answers on the given local calendar date in tz. The date is
// validated before any storage access.
func (s *Service) Daily(ctx context.Context, year, month, day int, tz string) (domain.Statistic, error) {
	date, err := domain.NewDate(year, month, day)
	if err != nil {
		return domain.Statistic{}, err
	}
	loc, err := s.ResolveLocation(tz)
	if err != nil {
		return domain.Statistic{}, err
	}
	return s.daily(ctx, date, loc)
}

// RollingN returns the statistics of the n local days ending today, oldest
// first, together with their sum.
func (s *Service) RollingN(ctx context.Context, n int, tz string) (domain.RollingStatistics, error) {
	if n < 0 || n > s.maxWindow {
		return domain.RollingStatistics{}, domain.NewValidationError("n",
			fmt.Sprintf("must be between 0 and %d", s.maxWindow), domain.ErrInvalidWindow)
	}
	loc, err := s.ResolveLocation(tz)
	if err != nil {
		return domain.RollingStatistics{}, err
	}

	result := domain.RollingStatistics{Scores: make([]domain.DailyStatistic, 0, n)}
	today := domain.DateOf(s.now().In(loc))
	for i := n - 1; i >= 0; i-- {
		date := today.AddDays(-i)
		stat, err := s.daily(ctx, date, loc)
		if err != nil && !errors.Is(err, domain.ErrInvalidDate) {
			return domain.RollingStatistics{}, err
		}
		// A day the zone skipped has no answers; it still occupies its slot.
		result.Scores = append(result.Scores, domain.DailyStatistic{Date: date, Statistic: stat})
		result.Overall = result.Overall.Add(stat)
	}

	return result, nil
}

// History returns one entry per local day in tz with at least one answer,
// oldest first.
func (s *Service) History(ctx context.Context, tz string) ([]domain.DailyStatistic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	loc, err := s.ResolveLocation(tz)
	if err != nil {
		return nil, err
	}

	records, err := s.source.AnswerHistory(ctx)
	if err != nil {
		log.Error("failed to load answer history", slog.String("error", err.Error()))
		return nil, err
	}

	history := []domain.DailyStatistic{}
	for _, r := range records {
		date := domain.DateOf(r.AnsweredAt.In(loc))
		if n := len(history); n > 0 && history[n-1].Date == date {
			history[n-1].Statistic = history[n-1].Statistic.Record(r.Correct)
			continue
		}
		history = append(history, domain.DailyStatistic{
			Date:      date,
			Statistic: domain.Statistic{}.Record(r.Correct),
		})
	}

	return history, nil
}

func (s *Service) daily(ctx context.Context, date domain.Date, loc *time.Location) (domain.Statistic, error) {
	start, end, err := date.BoundsIn(loc)
	if err != nil {
		return domain.Statistic{}, err
	}
	return s.count(ctx, start, end)
}

func (s *Service) count(ctx context.Context, start, end time.Time) (domain.Statistic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stat, err := s.source.GetStatistics(ctx, &start, &end)
	if err != nil {
		log.Error("failed to count answers",
			slog.String("error", err.Error()),
			slog.Time("start", start),
			slog.Time("end", end))
		return domain.Statistic{}, err
	}
	return stat, nil
}
