package quiz

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/mathquiz/mathquiz/internal/domain"
	"github.com/mathquiz/mathquiz/internal/platform/logger"
	"github.com/mathquiz/mathquiz/internal/store"
)

// Options tunes a quiz service.
type Options struct {
	// LookbackDays bounds GetStatistics when no start is given.
	LookbackDays int
	// Now is the service clock. Defaults to time.Now.
	Now func() time.Time
}

// Verify interface compliance at compile time
var _ Service = (*quizServiceImpl)(nil)

type quizServiceImpl struct {
	questions store.QuestionStore
	db        *sql.DB
	generator Generator
	lookback  time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewQuizService creates a quiz service. db is the handle transactions are
// started on; questions must be backed by the same database.
func NewQuizService(
	questions store.QuestionStore,
	db *sql.DB,
	generator Generator,
	opts Options,
	logger *slog.Logger,
) Service {
	if questions == nil {
		panic("questions cannot be nil")
	}
	if db == nil {
		panic("db cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}

	if opts.LookbackDays <= 0 {
		opts.LookbackDays = DefaultLookbackDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &quizServiceImpl{
		questions: questions,
		db:        db,
		generator: generator,
		lookback:  time.Duration(opts.LookbackDays) * 24 * time.Hour,
		now:       opts.Now,
		logger:    logger.With(slog.String("component", "quiz_service")),
	}
}

// NewQuestion implements Service.NewQuestion.
func (s *quizServiceImpl) NewQuestion(ctx context.Context) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var question *domain.Question
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		questions := s.questions.WithTx(tx)

		open, err := questions.GetRandomOpen(ctx)
		if err == nil {
			question = open
			return nil
		}
		if !errors.Is(err, store.ErrNoOpenQuestion) {
			return err
		}

		problem, err := s.generator.Generate()
		if err != nil {
			return err
		}

		q, err := domain.NewQuestion(problem, s.now())
		if err != nil {
			return err
		}
		if err := questions.Create(ctx, q); err != nil {
			return err
		}

		log.Info("generated new question",
			slog.Int64("question_id", q.ID),
			slog.String("expression", q.Expression))
		question = q
		return nil
	})
	if err != nil {
		log.Error("failed to provide question", slog.String("error", err.Error()))
		return nil, NewServiceError("new_question", "failed to provide question", err)
	}

	return question, nil
}

// AnswerQuestion implements Service.AnswerQuestion.
func (s *quizServiceImpl) AnswerQuestion(ctx context.Context, id int64, answer int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id <= 0 {
		return false, domain.NewValidationError("id", "must be positive", domain.ErrInvalidID)
	}

	var correct bool
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		correct, err = s.questions.WithTx(tx).RecordAnswer(ctx, id, answer, s.now())
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrQuestionNotFound), errors.Is(err, store.ErrAlreadyAnswered):
			log.Debug("answer rejected",
				slog.Int64("question_id", id),
				slog.String("reason", err.Error()))
			return false, err
		default:
			log.Error("failed to record answer",
				slog.String("error", err.Error()),
				slog.Int64("question_id", id))
			return false, NewServiceError("answer_question", "failed to record answer", err)
		}
	}

	log.Info("answer recorded",
		slog.Int64("question_id", id),
		slog.Bool("correct", correct))
	return correct, nil
}

// MistakeCollection implements Service.MistakeCollection.
func (s *quizServiceImpl) MistakeCollection(ctx context.Context) ([]domain.Mistake, error) {
	mistakes, err := s.questions.ListMistakes(ctx)
	if err != nil {
		return nil, NewServiceError("mistake_collection", "failed to list mistakes", err)
	}
	return mistakes, nil
}

// GetStatistics implements Service.GetStatistics.
func (s *quizServiceImpl) GetStatistics(ctx context.Context, start, end *time.Time) (domain.Statistic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now()
	from, to := now.Add(-s.lookback), now
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}

	if from.After(to) {
		log.Debug("inverted statistics range",
			slog.Time("start", from),
			slog.Time("end", to))
		return domain.Statistic{}, nil
	}

	stat, err := s.questions.CountAnswered(ctx, from, to)
	if err != nil {
		return domain.Statistic{}, NewServiceError("get_statistics", "failed to count answers", err)
	}
	return stat, nil
}

// AnswerHistory implements Service.AnswerHistory.
func (s *quizServiceImpl) AnswerHistory(ctx context.Context) ([]domain.AnswerRecord, error) {
	records, err := s.questions.ListAnsweredBetween(ctx, time.Unix(0, 0).UTC(), s.now())
	if err != nil {
		return nil, NewServiceError("answer_history", "failed to list answers", err)
	}
	return records, nil
}
