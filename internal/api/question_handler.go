package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mathquiz/mathquiz/internal/api/shared"
	"github.com/mathquiz/mathquiz/internal/domain"
	"github.com/mathquiz/mathquiz/internal/platform/logger"
	"github.com/mathquiz/mathquiz/internal/service/quiz"
)

// QuestionResponse is returned by POST /api/new-question.
type QuestionResponse struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
}

// SubmitAnswerRequest represents the request body for submitting an answer.
type SubmitAnswerRequest struct {
	ID     int64  `json:"id"     validate:"required,gt=0"`
	Answer *int64 `json:"answer" validate:"required"`
}

// SubmitAnswerResponse reports whether the submitted answer was correct.
type SubmitAnswerResponse struct {
	ID      int64 `json:"id"`
	Correct bool  `json:"correct"`
}

// MistakeResponse is one entry of GET /api/mistake-collection.
type MistakeResponse struct {
	ID             int64     `json:"id"`
	Question       string    `json:"question"`
	Answer         int64     `json:"answer"`
	ExpectedAnswer int64     `json:"expected_answer"`
	AnsweredAt     time.Time `json:"answered_at"`
}

// QuestionHandler serves question creation, answering and mistake review.
type QuestionHandler struct {
	quiz   quiz.Service
	logger *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(quizService quiz.Service, logger *slog.Logger) *QuestionHandler {
	if quizService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("quizService cannot be nil for QuestionHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &QuestionHandler{
		quiz:   quizService,
		logger: logger.With(slog.String("component", "question_handler")),
	}
}

// NewQuestion handles POST /api/new-question.
func (h *QuestionHandler) NewQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	q, err := h.quiz.NewQuestion(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create question")
		return
	}

	log.Debug("question served", slog.Int64("question_id", q.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, QuestionResponse{
		ID:       q.ID,
		Question: q.Expression,
	})
}

// SubmitAnswer handles POST /api/submit-answer.
func (h *QuestionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	correct, err := h.quiz.AnswerQuestion(r.Context(), req.ID, *req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to answer the question")
		return
	}

	log.Debug("answer recorded",
		slog.Int64("question_id", req.ID),
		slog.Bool("correct", correct))
	shared.RespondWithJSON(w, r, http.StatusOK, SubmitAnswerResponse{ID: req.ID, Correct: correct})
}

// Statistics handles GET /api/statistics?start=&end= with RFC 3339 bounds.
func (h *QuestionHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	start, err := parseTimeParam(r, "start")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	end, err := parseTimeParam(r, "end")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	stat, err := h.quiz.GetStatistics(r.Context(), start, end)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stat)
}

// MistakeCollection handles GET /api/mistake-collection.
func (h *QuestionHandler) MistakeCollection(w http.ResponseWriter, r *http.Request) {
	mistakes, err := h.quiz.MistakeCollection(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get mistake collection")
		return
	}

	resp := make([]MistakeResponse, 0, len(mistakes))
	for _, m := range mistakes {
		resp = append(resp, mistakeToResponse(m))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func mistakeToResponse(m domain.Mistake) MistakeResponse {
	return MistakeResponse{
		ID:             m.ID,
		Question:       m.Expression,
		Answer:         m.UserAnswer,
		ExpectedAnswer: m.ExpectedAnswer,
		AnsweredAt:     m.AnsweredAt,
	}
}
