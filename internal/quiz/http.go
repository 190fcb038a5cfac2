package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/params"
)

// HTTPHandlers provides the quiz endpoint.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "quiz_http").Logger(),
	}
}

type quizCategory struct {
	ID   params.FlexInt `json:"id"`
	Type string         `json:"type"`
}

type drawRequest struct {
	PreviousQuestions []params.FlexInt `json:"previous_questions"`
	QuizCategory      *quizCategory    `json:"quiz_category"`
	SessionID         string           `json:"session_id"`
	Session           bool             `json:"session"`
	Reset             bool             `json:"reset"`
}

type drawResponse struct {
	Success   bool             `json:"success"`
	Question  *trivia.Question `json:"question"`
	SessionID string           `json:"session_id,omitempty"`
}

// Draw handles POST /quizzes
func (h *HTTPHandlers) Draw(w http.ResponseWriter, r *http.Request) {
	var req drawRequest
	if err := params.DecodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	in := DrawInput{
		PreviousIDs: make([]int, 0, len(req.PreviousQuestions)),
		SessionID:   req.SessionID,
		NewSession:  req.Session,
		Reset:       req.Reset,
	}
	for _, id := range req.PreviousQuestions {
		in.PreviousIDs = append(in.PreviousIDs, int(id))
	}
	if req.QuizCategory != nil {
		in.CategoryID = int(req.QuizCategory.ID)
	}

	result, err := h.service.Draw(r.Context(), in)
	if err != nil {
		if !errors.Is(err, trivia.ErrInvalidInput) {
			logging.FromContext(r.Context()).Error().Err(err).Msg("quiz draw failed")
		}
		httperrors.RespondFromError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(drawResponse{
		Success:   true,
		Question:  result.Question,
		SessionID: result.SessionID,
	}); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
