package question

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

// HTTPHandlers provides REST endpoints for questions.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for question endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "question_http").Logger(),
	}
}

// List handles GET /questions?page=N
func (h *HTTPHandlers) List(w http.ResponseWriter, r *http.Request) {
	page, err := params.Page(r)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPage, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newPageResponse(result))
}

// Get handles GET /questions/{id}
func (h *HTTPHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := params.PathInt(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.failQuestion(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, questionResponse{Success: true, Question: q})
}

// Create handles POST /questions. A body carrying a non-empty searchTerm is
// a search; anything else creates a question.
func (h *HTTPHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := params.DecodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if req.SearchTerm != nil && *req.SearchTerm != "" {
		h.search(w, r, *req.SearchTerm)
		return
	}

	created, err := h.service.Create(r.Context(), CreateInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category.Ptr(),
		Difficulty: req.Difficulty.Ptr(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info().Int("question_id", created.ID).Msg("question created")
	h.respondJSON(w, http.StatusCreated, createResponse{
		Success:    true,
		Created:    created.ID,
		Question:   created.Question,
		Answer:     created.Answer,
		Category:   created.Category,
		Difficulty: created.Difficulty,
	})
}

// Search handles POST /questions/search
func (h *HTTPHandlers) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := params.DecodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	h.search(w, r, req.SearchTerm)
}

func (h *HTTPHandlers) search(w http.ResponseWriter, r *http.Request, term string) {
	page, err := params.Page(r)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPage, err.Error())
		return
	}

	result, err := h.service.Search(r.Context(), term, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newPageResponse(result))
}

// Update handles PATCH /questions/{id}
func (h *HTTPHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := params.PathInt(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req updateRequest
	if err := params.DecodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	updated, err := h.service.Update(r.Context(), id, UpdateInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category.Ptr(),
		Difficulty: req.Difficulty.Ptr(),
	})
	if err != nil {
		h.failQuestion(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, questionResponse{Success: true, Question: updated})
}

// Delete handles DELETE /questions/{id}?page=N
func (h *HTTPHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := params.PathInt(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := params.Page(r)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPage, err.Error())
		return
	}

	result, err := h.service.Delete(r.Context(), id, page)
	if err != nil {
		h.failQuestion(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info().Int("question_id", id).Msg("question deleted")
	h.respondJSON(w, http.StatusOK, deleteResponse{
		pageResponse: newPageResponse(result),
		Deleted:      id,
	})
}

// ByCategory handles GET /categories/{id}/questions?page=N
func (h *HTTPHandlers) ByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := params.PathInt(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := params.Page(r)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPage, err.Error())
		return
	}

	result, err := h.service.ByCategory(r.Context(), categoryID, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newPageResponse(result))
}

// failQuestion is fail for routes addressing a single question by id.
func (h *HTTPHandlers) failQuestion(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, trivia.ErrNotFound) {
		httperrors.RespondError(w, http.StatusNotFound, httperrors.ErrCodeQuestionNotFound, "")
		return
	}
	h.fail(w, r, err)
}

func (h *HTTPHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		code := httperrors.ErrCodeValidationFailed
		if fieldErr.Missing {
			code = httperrors.ErrCodeMissingField
		}
		httperrors.RespondValidationError(w, code, fieldErr.Error(), fieldErr.Field)
		return
	}
	if httperrors.StatusFor(err) == http.StatusUnprocessableEntity {
		logging.FromContext(r.Context()).Error().Err(err).Msg("question request failed")
	}
	httperrors.RespondFromError(w, err)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
