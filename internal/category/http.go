package category

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for categories.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "category_http").Logger(),
	}
}

type listResponse struct {
	Success    bool           `json:"success"`
	Categories map[int]string `json:"categories"`
}

// List handles GET /categories
func (h *HTTPHandlers) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.All(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("list categories failed")
		httperrors.RespondFromError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(listResponse{Success: true, Categories: categories}); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
