package question

import (
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	"github.com/gokatarajesh/trivia-api/pkg/http/params"
)

// Page is one page of a candidate set along with its totals.
type Page struct {
	Questions       []trivia.Question
	Total           int
	Number          int
	TotalPages      int
	Categories      map[int]string
	CurrentCategory *int
}

// CreateInput is the data needed for a new question. Nil fields are missing.
type CreateInput struct {
	Question   *string
	Answer     *string
	Category   *int
	Difficulty *int
}

// UpdateInput changes the non-nil fields of an existing question.
type UpdateInput struct {
	Question   *string
	Answer     *string
	Category   *int
	Difficulty *int
}

// createRequest is the POST /questions body. A non-empty SearchTerm turns
// the request into a search.
type createRequest struct {
	Question   *string         `json:"question"`
	Answer     *string         `json:"answer"`
	Category   *params.FlexInt `json:"category"`
	Difficulty *params.FlexInt `json:"difficulty"`
	SearchTerm *string         `json:"searchTerm"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type updateRequest struct {
	Question   *string         `json:"question"`
	Answer     *string         `json:"answer"`
	Category   *params.FlexInt `json:"category"`
	Difficulty *params.FlexInt `json:"difficulty"`
}

type pageResponse struct {
	Success         bool              `json:"success"`
	Questions       []trivia.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Page            int               `json:"page"`
	TotalPages      int               `json:"total_pages"`
	Categories      map[int]string    `json:"categories,omitempty"`
	CurrentCategory *int              `json:"current_category"`
}

type deleteResponse struct {
	pageResponse
	Deleted int `json:"deleted"`
}

type questionResponse struct {
	Success  bool            `json:"success"`
	Question trivia.Question `json:"question"`
}

type createResponse struct {
	Success    bool   `json:"success"`
	Created    int    `json:"created"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func newPageResponse(p Page) pageResponse {
	return pageResponse{
		Success:         true,
		Questions:       p.Questions,
		TotalQuestions:  p.Total,
		Page:            p.Number,
		TotalPages:      p.TotalPages,
		Categories:      p.Categories,
		CurrentCategory: p.CurrentCategory,
	}
}
