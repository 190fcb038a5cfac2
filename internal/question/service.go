package question

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

type questionRepository interface {
	List(ctx context.Context) ([]trivia.Question, error)
	Search(ctx context.Context, term string) ([]trivia.Question, error)
	ListByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error)
	Get(ctx context.Context, id int) (trivia.Question, error)
	Insert(ctx context.Context, q trivia.Question) (trivia.Question, error)
	Update(ctx context.Context, id int, patch repository.QuestionPatch) (trivia.Question, error)
	Delete(ctx context.Context, id int) error
}

type categoryLister interface {
	List(ctx context.Context) ([]trivia.Category, error)
}

// EventPublisher fans question changes out to live subscribers.
type EventPublisher interface {
	Publish(msgType string, payload interface{}) error
}

// Service answers question listings, searches and edits.
type Service struct {
	questions  questionRepository
	categories categoryLister
	events     EventPublisher
	pageSize   int
	logger     zerolog.Logger
}

type ServiceOptions struct {
	PageSize int
}

func NewService(questions questionRepository, categories categoryLister, events EventPublisher, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = trivia.PageSize
	}
	return &Service{
		questions:  questions,
		categories: categories,
		events:     events,
		pageSize:   opts.PageSize,
		logger:     logger.With().Str("component", "question_service").Logger(),
	}
}

// List pages through every question and attaches the category map. An
// empty page is ErrNotFound.
func (s *Service) List(ctx context.Context, page int) (Page, error) {
	candidates, err := s.questions.List(ctx)
	if err != nil {
		return Page{}, err
	}
	result := s.paginate(page, candidates)
	if len(result.Questions) == 0 {
		return Page{}, fmt.Errorf("list questions page %d: %w", page, trivia.ErrNotFound)
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return Page{}, err
	}
	result.Categories = trivia.CategoryMap(categories)
	return result, nil
}

// Search pages through questions containing term. No matches is a valid,
// empty result.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	candidates, err := s.questions.Search(ctx, term)
	if err != nil {
		return Page{}, err
	}
	return s.paginate(page, candidates), nil
}

// ByCategory pages through one category. An empty page, including one for
// a category that does not exist, is ErrNotFound.
func (s *Service) ByCategory(ctx context.Context, categoryID, page int) (Page, error) {
	candidates, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return Page{}, err
	}
	result := s.paginate(page, candidates)
	if len(result.Questions) == 0 {
		return Page{}, fmt.Errorf("category %d page %d: %w", categoryID, page, trivia.ErrNotFound)
	}
	result.CurrentCategory = &categoryID
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int) (trivia.Question, error) {
	return s.questions.Get(ctx, id)
}

// Create validates and stores a new question.
func (s *Service) Create(ctx context.Context, in CreateInput) (trivia.Question, error) {
	if in.Question == nil || strings.TrimSpace(*in.Question) == "" {
		return trivia.Question{}, requiredField("question")
	}
	if in.Answer == nil || strings.TrimSpace(*in.Answer) == "" {
		return trivia.Question{}, requiredField("answer")
	}
	if in.Category == nil {
		return trivia.Question{}, requiredField("category")
	}
	if in.Difficulty == nil {
		return trivia.Question{}, requiredField("difficulty")
	}
	if err := validateCategory(*in.Category); err != nil {
		return trivia.Question{}, err
	}
	if err := validateDifficulty(*in.Difficulty); err != nil {
		return trivia.Question{}, err
	}

	created, err := s.questions.Insert(ctx, trivia.Question{
		Question:   strings.TrimSpace(*in.Question),
		Answer:     strings.TrimSpace(*in.Answer),
		Category:   *in.Category,
		Difficulty: *in.Difficulty,
	})
	if err != nil {
		return trivia.Question{}, err
	}
	s.publish(ws.TypeQuestionCreated, created.ID, &created)
	return created, nil
}

// Update changes the supplied fields of question id.
func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (trivia.Question, error) {
	patch := repository.QuestionPatch{
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}
	if in.Question != nil {
		text := strings.TrimSpace(*in.Question)
		if text == "" {
			return trivia.Question{}, fieldError("question", "must not be empty")
		}
		patch.Question = &text
	}
	if in.Answer != nil {
		text := strings.TrimSpace(*in.Answer)
		if text == "" {
			return trivia.Question{}, fieldError("answer", "must not be empty")
		}
		patch.Answer = &text
	}
	if in.Category != nil {
		if err := validateCategory(*in.Category); err != nil {
			return trivia.Question{}, err
		}
	}
	if in.Difficulty != nil {
		if err := validateDifficulty(*in.Difficulty); err != nil {
			return trivia.Question{}, err
		}
	}
	if patch == (repository.QuestionPatch{}) {
		return trivia.Question{}, fmt.Errorf("update question %d: nothing to change: %w", id, trivia.ErrInvalidInput)
	}

	updated, err := s.questions.Update(ctx, id, patch)
	if err != nil {
		return trivia.Question{}, err
	}
	s.publish(ws.TypeQuestionUpdated, updated.ID, &updated)
	return updated, nil
}

// Delete removes question id and returns the requested page of what is left.
// Unlike List, an empty remaining page is not an error.
func (s *Service) Delete(ctx context.Context, id, page int) (Page, error) {
	if err := s.questions.Delete(ctx, id); err != nil {
		return Page{}, err
	}
	remaining, err := s.questions.List(ctx)
	if err != nil {
		return Page{}, err
	}
	s.publishTotal(ws.TypeQuestionDeleted, id, len(remaining))
	return s.paginate(page, remaining), nil
}

func (s *Service) paginate(page int, candidates []trivia.Question) Page {
	return Page{
		Questions:  trivia.Paginate(page, s.pageSize, candidates),
		Total:      len(candidates),
		Number:     page,
		TotalPages: trivia.PageCount(len(candidates), s.pageSize),
	}
}

func (s *Service) publish(msgType string, id int, q *trivia.Question) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(msgType, ws.QuestionEventPayload{QuestionID: id, Question: q}); err != nil {
		s.logger.Warn().Err(err).Str("event", msgType).Int("question_id", id).Msg("publish question event failed")
	}
}

func (s *Service) publishTotal(msgType string, id, total int) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(msgType, ws.QuestionEventPayload{QuestionID: id, Total: total}); err != nil {
		s.logger.Warn().Err(err).Str("event", msgType).Int("question_id", id).Msg("publish question event failed")
	}
}

// FieldError is an invalid-input error tied to one request field.
type FieldError struct {
	Field  string
	Reason string
	// Missing is set when the field was absent rather than malformed.
	Missing bool
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return trivia.ErrInvalidInput
}

func fieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

func requiredField(field string) error {
	return &FieldError{Field: field, Reason: "is required", Missing: true}
}

func validateCategory(id int) error {
	if id <= 0 {
		return fieldError("category", "must be a positive id")
	}
	return nil
}

func validateDifficulty(d int) error {
	if d < trivia.MinDifficulty || d > trivia.MaxDifficulty {
		return fieldError("difficulty", fmt.Sprintf("must be between %d and %d", trivia.MinDifficulty, trivia.MaxDifficulty))
	}
	return nil
}
