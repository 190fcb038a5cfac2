package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/trivia-api/internal/db/store"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]store.Question, error)
	SearchQuestions(ctx context.Context, pattern string) ([]store.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]store.Question, error)
	GetQuestion(ctx context.Context, id int32) (store.Question, error)
	InsertQuestion(ctx context.Context, arg store.InsertQuestionParams) (store.Question, error)
	UpdateQuestion(ctx context.Context, arg store.UpdateQuestionParams) (store.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository turns question rows into candidate sets ordered by id.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question that has text.
func (r *QuestionRepository) List(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, storeError("list questions", err)
	}
	return toQuestions(rows), nil
}

// Search returns questions whose text contains term, case-insensitively.
// LIKE wildcards in term are matched literally.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]trivia.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, containsPattern(term))
	if err != nil {
		return nil, storeError("search questions", err)
	}
	return toQuestions(rows), nil
}

// ListByCategory returns the questions of one category. An unknown category
// simply has no questions.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	id, ok := toInt32(categoryID)
	if !ok {
		return []trivia.Question{}, nil
	}
	rows, err := r.store.ListQuestionsByCategory(ctx, id)
	if err != nil {
		return nil, storeError("list questions by category", err)
	}
	return toQuestions(rows), nil
}

func (r *QuestionRepository) Get(ctx context.Context, id int) (trivia.Question, error) {
	key, ok := toInt32(id)
	if !ok {
		return trivia.Question{}, fmt.Errorf("get question %d: %w", id, trivia.ErrNotFound)
	}
	row, err := r.store.GetQuestion(ctx, key)
	if err != nil {
		return trivia.Question{}, storeError(fmt.Sprintf("get question %d", id), err)
	}
	return toQuestion(row), nil
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, q trivia.Question) (trivia.Question, error) {
	category, ok := toInt32(q.Category)
	if !ok {
		return trivia.Question{}, fmt.Errorf("insert question: category %d: %w", q.Category, trivia.ErrInvalidInput)
	}
	difficulty, ok := toInt32(q.Difficulty)
	if !ok {
		return trivia.Question{}, fmt.Errorf("insert question: difficulty %d: %w", q.Difficulty, trivia.ErrInvalidInput)
	}
	row, err := r.store.InsertQuestion(ctx, store.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   category,
		Difficulty: difficulty,
	})
	if err != nil {
		return trivia.Question{}, storeError("insert question", err)
	}
	return toQuestion(row), nil
}

// QuestionPatch carries the fields to change; nil means keep.
type QuestionPatch struct {
	Question   *string
	Answer     *string
	Category   *int
	Difficulty *int
}

// Update applies patch to question id.
func (r *QuestionRepository) Update(ctx context.Context, id int, patch QuestionPatch) (trivia.Question, error) {
	key, ok := toInt32(id)
	if !ok {
		return trivia.Question{}, fmt.Errorf("update question %d: %w", id, trivia.ErrNotFound)
	}
	params := store.UpdateQuestionParams{ID: key}
	if patch.Question != nil {
		params.Question = pgtype.Text{String: *patch.Question, Valid: true}
	}
	if patch.Answer != nil {
		params.Answer = pgtype.Text{String: *patch.Answer, Valid: true}
	}
	if patch.Category != nil {
		category, ok := toInt32(*patch.Category)
		if !ok {
			return trivia.Question{}, fmt.Errorf("update question %d: category %d: %w", id, *patch.Category, trivia.ErrInvalidInput)
		}
		params.Category = pgtype.Int4{Int32: category, Valid: true}
	}
	if patch.Difficulty != nil {
		difficulty, ok := toInt32(*patch.Difficulty)
		if !ok {
			return trivia.Question{}, fmt.Errorf("update question %d: difficulty %d: %w", id, *patch.Difficulty, trivia.ErrInvalidInput)
		}
		params.Difficulty = pgtype.Int4{Int32: difficulty, Valid: true}
	}
	row, err := r.store.UpdateQuestion(ctx, params)
	if err != nil {
		return trivia.Question{}, storeError(fmt.Sprintf("update question %d", id), err)
	}
	return toQuestion(row), nil
}

// Delete removes question id, reporting trivia.ErrNotFound if it is absent.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	key, ok := toInt32(id)
	if !ok {
		return fmt.Errorf("delete question %d: %w", id, trivia.ErrNotFound)
	}
	n, err := r.store.DeleteQuestion(ctx, key)
	if err != nil {
		return storeError(fmt.Sprintf("delete question %d", id), err)
	}
	if n == 0 {
		return fmt.Errorf("delete question %d: %w", id, trivia.ErrNotFound)
	}
	return nil
}

// toInt32 narrows an id to the width of the int32 columns. Values that do
// not fit cannot name a row.
func toInt32(v int) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}

func toQuestions(rows []store.Question) []trivia.Question {
	out := make([]trivia.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}

func toQuestion(row store.Question) trivia.Question {
	return trivia.Question{
		ID:         int(row.ID),
		Question:   row.Question.String,
		Answer:     row.Answer.String,
		Category:   int(row.Category.Int32),
		Difficulty: int(row.Difficulty.Int32),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Postgres error codes we translate.
const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// storeError classifies a store failure: missing rows become ErrNotFound,
// constraint failures ErrInvalidInput, everything else ErrUnprocessable.
func storeError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, trivia.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgCheckViolation, pgNotNullViolation:
			return fmt.Errorf("%s: %w: %s", op, trivia.ErrInvalidInput, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w: %v", op, trivia.ErrUnprocessable, err)
}
