package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/store"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]store.Category, error)
	CountQuestionsByCategory(ctx context.Context) ([]store.CategoryCount, error)
}

// CategoryRepository reads the seeded category table.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) List(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	out := make([]trivia.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, trivia.Category{ID: int(row.ID), Type: row.Type})
	}
	return out, nil
}

// CategoryCount is the number of questions filed under a category.
type CategoryCount struct {
	Category trivia.Category
	Count    int
}

// Counts reports question totals for every category, including empty ones.
func (r *CategoryRepository) Counts(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.store.CountQuestionsByCategory(ctx)
	if err != nil {
		return nil, storeError("count questions by category", err)
	}
	out := make([]CategoryCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, CategoryCount{
			Category: trivia.Category{ID: int(row.CategoryID), Type: row.Type},
			Count:    int(row.QuestionCount),
		})
	}
	return out, nil
}
