package category

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type categoryRepository interface {
	List(ctx context.Context) ([]trivia.Category, error)
}

// Service exposes the seeded category set.
type Service struct {
	repo categoryRepository
}

func NewService(repo categoryRepository) *Service {
	return &Service{repo: repo}
}

// All returns the categories keyed by id. An empty table is not an error.
func (s *Service) All(ctx context.Context) (map[int]string, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return trivia.CategoryMap(categories), nil
}
