package catalog

import (
	"context"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type TagReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
}

type IngredientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
	List(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
}

// Service serves the fixed reference data behind recipes: tags and the
// ingredient dictionary. Both are read-only over the API; seeding owns writes.
type Service struct {
	tags        TagReader
	ingredients IngredientReader
}

func NewService(tags TagReader, ingredients IngredientReader) *Service {
	return &Service{tags: tags, ingredients: ingredients}
}

func (s *Service) ListTags(ctx context.Context) ([]TagResponse, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, ToTagResponse(&tags[i]))
	}
	return out, nil
}

func (s *Service) GetTag(ctx context.Context, id int64) (*TagResponse, error) {
	t, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	resp := ToTagResponse(t)
	return &resp, nil
}

func (s *Service) ListIngredients(ctx context.Context, namePrefix string) ([]IngredientResponse, error) {
	ings, err := s.ingredients.List(ctx, namePrefix)
	if err != nil {
		return nil, err
	}
	out := make([]IngredientResponse, 0, len(ings))
	for i := range ings {
		out = append(out, ToIngredientResponse(&ings[i]))
	}
	return out, nil
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*IngredientResponse, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	resp := ToIngredientResponse(ing)
	return &resp, nil
}
