package favorite

import (
	"context"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type RecipeGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
}

type Repo interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
}

type Service struct {
	favorites Repo
	recipes   RecipeGetter
}

func NewService(favorites Repo, recipes RecipeGetter) *Service {
	return &Service{favorites: favorites, recipes: recipes}
}

// Add favorites the recipe for the user. Concurrent duplicate requests are
// settled by the unique index: the loser gets ErrAlreadyExists, never a raw
// storage error.
func (s *Service) Add(ctx context.Context, userID, recipeID int64) (*CompactRecipe, error) {
	rec, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.favorites.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	if err := s.favorites.Add(ctx, userID, recipeID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	resp := ToCompactRecipe(rec)
	return &resp, nil
}

func (s *Service) Remove(ctx context.Context, userID, recipeID int64) error {
	if err := s.favorites.Remove(ctx, userID, recipeID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]CompactRecipe, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]CompactRecipe, 0, len(favorites))
	for _, f := range favorites {
		if f.Recipe == nil {
			continue
		}
		out = append(out, ToCompactRecipe(f.Recipe))
	}
	return out, nil
}
