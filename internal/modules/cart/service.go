package cart

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
	ListByUser(ctx context.Context, userID int64) ([]domain.CartEntry, error)
}

type Service struct {
	cart    Repo
	recipes RecipeGetter
}

func NewService(cart Repo, recipes RecipeGetter) *Service {
	return &Service{cart: cart, recipes: recipes}
}

// Add puts the recipe into the user's cart. The unique index settles
// concurrent duplicates; the loser gets ErrAlreadyExists.
func (s *Service) Add(ctx context.Context, userID, recipeID int64) (*CompactRecipe, error) {
	rec, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.cart.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	if err := s.cart.Add(ctx, userID, recipeID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	resp := ToCompactRecipe(rec)
	return &resp, nil
}

func (s *Service) Remove(ctx context.Context, userID, recipeID int64) error {
	if err := s.cart.Remove(ctx, userID, recipeID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]CompactRecipe, error) {
	entries, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]CompactRecipe, 0, len(entries))
	for _, e := range entries {
		if e.Recipe == nil {
			continue
		}
		out = append(out, ToCompactRecipe(e.Recipe))
	}
	return out, nil
}
