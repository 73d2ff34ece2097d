package recipe

import (
	"context"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type RecipeRepo interface {
	Create(ctx context.Context, rec *domain.Recipe, lines []domain.IngredientLine, tags []domain.Tag) error
	Replace(ctx context.Context, rec *domain.Recipe, lines []domain.IngredientLine, tags []domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context, f repository.RecipeFilter) ([]domain.Recipe, int64, error)
	Delete(ctx context.Context, id int64) error
	ExistsByAuthorAndName(ctx context.Context, authorID int64, name string) (bool, error)
}

type IngredientRepo interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
}

type TagRepo interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
}

// RelationMarks answers "which of these recipes has the viewer marked" for a
// favorite or cart relation.
type RelationMarks interface {
	RecipeIDsFor(ctx context.Context, userID int64, candidates []int64) (map[int64]bool, error)
}

// AuthorMarks answers "which of these authors does the viewer follow", for
// the is_subscribed flag on recipe authors.
type AuthorMarks interface {
	AuthorIDsFor(ctx context.Context, followerID int64, candidates []int64) (map[int64]bool, error)
}

// ImageStore persists an inline base64 image payload and returns a stable
// opaque reference.
type ImageStore interface {
	SaveBase64(payload string) (string, error)
}
