package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebook/internal/domain"
)

type IngredientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
	List(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
	Create(ctx context.Context, ing *domain.Ingredient) error
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// List returns ingredients ordered by name, optionally narrowed by a
// case-insensitive name prefix (the frontend's autocomplete).
func (r *ingredientRepository) List(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	q := r.db.WithContext(ctx).Order("name")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *ingredientRepository) Create(ctx context.Context, ing *domain.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}
