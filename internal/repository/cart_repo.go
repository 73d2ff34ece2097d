package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebook/internal/domain"
)

// IngredientTotal is one aggregated row of a user's shopping list.
type IngredientTotal struct {
	Name            string
	MeasurementUnit string
	Total           int
}

type CartRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CartEntry, error)
	RecipeIDsFor(ctx context.Context, userID int64, candidates []int64) (map[int64]bool, error)
	// AggregateIngredients sums line amounts across every carted recipe,
	// grouped by (ingredient name, measurement unit), ordered by name.
	AggregateIngredients(ctx context.Context, userID int64) ([]IngredientTotal, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Add(ctx context.Context, userID, recipeID int64) error {
	return r.db.WithContext(ctx).Create(&domain.CartEntry{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *cartRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.CartEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartEntry, error) {
	var out []domain.CartEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Recipe").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *cartRepository) RecipeIDsFor(ctx context.Context, userID int64, candidates []int64) (map[int64]bool, error) {
	marked := make(map[int64]bool, len(candidates))
	if userID == 0 || len(candidates) == 0 {
		return marked, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Where("user_id = ? AND recipe_id IN ?", userID, candidates).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		marked[id] = true
	}
	return marked, nil
}

func (r *cartRepository) AggregateIngredients(ctx context.Context, userID int64) ([]IngredientTotal, error) {
	var totals []IngredientTotal
	err := r.db.WithContext(ctx).
		Table("ingredient_lines").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_lines.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_lines.ingredient_id").
		Joins("JOIN cart_entries ON cart_entries.recipe_id = ingredient_lines.recipe_id").
		Where("cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&totals).Error
	return totals, err
}
