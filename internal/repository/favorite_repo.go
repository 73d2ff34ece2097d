package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebook/internal/domain"
)

type FavoriteRepository interface {
	// Add inserts the (user, recipe) pair. A unique-constraint breach from a
	// concurrent duplicate comes back untranslated; see IsUniqueViolation.
	Add(ctx context.Context, userID, recipeID int64) error
	// Remove deletes the pair, gorm.ErrRecordNotFound when it was absent.
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
	// RecipeIDsFor filters candidates down to those the user favorited,
	// for per-viewer flags on recipe listings.
	RecipeIDsFor(ctx context.Context, userID int64, candidates []int64) (map[int64]bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	return r.db.WithContext(ctx).Create(&domain.Favorite{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Recipe").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *favoriteRepository) RecipeIDsFor(ctx context.Context, userID int64, candidates []int64) (map[int64]bool, error) {
	marked := make(map[int64]bool, len(candidates))
	if userID == 0 || len(candidates) == 0 {
		return marked, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
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
