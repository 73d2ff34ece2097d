package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipebook/internal/domain"
)

// RecipeFilter narrows recipe listings. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID int64
	TagSlugs []string
	Limit    int
	Offset   int
}

type RecipeRepository interface {
	// Create persists the recipe header, its ingredient lines and tag links
	// as one transaction.
	Create(ctx context.Context, rec *domain.Recipe, lines []domain.IngredientLine, tags []domain.Tag) error
	// Replace overwrites the header and swaps all lines and tag links for the
	// given set. Full replace, not a diff.
	Replace(ctx context.Context, rec *domain.Recipe, lines []domain.IngredientLine, tags []domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context, f RecipeFilter) ([]domain.Recipe, int64, error)
	Delete(ctx context.Context, id int64) error
	ExistsByAuthorAndName(ctx context.Context, authorID int64, name string) (bool, error)
	RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, rec *domain.Recipe, lines []domain.IngredientLine, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = rec.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		if len(tags) > 0 {
			if err := tx.Model(rec).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) Replace(ctx context.Context, rec *domain.Recipe, lines []domain.IngredientLine, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":         rec.Name,
			"image":        rec.Image,
			"text":         rec.Text,
			"cooking_time": rec.CookingTime,
		}
		if err := tx.Model(&domain.Recipe{}).Where("id = ?", rec.ID).Updates(updates).Error; err != nil {
			return err
		}

		// Replace-all semantics: old lines and tag links go away first.
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&domain.IngredientLine{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].RecipeID = rec.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return tx.Model(rec).Association("Tags").Replace(&tags)
	})
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var rec domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Lines.Ingredient").
		First(&rec, id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recipeRepository) List(ctx context.Context, f RecipeFilter) ([]domain.Recipe, int64, error) {
	// Resolve matching ids first; the tag join would otherwise multiply rows
	// and fight the preloads.
	base := r.db.WithContext(ctx).Model(&domain.Recipe{})
	if f.AuthorID > 0 {
		base = base.Where("recipes.author_id = ?", f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		base = base.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("recipes.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// GROUP BY, not DISTINCT: postgres refuses ORDER BY on a column outside
	// a DISTINCT select list, while grouping by the primary key keeps
	// published_at orderable.
	idQuery := base.Session(&gorm.Session{}).
		Group("recipes.id").
		Order("recipes.published_at DESC")
	if f.Limit > 0 {
		idQuery = idQuery.Limit(f.Limit).Offset(f.Offset)
	}
	var ids []int64
	if err := idQuery.Pluck("recipes.id", &ids).Error; err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return nil, total, nil
	}

	var recipes []domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Lines.Ingredient").
		Where("id IN ?", ids).
		Order("published_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Select(clause.Associations).Delete(&domain.Recipe{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsByAuthorAndName backs the duplicate-name check on creation.
// (author, name) also carries a unique index as the final arbiter.
func (r *recipeRepository) ExistsByAuthorAndName(ctx context.Context, authorID int64, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Where("author_id = ? AND name = ?", authorID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *recipeRepository) RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("published_at DESC").
		Limit(limit).
		Find(&recipes).Error
	return recipes, err
}
