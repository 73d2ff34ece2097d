package domain

import "time"

const (
	MinCookingTime = 1
	MaxCookingTime = 240
)

// Recipe is the aggregate root of the recipe domain. Ingredient lines and tag
// links live and die with it: create/replace writes them in one transaction,
// delete cascades through them.
type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:200;not null;uniqueIndex:idx_recipe_author_name"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index;uniqueIndex:idx_recipe_author_name"`
	Image       string    `json:"image,omitempty" gorm:"size:500"`
	Text        string    `json:"text"`
	CookingTime int       `json:"cooking_time"`
	PublishedAt time.Time `json:"published_at" gorm:"autoCreateTime;index"`

	Author *User            `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags   []Tag            `json:"tags,omitempty" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Lines  []IngredientLine `json:"lines,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Recipe) TableName() string { return "recipes" }

// IngredientLine ties one ingredient with its amount to a recipe.
// One row per (recipe, ingredient).
type IngredientLine struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	RecipeID     int64 `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_line_recipe_ingredient"`
	IngredientID int64 `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_line_recipe_ingredient"`
	Amount       int   `json:"amount" gorm:"not null;default:1"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (IngredientLine) TableName() string { return "ingredient_lines" }
