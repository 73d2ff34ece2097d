package recipe

import (
	"time"

	"recipebook/internal/domain"
)

// IngredientEntry is one submitted {id, amount} pair. Amount is declared as
// int so non-integer JSON values are rejected at binding.
type IngredientEntry struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount"`
}

// RecipeRequest carries the recipe header plus tag ids and ingredient
// entries, for both create and replace.
type RecipeRequest struct {
	Name        string            `json:"name" binding:"required"`
	Text        string            `json:"text" binding:"required"`
	CookingTime int               `json:"cooking_time" binding:"required"`
	Image       string            `json:"image"`
	Tags        []int64           `json:"tags"`
	Ingredients []IngredientEntry `json:"ingredients"`
}

type AuthorResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type TagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type IngredientLineResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full representation with per-viewer flags.
type RecipeResponse struct {
	ID               int64                    `json:"id"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image,omitempty"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
	PublishedAt      time.Time                `json:"published_at"`
	Author           *AuthorResponse          `json:"author,omitempty"`
	Tags             []TagResponse            `json:"tags"`
	Ingredients      []IngredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
}

type RecipeListResponse struct {
	Recipes    []RecipeResponse `json:"recipes"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

func ToRecipeResponse(rec *domain.Recipe, isFavorited, isInCart, isSubscribed bool) RecipeResponse {
	resp := RecipeResponse{
		ID:               rec.ID,
		Name:             rec.Name,
		Image:            rec.Image,
		Text:             rec.Text,
		CookingTime:      rec.CookingTime,
		PublishedAt:      rec.PublishedAt,
		Tags:             make([]TagResponse, 0, len(rec.Tags)),
		Ingredients:      make([]IngredientLineResponse, 0, len(rec.Lines)),
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
	}

	if rec.Author != nil {
		resp.Author = &AuthorResponse{
			ID:           rec.Author.ID,
			Email:        rec.Author.Email,
			Username:     rec.Author.Username,
			FirstName:    rec.Author.FirstName,
			LastName:     rec.Author.LastName,
			IsSubscribed: isSubscribed,
		}
	}
	for _, t := range rec.Tags {
		resp.Tags = append(resp.Tags, TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug})
	}
	for _, line := range rec.Lines {
		lr := IngredientLineResponse{ID: line.IngredientID, Amount: line.Amount}
		if line.Ingredient != nil {
			lr.Name = line.Ingredient.Name
			lr.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		resp.Ingredients = append(resp.Ingredients, lr)
	}
	return resp
}
