package favorite

import "recipebook/internal/domain"

// CompactRecipe is the reduced recipe view returned from toggle actions.
type CompactRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	CookingTime int    `json:"cooking_time"`
}

func ToCompactRecipe(rec *domain.Recipe) CompactRecipe {
	return CompactRecipe{
		ID:          rec.ID,
		Name:        rec.Name,
		Image:       rec.Image,
		CookingTime: rec.CookingTime,
	}
}
