package subscription

import "recipebook/internal/domain"

// recentRecipeLimit caps how many of the author's recipes ride along with
// the subscription response.
const recentRecipeLimit = 5

type CompactRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	CookingTime int    `json:"cooking_time"`
}

// AuthorProfile is the followed user's public profile plus their most
// recent recipes.
type AuthorProfile struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	Username     string          `json:"username"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	IsSubscribed bool            `json:"is_subscribed"`
	Recipes      []CompactRecipe `json:"recipes"`
}

func ToAuthorProfile(u *domain.User, recipes []domain.Recipe) AuthorProfile {
	p := AuthorProfile{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: true,
		Recipes:      make([]CompactRecipe, 0, len(recipes)),
	}
	for _, rec := range recipes {
		p.Recipes = append(p.Recipes, CompactRecipe{
			ID:          rec.ID,
			Name:        rec.Name,
			Image:       rec.Image,
			CookingTime: rec.CookingTime,
		})
	}
	return p
}
