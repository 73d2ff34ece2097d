package favorite

import "errors"

var (
	ErrAlreadyExists  = errors.New("recipe is already in favorites")
	ErrNotFound       = errors.New("recipe is not in favorites")
	ErrRecipeNotFound = errors.New("recipe not found")
)
