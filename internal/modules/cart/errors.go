package cart

import "errors"

var (
	ErrAlreadyExists  = errors.New("recipe is already in the shopping cart")
	ErrNotFound       = errors.New("recipe is not in the shopping cart")
	ErrRecipeNotFound = errors.New("recipe not found")
)
