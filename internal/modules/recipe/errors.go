package recipe

import "errors"

var (
	// header validation
	ErrInvalidName        = errors.New("recipe name is too short")
	ErrInvalidDescription = errors.New("recipe description is too short")
	ErrInvalidCookingTime = errors.New("cooking time is out of range")

	// ingredient-list validation
	ErrEmptyIngredientList = errors.New("recipe must contain at least one ingredient")
	ErrUnknownIngredient   = errors.New("unknown ingredient")
	ErrInvalidAmount       = errors.New("ingredient amount must be a positive integer")
	ErrDuplicateIngredient = errors.New("ingredients must not repeat")
	ErrUnknownTag          = errors.New("unknown tag")

	ErrDuplicateRecipeName = errors.New("you already saved a recipe with this name")
	ErrNotFound            = errors.New("recipe not found")
	ErrForbidden           = errors.New("you are not the author of this recipe")
)
