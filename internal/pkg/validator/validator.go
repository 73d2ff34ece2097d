package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs the `validate` struct tags and flattens any failures into a
// field -> rule map, ready for a 422 response. Returns nil when the value
// passes.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
