package domain

// Ingredient is a canonical ingredient record. Recipes reference it through
// IngredientLine and never duplicate name/unit data.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:150;uniqueIndex;not null"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:150;not null"`
}

func (Ingredient) TableName() string { return "ingredients" }
