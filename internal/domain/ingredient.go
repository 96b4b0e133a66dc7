package domain

// Ingredient is an immutable catalog entry
type Ingredient struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Price         int    `json:"price"`
	Calories      int    `json:"calories"`
	Proteins      int    `json:"proteins"`
	Fat           int    `json:"fat"`
	Carbohydrates int    `json:"carbohydrates"`
	Image         string `json:"image"`
	ImageLarge    string `json:"image_large"`
	ImageMobile   string `json:"image_mobile"`
}

// IsBun reports whether the ingredient occupies the bun slot
func (i Ingredient) IsBun() bool {
	return i.Type == CategoryBun
}

// SelectedIngredient is a catalog ingredient placed in the builder.
// InstanceID is unique per placement because one ingredient can be added many times.
type SelectedIngredient struct {
	Ingredient
	InstanceID string `json:"id"`
	Count      int    `json:"count"`
}
