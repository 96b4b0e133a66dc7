package stubapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/validation"
)

//go:embed data/ingredients.json
var defaultIngredients []byte

// LoadIngredients reads the ingredient catalog from path, or the built-in
// catalog when path is empty. The data must match the ingredients schema.
func LoadIngredients(path string, v validation.SchemaValidator) ([]domain.Ingredient, error) {
	data := defaultIngredients
	if path != "" {
		if err := v.ValidateFile(path, validation.SchemaIngredients); err != nil {
			return nil, fmt.Errorf("ingredient seed %s: %w", path, err)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read ingredient seed: %w", err)
		}
		data = raw
	} else if err := v.ValidateBytes(data, validation.SchemaIngredients); err != nil {
		return nil, fmt.Errorf("built-in ingredient seed: %w", err)
	}

	var ingredients []domain.Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredient seed: %w", err)
	}
	return ingredients, nil
}
