// Package adapters provides adapter implementations between different package interfaces.
package adapters

import (
	"github.com/crisk221/jm-peak-performance-sub000/internal/planner"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/validation"
)

// RecipeToRecipeInfo flattens a catalog recipe into the shape the validators check.
func RecipeToRecipeInfo(r planner.Recipe) validation.RecipeInfo {
	return validation.RecipeInfo{
		ID:      r.ID,
		Title:   r.Title,
		Kcal:    r.PerServing.Kcal,
		Protein: r.PerServing.Protein,
		Carbs:   r.PerServing.Carbs,
		Fat:     r.PerServing.Fat,
	}
}

// RecipesToRecipeInfo converts planner.Recipe slices to validation.RecipeInfo slices
func RecipesToRecipeInfo(recipes []planner.Recipe) []validation.RecipeInfo {
	if recipes == nil {
		return nil
	}

	infos := make([]validation.RecipeInfo, 0, len(recipes))
	for _, recipe := range recipes {
		infos = append(infos, RecipeToRecipeInfo(recipe))
	}
	return infos
}
