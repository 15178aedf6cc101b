// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/crisk221/jm-peak-performance-sub000/pkg/nutrition"
)

// Recipe builds a recipe snapshot with the given per-serving macros.
func Recipe(id string, kcal, protein, carbs, fat float64) nutrition.RecipeProfile {
	return nutrition.RecipeProfile{
		ID:         id,
		Title:      id,
		PerServing: nutrition.Macros{Kcal: kcal, Protein: protein, Carbs: carbs, Fat: fat},
	}
}

// Item places recipe in a slot at the given serving size.
func Item(recipe nutrition.RecipeProfile, servings float64) nutrition.PlanItem {
	return nutrition.PlanItem{RecipeID: recipe.ID, Recipe: recipe, Servings: servings}
}

// FindItem finds the first item for recipeID.
// Returns a pointer to the item if found, nil otherwise.
func FindItem(items []nutrition.PlanItem, recipeID string) *nutrition.PlanItem {
	for i := range items {
		if items[i].RecipeID == recipeID {
			return &items[i]
		}
	}
	return nil
}

// SequenceSource replays a fixed list of draws, wrapping around when it runs
// out. Each draw is reduced modulo n.
type SequenceSource struct {
	Values []int
	next   int
}

// IntN returns the next value in the sequence modulo n.
func (s *SequenceSource) IntN(n int) int {
	if len(s.Values) == 0 || n <= 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Calls reports how many draws have been made.
func (s *SequenceSource) Calls() int {
	return s.next
}
