package planner

import (
	"strings"

	"github.com/crisk221/jm-peak-performance-sub000/pkg/nutrition"
)

// HardwareTagPrefix marks a recipe tag naming equipment the recipe needs,
// e.g. "requires:oven".
const HardwareTagPrefix = "requires:"

// Recipe is a catalog entry as read from the recipe store.
type Recipe struct {
	ID         string           `json:"id" yaml:"id" mapstructure:"id"`
	Title      string           `json:"title" yaml:"title" mapstructure:"title"`
	Tags       []string         `json:"tags,omitempty" yaml:"tags,omitempty" mapstructure:"tags"`
	PerServing nutrition.Macros `json:"per_serving" yaml:"per_serving" mapstructure:"per_serving"`
}

// Profile snapshots the recipe's per-serving macros for a plan item.
func (r Recipe) Profile() nutrition.RecipeProfile {
	return nutrition.RecipeProfile{ID: r.ID, Title: r.Title, PerServing: r.PerServing}
}

// Constraints are the client preferences that decide recipe eligibility.
type Constraints struct {
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty" yaml:"dietaryRestrictions,omitempty" mapstructure:"dietaryRestrictions"`
	Allergies           []string `json:"allergies,omitempty" yaml:"allergies,omitempty" mapstructure:"allergies"`
	Disliked            []string `json:"disliked,omitempty" yaml:"disliked,omitempty" mapstructure:"disliked"`
	Hardware            []string `json:"hardware,omitempty" yaml:"hardware,omitempty" mapstructure:"hardware"`
}

// FilterRecipes returns the recipes in pool that satisfy c, preserving order.
//
// A recipe is excluded when its title or any tag contains an allergy or a
// disliked food (case-insensitive substring), when it lacks a tag for every
// dietary restriction, or when it carries a "requires:" tag for hardware the
// client does not list. An empty hardware list skips the hardware check.
func FilterRecipes(pool []Recipe, c Constraints) []Recipe {
	avoid := normalizeTerms(append(append([]string{}, c.Allergies...), c.Disliked...))
	restrictions := normalizeTerms(c.DietaryRestrictions)
	hardware := make(map[string]bool)
	for _, h := range normalizeTerms(c.Hardware) {
		hardware[h] = true
	}

	filtered := make([]Recipe, 0, len(pool))
	for _, recipe := range pool {
		if mentionsAny(recipe, avoid) {
			continue
		}
		if !hasAllTags(recipe, restrictions) {
			continue
		}
		if len(hardware) > 0 && !hardwareAvailable(recipe, hardware) {
			continue
		}
		filtered = append(filtered, recipe)
	}
	return filtered
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if t := strings.ToLower(strings.TrimSpace(term)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func mentionsAny(recipe Recipe, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	haystack := make([]string, 0, len(recipe.Tags)+1)
	haystack = append(haystack, strings.ToLower(recipe.Title))
	for _, tag := range recipe.Tags {
		haystack = append(haystack, strings.ToLower(tag))
	}
	for _, term := range terms {
		for _, h := range haystack {
			if strings.Contains(h, term) {
				return true
			}
		}
	}
	return false
}

func hasAllTags(recipe Recipe, required []string) bool {
	if len(required) == 0 {
		return true
	}
	tags := make(map[string]bool, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags[strings.ToLower(strings.TrimSpace(tag))] = true
	}
	for _, r := range required {
		if !tags[r] {
			return false
		}
	}
	return true
}

func hardwareAvailable(recipe Recipe, available map[string]bool) bool {
	for _, tag := range recipe.Tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if !strings.HasPrefix(t, HardwareTagPrefix) {
			continue
		}
		if need := strings.TrimSpace(strings.TrimPrefix(t, HardwareTagPrefix)); need != "" && !available[need] {
			return false
		}
	}
	return true
}
