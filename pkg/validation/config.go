// Package validation provides plan input validation utilities.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
)

// energyMismatchRatio is how far a recipe's stated kcal may drift from the
// energy implied by its macros before a warning is raised.
const energyMismatchRatio = 0.15

// ValidateRange returns an error when value lies outside [min, max].
func ValidateRange(field string, value, min, max float64) error {
	if math.IsNaN(value) || value < min || value > max {
		return fmt.Errorf("%s %.2f is outside the accepted range %.0f-%.0f", field, value, min, max)
	}
	return nil
}

// ProfileInput holds the numeric client measurements checked before they
// reach the formula library.
type ProfileInput struct {
	AgeYears   float64
	HeightCM   float64
	WeightKG   float64
	BodyFatPct *float64
}

// ValidateProfile rejects out-of-range client measurements. Every failing
// field is reported.
func ValidateProfile(p ProfileInput) error {
	errs := []error{
		ValidateRange("age", p.AgeYears, constants.MinAgeYears, constants.MaxAgeYears),
		ValidateRange("height_cm", p.HeightCM, constants.MinHeightCM, constants.MaxHeightCM),
		ValidateRange("weight_kg", p.WeightKG, constants.MinWeightKG, constants.MaxWeightKG),
	}
	if p.BodyFatPct != nil {
		errs = append(errs, ValidateRange("body_fat_pct", *p.BodyFatPct, constants.MinBodyFatPct, constants.MaxBodyFatPct))
	}
	return errors.Join(errs...)
}

// ValidateSplitPercents rejects negative or oversized percentages and warns
// when they do not add up to 100.
func ValidateSplitPercents(carb, protein, fat float64) (string, error) {
	for _, pct := range []struct {
		name  string
		value float64
	}{{"carb", carb}, {"protein", protein}, {"fat", fat}} {
		if err := ValidateRange(pct.name+" percent", pct.value, 0, constants.PercentageMultiplier); err != nil {
			return "", err
		}
	}
	if sum := carb + protein + fat; math.Abs(sum-constants.PercentageMultiplier) > 0.5 {
		return fmt.Sprintf("macro split sums to %.1f%% rather than 100%%", sum), nil
	}
	return "", nil
}

// ValidateSplitGrams rejects negative or NaN gram amounts in a grams-mode split.
func ValidateSplitGrams(protein, carbs, fat float64) error {
	return validateNonNegative("grams", protein, carbs, fat)
}

// ValidateTargets checks explicit daily targets. Calories must be positive and
// every macro non-negative.
func ValidateTargets(kcal, protein, carbs, fat float64) error {
	if math.IsNaN(kcal) || kcal <= 0 {
		return fmt.Errorf("targets must include positive kcal, got %.0f", kcal)
	}
	return validateNonNegative("target", protein, carbs, fat)
}

func validateNonNegative(kind string, protein, carbs, fat float64) error {
	for _, v := range []struct {
		name  string
		value float64
	}{{"protein", protein}, {"carbs", carbs}, {"fat", fat}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value < 0 {
			return fmt.Errorf("%s %s %.2f must be a non-negative number", v.name, kind, v.value)
		}
	}
	return nil
}

// RecipeInfo is the per-serving nutrition of one catalog recipe.
type RecipeInfo struct {
	ID      string
	Title   string
	Kcal    float64
	Protein float64
	Carbs   float64
	Fat     float64
}

// ValidateRecipe rejects recipes that cannot be planned with.
func ValidateRecipe(r RecipeInfo) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("recipe %q has no id", r.Title)
	}
	if r.Kcal < 0 || r.Protein < 0 || r.Carbs < 0 || r.Fat < 0 {
		return fmt.Errorf("recipe %q has negative nutrition values", r.ID)
	}
	return nil
}

// PlanValidator collects soft issues with a plan request.
type PlanValidator struct {
	MealsPerDay  int
	TolerancePct float64
	Recipes      []RecipeInfo
}

// ValidateAll returns warnings for issues that do not prevent generation.
func (pv *PlanValidator) ValidateAll() []string {
	var warnings []string

	seen := make(map[string]bool, len(pv.Recipes))
	for _, r := range pv.Recipes {
		if seen[r.ID] {
			warnings = append(warnings, fmt.Sprintf("Recipe '%s' is listed more than once", r.ID))
		}
		seen[r.ID] = true

		if r.Kcal == 0 {
			warnings = append(warnings, fmt.Sprintf("Recipe '%s' has no calories and cannot move day totals", r.ID))
			continue
		}
		energy := r.Protein*constants.KcalPerGramProtein + r.Carbs*constants.KcalPerGramCarbs + r.Fat*constants.KcalPerGramFat
		if math.Abs(energy-r.Kcal) > r.Kcal*energyMismatchRatio {
			warnings = append(warnings, fmt.Sprintf("Recipe '%s' lists %.0f kcal but its macros supply %.0f kcal", r.ID, r.Kcal, energy))
		}
	}

	if len(seen) == 1 && pv.MealsPerDay > 1 {
		warnings = append(warnings, "Only one recipe is available; every slot will repeat it")
	}
	if pv.TolerancePct > 0 && pv.TolerancePct < 2 {
		warnings = append(warnings, fmt.Sprintf("Tolerance of %.1f%% is tight; days may not converge within the iteration cap", pv.TolerancePct))
	}

	return warnings
}
