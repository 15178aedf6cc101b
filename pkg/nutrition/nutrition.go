// Package nutrition aggregates ingredient and recipe macros into serving,
// meal and day totals and checks totals against a target band.
package nutrition

import (
	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/macros"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/mathutil"
)

// Macros is an energy plus macro amount, per serving or aggregated.
type Macros struct {
	Kcal    float64 `json:"kcal" yaml:"kcal" mapstructure:"kcal"`
	Protein float64 `json:"protein" yaml:"protein" mapstructure:"protein"`
	Carbs   float64 `json:"carbs" yaml:"carbs" mapstructure:"carbs"`
	Fat     float64 `json:"fat" yaml:"fat" mapstructure:"fat"`
}

// Add returns the component-wise sum of m and other.
func (m Macros) Add(other Macros) Macros {
	return Macros{
		Kcal:    m.Kcal + other.Kcal,
		Protein: m.Protein + other.Protein,
		Carbs:   m.Carbs + other.Carbs,
		Fat:     m.Fat + other.Fat,
	}
}

// Scale multiplies every component of m by factor.
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Kcal:    m.Kcal * factor,
		Protein: m.Protein * factor,
		Carbs:   m.Carbs * factor,
		Fat:     m.Fat * factor,
	}
}

// FromTargets converts a daily target into a Macros value for comparison.
func FromTargets(t macros.Targets) Macros {
	return Macros{Kcal: t.Kcal, Protein: t.ProteinG, Carbs: t.CarbsG, Fat: t.FatG}
}

// MacroEnergy returns the kcal content of a gram split.
func MacroEnergy(g macros.Grams) float64 {
	return g.Energy()
}

// IngredientLine is one ingredient of a recipe: the grams used for the whole
// recipe and the ingredient's macros per 100 g.
type IngredientLine struct {
	Name          string  `json:"name,omitempty" yaml:"name,omitempty"`
	GramsPerBase  float64 `json:"grams" yaml:"grams"`
	MacrosPer100g Macros  `json:"per_100g" yaml:"per_100g"`
}

// RecipePerServing sums ingredient contributions and divides by the number of
// servings the recipe yields. baseServings must be positive.
func RecipePerServing(baseServings float64, lines []IngredientLine) Macros {
	var total Macros
	for _, line := range lines {
		total = total.Add(line.MacrosPer100g.Scale(line.GramsPerBase / 100))
	}
	return total.Scale(1 / baseServings)
}

// RecipeProfile is a read-only snapshot of a recipe's per-serving macros.
type RecipeProfile struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	PerServing Macros `json:"per_serving" yaml:"per_serving"`
}

// PlanItem is one meal slot: a recipe snapshot and the servings assigned.
type PlanItem struct {
	RecipeID string        `json:"recipe_id" yaml:"recipe_id"`
	Recipe   RecipeProfile `json:"recipe" yaml:"recipe"`
	Servings float64       `json:"servings" yaml:"servings"`
}

// Macros returns the item's contribution at its current serving size.
func (i PlanItem) Macros() Macros {
	return i.Recipe.PerServing.Scale(i.Servings)
}

// Totals returns the serving-weighted sum of items.
func Totals(items []PlanItem) Macros {
	var total Macros
	for _, item := range items {
		total = total.Add(item.Macros())
	}
	return total
}

// Tolerance holds the fractional bands used by IsWithinTolerance.
type Tolerance struct {
	Kcal  float64
	Macro float64
}

// DefaultTolerance keeps calories tighter than the individual macros.
var DefaultTolerance = Tolerance{
	Kcal:  constants.DefaultKcalTolerance,
	Macro: constants.DefaultMacroTolerance,
}

// UniformTolerance applies the same band, in percent, to every axis.
func UniformTolerance(pct float64) Tolerance {
	frac := pct / constants.PercentageMultiplier
	return Tolerance{Kcal: frac, Macro: frac}
}

// ToleranceReport flags which axes are on target.
type ToleranceReport struct {
	Kcal    bool `json:"kcal" yaml:"kcal"`
	Protein bool `json:"protein" yaml:"protein"`
	Carbs   bool `json:"carbs" yaml:"carbs"`
	Fat     bool `json:"fat" yaml:"fat"`
	Overall bool `json:"overall" yaml:"overall"`
}

// IsWithinTolerance checks each axis of current against target. An axis
// passes when |current - target| <= target * band.
func IsWithinTolerance(current, target Macros, tol Tolerance) ToleranceReport {
	report := ToleranceReport{
		Kcal:    withinBand(current.Kcal, target.Kcal, tol.Kcal),
		Protein: withinBand(current.Protein, target.Protein, tol.Macro),
		Carbs:   withinBand(current.Carbs, target.Carbs, tol.Macro),
		Fat:     withinBand(current.Fat, target.Fat, tol.Macro),
	}
	report.Overall = report.Kcal && report.Protein && report.Carbs && report.Fat
	return report
}

func withinBand(current, target, band float64) bool {
	return mathutil.WithinTolerance(current, target, target*band)
}
