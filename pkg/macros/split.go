package macros

import (
	"math"

	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/mathutil"
)

// Grams holds a protein/carbs/fat split in grams.
type Grams struct {
	Protein float64 `json:"protein" yaml:"protein" mapstructure:"protein"`
	Carbs   float64 `json:"carbs" yaml:"carbs" mapstructure:"carbs"`
	Fat     float64 `json:"fat" yaml:"fat" mapstructure:"fat"`
}

// Energy returns the kcal content of g.
func (g Grams) Energy() float64 {
	return g.Protein*constants.KcalPerGramProtein +
		g.Carbs*constants.KcalPerGramCarbs +
		g.Fat*constants.KcalPerGramFat
}

// Balanced split used when a gram split carries no energy to scale from.
const (
	balancedCarbPct    = 50.0
	balancedProteinPct = 25.0
	balancedFatPct     = 25.0
)

// TDEE scales bmr by the activity multiplier for level.
func TDEE(bmr float64, level ActivityLevel) float64 {
	return bmr * ActivityFactor(level)
}

// TargetCalories applies the goal delta to tdee, clamps the result to within
// MaxGoalDeltaKcal of tdee and rounds to the nearest kcal.
func TargetCalories(tdee float64, goal Goal) int {
	target := mathutil.Clamp(tdee+GoalDeltaKcal(goal),
		tdee-constants.MaxGoalDeltaKcal,
		tdee+constants.MaxGoalDeltaKcal)
	return int(math.Round(target))
}

// MacrosFromPercents converts an energy budget and percentage split into
// grams. Each macro is rounded on its own, so the gram split may not add back
// up to exactly kcal. Percentages are used as given.
func MacrosFromPercents(kcal, pctCarb, pctProtein, pctFat float64) Grams {
	return Grams{
		Protein: math.Round(mathutil.ApplyPercentage(kcal, pctProtein) / constants.KcalPerGramProtein),
		Carbs:   math.Round(mathutil.ApplyPercentage(kcal, pctCarb) / constants.KcalPerGramCarbs),
		Fat:     math.Round(mathutil.ApplyPercentage(kcal, pctFat) / constants.KcalPerGramFat),
	}
}

// ScaleGramsToEnergy rescales grams so their energy matches kcalTarget. A
// split with no energy falls back to a 50/25/25 carb/protein/fat split.
func ScaleGramsToEnergy(kcalTarget float64, grams Grams) Grams {
	current := grams.Energy()
	if current == 0 {
		return MacrosFromPercents(kcalTarget, balancedCarbPct, balancedProteinPct, balancedFatPct)
	}
	factor := kcalTarget / current
	return Grams{
		Protein: math.Round(grams.Protein * factor),
		Carbs:   math.Round(grams.Carbs * factor),
		Fat:     math.Round(grams.Fat * factor),
	}
}
