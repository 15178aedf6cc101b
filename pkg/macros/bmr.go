// Package macros implements the energy and macro arithmetic that turns a
// client profile into daily macro targets. Every function here is pure and
// none of them fail: bad labels degrade to documented defaults and range
// checks belong to the configuration layer.
package macros

import "strings"

// Sex selects the male or female branch of the BMR formulas.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func isMale(sex Sex) bool {
	return strings.TrimSpace(strings.ToLower(string(sex))) == string(SexMale)
}

// BMRMifflinStJeor estimates basal metabolic rate in kcal/day. Any sex other
// than male uses the female constant.
func BMRMifflinStJeor(sex Sex, ageYears, heightCM, weightKG float64) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*ageYears
	if isMale(sex) {
		return bmr + 5
	}
	return bmr - 161
}

// BMRHarrisBenedict uses the revised (1984) Harris-Benedict coefficients.
func BMRHarrisBenedict(sex Sex, ageYears, heightCM, weightKG float64) float64 {
	if isMale(sex) {
		return 88.362 + 13.397*weightKG + 4.799*heightCM - 5.677*ageYears
	}
	return 447.593 + 9.247*weightKG + 3.098*heightCM - 4.330*ageYears
}

// BMRKatchMcArdle derives BMR from lean body mass.
func BMRKatchMcArdle(bodyFatPct, weightKG float64) float64 {
	leanMass := weightKG * (1 - bodyFatPct/100)
	return 370 + 21.6*leanMass
}

// Formula names a BMR equation.
type Formula string

const (
	FormulaMifflinStJeor  Formula = "mifflin_st_jeor"
	FormulaHarrisBenedict Formula = "harris_benedict"
	FormulaKatchMcArdle   Formula = "katch_mcardle"
)

// Formulas returns the supported BMR formulas.
func Formulas() []Formula {
	return []Formula{FormulaMifflinStJeor, FormulaHarrisBenedict, FormulaKatchMcArdle}
}

// CanonicalFormula maps user-facing spellings onto a Formula. Empty input
// returns the empty Formula, which lets BMR pick a formula automatically.
func CanonicalFormula(value string) Formula {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "":
		return ""
	case "mifflin", "mifflin_st_jeor", "mifflin-st-jeor", "msj":
		return FormulaMifflinStJeor
	case "harris", "harris_benedict", "harris-benedict":
		return FormulaHarrisBenedict
	case "katch", "katch_mcardle", "katch-mcardle":
		return FormulaKatchMcArdle
	default:
		return Formula(trimmed)
	}
}
