package macros

import "strings"

// Targets is a daily macro goal.
type Targets struct {
	Kcal     float64 `json:"kcal" yaml:"kcal" mapstructure:"kcal"`
	ProteinG float64 `json:"protein_g" yaml:"protein_g" mapstructure:"protein_g"`
	CarbsG   float64 `json:"carbs_g" yaml:"carbs_g" mapstructure:"carbs_g"`
	FatG     float64 `json:"fat_g" yaml:"fat_g" mapstructure:"fat_g"`
}

// Profile carries the client measurements that feed the formulas.
type Profile struct {
	Sex        Sex
	AgeYears   float64
	HeightCM   float64
	WeightKG   float64
	BodyFatPct *float64
	Activity   ActivityLevel
	Goal       Goal
	Formula    Formula
}

// SplitMode selects how a Split is interpreted.
type SplitMode string

const (
	SplitPercent SplitMode = "percent"
	SplitGrams   SplitMode = "grams"
)

// Split describes how target energy is divided between macros. In percent
// mode the percentages are applied to the target calories; in grams mode the
// coach-entered grams are rescaled to hit the target calories.
type Split struct {
	Mode       SplitMode
	CarbPct    float64
	ProteinPct float64
	FatPct     float64
	Grams      Grams
}

// DefaultSplit is a 40/30/30 carb/protein/fat split.
var DefaultSplit = Split{Mode: SplitPercent, CarbPct: 40, ProteinPct: 30, FatPct: 30}

// CanonicalSplitMode maps a user-facing split mode onto a SplitMode,
// defaulting to percent.
func CanonicalSplitMode(value string) SplitMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "grams", "gram", "g":
		return SplitGrams
	default:
		return SplitPercent
	}
}

// BMR computes basal metabolic rate using the profile's formula. With no
// formula set, Katch-McArdle is used when body fat is known and
// Mifflin-St Jeor otherwise. Katch-McArdle without body fat falls back to
// Mifflin-St Jeor.
func (p Profile) BMR() float64 {
	switch p.Formula {
	case FormulaHarrisBenedict:
		return BMRHarrisBenedict(p.Sex, p.AgeYears, p.HeightCM, p.WeightKG)
	case FormulaKatchMcArdle, "":
		if p.BodyFatPct != nil {
			return BMRKatchMcArdle(*p.BodyFatPct, p.WeightKG)
		}
	}
	return BMRMifflinStJeor(p.Sex, p.AgeYears, p.HeightCM, p.WeightKG)
}

// TargetsForProfile runs the full BMR, TDEE, goal and split pipeline.
func TargetsForProfile(p Profile, split Split) Targets {
	tdee := TDEE(p.BMR(), p.Activity)
	kcal := float64(TargetCalories(tdee, p.Goal))

	var grams Grams
	switch split.Mode {
	case SplitGrams:
		grams = ScaleGramsToEnergy(kcal, split.Grams)
	default:
		grams = MacrosFromPercents(kcal, split.CarbPct, split.ProteinPct, split.FatPct)
	}

	return Targets{
		Kcal:     kcal,
		ProteinG: grams.Protein,
		CarbsG:   grams.Carbs,
		FatG:     grams.Fat,
	}
}
