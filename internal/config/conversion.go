package config

import (
	"math/rand/v2"

	"github.com/crisk221/jm-peak-performance-sub000/internal/optimizer"
	"github.com/crisk221/jm-peak-performance-sub000/internal/planner"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/datetime"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/macros"
)

// Profile converts the client record into formula inputs.
func (c *Configuration) Profile() macros.Profile {
	return macros.Profile{
		Sex:        macros.Sex(c.Client.Sex),
		AgeYears:   c.Client.AgeYears,
		HeightCM:   c.Client.HeightCM,
		WeightKG:   c.Client.WeightKG,
		BodyFatPct: c.Client.BodyFatPct,
		Activity:   macros.CanonicalActivityLevel(c.Client.ActivityLevel),
		Goal:       macros.CanonicalGoal(c.Client.Goal),
		Formula:    macros.CanonicalFormula(c.Client.Formula),
	}
}

// Split converts the macro split configuration.
func (c *Configuration) Split() macros.Split {
	return macros.Split{
		Mode:       macros.CanonicalSplitMode(c.MacroSplit.Mode),
		CarbPct:    c.MacroSplit.CarbPct,
		ProteinPct: c.MacroSplit.ProteinPct,
		FatPct:     c.MacroSplit.FatPct,
		Grams: macros.Grams{
			Protein: c.MacroSplit.ProteinG,
			Carbs:   c.MacroSplit.CarbsG,
			Fat:     c.MacroSplit.FatG,
		},
	}
}

// Targets returns the explicit plan targets when configured and otherwise
// computes them from the client profile.
func (c *Configuration) Targets() macros.Targets {
	if c.Plan.Targets != nil {
		return *c.Plan.Targets
	}
	return macros.TargetsForProfile(c.Profile(), c.Split())
}

// PlanRequest builds the generator request. The start date must already have
// passed validation.
func (c *Configuration) PlanRequest() (planner.Request, error) {
	start, err := datetime.ParseOptionalDate(c.Plan.StartDate)
	if err != nil {
		return planner.Request{}, err
	}
	return planner.Request{
		Days:         c.Plan.Days,
		MealsPerDay:  c.Plan.MealsPerDay,
		Target:       c.Targets(),
		TolerancePct: c.Plan.TolerancePct,
		StartDate:    start,
		Constraints:  c.Client.Constraints,
	}, nil
}

// OptimizerSettings returns the optimizer settings for this plan.
func (c *Configuration) OptimizerSettings() optimizer.Settings {
	return c.Optimizer.Settings(c.Plan.TolerancePct)
}

// RandomSource returns a seeded source when a seed is configured so that
// drafts are reproducible, and nil otherwise.
func (c *Configuration) RandomSource() planner.RandomSource {
	if c.Plan.Seed == nil {
		return nil
	}
	seed := *c.Plan.Seed
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
