package optimizer

import (
	"fmt"
	"math"

	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/mathutil"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/nutrition"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/optimization"
	"go.uber.org/zap"
)

// Axis names used in adjustment records and logs.
const (
	AxisKcal    = "kcal"
	AxisProtein = "protein"
	AxisCarbs   = "carbs"
	AxisFat     = "fat"
)

var axes = []string{AxisKcal, AxisProtein, AxisCarbs, AxisFat}

// Settings bounds the serving adjustment loop.
type Settings struct {
	MaxIterations int     `json:"maxIterations" yaml:"maxIterations" mapstructure:"maxIterations"`
	Step          float64 `json:"step" yaml:"step" mapstructure:"step"`
	MinServings   float64 `json:"minServings" yaml:"minServings" mapstructure:"minServings"`
	MaxServings   float64 `json:"maxServings" yaml:"maxServings" mapstructure:"maxServings"`
	TolerancePct  float64 `json:"tolerancePct" yaml:"tolerancePct" mapstructure:"tolerancePct"`
}

// DefaultSettings returns the standard quarter-serving configuration.
func DefaultSettings() Settings {
	return Settings{
		MaxIterations: constants.DefaultMaxIterations,
		Step:          constants.ServingStep,
		MinServings:   constants.MinServings,
		MaxServings:   constants.MaxServings,
		TolerancePct:  constants.DefaultPlanTolerancePct,
	}
}

// Normalize fills unset fields with defaults. A minimum below one step is
// raised to the step so a slot is never driven to zero.
func (s Settings) Normalize() Settings {
	defaults := DefaultSettings()
	if s.MaxIterations <= 0 {
		s.MaxIterations = defaults.MaxIterations
	}
	if s.Step <= 0 {
		s.Step = defaults.Step
	}
	if s.MinServings < s.Step {
		s.MinServings = s.Step
	}
	if s.MaxServings <= 0 {
		s.MaxServings = defaults.MaxServings
	}
	// Both bounds sit on the step grid.
	s.MinServings = math.Ceil(s.MinServings/s.Step-1e-9) * s.Step
	s.MaxServings = math.Floor(s.MaxServings/s.Step+1e-9) * s.Step
	if s.MaxServings < s.MinServings {
		s.MaxServings = s.MinServings
	}
	if s.TolerancePct <= 0 {
		s.TolerancePct = defaults.TolerancePct
	}
	return s
}

// Optimizer nudges serving sizes so a day's totals land inside the tolerance
// band around a target.
type Optimizer struct {
	logger   *zap.Logger
	settings Settings
}

// New constructs an Optimizer. Zero-valued settings fields take defaults.
func New(logger *zap.Logger, settings Settings) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{logger: logger, settings: settings.Normalize()}
}

// Settings returns the normalized settings in use.
func (o *Optimizer) Settings() Settings {
	return o.settings
}

// OptimizeServings runs the optimizer without logging.
func OptimizeServings(items []nutrition.PlanItem, target nutrition.Macros, settings Settings) ([]nutrition.PlanItem, optimization.Summary) {
	return New(nil, settings).Optimize(0, items, target)
}

// Optimize returns an adjusted copy of items; the input slice is not
// modified. Each iteration picks the axis furthest from target and moves the
// item with the largest per-serving amount on that axis by one step. The loop
// stops once every axis is within tolerance or after MaxIterations, in which
// case the best-effort servings are returned with Converged false.
func (o *Optimizer) Optimize(day int, items []nutrition.PlanItem, target nutrition.Macros) ([]nutrition.PlanItem, optimization.Summary) {
	s := o.settings
	tol := nutrition.UniformTolerance(s.TolerancePct)

	working := make([]nutrition.PlanItem, len(items))
	copy(working, items)
	for i := range working {
		working[i].Servings = o.bound(working[i].Servings)
	}

	summary := optimization.Summary{Day: day}

	for summary.Iterations < s.MaxIterations {
		current := nutrition.Totals(working)
		if nutrition.IsWithinTolerance(current, target, tol).Overall {
			summary.Converged = true
			break
		}
		summary.Iterations++

		deltas := axisValues(target)
		for i, v := range axisValues(current) {
			deltas[i] -= v
		}
		axis := argmaxAbs(deltas)

		slot := -1
		best := 0.0
		for i := range working {
			amount := math.Abs(axisValues(working[i].Recipe.PerServing)[axis])
			if slot < 0 || amount > best {
				slot = i
				best = amount
			}
		}
		if slot < 0 {
			continue
		}

		item := &working[slot]
		from := item.Servings
		switch {
		case deltas[axis] > 0 && item.Servings < s.MaxServings:
			item.Servings = mathutil.Min(item.Servings+s.Step, s.MaxServings)
		case deltas[axis] < 0 && item.Servings > s.MinServings:
			item.Servings = mathutil.Max(item.Servings-s.Step, s.MinServings)
		}
		item.Servings = o.bound(item.Servings)

		if item.Servings != from {
			summary.Adjustments = append(summary.Adjustments, optimization.Adjustment{
				Iteration: summary.Iterations,
				Slot:      slot,
				RecipeID:  item.RecipeID,
				Axis:      axes[axis],
				From:      from,
				To:        item.Servings,
			})
			o.logger.Debug("optimizer adjusted serving",
				zap.String("op", "optimizer.Optimize"),
				zap.Int("day", day),
				zap.Int("iteration", summary.Iterations),
				zap.Int("slot", slot),
				zap.String("recipe", item.RecipeID),
				zap.String("axis", axes[axis]),
				zap.Float64("from", from),
				zap.Float64("to", item.Servings),
			)
		}
	}

	if !summary.Converged {
		summary.Converged = nutrition.IsWithinTolerance(nutrition.Totals(working), target, tol).Overall
	}
	if !summary.Converged {
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"day totals not within %.1f%% of target after %d iterations",
			s.TolerancePct, summary.Iterations,
		))
	}

	o.logger.Debug("optimizer finished day",
		zap.String("op", "optimizer.Optimize"),
		zap.Int("day", day),
		zap.Int("iterations", summary.Iterations),
		zap.Int("adjustments", len(summary.Adjustments)),
		zap.Bool("converged", summary.Converged),
	)

	return working, summary
}

// bound snaps servings to the step grid and clamps it to the serving range.
func (o *Optimizer) bound(servings float64) float64 {
	s := o.settings
	return mathutil.Clamp(mathutil.RoundToStep(servings, s.Step), s.MinServings, s.MaxServings)
}

func axisValues(m nutrition.Macros) [4]float64 {
	return [4]float64{m.Kcal, m.Protein, m.Carbs, m.Fat}
}

// argmaxAbs returns the index of the largest magnitude, preferring the
// earliest index on ties.
func argmaxAbs(values [4]float64) int {
	idx := 0
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]) > math.Abs(values[idx]) {
			idx = i
		}
	}
	return idx
}
