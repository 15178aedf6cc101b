// Package planner generates macro-targeted meal plan drafts: it filters the
// recipe pool against client constraints, fills each meal slot with a random
// eligible recipe and hands each day to the serving optimizer.
package planner

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/crisk221/jm-peak-performance-sub000/internal/optimizer"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/datetime"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/macros"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/nutrition"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/optimization"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ErrNoSuitableRecipes is returned when no recipe survives the client's
// constraints. The request cannot be satisfied as given.
var ErrNoSuitableRecipes = errors.New("no suitable recipes")

// Stage names a step of draft generation.
type Stage string

const (
	StageCollectingConstraints Stage = "COLLECTING_CONSTRAINTS"
	StageFilteringRecipes      Stage = "FILTERING_RECIPES"
	StageAssigningSlots        Stage = "ASSIGNING_SLOTS"
	StageOptimizing            Stage = "OPTIMIZING"
	StageDone                  Stage = "DONE"
)

// RandomSource picks slot recipes. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Request describes one plan generation.
type Request struct {
	Days         int
	MealsPerDay  int
	Target       macros.Targets
	TolerancePct float64
	StartDate    time.Time
	Constraints  Constraints
}

// PlanDay is one day of meal slots with its derived totals.
type PlanDay struct {
	Index        int                       `json:"index" yaml:"index"`
	Date         string                    `json:"date,omitempty" yaml:"date,omitempty"`
	Items        []nutrition.PlanItem      `json:"items" yaml:"items"`
	TotalMacros  nutrition.Macros          `json:"total_macros" yaml:"total_macros"`
	OnTarget     nutrition.ToleranceReport `json:"on_target" yaml:"on_target"`
	Badges       nutrition.ToleranceReport `json:"badges" yaml:"badges"`
	Optimization optimization.Summary      `json:"optimization" yaml:"optimization"`
}

// MealPlanDraft is an unsaved, generated plan.
type MealPlanDraft struct {
	ID           string         `json:"id" yaml:"id"`
	CreatedAt    time.Time      `json:"created_at" yaml:"created_at"`
	TargetMacros macros.Targets `json:"target_macros" yaml:"target_macros"`
	TolerancePct float64        `json:"tolerance_pct" yaml:"tolerance_pct"`
	MealsPerDay  int            `json:"meals_per_day" yaml:"meals_per_day"`
	Days         []PlanDay      `json:"days" yaml:"days"`
}

// OnTarget reports whether every day converged inside the tolerance band.
func (d *MealPlanDraft) OnTarget() bool {
	for _, day := range d.Days {
		if !day.OnTarget.Overall {
			return false
		}
	}
	return true
}

// Generator produces meal plan drafts. A Generator is not safe for concurrent
// use when it shares a RandomSource; give each request its own.
type Generator struct {
	logger   *zap.Logger
	settings optimizer.Settings
	rng      RandomSource
	now      func() time.Time
	newID    func() string
}

// NewGenerator constructs a Generator. A nil rng is replaced with a
// time-seeded source.
func NewGenerator(logger *zap.Logger, settings optimizer.Settings, rng RandomSource) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Generator{
		logger:   logger,
		settings: settings,
		rng:      rng,
		now:      time.Now,
		newID:    func() string { return ulid.Make().String() },
	}
}

// Generate runs the full pipeline over a snapshot of the recipe pool. The only
// error is ErrNoSuitableRecipes; off-target days are reported through each
// day's OnTarget flags.
func (g *Generator) Generate(req Request, pool []Recipe) (*MealPlanDraft, error) {
	g.stage(StageCollectingConstraints,
		zap.Int("days", req.Days),
		zap.Int("mealsPerDay", req.MealsPerDay),
		zap.Int("pool", len(pool)),
	)
	req = normalizeRequest(req)

	g.stage(StageFilteringRecipes)
	eligible := FilterRecipes(pool, req.Constraints)
	if len(eligible) == 0 {
		g.logger.Warn("no recipes satisfy client constraints",
			zap.String("op", "planner.Generate"),
			zap.Int("pool", len(pool)),
		)
		return nil, fmt.Errorf("%w: all %d recipes excluded by client constraints", ErrNoSuitableRecipes, len(pool))
	}

	g.stage(StageAssigningSlots, zap.Int("eligible", len(eligible)))
	slots := g.AssignSlots(eligible, req.Days, req.MealsPerDay)

	g.stage(StageOptimizing)
	settings := g.settings
	settings.TolerancePct = req.TolerancePct
	opt := optimizer.New(g.logger, settings)
	target := nutrition.FromTargets(req.Target)
	band := nutrition.UniformTolerance(req.TolerancePct)
	labels := datetime.DayLabels(req.StartDate, req.Days)

	draft := &MealPlanDraft{
		ID:           g.newID(),
		CreatedAt:    g.now().UTC(),
		TargetMacros: req.Target,
		TolerancePct: req.TolerancePct,
		MealsPerDay:  req.MealsPerDay,
		Days:         make([]PlanDay, 0, req.Days),
	}

	for i, items := range slots {
		optimized, summary := opt.Optimize(i+1, items, target)
		totals := nutrition.Totals(optimized)
		day := PlanDay{
			Index:        i + 1,
			Date:         labels[i],
			Items:        optimized,
			TotalMacros:  totals,
			OnTarget:     nutrition.IsWithinTolerance(totals, target, band),
			Badges:       nutrition.IsWithinTolerance(totals, target, nutrition.DefaultTolerance),
			Optimization: summary,
		}
		draft.Days = append(draft.Days, day)

		g.logger.Info("optimized plan day",
			zap.String("op", "planner.Generate"),
			zap.String("draft", draft.ID),
			zap.Int("day", day.Index),
			zap.Float64("kcal", totals.Kcal),
			zap.Float64("protein", totals.Protein),
			zap.Float64("carbs", totals.Carbs),
			zap.Float64("fat", totals.Fat),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	g.stage(StageDone, zap.String("draft", draft.ID), zap.Bool("onTarget", draft.OnTarget()))
	return draft, nil
}

// AssignSlots fills days*mealsPerDay slots with recipes drawn uniformly from
// pool at the initial serving size. When the pool offers a choice, the recipe
// used in the previous slot is left out of the draw; the lookback carries
// across day boundaries. An empty pool yields no days.
func (g *Generator) AssignSlots(pool []Recipe, days, mealsPerDay int) [][]nutrition.PlanItem {
	if len(pool) == 0 || days <= 0 {
		return nil
	}
	plan := make([][]nutrition.PlanItem, days)
	lastID := ""
	candidates := make([]Recipe, 0, len(pool))

	for d := 0; d < days; d++ {
		plan[d] = make([]nutrition.PlanItem, 0, mealsPerDay)
		for m := 0; m < mealsPerDay; m++ {
			candidates = candidates[:0]
			if len(pool) > 1 && lastID != "" {
				for _, r := range pool {
					if r.ID != lastID {
						candidates = append(candidates, r)
					}
				}
			}
			if len(candidates) == 0 {
				candidates = append(candidates, pool...)
			}

			pick := candidates[g.rng.IntN(len(candidates))]
			plan[d] = append(plan[d], nutrition.PlanItem{
				RecipeID: pick.ID,
				Recipe:   pick.Profile(),
				Servings: constants.InitialServings,
			})
			lastID = pick.ID
		}
	}
	return plan
}

func (g *Generator) stage(stage Stage, fields ...zap.Field) {
	g.logger.Debug("meal plan generation stage",
		append([]zap.Field{zap.String("op", "planner.Generate"), zap.String("stage", string(stage))}, fields...)...,
	)
}

func normalizeRequest(req Request) Request {
	if req.Days <= 0 {
		req.Days = constants.DefaultDays
	}
	if req.MealsPerDay <= 0 {
		req.MealsPerDay = constants.DefaultMealsPerDay
	}
	if req.TolerancePct <= 0 {
		req.TolerancePct = constants.DefaultPlanTolerancePct
	}
	return req
}
