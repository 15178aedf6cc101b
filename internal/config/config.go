// Package config defines the data structures related to configuration and
// includes functions for loading, normalizing and validating a plan request.
package config

import (
	"fmt"
	"strings"

	"github.com/crisk221/jm-peak-performance-sub000/internal/planner"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/adapters"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/datetime"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/macros"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds a complete meal plan request.
type Configuration struct {
	Client     ClientConfig     `yaml:"client" mapstructure:"client"`
	Recipes    []planner.Recipe `yaml:"recipes" mapstructure:"recipes"`
	Plan       PlanConfig       `yaml:"plan,omitempty" mapstructure:"plan"`
	MacroSplit SplitConfig      `yaml:"macroSplit,omitempty" mapstructure:"macroSplit"`
	Optimizer  OptimizerConfig  `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
	Logging    LoggingConfig    `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig     `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, yaml
}

// ClientConfig holds the client record: measurements, activity and goal
// labels, and the preferences that constrain recipe choice.
type ClientConfig struct {
	Name          string   `yaml:"name,omitempty" mapstructure:"name"`
	Sex           string   `yaml:"sex" mapstructure:"sex"`
	AgeYears      float64  `yaml:"ageYears" mapstructure:"ageYears"`
	HeightCM      float64  `yaml:"heightCm" mapstructure:"heightCm"`
	WeightKG      float64  `yaml:"weightKg" mapstructure:"weightKg"`
	BodyFatPct    *float64 `yaml:"bodyFatPct,omitempty" mapstructure:"bodyFatPct"`
	ActivityLevel string   `yaml:"activityLevel" mapstructure:"activityLevel"`
	Goal          string   `yaml:"goal" mapstructure:"goal"`
	Formula       string   `yaml:"formula,omitempty" mapstructure:"formula"`

	planner.Constraints `yaml:",inline" mapstructure:",squash"`
}

// PlanConfig holds the shape of the generated plan. Targets, when set,
// replace the targets computed from the client profile.
type PlanConfig struct {
	Days         int             `yaml:"days,omitempty" mapstructure:"days"`
	MealsPerDay  int             `yaml:"mealsPerDay,omitempty" mapstructure:"mealsPerDay"`
	TolerancePct float64         `yaml:"tolerancePct,omitempty" mapstructure:"tolerancePct"`
	StartDate    string          `yaml:"startDate,omitempty" mapstructure:"startDate"`
	Seed         *uint64         `yaml:"seed,omitempty" mapstructure:"seed"`
	Targets      *macros.Targets `yaml:"targets,omitempty" mapstructure:"targets"`
}

// SplitConfig describes how target calories are divided between macros.
type SplitConfig struct {
	Mode       string  `yaml:"mode,omitempty" mapstructure:"mode"` // percent, grams
	CarbPct    float64 `yaml:"carbPct,omitempty" mapstructure:"carbPct"`
	ProteinPct float64 `yaml:"proteinPct,omitempty" mapstructure:"proteinPct"`
	FatPct     float64 `yaml:"fatPct,omitempty" mapstructure:"fatPct"`
	ProteinG   float64 `yaml:"proteinG,omitempty" mapstructure:"proteinG"`
	CarbsG     float64 `yaml:"carbsG,omitempty" mapstructure:"carbsG"`
	FatG       float64 `yaml:"fatG,omitempty" mapstructure:"fatG"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("MEALPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Normalize applies defaults and canonical labels before validation.
func (c *Configuration) Normalize() {
	c.Client.Sex = strings.ToLower(strings.TrimSpace(c.Client.Sex))
	c.Client.ActivityLevel = string(macros.CanonicalActivityLevel(c.Client.ActivityLevel))
	c.Client.Goal = string(macros.CanonicalGoal(c.Client.Goal))
	c.Client.Formula = string(macros.CanonicalFormula(c.Client.Formula))

	if c.Plan.Days <= 0 {
		c.Plan.Days = constants.DefaultDays
	}
	if c.Plan.MealsPerDay <= 0 {
		c.Plan.MealsPerDay = constants.DefaultMealsPerDay
	}
	if c.Plan.TolerancePct <= 0 {
		c.Plan.TolerancePct = constants.DefaultPlanTolerancePct
	}
	c.Plan.StartDate = strings.TrimSpace(c.Plan.StartDate)

	c.MacroSplit.Mode = string(macros.CanonicalSplitMode(c.MacroSplit.Mode))
	if c.MacroSplit.Mode == string(macros.SplitPercent) &&
		c.MacroSplit.CarbPct == 0 && c.MacroSplit.ProteinPct == 0 && c.MacroSplit.FatPct == 0 {
		c.MacroSplit.CarbPct = macros.DefaultSplit.CarbPct
		c.MacroSplit.ProteinPct = macros.DefaultSplit.ProteinPct
		c.MacroSplit.FatPct = macros.DefaultSplit.FatPct
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
}

// Validate normalizes the configuration and rejects input that must not
// reach the formula library or the generator.
func (c *Configuration) Validate() error {
	c.Normalize()

	if err := c.ValidateTargetInputs(); err != nil {
		return err
	}

	if c.Plan.Days > constants.MaxDays {
		return fmt.Errorf("plan days %d exceeds the maximum of %d", c.Plan.Days, constants.MaxDays)
	}
	if c.Plan.MealsPerDay > constants.MaxMealsPerDay {
		return fmt.Errorf("plan mealsPerDay %d exceeds the maximum of %d", c.Plan.MealsPerDay, constants.MaxMealsPerDay)
	}
	if err := validation.ValidateRange("plan tolerancePct", c.Plan.TolerancePct, 0, constants.MaxTolerancePct); err != nil {
		return err
	}
	if _, err := datetime.ParseOptionalDate(c.Plan.StartDate); err != nil {
		return fmt.Errorf("plan startDate %q is invalid: %w", c.Plan.StartDate, err)
	}

	if len(c.Recipes) == 0 {
		return fmt.Errorf("at least one recipe is required")
	}
	for _, r := range c.Recipes {
		if err := validation.ValidateRecipe(adapters.RecipeToRecipeInfo(r)); err != nil {
			return err
		}
	}

	if err := c.Optimizer.Validate(); err != nil {
		return err
	}

	return validation.ValidateOutputFormat(c.Output.Format)
}

// ValidateTargetInputs checks everything that feeds target computation: the
// client profile (or explicit plan targets) and the macro split. It expects
// Normalize to have run.
func (c *Configuration) ValidateTargetInputs() error {
	if t := c.Plan.Targets; t != nil {
		if err := validation.ValidateTargets(t.Kcal, t.ProteinG, t.CarbsG, t.FatG); err != nil {
			return fmt.Errorf("plan %w", err)
		}
	} else if err := validation.ValidateProfile(c.profileInput()); err != nil {
		return fmt.Errorf("client %q: %w", c.Client.Name, err)
	}

	switch macros.SplitMode(c.MacroSplit.Mode) {
	case macros.SplitPercent:
		if _, err := validation.ValidateSplitPercents(c.MacroSplit.CarbPct, c.MacroSplit.ProteinPct, c.MacroSplit.FatPct); err != nil {
			return fmt.Errorf("macroSplit: %w", err)
		}
	case macros.SplitGrams:
		if err := validation.ValidateSplitGrams(c.MacroSplit.ProteinG, c.MacroSplit.CarbsG, c.MacroSplit.FatG); err != nil {
			return fmt.Errorf("macroSplit: %w", err)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.MacroSplit.Mode == string(macros.SplitPercent) {
		if warning, err := validation.ValidateSplitPercents(c.MacroSplit.CarbPct, c.MacroSplit.ProteinPct, c.MacroSplit.FatPct); err == nil && warning != "" {
			warnings = append(warnings, warning)
		}
	}
	if c.Client.Sex != string(macros.SexMale) && c.Client.Sex != string(macros.SexFemale) && c.Plan.Targets == nil {
		warnings = append(warnings, fmt.Sprintf("Client sex %q is not recognised; female coefficients will be used", c.Client.Sex))
	}
	if c.Client.ActivityLevel != "" && !isKnownActivity(c.Client.ActivityLevel) {
		warnings = append(warnings, fmt.Sprintf("Activity level %q is not recognised; a factor of %.3g will be used", c.Client.ActivityLevel, macros.DefaultActivityFactor))
	}
	if c.Client.Goal != "" && !isKnownGoal(c.Client.Goal) {
		warnings = append(warnings, fmt.Sprintf("Goal %q is not recognised; calories will not be adjusted", c.Client.Goal))
	}
	if c.Client.Formula != "" && !isKnownFormula(string(macros.CanonicalFormula(c.Client.Formula))) && c.Plan.Targets == nil {
		warnings = append(warnings, fmt.Sprintf("Formula %q is not recognised; %s will be used", c.Client.Formula, macros.FormulaMifflinStJeor))
	}

	pv := validation.PlanValidator{
		MealsPerDay:  c.Plan.MealsPerDay,
		TolerancePct: c.Plan.TolerancePct,
		Recipes:      adapters.RecipesToRecipeInfo(c.Recipes),
	}
	return append(warnings, pv.ValidateAll()...)
}

func (c *Configuration) profileInput() validation.ProfileInput {
	return validation.ProfileInput{
		AgeYears:   c.Client.AgeYears,
		HeightCM:   c.Client.HeightCM,
		WeightKG:   c.Client.WeightKG,
		BodyFatPct: c.Client.BodyFatPct,
	}
}

func isKnownActivity(label string) bool {
	for _, level := range macros.ActivityLevels() {
		if string(level) == label {
			return true
		}
	}
	return false
}

func isKnownGoal(label string) bool {
	for _, goal := range macros.Goals() {
		if string(goal) == label {
			return true
		}
	}
	return false
}

func isKnownFormula(label string) bool {
	for _, formula := range macros.Formulas() {
		if string(formula) == label {
			return true
		}
	}
	return false
}
