// Package constants provides shared constants for the meal planner.
package constants

// DateLayout is the format expected for plan start dates in config files and
// is also the output date format for plan days.
const DateLayout = "2006-01-02"

// Energy constants
const (
	// KcalPerGramProtein is the energy density of protein
	KcalPerGramProtein = 4.0

	// KcalPerGramCarbs is the energy density of carbohydrate
	KcalPerGramCarbs = 4.0

	// KcalPerGramFat is the energy density of fat
	KcalPerGramFat = 9.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxGoalDeltaKcal bounds how far a goal may move target calories from TDEE
	MaxGoalDeltaKcal = 1000.0
)

// Tolerance constants
const (
	// DefaultKcalTolerance is the fractional band for the calorie "on target" check
	DefaultKcalTolerance = 0.05

	// DefaultMacroTolerance is the fractional band for protein, carbs and fat
	DefaultMacroTolerance = 0.08

	// DefaultPlanTolerancePct is the tolerance, in percent, used by plan generation
	DefaultPlanTolerancePct = 10.0
)

// Optimizer defaults
const (
	// DefaultMaxIterations caps the serving adjustment loop
	DefaultMaxIterations = 50

	// ServingStep is the serving increment used by the optimizer
	ServingStep = 0.25

	// MinServings is the smallest serving the optimizer will leave on a slot
	MinServings = ServingStep

	// MaxServings is the largest serving the optimizer will grow a slot to
	MaxServings = 20.0

	// InitialServings is the serving size assigned to a freshly filled slot
	InitialServings = 1.0
)

// Plan defaults
const (
	// DefaultDays is the plan length used when none is configured
	DefaultDays = 7

	// DefaultMealsPerDay is the number of slots per day used when none is configured
	DefaultMealsPerDay = 3

	// MaxDays bounds the plan length accepted from a request
	MaxDays = 31

	// MaxMealsPerDay bounds the slots per day accepted from a request
	MaxMealsPerDay = 8
)

// Client input ranges accepted at the configuration and API boundary
const (
	MinAgeYears   = 13.0
	MaxAgeYears   = 100.0
	MinHeightCM   = 100.0
	MaxHeightCM   = 250.0
	MinWeightKG   = 30.0
	MaxWeightKG   = 300.0
	MinBodyFatPct = 3.0
	MaxBodyFatPct = 60.0

	// MaxTolerancePct bounds the plan tolerance band
	MaxTolerancePct = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML draft export format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "plan.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
