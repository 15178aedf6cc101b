package macros

import "strings"

// ActivityLevel is one of the canonical activity descriptions shown to
// clients. Lookups against it are exact; aliases go through
// CanonicalActivityLevel first.
type ActivityLevel string

const (
	ActivityBasal       ActivityLevel = "Basal Metabolic Rate (BMR)"
	ActivitySedentary   ActivityLevel = "Sedentary: little or no exercise"
	ActivityLight       ActivityLevel = "Light: exercise 1-3 times/week"
	ActivityModerate    ActivityLevel = "Moderate: exercise 4-5 times/week"
	ActivityActive      ActivityLevel = "Active: daily exercise or intense exercise 3-4 times/week"
	ActivityVeryActive  ActivityLevel = "Very Active: intense exercise 6-7 times/week"
	ActivityExtraActive ActivityLevel = "Extra Active: very intense exercise daily, or physical job"
)

// DefaultActivityFactor is returned for labels outside the table.
const DefaultActivityFactor = 1.2

var activityFactors = map[ActivityLevel]float64{
	ActivityBasal:       1.0,
	ActivitySedentary:   1.2,
	ActivityLight:       1.375,
	ActivityModerate:    1.55,
	ActivityActive:      1.725,
	ActivityVeryActive:  1.9,
	ActivityExtraActive: 1.95,
}

// ActivityFactor returns the TDEE multiplier for level, or the sedentary
// multiplier when level is not a canonical description.
func ActivityFactor(level ActivityLevel) float64 {
	if factor, ok := activityFactors[level]; ok {
		return factor
	}
	return DefaultActivityFactor
}

// ActivityLevels lists the canonical activity descriptions in ascending order.
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{
		ActivityBasal,
		ActivitySedentary,
		ActivityLight,
		ActivityModerate,
		ActivityActive,
		ActivityVeryActive,
		ActivityExtraActive,
	}
}

// CanonicalActivityLevel maps short or legacy labels onto the canonical
// descriptions. Unrecognized labels are returned trimmed but otherwise
// untouched so that ActivityFactor falls back to its default.
func CanonicalActivityLevel(value string) ActivityLevel {
	trimmed := strings.TrimSpace(value)
	if _, ok := activityFactors[ActivityLevel(trimmed)]; ok {
		return ActivityLevel(trimmed)
	}
	switch strings.ToLower(trimmed) {
	case "bmr", "basal":
		return ActivityBasal
	case "sedentary":
		return ActivitySedentary
	case "light", "lightly_active", "lightly active":
		return ActivityLight
	case "moderate", "moderately_active", "moderately active":
		return ActivityModerate
	case "active":
		return ActivityActive
	case "very_active", "very active", "very-active":
		return ActivityVeryActive
	case "extra_active", "extra active", "extra-active", "athlete":
		return ActivityExtraActive
	default:
		return ActivityLevel(trimmed)
	}
}

// Goal is one of the canonical weight goals shown to clients.
type Goal string

const (
	GoalMaintain    Goal = "Maintain weight"
	GoalMildLoss    Goal = "Mild weight loss of 0.5 lb per week"
	GoalLoss        Goal = "Weight loss of 1 lb per week"
	GoalExtremeLoss Goal = "Extreme weight loss of 2 lb per week"
	GoalMildGain    Goal = "Mild weight gain of 0.5 lb per week"
	GoalGain        Goal = "Weight gain of 1 lb per week"
	GoalExtremeGain Goal = "Extreme weight gain of 2 lb per week"
)

var goalDeltas = map[Goal]float64{
	GoalMaintain:    0,
	GoalMildLoss:    -250,
	GoalLoss:        -500,
	GoalExtremeLoss: -1000,
	GoalMildGain:    250,
	GoalGain:        500,
	GoalExtremeGain: 1000,
}

// GoalDeltaKcal returns the daily calorie adjustment for goal. Labels outside
// the table are treated as maintenance.
func GoalDeltaKcal(goal Goal) float64 {
	return goalDeltas[goal]
}

// Goals lists the canonical goals from largest deficit to largest surplus.
func Goals() []Goal {
	return []Goal{
		GoalExtremeLoss,
		GoalLoss,
		GoalMildLoss,
		GoalMaintain,
		GoalMildGain,
		GoalGain,
		GoalExtremeGain,
	}
}

// CanonicalGoal maps short or legacy goal labels onto the canonical goals.
func CanonicalGoal(value string) Goal {
	trimmed := strings.TrimSpace(value)
	if _, ok := goalDeltas[Goal(trimmed)]; ok {
		return Goal(trimmed)
	}
	switch strings.ToLower(trimmed) {
	case "maintain", "maintenance":
		return GoalMaintain
	case "mild_loss", "lose_0_5", "lose-0.5":
		return GoalMildLoss
	case "loss", "lose", "lose_1", "lose-1":
		return GoalLoss
	case "extreme_loss", "lose_2", "lose-2", "cut":
		return GoalExtremeLoss
	case "mild_gain", "gain_0_5", "gain-0.5":
		return GoalMildGain
	case "gain", "gain_1", "gain-1":
		return GoalGain
	case "extreme_gain", "gain_2", "gain-2", "bulk":
		return GoalExtremeGain
	default:
		return Goal(trimmed)
	}
}
