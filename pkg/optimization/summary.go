// Package optimization provides shared data structures for optimization results.
package optimization

// Adjustment records a single serving change made by the optimizer.
type Adjustment struct {
	Iteration int     `json:"iteration" yaml:"iteration"`
	Slot      int     `json:"slot" yaml:"slot"`
	RecipeID  string  `json:"recipe_id" yaml:"recipe_id"`
	Axis      string  `json:"axis" yaml:"axis"`
	From      float64 `json:"from" yaml:"from"`
	To        float64 `json:"to" yaml:"to"`
}

// Summary captures the result of optimizing one day of a plan.
type Summary struct {
	Day         int          `json:"day" yaml:"day"`
	Iterations  int          `json:"iterations" yaml:"iterations"`
	Converged   bool         `json:"converged" yaml:"converged"`
	Adjustments []Adjustment `json:"adjustments,omitempty" yaml:"adjustments,omitempty"`
	Notes       []string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}
