package config

import (
	"fmt"

	"github.com/crisk221/jm-peak-performance-sub000/internal/optimizer"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
)

// OptimizerConfig overrides the serving optimizer's defaults. Zero values
// keep the defaults.
type OptimizerConfig struct {
	MaxIterations int     `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
	Step          float64 `yaml:"step,omitempty" mapstructure:"step"`
	MinServings   float64 `yaml:"minServings,omitempty" mapstructure:"minServings"`
	MaxServings   float64 `yaml:"maxServings,omitempty" mapstructure:"maxServings"`
}

// Validate returns an error when the optimizer overrides cannot be honored.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("optimizer maxIterations %d must not be negative", o.MaxIterations)
	}
	if o.Step < 0 || o.MinServings < 0 || o.MaxServings < 0 {
		return fmt.Errorf("optimizer step and serving bounds must not be negative")
	}
	if o.Step > constants.MaxServings {
		return fmt.Errorf("optimizer step %.2f exceeds the serving cap %.0f", o.Step, constants.MaxServings)
	}
	if o.MinServings > 0 && o.MaxServings > 0 && o.MinServings > o.MaxServings {
		return fmt.Errorf("optimizer minServings %.2f must not exceed maxServings %.2f", o.MinServings, o.MaxServings)
	}
	return nil
}

// Settings converts the overrides into normalized optimizer settings using
// tolerancePct as the convergence band.
func (o OptimizerConfig) Settings(tolerancePct float64) optimizer.Settings {
	return optimizer.Settings{
		MaxIterations: o.MaxIterations,
		Step:          o.Step,
		MinServings:   o.MinServings,
		MaxServings:   o.MaxServings,
		TolerancePct:  tolerancePct,
	}.Normalize()
}
