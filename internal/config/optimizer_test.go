package config

import "testing"

func TestOptimizerConfigValidate(t *testing.T) {
	testCases := []struct {
		name      string
		config    OptimizerConfig
		expectErr bool
	}{
		{name: "zero value keeps defaults", config: OptimizerConfig{}},
		{name: "custom bounds", config: OptimizerConfig{MaxIterations: 100, Step: 0.5, MinServings: 0.5, MaxServings: 6}},
		{name: "negative iterations", config: OptimizerConfig{MaxIterations: -1}, expectErr: true},
		{name: "negative step", config: OptimizerConfig{Step: -0.25}, expectErr: true},
		{name: "step above serving cap", config: OptimizerConfig{Step: 25}, expectErr: true},
		{name: "min above max", config: OptimizerConfig{MinServings: 5, MaxServings: 2}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr && err == nil {
				t.Fatalf("expected error for %+v", tc.config)
			}
			if !tc.expectErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	var nilConfig *OptimizerConfig
	if err := nilConfig.Validate(); err == nil {
		t.Fatalf("expected error for nil optimizer configuration")
	}
}

func TestOptimizerConfigSettings(t *testing.T) {
	settings := OptimizerConfig{Step: 0.5, MinServings: 0.3, MaxServings: 3.7}.Settings(0)

	if settings.MaxIterations != 50 {
		t.Errorf("expected default iterations, got %d", settings.MaxIterations)
	}
	if settings.MinServings != 0.5 || settings.MaxServings != 3.5 {
		t.Errorf("expected bounds snapped to [0.5, 3.5], got [%v, %v]", settings.MinServings, settings.MaxServings)
	}
	if settings.TolerancePct != 10 {
		t.Errorf("expected default tolerance, got %v", settings.TolerancePct)
	}
}
