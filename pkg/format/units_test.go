package format

import "testing"

func TestKcal(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "small", input: 450, expected: "450 kcal"},
		{name: "rounds", input: 429.6, expected: "430 kcal"},
		{name: "thousands", input: 2150, expected: "2,150 kcal"},
		{name: "millions", input: 1234567, expected: "1,234,567 kcal"},
		{name: "negative", input: -1000, expected: "-1,000 kcal"},
		{name: "zero", input: 0, expected: "0 kcal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kcal(tt.input); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestGramsAndServings(t *testing.T) {
	if got := Grams(152.45); got != "152.4 g" && got != "152.5 g" {
		t.Fatalf("unexpected grams rendering %q", got)
	}
	if got := Grams(16); got != "16.0 g" {
		t.Fatalf("expected 16.0 g, got %q", got)
	}

	servings := map[float64]string{1: "1", 1.25: "1.25", 0.5: "0.5", 20: "20"}
	for input, expected := range servings {
		if got := Servings(input); got != expected {
			t.Errorf("Servings(%v): expected %q, got %q", input, expected, got)
		}
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		actual   float64
		target   float64
		expected string
	}{
		{actual: 430, target: 450, expected: "-4.4%"},
		{actual: 33, target: 32, expected: "+3.1%"},
		{actual: 16, target: 16, expected: "+0.0%"},
		{actual: 5, target: 0, expected: "n/a"},
	}

	for _, tt := range tests {
		if got := Delta(tt.actual, tt.target); got != tt.expected {
			t.Errorf("Delta(%v, %v): expected %q, got %q", tt.actual, tt.target, tt.expected, got)
		}
	}
}
