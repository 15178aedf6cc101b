package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crisk221/jm-peak-performance-sub000/internal/config"
)

const testConfigPath = "../../test/test_config.yaml"

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		config   config.LoggingConfig
		override string
		wantErr  bool
	}{
		{name: "defaults", config: config.LoggingConfig{}},
		{name: "console debug", config: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "json warn", config: config.LoggingConfig{Level: "warn", Format: "json"}},
		{name: "override wins", config: config.LoggingConfig{Level: "bogus"}, override: "error"},
		{name: "invalid level", config: config.LoggingConfig{Level: "verbose"}, wantErr: true},
		{name: "invalid format", config: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatalf("expected logger, got nil")
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mealplan.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected log file to contain message, got %q", string(data))
	}
}

func TestTargetsCommand(t *testing.T) {
	out, err := runCommand(t, "targets", "--config", testConfigPath, "--log-level", "error")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Calories: 1,524 kcal", "Protein:  114.0 g", "Carbs:    152.0 g", "Fat:      51.0 g"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGenerateCommandPretty(t *testing.T) {
	out, err := runCommand(t, "generate", "--config", testConfigPath, "--log-level", "error")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"--- Meal plan draft ", "=== Day 1 (2025-03-10) ===", "=== Day 3 (2025-03-12) ===", "Plan status:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	for _, excluded := range []string{"Peanut Butter Toast", "Turkey Chili"} {
		if strings.Contains(out, excluded) {
			t.Fatalf("expected %q to be filtered out, got:\n%s", excluded, out)
		}
	}
}

func TestGenerateCommandCSV(t *testing.T) {
	out, err := runCommand(t, "generate", "--config", testConfigPath, "--log-level", "error", "-o", "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("expected valid csv, got error %v", err)
	}
	// header plus three items and one total per day
	if len(records) != 1+3*4 {
		t.Fatalf("expected %d records, got %d", 1+3*4, len(records))
	}
	if records[0][0] != "day" {
		t.Fatalf("expected header row, got %v", records[0])
	}
}

func TestGenerateCommandSeedIsReproducible(t *testing.T) {
	first, err := runCommand(t, "generate", "--config", testConfigPath, "--log-level", "error", "-o", "csv", "--seed", "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := runCommand(t, "generate", "--config", testConfigPath, "--log-level", "error", "-o", "csv", "--seed", "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical drafts for the same seed, got:\n%s\nand:\n%s", first, second)
	}
}

func TestGenerateCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing config", args: []string{"generate", "--config", filepath.Join(t.TempDir(), "missing.yaml")}},
		{name: "invalid output format", args: []string{"generate", "--config", testConfigPath, "--log-level", "error", "-o", "json"}},
		{name: "invalid log level", args: []string{"generate", "--config", testConfigPath, "--log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCommand(t, tt.args...); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestGenerateCommandNoSuitableRecipes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	content := `client:
  sex: female
  ageYears: 30
  heightCm: 165
  weightKg: 60
  activityLevel: moderate
  goal: maintain
  dietaryRestrictions: [vegan]
logging:
  level: error
recipes:
  - id: steak
    title: Steak and Potatoes
    tags: [gluten-free]
    per_serving: {kcal: 700, protein: 50, carbs: 40, fat: 35}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := runCommand(t, "generate", "--config", path)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to generate meal plan") {
		t.Fatalf("expected generation error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != Version {
		t.Fatalf("expected %q, got %q", Version, out)
	}
}
