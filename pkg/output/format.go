// Package output provides utilities for formatting and displaying meal plan drafts.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/crisk221/jm-peak-performance-sub000/internal/planner"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/format"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/macros"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/nutrition"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Render writes draft to w in the named output format.
func Render(w io.Writer, outputFormat string, draft *planner.MealPlanDraft) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormatTo(w, draft)
	case constants.OutputFormatCSV:
		return CsvFormatTo(w, draft)
	case constants.OutputFormatYAML:
		return YAMLFormatTo(w, draft)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormatTo writes a human-readable rather than machine-readable table to w.
func PrettyFormatTo(w io.Writer, draft *planner.MealPlanDraft) error {
	p := message.NewPrinter(language.English)
	target := nutrition.FromTargets(draft.TargetMacros)

	if _, err := fmt.Fprintf(w, "--- Meal plan draft %s ---\n", draft.ID); err != nil {
		return err
	}
	_, _ = p.Fprintf(w, "Target: %.0f kcal | protein %.1f g | carbs %.1f g | fat %.1f g | tolerance %.1f%%\n",
		target.Kcal, target.Protein, target.Carbs, target.Fat, draft.TolerancePct)

	for _, day := range draft.Days {
		_, _ = fmt.Fprintf(w, "\n=== Day %d%s ===\n", day.Index, dateSuffix(day.Date))
		_, _ = fmt.Fprintf(w, "Recipe | Servings | Kcal | Protein | Carbs | Fat\n")
		_, _ = fmt.Fprintf(w, "______ | ________ | ____ | _______ | _____ | ___\n")
		for _, item := range day.Items {
			m := item.Macros()
			_, _ = p.Fprintf(w, "%s | %s | %.0f | %.1f | %.1f | %.1f\n",
				item.Recipe.Title, format.Servings(item.Servings), m.Kcal, m.Protein, m.Carbs, m.Fat)
		}
		t := day.TotalMacros
		_, _ = p.Fprintf(w, "Total | | %.0f (%s) | %.1f (%s) | %.1f (%s) | %.1f (%s)\n",
			t.Kcal, format.Delta(t.Kcal, target.Kcal),
			t.Protein, format.Delta(t.Protein, target.Protein),
			t.Carbs, format.Delta(t.Carbs, target.Carbs),
			t.Fat, format.Delta(t.Fat, target.Fat))
		_, _ = fmt.Fprintf(w, "Status: %s | badges: %s\n", onTargetLabel(day.OnTarget.Overall), badgeLine(day.Badges))
		_, _ = fmt.Fprintf(w, "Optimizer: %d iterations, converged=%t\n", day.Optimization.Iterations, day.Optimization.Converged)
		for _, note := range day.Optimization.Notes {
			_, _ = fmt.Fprintf(w, "Note: %s\n", note)
		}
	}

	_, err := fmt.Fprintf(w, "\nPlan status: %s\n", onTargetLabel(draft.OnTarget()))
	return err
}

// CsvFormatTo writes comma-separated values: one row per plan item followed by a total row per day.
func CsvFormatTo(w io.Writer, draft *planner.MealPlanDraft) error {
	cw := csv.NewWriter(w)
	header := []string{"day", "date", "slot", "recipe_id", "recipe", "servings", "kcal", "protein", "carbs", "fat", "on_target"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, day := range draft.Days {
		for slot, item := range day.Items {
			m := item.Macros()
			row := []string{
				fmt.Sprint(day.Index), day.Date, fmt.Sprint(slot + 1), item.RecipeID, item.Recipe.Title,
				format.Servings(item.Servings), decimal(m.Kcal), decimal(m.Protein), decimal(m.Carbs), decimal(m.Fat), "",
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		t := day.TotalMacros
		total := []string{
			fmt.Sprint(day.Index), day.Date, "total", "", "", "",
			decimal(t.Kcal), decimal(t.Protein), decimal(t.Carbs), decimal(t.Fat), fmt.Sprint(day.OnTarget.Overall),
		}
		if err := cw.Write(total); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// YAMLFormatTo exports the full draft, including optimizer summaries, as YAML.
func YAMLFormatTo(w io.Writer, draft *planner.MealPlanDraft) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(draft); err != nil {
		return fmt.Errorf("encoding draft as yaml: %w", err)
	}
	return enc.Close()
}

// PrettyTargets writes computed daily targets in human-readable form.
func PrettyTargets(w io.Writer, targets macros.Targets) error {
	_, err := fmt.Fprintf(w, "Calories: %s\nProtein:  %s\nCarbs:    %s\nFat:      %s\n",
		format.Kcal(targets.Kcal), format.Grams(targets.ProteinG), format.Grams(targets.CarbsG), format.Grams(targets.FatG))
	return err
}

func decimal(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func dateSuffix(date string) string {
	if date == "" {
		return ""
	}
	return " (" + date + ")"
}

func onTargetLabel(ok bool) string {
	if ok {
		return "on target"
	}
	return "off target"
}

func badgeLine(r nutrition.ToleranceReport) string {
	parts := make([]string, 0, 4)
	for _, b := range []struct {
		name string
		ok   bool
	}{{"kcal", r.Kcal}, {"protein", r.Protein}, {"carbs", r.Carbs}, {"fat", r.Fat}} {
		mark := "x"
		if b.ok {
			mark = "ok"
		}
		parts = append(parts, b.name+"="+mark)
	}
	return strings.Join(parts, " ")
}
