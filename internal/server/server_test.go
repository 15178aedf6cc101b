package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crisk221/jm-peak-performance-sub000/internal/planner"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/macros"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func testCatalog() []planner.Recipe {
	return []planner.Recipe{
		{ID: "a", Title: "Chicken Rice", Tags: []string{"gluten-free"}, PerServing: nutrition.Macros{Kcal: 200, Protein: 20, Carbs: 20, Fat: 8}},
		{ID: "b", Title: "Lentil Soup", Tags: []string{"vegan"}, PerServing: nutrition.Macros{Kcal: 180, Protein: 8, Carbs: 30, Fat: 6}},
	}
}

func newTestHandler(catalog []planner.Recipe) http.Handler {
	return NewHandler(zap.NewNop(), 64*1024, "1.2.3", catalog)
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) Problem {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

const feasiblePlanBody = `{
	"targets": {"kcal": 450, "protein_g": 32, "carbs_g": 56, "fat_g": 16},
	"days": 2,
	"meals_per_day": 2,
	"tolerance_pct": 15,
	"start_date": "2025-03-10",
	"seed": 7
}`

func TestHealthAndVersion(t *testing.T) {
	h := newTestHandler(testCatalog())

	rec := doRequest(t, h, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.EqualValues(t, 2, health["recipes"])

	rec = doRequest(t, h, http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.2.3"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestVersionDefaultsToDev(t *testing.T) {
	h := NewHandler(nil, 0, "  ", nil)
	rec := doRequest(t, h, http.MethodGet, "/api/version", "")
	assert.JSONEq(t, `{"version":"dev"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(testCatalog())
	rec := doRequest(t, h, http.MethodGet, "/api/plans", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecipesListsCatalog(t *testing.T) {
	h := newTestHandler(testCatalog())
	rec := doRequest(t, h, http.MethodGet, "/api/recipes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Recipes []planner.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Recipes, 2)
	assert.Equal(t, "a", body.Recipes[0].ID)
}

func TestTargets(t *testing.T) {
	h := newTestHandler(nil)

	body := `{"profile": {"sex": "male", "age_years": 25, "height_cm": 183, "weight_kg": 100,
		"activity_level": "bmr", "goal": "lose_1"}}`
	rec := doRequest(t, h, http.MethodPost, "/api/targets", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp targetsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, macros.Targets{Kcal: 1524, ProteinG: 114, CarbsG: 152, FatG: 51}, resp.Targets)
	assert.InDelta(t, 2023.75, resp.BMR, 0.01)
	assert.InDelta(t, 2023.75, resp.TDEE, 0.01)
	assert.Equal(t, 1.0, resp.ActivityFactor)
	assert.Empty(t, resp.Warnings)
}

func TestTargetsSplitWarning(t *testing.T) {
	h := newTestHandler(nil)

	body := `{"profile": {"sex": "female", "age_years": 30, "height_cm": 165, "weight_kg": 60,
		"activity_level": "sedentary", "goal": "maintain"},
		"split": {"mode": "percent", "carb_pct": 50, "protein_pct": 30, "fat_pct": 30}}`
	rec := doRequest(t, h, http.MethodPost, "/api/targets", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp targetsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "110.0%")
}

func TestTargetsRejectsBadInput(t *testing.T) {
	h := newTestHandler(nil)

	tests := []struct {
		name   string
		body   string
		status int
		detail string
	}{
		{
			name:   "malformed json",
			body:   `{"profile":`,
			status: http.StatusBadRequest,
			detail: "invalid JSON",
		},
		{
			name:   "unknown field",
			body:   `{"profile": {"sex": "male"}, "extra": true}`,
			status: http.StatusBadRequest,
			detail: "invalid JSON",
		},
		{
			name:   "negative weight",
			body:   `{"profile": {"sex": "male", "age_years": 25, "height_cm": 183, "weight_kg": -100}}`,
			status: http.StatusBadRequest,
			detail: "weight_kg",
		},
		{
			name: "negative split percent",
			body: `{"profile": {"sex": "male", "age_years": 25, "height_cm": 183, "weight_kg": 100},
				"split": {"carb_pct": -10, "protein_pct": 60, "fat_pct": 50}}`,
			status: http.StatusBadRequest,
			detail: "carb percent",
		},
		{
			name: "negative split grams",
			body: `{"profile": {"sex": "male", "age_years": 25, "height_cm": 183, "weight_kg": 100, "activity_level": "sedentary"},
				"split": {"mode": "grams", "protein_g": -100, "carbs_g": 200, "fat_g": 50}}`,
			status: http.StatusBadRequest,
			detail: "protein grams",
		},
		{
			name:   "trailing data after object",
			body:   `{"profile": {"sex": "male", "age_years": 25, "height_cm": 183, "weight_kg": 100}}{"garbage": 1}`,
			status: http.StatusBadRequest,
			detail: "single object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/api/targets", tt.body)
			require.Equal(t, tt.status, rec.Code)
			p := decodeProblem(t, rec)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, "/api/targets", p.Instance)
			assert.Contains(t, p.Detail, tt.detail)
		})
	}
}

func TestPlansFromCatalog(t *testing.T) {
	h := newTestHandler(testCatalog())

	rec := doRequest(t, h, http.MethodPost, "/api/plans", feasiblePlanBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp planResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Draft)
	assert.NotEmpty(t, resp.Draft.ID)
	assert.NotEmpty(t, resp.Duration)
	require.Len(t, resp.Draft.Days, 2)
	assert.Equal(t, "2025-03-10", resp.Draft.Days[0].Date)
	assert.Equal(t, "2025-03-11", resp.Draft.Days[1].Date)

	for _, day := range resp.Draft.Days {
		require.Len(t, day.Items, 2)
		// With two recipes and a one-slot lookback every day is one a and one b.
		assert.NotEqual(t, day.Items[0].RecipeID, day.Items[1].RecipeID)
		assert.True(t, day.OnTarget.Overall, "day %d should be on target: %+v", day.Index, day.TotalMacros)
		for _, item := range day.Items {
			assert.GreaterOrEqual(t, item.Servings, 0.25)
			assert.LessOrEqual(t, item.Servings, 20.0)
		}
	}
}

func TestPlansAreReproducibleWithSeed(t *testing.T) {
	h := newTestHandler(testCatalog())

	decodeDays := func() []planner.PlanDay {
		rec := doRequest(t, h, http.MethodPost, "/api/plans", feasiblePlanBody)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp planResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.Draft.Days
	}

	assert.Equal(t, decodeDays(), decodeDays())
}

func TestPlansUseRequestRecipes(t *testing.T) {
	h := newTestHandler(nil)

	body := `{
		"targets": {"kcal": 600, "protein_g": 40, "carbs_g": 60, "fat_g": 20},
		"days": 1,
		"meals_per_day": 2,
		"recipes": [
			{"id": "x", "title": "Tofu Bowl", "tags": ["vegan"], "per_serving": {"kcal": 300, "protein": 20, "carbs": 30, "fat": 10}},
			{"id": "y", "title": "Bean Wrap", "tags": ["vegan"], "per_serving": {"kcal": 300, "protein": 20, "carbs": 30, "fat": 10}}
		]
	}`
	rec := doRequest(t, h, http.MethodPost, "/api/plans", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp planResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Draft.Days, 1)
	day := resp.Draft.Days[0]
	assert.True(t, day.OnTarget.Overall)
	assert.True(t, day.Optimization.Converged)
	assert.Equal(t, 0, day.Optimization.Iterations)
	assert.Equal(t, 10.0, resp.Draft.TolerancePct)
}

func TestPlansNoSuitableRecipes(t *testing.T) {
	tests := []struct {
		name    string
		catalog []planner.Recipe
		body    string
	}{
		{
			name:    "constraints exclude every recipe",
			catalog: testCatalog(),
			body: `{"targets": {"kcal": 2000, "protein_g": 150, "carbs_g": 200, "fat_g": 67},
				"constraints": {"allergies": ["chicken", "lentil"]}}`,
		},
		{
			name: "no recipes anywhere",
			body: `{"targets": {"kcal": 2000, "protein_g": 150, "carbs_g": 200, "fat_g": 67}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestHandler(tt.catalog), http.MethodPost, "/api/plans", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			p := decodeProblem(t, rec)
			assert.Equal(t, "No Suitable Recipes", p.Title)
			assert.Contains(t, p.Detail, planner.ErrNoSuitableRecipes.Error())
		})
	}
}

func TestPlansValidationErrors(t *testing.T) {
	h := newTestHandler(testCatalog())

	tests := []struct {
		name   string
		target string
		body   string
		detail string
	}{
		{
			name:   "profile required without targets",
			target: "/api/plans",
			body:   `{"days": 1}`,
			detail: "age",
		},
		{
			name:   "too many days",
			target: "/api/plans",
			body:   `{"targets": {"kcal": 2000}, "days": 90}`,
			detail: "days",
		},
		{
			name:   "negative explicit targets",
			target: "/api/plans",
			body:   `{"targets": {"kcal": 2000, "protein_g": -32, "carbs_g": 200, "fat_g": 67}}`,
			detail: "protein target",
		},
		{
			name:   "bad start date",
			target: "/api/plans",
			body:   `{"targets": {"kcal": 2000}, "start_date": "March 10"}`,
			detail: "startDate",
		},
		{
			name:   "unsupported output format",
			target: "/api/plans?format=xml",
			body:   feasiblePlanBody,
			detail: "output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, decodeProblem(t, rec).Detail, tt.detail)
		})
	}
}

func TestPlansRenderedFormats(t *testing.T) {
	h := newTestHandler(testCatalog())

	rec := doRequest(t, h, http.MethodPost, "/api/plans?format=csv", feasiblePlanBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1+2*3)

	rec = doRequest(t, h, http.MethodPost, "/api/plans?format=yaml", feasiblePlanBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	var exported planner.MealPlanDraft
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &exported))
	assert.Len(t, exported.Days, 2)

	rec = doRequest(t, h, http.MethodPost, "/api/plans?format=pretty", feasiblePlanBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "=== Day 1 (2025-03-10) ===")
}

func TestPlansRejectOversizedBody(t *testing.T) {
	h := NewHandler(zap.NewNop(), 64, "test", testCatalog())

	rec := doRequest(t, h, http.MethodPost, "/api/plans", feasiblePlanBody)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, decodeProblem(t, rec).Detail, "64 bytes")
}
