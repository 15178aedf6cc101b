package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crisk221/jm-peak-performance-sub000/internal/config"
	"github.com/crisk221/jm-peak-performance-sub000/internal/planner"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/macros"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/mathutil"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/output"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	catalog       []planner.Recipe
}

// NewHandler constructs the HTTP handler that serves the targets and plan
// API. catalog is the recipe pool used when a plan request carries none.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, catalog []planner.Recipe) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		catalog:       append([]planner.Recipe(nil), catalog...),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/version", h.handleVersion)
		r.Get("/recipes", h.handleRecipes)
		r.Post("/targets", h.handleTargets)
		r.Post("/plans", h.handlePlans)
	})

	return r
}

type profilePayload struct {
	Sex           string   `json:"sex"`
	AgeYears      float64  `json:"age_years"`
	HeightCM      float64  `json:"height_cm"`
	WeightKG      float64  `json:"weight_kg"`
	BodyFatPct    *float64 `json:"body_fat_pct,omitempty"`
	ActivityLevel string   `json:"activity_level"`
	Goal          string   `json:"goal"`
	Formula       string   `json:"formula,omitempty"`
}

type splitPayload struct {
	Mode       string  `json:"mode,omitempty"`
	CarbPct    float64 `json:"carb_pct,omitempty"`
	ProteinPct float64 `json:"protein_pct,omitempty"`
	FatPct     float64 `json:"fat_pct,omitempty"`
	ProteinG   float64 `json:"protein_g,omitempty"`
	CarbsG     float64 `json:"carbs_g,omitempty"`
	FatG       float64 `json:"fat_g,omitempty"`
}

type targetsPayload struct {
	Profile profilePayload `json:"profile"`
	Split   splitPayload   `json:"split"`
}

type planPayload struct {
	Profile      profilePayload      `json:"profile"`
	Targets      *macros.Targets     `json:"targets,omitempty"`
	Split        splitPayload        `json:"split"`
	Constraints  planner.Constraints `json:"constraints"`
	Recipes      []planner.Recipe    `json:"recipes,omitempty"`
	Days         int                 `json:"days,omitempty"`
	MealsPerDay  int                 `json:"meals_per_day,omitempty"`
	TolerancePct float64             `json:"tolerance_pct,omitempty"`
	StartDate    string              `json:"start_date,omitempty"`
	Seed         *uint64             `json:"seed,omitempty"`
}

type targetsResponse struct {
	Targets        macros.Targets `json:"targets"`
	BMR            float64        `json:"bmr"`
	TDEE           float64        `json:"tdee"`
	ActivityFactor float64        `json:"activity_factor"`
	Warnings       []string       `json:"warnings,omitempty"`
}

type planResponse struct {
	Draft    *planner.MealPlanDraft `json:"draft"`
	Warnings []string               `json:"warnings,omitempty"`
	Duration string                 `json:"duration"`
}

func (p profilePayload) client(constraints planner.Constraints) config.ClientConfig {
	return config.ClientConfig{
		Sex:           p.Sex,
		AgeYears:      p.AgeYears,
		HeightCM:      p.HeightCM,
		WeightKG:      p.WeightKG,
		BodyFatPct:    p.BodyFatPct,
		ActivityLevel: p.ActivityLevel,
		Goal:          p.Goal,
		Formula:       p.Formula,
		Constraints:   constraints,
	}
}

func (s splitPayload) config() config.SplitConfig {
	return config.SplitConfig{
		Mode:       s.Mode,
		CarbPct:    s.CarbPct,
		ProteinPct: s.ProteinPct,
		FatPct:     s.FatPct,
		ProteinG:   s.ProteinG,
		CarbsG:     s.CarbsG,
		FatG:       s.FatG,
	}
}

func (p planPayload) configuration(catalog []planner.Recipe) *config.Configuration {
	recipes := p.Recipes
	if len(recipes) == 0 {
		recipes = catalog
	}
	return &config.Configuration{
		Client:     p.Profile.client(p.Constraints),
		Recipes:    recipes,
		MacroSplit: p.Split.config(),
		Plan: config.PlanConfig{
			Days:         p.Days,
			MealsPerDay:  p.MealsPerDay,
			TolerancePct: p.TolerancePct,
			StartDate:    p.StartDate,
			Seed:         p.Seed,
			Targets:      p.Targets,
		},
	}
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"recipes": len(h.catalog),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleRecipes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipes": h.catalog,
	})
}

func (h *handler) handleTargets(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTargets"

	var payload targetsPayload
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}

	cfg := &config.Configuration{
		Client:     payload.Profile.client(planner.Constraints{}),
		MacroSplit: payload.Split.config(),
	}
	cfg.Normalize()

	if err := cfg.ValidateTargetInputs(); err != nil {
		h.respondProblem(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	var warnings []string
	if cfg.MacroSplit.Mode == string(macros.SplitPercent) {
		if warning, _ := validation.ValidateSplitPercents(cfg.MacroSplit.CarbPct, cfg.MacroSplit.ProteinPct, cfg.MacroSplit.FatPct); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	profile := cfg.Profile()
	bmr := profile.BMR()
	h.writeJSON(w, http.StatusOK, targetsResponse{
		Targets:        cfg.Targets(),
		BMR:            mathutil.Round(bmr),
		TDEE:           mathutil.Round(macros.TDEE(bmr, profile.Activity)),
		ActivityFactor: macros.ActivityFactor(profile.Activity),
		Warnings:       warnings,
	})
}

func (h *handler) handlePlans(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePlans"
	start := time.Now()

	outputFormat := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if outputFormat != "" && outputFormat != "json" {
		if err := validation.ValidateOutputFormat(outputFormat); err != nil {
			h.respondProblem(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
	}

	var payload planPayload
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}

	cfg := payload.configuration(h.catalog)
	if len(cfg.Recipes) == 0 {
		h.respondProblem(w, r, http.StatusUnprocessableEntity,
			fmt.Sprintf("%v: the request carries no recipes and no catalog is configured", planner.ErrNoSuitableRecipes), op)
		return
	}
	if err := cfg.Validate(); err != nil {
		h.respondProblem(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	req, err := cfg.PlanRequest()
	if err != nil {
		h.respondProblem(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	generator := planner.NewGenerator(h.logger, cfg.OptimizerSettings(), cfg.RandomSource())
	draft, err := generator.Generate(req, cfg.Recipes)
	if err != nil {
		if errors.Is(err, planner.ErrNoSuitableRecipes) {
			h.respondProblem(w, r, http.StatusUnprocessableEntity, err.Error(), op)
			return
		}
		h.respondProblem(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to generate plan: %v", err), op)
		return
	}

	switch outputFormat {
	case "", "json":
		h.writeJSON(w, http.StatusOK, planResponse{
			Draft:    draft,
			Warnings: cfg.ValidateConfiguration(),
			Duration: time.Since(start).String(),
		})
	default:
		var buf bytes.Buffer
		if err := output.Render(&buf, outputFormat, draft); err != nil {
			h.respondProblem(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render plan: %v", err), op)
			return
		}
		w.Header().Set("Content-Type", contentTypes[outputFormat])
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			h.logger.Warn("failed to write response",
				zap.String("op", op),
				zap.Error(err),
			)
		}
	}
}

var contentTypes = map[string]string{
	constants.OutputFormatPretty: "text/plain; charset=utf-8",
	constants.OutputFormatCSV:    "text/csv; charset=utf-8",
	constants.OutputFormatYAML:   "application/yaml",
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondProblem(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondProblem(w, r, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err), op)
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.respondProblem(w, r, http.StatusBadRequest, "invalid JSON: request body must contain a single object", op)
		return false
	}
	return true
}

func (h *handler) respondProblem(w http.ResponseWriter, r *http.Request, status int, detail string, op string) {
	if h.logger != nil {
		h.logger.Warn("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("requestId", middleware.GetReqID(r.Context())),
			zap.String("error", detail),
		)
	}
	if err := writeProblemJSON(w, problemFor(r, status, detail)); err != nil {
		h.logger.Error("failed to encode problem response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.Info("request",
			zap.String("op", "server.request"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("requestId", middleware.GetReqID(r.Context())),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
