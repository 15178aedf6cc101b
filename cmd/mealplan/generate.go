package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crisk221/jm-peak-performance-sub000/internal/planner"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/output"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var outputFormat string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a meal plan draft from the plan configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := loadPlanConfig(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			format := conf.Output.Format
			if outputFormat != "" {
				format = strings.ToLower(strings.TrimSpace(outputFormat))
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				conf.Plan.Seed = &seed
			}

			req, err := conf.PlanRequest()
			if err != nil {
				return err
			}

			generator := planner.NewGenerator(logger, conf.OptimizerSettings(), conf.RandomSource())
			draft, err := generator.Generate(req, conf.Recipes)
			if err != nil {
				if errors.Is(err, planner.ErrNoSuitableRecipes) {
					logger.Error("no recipes satisfy the client's constraints",
						zap.String("op", "main"),
						zap.Error(err),
					)
				}
				return fmt.Errorf("failed to generate meal plan: %w", err)
			}

			if !draft.OnTarget() {
				logger.Warn("some plan days are outside the tolerance band",
					zap.String("op", "main"),
					zap.String("draft", draft.ID),
				)
			}

			return output.Render(cmd.OutOrStdout(), format, draft)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output-format", "o", "", "type of output override: pretty, csv, yaml")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible slot assignment (overrides plan.seed)")
	return cmd
}
