package main

import (
	"github.com/crisk221/jm-peak-performance-sub000/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTargetsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "Print the daily macro targets for the configured client",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := loadPlanConfig(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			targets := conf.Targets()
			logger.Debug("computed client targets",
				zap.String("op", "main"),
				zap.String("client", conf.Client.Name),
				zap.Float64("kcal", targets.Kcal),
			)
			return output.PrettyTargets(cmd.OutOrStdout(), targets)
		},
	}
}
