package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tgchart/chart"
	"tgchart/config"
	"tgchart/models"
	"tgchart/store"
	"tgchart/web/handlers"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "chartd",
		Short:        "Serve an interactive time-series chart",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("dataset", "", "Dataset JSON file (default: built-in sample)")

	rootCmd.AddCommand(newServeCmd(), newRenderCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, data, err := setup(cmd)
			if err != nil {
				return err
			}

			// Initialise UI
			dashboard, err := handlers.NewDashboard(data, cfg, logger)
			if err != nil {
				return fmt.Errorf("couldn't create dashboard: %w", err)
			}

			// Initialise Server
			server := handlers.NewServer(dashboard, cfg.Framerate, logger)
			if err = server.Start(cfg.Addr); err != nil {
				return fmt.Errorf("couldn't start server: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "HTTP listen address")
	cmd.Flags().Int("framerate", 0, "Animation frames per second")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		out  string
		from float64
		to   float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, data, err := setup(cmd)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err = chart.Snapshot(f, data, cfg.ChartOptions(), [2]float64{from, to}); err != nil {
				return fmt.Errorf("render %s: %w", out, err)
			}
			logger.WithField("out", out).Info("chart rendered")
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "Output PNG path")
	cmd.Flags().Float64Var(&from, "from", 0, "Left edge of the window, percent")
	cmd.Flags().Float64Var(&to, "to", 100, "Right edge of the window, percent")
	return cmd
}

func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, *models.Dataset, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, nil, err
	}

	data, err := store.Load(cfg.Dataset)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("couldn't load dataset: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"dataset": cfg.Dataset,
		"samples": data.SampleCount(),
		"lines":   len(data.Lines()),
	}).Debug("dataset loaded")
	return cfg, logger, data, nil
}
