package main

import (
	"fmt"
	"os"

	"github.com/de-tools/pulse-atlas/pkg/server"
	"github.com/de-tools/pulse-atlas/pkg/services/acts"
	"github.com/de-tools/pulse-atlas/pkg/services/config"
	"github.com/de-tools/pulse-atlas/pkg/services/survey"
	"github.com/de-tools/pulse-atlas/pkg/store/source"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	datasetPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Pulse Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&datasetPath, "dataset", "",
		"Dataset source: CSV path, s3://bucket/key or duckdb://path.db")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if datasetPath != "" {
		cfg.Dataset.Source = datasetPath
	}

	logger := cfg.Log.NewLogger(os.Stdout)
	ctx := logger.WithContext(cmd.Context())

	src, err := source.Open(ctx, cfg.Dataset.Source, source.Options{S3Region: cfg.Dataset.S3Region})
	if err != nil {
		return fmt.Errorf("failed to open dataset source: %w", err)
	}
	defer src.Close()

	// requests get the same error as a 500 when loading failed
	session := survey.NewSession(src)
	if ds, err := session.Dataset(ctx); err != nil {
		logger.Error().Err(err).Str("source", src.URI).Msg("dataset could not be loaded")
	} else {
		logger.Info().Str("source", src.URI).Int("records", ds.Len()).Msg("dataset loaded")
	}

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Runner:  acts.NewDispatcher(acts.NewDefaultRegistry(), nil),
			Dataset: session,
			Logger:  logger,
		},
	})

	return api.Start(ctx)
}
