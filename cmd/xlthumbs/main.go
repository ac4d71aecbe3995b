// Package main provides the CLI entry point for xlthumbs.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"xlthumbs/core/interfaces"
	"xlthumbs/core/pipeline"
	"xlthumbs/core/services"
	httpstd "xlthumbs/infrastructure/http/standard"
	"xlthumbs/infrastructure/logger/logrusadapter"
	"xlthumbs/pkg/config"
)

var (
	outputPath   string
	tempDir      string
	popplerPath  string
	maxWorkers   int
	fetchTimeout int
	configPath   string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlthumbs [input.xlsx]",
		Short: "Embed thumbnails for hyperlinked media into a spreadsheet",
		Long: `xlthumbs downloads the media referenced by hyperlinks in a spreadsheet,
converts each to a 180x120 thumbnail (one per page for PDFs), and embeds
the thumbnails back into the spreadsheet in free columns to the right of
each row's hyperlinks.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output spreadsheet path (required)")
	rootCmd.Flags().StringVar(&tempDir, "temp-dir", "", "Scratch directory for downloaded files")
	rootCmd.Flags().StringVar(&popplerPath, "poppler-path", "", "Directory holding the poppler binaries (default: PATH)")
	rootCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Parallel download workers")
	rootCmd.Flags().IntVar(&fetchTimeout, "timeout", 0, "Per-download timeout in seconds")
	rootCmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg := config.LoadFromEnv()
	if configPath != "" {
		if err := cfg.MergeFile(configPath); err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Flags take precedence over the environment and the config file.
	cfg.ExcelPath = inputPath
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	if tempDir != "" {
		cfg.TempDir = tempDir
	}
	if popplerPath != "" {
		cfg.PopplerPath = popplerPath
	}
	if maxWorkers > 0 {
		cfg.MaxWorkers = maxWorkers
	}
	if fetchTimeout > 0 {
		cfg.FetchTimeoutSeconds = fetchTimeout
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logrusadapter.NewLogrusLogger(verbose)
	deps := interfaces.Dependencies{
		HTTPClient: httpstd.NewStandardHTTPClient(time.Duration(cfg.FetchTimeoutSeconds) * time.Second),
		Logger:     logger,
	}
	rasterizer := services.NewPopplerRasterizer(cfg.PopplerPath)

	p := pipeline.New(deps, rasterizer, pipeline.Options{
		InputPath:  cfg.ExcelPath,
		OutputPath: cfg.OutputPath,
		ScratchDir: cfg.TempDir,
		MaxWorkers: cfg.MaxWorkers,
	})

	if err := p.Run(context.Background()); err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	logger.Info("Workbook saved", map[string]interface{}{
		"output": cfg.OutputPath,
	})
	return nil
}
