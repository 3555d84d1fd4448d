// Package main provides the command line entry point for the resume importer.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/logger"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "resume_importer",
	Short: "Resume Importer",
	Long:  "Resume Importer turns resume PDFs into structured, schema-checked JSON records, from the command line or over HTTP.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadAppConfig reads the optional config file, applies environment
// overrides and defaults, and initializes logging.
func loadAppConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(config.Config{})
	logger.InitWithWriter(logger.Config{Level: merged.LogLevel, Format: merged.LogFormat}, os.Stderr)
	return &merged, nil
}

// commandContext returns the command context carrying the global logger
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx)
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(v any, path string, w io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
