package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/importer"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume PDF or text file into structured JSON",
	Long: `Extract the text of a resume PDF (or read a .txt file), parse it into a
structured record and print the record as JSON. With --save the record is also
stored in the import history database.`,
	RunE: runParse,
}

var (
	parseInputFile    string
	parseOutputFile   string
	parseSave         bool
	parseDatabaseURL  string
	parseWithMetadata bool
	parseVerbose      bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to a .pdf or .txt resume (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Store the parsed record in the database")
	parseCmd.Flags().StringVar(&parseDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	parseCmd.Flags().BoolVar(&parseWithMetadata, "metadata", false, "Include document metadata in the output")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a readable summary to stderr")
	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	data, err := os.ReadFile(parseInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var opts []importer.Option
	if parseSave {
		databaseURL := parseDatabaseURL
		if databaseURL == "" {
			databaseURL = cfg.DatabaseURL
		}
		if databaseURL == "" {
			return fmt.Errorf("--save requires --db-url or DATABASE_URL")
		}

		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, importer.WithStore(database))
	}

	svc := importer.New(parsing.New(cfg.Parser.Options()...), opts...)
	result, err := svc.ImportFile(ctx, filepath.Base(parseInputFile), data)
	if err != nil {
		return err
	}

	if parseVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintMetadata(result.Metadata)
		printer.PrintResume(result.Resume)
	}

	var output any = result.Resume
	if parseWithMetadata {
		output = result
	}
	if err := writeJSON(output, parseOutputFile, cmd.OutOrStdout()); err != nil {
		return err
	}

	if result.ID != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved import %s\n", result.ID)
	}
	if parseOutputFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (confidence %.2f)\n", parseOutputFile, result.Resume.Confidence)
	}
	return nil
}
