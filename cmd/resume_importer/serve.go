package main

import (
	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/importer"
	"github.com/jonathan/resume-importer/internal/logger"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that accepts resume uploads and returns parsed records.
Import history endpoints are enabled when a database URL is configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}

	var repo server.Repository
	var opts []importer.Option
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		repo = database
		opts = append(opts, importer.WithStore(database))
	} else {
		logger.Warn().Msg("DATABASE_URL not set, import history disabled")
	}

	svc := importer.New(parsing.New(cfg.Parser.Options()...), opts...)
	srv := server.New(server.Config{Port: port, MaxUploadBytes: cfg.MaxUploadBytes}, svc, repo)
	return srv.Start()
}
