package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing POST /analyze, POST /analyze-resume and GET /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config file (JSON or YAML)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	s, err := loadSettings(serveConfigPath, false)
	if err != nil {
		return err
	}

	port := s.cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:           port,
		MaxUploadBytes: s.cfg.MaxUploadBytes,
		RateLimit:      s.cfg.Server.RateLimit,
		Logger:         s.logger,
		Analyzer:       s.newAnalyzer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
