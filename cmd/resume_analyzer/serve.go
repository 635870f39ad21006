package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AntoScher/resume-analyzer/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes analysis and history endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	runner, cleanup, err := buildRunner(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(server.Config{Port: cfg.Port}, runner)
	return srv.Start()
}
