package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"crewplan/internal/config"
	"crewplan/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the breakdown API over HTTP",
	Long: `Run an HTTP server exposing the breakdown pipeline.

  POST /generate-tasks {"project_description": "..."}
  -> {"selected_roles": [...], "role_tasks": {...}}

Serve mode retries failed generation calls per the generation.retries
config before the fallback tasks kick in.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to serve.addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gen, client, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	if client.IsBedrock() {
		color.Cyan("Using AWS Bedrock model %s", client.Model())
	}
	retrying := &retryingGenerator{
		gen:      gen,
		attempts: cfg.Generation.Retries + 1,
		delay:    cfg.Generation.RetryDelay,
	}
	orch, err := newOrchestrator(retrying)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	color.Cyan("Listening on %s", addr)
	return server.New(orch, cfg.Generation.Timeout).ListenAndServe(ctx, addr)
}
