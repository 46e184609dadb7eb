package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"crewplan/internal/breakdown"
	"crewplan/internal/config"
)

var (
	runJSON      bool
	runSavePath  string
	runNoHistory bool
)

var runCmd = &cobra.Command{
	Use:   "run <description>",
	Short: "Generate a task breakdown for a project description",
	Long: `Generate a role-by-role task breakdown for the given project
description and print it.

By default the breakdown is rendered for reading in a terminal.
Use --json for the canonical schema instead:

  {"project_name": ..., "roles_and_responsibilities": {...}, "summary": {...}}

Use --save to also write the JSON to a file. With no filename the
name is derived from the description, e.g.

  crewplan run "a mobile fitness app" --save
  -> a_mobile_fitness_app_task_breakdown.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBreakdown,
}

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print the canonical JSON schema instead of the rendered view")
	runCmd.Flags().StringVar(&runSavePath, "save", "", "Write the JSON breakdown to a file (filename derived from the description if omitted)")
	runCmd.Flags().Lookup("save").NoOptDefVal = "auto"
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "Skip recording the breakdown in history")
}

func runBreakdown(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gen, client, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(gen)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Generation.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Generation.Timeout)
		defer cancel()
	}

	res, err := orch.ProduceBreakdown(ctx, description)
	if err != nil {
		return err
	}

	if res.UsedFallback {
		if res.GenerationErr != nil {
			color.Yellow("Generation unavailable (%v), showing baseline tasks.", res.GenerationErr)
		} else {
			color.Yellow("Response was not parseable, showing baseline tasks.")
		}
	}

	if runJSON {
		out, err := json.MarshalIndent(res.Breakdown, "", "  ")
		if err != nil {
			return fmt.Errorf("encode breakdown: %w", err)
		}
		fmt.Println(string(out))
	} else {
		fmt.Println(breakdown.Render(res.Breakdown))
		in, out := client.Tracker().Total()
		color.New(color.Faint).Printf("Selection weight: %d  Tokens: %d in / %d out (%d calls)\n",
			res.SelectionWeight, in, out, client.Tracker().Calls())
	}

	if runSavePath != "" {
		path := runSavePath
		if path == "auto" {
			path = slugFilename(description)
		}
		if err := writeBreakdownFile(path, res.Breakdown); err != nil {
			return err
		}
		color.Green("Saved breakdown to %s", path)
	}

	if !runNoHistory {
		db, err := openHistory(cfg)
		if err != nil {
			color.Yellow("History unavailable: %v", err)
		} else if db != nil {
			defer db.Close()
			recordResult(db, res)
		}
	}

	return nil
}
