package main

import (
	"context"
	"fmt"

	"crewplan/internal/breakdown"
	"crewplan/internal/config"
	"crewplan/internal/state"
	"crewplan/internal/tui"
)

// recordingPlanner records every produced breakdown in the history
// store before handing it to the TUI.
type recordingPlanner struct {
	inner tui.Planner
	db    *state.DB
}

func (p *recordingPlanner) ProduceBreakdown(ctx context.Context, description string) (*breakdown.Result, error) {
	res, err := p.inner.ProduceBreakdown(ctx, description)
	if err == nil {
		recordResult(p.db, res)
	}
	return res, err
}

// runInteractive starts the interactive TUI mode.
func runInteractive() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gen, _, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(gen)
	if err != nil {
		return err
	}

	db, err := openHistory(cfg)
	if err != nil {
		// Interactive mode still works without history.
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	save := func(res *breakdown.Result) error {
		return writeBreakdownFile(slugFilename(res.Breakdown.ProjectName), res.Breakdown)
	}

	return tui.Run(&recordingPlanner{inner: orch, db: db}, save, cfg.Generation.Timeout)
}
