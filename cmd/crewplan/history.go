package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"crewplan/internal/breakdown"
	"crewplan/internal/config"
	"crewplan/internal/state"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent breakdowns",
	Long: `List breakdowns recorded in the history store, newest first.

Use 'crewplan history show <id>' to re-render one.`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-render a stored breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to list (0 for all)")
	historyCmd.AddCommand(historyShowCmd)
}

func openHistoryOrFail() (*state.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := openHistory(cfg)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("history is disabled (set history.enabled to true)")
	}
	return db, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openHistoryOrFail()
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.ListBreakdowns(historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No breakdowns recorded yet.")
		return nil
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	for _, rec := range records {
		b := rec.Breakdown
		name := b.ProjectName
		if len(name) > 60 {
			name = name[:57] + "..."
		}
		bold.Printf("%s  %s\n", b.ID, name)
		detail := fmt.Sprintf("  %s  roles: %d  tasks: %d",
			b.GeneratedAt.Local().Format("2006-01-02 15:04"),
			b.Summary.TotalRoles, b.Summary.TotalTasks)
		if rec.UsedFallback {
			detail += "  (fallback)"
		}
		dim.Println(detail)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openHistoryOrFail()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := db.GetBreakdown(args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no breakdown with ID %s", args[0])
	}

	fmt.Println(breakdown.Render(rec.Breakdown))
	return nil
}
