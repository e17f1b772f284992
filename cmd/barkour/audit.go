package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/milk9111/barkour/prefabs"
	"github.com/spf13/cobra"
)

var flagMechanics string

var (
	auditOK       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	auditBad      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	auditHeader   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	auditCell     = lipgloss.NewStyle().Padding(0, 1)
	auditStatusOf = map[bool]lipgloss.Style{true: auditOK, false: auditBad}
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check the game config against a mechanics sheet",
	Long: `Compares every constant in the mechanics sheet with the loaded config and
exits non-zero when any of them is missing or out of tolerance.

Examples:
  barkour audit
  barkour audit --config ./tuned.yaml --mechanics ./mechanics.yaml`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&flagMechanics, "mechanics", "", "Mechanics sheet (default: embedded mechanics.yaml)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	logger := newLogger("audit")

	spec, err := loadSpec()
	if err != nil {
		return err
	}
	sheet, err := prefabs.LoadMechanicsSheet(flagMechanics)
	if err != nil {
		return err
	}

	results := prefabs.Audit(spec, sheet)
	fmt.Fprintln(cmd.OutOrStdout(), auditTable(results))

	if failed := prefabs.Failed(results); failed > 0 {
		logger.Error("audit failed", "mismatches", failed, "checked", len(results))
		return fmt.Errorf("audit: %d of %d constants differ", failed, len(results))
	}
	logger.Info("audit passed", "checked", len(results))
	return nil
}

func auditTable(results []prefabs.AuditResult) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEY", "EXPECTED", "ACTUAL", "STATUS")

	for _, r := range results {
		status := "ok"
		switch {
		case r.Missing:
			status = "missing"
		case !r.OK:
			status = "mismatch"
		}
		t.Row(r.Key, fmt.Sprintf("%g", r.Expected), fmt.Sprintf("%g", r.Actual), status)
	}

	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return auditHeader
		}
		if col == 3 && row >= 0 && row < len(results) {
			return auditStatusOf[results[row].OK].Padding(0, 1)
		}
		return auditCell
	})
}
