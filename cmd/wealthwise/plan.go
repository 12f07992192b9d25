package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wealthwise/wealthwise/pkg/config"
	"github.com/wealthwise/wealthwise/pkg/export"
	"github.com/wealthwise/wealthwise/pkg/models"
	"github.com/wealthwise/wealthwise/pkg/service"
	"github.com/wealthwise/wealthwise/pkg/store"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

var planCmd = &cobra.Command{
	Use:   "plan <manifest.yaml>",
	Short: "Preview a batch import manifest (dry-run, nothing is written)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		manifest, err := models.ManifestFromFile(args[0])
		if err != nil {
			return err
		}

		svc := service.New(store.NewMemory(), logger)

		fmt.Printf("Plan preview for %s\n", args[0])
		for _, stmt := range manifest.Statements {
			path, err := stmt.File()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read statement file %s: %w", path, err)
			}

			result, err := svc.NormalizeAuto(filepath.Base(path), stmt.ContentType, data)
			if err != nil {
				return err
			}

			line := fmt.Sprintf("+ %s -> account %s : create %d transactions", stmt.FilePath, stmt.AccountID, len(result.Transactions))
			fmt.Println(okStyle.Render(line))
			if result.Rejected > 0 {
				fmt.Println(skipStyle.Render(fmt.Sprintf("  %d of %d rows skipped", result.Rejected, result.Total)))
			}
		}
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <manifest.yaml>",
	Short: "Import every statement in a manifest and export per-account CSVs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		manifest, err := models.ManifestFromFile(args[0])
		if err != nil {
			return err
		}

		st := store.NewMemory()
		svc := service.New(st, logger)

		for _, stmt := range manifest.Statements {
			accountID := stmt.AccountID
			if accountID == "" {
				accountID = cfg.AccountID
			}

			path, err := stmt.File()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read statement file %s: %w", path, err)
			}

			preview, err := svc.Begin(filepath.Base(path), stmt.ContentType, data)
			if err != nil {
				return err
			}

			outcome, err := svc.Commit(cmd.Context(), preview.SessionID, nil, accountID)
			if err != nil {
				return err
			}

			fmt.Println(okStyle.Render(fmt.Sprintf("+ %s -> account %s : %d imported, %d skipped, %d failed",
				stmt.FilePath, accountID, outcome.Imported, outcome.Rejected, outcome.StoreFailed)))
		}

		return writeAccountExports(cfg, st)
	},
}

func init() {
	applyCmd.Flags().StringP("account", "a", "", "Fallback account for statements without one")
	applyCmd.Flags().StringP("output", "o", "", "Directory for per-account exports (default: current directory)")
}

// writeAccountExports writes one canonical CSV per account from the
// store contents.
func writeAccountExports(cfg *config.Config, st *store.Memory) error {
	byAccount := make(map[string][]models.Transaction)
	for _, rec := range st.Records() {
		byAccount[rec.AccountID] = append(byAccount[rec.AccountID], rec.Transaction)
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}

	for accountID, txs := range byAccount {
		outPath := filepath.Join(outDir, accountID+"-transactions.csv")
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := export.WriteCSV(out, txs, cliFilters.toFilterFunc()); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d transactions)\n", outPath, len(txs))
	}
	return nil
}
