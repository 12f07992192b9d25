package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/wealthwise/wealthwise/pkg/config"
	"github.com/wealthwise/wealthwise/pkg/detect"
	"github.com/wealthwise/wealthwise/pkg/export"
	"github.com/wealthwise/wealthwise/pkg/extract"
	"github.com/wealthwise/wealthwise/pkg/mapping"
	"github.com/wealthwise/wealthwise/pkg/normalize"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <input_path>",
	Short: "Convert bank statements to the canonical CSV format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		processor := newFileProcessor(cfg, logger, &cliFilters)
		processor.xlsx, _ = cmd.Flags().GetBool("xlsx")
		if processor.xlsx && cfg.OutputDir == "" {
			return fmt.Errorf("--xlsx requires --output")
		}

		matches, err := filepath.Glob(args[0])
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files found matching pattern %s", args[0])
		}

		for _, match := range matches {
			fileInfo, err := os.Stat(match)
			if err != nil {
				logger.Warn("failed to stat file", "error", err, "file", match)
				continue
			}

			if fileInfo.IsDir() {
				if err := processor.processDirectory(match); err != nil {
					logger.Warn("failed to process directory", "error", err, "dir", match)
				}
			} else {
				if err := processor.processFile(match); err != nil {
					logger.Warn("failed to process file", "error", err, "file", match)
				}
			}
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "Output directory (default: stdout)")
	convertCmd.Flags().Bool("xlsx", false, "Write XLSX instead of CSV (requires --output)")
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wealthwise",
		Level:           level,
	})
}

type fileProcessor struct {
	cfg     *config.Config
	logger  *log.Logger
	filters *filters
	xlsx    bool
}

func newFileProcessor(cfg *config.Config, logger *log.Logger, filters *filters) *fileProcessor {
	return &fileProcessor{cfg: cfg, logger: logger, filters: filters}
}

func (p *fileProcessor) processDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := p.processFile(filepath.Join(dir, entry.Name())); err != nil {
			p.logger.Warn("error processing file", "error", err, "file", entry.Name())
		}
	}
	return nil
}

// processFile runs the pipeline with the engine's own proposal. There
// is no confirmation step on the command line, so a proposal that fails
// validation refuses the file instead of guessing.
func (p *fileProcessor) processFile(inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	filename := filepath.Base(inputPath)

	format, err := detect.Require(filename, "")
	if err != nil {
		return err
	}
	p.logger.Debug("detected file format", "format", format, "file", filename)

	table, err := extract.Extract(format, data)
	if err != nil {
		return err
	}

	proposed := mapping.Propose(table)
	if verbose {
		pp.Fprintln(os.Stderr, proposed)
	}
	if err := mapping.Validate(proposed); err != nil {
		return fmt.Errorf("%s needs manual mapping: %w", filename, err)
	}

	result := normalize.Normalize(table, proposed)
	sort.Slice(result.Transactions, func(i, j int) bool {
		return result.Transactions[i].Date.Before(result.Transactions[j].Date)
	})

	p.logger.Info("converted file",
		"file", filename,
		"imported", len(result.Transactions),
		"skipped", result.Rejected)

	return p.write(inputPath, result)
}

func (p *fileProcessor) write(inputPath string, result *normalize.Result) error {
	if p.cfg.OutputDir == "" {
		return export.WriteCSV(os.Stdout, result.Transactions, p.filters.toFilterFunc())
	}

	outExt := "-wealthwise.csv"
	if p.xlsx {
		outExt = "-wealthwise.xlsx"
	}
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)
	outPath := filepath.Join(p.cfg.OutputDir, base+outExt)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if p.xlsx {
		err = export.WriteXLSX(out, result.Transactions, p.filters.toFilterFunc())
	} else {
		err = export.WriteCSV(out, result.Transactions, p.filters.toFilterFunc())
	}
	if err != nil {
		return err
	}
	p.logger.Info("wrote output", "path", outPath)
	return nil
}
