package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/tinci/internal/database"
	"github.com/palemoky/tinci/internal/loader"
	"github.com/palemoky/tinci/internal/logger"
	"github.com/palemoky/tinci/internal/processor"
)

func newImportCmd() *cobra.Command {
	var (
		input       string
		outputDB    string
		workers     int
		batchSize   int
		traditional bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate a rhyme table and write it to a SQLite snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := input
			var (
				table *loader.TableData
				err   error
			)
			if input == "" {
				source = "embedded"
				table, err = loader.DefaultTable()
			} else {
				table, err = loader.LoadTableFile(input)
			}
			if err != nil {
				return fmt.Errorf("failed to load rhyme table: %w", err)
			}

			logger.Info("Opening snapshot", zap.String("database", outputDB))
			db, err := database.Open(outputDB)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.Migrate(); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			repo := database.NewRepository(db)
			proc := processor.NewProcessor(repo, workers, traditional)
			proc.SetBatchSize(batchSize)
			if quiet {
				proc.SetOutput(io.Discard)
			}

			report, err := proc.Process(table, source)
			if err != nil {
				return err
			}

			logger.Info("Optimizing database")
			if err := db.Exec("VACUUM").Error; err != nil {
				logger.Warn("Failed to vacuum database", zap.Error(err))
			}

			stats, err := repo.GetStatistics()
			if err != nil {
				return fmt.Errorf("failed to read statistics: %w", err)
			}
			return printImport(cmd.OutOrStdout(), report, stats)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Rhyme table JSON file (default: the built-in table)")
	cmd.Flags().StringVarP(&outputDB, "output", "o", "tinci.db", "Output SQLite snapshot")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of validation workers (0 = number of CPUs)")
	cmd.Flags().IntVarP(&batchSize, "batch", "b", 0, "Insert batch size (0 = machine default)")
	cmd.Flags().BoolVarP(&traditional, "traditional", "t", false, "Store simplified characters in traditional form")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide progress bars")

	return cmd
}

func printImport(w io.Writer, report *processor.Report, stats *database.Statistics) error {
	if jsonOutput {
		return printJSON(w, map[string]any{
			"total":      report.Total,
			"imported":   report.Imported,
			"duplicates": report.Duplicates,
			"rejected":   report.Rejected,
			"statistics": stats,
		})
	}

	fmt.Fprintln(w, "\n=== Import ===")
	summary := tablewriter.NewWriter(w)
	summary.Header("Rows", "Imported", "Duplicates", "Rejected", "Finals", "Characters")
	_ = summary.Append([]string{
		strconv.Itoa(report.Total),
		strconv.Itoa(report.Imported),
		strconv.Itoa(report.Duplicates),
		strconv.Itoa(report.Rejected),
		strconv.Itoa(stats.TotalFinals),
		strconv.Itoa(stats.TotalCharacters),
	})
	if err := summary.Render(); err != nil {
		return err
	}

	for _, e := range report.Errors {
		fmt.Fprintf(os.Stderr, "rejected: %v\n", e)
	}

	fmt.Fprintln(w, "\n=== Entries by tone ===")
	tones := tablewriter.NewWriter(w)
	tones.Header("Tone", "Entries")
	for _, ts := range stats.EntriesByTone {
		_ = tones.Append([]string{strconv.Itoa(ts.Tone), strconv.Itoa(ts.Count)})
	}
	return tones.Render()
}
