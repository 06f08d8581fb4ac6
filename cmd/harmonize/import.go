package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hstrade/harmonize/internal/storage"
)

// importBatchSize controls how many entries are written per transaction.
const importBatchSize = 500

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import catalog entries from a CSV file",
		Long: `Load tariff catalog entries into the local database.

The CSV columns are: code, description, chapter, mfn_rate, usmca_rate,
source_country. A header row is detected and skipped. Existing codes are
replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	entries, err := storage.ReadCatalogCSV(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer closeStorage(store)

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Importing catalog entries", "file", path, "entries", len(entries))

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing catalog...[reset]"),
	)

	for start := 0; start < len(entries); start += importBatchSize {
		end := start + importBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		if err := store.SaveEntries(ctx, entries[start:end]); err != nil {
			return fmt.Errorf("failed to save entries %d-%d: %w", start, end, err)
		}
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	total, err := store.CountEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to count entries: %w", err)
	}

	slog.Info("Catalog import complete", "imported", len(entries), "total", total)
	return nil
}
