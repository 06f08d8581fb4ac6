package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hstrade/harmonize/internal/cli"
	"github.com/hstrade/harmonize/internal/engine"
)

func lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [code]",
		Short: "Look up a specific tariff code",
		Long: `Resolve a tariff code directly against the catalog. An exact match is
tried first; otherwise progressively shorter prefixes (8, 6, then 4
digits) are searched.

Examples:
  harmonize lookup 8544.42.20.00
  harmonize lookup 854442`,
		Args: cobra.ExactArgs(1),
		RunE: runLookup,
	}

	cmd.Flags().IntP("limit", "l", 0, "Maximum number of prefix matches (default 10)")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer closeStorage(store)

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	eng := engine.New(store)
	result, err := eng.Lookup(ctx, args[0], limit)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	fmt.Println(cli.RenderLookup(result))
	return nil
}
