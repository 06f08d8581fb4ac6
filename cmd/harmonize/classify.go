package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hstrade/harmonize/internal/cli"
	"github.com/hstrade/harmonize/internal/common"
	"github.com/hstrade/harmonize/internal/engine"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [description]",
		Short: "Classify a product description",
		Long: `Classify a free-text product description into ranked tariff codes.

Examples:
  harmonize classify "insulated copper wire cable"
  harmonize classify --limit 5 "surgical diagnostic instrument"
  harmonize classify --chapter 85 "fiber optic cable"
  harmonize classify --business-type electronics "power supply unit"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	// Flags
	cmd.Flags().IntP("limit", "l", 0, "Maximum number of results (default 10)")
	cmd.Flags().IntP("chapter", "c", 0, "Known tariff chapter hint")
	cmd.Flags().String("business-type", "", "Business type context (e.g. electronics)")
	cmd.Flags().String("industry", "", "Industry context")
	cmd.Flags().String("product-category", "", "Product category context")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("classification.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	description := strings.Join(args, " ")

	limit := viper.GetInt("classification.limit")
	chapter, _ := cmd.Flags().GetInt("chapter")
	businessType, _ := cmd.Flags().GetString("business-type")
	industryHint, _ := cmd.Flags().GetString("industry")
	productCategory, _ := cmd.Flags().GetString("product-category")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer closeStorage(store)

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	opts := engine.Options{
		Limit:        limit,
		KnownChapter: chapter,
	}
	if businessType != "" || industryHint != "" || productCategory != "" {
		opts.Context = &engine.BusinessContext{
			BusinessType:    businessType,
			Industry:        industryHint,
			ProductCategory: productCategory,
		}
	}

	eng := engine.New(store)
	result, err := eng.Classify(ctx, description, opts)
	if err != nil {
		if errors.Is(err, common.ErrInvalidQuery) {
			return fmt.Errorf("invalid description: %w", err)
		}
		return fmt.Errorf("classification failed: %w", err)
	}

	fmt.Println(cli.RenderResult(result))
	return nil
}
