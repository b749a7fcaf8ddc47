// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/erapp/internal/legal"
)

var (
	seedFile    string
	seedReplace bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import legal sections into the corpus",
	Long: `Seed validates a YAML dataset and upserts every section by its external id.
Without --file the embedded dataset is used (or SEED_FILE when set).
With --replace the corpus is cleared first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sections, origin, err := loadSeed(firstSet(seedFile, cfg.SeedFile))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		var cache legal.SectionCache
		if client := openRedis(ctx); client != nil {
			defer client.Close()
			cache = legal.NewSectionCache(client, 0)
		}

		corpus := legal.NewCorpus(legal.NewSectionRepository(pool), cache, nil, logger)
		report, err := corpus.Import(ctx, sections, seedReplace)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d section(s) from %s, removed %d\n", report.Imported, origin, report.Removed)
		return nil
	},
}

// loadSeed reads the dataset at path, or the embedded one when path is empty.
func loadSeed(path string) ([]*legal.Section, string, error) {
	if path == "" {
		sections, err := legal.BuiltinDataset()
		return sections, "embedded dataset", err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()

	sections, err := legal.ParseDataset(file)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return sections, path, nil
}

func firstSet(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML dataset to import instead of the embedded one")
	seedCmd.Flags().BoolVar(&seedReplace, "replace", false, "Delete every section before importing")
	rootCmd.AddCommand(seedCmd)
}
