package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospital-api/config"
	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
	"github.com/jwalitptl/hospital-api/internal/seed"
)

func seedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Convert CSV exports into ordered SQL inserts",
	}

	var dataDir, outDir string
	convert := &cobra.Command{
		Use:   "convert",
		Short: "Write one .sql file of INSERTs per CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := seed.ConvertDir(dataDir, outDir)
			if err != nil {
				return err
			}
			a.printf("converted %d files into %s\n", len(written), outDir)
			return nil
		},
	}
	convert.Flags().StringVar(&dataDir, "data", "DATA", "directory holding <table>_data.csv files")
	convert.Flags().StringVar(&outDir, "out", "insertFilesSQL", "directory for generated .sql files")
	cmd.AddCommand(convert)

	var sqlDir, output string
	merge := &cobra.Command{
		Use:   "merge",
		Short: "Concatenate the .sql files in foreign-key order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			skipped, err := seed.Merge(sqlDir, &buf)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			for _, s := range skipped {
				a.printf("skipped: %s (not found)\n", s)
			}
			a.printf("merged SQL files into %s\n", output)
			return nil
		},
	}
	merge.Flags().StringVar(&sqlDir, "dir", "insertFilesSQL", "directory holding <table>_data.sql files")
	merge.Flags().StringVar(&output, "out", "all_inserts_ordered.sql", "merged output file")
	cmd.AddCommand(merge)

	var script string
	apply := protect(&cobra.Command{
		Use:   "apply",
		Short: "Execute a merged script against the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(script)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", script, err)
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			db, err := postgres.NewDB(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := seed.Apply(cmd.Context(), db, string(content))
			if err != nil {
				return err
			}
			a.printf("applied %d statements\n", n)
			return nil
		},
	})
	apply.Flags().StringVar(&script, "file", "all_inserts_ordered.sql", "script to execute")
	cmd.AddCommand(apply)

	return cmd
}
