package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"soilai/database"
	"soilai/pkg/crop"
	"soilai/pkg/crop/catalog"
	"soilai/pkg/crop/repositoryImp"
	"soilai/pkg/crop/source"
)

func newCropsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crops",
		Short: "List crops or import crop profiles",
	}
	cmd.AddCommand(newCropsListCmd(a), newCropsImportCmd(a))
	return cmd
}

func newCropsListCmd(a *app) *cobra.Command {
	var (
		prefix string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print recognized crop names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Load(a.cfg, a.logger)
			defer cat.Close()

			names := cat.Registry.Names()
			if prefix != "" {
				names = crop.NewValidator(cat.Registry).Suggest(prefix, limit)
			} else if limit > 0 && limit < len(names) {
				names = names[:limit]
			}
			for _, n := range names {
				fmt.Fprintln(a.out, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only names starting with this")
	cmd.Flags().IntVar(&limit, "limit", 0, "at most this many names")
	return cmd
}

func newCropsImportCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Write the crops and profiles of a source file into the crop store",
		Long: "Reads a .json, .yaml, .csv, .xlsx or .html crop source and upserts every crop\n" +
			"into the SQLite crop store (--db, or CROP_DB_PATH).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = a.cfg.CropDBPath
			}
			if dbPath == "" {
				return errors.New("no crop store: pass --db or set CROP_DB_PATH")
			}
			// Unlike start-up loading, a bad file here is the operator's error to see.
			ov, err := source.Read(args[0])
			if err != nil {
				return err
			}
			recs := repositoryImp.Records(ov)
			if len(recs) == 0 {
				return fmt.Errorf("%s has no crops", args[0])
			}

			db, err := database.OpenSQLite(dbPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			repo := repositoryImp.New(db)
			if err := repo.Upsert(recs); err != nil {
				return fmt.Errorf("upsert crops: %w", err)
			}
			total, err := repo.Count()
			if err != nil {
				return fmt.Errorf("count crops: %w", err)
			}
			fmt.Fprintf(a.out, "imported %d crops into %s (%d stored)\n", len(recs), dbPath, total)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "crop store path (default CROP_DB_PATH)")
	return cmd
}
