package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/oidtree/internal/database"
	"github.com/dbsmedya/oidtree/internal/source"
	"github.com/dbsmedya/oidtree/internal/tree"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List top-level records",
	Long: `Roots lists the records with an oid that no other record's oid
prefixes, in input order, followed by the number of records without an oid.
These are the roots "oidtree build" uses when none are given.

Example:
  oidtree roots --input parsed/IF-MIB.json`,
	RunE: runRoots,
}

func init() {
	rootCmd.AddCommand(rootsCmd)
}

func runRoots(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		return err
	}

	records, err := source.Load(database.SetupSignalHandler(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	for _, key := range tree.Roots(records) {
		rec, _ := records.Get(key)
		oid, _ := rec.OID()
		fmt.Fprintf(outputWriter, "%s\t%s\n", key, oid)
	}

	pass := tree.NewPass(records)
	fmt.Fprintf(outputWriter, "orphans: %d\n", len(pass.Orphans()))
	return nil
}
