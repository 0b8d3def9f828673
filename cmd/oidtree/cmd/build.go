package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/oidtree/internal/config"
	"github.com/dbsmedya/oidtree/internal/database"
	"github.com/dbsmedya/oidtree/internal/logger"
	"github.com/dbsmedya/oidtree/internal/record"
	"github.com/dbsmedya/oidtree/internal/source"
	"github.com/dbsmedya/oidtree/internal/tree"
)

var (
	buildRoots    []string
	buildOutput   string
	buildOrphans  bool
	buildIsolated bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the OID tree and write it as JSON",
	Long: `Build reads the record mapping, reconstructs the tree below each root
and writes it as {"tree": ...}.

Without --root every top-level record (one no other record's oid prefixes)
is used. With several roots all trees share one visited set, so a record is
placed under the first root that reaches it; --isolated builds each root
independently. One root writes <input>_tree.json; several roots write
<input>_tree.<root>.json each.

Example:
  oidtree build --input parsed/IF-MIB.json --root ifMIB
  oidtree build --config oidtree.yaml --orphans`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringSliceVarP(&buildRoots, "root", "r", nil,
		"Root record key (repeatable; default: discover top-level roots)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "",
		"Output path (default: <input>_tree.json)")
	buildCmd.Flags().BoolVar(&buildOrphans, "orphans", false,
		"Include records without an oid in the output")
	buildCmd.Flags().BoolVar(&buildIsolated, "isolated", false,
		"Build each root with its own visited set")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if len(buildRoots) > 0 {
		cfg.Build.Roots = buildRoots
	}
	if buildOutput != "" {
		cfg.Output.Path = buildOutput
	}
	if buildOrphans {
		cfg.Output.IncludeOrphans = true
	}
	if buildIsolated {
		cfg.Build.ShareVisited = false
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := database.SetupSignalHandler()
	records, err := source.Load(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	roots := cfg.Build.Roots
	if len(roots) == 0 {
		roots = tree.Roots(records)
		log.Debugw("discovered roots", "count", len(roots))
	}
	if len(roots) == 0 {
		return fmt.Errorf("no record with an oid to build from")
	}

	results := buildResults(cfg, records, roots, log)

	for i, res := range results {
		path := cfg.OutputPath()
		if len(roots) > 1 {
			if path, err = cfg.RootOutputPath(roots[i]); err != nil {
				return err
			}
		}
		if res.Root == nil {
			log.Warnw("root did not produce a tree", "root", roots[i])
		}
		if err := writeArtifact(path, res, cfg); err != nil {
			return err
		}
		nodes := 0
		if res.Root != nil {
			nodes = res.Root.Count()
		}
		log.Infow("tree written", "root", roots[i], "nodes", nodes, "orphans", len(res.Orphans), "path", path)
		fmt.Fprintln(outputWriter, path)
	}

	return nil
}

// buildResults builds one result per root, sharing a pass unless the
// configuration asks for isolated builds.
func buildResults(cfg *config.Config, records *record.Records, roots []string, log *logger.Logger) []tree.Result {
	results := make([]tree.Result, 0, len(roots))

	if !cfg.Build.ShareVisited {
		for _, key := range roots {
			results = append(results, tree.Build(records, key, tree.WithLogger(log)))
		}
		return results
	}

	pass := tree.NewPass(records, tree.WithLogger(log))
	for _, key := range roots {
		results = append(results, pass.Result(pass.Build(key)))
	}
	if unplaced := pass.Unplaced(); len(unplaced) > 0 {
		log.Infow("records not reached from any root", "count", len(unplaced))
	}
	return results
}

func writeArtifact(path string, res tree.Result, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := tree.WriteArtifact(f, res, cfg.Output.Indent, cfg.Output.IncludeOrphans); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
