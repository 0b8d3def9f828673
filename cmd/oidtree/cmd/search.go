package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/oidtree/internal/config"
	"github.com/dbsmedya/oidtree/internal/search"
	"github.com/dbsmedya/oidtree/internal/tree"
)

var (
	searchTree    string
	searchExclude []string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search a built tree",
	Long: `Search walks a tree artifact in preorder and prints every node whose
name, description or nodetype contains the query, ignoring case. An empty
query matches every node.

Results are printed as a JSON array. Excluded fields (by default children,
"object type" and class) are removed from each result; pass --exclude ""
to keep every field.

Example:
  oidtree search --tree parsed/IF-MIB_tree.json ifindex
  oidtree search --input parsed/IF-MIB.json --exclude children,class octets`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchTree, "tree", "t", "",
		"Tree artifact to search (default: <input>_tree.json)")
	searchCmd.Flags().StringSliceVarP(&searchExclude, "exclude", "e", nil,
		"Fields to drop from results (overrides configuration)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cmd.Flags().Changed("exclude") {
		cfg.Search.Exclude = searchExclude
	}

	root, err := readTree(cfg, searchTree)
	if err != nil {
		return err
	}

	query := search.NormalizeQuery(args[0])
	searcher := search.NewSearcher(cfg.ExcludeSet(), log)
	matches := searcher.Search(root, query)

	enc := json.NewEncoder(outputWriter)
	if cfg.Output.Indent > 0 {
		enc.SetIndent("", fmt.Sprintf("%*s", cfg.Output.Indent, ""))
	}
	if err := enc.Encode(matches); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

// readTree loads the tree artifact at path, or the artifact derived from the
// configured input when path is empty. The tree is nil when the artifact
// records an unresolved root.
func readTree(cfg *config.Config, path string) (*tree.Node, error) {
	if path == "" {
		if cfg.Input.Path == "" && cfg.Input.Format == config.FormatJSON && cfg.Output.Path == "" {
			return nil, fmt.Errorf("no tree artifact given: use --tree or --input")
		}
		path = cfg.OutputPath()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tree artifact: %w", err)
	}
	defer f.Close()

	root, err := tree.ReadArtifact(f, cfg.Search.TreePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return root, nil
}
