package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/oidtree/internal/render"
)

var (
	showTree  string
	showDepth int
	showASCII bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Draw a built tree in the terminal",
	Long: `Show draws a tree artifact as an indented outline with an aligned oid
column. Enterprise subtrees of known vendors are tagged with the vendor name.

Example:
  oidtree show --tree parsed/IF-MIB_tree.json --depth 2
  oidtree show --input parsed/IF-MIB.json --ascii --no-color`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showTree, "tree", "t", "",
		"Tree artifact to draw (default: <input>_tree.json)")
	showCmd.Flags().IntVarP(&showDepth, "depth", "d", 0,
		"Maximum depth to draw (0 draws everything)")
	showCmd.Flags().BoolVar(&showASCII, "ascii", false,
		"Draw branches with ASCII characters")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	root, err := readTree(cfg, showTree)
	if err != nil {
		return err
	}

	return render.WriteTree(outputWriter, root, &render.Config{
		UseASCII: showASCII,
		Color:    cfg.Output.Color,
		MaxDepth: showDepth,
	})
}
