package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/oidtree/internal/render"
	"github.com/dbsmedya/oidtree/internal/report"
	"github.com/dbsmedya/oidtree/internal/source"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [file]",
	Short: "Print a compiled MIB as titled tables",
	Long: `Sections flattens a compiled MIB JSON document and prints its required
imports followed by one table per object. Revision lists are skipped and
LAST-UPDATED timestamps are shown in UTC.

Example:
  oidtree sections parsed/IF-MIB.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	path := cfg.Input.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no compiled MIB given: pass a file or --input")
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", source.ErrNotFound, path)
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sections, err := report.ReadSections(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	log.WithSource(path).Debugw("sections built", "count", len(sections))

	return render.WriteSections(outputWriter, sections, &render.Config{Color: cfg.Output.Color})
}
