package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgermap-dev/ledgermap/internal/importer"
	"github.com/ledgermap-dev/ledgermap/internal/session"
)

func newImportCommand() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import trial-balance CSVs and classify them",
		Long: "Import trial-balance CSV files and classify them against the engagement's rules.\n" +
			"Without arguments, imports every CSV waiting in <workspace>/import/.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, workspaceFlag(cmd), args, keep)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "leave files in import/ instead of moving them to processed")

	return cmd
}

func runImport(cmd *cobra.Command, workspace string, paths []string, keep bool) error {
	s, err := session.Open(workspace)
	if err != nil {
		return err
	}
	defer s.Close()

	// Files named on the command line are used as-is; otherwise drain the
	// drop directory.
	var dropped []importer.FileInfo
	if len(paths) == 0 {
		dropped, err = importer.Scan(workspace)
		if err != nil {
			return err
		}
		if len(dropped) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
			return nil
		}
		for _, f := range dropped {
			paths = append(paths, f.Path)
		}
	}

	out := cmd.OutOrStdout()
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		accounts, err := importer.ReadTrialBalance(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		stats, err := s.ImportAndClassify(accounts, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fmt.Fprintf(out, "%s: %d rows imported, %d dormant skipped\n", path, stats.Imported, stats.Dormant)
		printSummary(out, stats.Summary)

		if !keep && i < len(dropped) {
			if err := importer.MarkProcessed(workspace, dropped[i].Name); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
		}
		snapshot(cmd, s, workspace, "import: "+path)
	}
	return nil
}
