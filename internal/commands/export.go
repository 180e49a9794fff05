package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgermap-dev/ledgermap/internal/report"
	"github.com/ledgermap-dev/ledgermap/internal/session"
)

func newExportCommand() *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the classified set to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()

			rows := report.Sort(s.Rows(), report.SortBy(sortBy))
			if err := report.WriteRows(f, rows); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s.\n", len(rows), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", string(report.SortByGroup), "sort order (name, group, closing, status)")

	return cmd
}
