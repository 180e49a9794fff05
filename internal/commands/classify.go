package commands

import (
	"github.com/spf13/cobra"

	"github.com/ledgermap-dev/ledgermap/internal/session"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Re-run classification over the held rows",
		Long: "Re-run the engagement's rules over the held trial-balance rows.\n" +
			"Rows already classified keep their assignment unless a per-ledger override applies.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			summary, err := s.Reclassify()
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}
