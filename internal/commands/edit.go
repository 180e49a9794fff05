package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgermap-dev/ledgermap/internal/edit"
	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/session"
)

func newEditCommand() *cobra.Command {
	var keys []string
	var h1, h2, h3, h4, h5 string
	var showUniform bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the classification of one or more rows",
		Long: "Set hierarchy levels on the selected rows. Only the levels passed as\n" +
			"flags change; the rest stay as they are. Every edit is saved as a\n" +
			"per-ledger override so it survives re-import.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			if showUniform {
				p := edit.UniformPatch(s.Rows(), keys)
				printPatch(cmd, p)
				return nil
			}

			patch := model.ClassificationPatch{}
			setIfChanged(cmd, "h1", &patch.H1, h1)
			setIfChanged(cmd, "h2", &patch.H2, h2)
			setIfChanged(cmd, "h3", &patch.H3, h3)
			setIfChanged(cmd, "h4", &patch.H4, h4)
			setIfChanged(cmd, "h5", &patch.H5, h5)

			res, err := s.ApplyEdit(keys, patch)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d rows.\n", res.Updated)
			for _, k := range res.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: not found or not editable\n", k)
			}
			snapshot(cmd, s, workspaceFlag(cmd), fmt.Sprintf("edit: %d rows", res.Updated))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&keys, "key", nil, "composite key of a row to edit (repeatable, required)")
	_ = cmd.MarkFlagRequired("key")
	cmd.Flags().StringVar(&h1, "h1", "", "statement (Balance Sheet, Profit and Loss)")
	cmd.Flags().StringVar(&h2, "h2", "", "category")
	cmd.Flags().StringVar(&h3, "h3", "", "note head")
	cmd.Flags().StringVar(&h4, "h4", "", "sub-note")
	cmd.Flags().StringVar(&h5, "h5", "", "free-text detail")
	cmd.Flags().BoolVar(&showUniform, "show-uniform", false, "print the levels all selected rows agree on, then exit")

	return cmd
}

// setIfChanged turns a flag into a patch field only when the user passed it,
// so an empty string can still mean "clear this level".
func setIfChanged(cmd *cobra.Command, name string, dst **string, value string) {
	if cmd.Flags().Changed(name) {
		v := value
		*dst = &v
	}
}

func printPatch(cmd *cobra.Command, p model.ClassificationPatch) {
	out := cmd.OutOrStdout()
	show := func(level string, v *string) {
		if v != nil {
			fmt.Fprintf(out, "%s: %s\n", level, *v)
		}
	}
	show("H1", p.H1)
	show("H2", p.H2)
	show("H3", p.H3)
	show("H4", p.H4)
	show("H5", p.H5)
}
