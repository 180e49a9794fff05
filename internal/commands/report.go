package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ledgermap-dev/ledgermap/internal/classify"
	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/report"
	"github.com/ledgermap-dev/ledgermap/internal/session"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	badColor  = color.New(color.FgRed)
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show classification counts and balance totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Engagement: %s\n", s.Engagement())
			printSummary(out, report.Summarize(s.Rows(), s.Tolerance()))
			return nil
		},
	}
}

func newListCommand() *cobra.Command {
	var status string
	var h1, h2, h3 string
	var text string
	var sortBy string
	var suggest bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List classified rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			filter := report.Filter{
				Status: model.Status(status),
				H1:     h1,
				H2:     h2,
				H3:     h3,
				Text:   text,
			}
			rows := report.Sort(filter.Apply(s.Rows()), report.SortBy(sortBy))
			printRows(cmd.OutOrStdout(), rows)

			if suggest {
				printSuggestions(cmd.OutOrStdout(), rows, s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (Mapped, Unmapped, Error)")
	cmd.Flags().StringVar(&h1, "h1", "", "filter by statement")
	cmd.Flags().StringVar(&h2, "h2", "", "filter by category")
	cmd.Flags().StringVar(&h3, "h3", "", "filter by note head")
	cmd.Flags().StringVar(&text, "match", "", "filter by name or group text")
	cmd.Flags().StringVar(&sortBy, "sort", string(report.SortByName), "sort order (name, group, closing, status)")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "show nearest mapped names for unmapped rows")

	return cmd
}

func newExceptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exceptions",
		Short: "List rows whose balance sits against their group's nature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			anomalies := report.Exceptions(s.Rows())
			out := cmd.OutOrStdout()
			if len(anomalies) == 0 {
				okColor.Fprintln(out, "No balance anomalies.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ACCOUNT\tGROUP\tCLOSING\tEXPECTED\tACTUAL")
			for _, a := range anomalies {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					a.Row.Account.Name, a.Row.Account.PrimaryGroup,
					a.Row.Account.Closing.StringFixed(2), a.Expected, a.Actual)
			}
			tw.Flush()
			badColor.Fprintf(out, "%d anomalies.\n", len(anomalies))
			return nil
		},
	}
}

func printSummary(out io.Writer, s report.Summary) {
	fmt.Fprintf(out, "Rows: %d  Mapped: %d  Unmapped: %d  Errors: %d\n",
		s.Total, s.Mapped, s.Unmapped, s.Errors)
	fmt.Fprintf(out, "Opening: %s  Debit: %s  Credit: %s\n",
		s.OpeningTotal.StringFixed(2), s.DebitTotal.StringFixed(2), s.CreditTotal.StringFixed(2))
	fmt.Fprintf(out, "Closing total: %s  ", s.ClosingTotal.StringFixed(2))
	if s.Balanced {
		okColor.Fprintln(out, "balanced")
	} else {
		badColor.Fprintln(out, "NOT balanced")
	}
}

func printRows(out io.Writer, rows []model.ClassifiedRow) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tACCOUNT\tGROUP\tCLOSING\tH1\tH2\tH3\tH4\tSOURCE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			statusLabel(r.Status), r.Account.Name, r.Account.PrimaryGroup,
			r.Account.Closing.StringFixed(2),
			r.Class.H1, r.Class.H2, r.Class.H3, r.Class.H4, r.Class.Source)
	}
	tw.Flush()
}

func printSuggestions(out io.Writer, rows []model.ClassifiedRow, s *session.Session) {
	limit := s.Config().Thresholds.SuggestionLimit
	for _, r := range rows {
		if r.Status != model.StatusUnmapped {
			continue
		}
		suggestions := classify.Suggest(r.Account, s.Rows(), limit)
		if len(suggestions) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s: similar to", r.Account.Name)
		for i, sg := range suggestions {
			if i > 0 {
				fmt.Fprint(out, ",")
			}
			fmt.Fprintf(out, " %s (%s > %s)", sg.Name, sg.Class.H1, sg.Class.H2)
		}
		fmt.Fprintln(out)
	}
}

func statusLabel(st model.Status) string {
	switch st {
	case model.StatusMapped:
		return okColor.Sprint(st)
	case model.StatusUnmapped:
		return warnColor.Sprint(st)
	default:
		return badColor.Sprint(st)
	}
}
