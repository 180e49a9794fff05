package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/rules"
	"github.com/ledgermap-dev/ledgermap/internal/session"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage classification rules",
	}
	rulesCmd.AddCommand(newRulesListCommand())
	rulesCmd.AddCommand(newRulesAddCommand())
	rulesCmd.AddCommand(newRulesDeleteCommand())
	rulesCmd.AddCommand(newRulesImportCommand())
	rulesCmd.AddCommand(newRulesExportCommand())
	return rulesCmd
}

func newRulesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List keyword and group rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Keyword rules (priority order):")
			for _, r := range s.Rules().KeywordRules() {
				fmt.Fprintf(out, "  [%3d] %s %q -> %s > %s > %s  (%s)\n",
					r.Priority, r.Match, r.Pattern, r.Class.H1, r.Class.H2, r.Class.H3, r.ID)
			}
			fmt.Fprintln(out, "Group rules:")
			for _, r := range s.Rules().GroupRules() {
				fmt.Fprintf(out, "  %q -> %s > %s > %s\n", r.Group, r.Class.H1, r.Class.H2, r.Class.H3)
			}
			return nil
		},
	}
}

func newRulesAddCommand() *cobra.Command {
	var kind string
	var match string
	var priority int
	var exclude []string
	var h1, h2, h3, h4, h5 string

	cmd := &cobra.Command{
		Use:   "add <condition-value>",
		Short: "Add a keyword or group rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			class := model.Classification{H1: h1, H2: h2, H3: h3, H4: h4, H5: h5}
			switch rules.Kind(kind) {
			case rules.KindKeyword:
				err = s.Rules().AddKeywordRule(rules.KeywordRule{
					Pattern:  args[0],
					Match:    rules.MatchType(match),
					Priority: priority,
					Exclude:  exclude,
					Class:    class,
				})
			case rules.KindGroup:
				err = s.Rules().AddGroupRule(rules.GroupRule{Group: args[0], Class: class})
			default:
				err = fmt.Errorf("unknown rule kind %q", kind)
			}
			if err != nil {
				return err
			}
			if err := s.SaveRules(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s rule for %q.\n", kind, args[0])
			snapshot(cmd, s, workspaceFlag(cmd), "rules: add "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(rules.KindKeyword), "rule kind (keyword, group)")
	cmd.Flags().StringVar(&match, "match", string(rules.MatchContains), "keyword match type (contains, starts-with, ends-with)")
	cmd.Flags().IntVar(&priority, "priority", 0, "keyword priority, higher wins")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "keyword that vetoes the match (repeatable)")
	cmd.Flags().StringVar(&h1, "h1", "", "statement")
	cmd.Flags().StringVar(&h2, "h2", "", "category")
	cmd.Flags().StringVar(&h3, "h3", "", "note head")
	cmd.Flags().StringVar(&h4, "h4", "", "sub-note")
	cmd.Flags().StringVar(&h5, "h5", "", "free-text detail")

	return cmd
}

func newRulesDeleteCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "delete <rule-id-or-group>",
		Short: "Delete a keyword rule by id, or a group rule by group name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			var deleted bool
			switch rules.Kind(kind) {
			case rules.KindKeyword:
				deleted = s.Rules().DeleteKeywordRule(args[0])
			case rules.KindGroup:
				deleted = s.Rules().DeleteGroupRule(args[0])
			default:
				return fmt.Errorf("unknown rule kind %q", kind)
			}
			if !deleted {
				return fmt.Errorf("no %s rule matching %q", kind, args[0])
			}
			if err := s.SaveRules(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s rule %q.\n", kind, args[0])
			snapshot(cmd, s, workspaceFlag(cmd), "rules: delete "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(rules.KindKeyword), "rule kind (keyword, group)")

	return cmd
}

func newRulesImportCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import rules from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Open(workspaceFlag(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			res, err := s.Rules().ImportCSV(f, rules.Kind(kind))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := s.SaveRules(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s rules.\n", res.Added, kind)
			for _, c := range res.Conflicts {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s rule %q overwritten (%s -> %s)\n",
					c.Tier, c.Condition, c.Old.H3, c.New.H3)
			}
			snapshot(cmd, s, workspaceFlag(cmd), "rules: import "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(rules.KindGroup), "rule kind (keyword, group)")

	return cmd
}

func newRulesExportCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export rules to a CSV file",
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

			if err := s.Rules().ExportCSV(f, rules.Kind(kind)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s rules to %s.\n", kind, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(rules.KindGroup), "rule kind (keyword, group)")

	return cmd
}
