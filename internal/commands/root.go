// Package commands wires the CLI. Each subcommand opens the engagement
// session, performs one operation and prints a short report; the domain
// logic all lives below the session.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgermap-dev/ledgermap/internal/buildinfo"
	"github.com/ledgermap-dev/ledgermap/internal/gitops"
	"github.com/ledgermap-dev/ledgermap/internal/session"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgermap",
		Short:   "Trial-balance classification for audit engagements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "engagement workspace directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newClassifyCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newExceptionsCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newExportCommand())

	return rootCmd
}

func workspaceFlag(cmd *cobra.Command) string {
	ws, err := cmd.Flags().GetString("workspace")
	if err != nil || ws == "" {
		return "."
	}
	return ws
}

// snapshot records a workspace commit after a state-changing command when
// auto-commit is on. Snapshot failures warn; they never fail the command.
func snapshot(cmd *cobra.Command, s *session.Session, workspace, message string) {
	cfg := s.Config()
	if !cfg.Git.AutoCommit || !gitops.IsRepo(workspace) {
		return
	}
	if _, err := gitops.Snapshot(workspace, message, cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: git snapshot failed: %v\n", err)
	}
}
