package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgermap-dev/ledgermap/internal/config"
	"github.com/ledgermap-dev/ledgermap/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var engagement string
	var client string
	var businessType string
	var constitution string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new engagement workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, engagement, client, businessType, constitution, useGit)
		},
	}

	cmd.Flags().StringVar(&engagement, "engagement", "", "engagement id (required)")
	_ = cmd.MarkFlagRequired("engagement")
	cmd.Flags().StringVar(&client, "client", "", "client name")
	cmd.Flags().StringVar(&businessType, "business-type", "trading", "business type (trading, manufacturing, services)")
	cmd.Flags().StringVar(&constitution, "constitution", "company", "constitution (company, llp, partnership, proprietorship, trust, society)")
	cmd.Flags().BoolVar(&useGit, "git", false, "track the workspace in git and snapshot after every change")

	return cmd
}

func runInit(cmd *cobra.Command, dir, engagement, client, businessType, constitution string, useGit bool) error {
	dirs := []string{
		"logs",
		"import",
		filepath.Join("import", "processed"),
		"export",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	cfg := config.Default(engagement, client)
	cfg.Entity.BusinessType = businessType
	cfg.Entity.Constitution = constitution
	cfg.Git.AutoCommit = useGit
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if useGit {
		if err := gitops.Init(dir); err != nil {
			return err
		}
		if _, err := gitops.Snapshot(dir, "init: "+engagement, cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized engagement %s at %s\n", engagement, dir)
	return nil
}
