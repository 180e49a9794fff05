package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledgermap-dev/ledgermap/internal/model"
)

// FileName is the workspace configuration file.
const FileName = "ledgermap.yaml"

// Config represents the top-level ledgermap.yaml configuration.
type Config struct {
	Engagement EngagementConfig `yaml:"engagement"`
	Entity     EntityConfig     `yaml:"entity"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Database   DatabaseConfig   `yaml:"database"`
	Git        GitConfig        `yaml:"git"`
}

// EngagementConfig identifies the audit engagement the workspace serves.
type EngagementConfig struct {
	ID         string `yaml:"id"`
	ClientName string `yaml:"client_name"`
	// PeriodEnd is the reporting date, "YYYY-MM-DD".
	PeriodEnd string `yaml:"period_end,omitempty"`
}

// EntityConfig describes the client entity; it steers the default rule
// variants (trading vs manufacturing purchases, capital presentation).
type EntityConfig struct {
	BusinessType string `yaml:"business_type"`
	Constitution string `yaml:"constitution"`
}

// ThresholdsConfig holds report tuning knobs.
type ThresholdsConfig struct {
	// BalanceTolerance is the absolute closing total treated as zero.
	BalanceTolerance string `yaml:"balance_tolerance"`
	// SuggestionLimit caps name suggestions shown per unmapped row.
	SuggestionLimit int `yaml:"suggestion_limit"`
}

// DatabaseConfig locates the engagement database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// GitConfig controls workspace snapshotting.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Context converts the entity section to the classification context.
func (c *Config) Context() model.Context {
	return model.Context{
		BusinessType: model.BusinessType(c.Entity.BusinessType),
		Constitution: model.Constitution(c.Entity.Constitution),
	}
}

// Load reads a ledgermap.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new engagement.
func Default(engagementID, clientName string) *Config {
	return &Config{
		Engagement: EngagementConfig{
			ID:         engagementID,
			ClientName: clientName,
		},
		Entity: EntityConfig{
			BusinessType: string(model.BusinessTrading),
			Constitution: string(model.ConstitutionCompany),
		},
		Thresholds: ThresholdsConfig{
			BalanceTolerance: "0.01",
			SuggestionLimit:  3,
		},
		Database: DatabaseConfig{
			Path: "ledgermap.db",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Ledgermap",
			AuthorEmail: "audit@ledgermap.dev",
		},
	}
}
