package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermap-dev/ledgermap/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("fy25-acme", "Acme Industries Pvt Ltd")
	cfg.Entity.BusinessType = string(model.BusinessManufacturing)
	cfg.Entity.Constitution = string(model.ConstitutionPartnership)
	cfg.Engagement.PeriodEnd = "2025-03-31"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Engagement.ID, got.Engagement.ID)
	assert.Equal(t, cfg.Engagement.ClientName, got.Engagement.ClientName)
	assert.Equal(t, cfg.Engagement.PeriodEnd, got.Engagement.PeriodEnd)
	assert.Equal(t, cfg.Entity.BusinessType, got.Entity.BusinessType)
	assert.Equal(t, cfg.Entity.Constitution, got.Entity.Constitution)
	assert.Equal(t, cfg.Thresholds.BalanceTolerance, got.Thresholds.BalanceTolerance)
	assert.Equal(t, cfg.Thresholds.SuggestionLimit, got.Thresholds.SuggestionLimit)
	assert.Equal(t, cfg.Database.Path, got.Database.Path)
}

func TestDefaults(t *testing.T) {
	cfg := Default("fy25-acme", "Acme Industries Pvt Ltd")

	assert.Equal(t, "fy25-acme", cfg.Engagement.ID)
	assert.Equal(t, "Acme Industries Pvt Ltd", cfg.Engagement.ClientName)
	assert.Equal(t, string(model.BusinessTrading), cfg.Entity.BusinessType)
	assert.Equal(t, string(model.ConstitutionCompany), cfg.Entity.Constitution)
	assert.Equal(t, "0.01", cfg.Thresholds.BalanceTolerance)
	assert.Equal(t, 3, cfg.Thresholds.SuggestionLimit)
	assert.Equal(t, "ledgermap.db", cfg.Database.Path)
}

func TestContext(t *testing.T) {
	cfg := Default("e", "c")
	cfg.Entity.BusinessType = string(model.BusinessManufacturing)
	cfg.Entity.Constitution = string(model.ConstitutionLLP)

	ctx := cfg.Context()
	assert.Equal(t, model.BusinessManufacturing, ctx.BusinessType)
	assert.Equal(t, model.ConstitutionLLP, ctx.Constitution)
	assert.True(t, ctx.IsPartnershipLike())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
