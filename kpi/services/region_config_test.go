package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRegionConfigCircles(t *testing.T) {
	cfg := DefaultRegionConfig()

	assert.True(t, cfg.CircleValid("North", "DL"))
	assert.True(t, cfg.CircleValid("East", "NESA"))
	assert.True(t, cfg.CircleValid("West", "MPCG"))
	assert.True(t, cfg.CircleValid("South", "APTL"))

	assert.False(t, cfg.CircleValid("North", "TN"))
	assert.False(t, cfg.CircleValid("South", "DL"))
	assert.False(t, cfg.CircleValid("Central", "DL"))
}

func TestDefaultRegionConfigRegionsOrder(t *testing.T) {
	assert.Equal(t, []string{"East", "West", "North", "South"}, DefaultRegionConfig().Regions())
}

func TestDefaultRegionConfigWorkDoneBy(t *testing.T) {
	cfg := DefaultRegionConfig()
	_, partner := cfg.ValidWorkDoneBy["Partner"]
	_, rvs := cfg.ValidWorkDoneBy["RVS"]
	_, vendor := cfg.ValidWorkDoneBy["Vendor"]
	assert.True(t, partner)
	assert.True(t, rvs)
	assert.False(t, vendor)
}
