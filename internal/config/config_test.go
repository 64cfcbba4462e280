package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10_000_000.0, cfg.Budget)
	assert.Equal(t, int64(500), cfg.MinVolume)
	assert.Equal(t, 25, cfg.ResultLimit)
	assert.Equal(t, 6.0, cfg.MaxFillHours)
	assert.Equal(t, "all", cfg.Membership)
}

func TestClamp(t *testing.T) {
	cfg := &Config{
		Budget:             -1,
		MinVolume:          0,
		ResultLimit:        10_000,
		MaxFillHours:       0.1,
		BuyAggressiveness:  2,
		SellAggressiveness: -1,
		SlotsPerItem:       9,
		TotalSlots:         0,
		Membership:         "ironman",
	}
	cfg.Clamp()

	assert.Equal(t, 10_000_000.0, cfg.Budget)
	assert.Equal(t, int64(500), cfg.MinVolume)
	assert.Equal(t, 200, cfg.ResultLimit)
	assert.Equal(t, 0.25, cfg.MaxFillHours)
	assert.Equal(t, 0.5, cfg.BuyAggressiveness)
	assert.Equal(t, 0.0, cfg.SellAggressiveness)
	assert.Equal(t, 6, cfg.SlotsPerItem)
	assert.Equal(t, 6, cfg.TotalSlots)
	assert.Equal(t, "all", cfg.Membership)
}

func TestClampKeepsValidValues(t *testing.T) {
	cfg := &Config{
		Budget:             2_500_000,
		MinVolume:          1000,
		ResultLimit:        50,
		MaxFillHours:       2,
		BuyAggressiveness:  0.3,
		SellAggressiveness: 0.1,
		SlotsPerItem:       2,
		TotalSlots:         4,
		Membership:         "f2p",
	}
	before := *cfg
	cfg.Clamp()
	assert.Equal(t, before, *cfg)
}
