package gacha

import (
	"testing"

	"github.com/srliao/critterduel/pkg/rarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		mod  func(c *Config)
		err  error
	}{
		{"zero pity", func(c *Config) { c.HardPity = 0 }, ErrInvalidPity},
		{"base sum", func(c *Config) { c.BaseRates[0].Percent = 59 }, ErrInvalidRates},
		{"premium sum", func(c *Config) { c.PremiumRates[0].Percent = 10 }, ErrInvalidRates},
		{"missing tier", func(c *Config) { c.BaseRates = c.BaseRates[1:]; c.BaseRates[0].Percent = 85 }, ErrInvalidRates},
		{"premium unknown tier", func(c *Config) { c.PremiumRates[0].Tier = rarity.Tier(42) }, ErrInvalidRates},
		{"premium not rarest", func(c *Config) {
			c.PremiumRates = []Rate{{rarity.Rare, 50}, {rarity.Mythic, 50}}
			c.ResetTiers = []rarity.Tier{rarity.Rare, rarity.Mythic}
		}, ErrInvalidRates},
		{"premium single tier", func(c *Config) {
			c.PremiumRates = []Rate{{rarity.Mythic, 100}}
			c.ResetTiers = []rarity.Tier{rarity.Mythic}
		}, ErrInvalidRates},
		{"premium too wide", func(c *Config) {
			c.PremiumRates = []Rate{{rarity.Rare, 25}, {rarity.Epic, 25}, {rarity.Legendary, 25}, {rarity.Mythic, 25}}
			c.ResetTiers = []rarity.Tier{rarity.Rare, rarity.Epic, rarity.Legendary, rarity.Mythic}
		}, ErrInvalidRates},
		{"reset gap", func(c *Config) { c.ResetTiers = []rarity.Tier{rarity.Mythic} }, ErrInvalidRates},
		{"prize weight", func(c *Config) { c.Prizes[0].Weight = 0 }, ErrInvalidRates},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mod(&c)
			assert.ErrorIs(t, c.Validate(), tc.err)
		})
	}
}

func TestValidateAcceptsTwoPremiumTiers(t *testing.T) {
	c := DefaultConfig()
	c.PremiumRates = []Rate{{rarity.Legendary, 90}, {rarity.Mythic, 10}}
	c.ResetTiers = []rarity.Tier{rarity.Legendary, rarity.Mythic}
	assert.NoError(t, c.Validate())
}

func TestNewFillsDefaults(t *testing.T) {
	e, err := New(Config{HardPity: 90}, nil, nil)
	require.NoError(t, err)
	cfg := e.Config()
	assert.Equal(t, 90, cfg.HardPity)
	assert.Len(t, cfg.BaseRates, 6)
	assert.ElementsMatch(t, []rarity.Tier{rarity.Epic, rarity.Legendary, rarity.Mythic}, cfg.ResetTiers)
}
