package rarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestParse(t *testing.T) {
	for _, tier := range All() {
		got, err := Parse(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}
	got, err := Parse("  MyThic ")
	require.NoError(t, err)
	assert.Equal(t, Mythic, got)

	_, err = Parse("shiny")
	assert.Error(t, err)
}

func TestRarest(t *testing.T) {
	assert.Equal(t, Mythic, Rarest())
	assert.Len(t, All(), 6)
	assert.False(t, Tier(42).Valid())
	assert.Equal(t, "tier(42)", Tier(42).String())
}

func TestYAML(t *testing.T) {
	var v struct {
		R Tier `yaml:"R"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("R: legendary\n"), &v))
	assert.Equal(t, Legendary, v.R)

	err := yaml.Unmarshal([]byte("R: shiny\n"), &v)
	assert.Error(t, err)
}
