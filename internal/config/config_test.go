package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/rarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profile = `
Label: mirror match
Battle:
  MaxTurns: 30
  CritChance: 0.25
Gacha:
  HardPity: 90
  PremiumRates:
    - {Tier: legendary, Percent: 90}
    - {Tier: mythic, Percent: 10}
Combatants:
  - ID: p1
    Level: 5
    Powers: [ember-fang, tackle]
  - ID: p2
    Powers: [stone-ward]
Rotation:
  - {Action: defend, ConditionType: hp lt, ConditionFloat: 0.3}
  - {Action: skill}
LogConfig:
  LogLevel: info
`

func TestParseOverDefaults(t *testing.T) {
	p, err := Parse([]byte(profile))
	require.NoError(t, err)

	def := combat.DefaultBattleConfig()
	assert.Equal(t, "mirror match", p.Label)
	assert.Equal(t, 30, p.Battle.MaxTurns)
	assert.Equal(t, 0.25, p.Battle.CritChance)
	//untouched keys keep their defaults
	assert.Equal(t, def.BaseHP, p.Battle.BaseHP)
	assert.Equal(t, def.RarityHPMult, p.Battle.RarityHPMult)

	assert.Equal(t, 90, p.Gacha.HardPity)
	require.Len(t, p.Gacha.PremiumRates, 2)
	assert.Equal(t, rarity.Legendary, p.Gacha.PremiumRates[0].Tier)
	assert.Len(t, p.Gacha.BaseRates, 6)

	require.Len(t, p.Combatants, 2)
	assert.Equal(t, []string{"ember-fang", "tackle"}, p.Combatants[0].Powers)
	require.Len(t, p.Rotation, 2)
	assert.Equal(t, combat.ActionDefend, p.Rotation[0].Action)
	assert.Equal(t, 0.3, p.Rotation[0].ConditionFloat)
	assert.Equal(t, "info", p.LogConfig.LogLevel)
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"bad yaml", "Battle: [1, 2"},
		{"bad battle", "Battle:\n  MaxTurns: -1\n"},
		{"bad rates", "Gacha:\n  BaseRates:\n    - {Tier: common, Percent: 50}\n"},
		{"bad tier", "Gacha:\n  ResetTiers: [shiny]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.src))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("CRITTER_LOG_LEVEL", "debug")
	t.Setenv("CRITTER_LOG_CALLER", "true")
	p, err := Parse([]byte(profile))
	require.NoError(t, err)
	assert.Equal(t, "debug", p.LogConfig.LogLevel)
	assert.True(t, p.LogConfig.LogShowCaller)

	t.Setenv("CRITTER_LOG_CALLER", "maybe")
	_, err = Parse([]byte(profile))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(profile), 0o644))
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mirror match", p.Label)

	g, err := GachaOnly(path)
	require.NoError(t, err)
	assert.Equal(t, 90, g.HardPity)

	g, err = GachaOnly("")
	require.NoError(t, err)
	assert.Equal(t, 1500, g.HardPity)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadStore(t *testing.T) {
	s, err := LoadStore()
	require.NoError(t, err)
	assert.Equal(t, "critterduel.db", s.DBPath)

	t.Setenv("CRITTER_DB_PATH", "/tmp/x.db")
	s, err = LoadStore()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", s.DBPath)
}

func TestNewLogger(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", ""} {
		log, err := NewLogger(combat.LogConfig{LogLevel: lvl})
		require.NoError(t, err, lvl)
		assert.NotNil(t, log)
	}

	path := filepath.Join(t.TempDir(), "out.log")
	log, err := NewLogger(combat.LogConfig{LogLevel: "info", LogFile: path})
	require.NoError(t, err)
	log.Info("hello")
	log.Sync()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
}
