package roster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/effect"
	"github.com/srliao/critterduel/pkg/rarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/srliao/critterduel/internal/status"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	ids := c.IDs()
	require.NotEmpty(t, ids)
	for _, id := range ids {
		d, err := c.Power(id)
		require.NoError(t, err)
		_, err = d.Profile()
		assert.NoError(t, err, id)
	}

	d, err := c.Power("tackle")
	require.NoError(t, err)
	//cooldown may be omitted
	assert.Equal(t, "Tackle", d.Name)
	assert.Equal(t, 0, d.Cooldown)
	assert.Equal(t, rarity.Common, d.Rarity)
}

func TestParseCatalogRejects(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing id", "- Name: x\n"},
		{"bad rarity", "- ID: x\n  Rarity: shiny\n"},
		{"negative cooldown", "- ID: x\n  Cooldown: -1\n"},
		{"unknown effect", "- ID: x\n  Inflicts: nope\n"},
		{"duplicate", "- ID: x\n- ID: x\n"},
		{"unknown stat", "- ID: x\n  Stats: {luck: 2}\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(c.src))
			assert.Error(t, err)
		})
	}
}

func TestNormalize(t *testing.T) {
	c, err := ParseCatalog([]byte(`
- ID: fang
  Rarity: epic
  Power: 80
  BaseDamage: 20
  Cooldown: 3
  Inflicts: burn
  Stats: {atk: 4}
- ID: shell
  Power: 20
  Stats: {def: 2, crit: 1}
`))
	require.NoError(t, err)

	p, err := c.Normalize(combat.RosterSelection{ID: "p1", Level: 3, Powers: []string{"fang", "shell"}})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.Name)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 100.0, p.Power)
	assert.Equal(t, 18.0, p.Stats[effect.ATK])
	assert.Equal(t, 16.0, p.Stats[effect.DEF])
	assert.Equal(t, 10.0, p.Stats[effect.SPD])
	assert.Equal(t, 1.0, p.Stats[effect.CRIT])

	assert.Equal(t, "fang", p.Skill.ID)
	assert.Equal(t, "fang", p.Skill.Name)
	assert.Equal(t, rarity.Epic, p.Skill.Rarity)
	assert.Equal(t, 3, p.Skill.Cooldown)
	require.NotNil(t, p.Skill.Inflict)
	assert.Equal(t, "burn", p.Skill.Inflict.Key)

	//the equipped power is the first one listed
	p, err = c.Normalize(combat.RosterSelection{ID: "p2", Powers: []string{"shell", "fang"}})
	require.NoError(t, err)
	assert.Equal(t, "shell", p.Skill.ID)
	assert.Nil(t, p.Skill.Inflict)
	assert.Equal(t, 1, p.Level)
}

func TestNormalizeErrors(t *testing.T) {
	c := DefaultCatalog()
	_, err := c.Normalize(combat.RosterSelection{ID: "p1"})
	assert.True(t, errors.Is(err, ErrEmptyRoster))

	_, err = c.Normalize(combat.RosterSelection{ID: "p1", Powers: []string{"tackle", "missing"}})
	assert.True(t, errors.Is(err, ErrUnknownPower))

	_, err = c.Normalize(combat.RosterSelection{Powers: []string{"tackle"}})
	assert.Error(t, err)
}

func TestNormalizedProfileStartsSession(t *testing.T) {
	c := DefaultCatalog()
	a, err := c.Normalize(combat.RosterSelection{ID: "a", Level: 10, Powers: []string{"thunder-slam", "tackle"}})
	require.NoError(t, err)
	b, err := c.Normalize(combat.RosterSelection{ID: "b", Level: 10, Powers: []string{"stone-ward"}})
	require.NoError(t, err)

	s, err := combat.New(combat.DefaultBattleConfig(), a, b, nil, nil)
	require.NoError(t, err)
	assert.Greater(t, s.Combatants[0].MaxHP, 0)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- ID: x\n  Power: 1\n"), 0o644))
	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, c.IDs())

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
