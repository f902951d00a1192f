package roster

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/effect"
	"github.com/srliao/critterduel/pkg/rarity"
	"gopkg.in/yaml.v2"
)

var (
	ErrUnknownPower = errors.New("unknown power")
	ErrEmptyRoster  = errors.New("roster has no powers")
)

//go:embed powers.yaml
var builtin []byte

//PowerDef is one catalog entry as written in yaml. Optional fields are
//resolved once by ParseCatalog.
type PowerDef struct {
	ID          string           `yaml:"ID"`
	Name        string           `yaml:"Name"`
	Rarity      rarity.Tier      `yaml:"Rarity"`
	Power       float64          `yaml:"Power"`
	BaseDamage  float64          `yaml:"BaseDamage"`
	Cooldown    int              `yaml:"Cooldown"`
	Inflicts    string           `yaml:"Inflicts"` //registered effect template key
	InflictSelf bool             `yaml:"InflictSelf"`
	Stats       effect.StatBlock `yaml:"Stats"` //flat bonus granted to the holder
}

//base stats every combatant starts from before power bonuses
const (
	baseStat     = 10.0
	statPerLevel = 2.0
	maxLevel     = 100
)

//Catalog is an immutable set of power definitions keyed by id
type Catalog struct {
	powers map[string]PowerDef
}

func ParseCatalog(b []byte) (*Catalog, error) {
	var defs []PowerDef
	if err := yaml.Unmarshal(b, &defs); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{powers: make(map[string]PowerDef, len(defs))}
	var errs []string
	for i, d := range defs {
		d, err := normalize(d)
		if err != nil {
			errs = append(errs, fmt.Sprintf("entry %v: %v", i, err))
			continue
		}
		if _, dup := c.powers[d.ID]; dup {
			errs = append(errs, fmt.Sprintf("entry %v: duplicated power %v", i, d.ID))
			continue
		}
		c.powers[d.ID] = d
	}
	if len(errs) > 0 {
		return nil, errors.New("invalid catalog: " + strings.Join(errs, "; "))
	}
	return c, nil
}

func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(b)
}

//DefaultCatalog is the built in catalog. The status templates it names must be
//registered (see internal/status).
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

//normalize fills optional fields and rejects what cannot be defaulted
func normalize(d PowerDef) (PowerDef, error) {
	d.ID = strings.TrimSpace(d.ID)
	if d.ID == "" {
		return d, errors.New("power id is required")
	}
	if d.Name == "" {
		d.Name = d.ID
	}
	if !d.Rarity.Valid() {
		return d, fmt.Errorf("power %v has invalid rarity", d.ID)
	}
	if d.Power < 0 || d.BaseDamage < 0 {
		return d, fmt.Errorf("power %v: power and base damage must be >= 0", d.ID)
	}
	if d.Cooldown < 0 {
		return d, fmt.Errorf("power %v: cooldown must be >= 0", d.ID)
	}
	if d.Inflicts != "" {
		if _, err := effect.Template(d.Inflicts); err != nil {
			return d, fmt.Errorf("power %v: %w", d.ID, err)
		}
	}
	return d, nil
}

func (c *Catalog) Power(id string) (PowerDef, error) {
	d, ok := c.powers[id]
	if !ok {
		return PowerDef{}, fmt.Errorf("%w: %v", ErrUnknownPower, id)
	}
	return d, nil
}

//IDs lists every power id, sorted
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.powers))
	for k := range c.powers {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}

//Profile turns a power definition into the resolver's record
func (d PowerDef) Profile() (combat.PowerProfile, error) {
	p := combat.PowerProfile{
		ID:          d.ID,
		Name:        d.Name,
		Rarity:      d.Rarity,
		Power:       d.Power,
		BaseDamage:  d.BaseDamage,
		Cooldown:    d.Cooldown,
		InflictSelf: d.InflictSelf,
	}
	if d.Inflicts != "" {
		t, err := effect.Template(d.Inflicts)
		if err != nil {
			return p, err
		}
		p.Inflict = t
	}
	return p, nil
}

//Normalize builds a fully populated combatant from a raw selection. The first
//power is equipped; every listed power adds to aggregate power and stats.
func (c *Catalog) Normalize(sel combat.RosterSelection) (combat.CombatantProfile, error) {
	var out combat.CombatantProfile
	if sel.ID == "" {
		return out, errors.New("combatant id is required")
	}
	if len(sel.Powers) == 0 {
		return out, fmt.Errorf("%w: %v", ErrEmptyRoster, sel.ID)
	}
	lvl := sel.Level
	if lvl < 1 {
		lvl = 1
	}
	if lvl > maxLevel {
		lvl = maxLevel
	}
	out.ID = sel.ID
	out.Name = sel.Name
	if out.Name == "" {
		out.Name = sel.ID
	}
	out.Level = lvl

	grow := baseStat + statPerLevel*float64(lvl-1)
	out.Stats[effect.ATK] = grow
	out.Stats[effect.DEF] = grow
	out.Stats[effect.SPD] = baseStat

	for i, id := range sel.Powers {
		d, err := c.Power(id)
		if err != nil {
			return combat.CombatantProfile{}, fmt.Errorf("combatant %v: %w", sel.ID, err)
		}
		out.Power += d.Power
		for j, v := range d.Stats {
			out.Stats[j] += v
		}
		if i == 0 {
			out.Skill, err = d.Profile()
			if err != nil {
				return combat.CombatantProfile{}, fmt.Errorf("combatant %v: %w", sel.ID, err)
			}
		}
	}
	return out, nil
}
