package combat

import (
	"github.com/srliao/critterduel/pkg/effect"
	"github.com/srliao/critterduel/pkg/rarity"
)

//Combatant is one side's battle condition. It lives for one session only.
type Combatant struct {
	ID     string
	Name   string
	Level  int
	Power  float64
	Rarity rarity.Tier //rarity of the equipped power
	HP     int
	MaxHP  int
	Base   effect.StatBlock
	//Effects is ordered; see effect.EffectiveStats
	Effects   effect.List
	Cooldowns map[string]int
	Skill     PowerProfile
}

func newCombatant(p CombatantProfile, cfg BattleConfig) *Combatant {
	c := &Combatant{
		ID:        p.ID,
		Name:      p.Name,
		Level:     p.Level,
		Power:     p.Power,
		Rarity:    p.Skill.Rarity,
		Base:      p.Stats,
		Cooldowns: make(map[string]int),
		Skill:     p.Skill,
	}
	c.MaxHP = maxHP(cfg, p.Level, p.Power, p.Skill.Rarity)
	c.HP = c.MaxHP
	c.Cooldowns[p.Skill.ID] = 0
	return c
}

//maxHP combines a base constant, a per level increment and a fraction of the
//aggregate power, scaled by the equipped power's rarity
func maxHP(cfg BattleConfig, level int, power float64, t rarity.Tier) int {
	hp := cfg.BaseHP + cfg.HPPerLevel*float64(level) + cfg.HPPowerFraction*power
	hp *= tierMult(cfg.RarityHPMult, t)
	if hp < 1 {
		hp = 1
	}
	return int(hp)
}

//Stats returns the combatant's current usable stats
func (c *Combatant) Stats() effect.StatBlock {
	return effect.EffectiveStats(c.Base, &c.Effects)
}

//HPFraction is hp / max hp
func (c *Combatant) HPFraction() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP)
}

func (c *Combatant) Alive() bool {
	return c.HP > 0
}

//SkillReady reports whether the equipped power is off cooldown
func (c *Combatant) SkillReady() bool {
	return c.Cooldowns[c.Skill.ID] <= 0
}

func (c *Combatant) damage(n int) int {
	if n <= 0 {
		return 0
	}
	if n > c.HP {
		n = c.HP
	}
	c.HP -= n
	return n
}

func (c *Combatant) heal(n int) int {
	if n <= 0 || !c.Alive() {
		return 0
	}
	if c.HP+n > c.MaxHP {
		n = c.MaxHP - c.HP
	}
	c.HP += n
	return n
}

func (c *Combatant) reduceCooldowns() {
	for k, v := range c.Cooldowns {
		if v > 0 {
			c.Cooldowns[k] = v - 1
		}
	}
}

//HPSnapshot is the final condition of one side
type HPSnapshot struct {
	ID    string
	Name  string
	HP    int
	MaxHP int
}

func (c *Combatant) snapshot() HPSnapshot {
	return HPSnapshot{ID: c.ID, Name: c.Name, HP: c.HP, MaxHP: c.MaxHP}
}
