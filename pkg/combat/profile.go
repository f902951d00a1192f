package combat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/srliao/critterduel/pkg/effect"
	"github.com/srliao/critterduel/pkg/gacha"
	"github.com/srliao/critterduel/pkg/rarity"
)

//Profile is everything a duel run reads from its yaml file
type Profile struct {
	Label      string            `yaml:"Label"`
	Battle     BattleConfig      `yaml:"Battle"`
	Gacha      gacha.Config      `yaml:"Gacha"`
	Combatants []RosterSelection `yaml:"Combatants"`
	Rotation   []ActionItem      `yaml:"Rotation"`
	LogConfig  LogConfig         `yaml:"LogConfig"`
}

type LogConfig struct {
	LogLevel      string `yaml:"LogLevel" env:"CRITTER_LOG_LEVEL"`
	LogFile       string `yaml:"LogFile" env:"CRITTER_LOG_FILE"`
	LogShowCaller bool   `yaml:"LogShowCaller" env:"CRITTER_LOG_CALLER"`
}

//RosterSelection is the raw, not yet normalized roster of one side: a name, a
//level and an ordered list of power ids. The first power is the equipped one.
type RosterSelection struct {
	ID     string   `yaml:"ID"`
	Name   string   `yaml:"Name"`
	Level  int      `yaml:"Level"`
	Powers []string `yaml:"Powers"`
}

//BattleConfig holds every tunable constant of the resolver
type BattleConfig struct {
	//max hp
	BaseHP          float64   `yaml:"BaseHP"`
	HPPerLevel      float64   `yaml:"HPPerLevel"`
	HPPowerFraction float64   `yaml:"HPPowerFraction"`
	RarityHPMult    []float64 `yaml:"RarityHPMult"` //indexed by rarity tier

	//basic attack
	AttackBase     float64 `yaml:"AttackBase"`
	AttackPowerCap float64 `yaml:"AttackPowerCap"`
	LevelFactor    float64 `yaml:"LevelFactor"` //per level
	CritChance     float64 `yaml:"CritChance"`
	CritMult       float64 `yaml:"CritMult"`
	DodgeChance    float64 `yaml:"DodgeChance"`

	//skill
	SkillPowerCap    float64   `yaml:"SkillPowerCap"`
	SkillCritChance  float64   `yaml:"SkillCritChance"`
	SkillDodgeChance float64   `yaml:"SkillDodgeChance"`
	RarityDamageMult []float64 `yaml:"RarityDamageMult"` //indexed by rarity tier

	//atk/def ratio clamp
	StatFactorMin float64 `yaml:"StatFactorMin"`
	StatFactorMax float64 `yaml:"StatFactorMax"`

	//defend
	DefendHealFraction float64 `yaml:"DefendHealFraction"`
	DefendReduction    float64 `yaml:"DefendReduction"`

	MaxTurns int `yaml:"MaxTurns"`

	//TODO: BlockChance is read from shared config but never rolled; wire it into
	//resolveHit once product confirms block is meant to exist.
	BlockChance float64 `yaml:"BlockChance"`
}

func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		BaseHP:             100,
		HPPerLevel:         12,
		HPPowerFraction:    0.05,
		RarityHPMult:       []float64{1.0, 1.05, 1.1, 1.2, 1.35, 1.5},
		AttackBase:         12,
		AttackPowerCap:     1.5,
		LevelFactor:        0.03,
		CritChance:         0.10,
		CritMult:           1.5,
		DodgeChance:        0.05,
		SkillPowerCap:      2.0,
		SkillCritChance:    0.20,
		SkillDodgeChance:   0.02,
		RarityDamageMult:   []float64{1.0, 1.1, 1.2, 1.35, 1.5, 1.75},
		StatFactorMin:      0.5,
		StatFactorMax:      2.0,
		DefendHealFraction: 0.10,
		DefendReduction:    0.5,
		MaxTurns:           60,
		BlockChance:        0.05,
	}
}

//DefaultProfile is what a profile file is decoded on top of
func DefaultProfile() Profile {
	return Profile{
		Battle: DefaultBattleConfig(),
		Gacha:  gacha.DefaultConfig(),
		LogConfig: LogConfig{
			LogLevel: "warn",
		},
	}
}

func (c BattleConfig) Validate() error {
	var errs []string
	chance := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Sprintf("%v must be in [0,1]", name))
		}
	}
	chance("CritChance", c.CritChance)
	chance("DodgeChance", c.DodgeChance)
	chance("SkillCritChance", c.SkillCritChance)
	chance("SkillDodgeChance", c.SkillDodgeChance)
	chance("DefendHealFraction", c.DefendHealFraction)
	chance("BlockChance", c.BlockChance)
	if c.BaseHP <= 0 {
		errs = append(errs, "BaseHP must be > 0")
	}
	if c.CritMult < 1 {
		errs = append(errs, "CritMult must be >= 1")
	}
	if c.AttackPowerCap <= 0 || c.SkillPowerCap <= 0 {
		errs = append(errs, "power caps must be > 0")
	}
	if c.StatFactorMin <= 0 || c.StatFactorMax < c.StatFactorMin {
		errs = append(errs, "stat factor bounds must satisfy 0 < min <= max")
	}
	if c.MaxTurns <= 0 {
		errs = append(errs, "MaxTurns must be >= 1")
	}
	if len(errs) > 0 {
		return errors.New("invalid battle config: " + strings.Join(errs, "; "))
	}
	return nil
}

//tierMult reads a per-tier multiplier, defaulting to 1 for short tables
func tierMult(table []float64, t rarity.Tier) float64 {
	if int(t) < 0 || int(t) >= len(table) {
		return 1
	}
	return table[t]
}

//PowerProfile is one fully normalized power (skill) definition
type PowerProfile struct {
	ID          string
	Name        string
	Rarity      rarity.Tier
	Power       float64
	BaseDamage  float64
	Cooldown    int
	Inflict     *effect.Effect //optional; nil means the skill only deals damage
	InflictSelf bool           //apply Inflict to the user instead of the opponent
}

//CombatantProfile is one fully normalized side. Every field must be populated
//before the resolver sees it; the resolver never derives defaults.
type CombatantProfile struct {
	ID    string
	Name  string
	Level int
	Power float64 //aggregate power of the whole roster
	Stats effect.StatBlock
	Skill PowerProfile
}
