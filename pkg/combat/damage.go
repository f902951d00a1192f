package combat

import (
	"github.com/srliao/critterduel/pkg/effect"
)

//Snapshot captures every input of one hit at the moment it is resolved
type Snapshot struct {
	Attacker string
	Defender string
	Action   ActionType

	Base        float64 //attack base or power base damage
	PowerRatio  float64 //capped attacker/defender aggregate power
	LevelFactor float64
	StatFactor  float64 //effective atk / effective def, clamped
	RarityMult  float64 //1 for basic attacks

	CritChance  float64
	DodgeChance float64
}

//Raw is the pre-roll damage of the snapshot
func (ds Snapshot) Raw() float64 {
	return ds.Base * ds.PowerRatio * ds.LevelFactor * ds.StatFactor * ds.RarityMult
}

type hitResult struct {
	raw    float64
	crit   bool
	dodged bool
	dmg    effect.Damage
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func powerRatio(att, def *Combatant, limit float64) float64 {
	if def.Power <= 0 {
		return limit
	}
	r := att.Power / def.Power
	if r > limit {
		r = limit
	}
	return r
}

func (s *Session) statFactor(att, def effect.StatBlock) float64 {
	a, d := att[effect.ATK], def[effect.DEF]
	if d <= 0 {
		if a <= 0 {
			return 1
		}
		return s.cfg.StatFactorMax
	}
	return clamp(a/d, s.cfg.StatFactorMin, s.cfg.StatFactorMax)
}

//snapshot builds the hit inputs for a basic attack or the equipped skill
func (s *Session) snapshot(att, def *Combatant, t ActionType) Snapshot {
	as, dsStats := att.Stats(), def.Stats()
	ds := Snapshot{
		Attacker:    att.ID,
		Defender:    def.ID,
		Action:      t,
		LevelFactor: 1 + s.cfg.LevelFactor*float64(att.Level),
		StatFactor:  s.statFactor(as, dsStats),
		RarityMult:  1,
	}
	//effective crit is in percentage points
	bonus := as[effect.CRIT] / 100
	switch t {
	case ActionSkill:
		ds.Base = att.Skill.BaseDamage
		ds.PowerRatio = powerRatio(att, def, s.cfg.SkillPowerCap)
		ds.RarityMult = tierMult(s.cfg.RarityDamageMult, att.Skill.Rarity)
		ds.CritChance = clamp(s.cfg.SkillCritChance+bonus, 0, 1)
		ds.DodgeChance = s.cfg.SkillDodgeChance
	default:
		ds.Base = s.cfg.AttackBase
		ds.PowerRatio = powerRatio(att, def, s.cfg.AttackPowerCap)
		ds.CritChance = clamp(s.cfg.CritChance+bonus, 0, 1)
		ds.DodgeChance = s.cfg.DodgeChance
	}
	return ds
}

//resolveHit rolls crit then dodge (independent rolls, both always drawn) and
//runs whatever is left through the effect pipeline. A dodged hit never
//touches shields.
func (s *Session) resolveHit(ds Snapshot, att, def *Combatant) hitResult {
	r := hitResult{raw: ds.Raw()}
	s.Log.Debugw("\thit", "attacker", ds.Attacker, "action", ds.Action, "base", ds.Base, "power ratio", ds.PowerRatio, "level", ds.LevelFactor, "stat", ds.StatFactor, "rarity", ds.RarityMult, "raw", r.raw)

	if s.rand.Float64() < ds.CritChance {
		r.crit = true
		r.raw *= s.cfg.CritMult
		s.Log.Debugf("\t\tdamage is crit! %.2f", r.raw)
	}
	if s.rand.Float64() < ds.DodgeChance {
		r.dodged = true
		s.Log.Debugf("\t\t%v dodged", ds.Defender)
		return r
	}
	r.dmg = s.fx.ModifyDamage(r.raw, &att.Effects, &def.Effects)
	return r
}
