package combat

import "github.com/srliao/critterduel/pkg/effect"

//ActionItem is one line of an auto-play priority list
type ActionItem struct {
	Action          ActionType `yaml:"Action"`
	ConditionType   string     `yaml:"ConditionType"`   //"hp lt", "skill ready", "status" or "enemy status"
	ConditionTarget string     `yaml:"ConditionTarget"` //effect key for the status checks
	ConditionBool   bool       `yaml:"ConditionBool"`
	ConditionFloat  float64    `yaml:"ConditionFloat"`
}

//FindNextAction walks the rotation and returns the first action that is both
//legal for actorID right now and whose condition holds. It falls back to a
//basic attack, which is always legal.
func FindNextAction(s *Session, actorID string, rotation []ActionItem) Action {
	i := s.indexOf(actorID)
	if i == -1 {
		return Action{Type: ActionAttack}
	}
	self := s.Combatants[i]
	other := s.Combatants[1-i]
	for _, a := range rotation {
		if self.CanUse(a.Action) && conditionsOk(self, other, a) {
			return Action{Type: a.Action}
		}
	}
	return Action{Type: ActionAttack}
}

//CanUse reports whether Act would accept t from c right now, crowd control and cooldowns considered
func (c *Combatant) CanUse(t ActionType) bool {
	cc := effect.CrowdControl(&c.Effects)
	switch t {
	case ActionAttack:
		return true
	case ActionSkill:
		return !cc.Silenced && c.SkillReady()
	case ActionDefend:
		return !cc.Taunted
	}
	return false
}

func conditionsOk(self, other *Combatant, a ActionItem) bool {
	switch a.ConditionType {
	case "hp lt":
		//ConditionFloat is a fraction of max hp
		if self.HPFraction() >= a.ConditionFloat {
			return false
		}
	case "skill ready":
		if self.SkillReady() != a.ConditionBool {
			return false
		}
	case "status":
		if self.Effects.Has(a.ConditionTarget) != a.ConditionBool {
			return false
		}
	case "enemy status":
		if other.Effects.Has(a.ConditionTarget) != a.ConditionBool {
			return false
		}
	}
	return true
}
