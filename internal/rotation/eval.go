package rotation

import (
	"fmt"
	"os"

	"github.com/srliao/critterduel/pkg/combat"
)

//Rotation is an ordered priority list of rules
type Rotation []Rule

func Parse(name, src string) (Rotation, error) {
	return New(name, src).Parse()
}

func Load(path string) (Rotation, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(b))
}

//Next returns the first rule's action that actorID may legally take and whose
//conditions hold, or a basic attack.
func (r Rotation) Next(s *combat.Session, actorID string) combat.Action {
	self, ok := s.Combatant(actorID)
	if !ok {
		return combat.Action{Type: combat.ActionAttack}
	}
	other := opponent(s, actorID)
	for _, v := range r {
		if !self.CanUse(v.Action) {
			continue
		}
		if v.Conditions == nil || v.Conditions.eval(s, self, other) {
			return combat.Action{Type: v.Action}
		}
	}
	return combat.Action{Type: combat.ActionAttack}
}

func opponent(s *combat.Session, id string) *combat.Combatant {
	for _, c := range s.Combatants {
		if c.ID != id {
			return c
		}
	}
	return nil
}

func (n *ExprTreeNode) eval(s *combat.Session, self, other *combat.Combatant) bool {
	if n.IsLeaf {
		return n.Expr.eval(s, self, other)
	}
	switch n.Op {
	case "&&":
		return n.Left.eval(s, self, other) && n.Right.eval(s, self, other)
	case "||":
		return n.Left.eval(s, self, other) || n.Right.eval(s, self, other)
	}
	return false
}

func (c Condition) eval(s *combat.Session, self, other *combat.Combatant) bool {
	v := fieldValue(s, self, other, c.Fields)
	switch c.Op {
	case itemEqual:
		return v == c.Value
	case itemNotEqual:
		return v != c.Value
	case itemGreater:
		return v > c.Value
	case itemGreaterOrEqual:
		return v >= c.Value
	case itemLess:
		return v < c.Value
	case itemLessOrEqual:
		return v <= c.Value
	}
	return false
}

//checkFields accepts
//
//	.turn
//	.hp .cd .ready .status.<key>
//	.enemy.hp .enemy.cd .enemy.ready .enemy.status.<key>
func checkFields(f []string) error {
	if len(f) == 1 && f[0] == "turn" {
		return nil
	}
	if len(f) > 0 && f[0] == "enemy" {
		f = f[1:]
	}
	switch {
	case len(f) == 1 && (f[0] == "hp" || f[0] == "cd" || f[0] == "ready"):
		return nil
	case len(f) == 2 && f[0] == "status":
		return nil
	}
	return fmt.Errorf("unknown field %v", f)
}

//fieldValue reads a checked field. hp is a whole percent of max hp and a status
//reads as its stack count, 0 when absent.
func fieldValue(s *combat.Session, self, other *combat.Combatant, f []string) int {
	if f[0] == "turn" {
		return s.Turn
	}
	c := self
	if f[0] == "enemy" {
		c = other
		f = f[1:]
	}
	switch f[0] {
	case "hp":
		if c.MaxHP <= 0 {
			return 0
		}
		return c.HP * 100 / c.MaxHP
	case "cd":
		return c.Cooldowns[c.Skill.ID]
	case "ready":
		if c.SkillReady() {
			return 1
		}
		return 0
	case "status":
		if e := c.Effects.Find(f[1]); e != nil {
			return e.Stacks
		}
	}
	return 0
}
