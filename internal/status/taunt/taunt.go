package taunt

import "github.com/srliao/critterduel/pkg/effect"

func init() {
	var flat effect.StatBlock
	flat[effect.ATK] = 5
	effect.RegisterTemplate(effect.Effect{
		Key:      "taunt",
		Name:     "Taunt",
		Kind:     effect.Debuff,
		Duration: 2,
		Flat:     flat,
		Taunt:    true,
		TicksAt:  effect.TurnEnd,
		DecaysAt: effect.TurnStart,
		Stacking: effect.Extend,
	})
}
