package stun

import "github.com/srliao/critterduel/pkg/effect"

func init() {
	//decays at the victim's turn start, after the lost action has resolved
	effect.RegisterTemplate(effect.Effect{
		Key:      "stun",
		Name:     "Stun",
		Kind:     effect.Debuff,
		Duration: 2,
		Stun:     true,
		TicksAt:  effect.TurnEnd,
		DecaysAt: effect.TurnStart,
		Stacking: effect.Refresh,
	})
}
