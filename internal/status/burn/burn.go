package burn

import "github.com/srliao/critterduel/pkg/effect"

func init() {
	effect.RegisterTemplate(effect.Effect{
		Key:      "burn",
		Name:     "Burn",
		Kind:     effect.Debuff,
		Duration: 3,
		DoT:      &effect.Periodic{Amount: 6, Type: "fire"},
		TicksAt:  effect.TurnEnd,
		DecaysAt: effect.TurnEnd,
		//burning again keeps the fire going longer
		Stacking: effect.Extend,
	})
}
