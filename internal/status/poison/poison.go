package poison

import "github.com/srliao/critterduel/pkg/effect"

func init() {
	effect.RegisterTemplate(effect.Effect{
		Key:       "poison",
		Name:      "Poison",
		Kind:      effect.Debuff,
		Duration:  4,
		MaxStacks: 5,
		DoT:       &effect.Periodic{Amount: 3, Type: "toxic"},
		TicksAt:   effect.TurnStart,
		DecaysAt:  effect.TurnEnd,
		Stacking:  effect.Stack,
	})
}
