package regen

import "github.com/srliao/critterduel/pkg/effect"

func init() {
	effect.RegisterTemplate(effect.Effect{
		Key:       "regen",
		Name:      "Regeneration",
		Kind:      effect.Buff,
		Duration:  3,
		MaxStacks: 2,
		HoT:       &effect.Periodic{Amount: 8},
		TicksAt:   effect.TurnStart,
		DecaysAt:  effect.TurnStart,
		Stacking:  effect.Stack,
	})
}
