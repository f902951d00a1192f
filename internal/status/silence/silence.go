package silence

import "github.com/srliao/critterduel/pkg/effect"

func init() {
	effect.RegisterTemplate(effect.Effect{
		Key:      "silence",
		Name:     "Silence",
		Kind:     effect.Debuff,
		Duration: 2,
		Silence:  true,
		TicksAt:  effect.TurnEnd,
		DecaysAt: effect.TurnStart,
		Stacking: effect.Refresh,
	})
}
