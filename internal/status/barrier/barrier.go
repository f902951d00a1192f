package barrier

import "github.com/srliao/critterduel/pkg/effect"

func init() {
	effect.RegisterTemplate(effect.Effect{
		Key:      "barrier",
		Name:     "Barrier",
		Kind:     effect.Buff,
		Duration: 3,
		Shield:   40,
		TicksAt:  effect.TurnEnd,
		DecaysAt: effect.TurnStart,
		Stacking: effect.Refresh,
	})
}
