package rally

import "github.com/srliao/critterduel/pkg/effect"

func init() {
	var pct effect.StatBlock
	pct[effect.ATK] = 0.15
	pct[effect.SPD] = 0.10
	effect.RegisterTemplate(effect.Effect{
		Key:          "rally",
		Name:         "Rally",
		Kind:         effect.Buff,
		Duration:     3,
		MaxStacks:    3,
		Percent:      pct,
		DmgDealtMult: 0.05,
		TicksAt:      effect.TurnEnd,
		DecaysAt:     effect.TurnEnd,
		Stacking:     effect.Stack,
	})
}
