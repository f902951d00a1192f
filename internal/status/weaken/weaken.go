package weaken

import "github.com/srliao/critterduel/pkg/effect"

func init() {
	var pct, flat effect.StatBlock
	pct[effect.DEF] = -0.2
	flat[effect.CRIT] = -5
	effect.RegisterTemplate(effect.Effect{
		Key:          "weaken",
		Name:         "Weaken",
		Kind:         effect.Debuff,
		Duration:     2,
		Percent:      pct,
		Flat:         flat,
		DmgTakenMult: 0.1,
		TicksAt:      effect.TurnEnd,
		DecaysAt:     effect.TurnEnd,
		Stacking:     effect.Refresh,
	})
}
