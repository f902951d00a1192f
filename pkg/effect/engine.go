package effect

import (
	"fmt"

	"go.uber.org/zap"
)

//Engine applies, ticks and reads effects. It holds no effect state of its own;
//every call works on the List it is handed.
type Engine struct {
	Log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{Log: log}
}

type Outcome string

const (
	Added     Outcome = "added"
	Stacked   Outcome = "stacked"
	Refreshed Outcome = "refreshed"
	Extended  Outcome = "extended"
)

//Applied describes the branch Apply took
type Applied struct {
	Effect  *Effect
	Outcome Outcome
	Log     string
}

//Apply instantiates t on l, or follows the existing effect's stacking policy when
//an effect with the same key is already active. It never fails; templates are
//expected to be validated before they get here.
func (e *Engine) Apply(owner string, l *List, t *Effect) Applied {
	cur := l.Find(t.Key)
	if cur == nil {
		n := t.Clone()
		l.add(n)
		msg := fmt.Sprintf("%v gains %v (%v turns)", owner, n.Name, n.Duration)
		e.Log.Debugw("effect added", "owner", owner, "key", n.Key, "duration", n.Duration, "stacks", n.Stacks)
		return Applied{Effect: n, Outcome: Added, Log: msg}
	}

	r := Applied{Effect: cur}
	switch cur.Stacking {
	case Stack:
		if cur.Stacks < cur.MaxStacks {
			cur.Stacks++
		}
		r.Outcome = Stacked
		r.Log = fmt.Sprintf("%v's %v stacks to %v/%v", owner, cur.Name, cur.Stacks, cur.MaxStacks)
	case Extend:
		cur.Duration += t.Duration
		r.Outcome = Extended
		r.Log = fmt.Sprintf("%v's %v extended to %v turns", owner, cur.Name, cur.Duration)
	default:
		if t.Duration > cur.Duration {
			cur.Duration = t.Duration
		}
		r.Outcome = Refreshed
		r.Log = fmt.Sprintf("%v's %v refreshed (%v turns)", owner, cur.Name, cur.Duration)
	}
	e.Log.Debugw("effect reapplied", "owner", owner, "key", cur.Key, "policy", cur.Stacking, "duration", cur.Duration, "stacks", cur.Stacks)
	return r
}

//Damage is the result of running a hit through the effect pipeline
type Damage struct {
	Raw      float64
	Final    int
	Absorbed float64
	Shield   string //key of the shield that absorbed, if any
}

//ModifyDamage scales raw by the attacker's dealt multipliers then the defender's
//taken multipliers (both in list order), lets the first defender shield absorb
//what it can, and truncates the rest to a non negative int.
func (e *Engine) ModifyDamage(raw float64, attacker, defender *List) Damage {
	d := Damage{Raw: raw}
	dmg := raw
	for _, x := range attacker.All() {
		if x.DmgDealtMult != 0 {
			dmg *= 1 + x.DmgDealtMult*float64(x.Stacks)
			e.Log.Debugf("\t\tdealt mult %v x%v from %v -> %.2f", x.DmgDealtMult, x.Stacks, x.Key, dmg)
		}
	}
	for _, x := range defender.All() {
		if x.DmgTakenMult != 0 {
			dmg *= 1 + x.DmgTakenMult*float64(x.Stacks)
			e.Log.Debugf("\t\ttaken mult %v x%v from %v -> %.2f", x.DmgTakenMult, x.Stacks, x.Key, dmg)
		}
	}
	//only the first shield is consulted
	for _, x := range defender.All() {
		if x.Shield <= 0 {
			continue
		}
		if dmg > 0 {
			abs := x.Shield
			if dmg < abs {
				abs = dmg
			}
			x.Shield -= abs
			dmg -= abs
			d.Absorbed = abs
			d.Shield = x.Key
			e.Log.Debugf("\t\tshield %v absorbed %.2f, %.2f left", x.Key, abs, x.Shield)
		}
		break
	}
	if dmg < 0 {
		dmg = 0
	}
	d.Final = int(dmg)
	return d
}

//TickResult totals periodic damage and healing for one phase
type TickResult struct {
	DoT     int
	HoT     int
	Expired []string
	Logs    []string
}

//Tick accumulates DoT/HoT for effects ticking at phase, then decrements the
//duration of effects decaying at phase and removes the ones that run out.
func (e *Engine) Tick(owner string, l *List, phase Phase) TickResult {
	var r TickResult
	for _, x := range l.All() {
		if x.TicksAt != phase {
			continue
		}
		if x.DoT != nil && x.DoT.Amount != 0 {
			amt := x.DoT.Amount * x.Stacks
			r.DoT += amt
			r.Logs = append(r.Logs, fmt.Sprintf("%v takes %v %v damage from %v", owner, amt, x.DoT.Type, x.Name))
		}
		if x.HoT != nil && x.HoT.Amount != 0 {
			amt := x.HoT.Amount * x.Stacks
			r.HoT += amt
			r.Logs = append(r.Logs, fmt.Sprintf("%v recovers %v HP from %v", owner, amt, x.Name))
		}
	}

	next := l.effects[:0]
	for _, x := range l.effects {
		if x.DecaysAt == phase {
			x.Duration--
			if x.Duration <= 0 {
				r.Expired = append(r.Expired, x.Key)
				r.Logs = append(r.Logs, fmt.Sprintf("%v's %v wore off", owner, x.Name))
				e.Log.Debugw("effect expired", "owner", owner, "key", x.Key, "phase", phase)
				continue
			}
		}
		next = append(next, x)
	}
	//clear the tail so removed effects can be collected
	for i := len(next); i < len(l.effects); i++ {
		l.effects[i] = nil
	}
	l.effects = next

	if r.DoT != 0 || r.HoT != 0 {
		e.Log.Debugw("tick", "owner", owner, "phase", phase, "dot", r.DoT, "hot", r.HoT)
	}
	return r
}

//CC reports which crowd control flags are active
type CC struct {
	Stunned  bool
	Silenced bool
	Taunted  bool
}

func CrowdControl(l *List) CC {
	var c CC
	for _, x := range l.All() {
		c.Stunned = c.Stunned || x.Stun
		c.Silenced = c.Silenced || x.Silence
		c.Taunted = c.Taunted || x.Taunt
	}
	return c
}
