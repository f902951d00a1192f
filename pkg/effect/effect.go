package effect

import (
	"errors"
	"fmt"
)

var ErrInvalidTemplate = errors.New("invalid effect template")

type Kind string

const (
	Buff   Kind = "buff"
	Debuff Kind = "debuff"
)

//Phase is a named point in a turn at which effects tick and/or decay
type Phase string

const (
	TurnStart Phase = "turnStart"
	TurnEnd   Phase = "turnEnd"
)

//Stacking decides what happens when an effect with the same key is applied again
type Stacking string

const (
	Stack   Stacking = "stack"
	Refresh Stacking = "refresh"
	Extend  Stacking = "extend"
)

//Periodic is a damage or heal amount applied per stack every time the effect ticks
type Periodic struct {
	Amount int    `yaml:"Amount"`
	Type   string `yaml:"Type"` //damage type tag; unused for heals
}

//Effect is one timed modifier. The same type doubles as the template an effect is
//instantiated from; Apply always clones the template.
type Effect struct {
	Key       string `yaml:"Key"`
	Name      string `yaml:"Name"`
	Kind      Kind   `yaml:"Kind"`
	Duration  int    `yaml:"Duration"` //remaining whole turns
	Stacks    int    `yaml:"Stacks"`
	MaxStacks int    `yaml:"MaxStacks"`

	//applied per stack
	Percent      StatBlock `yaml:"Percent"`
	Flat         StatBlock `yaml:"Flat"`
	DmgDealtMult float64   `yaml:"DmgDealtMult"`
	DmgTakenMult float64   `yaml:"DmgTakenMult"`
	DoT          *Periodic `yaml:"DoT"`
	HoT          *Periodic `yaml:"HoT"`

	//remaining absorption; consumed by incoming damage, never removed by draining
	Shield float64 `yaml:"Shield"`

	Stun    bool `yaml:"Stun"`
	Silence bool `yaml:"Silence"`
	Taunt   bool `yaml:"Taunt"`

	TicksAt  Phase    `yaml:"TicksAt"`
	DecaysAt Phase    `yaml:"DecaysAt"`
	Stacking Stacking `yaml:"Stacking"`
}

//Clone returns a deep copy with stacks normalized to [1, MaxStacks]
func (e *Effect) Clone() *Effect {
	c := *e
	if e.DoT != nil {
		d := *e.DoT
		c.DoT = &d
	}
	if e.HoT != nil {
		h := *e.HoT
		c.HoT = &h
	}
	if c.MaxStacks < 1 {
		c.MaxStacks = 1
	}
	if c.Stacks < 1 {
		c.Stacks = 1
	}
	if c.Stacks > c.MaxStacks {
		c.Stacks = c.MaxStacks
	}
	if c.TicksAt == "" {
		c.TicksAt = TurnEnd
	}
	if c.DecaysAt == "" {
		c.DecaysAt = TurnEnd
	}
	if c.Stacking == "" {
		c.Stacking = Refresh
	}
	return &c
}

//Validate reports template values the engine itself never checks
func (e *Effect) Validate() error {
	switch {
	case e.Key == "":
		return errWrap("missing key")
	case e.Duration <= 0:
		return errWrap("duration must be positive")
	case e.MaxStacks < 0 || e.Stacks < 0:
		return errWrap("stacks must not be negative")
	case e.Shield < 0:
		return errWrap("shield must not be negative")
	}
	switch e.Kind {
	case Buff, Debuff:
	default:
		return errWrap("kind must be buff or debuff")
	}
	for _, p := range []Phase{e.TicksAt, e.DecaysAt} {
		switch p {
		case "", TurnStart, TurnEnd:
		default:
			return errWrap("unknown phase " + string(p))
		}
	}
	switch e.Stacking {
	case "", Stack, Refresh, Extend:
	default:
		return errWrap("unknown stacking policy " + string(e.Stacking))
	}
	return nil
}

func errWrap(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTemplate, msg)
}
