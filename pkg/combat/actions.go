package combat

import (
	"fmt"

	"github.com/srliao/critterduel/pkg/effect"
)

type ActionType string

//ActionType constants
const (
	ActionAttack ActionType = "attack"
	ActionSkill  ActionType = "skill"
	ActionDefend ActionType = "defend"
	//result only; a stunned combatant's action resolves as this
	ActionStunned ActionType = "stunned"
)

//Action is one submitted move. SkillID is optional and, when set, must name the
//equipped power.
type Action struct {
	Type    ActionType
	SkillID string
}

//ActionResult is everything one call to Act resolved
type ActionResult struct {
	Turn     int
	Actor    string
	Target   string
	Action   ActionType
	Damage   int
	Healing  int
	Crit     bool
	Dodged   bool
	Absorbed float64
	Applied  string //key of the effect applied by this action, if any
	Log      string
	Ticks    []string //periodic effect lines that followed the action
	Ended    bool
	Outcome  *Outcome
}

const guardKey = "guard"

func guardEffect(reduction float64) *effect.Effect {
	return &effect.Effect{
		Key:          guardKey,
		Name:         "Guard",
		Kind:         effect.Buff,
		Duration:     1,
		DmgTakenMult: -reduction,
		TicksAt:      effect.TurnEnd,
		//survives the opponent's turn, gone when the owner acts again
		DecaysAt: effect.TurnStart,
		Stacking: effect.Refresh,
	}
}

//Act resolves one action for actorID. Rejected actions return an error and
//leave the session untouched.
func (s *Session) Act(actorID string, a Action) (ActionResult, error) {
	if s.Status != Active {
		return ActionResult{}, ErrSessionEnded
	}
	if actorID != s.CurrentPlayer() {
		return ActionResult{}, fmt.Errorf("%w: expected %v, got %v", ErrInvalidTurn, s.CurrentPlayer(), actorID)
	}
	actor := s.Combatants[s.Current]
	target := s.Combatants[1-s.Current]

	cc := effect.CrowdControl(&actor.Effects)
	if err := s.validate(actor, a, cc); err != nil {
		return ActionResult{}, err
	}

	r := ActionResult{
		Turn:   s.Turn,
		Actor:  actor.ID,
		Target: target.ID,
		Action: a.Type,
	}
	s.Log.Infof("[%v] %v executing %v", s.Label(), actor.ID, a.Type)

	switch {
	case cc.Stunned:
		r.Action = ActionStunned
		r.Target = ""
		r.Log = fmt.Sprintf("%v is stunned and cannot act", actor.Name)
	case a.Type == ActionAttack:
		s.attack(actor, target, &r)
	case a.Type == ActionSkill:
		s.skill(actor, target, &r)
	case a.Type == ActionDefend:
		s.defend(actor, &r)
	}
	s.record(fmt.Sprintf("[%v] %v", s.Label(), r.Log))

	s.advance(&r)

	s.Results = append(s.Results, r)
	s.executeEventHooks(PostAction, &r)
	return r, nil
}

//validate rejects malformed actions and skills on cooldown even while stunned.
//Silence and taunt only matter when the action would actually resolve.
func (s *Session) validate(actor *Combatant, a Action, cc effect.CC) error {
	switch a.Type {
	case ActionAttack:
	case ActionSkill:
		if a.SkillID != "" && a.SkillID != actor.Skill.ID {
			return fmt.Errorf("%w: %v does not have skill %v", ErrUnknownAction, actor.ID, a.SkillID)
		}
		if cc.Silenced && !cc.Stunned {
			return ErrSilenced
		}
		if !actor.SkillReady() {
			return fmt.Errorf("%w: %v ready in %v", ErrSkillOnCooldown, actor.Skill.Name, actor.Cooldowns[actor.Skill.ID])
		}
	case ActionDefend:
		if cc.Taunted && !cc.Stunned {
			return ErrTaunted
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}

func (s *Session) attack(actor, target *Combatant, r *ActionResult) {
	ds := s.snapshot(actor, target, ActionAttack)
	h := s.resolveHit(ds, actor, target)
	s.applyHit(h, target, r)
	switch {
	case h.dodged:
		r.Log = fmt.Sprintf("%v attacks, but %v dodges", actor.Name, target.Name)
	case h.crit:
		r.Log = fmt.Sprintf("%v lands a critical hit on %v for %v damage", actor.Name, target.Name, r.Damage)
	default:
		r.Log = fmt.Sprintf("%v attacks %v for %v damage", actor.Name, target.Name, r.Damage)
	}
	r.Log += absorbNote(h)
}

func (s *Session) skill(actor, target *Combatant, r *ActionResult) {
	p := actor.Skill
	ds := s.snapshot(actor, target, ActionSkill)
	h := s.resolveHit(ds, actor, target)
	s.applyHit(h, target, r)
	actor.Cooldowns[p.ID] = p.Cooldown

	switch {
	case h.dodged:
		r.Log = fmt.Sprintf("%v uses %v, but %v dodges", actor.Name, p.Name, target.Name)
	case h.crit:
		r.Log = fmt.Sprintf("%v uses %v: critical hit on %v for %v damage", actor.Name, p.Name, target.Name, r.Damage)
	default:
		r.Log = fmt.Sprintf("%v uses %v on %v for %v damage", actor.Name, p.Name, target.Name, r.Damage)
	}
	r.Log += absorbNote(h)

	if p.Inflict == nil || h.dodged {
		return
	}
	who := target
	if p.InflictSelf {
		who = actor
	}
	ap := s.fx.Apply(who.Name, &who.Effects, p.Inflict)
	r.Applied = ap.Effect.Key
	r.Log += "; " + ap.Log
}

func (s *Session) defend(actor *Combatant, r *ActionResult) {
	r.Target = ""
	r.Healing = actor.heal(int(s.cfg.DefendHealFraction * float64(actor.MaxHP)))
	ap := s.fx.Apply(actor.Name, &actor.Effects, guardEffect(s.cfg.DefendReduction))
	r.Applied = ap.Effect.Key
	r.Log = fmt.Sprintf("%v defends and recovers %v HP", actor.Name, r.Healing)
}

func (s *Session) applyHit(h hitResult, target *Combatant, r *ActionResult) {
	r.Crit = h.crit
	r.Dodged = h.dodged
	r.Absorbed = h.dmg.Absorbed
	r.Damage = h.dmg.Final
	target.damage(h.dmg.Final)
}

func absorbNote(h hitResult) string {
	if h.dodged || h.dmg.Absorbed <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%.0f absorbed by %v)", h.dmg.Absorbed, h.dmg.Shield)
}

//advance runs the between-turn phases: turnEnd ticks for both sides, the
//termination check, cooldown reduction, the hand over and the turnStart tick
//of the combatant whose turn begins
func (s *Session) advance(r *ActionResult) {
	for _, c := range s.Combatants {
		s.tick(c, effect.TurnEnd, r)
	}
	if s.checkEnd(r) {
		return
	}

	for _, c := range s.Combatants {
		c.reduceCooldowns()
	}
	s.Current = 1 - s.Current
	s.Turn++
	if s.checkTimeLimit(r) {
		return
	}

	s.tick(s.Combatants[s.Current], effect.TurnStart, r)
	s.checkEnd(r)
}

func (s *Session) tick(c *Combatant, phase effect.Phase, r *ActionResult) {
	t := s.fx.Tick(c.Name, &c.Effects, phase)
	//DoT and HoT of one tick land as a single net change; a knocked out side
	//stays down
	var dealt, healed int
	if c.Alive() {
		if net := t.DoT - t.HoT; net > 0 {
			dealt = c.damage(net)
		} else {
			healed = c.heal(-net)
		}
	}
	if dealt > 0 || healed > 0 {
		s.Log.Debugw("\tperiodic", "id", c.ID, "phase", phase, "dot", dealt, "hot", healed, "hp", c.HP)
	}
	for _, l := range t.Logs {
		s.record(fmt.Sprintf("[%v] %v", s.Label(), l))
		r.Ticks = append(r.Ticks, l)
	}
}
