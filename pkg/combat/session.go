package combat

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/srliao/critterduel/pkg/effect"
	"github.com/srliao/critterduel/pkg/rng"
	"go.uber.org/zap"
)

var (
	ErrInvalidTurn     = errors.New("not this combatant's turn")
	ErrSessionEnded    = errors.New("session has ended")
	ErrSkillOnCooldown = errors.New("skill is on cooldown")
	ErrSilenced        = errors.New("combatant is silenced")
	ErrTaunted         = errors.New("combatant is taunted")
	ErrUnknownActor    = errors.New("unknown combatant")
	ErrUnknownAction   = errors.New("unknown action")
)

type Status string

const (
	Active Status = "active"
	Ended  Status = "ended"
)

type Reason string

const (
	ReasonKnockout  Reason = "knockout"
	ReasonDraw      Reason = "draw" //mutual knockout
	ReasonTimeLimit Reason = "time_limit"
	ReasonForfeit   Reason = "forfeit"
)

//Outcome is the terminal result of a session
type Outcome struct {
	Winner  string //empty on a draw
	Draw    bool
	Reason  Reason
	Turns   int
	FinalHP []HPSnapshot
	Log     []string
}

//Session is one two-party match. It is mutated in place by a single owner and
//does no locking of its own.
type Session struct {
	Log *zap.SugaredLogger

	ID         string
	Combatants [2]*Combatant
	Turn       int
	Current    int //index into Combatants of the combatant expected to act
	Status     Status
	Outcome    *Outcome
	History    []string //ordered, human readable
	Results    []ActionResult

	cfg   BattleConfig
	rand  rng.Source
	fx    *effect.Engine
	hooks map[eventHookType][]eventHook
}

//New builds a session from two normalized profiles. The first profile acts
//first.
func New(cfg BattleConfig, a, b CombatantProfile, src rng.Source, log *zap.SugaredLogger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if a.ID == "" || b.ID == "" {
		return nil, fmt.Errorf("%w: combatant id is required", ErrUnknownActor)
	}
	if a.ID == b.ID {
		return nil, fmt.Errorf("duplicated combatant %v", a.ID)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if src == nil {
		src = rng.Default()
	}

	s := &Session{
		Log:    log,
		Turn:   1,
		Status: Active,
		cfg:    cfg,
		rand:   src,
		fx:     effect.New(log),
		hooks:  make(map[eventHookType][]eventHook),
	}
	s.Combatants[0] = newCombatant(a, cfg)
	s.Combatants[1] = newCombatant(b, cfg)

	for _, c := range s.Combatants {
		s.Log.Debugw("combatant ready", "id", c.ID, "level", c.Level, "power", c.Power, "rarity", c.Rarity, "max hp", c.MaxHP, "stats", c.Base.String())
	}
	s.record(fmt.Sprintf("%v (%v HP) vs %v (%v HP)", s.Combatants[0].Name, s.Combatants[0].MaxHP, s.Combatants[1].Name, s.Combatants[1].MaxHP))
	return s, nil
}

func (s *Session) Config() BattleConfig {
	return s.cfg
}

//CurrentPlayer is the id of the combatant whose action is expected next
func (s *Session) CurrentPlayer() string {
	return s.Combatants[s.Current].ID
}

//Combatant looks a side up by id
func (s *Session) Combatant(id string) (*Combatant, bool) {
	for _, c := range s.Combatants {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (s *Session) indexOf(id string) int {
	for i, c := range s.Combatants {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) Label() string {
	return "turn " + strconv.Itoa(s.Turn)
}

func (s *Session) record(line string) {
	s.History = append(s.History, line)
}

//Forfeit ends the session at once with the other side as winner
func (s *Session) Forfeit(actorID string) (Outcome, error) {
	if s.Status != Active {
		return Outcome{}, ErrSessionEnded
	}
	i := s.indexOf(actorID)
	if i == -1 {
		return Outcome{}, fmt.Errorf("%w: %v", ErrUnknownActor, actorID)
	}
	loser := s.Combatants[i]
	winner := s.Combatants[1-i]
	s.record(fmt.Sprintf("[%v] %v forfeits", s.Label(), loser.Name))
	s.finish(winner.ID, ReasonForfeit, nil)
	return *s.Outcome, nil
}

//checkEnd ends the session on a knockout or mutual knockout
func (s *Session) checkEnd(r *ActionResult) bool {
	a, b := s.Combatants[0], s.Combatants[1]
	switch {
	case !a.Alive() && !b.Alive():
		s.finish("", ReasonDraw, r)
	case !a.Alive():
		s.finish(b.ID, ReasonKnockout, r)
	case !b.Alive():
		s.finish(a.ID, ReasonKnockout, r)
	default:
		return false
	}
	return true
}

//checkTimeLimit ends the session once the turn counter passes the limit; the
//higher hp fraction wins and exactly equal fractions are a draw
func (s *Session) checkTimeLimit(r *ActionResult) bool {
	if s.Turn <= s.cfg.MaxTurns {
		return false
	}
	a, b := s.Combatants[0], s.Combatants[1]
	//compare a.HP/a.MaxHP with b.HP/b.MaxHP without float error
	l := a.HP * b.MaxHP
	rr := b.HP * a.MaxHP
	switch {
	case l > rr:
		s.finish(a.ID, ReasonTimeLimit, r)
	case rr > l:
		s.finish(b.ID, ReasonTimeLimit, r)
	default:
		s.finish("", ReasonTimeLimit, r)
	}
	return true
}

func (s *Session) finish(winner string, reason Reason, r *ActionResult) {
	s.Status = Ended
	o := &Outcome{
		Winner: winner,
		Draw:   winner == "",
		Reason: reason,
		Turns:  s.Turn,
	}
	//the counter has already moved past the limit on a time out
	if o.Turns > s.cfg.MaxTurns {
		o.Turns = s.cfg.MaxTurns
	}
	for _, c := range s.Combatants {
		o.FinalHP = append(o.FinalHP, c.snapshot())
	}
	if o.Draw {
		s.record(fmt.Sprintf("[%v] the battle ends in a draw (%v)", s.Label(), reason))
	} else {
		w, _ := s.Combatant(winner)
		s.record(fmt.Sprintf("[%v] %v wins (%v)", s.Label(), w.Name, reason))
	}
	o.Log = append([]string(nil), s.History...)
	s.Outcome = o
	s.Log.Infow("session ended", "id", s.ID, "winner", winner, "reason", reason, "turns", s.Turn)

	if r != nil {
		r.Ended = true
		r.Outcome = o
	}
	s.executeEventHooks(SessionEnd, r)
}
