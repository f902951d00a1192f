package arena

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/gacha"
	"github.com/srliao/critterduel/pkg/rng"
	"go.uber.org/zap"
)

//Arena owns live sessions and pity counters. It allows one in flight mutation
//per session and one in flight draw per actor; different sessions and actors
//proceed in parallel.
type Arena struct {
	Log *zap.SugaredLogger

	cfg      combat.BattleConfig
	gacha    *gacha.Engine
	sessions SessionStore
	pity     PityStore
	outcomes OutcomeStore
	newRand  func() rng.Source
	now      func() time.Time

	entries sync.Map //session id -> *entry
	actors  sync.Map //actor id -> *sync.Mutex
}

type entry struct {
	mu    sync.Mutex
	ended *BattleRecord //set by the SessionEnd hook until it is stored
}

type Option func(*Arena)

func WithSessions(s SessionStore) Option { return func(a *Arena) { a.sessions = s } }
func WithPity(p PityStore) Option        { return func(a *Arena) { a.pity = p } }
func WithOutcomes(o OutcomeStore) Option { return func(a *Arena) { a.outcomes = o } }
func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *Arena) { a.Log = l }
}

//WithRandom sets the source factory used for each new session
func WithRandom(f func() rng.Source) Option { return func(a *Arena) { a.newRand = f } }
func WithClock(f func() time.Time) Option   { return func(a *Arena) { a.now = f } }

//New builds an arena. Stores default to the in memory implementations.
func New(cfg combat.BattleConfig, g *gacha.Engine, opts ...Option) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("arena: reward engine is required")
	}
	a := &Arena{
		cfg:   cfg,
		gacha: g,
		now:   time.Now,
		newRand: func() rng.Source {
			return rng.Default()
		},
	}
	for _, f := range opts {
		f(a)
	}
	if a.Log == nil {
		a.Log = zap.NewNop().Sugar()
	}
	if a.sessions == nil {
		a.sessions = NewMemSessions()
	}
	if a.pity == nil {
		a.pity = NewMemPity()
	}
	if a.outcomes == nil {
		a.outcomes = NewMemOutcomes()
	}
	return a, nil
}

func (a *Arena) entry(id string) *entry {
	v, _ := a.entries.LoadOrStore(id, &entry{})
	return v.(*entry)
}

//lock finds a live session and returns it with its entry locked. Unknown ids
//leave no entry behind.
func (a *Arena) lock(id string) (*entry, *combat.Session, error) {
	if _, err := a.sessions.Get(id); err != nil {
		return nil, nil, err
	}
	e := a.entry(id)
	e.mu.Lock()
	//closed while we waited
	s, err := a.sessions.Get(id)
	if err != nil {
		e.mu.Unlock()
		a.entries.CompareAndDelete(id, e)
		return nil, nil, err
	}
	return e, s, nil
}

func (a *Arena) actorLock(id string) *sync.Mutex {
	v, _ := a.actors.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

//Start opens a session between two normalized profiles and returns its id
func (a *Arena) Start(ctx context.Context, x, y combat.CombatantProfile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := combat.New(a.cfg, x, y, a.newRand(), a.Log)
	if err != nil {
		return "", err
	}
	s.ID = uuid.NewString()
	e := a.entry(s.ID)
	s.AddEventHook(func(s *combat.Session, r *combat.ActionResult) bool {
		rec := a.record(s)
		e.ended = &rec
		return true
	}, "record outcome", combat.SessionEnd)

	if err := a.sessions.Put(s); err != nil {
		a.entries.Delete(s.ID)
		return "", fmt.Errorf("put session: %w", err)
	}
	a.Log.Infow("session started", "id", s.ID, "a", x.ID, "b", y.ID)
	return s.ID, nil
}

func (a *Arena) record(s *combat.Session) BattleRecord {
	o := s.Outcome
	r := BattleRecord{
		SessionID: s.ID,
		Winner:    o.Winner,
		Draw:      o.Draw,
		Reason:    o.Reason,
		Turns:     o.Turns,
		Log:       o.Log,
		EndedAt:   a.now(),
	}
	for i, c := range s.Combatants {
		r.Players[i] = c.ID
		r.FinalHP[i] = c.HP
	}
	return r
}

//flush stores a pending outcome; the entry lock must be held
func (a *Arena) flush(ctx context.Context, e *entry) error {
	if e.ended == nil {
		return nil
	}
	if err := a.outcomes.SaveBattle(ctx, *e.ended); err != nil {
		a.Log.Warnw("save battle failed", "id", e.ended.SessionID, "err", err)
		return fmt.Errorf("save battle: %w", err)
	}
	e.ended = nil
	return nil
}

//Act submits one action to a session
func (a *Arena) Act(ctx context.Context, sessionID, actorID string, act combat.Action) (combat.ActionResult, error) {
	if err := ctx.Err(); err != nil {
		return combat.ActionResult{}, err
	}
	e, s, err := a.lock(sessionID)
	if err != nil {
		return combat.ActionResult{}, err
	}
	defer e.mu.Unlock()

	if err := a.flush(ctx, e); err != nil {
		return combat.ActionResult{}, err
	}
	r, err := s.Act(actorID, act)
	if err != nil {
		return r, err
	}
	if err := a.sessions.Put(s); err != nil {
		return r, fmt.Errorf("put session: %w", err)
	}
	return r, a.flush(ctx, e)
}

//Forfeit ends a session with actorID as the loser
func (a *Arena) Forfeit(ctx context.Context, sessionID, actorID string) (combat.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return combat.Outcome{}, err
	}
	e, s, err := a.lock(sessionID)
	if err != nil {
		return combat.Outcome{}, err
	}
	defer e.mu.Unlock()

	o, err := s.Forfeit(actorID)
	if err != nil {
		return o, err
	}
	if err := a.sessions.Put(s); err != nil {
		return o, fmt.Errorf("put session: %w", err)
	}
	return o, a.flush(ctx, e)
}

//View runs f on the session while holding its lock. f must not keep s.
func (a *Arena) View(sessionID string, f func(s *combat.Session)) error {
	e, s, err := a.lock(sessionID)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()
	f(s)
	return nil
}

//Close drops a session from the live store
func (a *Arena) Close(ctx context.Context, sessionID string) error {
	e, _, err := a.lock(sessionID)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()
	if err := a.flush(ctx, e); err != nil {
		return err
	}
	if err := a.sessions.Delete(sessionID); err != nil {
		return err
	}
	a.entries.Delete(sessionID)
	return nil
}

//Battles lists stored battle records for an actor
func (a *Arena) Battles(ctx context.Context, actorID string) ([]BattleRecord, error) {
	return a.outcomes.Battles(ctx, actorID)
}

//Pull performs one reward draw for actorID, reading and writing its counter
//under the actor's lock
func (a *Arena) Pull(ctx context.Context, actorID string) (gacha.Outcome, error) {
	out, err := a.PullN(ctx, actorID, 1)
	if err != nil {
		return gacha.Outcome{}, err
	}
	return out[0], nil
}

//PullN performs n draws in a row for actorID
func (a *Arena) PullN(ctx context.Context, actorID string, n int) ([]gacha.Outcome, error) {
	if n < 1 {
		return nil, fmt.Errorf("pull count must be >= 1, got %v", n)
	}
	mu := a.actorLock(actorID)
	mu.Lock()
	defer mu.Unlock()

	count, err := a.pity.PullCount(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("read pity: %w", err)
	}
	out, next := a.gacha.PullN(count, n)
	if err := a.pity.SetPullCount(ctx, actorID, next); err != nil {
		return nil, fmt.Errorf("write pity: %w", err)
	}
	for _, o := range out {
		rec := PullRecord{
			ActorID:   actorID,
			Rarity:    o.Rarity,
			Prize:     o.Prize,
			PullCount: o.PullCount,
			PityReset: o.PityReset,
			DrawnAt:   a.now(),
		}
		if err := a.outcomes.SavePull(ctx, rec); err != nil {
			return out, fmt.Errorf("save pull: %w", err)
		}
	}
	a.Log.Debugw("pulls", "actor", actorID, "n", n, "from", count, "to", next)
	return out, nil
}

//PullCount reads an actor's stored counter
func (a *Arena) PullCount(ctx context.Context, actorID string) (int, error) {
	return a.pity.PullCount(ctx, actorID)
}

//Pulls lists stored draws for an actor
func (a *Arena) Pulls(ctx context.Context, actorID string) ([]PullRecord, error) {
	return a.outcomes.Pulls(ctx, actorID)
}
