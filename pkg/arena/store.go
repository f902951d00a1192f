package arena

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/rarity"
)

var ErrSessionNotFound = errors.New("session not found")

//SessionStore keeps live sessions by id. Sessions are handed out by pointer;
//the arena serializes every mutation of one session.
type SessionStore interface {
	Get(id string) (*combat.Session, error)
	Put(s *combat.Session) error
	Delete(id string) error
}

//PityStore persists each actor's pull counter. A missing actor reads as 0.
type PityStore interface {
	PullCount(ctx context.Context, actorID string) (int, error)
	SetPullCount(ctx context.Context, actorID string, n int) error
}

//OutcomeStore keeps finished battles and reward draws
type OutcomeStore interface {
	SaveBattle(ctx context.Context, r BattleRecord) error
	Battles(ctx context.Context, actorID string) ([]BattleRecord, error)
	SavePull(ctx context.Context, r PullRecord) error
	Pulls(ctx context.Context, actorID string) ([]PullRecord, error)
}

//BattleRecord is the stored form of a finished session
type BattleRecord struct {
	SessionID string
	Players   [2]string
	Winner    string
	Draw      bool
	Reason    combat.Reason
	Turns     int
	FinalHP   [2]int
	Log       []string
	EndedAt   time.Time
}

func (r BattleRecord) involves(actorID string) bool {
	return r.Players[0] == actorID || r.Players[1] == actorID
}

//PullRecord is one stored reward draw
type PullRecord struct {
	ActorID   string
	Rarity    rarity.Tier
	Prize     string
	PullCount int //counter after the draw
	PityReset bool
	DrawnAt   time.Time
}

//MemSessions is an in memory SessionStore
type MemSessions struct {
	mu sync.RWMutex
	m  map[string]*combat.Session
}

func NewMemSessions() *MemSessions {
	return &MemSessions{m: make(map[string]*combat.Session)}
}

func (m *MemSessions) Get(id string) (*combat.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.m[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *MemSessions) Put(s *combat.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[s.ID] = s
	return nil
}

func (m *MemSessions) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.m[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.m, id)
	return nil
}

//IDs lists live session ids, sorted
func (m *MemSessions) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.m))
	for k := range m.m {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}

//MemPity is an in memory PityStore
type MemPity struct {
	mu sync.Mutex
	m  map[string]int
}

func NewMemPity() *MemPity {
	return &MemPity{m: make(map[string]int)}
}

func (m *MemPity) PullCount(ctx context.Context, actorID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.m[actorID], nil
}

func (m *MemPity) SetPullCount(ctx context.Context, actorID string, n int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[actorID] = n
	return nil
}

//MemOutcomes is an in memory OutcomeStore
type MemOutcomes struct {
	mu      sync.Mutex
	battles []BattleRecord
	pulls   []PullRecord
}

func NewMemOutcomes() *MemOutcomes {
	return &MemOutcomes{}
}

func (m *MemOutcomes) SaveBattle(ctx context.Context, r BattleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.Log = append([]string(nil), r.Log...)
	m.battles = append(m.battles, r)
	return nil
}

//Battles returns every battle actorID took part in, oldest first
func (m *MemOutcomes) Battles(ctx context.Context, actorID string) ([]BattleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []BattleRecord
	for _, r := range m.battles {
		if r.involves(actorID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemOutcomes) SavePull(ctx context.Context, r PullRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pulls = append(m.pulls, r)
	return nil
}

func (m *MemOutcomes) Pulls(ctx context.Context, actorID string) ([]PullRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []PullRecord
	for _, r := range m.pulls {
		if r.ActorID == actorID {
			out = append(out, r)
		}
	}
	return out, nil
}
