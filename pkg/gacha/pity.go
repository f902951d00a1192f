package gacha

import (
	"fmt"

	"github.com/srliao/critterduel/pkg/rarity"
	"github.com/srliao/critterduel/pkg/rng"
	"go.uber.org/zap"
)

//PityState is one actor's reward odds memory. The engine never stores it; it
//reads PullCount and hands back the next value.
type PityState struct {
	PullCount     int
	HardPityLimit int
}

//Outcome reports one draw
type Outcome struct {
	Rarity     rarity.Tier
	Prize      string  //set only for the rarest tier
	PullCount  int     //counter to store for the next draw
	PityReset  bool    //true if this draw reset the counter
	Procced    bool    //true if the premium table was used
	ProcChance float64 //percent, for the counter this draw was made with
}

//Engine is a pure function of (pull count, randomness). It is safe for
//concurrent use as long as the RandomSource is; serializing draws per actor is
//the caller's job.
type Engine struct {
	Log   *zap.SugaredLogger
	cfg   Config
	rng   rng.Source
	reset map[rarity.Tier]bool
}

func New(cfg Config, src rng.Source, log *zap.SugaredLogger) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = rng.Default()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	e := &Engine{
		Log:   log,
		cfg:   cfg,
		rng:   src,
		reset: make(map[rarity.Tier]bool),
	}
	for _, t := range cfg.ResetTiers {
		e.reset[t] = true
	}
	return e, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) HardPity() int {
	return e.cfg.HardPity
}

func (e *Engine) clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > e.cfg.HardPity {
		return e.cfg.HardPity
	}
	return n
}

//ProcChance is the percent chance the premium table is used, rising linearly
//from 0 at no pulls to exactly 100 at the hard pity limit
func (e *Engine) ProcChance(pullCount int) float64 {
	n := e.clamp(pullCount)
	if n == e.cfg.HardPity {
		return 100
	}
	p := float64(n) / float64(e.cfg.HardPity) * 100
	if p > 100 {
		p = 100
	}
	return p
}

//State wraps a raw counter for callers that want the full struct
func (e *Engine) State(pullCount int) PityState {
	return PityState{PullCount: e.clamp(pullCount), HardPityLimit: e.cfg.HardPity}
}

//Pull draws one reward for the given counter
func (e *Engine) Pull(pullCount int) Outcome {
	n := e.clamp(pullCount)
	o := Outcome{ProcChance: e.ProcChance(n)}

	roll := e.rng.Float64() * 100
	table := e.cfg.BaseRates
	if roll < o.ProcChance {
		o.Procced = true
		table = e.cfg.PremiumRates
	}
	idx := pick(rateWeights(table), e.rng.Float64())
	o.Rarity = table[idx].Tier

	if o.Rarity == rarity.Rarest() && len(e.cfg.Prizes) > 0 {
		o.Prize = e.cfg.Prizes[pick(prizeWeights(e.cfg.Prizes), e.rng.Float64())].Name
	}

	if e.reset[o.Rarity] {
		o.PullCount = 0
		o.PityReset = true
	} else {
		o.PullCount = e.clamp(n + 1)
	}

	e.Log.Debugw("pull", "count", n, "proc chance", o.ProcChance, "roll", roll, "procced", o.Procced, "rarity", o.Rarity, "prize", o.Prize, "next", o.PullCount)
	return o
}

//PullN performs n consecutive draws, threading the counter through, and
//returns every outcome plus the final counter
func (e *Engine) PullN(pullCount, n int) ([]Outcome, int) {
	out := make([]Outcome, 0, n)
	c := e.clamp(pullCount)
	for i := 0; i < n; i++ {
		o := e.Pull(c)
		c = o.PullCount
		out = append(out, o)
	}
	return out, c
}

func (o Outcome) String() string {
	if o.Prize != "" {
		return fmt.Sprintf("%v (%v)", o.Rarity, o.Prize)
	}
	return o.Rarity.String()
}
