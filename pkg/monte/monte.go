package monte

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/gacha"
	"github.com/srliao/critterduel/pkg/rng"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//Simulator runs repeated independent draws or duels. Worker i draws from a
//source seeded with Seed+i.
type Simulator struct {
	Log  *zap.SugaredLogger
	Seed uint64
	//Progress, when set, is called with the completed fraction as work finishes.
	//Duels calls it from several goroutines.
	Progress func(done float64)
}

func New(seed uint64, log *zap.SugaredLogger) *Simulator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Simulator{Log: log, Seed: seed}
}

type SimResult struct {
	Hist     []float64
	BinStart int64
	Min      float64
	Max      float64
	Mean     float64
	SD       float64
}

//PullDist samples n times how many pulls it takes, starting from a fresh
//counter, to land a pity reset. The histogram uses bins of width b.
func (s *Simulator) PullDist(cfg gacha.Config, n, b, w int64) (SimResult, error) {
	if n <= 0 || b <= 0 || w <= 0 {
		return SimResult{}, fmt.Errorf("n, b and w must be > 0")
	}
	//fail early on a bad config instead of inside every worker
	if _, err := gacha.New(cfg, rng.Fixed(0), nil); err != nil {
		return SimResult{}, err
	}
	s.Log.Debugw("starting pull sim", "n", n, "b", b, "w", w)

	resp := make(chan float64, n)
	req := make(chan bool)
	done := make(chan bool)
	for i := 0; i < int(w); i++ {
		g, _ := gacha.New(cfg, rng.NewSeeded(s.Seed+uint64(i)), nil)
		go pullWorker(g, resp, req, done)
	}

	//use a go routine to send out a job whenever a worker is done
	go func() {
		var wip int64
		for wip < n {
			select {
			case req <- true:
				wip++
			case <-done:
				return
			}
		}
	}()

	data := make([]float64, 0, n)
	for count := n; count > 0; count-- {
		data = append(data, <-resp)
		s.progress(n-count+1, n)
	}
	close(done)

	return summarize(data, b), nil
}

func pullWorker(g *gacha.Engine, resp chan float64, req chan bool, done chan bool) {
	for {
		select {
		case <-req:
			resp <- float64(pullsUntilReset(g))
		case <-done:
			return
		}
	}
}

//pullsUntilReset is bounded by the hard pity limit: a full counter always
//procs, and every premium tier resets
func pullsUntilReset(g *gacha.Engine) int {
	c := 0
	for i := 1; ; i++ {
		o := g.Pull(c)
		if o.PityReset {
			return i
		}
		c = o.PullCount
	}
}

func (s *Simulator) progress(done, n int64) {
	if s.Progress == nil {
		return
	}
	//report at whole percents only
	if done == n || done*100/n != (done-1)*100/n {
		s.Progress(float64(done) / float64(n))
	}
}

func summarize(data []float64, b int64) SimResult {
	r := SimResult{Min: math.MaxFloat64, Max: -1}
	if len(data) == 0 {
		r.Min = 0
		r.Max = 0
		return r
	}
	var sum, ss float64
	for _, v := range data {
		sum += v
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	n := float64(len(data))
	r.Mean = sum / n
	r.BinStart = int64(r.Min/float64(b)) * b
	binMax := (int64(r.Max/float64(b)) + 1) * b
	numBin := ((binMax - r.BinStart) / b) + 1

	r.Hist = make([]float64, numBin)
	for _, v := range data {
		ss += (v - r.Mean) * (v - r.Mean)
		steps := int64((v - float64(r.BinStart)) / float64(b))
		r.Hist[steps]++
	}
	r.SD = math.Sqrt(ss / n)
	return r
}

//DuelResult tallies auto-played duels
type DuelResult struct {
	N         int64
	WinsA     int64
	WinsB     int64
	Draws     int64
	MeanTurns float64
	Reasons   map[combat.Reason]int64
}

func (d DuelResult) WinRateA() float64 {
	if d.N == 0 {
		return 0
	}
	return float64(d.WinsA) / float64(d.N)
}

//Duels auto-plays n sessions between a and b with w workers. Both sides pick
//actions from the same rotation.
func (s *Simulator) Duels(ctx context.Context, cfg combat.BattleConfig, a, b combat.CombatantProfile, rotation []combat.ActionItem, n, w int64) (DuelResult, error) {
	if n <= 0 || w <= 0 {
		return DuelResult{}, fmt.Errorf("n and w must be > 0")
	}
	if err := cfg.Validate(); err != nil {
		return DuelResult{}, err
	}
	s.Log.Debugw("starting duel sim", "n", n, "w", w, "a", a.ID, "b", b.ID)

	var next, completed, winsA, winsB, draws, turns atomic.Int64
	reasons := make([]map[combat.Reason]int64, w)

	g, gctx := errgroup.WithContext(ctx)
	for i := int64(0); i < w; i++ {
		reasons[i] = make(map[combat.Reason]int64)
		src := rng.NewSeeded(s.Seed + uint64(i))
		g.Go(func() error {
			for next.Add(1) <= n {
				if err := gctx.Err(); err != nil {
					return err
				}
				o, err := duel(cfg, a, b, rotation, src)
				if err != nil {
					return err
				}
				switch o.Winner {
				case "":
					draws.Add(1)
				case a.ID:
					winsA.Add(1)
				default:
					winsB.Add(1)
				}
				turns.Add(int64(o.Turns))
				reasons[i][o.Reason]++
				s.progress(completed.Add(1), n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DuelResult{}, err
	}

	r := DuelResult{
		N:         n,
		WinsA:     winsA.Load(),
		WinsB:     winsB.Load(),
		Draws:     draws.Load(),
		MeanTurns: float64(turns.Load()) / float64(n),
		Reasons:   make(map[combat.Reason]int64),
	}
	for _, m := range reasons {
		for k, v := range m {
			r.Reasons[k] += v
		}
	}
	return r, nil
}

func duel(cfg combat.BattleConfig, a, b combat.CombatantProfile, rotation []combat.ActionItem, src rng.Source) (combat.Outcome, error) {
	s, err := combat.New(cfg, a, b, src, nil)
	if err != nil {
		return combat.Outcome{}, err
	}
	for s.Status == combat.Active {
		id := s.CurrentPlayer()
		if _, err := s.Act(id, combat.FindNextAction(s, id, rotation)); err != nil {
			return combat.Outcome{}, fmt.Errorf("duel turn %v: %w", s.Turn, err)
		}
	}
	return *s.Outcome, nil
}
