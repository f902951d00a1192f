package rng

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

//Source yields uniform values in [0, 1)
type Source interface {
	Float64() float64
}

type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	//53 bits -> [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

//Default is crypto backed and safe for concurrent use
func Default() Source { return cryptoRNG{} }

type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

//NewSeeded returns a reproducible source, e.g. for monte carlo runs
func NewSeeded(seed uint64) Source {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

//Sequence replays fixed values in order and then repeats the last one. Handy for
//forcing crit/dodge/draw outcomes.
type Sequence struct {
	vals []float64
	i    int
	loop bool
}

func Fixed(vals ...float64) *Sequence {
	if len(vals) == 0 {
		vals = []float64{0}
	}
	return &Sequence{vals: vals}
}

//Cycle replays fixed values in order, wrapping around at the end
func Cycle(vals ...float64) *Sequence {
	s := Fixed(vals...)
	s.loop = true
	return s
}

func (s *Sequence) Float64() float64 {
	v := s.vals[s.i]
	switch {
	case s.i < len(s.vals)-1:
		s.i++
	case s.loop:
		s.i = 0
	}
	return v
}
