package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededReproducible(t *testing.T) {
	a := NewSeeded(7)
	b := NewSeeded(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDefaultRange(t *testing.T) {
	s := Default()
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestFixed(t *testing.T) {
	s := Fixed(0.1, 0.5)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.5, s.Float64())
	assert.Equal(t, 0.5, s.Float64())
	assert.Equal(t, 0.0, Fixed().Float64())
}

func TestCycle(t *testing.T) {
	s := Cycle(0.1, 0.2)
	got := []float64{s.Float64(), s.Float64(), s.Float64(), s.Float64()}
	assert.Equal(t, []float64{0.1, 0.2, 0.1, 0.2}, got)
}
