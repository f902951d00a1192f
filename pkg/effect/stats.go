package effect

import (
	"fmt"
	"strings"
)

type StatType int

//stat types
const (
	ATK StatType = iota
	DEF
	SPD
	CRIT
	EndStatType
)

func (s StatType) String() string {
	return StatTypeString[s]
}

var StatTypeString = [...]string{
	"atk",
	"def",
	"spd",
	"crit",
}

func StrToStatType(s string) StatType {
	for i, v := range StatTypeString {
		if v == s {
			return StatType(i)
		}
	}
	return -1
}

//StatBlock holds one value per StatType
type StatBlock [EndStatType]float64

func (b StatBlock) String() string {
	var sb strings.Builder
	for i, v := range b {
		if v != 0 {
			sb.WriteString(fmt.Sprintf("%v: %.3f ", StatTypeString[i], v))
		}
	}
	return strings.TrimSpace(sb.String())
}

//UnmarshalYAML reads a block written as a map, e.g. {atk: 0.2, def: -5}
func (b *StatBlock) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var m map[string]float64
	if err := unmarshal(&m); err != nil {
		return err
	}
	for k, v := range m {
		t := StrToStatType(strings.ToLower(k))
		if t < 0 {
			return fmt.Errorf("unknown stat %q", k)
		}
		b[t] = v
	}
	return nil
}

func (b StatBlock) MarshalYAML() (interface{}, error) {
	m := make(map[string]float64)
	for i, v := range b {
		if v != 0 {
			m[StatTypeString[i]] = v
		}
	}
	return m, nil
}

//EffectiveStats computes usable stats from base and the active effect list.
//All flat modifiers are added first, then percent modifiers are multiplied in
//list order, so successive percent buffs compound.
func EffectiveStats(base StatBlock, l *List) StatBlock {
	r := base
	for _, e := range l.All() {
		for i := range r {
			r[i] += e.Flat[i] * float64(e.Stacks)
		}
	}
	for _, e := range l.All() {
		for i := range r {
			r[i] *= 1 + e.Percent[i]*float64(e.Stacks)
		}
	}
	return r
}
