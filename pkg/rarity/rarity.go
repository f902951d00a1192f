package rarity

import (
	"fmt"
	"strings"
)

type Tier int

//tiers, most common first
const (
	Common Tier = iota
	Uncommon
	Rare
	Epic
	Legendary
	Mythic
	endTier
)

var tierString = [...]string{
	"common",
	"uncommon",
	"rare",
	"epic",
	"legendary",
	"mythic",
}

//All lists every tier from most to least common
func All() []Tier {
	t := make([]Tier, 0, int(endTier))
	for i := Common; i < endTier; i++ {
		t = append(t, i)
	}
	return t
}

//Rarest is the single least common tier
func Rarest() Tier {
	return endTier - 1
}

func (t Tier) Valid() bool {
	return t >= Common && t < endTier
}

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierString[t]
}

//Parse converts a tier name (case insensitive) into a Tier
func Parse(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, v := range tierString {
		if v == s {
			return Tier(i), nil
		}
	}
	return Common, fmt.Errorf("unknown rarity %q", s)
}

func (t Tier) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *Tier) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
