package gacha

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/srliao/critterduel/pkg/rarity"
)

var (
	ErrInvalidRates = errors.New("invalid rate table")
	ErrInvalidPity  = errors.New("invalid pity limit")
)

//Rate is one tier's share of a table, in percent
type Rate struct {
	Tier    rarity.Tier `yaml:"Tier"`
	Percent float64     `yaml:"Percent"`
}

//Prize is a named reward inside the rarest tier; weights are relative
type Prize struct {
	Name   string  `yaml:"Name"`
	Weight float64 `yaml:"Weight"`
}

type Config struct {
	BaseRates    []Rate        `yaml:"BaseRates"`
	PremiumRates []Rate        `yaml:"PremiumRates"`
	HardPity     int           `yaml:"HardPity"`
	ResetTiers   []rarity.Tier `yaml:"ResetTiers"`
	Prizes       []Prize       `yaml:"Prizes"`
}

const (
	rateEpsilon     = 1e-9
	minPremiumTiers = 2
	maxPremiumTiers = 3
)

func DefaultConfig() Config {
	return Config{
		BaseRates: []Rate{
			{rarity.Common, 60},
			{rarity.Uncommon, 25},
			{rarity.Rare, 10},
			{rarity.Epic, 4},
			{rarity.Legendary, 0.9},
			{rarity.Mythic, 0.1},
		},
		PremiumRates: []Rate{
			{rarity.Epic, 80},
			{rarity.Legendary, 18},
			{rarity.Mythic, 2},
		},
		HardPity:   1500,
		ResetTiers: []rarity.Tier{rarity.Epic, rarity.Legendary, rarity.Mythic},
		Prizes: []Prize{
			{"Aurora Drake", 5},
			{"Void Leviathan", 3},
			{"Celestial Kirin", 1.5},
			{"Primordial Phoenix", 0.5},
		},
	}
}

//withDefaults fills in whatever the caller left empty
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if len(c.BaseRates) == 0 {
		c.BaseRates = d.BaseRates
	}
	if len(c.PremiumRates) == 0 {
		c.PremiumRates = d.PremiumRates
	}
	if c.HardPity == 0 {
		c.HardPity = d.HardPity
	}
	if len(c.ResetTiers) == 0 {
		for _, r := range c.PremiumRates {
			c.ResetTiers = append(c.ResetTiers, r.Tier)
		}
	}
	if len(c.Prizes) == 0 {
		c.Prizes = d.Prizes
	}
	return c
}

func (c Config) Validate() error {
	var errs []string

	if c.HardPity <= 0 {
		return fmt.Errorf("%w: hard pity must be >= 1, got %d", ErrInvalidPity, c.HardPity)
	}

	seen := make(map[rarity.Tier]bool)
	var sum float64
	for i, r := range c.BaseRates {
		if !r.Tier.Valid() {
			errs = append(errs, fmt.Sprintf("base rate %d has unknown tier", i))
		}
		if seen[r.Tier] {
			errs = append(errs, fmt.Sprintf("base rate for %v listed twice", r.Tier))
		}
		seen[r.Tier] = true
		if r.Percent < 0 {
			errs = append(errs, fmt.Sprintf("base rate for %v is negative", r.Tier))
		}
		sum += r.Percent
	}
	for _, t := range rarity.All() {
		if !seen[t] {
			errs = append(errs, fmt.Sprintf("base rates missing tier %v", t))
		}
	}
	if math.Abs(sum-100) > rateEpsilon {
		errs = append(errs, fmt.Sprintf("base rates sum to %v, want 100", sum))
	}

	premium := make(map[rarity.Tier]bool)
	sum = 0
	for i, r := range c.PremiumRates {
		if !r.Tier.Valid() {
			errs = append(errs, fmt.Sprintf("premium rate %d has unknown tier", i))
		}
		if premium[r.Tier] {
			errs = append(errs, fmt.Sprintf("premium rate for %v listed twice", r.Tier))
		}
		premium[r.Tier] = true
		if r.Percent < 0 {
			errs = append(errs, fmt.Sprintf("premium rate for %v is negative", r.Tier))
		}
		sum += r.Percent
	}
	if len(c.PremiumRates) == 0 {
		errs = append(errs, "premium rates are empty")
	} else if math.Abs(sum-100) > rateEpsilon {
		errs = append(errs, fmt.Sprintf("premium rates sum to %v, want 100", sum))
	}
	//premium tiers are the rarest 2 or 3, with no gap
	all := rarity.All()
	if n := len(premium); n < minPremiumTiers || n > maxPremiumTiers {
		errs = append(errs, fmt.Sprintf("premium rates cover %d tiers, want %d to %d", n, minPremiumTiers, maxPremiumTiers))
	} else {
		for _, t := range all[len(all)-n:] {
			if !premium[t] {
				errs = append(errs, fmt.Sprintf("premium rates skip %v; they must be the rarest %d tiers", t, n))
			}
		}
	}

	//a premium hit must always reset the counter
	reset := make(map[rarity.Tier]bool)
	for _, t := range c.ResetTiers {
		reset[t] = true
	}
	for t := range premium {
		if !reset[t] {
			errs = append(errs, fmt.Sprintf("premium tier %v must be a reset tier", t))
		}
	}

	for i, p := range c.Prizes {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Sprintf("prize %d has no name", i))
		}
		if p.Weight <= 0 {
			errs = append(errs, fmt.Sprintf("prize %q weight must be > 0", p.Name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRates, strings.Join(errs, "; "))
	}
	return nil
}
