package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/gacha"
	"gopkg.in/yaml.v2"
)

//Load reads a profile file on top of the defaults and applies environment
//overrides
func Load(path string) (combat.Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return combat.Profile{}, err
	}
	return Parse(b)
}

func Parse(b []byte) (combat.Profile, error) {
	p := combat.DefaultProfile()
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse profile: %w", err)
	}
	if err := ParseEnv(&p.LogConfig); err != nil {
		return p, err
	}
	if err := p.Battle.Validate(); err != nil {
		return p, err
	}
	if err := p.Gacha.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

//ParseEnv loads configuration from environment variables
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

//Store holds settings for the persistent reward store
type Store struct {
	DBPath string `env:"CRITTER_DB_PATH" envDefault:"critterduel.db"`
}

func LoadStore() (Store, error) {
	var s Store
	err := ParseEnv(&s)
	return s, err
}

//GachaOnly reads a profile file when only its reward section matters
func GachaOnly(path string) (gacha.Config, error) {
	if path == "" {
		return gacha.DefaultConfig(), nil
	}
	p, err := Load(path)
	if err != nil {
		return gacha.Config{}, err
	}
	return p.Gacha, nil
}
