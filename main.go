package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/srliao/critterduel/internal/config"
	"github.com/srliao/critterduel/internal/roster"
	"github.com/srliao/critterduel/internal/rotation"
	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/rng"

	//effect templates
	_ "github.com/srliao/critterduel/internal/status"
)

func main() {
	debugPtr := flag.String("d", "", "output level: debug, info, warn, error; overrides the profile")
	pPtr := flag.String("p", "config.yaml", "which profile to use")
	f := flag.String("o", "", "detailed log file")
	showCaller := flag.Bool("c", false, "show caller in debug log")
	catalogPtr := flag.String("catalog", "", "power catalog yaml; built in catalog if empty")
	rotPtr := flag.String("r", "", "rotation script; overrides the profile rotation")
	seedPtr := flag.Uint64("seed", 0, "seed for a reproducible duel; 0 uses crypto randomness")
	flag.Parse()

	cfg, err := config.Load(*pPtr)
	if err != nil {
		log.Fatal(err)
	}
	if *debugPtr != "" {
		cfg.LogConfig.LogLevel = *debugPtr
	}
	if *f != "" {
		cfg.LogConfig.LogFile = *f
		os.Remove(*f)
	}
	cfg.LogConfig.LogShowCaller = cfg.LogConfig.LogShowCaller || *showCaller

	logger, err := config.NewLogger(cfg.LogConfig)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	catalog := roster.DefaultCatalog()
	if *catalogPtr != "" {
		catalog, err = roster.LoadCatalog(*catalogPtr)
		if err != nil {
			log.Fatal(err)
		}
	}
	if len(cfg.Combatants) != 2 {
		log.Fatalf("profile %v needs exactly 2 combatants, got %v", *pPtr, len(cfg.Combatants))
	}
	var sides [2]combat.CombatantProfile
	for i, sel := range cfg.Combatants {
		sides[i], err = catalog.Normalize(sel)
		if err != nil {
			log.Fatal(err)
		}
	}

	next := func(s *combat.Session, id string) combat.Action {
		return combat.FindNextAction(s, id, cfg.Rotation)
	}
	if *rotPtr != "" {
		rot, err := rotation.Load(*rotPtr)
		if err != nil {
			log.Fatal(err)
		}
		next = rot.Next
	}

	var src rng.Source
	if *seedPtr != 0 {
		src = rng.NewSeeded(*seedPtr)
	}
	s, err := combat.New(cfg.Battle, sides[0], sides[1], src, logger)
	if err != nil {
		log.Fatal(err)
	}
	s.ID = cfg.Label

	start := time.Now()
	for s.Status == combat.Active {
		id := s.CurrentPlayer()
		if _, err := s.Act(id, next(s, id)); err != nil {
			log.Fatal(err)
		}
	}
	elapsed := time.Since(start)

	for _, l := range s.History {
		fmt.Println(l)
	}
	o := s.Outcome
	for _, hp := range o.FinalHP {
		fmt.Printf("\t%v: %v/%v HP\n", hp.Name, hp.HP, hp.MaxHP)
	}
	if o.Draw {
		fmt.Printf("Running profile %v: draw (%v) after %v turns. Sim took %s\n", *pPtr, o.Reason, o.Turns, elapsed)
		return
	}
	w, _ := s.Combatant(o.Winner)
	fmt.Printf("Running profile %v: %v wins (%v) after %v turns. Sim took %s\n", *pPtr, w.Name, o.Reason, o.Turns, elapsed)
}
