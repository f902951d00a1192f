package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/srliao/critterduel/internal/config"
	"github.com/srliao/critterduel/internal/store/sqlite"
	"github.com/srliao/critterduel/pkg/arena"
	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/gacha"
	"github.com/srliao/critterduel/pkg/rarity"
)

func main() {
	actor := flag.String("u", "", "actor id to draw for")
	n := flag.Int("n", 1, "number of draws")
	prf := flag.String("p", "", "profile to read reward rates from; defaults if empty")
	db := flag.String("db", "", "sqlite file; overrides CRITTER_DB_PATH")
	history := flag.Bool("history", false, "print the actor's stored draws instead of drawing")
	debug := flag.String("d", "warn", "output level: debug, info, warn, error")
	flag.Parse()

	if *actor == "" {
		log.Fatal("-u is required")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	storeCfg, err := config.LoadStore()
	if err != nil {
		log.Fatal(err)
	}
	if *db != "" {
		storeCfg.DBPath = *db
	}
	lc := combat.LogConfig{LogLevel: *debug}
	if err := config.ParseEnv(&lc); err != nil {
		log.Fatal(err)
	}
	logger, err := config.NewLogger(lc)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	gcfg, err := config.GachaOnly(*prf)
	if err != nil {
		log.Fatal(err)
	}
	g, err := gacha.New(gcfg, nil, logger)
	if err != nil {
		log.Fatal(err)
	}

	store, err := sqlite.Open(storeCfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	a, err := arena.New(combat.DefaultBattleConfig(), g, arena.WithPity(store), arena.WithOutcomes(store), arena.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	if *history {
		recs, err := a.Pulls(ctx, *actor)
		if err != nil {
			log.Fatal(err)
		}
		for _, r := range recs {
			fmt.Printf("%v\t%v\t%v\tcounter %v\n", r.DrawnAt.Format("2006-01-02 15:04:05"), r.Rarity, r.Prize, r.PullCount)
		}
		return
	}

	before, err := a.PullCount(ctx, *actor)
	if err != nil {
		log.Fatal(err)
	}
	out, err := a.PullN(ctx, *actor, *n)
	if err != nil {
		log.Fatal(err)
	}
	counts := make(map[rarity.Tier]int)
	for i, o := range out {
		counts[o.Rarity]++
		mark := ""
		if o.Procced {
			mark = " (pity)"
		}
		fmt.Printf("%4d: %v%v\n", i+1, o, mark)
	}
	fmt.Println("summary:")
	for _, t := range rarity.All() {
		if counts[t] > 0 {
			fmt.Printf("\t%v: %v\n", t, counts[t])
		}
	}
	last := out[len(out)-1]
	fmt.Printf("counter %v -> %v, premium chance now %.2f%%\n", before, last.PullCount, g.ProcChance(last.PullCount))
}
