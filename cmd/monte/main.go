package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/srliao/critterduel/internal/config"
	"github.com/srliao/critterduel/internal/roster"
	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/monte"

	//effect templates
	_ "github.com/srliao/critterduel/internal/status"
)

func main() {
	t := flag.Int64("t", 100000, "how many iterations default 100k")
	prf := flag.String("p", "config.yaml", "which profile to use; default config.yaml")
	mode := flag.String("m", "pulls", "what to sim: pulls or duels")
	worker := flag.Int64("w", 24, "number of works, default 24")
	bin := flag.Int64("b", 10, "bin size, default 10")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "base seed")
	out := flag.String("o", "out.html", "output file; default out.html")
	flag.Parse()

	cfg, err := config.Load(*prf)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := config.NewLogger(cfg.LogConfig)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	sim := monte.New(*seed, logger)
	var progress float64
	fmt.Print("\tProgress: 0")
	sim.Progress = func(done float64) {
		//only printed from the pull sim, which reports from one goroutine
		if done > progress+0.01 || done == 1 {
			progress = done
			fmt.Printf(".%.0f", 100*done)
		}
	}

	start := time.Now()
	switch *mode {
	case "pulls":
		r, err := sim.PullDist(cfg.Gacha, *t, *bin, *worker)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print("...100%\n")
		fmt.Printf("Profile %v done in %s\n", *prf, time.Since(start))
		if err := render(r, *prf, *t, *bin, *out); err != nil {
			log.Fatal(err)
		}
	case "duels":
		sim.Progress = nil
		if len(cfg.Combatants) != 2 {
			log.Fatalf("profile %v needs exactly 2 combatants", *prf)
		}
		catalog := roster.DefaultCatalog()
		a, err := catalog.Normalize(cfg.Combatants[0])
		if err != nil {
			log.Fatal(err)
		}
		b, err := catalog.Normalize(cfg.Combatants[1])
		if err != nil {
			log.Fatal(err)
		}
		r, err := sim.Duels(context.Background(), cfg.Battle, a, b, cfg.Rotation, *t, *worker)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nProfile %v done in %s\n", *prf, time.Since(start))
		fmt.Printf("%v wins %.2f%%, %v wins %.2f%%, draws %.2f%%, mean turns %.2f\n",
			a.Name, 100*float64(r.WinsA)/float64(r.N),
			b.Name, 100*float64(r.WinsB)/float64(r.N),
			100*float64(r.Draws)/float64(r.N), r.MeanTurns)
		for _, k := range []combat.Reason{combat.ReasonKnockout, combat.ReasonDraw, combat.ReasonTimeLimit} {
			fmt.Printf("\t%v: %v\n", k, r.Reasons[k])
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func render(r monte.SimResult, prf string, n, binSize int64, out string) error {
	page := components.NewPage()
	page.PageTitle = "simulation results"

	var bins []int64
	var items []opts.LineData
	var cumul, med float64
	med = -1

	for i, v := range r.Hist {
		bins = append(bins, r.BinStart+binSize*int64(i))
		items = append(items, opts.LineData{Value: v})
		cumul += v / float64(n)
		if cumul >= 0.5 && med == -1 {
			med = float64(i)
		}
	}

	med = float64(r.BinStart) + med*float64(binSize)
	label := fmt.Sprintf("min: %v, max %v, mean: %.2f, med: %.2f, sd: %.2f", r.Min, r.Max, r.Mean, med, r.SD)

	lineChart := charts.NewLine()
	lineChart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("pulls until premium, %v (n = %v)", prf, n),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Freq",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Pulls",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "5%", Right: "0%", Orient: "vertical", Data: []string{label}}),
	)
	lineChart.AddSeries(label, items)
	lineChart.SetXAxis(bins)

	page.AddCharts(
		lineChart,
	)

	graph, err := os.Create(out)
	if err != nil {
		return err
	}
	defer graph.Close()
	return page.Render(io.MultiWriter(graph))
}
