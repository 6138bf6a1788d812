// Command mldsa-bench runs the signing loop a fixed number of times per
// security level, tallies rejection-loop attempt counts via
// internal/stats, and renders the per-level average as an interactive
// HTML bar chart, in the style of the reference layer's
// Additionnals/plot_pacs_sweep.go charting tool.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"mldsa"
	"mldsa/entropy"
	"mldsa/internal/stats"
	"mldsa/params"
)

func runSigningSamples(name params.Name, n int) (attemptsTotal int64, err error) {
	lv, err := mldsa.New(name)
	if err != nil {
		return 0, err
	}
	msg := []byte("mldsa-bench sample message")

	counters := stats.New()
	for i := 0; i < n; i++ {
		_, sk, err := lv.Keygen(entropy.System())
		if err != nil {
			return 0, fmt.Errorf("keygen: %w", err)
		}
		before := stats.Global.Snapshot()["mldsa/sign/attempts"]
		if _, err := lv.Sign(sk, msg, nil, mldsa.Randomized, entropy.System()); err != nil {
			return 0, fmt.Errorf("sign: %w", err)
		}
		after := stats.Global.Snapshot()["mldsa/sign/attempts"]
		counters.Add(string(name), after-before)
	}
	return counters.Snapshot()[string(name)], nil
}

func main() {
	samples := flag.Int("samples", 20, "signatures to generate per security level")
	out := flag.String("out", "mldsa_bench.html", "output HTML chart path")
	flag.Parse()

	levels := []params.Name{params.ML_DSA_44, params.ML_DSA_65, params.ML_DSA_87}
	avgAttempts := make([]opts.BarData, 0, len(levels))
	xAxis := make([]string, 0, len(levels))

	for _, name := range levels {
		total, err := runSigningSamples(name, *samples)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		avg := float64(total) / float64(*samples)
		fmt.Printf("%s: average %.3f signing attempts over %d samples\n", name, avg, *samples)
		xAxis = append(xAxis, string(name))
		avgAttempts = append(avgAttempts, opts.BarData{Value: avg})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "ML-DSA signing loop: average rejection attempts",
			Subtitle: fmt.Sprintf("%d samples per level", *samples),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "security level"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "average attempts"}),
	)
	bar.SetXAxis(xAxis).AddSeries("average attempts", avgAttempts)

	page := components.NewPage().SetPageTitle("ML-DSA signing benchmark")
	page.AddCharts(bar)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Println(*out)
}
