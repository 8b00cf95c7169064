package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/cellweave/cellweave/cells"
	"github.com/cellweave/cellweave/typed"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	profileKey = "profile"
	itersKey   = "iters"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Benchmark cell propagation",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to default.pgo",
			},
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Write iterations per matrix entry",
				Value: 100,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool(profileKey) {
		f, err := os.Create("default.pgo")
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagate(int(cmd.Uint(itersKey)), true)
	benchmarkLayered(true)
	return nil
}

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100, 1_000}
)

// benchmarkPropagate writes a source at the root of w parallel chains of
// h derived cells each, with an effect watching every chain tail, and
// measures write+flush latency.
func benchmarkPropagate(iters int, shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Cell Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := cells.NewRuntime(&cells.RuntimeOptions{
				OnError: func(from any, err error) {
					log.Panic(err)
				},
			})
			src := typed.Signal(rt, 1)
			for i := 0; i < w; i++ {
				last := src.Cell().AsObservable()
				for j := 0; j < h; j++ {
					prev := last
					last = typed.Computed1(rt, prev, func(v int) int {
						return v + 1
					}).Cell().AsObservable()
				}
				tail := last
				typed.RunEffect(rt, func() error {
					_, err := tail.(cells.Cell).Read()
					return err
				})
			}
			rt.Flush()

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Value() + 1)
				rt.Flush()
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

type layeredTestConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int64   // width of dependency graph to construct
	totalLayers    int64   // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes with a stable dependency shape
	nSources       int64   // dependencies per node
	readFraction   float64 // fraction of leaves read each iteration
	iterations     int64
}

// benchmarkLayered builds a layered w×h graph with a mix of static and
// dynamic dependency shapes and measures sustained update throughput.
func benchmarkLayered(shouldRender bool) {
	cfgs := []layeredTestConfig{
		{
			name:           "simple component",
			width:          10,
			staticFraction: 1,
			nSources:       2,
			totalLayers:    5,
			readFraction:   0.2,
			iterations:     10000,
		},
		{
			name:           "dynamic component",
			width:          10,
			totalLayers:    10,
			staticFraction: 0.75,
			nSources:       6,
			readFraction:   0.2,
			iterations:     5000,
		},
		{
			name:           "wide dense",
			width:          1000,
			totalLayers:    5,
			staticFraction: 1,
			nSources:       25,
			readFraction:   1,
			iterations:     500,
		},
		{
			name:           "deep",
			width:          5,
			totalLayers:    500,
			staticFraction: 1,
			nSources:       3,
			readFraction:   1,
			iterations:     100,
		},
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "title",
	})

	testRepeats := 3
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)
		counter := new(int64)
		rt := cells.NewRuntime(nil)
		graph := makeLayeredGraph(rt, counter, &cfg)

		runOnce := func() int {
			return runLayeredGraph(rt, graph, &cfg)
		}
		runOnce()

		best := time.Hour
		for i := 0; i < testRepeats; i++ {
			*counter = 0
			start := time.Now()
			runOnce()
			if d := time.Since(start); d < best {
				best = d
			}
		}

		updateRate := float64(*counter) / (float64(best) / float64(time.Millisecond))
		tbl.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(100 * cfg.readFraction),
			fmt.Sprint(100 * cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best),
			humanize.Comma(int64(updateRate)),
			layeredTitle(&cfg),
		})
	}

	if shouldRender {
		tbl.Render()
	}
}

func layeredTitle(cfg *layeredTestConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type layeredGraph struct {
	sources []*typed.WriteableSignal[int]
	leaves  []*typed.ReadonlySignal[int]
}

func makeLayeredGraph(rt *cells.Runtime, counter *int64, cfg *layeredTestConfig) *layeredGraph {
	random := rand.New(rand.NewSource(0))

	sources := make([]*typed.WriteableSignal[int], cfg.width)
	prevRow := make([]cells.Observable, cfg.width)
	for i := range sources {
		sources[i] = typed.Signal(rt, i)
		prevRow[i] = sources[i].Cell()
	}

	var leaves []*typed.ReadonlySignal[int]
	for l := int64(1); l < cfg.totalLayers; l++ {
		row := make([]cells.Observable, len(prevRow))
		rowSignals := make([]*typed.ReadonlySignal[int], len(prevRow))
		for myDex := range prevRow {
			mySources := make([]cells.Observable, 0, cfg.nSources)
			for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
				mySources = append(mySources, prevRow[(myDex+sourceDex)%len(prevRow)])
			}

			staticNode := random.Float64() < cfg.staticFraction
			var node *typed.ReadonlySignal[int]
			if staticNode {
				node = typed.Computed(rt, func() (int, error) {
					*counter++
					sum := 0
					for _, src := range mySources {
						v, err := src.(cells.Cell).Read()
						if err != nil {
							return 0, err
						}
						sum += v.(int)
					}
					return sum, nil
				})
			} else {
				first := mySources[0]
				tail := mySources[1:]
				node = typed.Computed(rt, func() (int, error) {
					*counter++
					v, err := first.(cells.Cell).Read()
					if err != nil {
						return 0, err
					}
					sum := v.(int)
					shouldDrop := sum&0x1 > 0
					dropDex := sum % len(tail)
					for i := range tail {
						if shouldDrop && i == dropDex {
							continue
						}
						tv, err := tail[i].(cells.Cell).Read()
						if err != nil {
							return 0, err
						}
						sum += tv.(int)
					}
					return sum, nil
				})
			}
			row[myDex] = node.Cell()
			rowSignals[myDex] = node
		}
		prevRow = row
		if l == cfg.totalLayers-1 {
			leaves = rowSignals
		}
	}

	return &layeredGraph{sources: sources, leaves: leaves}
}

func runLayeredGraph(rt *cells.Runtime, graph *layeredGraph, cfg *layeredTestConfig) int {
	random := rand.New(rand.NewSource(0))
	skipCount := int(math.Round(float64(len(graph.leaves)) * (1 - cfg.readFraction)))
	readLeaves := removeElems(graph.leaves, skipCount, random)

	for i := 0; i < int(cfg.iterations); i++ {
		sourceDex := i % len(graph.sources)
		graph.sources[sourceDex].SetValue(i + sourceDex)

		for _, leaf := range readLeaves {
			leaf.MustValue()
		}
	}
	rt.Flush()

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.MustValue()
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount && len(out) > 0; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
