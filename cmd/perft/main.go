package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/dustin/go-humanize"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Oliverans/GoosePackedMG/internal/crosscheck"
	"github.com/Oliverans/GoosePackedMG/internal/perftcache"
	"github.com/Oliverans/GoosePackedMG/internal/perftdb"
	"github.com/Oliverans/GoosePackedMG/internal/perftrun"
	"github.com/Oliverans/GoosePackedMG/notation"
)

func main() {
	fen := flag.String("fen", notation.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	workers := flag.Int("workers", 0, "Worker goroutines splitting the root moves (0 = one per CPU)")
	cacheSize := flag.Int64("cache", 0, "Subtree cache capacity in entries (0 = no cache)")
	dbDir := flag.String("db", "", "Directory of the perft result store; results are checked against and saved to it")
	verify := flag.Bool("verify", false, "Cross-check the root divide against dragontoothmg")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := checkFlags(*depth, *repeat); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	state, err := notation.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}
	canonical := notation.FormatFEN(state)
	logger := log.WithFields(log.Fields{"fen": canonical, "depth": *depth})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &perftrun.Runner{Workers: *workers}
	if *cacheSize > 0 {
		cache, err := perftcache.New(*cacheSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cache: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			hits, misses := cache.Stats()
			logger.WithFields(log.Fields{"hits": hits, "misses": misses}).Debug("cache")
			cache.Close()
		}()
		runner.Cache = cache
	}

	var store *perftdb.Store
	if *dbDir != "" {
		store, err = perftdb.Open(*dbDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening result store: %v\n", err)
			os.Exit(2)
		}
		defer store.Close()
	}

	if *verify {
		report := crosscheck.Check(state, *depth)
		if !report.OK() {
			logger.WithField("report", report.String()).Error("divide disagrees with dragontoothmg")
			os.Exit(1)
		}
		logger.WithField("nodes", humanize.Comma(int64(report.Nodes))).Info("divide agrees with dragontoothmg")
	}

	// Optional divide output
	if *divide {
		div, err := runner.Divide(ctx, state.Pos, *depth)
		if err != nil {
			logger.WithError(err).Error("perft interrupted")
			os.Exit(1)
		}
		byText := make(map[string]uint64, len(div))
		var sum uint64
		for m, n := range div {
			byText[notation.FormatUCI(state.Pos, m)] = n
			sum += n
		}
		// Sort moves for stable output
		keys := maps.Keys(byText)
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, byText[k])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var nodes, totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		nodes, err = runner.Count(ctx, state.Pos, *depth)
		if err != nil {
			logger.WithError(err).Error("perft interrupted")
			os.Exit(1)
		}
		totalNodes += nodes
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
	logger.WithFields(log.Fields{
		"nodes": humanize.Comma(int64(nodes)),
		"nps":   humanize.Comma(int64(nps)),
	}).Debug("perft done")

	if store != nil {
		if err := checkAndSave(store, canonical, *depth, nodes, elapsed/time.Duration(*repeat), *label); err != nil {
			logger.WithError(err).Error("result store")
			os.Exit(1)
		}
	}

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// checkAndSave compares nodes with a stored result for the same position and
// depth, then records the new run.
func checkAndSave(store *perftdb.Store, fen string, depth int, nodes uint64, elapsed time.Duration, label string) error {
	prev, err := store.Get(fen, depth)
	switch {
	case errors.Is(err, perftdb.ErrNotFound):
	case err != nil:
		return err
	case prev.Nodes != nodes:
		return fmt.Errorf("got %d nodes, store has %d from %s", nodes, prev.Nodes, humanize.Time(prev.RecordedAt))
	default:
		log.WithField("recorded", humanize.Time(prev.RecordedAt)).Debug("matches stored result")
	}
	return store.Put(perftdb.Record{FEN: fen, Depth: depth, Nodes: nodes, Elapsed: elapsed, Label: label})
}

// checkFlags rejects counts the run loop cannot use.
func checkFlags(depth, repeat int) error {
	if depth <= 0 {
		return errors.New("-depth must be > 0")
	}
	if repeat < 1 {
		return errors.New("-repeat must be >= 1")
	}
	return nil
}
