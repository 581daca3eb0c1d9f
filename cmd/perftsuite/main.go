package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/dustin/go-humanize"

	"github.com/Oliverans/GoosePackedMG/internal/epd"
	"github.com/Oliverans/GoosePackedMG/internal/perftdb"
	"github.com/Oliverans/GoosePackedMG/internal/perftrun"
)

func main() {
	suite := flag.String("suite", "", "Perft suite file (.epd, or .epd.zst)")
	maxDepth := flag.Int("maxdepth", 4, "Skip expected counts deeper than this")
	workers := flag.Int("workers", 0, "Worker goroutines splitting the root moves (0 = one per CPU)")
	dbDir := flag.String("db", "", "Directory of the perft result store; passing results are saved to it")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *suite == "" {
		fmt.Fprintln(os.Stderr, "Usage: perftsuite -suite <file.epd> [-maxdepth N] [-workers N] [-db dir]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	entries, err := epd.Open(*suite)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading suite: %v\n", err)
		os.Exit(2)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code := run(ctx, entries, *maxDepth, &perftrun.Runner{Workers: *workers}, store)
	if code != 0 {
		stop()
		if store != nil {
			store.Close()
		}
		os.Exit(code)
	}
}

// run checks every expected count up to maxDepth and returns the exit code.
func run(ctx context.Context, entries []epd.Entry, maxDepth int, runner *perftrun.Runner, store *perftdb.Store) int {
	var passed, failed, total uint64
	start := time.Now()
	for _, e := range entries {
		fen := e.FEN()
		for _, x := range e.Expects {
			if x.Depth > maxDepth {
				continue
			}
			logger := log.WithFields(log.Fields{"line": e.Line, "depth": x.Depth, "fen": fen})

			t0 := time.Now()
			nodes, err := runner.Count(ctx, e.State.Pos, x.Depth)
			if err != nil {
				logger.WithError(err).Error("interrupted")
				return 1
			}
			elapsed := time.Since(t0)
			total += nodes

			if nodes != x.Nodes {
				failed++
				logger.WithFields(log.Fields{"got": nodes, "want": x.Nodes}).Error("mismatch")
				continue
			}
			passed++
			logger.WithField("nodes", humanize.Comma(int64(nodes))).Debug("ok")

			if store != nil {
				err := store.Put(perftdb.Record{FEN: fen, Depth: x.Depth, Nodes: nodes, Elapsed: elapsed, Label: "suite"})
				if err != nil {
					logger.WithError(err).Error("result store")
					return 1
				}
			}
		}
	}

	elapsed := time.Since(start)
	log.WithFields(log.Fields{
		"passed":  passed,
		"failed":  failed,
		"nodes":   humanize.Comma(int64(total)),
		"elapsed": elapsed.Round(time.Millisecond),
		"nps":     humanize.Comma(int64(float64(total) / elapsed.Seconds())),
	}).Info("suite finished")
	if failed > 0 {
		return 1
	}
	return 0
}
