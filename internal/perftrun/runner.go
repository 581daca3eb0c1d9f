// Package perftrun counts perft leaves in parallel, one root move per task.
package perftrun

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Oliverans/GoosePackedMG/goosemg"
	"github.com/Oliverans/GoosePackedMG/internal/perftcache"
)

// Runner splits the root moves of a perft over worker goroutines. The zero
// value uses one worker per CPU and no cache.
type Runner struct {
	Workers int
	Cache   *perftcache.Cache
}

// Divide returns the leaf count below each root move. It stops early with
// ctx's error when ctx is cancelled.
func (r *Runner) Divide(ctx context.Context, pos goosemg.Position, depth int) (map[goosemg.Move]uint64, error) {
	result := make(map[goosemg.Move]uint64)
	if depth <= 0 {
		return result, nil
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	l := pos.Generate()
	for _, m := range l.Moves() {
		m := m
		g.Go(func() error {
			n, err := r.count(ctx, pos.Apply(m), depth-1)
			if err != nil {
				return err
			}
			mu.Lock()
			result[m] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the total leaf count of pos at depth.
func (r *Runner) Count(ctx context.Context, pos goosemg.Position, depth int) (uint64, error) {
	if depth <= 1 {
		return goosemg.Perft(pos, depth), nil
	}
	div, err := r.Divide(ctx, pos, depth)
	if err != nil {
		return 0, err
	}
	var nodes uint64
	for _, n := range div {
		nodes += n
	}
	return nodes, nil
}

// count is goosemg.Perft with cancellation checks and the optional cache.
// Shallow subtrees skip both.
func (r *Runner) count(ctx context.Context, pos goosemg.Position, depth int) (uint64, error) {
	if depth <= 2 {
		return goosemg.Perft(pos, depth), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.Cache != nil {
		if n, ok := r.Cache.Get(pos, depth); ok {
			return n, nil
		}
	}

	var l goosemg.MoveList
	pos.GenerateInto(&l)
	var nodes uint64
	for _, m := range l.Moves() {
		n, err := r.count(ctx, pos.Apply(m), depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if r.Cache != nil {
		r.Cache.Put(pos, depth, nodes)
	}
	return nodes, nil
}
