// Command perft drives internal/board's move generator over a set of named
// positions, cross-checking leaf counts against known-good expected values
// and reporting throughput. It is an outer collaborator of internal/board,
// not part of the engine itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/solumchess/core/internal/board"
	"github.com/solumchess/core/internal/cache"
)

type positionConfig struct {
	Name     string   `toml:"name"`
	FEN      string   `toml:"fen"`
	Depths   []int    `toml:"depths"`
	Expected []uint64 `toml:"expected"`
}

type fileConfig struct {
	Positions []positionConfig `toml:"positions"`
}

var (
	configPath = flag.String("config", "", "TOML file listing named positions to perft (required)")
	noCache    = flag.Bool("no-cache", false, "skip the on-disk perft cache")
)

func main() {
	flag.Parse()
	if *configPath == "" {
		log.Fatal("perft: -config is required")
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
		log.Fatalf("perft: reading config: %v", err)
	}

	var store *cache.Cache
	if !*noCache {
		dir, err := cache.DatabaseDir()
		if err != nil {
			log.Fatalf("perft: resolving cache directory: %v", err)
		}
		store, err = cache.Open(dir)
		if err != nil {
			log.Fatalf("perft: opening cache: %v", err)
		}
		defer store.Close()
	}

	failures := 0
	for _, pos := range cfg.Positions {
		b, err := board.FromFEN(pos.FEN)
		if err != nil {
			log.Fatalf("perft: position %q: %v", pos.Name, err)
		}
		for i, depth := range pos.Depths {
			nodes, cached, err := runPerft(store, pos.FEN, b, depth)
			if err != nil {
				log.Fatalf("perft: position %q depth %d: %v", pos.Name, depth, err)
			}
			status := ""
			if i < len(pos.Expected) {
				if nodes == pos.Expected[i] {
					status = "OK"
				} else {
					status = fmt.Sprintf("MISMATCH (expected %s)", humanize.Comma(int64(pos.Expected[i])))
					failures++
				}
			}
			source := "computed"
			if cached {
				source = "cached"
			}
			fmt.Printf("%-20s depth %d: %14s nodes  [%s, %s]\n",
				pos.Name, depth, humanize.Comma(int64(nodes)), source, status)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func runPerft(store *cache.Cache, fen string, b *board.Board, depth int) (nodes uint64, cached bool, err error) {
	if store != nil {
		if n, ok, err := store.Get(fen, depth); err == nil && ok {
			return n, true, nil
		}
	}

	start := time.Now()
	nodes, err = perftParallel(context.Background(), b, depth)
	if err != nil {
		return 0, false, err
	}
	elapsed := time.Since(start)
	if elapsed > 0 {
		rate := float64(nodes) / elapsed.Seconds()
		fmt.Printf("  (%s nodes/sec)\n", humanize.Comma(int64(rate)))
	}

	if store != nil {
		if err := store.Put(fen, depth, nodes); err != nil {
			log.Printf("perft: caching result: %v", err)
		}
	}
	return nodes, false, nil
}

// perftSequential is the plain recursive perft count, used beneath the
// single fanned-out level perftParallel introduces.
func perftSequential(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var ml board.MoveList
	b.Generate(&ml)
	if depth == 1 {
		return uint64(ml.Len())
	}
	var total uint64
	for i := 0; i < ml.Len(); i++ {
		total += perftSequential(b.Make(ml.Get(i)), depth-1)
	}
	return total
}

// perftParallel fans the root moves of one perft call out across a bounded
// worker pool, recursing sequentially beneath that single level.
func perftParallel(ctx context.Context, b *board.Board, depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}
	var ml board.MoveList
	b.Generate(&ml)
	if depth == 1 {
		return uint64(ml.Len()), nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var mu sync.Mutex
	var total uint64
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		g.Go(func() error {
			count := perftSequential(b.Make(m), depth-1)
			mu.Lock()
			total += count
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total, nil
}
