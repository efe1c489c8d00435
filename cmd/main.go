package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	rangecache "github.com/krisalay/interval-cache"
	"github.com/krisalay/interval-cache/engine"
	"github.com/krisalay/interval-cache/index"
	"github.com/krisalay/interval-cache/metrics"
	"github.com/krisalay/interval-cache/sequence"
)

func must[T any](v T, err error) T {
	if err != nil {
		logrus.Fatal(err)
	}
	return v
}

func query(e *engine.QueryEngine, left, right int) {
	before := e.Stats().Hits
	v := must(e.RangeSum(left, right))
	kind := "MISS"
	if e.Stats().Hits > before {
		kind = "HIT "
	}
	fmt.Printf("ENGINE → rangeSum(%d,%d) = %-3d %s  cache size = %d\n", left, right, v, kind, e.Len())
}

// ================= MAIN =================

func main() {
	logrus.SetLevel(logrus.DebugLevel)

	fmt.Println("\n==================== SYSTEM BOOT ====================")
	fmt.Println("SEQUENCE        : [1 2 3 4 5]")
	fmt.Println("EVICTION POLICY : LRU")
	fmt.Println("INDEX           : interval tree")
	fmt.Println("CAPACITY        : 2 intervals")

	// ---------------- Backing Store ----------------
	store := sequence.New([]int64{1, 2, 3, 4, 5})

	// ---------------- Metrics ----------------
	counters := &metrics.Counters{}

	// ---------------- Cache + Engine ----------------
	cache := must(rangecache.New(rangecache.Config{
		Capacity: 2,
		Length:   store.Len(),
		Index:    index.Tree,
		Metrics:  counters,
	}))
	e := must(engine.New(store, cache, counters))

	// ====================================================
	fmt.Println("\n==================== 1) FILL ====================")
	query(e, 0, 2)
	query(e, 3, 4)

	// ====================================================
	fmt.Println("\n==================== 2) HIT ====================")
	query(e, 0, 2)

	// ====================================================
	fmt.Println("\n==================== 3) EVICTION ====================")
	query(e, 1, 3)
	fmt.Println("CACHE  → (3,4) resident =", cache.Contains(3, 4))

	// ====================================================
	fmt.Println("\n==================== 4) UPDATE + INVALIDATION ====================")
	if err := e.Update(2, 10); err != nil {
		logrus.Fatal(err)
	}
	fmt.Println("ENGINE → update(2, 10)   cache size =", e.Len())

	// ====================================================
	fmt.Println("\n==================== 5) RECOMPUTE ====================")
	query(e, 0, 2)

	// ====================================================
	s := e.Stats()
	fmt.Println("\n==================== METRICS ====================")
	fmt.Printf("HITS          : %d\n", s.Hits)
	fmt.Printf("MISSES        : %d\n", s.Misses)
	fmt.Printf("EVICTIONS     : %d\n", s.Evictions)
	fmt.Printf("INVALIDATIONS : %d\n", s.Invalidations)
}
