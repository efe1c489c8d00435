package rangecache_test

import (
	"math/rand/v2"
	"testing"

	"github.com/krisalay/interval-cache/index"
	"github.com/krisalay/interval-cache/scanlru"
)

// fillCache loads n short intervals spread over the sequence so that any point
// is covered by only a handful of them.
func fillCache(b *testing.B, put func(l, r int, v int64) error, n, length int) {
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < n; i++ {
		l := rng.IntN(length - 16)
		if err := put(l, l+rng.IntN(16), int64(i)); err != nil {
			b.Fatal(err)
		}
	}
}

//
// ================= INVALIDATION BENCH =================
//

func benchmarkInvalidate(b *testing.B, typ index.Type, capacity int) {
	const length = 1 << 20
	c, _ := newTestCache(b, typ, capacity, length)
	fillCache(b, c.Put, capacity, length)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := (i * 7919) % (length - 16)
		if _, err := c.Invalidate(p); err != nil {
			b.Fatal(err)
		}
		// Refill one interval so the cache stays near capacity.
		if err := c.Put(p, p+1, int64(i)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInvalidateTree1K(b *testing.B)   { benchmarkInvalidate(b, index.Tree, 1_000) }
func BenchmarkInvalidateScan1K(b *testing.B)   { benchmarkInvalidate(b, index.Scan, 1_000) }
func BenchmarkInvalidateTree100K(b *testing.B) { benchmarkInvalidate(b, index.Tree, 100_000) }
func BenchmarkInvalidateScan100K(b *testing.B) { benchmarkInvalidate(b, index.Scan, 100_000) }

func BenchmarkInvalidateScanLRU100K(b *testing.B) {
	const length, capacity = 1 << 20, 100_000
	c, err := scanlru.New(capacity, length, nil)
	if err != nil {
		b.Fatal(err)
	}
	fillCache(b, c.Put, capacity, length)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := (i * 7919) % (length - 16)
		if _, err := c.Invalidate(p); err != nil {
			b.Fatal(err)
		}
		if err := c.Put(p, p+1, int64(i)); err != nil {
			b.Fatal(err)
		}
	}
}

//
// ================= READ / WRITE BENCH =================
//

func BenchmarkGetHit(b *testing.B) {
	c, _ := newTestCache(b, index.Tree, 1024, 1024)
	if err := c.Put(10, 500, 1); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = c.Get(10, 500)
	}
}

func BenchmarkPutWithEviction(b *testing.B) {
	const length = 4096
	c, _ := newTestCache(b, index.Tree, 1024, length)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := i % (length - 1)
		_ = c.Put(l, l+1, int64(i))
	}
}
