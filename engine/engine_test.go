package engine_test

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rangecache "github.com/krisalay/interval-cache"
	"github.com/krisalay/interval-cache/api"
	"github.com/krisalay/interval-cache/engine"
	"github.com/krisalay/interval-cache/index"
	"github.com/krisalay/interval-cache/metrics"
	"github.com/krisalay/interval-cache/scanlru"
	"github.com/krisalay/interval-cache/sequence"
	"github.com/krisalay/interval-cache/types"
)

//
// ================= TEST BACKING STORE =================
//

// countingStore records how many aggregates were actually computed.
type countingStore struct {
	*sequence.Store
	mu    sync.Mutex
	scans int
}

func (s *countingStore) RangeAggregate(left, right int) (int64, error) {
	s.mu.Lock()
	s.scans++
	s.mu.Unlock()
	return s.Store.RangeAggregate(left, right)
}

func (s *countingStore) Scans() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scans
}

//
// ================= HELPER: CREATE ENGINE =================
//

type cacheFactory func(t *testing.T, capacity, length int, m types.Metrics) api.IntervalCache

var factories = map[string]cacheFactory{
	"tree": func(t *testing.T, capacity, length int, m types.Metrics) api.IntervalCache {
		c, err := rangecache.New(rangecache.Config{Capacity: capacity, Length: length, Index: index.Tree, Metrics: m})
		require.NoError(t, err)
		return c
	},
	"scan": func(t *testing.T, capacity, length int, m types.Metrics) api.IntervalCache {
		c, err := rangecache.New(rangecache.Config{Capacity: capacity, Length: length, Index: index.Scan, Metrics: m})
		require.NoError(t, err)
		return c
	},
	"scanlru": func(t *testing.T, capacity, length int, m types.Metrics) api.IntervalCache {
		c, err := scanlru.New(capacity, length, m)
		require.NoError(t, err)
		return c
	},
}

func newTestEngine(t *testing.T, f cacheFactory, values []int64, capacity int) (*engine.QueryEngine, *countingStore, api.IntervalCache) {
	t.Helper()
	store := &countingStore{Store: sequence.New(values)}
	counters := &metrics.Counters{}
	c := f(t, capacity, store.Len(), counters)
	e, err := engine.New(store, c, counters)
	require.NoError(t, err)
	return e, store, c
}

func rangeSum(t *testing.T, e *engine.QueryEngine, left, right int) int64 {
	t.Helper()
	v, err := e.RangeSum(left, right)
	require.NoError(t, err)
	return v
}

//
// ================= CONSTRUCTION =================
//

func TestNewRejectsMismatchedDomain(t *testing.T) {
	store := sequence.New([]int64{1, 2, 3})
	c, err := rangecache.New(rangecache.Config{Capacity: 2, Length: 4})
	require.NoError(t, err)

	_, err = engine.New(store, c, nil)
	require.Error(t, err)

	_, err = engine.New(nil, c, nil)
	require.Error(t, err)
}

//
// ================= CONCRETE SCENARIO =================
//

func TestScenarioCapacityTwo(t *testing.T) {
	for name, f := range factories {
		t.Run(name, func(t *testing.T) {
			e, store, _ := newTestEngine(t, f, []int64{1, 2, 3, 4, 5}, 2)

			assert.Equal(t, int64(6), rangeSum(t, e, 0, 2))
			assert.Equal(t, int64(9), rangeSum(t, e, 3, 4))
			assert.Equal(t, 2, e.Len())

			assert.Equal(t, int64(6), rangeSum(t, e, 0, 2), "hit")
			assert.Equal(t, 2, store.Scans())

			// Evicts (3,4), the least recently used.
			assert.Equal(t, int64(9), rangeSum(t, e, 1, 3))
			assert.Equal(t, 3, store.Scans())
			assert.Equal(t, 2, e.Len())

			// Both (0,2) and (1,3) cover index 2.
			require.NoError(t, e.Update(2, 10))
			assert.Equal(t, 0, e.Len())

			assert.Equal(t, int64(13), rangeSum(t, e, 0, 2))
			assert.Equal(t, 4, store.Scans())

			stats := e.Stats()
			assert.Equal(t, uint64(1), stats.Hits)
			assert.Equal(t, uint64(4), stats.Misses)
			assert.Equal(t, uint64(1), stats.Evictions)
			assert.Equal(t, uint64(2), stats.Invalidations)
			assert.Equal(t, 1, stats.Size)
			assert.Equal(t, 2, stats.Capacity)
		})
	}
}

//
// ================= HITS & INVALIDATION =================
//

func TestRepeatedQueryIsServedFromCache(t *testing.T) {
	for name, f := range factories {
		t.Run(name, func(t *testing.T) {
			e, store, _ := newTestEngine(t, f, []int64{4, 8, 15, 16, 23, 42}, 8)

			first := rangeSum(t, e, 1, 4)
			second := rangeSum(t, e, 1, 4)
			assert.Equal(t, first, second)
			assert.Equal(t, 1, store.Scans())
			assert.Equal(t, uint64(1), e.Stats().Hits)
		})
	}
}

func TestOverlappingIntervalIsNotAHit(t *testing.T) {
	e, store, _ := newTestEngine(t, factories["tree"], []int64{1, 1, 1, 1, 1}, 8)

	rangeSum(t, e, 0, 4)
	rangeSum(t, e, 1, 3)
	rangeSum(t, e, 0, 3)
	assert.Equal(t, 3, store.Scans())
	assert.Equal(t, uint64(0), e.Stats().Hits)
}

func TestUpdateOnlyInvalidatesCoveringEntries(t *testing.T) {
	for name, f := range factories {
		t.Run(name, func(t *testing.T) {
			e, _, c := newTestEngine(t, f, []int64{1, 2, 3, 4, 5, 6}, 8)

			rangeSum(t, e, 0, 1)
			rangeSum(t, e, 2, 5)
			rangeSum(t, e, 4, 5)

			require.NoError(t, e.Update(4, 100))

			_, ok, err := c.Get(2, 5)
			require.NoError(t, err)
			assert.False(t, ok)
			_, ok, _ = c.Get(4, 5)
			assert.False(t, ok)

			v, ok, _ := c.Get(0, 1)
			assert.True(t, ok)
			assert.Equal(t, int64(3), v)

			assert.Equal(t, int64(106), rangeSum(t, e, 4, 5))
		})
	}
}

func TestUpdateWithNoCoveringEntryIsNoop(t *testing.T) {
	e, _, _ := newTestEngine(t, factories["tree"], []int64{1, 2, 3, 4}, 4)
	rangeSum(t, e, 0, 1)

	require.NoError(t, e.Update(3, 9))
	assert.Equal(t, 1, e.Len())
}

//
// ================= ERRORS =================
//

func TestErrorsLeaveStateUntouched(t *testing.T) {
	e, store, _ := newTestEngine(t, factories["tree"], []int64{1, 2, 3}, 4)
	rangeSum(t, e, 0, 2)

	err := e.Update(3, 7)
	assert.True(t, errors.Is(err, types.ErrIndexOutOfRange))
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, []int64{1, 2, 3}, store.Values())

	_, err = e.RangeSum(2, 1)
	assert.True(t, errors.Is(err, types.ErrInvalidRange))
	_, err = e.RangeSum(-1, 1)
	assert.True(t, errors.Is(err, types.ErrIndexOutOfRange))
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, 1, store.Scans())
}

func TestClearKeepsStore(t *testing.T) {
	e, store, _ := newTestEngine(t, factories["tree"], []int64{1, 2, 3}, 4)
	rangeSum(t, e, 0, 2)
	require.NoError(t, e.Update(1, 5))
	rangeSum(t, e, 0, 2)

	e.Clear()
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, int64(9), rangeSum(t, e, 0, 2))
	assert.Equal(t, []int64{1, 5, 3}, store.Values())
}

//
// ================= RANDOMIZED COHERENCE =================
//

func TestRandomizedCoherence(t *testing.T) {
	const length = 64
	for name, f := range factories {
		for _, capacity := range []int{1, 5, 40} {
			t.Run(name, func(t *testing.T) {
				rng := rand.New(rand.NewPCG(uint64(capacity), 7))
				values := make([]int64, length)
				for i := range values {
					values[i] = int64(rng.IntN(100))
				}
				oracle := sequence.New(values)
				e, _, c := newTestEngine(t, f, values, capacity)

				// A small pool of hot intervals makes hits and invalidations frequent.
				hot := make([][2]int, 12)
				for i := range hot {
					l := rng.IntN(length)
					hot[i] = [2]int{l, l + rng.IntN(length-l)}
				}

				for step := 0; step < 3000; step++ {
					if rng.IntN(10) < 2 {
						i, v := rng.IntN(length), int64(rng.IntN(100))
						require.NoError(t, e.Update(i, v))
						require.NoError(t, oracle.Set(i, v))
						continue
					}
					iv := hot[rng.IntN(len(hot))]
					got := rangeSum(t, e, iv[0], iv[1])
					want, err := oracle.RangeAggregate(iv[0], iv[1])
					require.NoError(t, err)
					require.Equal(t, want, got, "step %d interval %v", step, iv)
					require.LessOrEqual(t, c.Len(), capacity)
				}
			})
		}
	}
}

//
// ================= CONCURRENCY TEST =================
//

func TestConcurrentReadersAndWriterStayCoherent(t *testing.T) {
	const length = 32
	values := make([]int64, length)
	for i := range values {
		values[i] = 1
	}
	e, _, _ := newTestEngine(t, factories["tree"], values, 16)

	// Every write sets an element to 1 again, so every full-range sum is length.
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				l := (id + j) % length
				v, err := e.RangeSum(l, length-1)
				if err != nil {
					t.Errorf("range sum: %v", err)
					return
				}
				if v != int64(length-l) {
					t.Errorf("range [%d,%d] = %d, want %d", l, length-1, v, length-l)
					return
				}
			}
		}(g)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 500; j++ {
			if err := e.Update(j%length, 1); err != nil {
				t.Errorf("update: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}
