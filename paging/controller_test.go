package paging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID  string
	Seq int
}

func entryKey(e entry) string { return e.ID }

// dataset builds n entries with deterministic keys.
func dataset(n int) []entry {
	out := make([]entry, n)
	for i := range out {
		out[i] = entry{ID: fmt.Sprintf("e-%03d", i), Seq: i}
	}
	return out
}

// sliceFetcher serves pages of size pageSize from a fixed dataset with
// an explicit more-data flag.
func sliceFetcher(items []entry, pageSize int) FetchFunc[entry] {
	return func(_ context.Context, page int) (PageResult[entry], error) {
		start := page * pageSize
		if start >= len(items) {
			return Page([]entry{}, false), nil
		}
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		return Page(items[start:end], end < len(items)), nil
	}
}

// recorder collects observer and telemetry callbacks.
type recorder struct {
	mu          sync.Mutex
	transitions []string
	changes     []Change
	requested   []int
	succeeded   []int
	failed      []int
}

func (r *recorder) OnStateChanged(prev, next State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, prev.String()+">"+next.String())
}

func (r *recorder) OnChanged(ch Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, ch)
}

func (r *recorder) OnPageRequested(page int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requested = append(r.requested, page)
}

func (r *recorder) OnPageSucceeded(page int, _ []entry, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.succeeded = append(r.succeeded, page)
}

func (r *recorder) OnPageFailed(page int, _ error, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, page)
}

func (r *recorder) changeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}

// assertIndex verifies the key index invariant: every unique non-empty
// key maps to its item's position.
func assertIndex(t *testing.T, c *Controller[entry]) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.index.enabled() {
		return
	}
	for i, it := range c.items {
		pos, ok := c.index.pos[entryKey(it)]
		if !ok || pos != i {
			t.Fatalf("index[%q] = %d (present=%v), want %d", entryKey(it), pos, ok, i)
		}
	}
}

func newTestController(t *testing.T, fetch FetchFunc[entry], opts Options[entry]) *Controller[entry] {
	t.Helper()
	if opts.KeyOf == nil {
		opts.KeyOf = entryKey
	}
	c, err := New(fetch, opts)
	require.NoError(t, err)
	return c
}

func TestLoadFirstPage(t *testing.T) {
	ctx := context.Background()

	t.Run("success transitions to loaded", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(50), 20), Options[entry]{PageSize: 20, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))
		assert.Equal(t, StateLoaded, c.State())
		assert.Equal(t, 20, c.Len())
		assert.Equal(t, 0, c.Page())
		assert.True(t, c.HasMore())
		assertIndex(t, c)
	})

	t.Run("empty result transitions to empty", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(nil, 20), Options[entry]{PageSize: 20, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))
		assert.Equal(t, StateEmpty, c.State())
		assert.Equal(t, 0, c.Len())
		assert.False(t, c.HasMore())
	})

	t.Run("failure records error and leaves sequence untouched", func(t *testing.T) {
		boom := errors.New("backend down")
		healthy := true
		fetch := func(ctx context.Context, page int) (PageResult[entry], error) {
			if !healthy {
				return PageResult[entry]{}, boom
			}
			return sliceFetcher(dataset(50), 20)(ctx, page)
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 20, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.Equal(t, 20, c.Len())

		healthy = false
		err := c.LoadFirstPage(ctx)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, StateError, c.State())
		assert.ErrorIs(t, c.LastError(), boom)
		assert.Equal(t, 20, c.Len(), "sequence must survive a failed reload")
	})

	t.Run("no-op while already loading", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		var calls int
		fetch := func(_ context.Context, _ int) (PageResult[entry], error) {
			calls++
			close(started)
			<-release
			return Page(dataset(5), false), nil
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 20})

		done := make(chan struct{})
		go func() {
			_ = c.LoadFirstPage(ctx)
			close(done)
		}()
		<-started
		require.NoError(t, c.LoadFirstPage(ctx), "second call must return immediately")
		close(release)
		<-done
		assert.Equal(t, 1, calls)
	})

	t.Run("initial page offset is honored", func(t *testing.T) {
		var got int
		fetch := func(_ context.Context, page int) (PageResult[entry], error) {
			got = page
			return Page(dataset(3), false), nil
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 20, InitialPage: 7})
		require.NoError(t, c.LoadFirstPage(ctx))
		assert.Equal(t, 7, got)
		assert.Equal(t, 7, c.Page())
	})
}

func TestLoadNextPage(t *testing.T) {
	ctx := context.Background()

	t.Run("accumulates pages and completes on short page", func(t *testing.T) {
		// Pages of 20, 20 and 5 items, more-data inferred from size.
		pages := [][]entry{dataset(45)[:20], dataset(45)[20:40], dataset(45)[40:]}
		fetch := func(_ context.Context, page int) (PageResult[entry], error) {
			if page >= len(pages) {
				return Slice([]entry{}), nil
			}
			return Slice(pages[page]), nil
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 20, InfiniteScroll: true})

		require.NoError(t, c.LoadFirstPage(ctx))
		require.NoError(t, c.LoadNextPage(ctx))
		require.NoError(t, c.LoadNextPage(ctx))

		assert.Equal(t, StateCompleted, c.State())
		assert.Equal(t, 45, c.Len())
		assert.Equal(t, 2, c.Page())
		assert.False(t, c.HasMore())
		assertIndex(t, c)
	})

	t.Run("no-op once completed", func(t *testing.T) {
		var calls int
		fetch := func(_ context.Context, _ int) (PageResult[entry], error) {
			calls++
			return Page(dataset(5), false), nil
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 20, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.Equal(t, StateCompleted, c.State())

		for i := 0; i < 5; i++ {
			require.NoError(t, c.LoadNextPage(ctx))
		}
		assert.Equal(t, 1, calls, "loadNextPage must converge to a no-op")
	})

	t.Run("no-op in error and empty states", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(nil, 20), Options[entry]{PageSize: 20})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.Equal(t, StateEmpty, c.State())
		require.NoError(t, c.LoadNextPage(ctx))
		assert.Equal(t, StateEmpty, c.State())
	})

	t.Run("failure keeps cursor and sequence", func(t *testing.T) {
		boom := errors.New("timeout")
		fetch := func(ctx context.Context, page int) (PageResult[entry], error) {
			if page > 0 {
				return PageResult[entry]{}, boom
			}
			return sliceFetcher(dataset(100), 20)(ctx, page)
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 20, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))

		err := c.LoadNextPage(ctx)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, StateError, c.State())
		assert.Equal(t, 0, c.Page(), "cursor commits only on success")
		assert.Equal(t, 20, c.Len())
	})

	t.Run("replacement mode swaps the page", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(50), 20), Options[entry]{PageSize: 20, InfiniteScroll: false})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.NoError(t, c.LoadNextPage(ctx))

		items := c.Items()
		require.Len(t, items, 20)
		assert.Equal(t, 20, items[0].Seq, "second page replaces the first")
		assert.Equal(t, 1, c.Page())
		assertIndex(t, c)
	})
}

func TestCacheEviction(t *testing.T) {
	ctx := context.Background()

	t.Run("keep last bounds the sequence", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(50), 10), Options[entry]{
			PageSize:       10,
			InfiniteScroll: true,
			CachePolicy:    KeepLast(30),
		})
		require.NoError(t, c.LoadFirstPage(ctx))
		for i := 0; i < 4; i++ {
			require.NoError(t, c.LoadNextPage(ctx))
		}

		items := c.Items()
		require.Len(t, items, 30)
		assert.Equal(t, 20, items[0].Seq, "items 21-50 survive (0-indexed 20..49)")
		assert.Equal(t, 49, items[29].Seq)
		assertIndex(t, c)
	})

	t.Run("keep none retains one page", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(40), 10), Options[entry]{
			PageSize:       10,
			InfiniteScroll: true,
			CachePolicy:    KeepNone(),
		})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.NoError(t, c.LoadNextPage(ctx))
		require.NoError(t, c.LoadNextPage(ctx))

		items := c.Items()
		require.Len(t, items, 10)
		assert.Equal(t, 20, items[0].Seq)
	})

	t.Run("max cached items promotes to keep last", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(50), 10), Options[entry]{
			PageSize:       10,
			InfiniteScroll: true,
			MaxCachedItems: 15,
		})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.NoError(t, c.LoadNextPage(ctx))
		require.NoError(t, c.LoadNextPage(ctx))
		assert.Equal(t, 15, c.Len())
	})

	t.Run("trim is reported to observers", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(50), 10), Options[entry]{
			PageSize:       10,
			InfiniteScroll: true,
			CachePolicy:    KeepLast(10),
		})
		rec := &recorder{}
		defer c.Subscribe(rec)()

		require.NoError(t, c.LoadFirstPage(ctx))
		require.NoError(t, c.LoadNextPage(ctx))

		rec.mu.Lock()
		defer rec.mu.Unlock()
		var sawTrim bool
		for _, ch := range rec.changes {
			if ch.Trimmed {
				sawTrim = true
			}
		}
		assert.True(t, sawTrim)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("discards a stale in-flight fetch", func(t *testing.T) {
		first := dataset(10)[:5]
		stale := dataset(20)[5:10]
		started := make(chan struct{})
		release := make(chan struct{})
		fetch := func(_ context.Context, page int) (PageResult[entry], error) {
			if page == 1 {
				close(started)
				<-release
				return Page(stale, true), nil
			}
			return Page(first, true), nil
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 5, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))

		done := make(chan struct{})
		go func() {
			_ = c.LoadNextPage(ctx)
			close(done)
		}()
		<-started

		require.NoError(t, c.Refresh(ctx))
		close(release)
		<-done

		items := c.Items()
		require.Len(t, items, 5, "stale page must be discarded")
		assert.Equal(t, 0, items[0].Seq)
		assert.Equal(t, 0, c.Page())
		assert.Equal(t, StateLoaded, c.State())
		assertIndex(t, c)
	})

	t.Run("is idempotent", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(30), 10), Options[entry]{PageSize: 10, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.NoError(t, c.LoadNextPage(ctx))

		require.NoError(t, c.Refresh(ctx))
		require.NoError(t, c.Refresh(ctx))

		assert.Equal(t, 0, c.Page())
		assert.Equal(t, 10, c.Len())
		assert.Equal(t, StateLoaded, c.State())
	})

	t.Run("resets anchor reservation", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(30), 10), Options[entry]{PageSize: 10, InfiniteScroll: true})
		c.mu.Lock()
		c.anchor.inset = 120
		c.mu.Unlock()
		require.NoError(t, c.Refresh(ctx))
		assert.Zero(t, c.LeadingInset())
	})
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries the first page when the sequence is empty", func(t *testing.T) {
		healthy := false
		fetch := func(ctx context.Context, page int) (PageResult[entry], error) {
			if !healthy {
				return PageResult[entry]{}, errors.New("flaky")
			}
			return sliceFetcher(dataset(30), 10)(ctx, page)
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 10, InfiniteScroll: true})
		require.Error(t, c.LoadFirstPage(ctx))
		require.Equal(t, StateError, c.State())

		healthy = true
		require.NoError(t, c.Retry(ctx))
		assert.Equal(t, StateLoaded, c.State())
		assert.Equal(t, 10, c.Len())
	})

	t.Run("retries the next page when items exist", func(t *testing.T) {
		failPage1 := true
		fetch := func(ctx context.Context, page int) (PageResult[entry], error) {
			if page == 1 && failPage1 {
				return PageResult[entry]{}, errors.New("flaky")
			}
			return sliceFetcher(dataset(30), 10)(ctx, page)
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 10, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.Error(t, c.LoadNextPage(ctx))
		require.Equal(t, StateError, c.State())

		failPage1 = false
		require.NoError(t, c.Retry(ctx))
		assert.Equal(t, StateLoaded, c.State())
		assert.Equal(t, 20, c.Len())
		assert.Equal(t, 1, c.Page())
	})

	t.Run("is a no-op outside the error state", func(t *testing.T) {
		var calls int
		fetch := func(_ context.Context, _ int) (PageResult[entry], error) {
			calls++
			return Page(dataset(5), false), nil
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 10})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.NoError(t, c.Retry(ctx))
		assert.Equal(t, 1, calls)
	})
}

func TestDispose(t *testing.T) {
	ctx := context.Background()

	t.Run("suppresses in-flight completions", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		fetch := func(_ context.Context, _ int) (PageResult[entry], error) {
			close(started)
			<-release
			return Page(dataset(5), false), nil
		}
		c := newTestController(t, fetch, Options[entry]{PageSize: 10})
		rec := &recorder{}
		c.Subscribe(rec)

		done := make(chan struct{})
		go func() {
			_ = c.LoadFirstPage(ctx)
			close(done)
		}()
		<-started
		c.Dispose()
		before := rec.changeCount()
		close(release)
		<-done

		assert.Equal(t, 0, c.Len())
		assert.Equal(t, before, rec.changeCount(), "a disposed controller must not notify")
	})

	t.Run("rejects further loads", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(5), 10), Options[entry]{PageSize: 10})
		c.Dispose()
		assert.ErrorIs(t, c.LoadFirstPage(ctx), ErrDisposed)
		assert.ErrorIs(t, c.LoadNextPage(ctx), ErrDisposed)
		assert.ErrorIs(t, c.Refresh(ctx), ErrDisposed)
	})
}

func TestAutoLoadFirstPage(t *testing.T) {
	loaded := make(chan struct{})
	fetch := func(_ context.Context, _ int) (PageResult[entry], error) {
		defer close(loaded)
		return Page(dataset(5), false), nil
	}
	c := newTestController(t, fetch, Options[entry]{PageSize: 10, AutoLoadFirstPage: true})

	select {
	case <-loaded:
	case <-time.After(2 * time.Second):
		t.Fatal("first page was not auto-loaded")
	}
	// The commit happens after the fetch returns; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for c.Len() != 5 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, 5, c.Len())
}

func TestNotifyScroll(t *testing.T) {
	ctx := context.Background()

	load := func(opts Options[entry]) (*Controller[entry], chan int) {
		requested := make(chan int, 8)
		fetch := func(ctx context.Context, page int) (PageResult[entry], error) {
			select {
			case requested <- page:
			default:
			}
			return sliceFetcher(dataset(200), 20)(ctx, page)
		}
		c := newTestController(t, fetch, opts)
		require.NoError(t, c.LoadFirstPage(ctx))
		return c, requested
	}

	t.Run("item count trigger takes priority", func(t *testing.T) {
		c, requested := load(Options[entry]{
			PageSize:          20,
			InfiniteScroll:    true,
			PrefetchItemCount: 5,
			PrefetchDistance:  1e9, // would always fire; must be ignored
		})
		<-requested

		// 10% scrolled: ~18 items remain, above the threshold.
		assert.False(t, c.NotifyScroll(ctx, 100, 1000))
		// 80% scrolled: 4 items remain.
		assert.True(t, c.NotifyScroll(ctx, 800, 1000))

		select {
		case page := <-requested:
			assert.Equal(t, 1, page)
		case <-time.After(2 * time.Second):
			t.Fatal("prefetch did not start a load")
		}
	})

	t.Run("distance trigger", func(t *testing.T) {
		c, requested := load(Options[entry]{
			PageSize:         20,
			InfiniteScroll:   true,
			PrefetchDistance: 150,
		})
		<-requested

		assert.False(t, c.NotifyScroll(ctx, 100, 1000))
		assert.True(t, c.NotifyScroll(ctx, 900, 1000))
	})

	t.Run("default invisible-items threshold", func(t *testing.T) {
		c, requested := load(Options[entry]{PageSize: 20, InfiniteScroll: true})
		<-requested

		assert.False(t, c.NotifyScroll(ctx, 500, 1000))
		assert.True(t, c.NotifyScroll(ctx, 1000, 1000))
	})

	t.Run("inert when no more data", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(dataset(5), 20), Options[entry]{PageSize: 20, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.Equal(t, StateCompleted, c.State())
		assert.False(t, c.NotifyScroll(ctx, 1000, 1000))
	})
}

func TestItemMutations(t *testing.T) {
	ctx := context.Background()

	newLoaded := func(t *testing.T, n, pageSize int) *Controller[entry] {
		c := newTestController(t, sliceFetcher(dataset(n), pageSize), Options[entry]{PageSize: pageSize, InfiniteScroll: true})
		require.NoError(t, c.LoadFirstPage(ctx))
		return c
	}

	t.Run("update by key replaces in place", func(t *testing.T) {
		c := newLoaded(t, 10, 10)
		ok := c.UpdateItem(entry{ID: "e-003", Seq: 333}, nil)
		require.True(t, ok)
		got, _ := c.Item(3)
		assert.Equal(t, 333, got.Seq)
		assertIndex(t, c)
	})

	t.Run("update miss returns false without notifying", func(t *testing.T) {
		c := newLoaded(t, 10, 10)
		rec := &recorder{}
		defer c.Subscribe(rec)()

		ok := c.UpdateItem(entry{ID: "absent", Seq: 1}, nil)
		assert.False(t, ok)
		assert.Zero(t, rec.changeCount())
	})

	t.Run("update handles a key change via predicate", func(t *testing.T) {
		c := newLoaded(t, 10, 10)
		ok := c.UpdateItem(entry{ID: "renamed", Seq: 4}, func(e entry) bool { return e.ID == "e-004" })
		require.True(t, ok)
		got, _ := c.Item(4)
		assert.Equal(t, "renamed", got.ID)
		assertIndex(t, c)

		// The old key is gone, the new one resolves.
		assert.False(t, c.RemoveByKey("e-004"))
		assert.True(t, c.RemoveByKey("renamed"))
	})

	t.Run("remove shifts the index", func(t *testing.T) {
		c := newLoaded(t, 10, 10)
		require.True(t, c.RemoveByKey("e-002"))
		assert.Equal(t, 9, c.Len())
		got, _ := c.Item(2)
		assert.Equal(t, "e-003", got.ID)
		assertIndex(t, c)
	})

	t.Run("removing the last item transitions to empty", func(t *testing.T) {
		c := newLoaded(t, 1, 10)
		require.Equal(t, 1, c.Len())
		require.True(t, c.RemoveByKey("e-000"))
		assert.Equal(t, StateEmpty, c.State())
	})

	t.Run("remove by predicate without key function", func(t *testing.T) {
		c, err := New(sliceFetcher(dataset(10), 10), Options[entry]{PageSize: 10})
		require.NoError(t, err)
		require.NoError(t, c.LoadFirstPage(ctx))

		assert.False(t, c.RemoveByKey("e-001"), "keyed ops are unavailable without a key function")
		assert.True(t, c.RemoveItem(func(e entry) bool { return e.Seq == 1 }))
		assert.Equal(t, 9, c.Len())
	})

	t.Run("insert and append leave the empty state", func(t *testing.T) {
		c := newTestController(t, sliceFetcher(nil, 10), Options[entry]{PageSize: 10})
		require.NoError(t, c.LoadFirstPage(ctx))
		require.Equal(t, StateEmpty, c.State())

		c.AppendItem(entry{ID: "a", Seq: 1})
		assert.Equal(t, StateLoaded, c.State())

		require.True(t, c.InsertItem(0, entry{ID: "b", Seq: 2}))
		assert.False(t, c.InsertItem(9, entry{ID: "c", Seq: 3}), "out-of-bounds insert is rejected")

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "b", items[0].ID)
		assertIndex(t, c)
	})

	t.Run("duplicate keys degrade to predicate scans", func(t *testing.T) {
		dup := []entry{{ID: "same", Seq: 0}, {ID: "same", Seq: 1}, {ID: "other", Seq: 2}}
		c := newTestController(t, func(_ context.Context, _ int) (PageResult[entry], error) {
			return Page(dup, false), nil
		}, Options[entry]{PageSize: 10})
		require.NoError(t, c.LoadFirstPage(ctx))

		// Keyed update falls back to a scan and must not crash; it
		// targets the first match.
		ok := c.UpdateItem(entry{ID: "same", Seq: 99}, nil)
		require.True(t, ok)
		got, _ := c.Item(0)
		assert.Equal(t, 99, got.Seq)

		assert.True(t, c.RemoveItem(func(e entry) bool { return e.ID == "other" }))
		assert.Equal(t, 2, c.Len())
	})
}

func TestTelemetryHooks(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("nope")
	fetch := func(ctx context.Context, page int) (PageResult[entry], error) {
		if page == 1 {
			return PageResult[entry]{}, boom
		}
		return sliceFetcher(dataset(40), 20)(ctx, page)
	}
	c := newTestController(t, fetch, Options[entry]{PageSize: 20, InfiniteScroll: true})
	rec := &recorder{}
	defer c.Subscribe(rec)()

	require.NoError(t, c.LoadFirstPage(ctx))
	require.Error(t, c.LoadNextPage(ctx))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []int{0, 1}, rec.requested)
	assert.Equal(t, []int{0}, rec.succeeded)
	assert.Equal(t, []int{1}, rec.failed)
}
