package metadata

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"palletScope/internal/model"
)

type countingFetcher struct {
	calls   atomic.Int64
	payload string
	err     error
	delay   time.Duration
}

func (f *countingFetcher) Fetch(_ context.Context, _ string) (string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.payload, f.err
}

type staticDecoder struct {
	info *model.ChainInfo
	err  error
}

func (d staticDecoder) Decode(_ string) (*model.ChainInfo, error) {
	return d.info, d.err
}

func testChainInfo(name string) *model.ChainInfo {
	return &model.ChainInfo{
		Name:    name,
		Version: "1",
		Pallets: []model.PalletInfo{{Name: "System", Index: 0}},
	}
}

func TestGetServesFromCacheWithinTTL(t *testing.T) {
	fetcher := &countingFetcher{payload: "0x00"}
	cache := NewCache(fetcher, staticDecoder{info: testChainInfo("test")}, time.Minute, nil)

	for i := 0; i < 3; i++ {
		info, err := cache.Get(context.Background(), "wss://one")
		if err != nil {
			t.Fatalf("get %d failed: %v", i, err)
		}
		if info.Name != "test" {
			t.Fatalf("unexpected chain %q", info.Name)
		}
	}

	if calls := fetcher.calls.Load(); calls != 1 {
		t.Fatalf("expected 1 transport round-trip, got %d", calls)
	}
}

func TestGetRefreshesAfterExpiry(t *testing.T) {
	fetcher := &countingFetcher{payload: "0x00"}
	first := testChainInfo("first")
	decoder := &staticDecoder{info: first}
	cache := NewCache(fetcher, decoder, time.Minute, nil)

	now := time.Now()
	cache.now = func() time.Time { return now }

	if _, err := cache.Get(context.Background(), "wss://one"); err != nil {
		t.Fatalf("first get failed: %v", err)
	}

	// Past the TTL the entry must be replaced wholesale by a new fetch.
	decoder.info = testChainInfo("second")
	now = now.Add(time.Minute + time.Second)

	info, err := cache.Get(context.Background(), "wss://one")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if info.Name != "second" {
		t.Fatalf("expected refreshed entry, got %q", info.Name)
	}
	if calls := fetcher.calls.Load(); calls != 2 {
		t.Fatalf("expected 2 transport round-trips, got %d", calls)
	}
}

func TestGetFailureWritesNoEntry(t *testing.T) {
	fetchErr := errors.New("boom")
	fetcher := &countingFetcher{err: fetchErr}
	cache := NewCache(fetcher, staticDecoder{info: testChainInfo("test")}, time.Minute, nil)

	if _, err := cache.Get(context.Background(), "wss://one"); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	cache.mu.RLock()
	_, ok := cache.entries["wss://one"]
	cache.mu.RUnlock()
	if ok {
		t.Fatalf("entry written despite fetch failure")
	}
}

func TestGetPropagatesDecodeError(t *testing.T) {
	fetcher := &countingFetcher{payload: "0x00"}
	decodeErr := &DecodeError{PayloadLen: 4, Err: errors.New("bad payload")}
	cache := NewCache(fetcher, staticDecoder{err: decodeErr}, time.Minute, nil)

	_, err := cache.Get(context.Background(), "wss://one")
	var got *DecodeError
	if !errors.As(err, &got) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestEntriesAreIndependentPerEndpoint(t *testing.T) {
	fetcher := &countingFetcher{payload: "0x00"}
	cache := NewCache(fetcher, staticDecoder{info: testChainInfo("test")}, time.Minute, nil)

	now := time.Now()
	cache.now = func() time.Time { return now }

	if _, err := cache.Get(context.Background(), "wss://one"); err != nil {
		t.Fatalf("get one failed: %v", err)
	}

	now = now.Add(30 * time.Second)
	if _, err := cache.Get(context.Background(), "wss://two"); err != nil {
		t.Fatalf("get two failed: %v", err)
	}
	if calls := fetcher.calls.Load(); calls != 2 {
		t.Fatalf("expected 2 round-trips for distinct endpoints, got %d", calls)
	}

	// First entry expires; second is still fresh.
	now = now.Add(45 * time.Second)
	if _, err := cache.Get(context.Background(), "wss://one"); err != nil {
		t.Fatalf("refresh one failed: %v", err)
	}
	if _, err := cache.Get(context.Background(), "wss://two"); err != nil {
		t.Fatalf("get two again failed: %v", err)
	}
	if calls := fetcher.calls.Load(); calls != 3 {
		t.Fatalf("expected independent expiry clocks, got %d round-trips", calls)
	}
}

func TestConcurrentGetsCoalesce(t *testing.T) {
	fetcher := &countingFetcher{payload: "0x00", delay: 50 * time.Millisecond}
	cache := NewCache(fetcher, staticDecoder{info: testChainInfo("test")}, time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Get(context.Background(), "wss://one"); err != nil {
				t.Errorf("concurrent get failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls := fetcher.calls.Load(); calls != 1 {
		t.Fatalf("expected coalesced fetch, got %d round-trips", calls)
	}
}

func TestInvalidateDropsEntry(t *testing.T) {
	fetcher := &countingFetcher{payload: "0x00"}
	cache := NewCache(fetcher, staticDecoder{info: testChainInfo("test")}, time.Minute, nil)

	if _, err := cache.Get(context.Background(), "wss://one"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	cache.Invalidate("wss://one")
	if _, err := cache.Get(context.Background(), "wss://one"); err != nil {
		t.Fatalf("get after invalidate failed: %v", err)
	}

	if calls := fetcher.calls.Load(); calls != 2 {
		t.Fatalf("expected refetch after invalidate, got %d round-trips", calls)
	}
}

func TestKeysAreCaseSensitive(t *testing.T) {
	fetcher := &countingFetcher{payload: "0x00"}
	cache := NewCache(fetcher, staticDecoder{info: testChainInfo("test")}, time.Minute, nil)

	if _, err := cache.Get(context.Background(), "wss://One"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, err := cache.Get(context.Background(), "wss://one"); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if calls := fetcher.calls.Load(); calls != 2 {
		t.Fatalf("expected distinct entries for differing case, got %d round-trips", calls)
	}
}
