package cache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func failingFetch(t *testing.T) FetchFunc {
	t.Helper()
	return func(ctx context.Context) ([]byte, error) {
		t.Fatal("fetch invoked for a document that should be served from disk")
		return nil, nil
	}
}

func TestGetFetchesAndStoresOnMiss(t *testing.T) {
	store := New(t.TempDir(), nil)
	res := SeriesInfo(82)

	var calls atomic.Int32
	body := []byte(`{"id":82,"name":"Game of Thrones"}`)
	got, err := store.Get(context.Background(), res, func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		return body, nil
	})
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("unexpected body: got %q want %q", got, body)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one fetch, got %d", calls.Load())
	}

	stored, err := os.ReadFile(store.Path(res))
	if err != nil {
		t.Fatalf("cached file not written: %v", err)
	}
	if string(stored) != string(body) {
		t.Fatalf("stored body differs: got %q want %q", stored, body)
	}
}

func TestGetServesFromDiskWithoutFetching(t *testing.T) {
	store := New(t.TempDir(), nil)
	res := SeriesInfo(82)

	seedResource(t, store, res, []byte("cached"))

	got, err := store.Get(context.Background(), res, failingFetch(t))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != "cached" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestGetNeverOverwritesExistingDocument(t *testing.T) {
	store := New(t.TempDir(), nil)
	res := EpisodeList(7)
	ctx := context.Background()

	first, err := store.Get(ctx, res, func(ctx context.Context) ([]byte, error) {
		return []byte("first"), nil
	})
	if err != nil {
		t.Fatalf("first Get returned error: %v", err)
	}

	second, err := store.Get(ctx, res, func(ctx context.Context) ([]byte, error) {
		return []byte("second"), nil
	})
	if err != nil {
		t.Fatalf("second Get returned error: %v", err)
	}
	if string(second) != string(first) {
		t.Fatalf("second Get returned %q, want the original %q", second, first)
	}

	stored, err := os.ReadFile(store.Path(res))
	if err != nil {
		t.Fatalf("read cached file: %v", err)
	}
	if string(stored) != "first" {
		t.Fatalf("cached file was rewritten: %q", stored)
	}
}

func TestGetFetchFailureLeavesNoFile(t *testing.T) {
	store := New(t.TempDir(), nil)
	res := ShowCast(19)

	wantErr := errors.New("catalog down")
	_, err := store.Get(context.Background(), res, func(ctx context.Context) ([]byte, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	if _, err := os.Stat(store.Path(res)); !os.IsNotExist(err) {
		t.Fatalf("expected no cached file after failed fetch, stat err = %v", err)
	}

	// The miss is still a miss: the next Get fetches again.
	got, err := store.Get(context.Background(), res, func(ctx context.Context) ([]byte, error) {
		return []byte("recovered"), nil
	})
	if err != nil {
		t.Fatalf("retry Get returned error: %v", err)
	}
	if string(got) != "recovered" {
		t.Fatalf("unexpected body after retry: %q", got)
	}
}

func TestGetPropagatesReadErrorsWithoutFetching(t *testing.T) {
	store := New(t.TempDir(), nil)
	res := SeasonsList(3)

	// A directory where the document should be makes the read fail with
	// something other than not-exist.
	if err := os.MkdirAll(store.Path(res), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := store.Get(context.Background(), res, failingFetch(t))
	if err == nil {
		t.Fatal("expected a read error")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error should not be not-exist: %v", err)
	}
}

func TestGetCollapsesConcurrentFetches(t *testing.T) {
	store := New(t.TempDir(), nil)
	res := ScheduleByDate(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var calls atomic.Int32
	fetch := func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []byte("shared"), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	bodies := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, err := store.Get(ctx, res, fetch)
			bodies[i], errs[i] = string(body), err
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if bodies[i] != "shared" {
			t.Fatalf("worker %d got %q", i, bodies[i])
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one fetch across %d workers, got %d", workers, got)
	}
}

func TestInvalidateRemovesDocument(t *testing.T) {
	store := New(t.TempDir(), nil)
	res := SeriesInfo(41)
	ctx := context.Background()

	if _, err := store.Get(ctx, res, func(ctx context.Context) ([]byte, error) {
		return []byte("v1"), nil
	}); err != nil {
		t.Fatalf("fill: %v", err)
	}

	if err := store.Invalidate(res); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}
	if _, err := os.Stat(store.Path(res)); !os.IsNotExist(err) {
		t.Fatalf("document still present after invalidation, stat err = %v", err)
	}

	got, err := store.Get(ctx, res, func(ctx context.Context) ([]byte, error) {
		return []byte("v2"), nil
	})
	if err != nil {
		t.Fatalf("refill: %v", err)
	}
	if string(got) != "v2" {
		t.Fatalf("expected fresh document after invalidation, got %q", got)
	}
}

func TestInvalidateMissingDocumentIsNotAnError(t *testing.T) {
	store := New(t.TempDir(), nil)
	if err := store.Invalidate(SeriesInfo(404)); err != nil {
		t.Fatalf("Invalidate of absent document returned error: %v", err)
	}
}

func seedResource(t *testing.T, store *Store, res Resource, body []byte) {
	t.Helper()
	path := store.Path(res)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}
}
