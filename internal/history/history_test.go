package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T, max int) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "history.json"), max)
}

// fixedClock returns a clock that advances one second per call, so every
// Record gets a strictly later timestamp.
func fixedClock() func() time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestRecordNew(t *testing.T) {
	s := newTestStore(t, 10)

	if err := s.Record("youtu.be/abc", "Video ID: abc"); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	e, ok := s.Get("youtu.be/abc")
	if !ok {
		t.Fatal("entry not found after Record")
	}
	if e.PlayCount != 1 {
		t.Errorf("play_count = %d, want 1", e.PlayCount)
	}
	if e.Title != "Video ID: abc" {
		t.Errorf("title = %q, want 'Video ID: abc'", e.Title)
	}
	if e.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestRecordRepeat(t *testing.T) {
	s := newTestStore(t, 10)
	s.now = fixedClock()

	s.Record("youtu.be/abc", "first")
	first, _ := s.Get("youtu.be/abc")

	s.Record("youtu.be/abc", "ignored")
	second, _ := s.Get("youtu.be/abc")

	if second.PlayCount != 2 {
		t.Errorf("play_count = %d, want 2", second.PlayCount)
	}
	if !second.Timestamp.After(first.Timestamp) {
		t.Errorf("timestamp %v should be after %v", second.Timestamp, first.Timestamp)
	}
	if second.Title != "first" {
		t.Errorf("repeat play should keep existing title, got %q", second.Title)
	}
	if s.Len() != 1 {
		t.Errorf("store size = %d, want 1", s.Len())
	}
}

func TestEvictionOldestFirst(t *testing.T) {
	s := newTestStore(t, 2)
	s.now = fixedClock()

	s.Record("u1", "")
	s.Record("u2", "")
	s.Record("u3", "")

	if s.Len() != 2 {
		t.Fatalf("store size = %d, want 2", s.Len())
	}
	if _, ok := s.Get("u1"); ok {
		t.Error("u1 (oldest) should have been evicted")
	}
	for _, url := range []string{"u2", "u3"} {
		if _, ok := s.Get(url); !ok {
			t.Errorf("%s should have been retained", url)
		}
	}
}

func TestEvictionFavorsRecencyOverFrequency(t *testing.T) {
	s := newTestStore(t, 2)
	s.now = fixedClock()

	// u1 is played three times but earliest; eviction is least-recently-played.
	s.Record("u1", "")
	s.Record("u1", "")
	s.Record("u1", "")
	s.Record("u2", "")
	s.Record("u3", "")

	if _, ok := s.Get("u1"); ok {
		t.Error("u1 should be evicted despite its higher play count")
	}
}

func TestClearIdempotent(t *testing.T) {
	s := newTestStore(t, 10)
	s.Record("u1", "")
	s.Record("u2", "")

	for i := 0; i < 2; i++ {
		if err := s.Clear(); err != nil {
			t.Fatalf("Clear() #%d error: %v", i+1, err)
		}
		if s.Len() != 0 {
			t.Errorf("store size after Clear #%d = %d, want 0", i+1, s.Len())
		}
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	s := Open(path, 10)
	s.now = fixedClock()
	s.Record("youtu.be/abc", "Video A")
	s.Record("youtu.be/def", "Video B")
	s.Record("youtu.be/abc", "")

	reloaded := Open(path, 10)
	if reloaded.Len() != s.Len() {
		t.Fatalf("reloaded size = %d, want %d", reloaded.Len(), s.Len())
	}
	for _, url := range []string{"youtu.be/abc", "youtu.be/def"} {
		want, _ := s.Get(url)
		got, ok := reloaded.Get(url)
		if !ok {
			t.Fatalf("reloaded store missing %s", url)
		}
		if got.PlayCount != want.PlayCount {
			t.Errorf("%s play_count = %d, want %d", url, got.PlayCount, want.PlayCount)
		}
		if got.Title != want.Title {
			t.Errorf("%s title = %q, want %q", url, got.Title, want.Title)
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("%s timestamp = %v, want %v", url, got.Timestamp, want.Timestamp)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope.json"), 10)
	if s.Len() != 0 {
		t.Errorf("missing file should yield empty store, got %d entries", s.Len())
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	os.WriteFile(path, []byte("{not valid json"), 0644)

	s := Open(path, 10)
	if s.Len() != 0 {
		t.Errorf("corrupt file should yield empty store, got %d entries", s.Len())
	}

	// The store must remain usable afterwards.
	if err := s.Record("u1", ""); err != nil {
		t.Fatalf("Record() after corrupt load error: %v", err)
	}
}

func TestRecent(t *testing.T) {
	s := newTestStore(t, 10)
	s.now = fixedClock()

	s.Record("u1", "")
	s.Record("u2", "")
	s.Record("u3", "")
	s.Record("u1", "") // replay: u1 becomes most recent

	recent := s.Recent()
	want := []string{"u1", "u3", "u2"}
	if len(recent) != len(want) {
		t.Fatalf("Recent() returned %d entries, want %d", len(recent), len(want))
	}
	for i, url := range want {
		if recent[i].URL != url {
			t.Errorf("Recent()[%d] = %q, want %q", i, recent[i].URL, url)
		}
	}
}

func TestSetTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := Open(path, 10)

	s.Record("u1", "Video ID: abc")
	if err := s.SetTitle("u1", "Actual Title"); err != nil {
		t.Fatalf("SetTitle() error: %v", err)
	}

	e, _ := Open(path, 10).Get("u1")
	if e.Title != "Actual Title" {
		t.Errorf("persisted title = %q, want 'Actual Title'", e.Title)
	}

	// Unknown URLs are a no-op.
	if err := s.SetTitle("unknown", "x"); err != nil {
		t.Errorf("SetTitle() on unknown URL should be a no-op, got %v", err)
	}
}
