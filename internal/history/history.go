// Package history manages the bounded play-history store, persisted as a
// JSON object keyed by URL. Writes go through a temp file and rename to
// prevent data corruption.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Entry records play metadata for one URL.
type Entry struct {
	Title     string    `json:"title,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	PlayCount int       `json:"play_count"`
}

// Played pairs a URL with its entry, for ordered listings.
type Played struct {
	URL string
	Entry
}

// Store is a capped URL-keyed history backed by a JSON file. It is owned
// by a single goroutine; mutations are not safe for concurrent use.
type Store struct {
	path    string
	max     int
	entries map[string]Entry
	now     func() time.Time
}

// Open loads the history file at path. Read or parse failures degrade to
// an empty store rather than failing startup.
func Open(path string, max int) *Store {
	s := &Store{
		path:    path,
		max:     max,
		entries: make(map[string]Entry),
		now:     time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var m map[string]Entry
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return s
	}
	s.entries = m
	return s
}

// Record inserts a new entry for url or bumps the play count and refreshes
// the timestamp of an existing one, evicts oldest entries past the cap,
// then persists the store.
func (s *Store) Record(url, title string) error {
	e, ok := s.entries[url]
	if !ok {
		e = Entry{Title: title, PlayCount: 1, Timestamp: s.now()}
	} else {
		e.PlayCount++
		e.Timestamp = s.now()
		if e.Title == "" {
			e.Title = title
		}
	}
	s.entries[url] = e

	s.evict()
	return s.save()
}

// SetTitle replaces the stored title for url, if present. Used when the
// real watch-page title arrives after the entry was recorded.
func (s *Store) SetTitle(url, title string) error {
	e, ok := s.entries[url]
	if !ok || title == "" || e.Title == title {
		return nil
	}
	e.Title = title
	s.entries[url] = e
	return s.save()
}

// Clear empties the store and persists immediately. Idempotent.
func (s *Store) Clear() error {
	s.entries = make(map[string]Entry)
	return s.save()
}

// Len returns the number of stored entries.
func (s *Store) Len() int { return len(s.entries) }

// Get returns the entry for url.
func (s *Store) Get(url string) (Entry, bool) {
	e, ok := s.entries[url]
	return e, ok
}

// Recent returns all entries ordered newest first. Ties are broken by URL
// so the ordering is deterministic.
func (s *Store) Recent() []Played {
	out := make([]Played, 0, len(s.entries))
	for url, e := range s.entries {
		out = append(out, Played{URL: url, Entry: e})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].URL < out[j].URL
	})
	return out
}

// evict removes oldest-by-timestamp entries until the store fits the cap.
func (s *Store) evict() {
	if s.max <= 0 || len(s.entries) <= s.max {
		return
	}
	ordered := s.Recent()
	for _, p := range ordered[s.max:] {
		delete(s.entries, p.URL)
	}
}

// save rewrites the whole history file atomically (temp file + rename).
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming history file: %w", err)
	}
	return nil
}
