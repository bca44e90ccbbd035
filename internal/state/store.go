package state

import (
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/five82/lobby/internal/content"
)

// Snapshot represents the latest content available to the UI.
type Snapshot struct {
	Bundle content.Bundle
	// Revisions changes for a section only when its payload changes.
	Revisions map[content.Section]uint64
	Loaded    map[content.Section]bool
	Errors    map[content.Section]error

	LastUpdated         time.Time // last round where at least one section arrived
	LastAttempt         time.Time
	LastError           error
	ConsecutiveFailures int // rounds in a row where every section failed

	FromCache bool // content was seeded from the offline cache and not yet refreshed
	CachedAt  time.Time
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// HasData reports whether section has ever been loaded.
func (s Snapshot) HasData(section content.Section) bool {
	return s.Loaded[section]
}

// Revision returns the payload revision of section.
func (s Snapshot) Revision(section content.Section) uint64 {
	return s.Revisions[section]
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update merges one fetch round. Sections that arrived replace the stored
// payload; failed sections keep their previous data. It returns the sections
// whose payload actually changed.
func (s *Store) Update(res content.Result) []content.Section {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureMaps()
	now := res.FetchedAt
	if now.IsZero() {
		now = time.Now()
	}
	s.snapshot.LastAttempt = now

	var (
		changed []content.Section
		errs    []error
	)
	clear(s.snapshot.Errors)
	for _, section := range content.Sections() {
		if err, failed := res.Errs[section]; failed {
			s.snapshot.Errors[section] = err
			errs = append(errs, err)
			continue
		}
		if s.apply(section, &res.Bundle) {
			changed = append(changed, section)
		}
	}
	s.snapshot.LastError = errors.Join(errs...)

	if res.AllFailed() {
		s.snapshot.ConsecutiveFailures++
		return nil
	}
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.LastUpdated = now
	s.snapshot.FromCache = false
	return changed
}

// Seed primes the store with cached content. Sections already loaded from a
// live fetch are left alone.
func (s *Store) Seed(bundle content.Bundle, sections []content.Section, cachedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureMaps()
	seeded := false
	for _, section := range sections {
		if s.snapshot.Loaded[section] {
			continue
		}
		s.apply(section, &bundle)
		seeded = true
	}
	if seeded {
		s.snapshot.FromCache = true
		s.snapshot.CachedAt = cachedAt
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Bundle = cloneBundle(s.snapshot.Bundle)
	snap.Revisions = maps.Clone(s.snapshot.Revisions)
	snap.Loaded = maps.Clone(s.snapshot.Loaded)
	snap.Errors = maps.Clone(s.snapshot.Errors)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// apply copies one section from src and bumps its revision when the payload
// differs from what is stored. Caller holds the lock.
func (s *Store) apply(section content.Section, src *content.Bundle) bool {
	v, err := src.Value(section)
	if err != nil {
		return false
	}
	rev, err := revision(v)
	if err != nil {
		rev = s.snapshot.Revisions[section] + 1
	}
	if s.snapshot.Loaded[section] && s.snapshot.Revisions[section] == rev {
		return false
	}

	dst := &s.snapshot.Bundle
	switch section {
	case content.SectionHome:
		dst.Home = src.Home
	case content.SectionProjects:
		dst.Projects = src.Projects
	case content.SectionPapers:
		dst.Papers = src.Papers
	case content.SectionAwards:
		dst.Awards = src.Awards
	case content.SectionPatents:
		dst.Patents = src.Patents
	case content.SectionSeminars:
		dst.Seminars = src.Seminars
	}
	s.snapshot.Revisions[section] = rev
	s.snapshot.Loaded[section] = true
	return true
}

func (s *Store) ensureMaps() {
	if s.snapshot.Revisions == nil {
		s.snapshot.Revisions = make(map[content.Section]uint64)
	}
	if s.snapshot.Loaded == nil {
		s.snapshot.Loaded = make(map[content.Section]bool)
	}
	if s.snapshot.Errors == nil {
		s.snapshot.Errors = make(map[content.Section]error)
	}
}

func revision(v any) (uint64, error) {
	return hashstructure.Hash(v, hashstructure.FormatV2, nil)
}

func cloneBundle(b content.Bundle) content.Bundle {
	out := content.Bundle{
		Home: content.Home{
			Slides:   cloneSlice(b.Home.Slides),
			Schedule: cloneSlice(b.Home.Schedule),
			Projects: cloneSlice(b.Home.Projects),
			News:     cloneSlice(b.Home.News),
		},
		Projects: cloneSlice(b.Projects),
		Papers:   cloneSlice(b.Papers),
		Awards:   cloneSlice(b.Awards),
		Patents:  cloneSlice(b.Patents),
		Seminars: cloneSlice(b.Seminars),
	}
	for i := range out.Projects {
		out.Projects[i].Participants = cloneSlice(out.Projects[i].Participants)
	}
	return out
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
