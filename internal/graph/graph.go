// Package graph implements the in-memory note graph store: a mapping from
// title to note plus the derived set of edges formed by wiki-style links.
// The graph owns no persistence; it is loaded by collaborators and rebuilt
// or incrementally updated whenever notes change.
package graph

import (
	"iter"
	"sort"
	"strings"
	"sync"

	"github.com/ForkFiesta/note-graph-service/internal/domain"
	"github.com/ForkFiesta/note-graph-service/pkg/wikilink"
)

// Store maintains the set of notes and answers link-resolution queries.
// All operations are total functions over their inputs: upserting an
// existing title is an update, removing an absent title is a no-op, and a
// link to a missing title is merely a dangling reference to be reported.
type Store struct {
	mu              sync.RWMutex
	caseInsensitive bool
	notes           map[string]*domain.Note       // fold(title) -> note
	inbound         map[string]map[string]string  // fold(target) -> fold(source) -> source title
}

// Option configures a Store.
type Option func(*Store)

// WithCaseInsensitive makes title matching case-insensitive. The default is
// exact matching.
func WithCaseInsensitive(enabled bool) Option {
	return func(s *Store) { s.caseInsensitive = enabled }
}

// NewStore creates an empty note graph store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		notes:   make(map[string]*domain.Note),
		inbound: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fold normalizes a title according to the configured case sensitivity.
func (s *Store) Fold(title string) string {
	if s.caseInsensitive {
		return strings.ToLower(title)
	}
	return title
}

// AddOrUpdateNote inserts a new note or replaces the body of an existing
// one, re-parsing outbound links from the body. An empty body is valid.
// Returns the updated note.
func (s *Store) AddOrUpdateNote(title, body string) *domain.Note {
	links := parseLinks(title, body)

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.Fold(title)
	if old, ok := s.notes[key]; ok {
		s.dropEdgesLocked(key, old)
	}

	note := &domain.Note{
		Title: title,
		Body:  body,
		Links: links,
	}
	s.notes[key] = note
	s.addEdgesLocked(key, note)

	return note
}

// RemoveNote deletes the note if present. Removing an absent title is a
// no-op; formerly resolved links to the title become dangling.
func (s *Store) RemoveNote(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.Fold(title)
	note, ok := s.notes[key]
	if !ok {
		return
	}
	s.dropEdgesLocked(key, note)
	delete(s.notes, key)
}

// Get returns the note with the given title, if any.
func (s *Store) Get(title string) (*domain.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[s.Fold(title)]
	return note, ok
}

// ResolveLink reports whether a note with targetTitle exists; used to
// distinguish resolved from dangling links. The source title does not
// affect resolution but keeps the query symmetric with the edge it checks.
func (s *Store) ResolveLink(sourceTitle, targetTitle string) bool {
	_ = sourceTitle

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.notes[s.Fold(targetTitle)]
	return ok
}

// Backlinks returns a finite, restartable sequence of all notes containing
// at least one link targeting title. A title with no note yields an empty
// sequence even when links point at it; the edges resurface once the note
// is added. The result is recomputed from current state on each iteration,
// ordered by source title.
func (s *Store) Backlinks(title string) iter.Seq[*domain.Note] {
	return func(yield func(*domain.Note) bool) {
		for _, note := range s.backlinkSnapshot(title) {
			if !yield(note) {
				return
			}
		}
	}
}

// DanglingLinks returns a lazy sequence of every link whose target does not
// resolve to an existing note, ordered by source title and occurrence.
func (s *Store) DanglingLinks() iter.Seq[domain.Link] {
	return func(yield func(domain.Link) bool) {
		for _, link := range s.danglingSnapshot() {
			if !yield(link) {
				return
			}
		}
	}
}

// Outlinks returns the ordered outbound link sequence of a note, or nil if
// the note does not exist.
func (s *Store) Outlinks(title string) []domain.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[s.Fold(title)]
	if !ok {
		return nil
	}
	links := make([]domain.Link, len(note.Links))
	copy(links, note.Links)
	return links
}

// Titles returns all note titles in sorted order.
func (s *Store) Titles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := make([]string, 0, len(s.notes))
	for _, note := range s.notes {
		titles = append(titles, note.Title)
	}
	sort.Strings(titles)
	return titles
}

// Len returns the number of notes in the graph.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Stats summarizes the current graph state.
type Stats struct {
	Notes    int
	Links    int
	Dangling int
}

// Stat counts notes, link occurrences, and dangling link occurrences.
func (s *Store) Stat() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Notes: len(s.notes)}
	for _, note := range s.notes {
		st.Links += len(note.Links)
		for _, link := range note.Links {
			if _, ok := s.notes[s.Fold(link.TargetTitle)]; !ok {
				st.Dangling++
			}
		}
	}
	return st
}

// backlinkSnapshot collects the notes linking to title under a read lock.
// Only existing notes have backlinks; inbound edges to an absent title stay
// in the index but are not reported until the note exists.
func (s *Store) backlinkSnapshot(title string) []*domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := s.Fold(title)
	if _, ok := s.notes[key]; !ok {
		return nil
	}

	sources, ok := s.inbound[key]
	if !ok || len(sources) == 0 {
		return nil
	}

	keys := make([]string, 0, len(sources))
	for key := range sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	notes := make([]*domain.Note, 0, len(keys))
	for _, key := range keys {
		if note, ok := s.notes[key]; ok {
			notes = append(notes, note)
		}
	}
	return notes
}

// danglingSnapshot collects every unresolved link occurrence under a read lock.
func (s *Store) danglingSnapshot() []domain.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.notes))
	for key := range s.notes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var dangling []domain.Link
	for _, key := range keys {
		note := s.notes[key]
		for _, link := range note.Links {
			if _, ok := s.notes[s.Fold(link.TargetTitle)]; !ok {
				dangling = append(dangling, link)
			}
		}
	}
	return dangling
}

// addEdgesLocked records the note's outbound links in the inbound index.
// Caller must hold s.mu for write.
func (s *Store) addEdgesLocked(sourceKey string, note *domain.Note) {
	for _, link := range note.Links {
		targetKey := s.Fold(link.TargetTitle)
		sources, ok := s.inbound[targetKey]
		if !ok {
			sources = make(map[string]string)
			s.inbound[targetKey] = sources
		}
		sources[sourceKey] = note.Title
	}
}

// dropEdgesLocked removes the note's outbound links from the inbound index.
// Caller must hold s.mu for write.
func (s *Store) dropEdgesLocked(sourceKey string, note *domain.Note) {
	for _, link := range note.Links {
		targetKey := s.Fold(link.TargetTitle)
		if sources, ok := s.inbound[targetKey]; ok {
			delete(sources, sourceKey)
			if len(sources) == 0 {
				delete(s.inbound, targetKey)
			}
		}
	}
}

// parseLinks converts the wiki-link occurrences of a body into domain links.
func parseLinks(sourceTitle, body string) []domain.Link {
	parsed := wikilink.Parse(body)
	if len(parsed) == 0 {
		return nil
	}
	links := make([]domain.Link, len(parsed))
	for i, p := range parsed {
		links[i] = domain.Link{
			SourceTitle: sourceTitle,
			TargetTitle: p.Target,
			Alias:       p.Alias,
			IsEmbed:     p.IsEmbed,
		}
	}
	return links
}
