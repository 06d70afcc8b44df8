package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForkFiesta/note-graph-service/internal/domain"
)

func collectBacklinks(s *Store, title string) []string {
	var titles []string
	for note := range s.Backlinks(title) {
		titles = append(titles, note.Title)
	}
	return titles
}

func collectDangling(s *Store) []domain.Link {
	var links []domain.Link
	for link := range s.DanglingLinks() {
		links = append(links, link)
	}
	return links
}

func TestAddOrUpdateNote_ParsesLinks(t *testing.T) {
	s := NewStore()

	note := s.AddOrUpdateNote("HTML", "See [[CSS]] and [[JavaScript|JS Basics]]")
	require.NotNil(t, note)
	require.Len(t, note.Links, 2)

	assert.Equal(t, "HTML", note.Links[0].SourceTitle)
	assert.Equal(t, "CSS", note.Links[0].TargetTitle)
	assert.Equal(t, "", note.Links[0].Alias)
	assert.Equal(t, "JavaScript", note.Links[1].TargetTitle)
	assert.Equal(t, "JS Basics", note.Links[1].Alias)

	fold := s.Fold
	assert.True(t, note.HasLinkTo("CSS", fold))
	assert.False(t, note.HasLinkTo("HTML", fold))
}

func TestAddOrUpdateNote_EmptyBody(t *testing.T) {
	s := NewStore()

	note := s.AddOrUpdateNote("Empty", "")
	require.NotNil(t, note)
	assert.Empty(t, note.Links)

	got, ok := s.Get("Empty")
	require.True(t, ok)
	assert.Equal(t, "Empty", got.Title)
}

func TestAddOrUpdateNote_DuplicateTitleIsUpdate(t *testing.T) {
	s := NewStore()

	s.AddOrUpdateNote("Guide", "links to [[One]]")
	s.AddOrUpdateNote("Guide", "links to [[Two]]")

	assert.Equal(t, 1, s.Len())

	note, ok := s.Get("Guide")
	require.True(t, ok)
	require.Len(t, note.Links, 1)
	assert.Equal(t, "Two", note.Links[0].TargetTitle)

	// The stale edge to One must be gone.
	assert.Empty(t, collectBacklinks(s, "One"))
}

func TestRemoveNote_Idempotent(t *testing.T) {
	s := NewStore()

	s.AddOrUpdateNote("Gone", "body")
	s.RemoveNote("Gone")
	s.RemoveNote("Gone") // no-op
	s.RemoveNote("Never existed")

	assert.Equal(t, 0, s.Len())
}

func TestResolveLink(t *testing.T) {
	s := NewStore()
	s.AddOrUpdateNote("CSS", "")

	assert.True(t, s.ResolveLink("HTML", "CSS"))
	assert.False(t, s.ResolveLink("HTML", "JavaScript"))
	assert.False(t, s.ResolveLink("HTML", "css"), "exact matching by default")
}

func TestResolveLink_CaseInsensitive(t *testing.T) {
	s := NewStore(WithCaseInsensitive(true))
	s.AddOrUpdateNote("CSS", "")

	assert.True(t, s.ResolveLink("HTML", "css"))
	assert.True(t, s.ResolveLink("HTML", "CSS"))
}

// The worked example from the vault: HTML links to CSS (present) and
// JavaScript (absent); adding JavaScript later clears the dangling report.
func TestBacklinksAndDangling_Example(t *testing.T) {
	s := NewStore()

	s.AddOrUpdateNote("HTML", "See [[CSS]] and [[JavaScript|JS Basics]]")
	s.AddOrUpdateNote("CSS", "")

	assert.Equal(t, []string{"HTML"}, collectBacklinks(s, "CSS"))

	dangling := collectDangling(s)
	require.Len(t, dangling, 1)
	assert.Equal(t, "HTML", dangling[0].SourceTitle)
	assert.Equal(t, "JavaScript", dangling[0].TargetTitle)
	assert.Equal(t, "JS Basics", dangling[0].Alias)

	s.AddOrUpdateNote("JavaScript", "")
	assert.Empty(t, collectDangling(s))
	assert.Equal(t, []string{"HTML"}, collectBacklinks(s, "JavaScript"))
}

func TestRemoveNote_BacklinksBecomeDangling(t *testing.T) {
	s := NewStore()

	s.AddOrUpdateNote("A", "see [[B]]")
	s.AddOrUpdateNote("B", "see [[A]]")

	assert.Equal(t, []string{"A"}, collectBacklinks(s, "B"))
	assert.Empty(t, collectDangling(s))

	s.RemoveNote("B")

	assert.Empty(t, collectBacklinks(s, "B"), "no note may report backlinks through a removed title")

	dangling := collectDangling(s)
	require.Len(t, dangling, 1)
	assert.Equal(t, "A", dangling[0].SourceTitle)
	assert.Equal(t, "B", dangling[0].TargetTitle)

	// Re-adding the title brings the inbound edge back.
	s.AddOrUpdateNote("B", "")
	assert.Equal(t, []string{"A"}, collectBacklinks(s, "B"))
	assert.Empty(t, collectDangling(s))
}

func TestBacklinks_AbsentTitleIsEmpty(t *testing.T) {
	s := NewStore()

	s.AddOrUpdateNote("A", "see [[B]]")

	// B is linked to but does not exist, so it has no backlinks yet.
	assert.Empty(t, collectBacklinks(s, "B"))
	assert.Empty(t, collectBacklinks(s, "Never mentioned"))
}

func TestBacklinks_RestartableSequence(t *testing.T) {
	s := NewStore()
	s.AddOrUpdateNote("A", "[[Target]]")
	s.AddOrUpdateNote("B", "[[Target]] and [[Target]] again")
	s.AddOrUpdateNote("Target", "")

	seq := s.Backlinks("Target")

	first := make([]string, 0, 2)
	for note := range seq {
		first = append(first, note.Title)
	}
	assert.Equal(t, []string{"A", "B"}, first)

	// Mutate, then iterate the same sequence again: results reflect
	// current state, not a live cursor from the first pass.
	s.RemoveNote("A")
	second := make([]string, 0, 1)
	for note := range seq {
		second = append(second, note.Title)
	}
	assert.Equal(t, []string{"B"}, second)
}

func TestDanglingLinks_EveryOccurrenceReported(t *testing.T) {
	s := NewStore()
	s.AddOrUpdateNote("A", "[[Missing]] then [[Missing]] once more")

	dangling := collectDangling(s)
	require.Len(t, dangling, 2)
	for _, link := range dangling {
		assert.Equal(t, "A", link.SourceTitle)
		assert.Equal(t, "Missing", link.TargetTitle)
	}
}

func TestOutlinks_PreserveOrder(t *testing.T) {
	s := NewStore()
	s.AddOrUpdateNote("Index", "[[Third|3]] no wait, [[First]] then ![[Second]]")

	links := s.Outlinks("Index")
	require.Len(t, links, 3)
	assert.Equal(t, "Third", links[0].TargetTitle)
	assert.Equal(t, "First", links[1].TargetTitle)
	assert.Equal(t, "Second", links[2].TargetTitle)
	assert.True(t, links[2].IsEmbed)

	assert.Nil(t, s.Outlinks("Absent"))
}

func TestStat(t *testing.T) {
	s := NewStore()
	s.AddOrUpdateNote("A", "[[B]] and [[C]]")
	s.AddOrUpdateNote("B", "")

	st := s.Stat()
	assert.Equal(t, 2, st.Notes)
	assert.Equal(t, 2, st.Links)
	assert.Equal(t, 1, st.Dangling)
}

func TestTitles_Sorted(t *testing.T) {
	s := NewStore()
	s.AddOrUpdateNote("b", "")
	s.AddOrUpdateNote("a", "")
	s.AddOrUpdateNote("c", "")

	assert.Equal(t, []string{"a", "b", "c"}, s.Titles())
}
