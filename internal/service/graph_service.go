package service

import (
	"context"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/ForkFiesta/note-graph-service/internal/dto"
	"github.com/ForkFiesta/note-graph-service/internal/graph"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
)

// GraphService answers link queries against the in-memory note graph
type GraphService interface {
	// Backlinks lists the notes containing at least one link to the title
	Backlinks(ctx context.Context, params *dto.LinkQueryRequest) ([]*dto.NoteDTO, error)

	// Outlinks lists the outbound link occurrences of a note, in order
	Outlinks(ctx context.Context, params *dto.LinkQueryRequest) ([]dto.NoteLinkItem, error)

	// Dangling lists every link occurrence whose target is not a note
	Dangling(ctx context.Context) []dto.NoteLinkItem

	// Resolve reports whether a link target resolves to an existing note
	Resolve(ctx context.Context, params *dto.ResolveRequest) *dto.ResolveResponse

	// Stats summarizes the current graph
	Stats(ctx context.Context) *dto.GraphStatsResponse
}

// graphService implements GraphService interface
type graphService struct {
	graph  *graph.Store
	logger *zap.Logger
}

// NewGraphService creates a GraphService instance
func NewGraphService(g *graph.Store, logger *zap.Logger) GraphService {
	return &graphService{
		graph:  g,
		logger: logger,
	}
}

// Backlinks lists the notes linking to the given title. A title with no
// inbound links yields an empty list, whether or not the note exists.
func (s *graphService) Backlinks(ctx context.Context, params *dto.LinkQueryRequest) ([]*dto.NoteDTO, error) {
	results := []*dto.NoteDTO{}
	for note := range s.graph.Backlinks(params.Title) {
		results = append(results, toDTO(note))
	}
	return results, nil
}

// Outlinks lists the outbound links of a note in order of appearance
func (s *graphService) Outlinks(ctx context.Context, params *dto.LinkQueryRequest) ([]dto.NoteLinkItem, error) {
	if _, ok := s.graph.Get(params.Title); !ok {
		return nil, code.ErrorNoteNotFound
	}

	links := s.graph.Outlinks(params.Title)
	items := make([]dto.NoteLinkItem, 0, len(links))
	for _, link := range links {
		item := dto.NoteLinkItem{}
		_ = copier.Copy(&item, link)
		items = append(items, item)
	}
	return items, nil
}

// Dangling lists every unresolved link occurrence in the graph
func (s *graphService) Dangling(ctx context.Context) []dto.NoteLinkItem {
	items := []dto.NoteLinkItem{}
	for link := range s.graph.DanglingLinks() {
		item := dto.NoteLinkItem{}
		_ = copier.Copy(&item, link)
		items = append(items, item)
	}
	return items
}

// Resolve reports whether a link from source to target resolves
func (s *graphService) Resolve(ctx context.Context, params *dto.ResolveRequest) *dto.ResolveResponse {
	return &dto.ResolveResponse{
		Source:   params.Source,
		Target:   params.Target,
		Resolved: s.graph.ResolveLink(params.Source, params.Target),
	}
}

// Stats summarizes the current graph
func (s *graphService) Stats(ctx context.Context) *dto.GraphStatsResponse {
	st := s.graph.Stat()
	return &dto.GraphStatsResponse{
		Notes:    st.Notes,
		Links:    st.Links,
		Dangling: st.Dangling,
	}
}

// Ensure graphService implements GraphService interface
var _ GraphService = (*graphService)(nil)
