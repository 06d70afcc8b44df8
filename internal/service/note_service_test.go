package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ForkFiesta/note-graph-service/internal/dao"
	"github.com/ForkFiesta/note-graph-service/internal/dto"
	"github.com/ForkFiesta/note-graph-service/internal/graph"
	"github.com/ForkFiesta/note-graph-service/pkg/app"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
	"github.com/ForkFiesta/note-graph-service/pkg/util"
)

// testEnv bundles the wired service layer over an in-memory database
type testEnv struct {
	dao      *dao.Dao
	graph    *graph.Store
	notes    NoteService
	graphSvc GraphService
}

func newTestEnv(t *testing.T, opts ...graph.Option) *testEnv {
	t.Helper()

	cfg := dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}
	db, err := dao.NewDBEngineWithConfig(cfg, zap.NewNop())
	require.NoError(t, err)

	d := dao.New(db, context.Background(), dao.WithConfig(&cfg))
	g := graph.NewStore(opts...)
	noteRepo := dao.NewNoteRepository(d)
	linkRepo := dao.NewNoteLinkRepository(d)

	return &testEnv{
		dao:      d,
		graph:    g,
		notes:    NewNoteService(noteRepo, linkRepo, g, zap.NewNop()),
		graphSvc: NewGraphService(g, zap.NewNop()),
	}
}

func TestNoteService_UpsertAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{
		Title: "HTML",
		Body:  "See [[CSS]] and [[JavaScript|JS Basics]].",
	})
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))
	assert.Equal(t, "HTML", created.Title)
	require.Len(t, created.Links, 2)
	assert.Equal(t, "CSS", created.Links[0].TargetTitle)
	assert.Equal(t, "JS Basics", created.Links[1].Alias)

	got, err := env.notes.Get(ctx, &dto.NoteGetRequest{Title: "HTML"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "See [[CSS]] and [[JavaScript|JS Basics]].", got.Body)
	assert.Len(t, got.Links, 2)
}

func TestNoteService_GetMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.notes.Get(context.Background(), &dto.NoteGetRequest{Title: "Nope"})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_UpsertTwiceIsUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "Note", Body: "[[Old]]"})
	require.NoError(t, err)

	second, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "Note", Body: "[[New]]"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, count, err := env.notes.List(ctx, &dto.NoteListRequest{}, &app.Pager{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	links := env.graph.Outlinks("Note")
	require.Len(t, links, 1)
	assert.Equal(t, "New", links[0].TargetTitle)
}

func TestNoteService_DeleteIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.notes.Delete(ctx, &dto.NoteDeleteRequest{Title: "Ghost"}))

	_, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "Real", Body: "body"})
	require.NoError(t, err)
	require.NoError(t, env.notes.Delete(ctx, &dto.NoteDeleteRequest{Title: "Real"}))
	require.NoError(t, env.notes.Delete(ctx, &dto.NoteDeleteRequest{Title: "Real"}))

	_, err = env.notes.Get(ctx, &dto.NoteGetRequest{Title: "Real"})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_List(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: title, Body: ""})
		require.NoError(t, err)
	}

	results, count, err := env.notes.List(ctx, &dto.NoteListRequest{}, &app.Pager{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, results, 2)
	assert.Equal(t, "Alpha", results[0].Title)
	assert.Equal(t, "Beta", results[1].Title)

	results, count, err = env.notes.List(ctx, &dto.NoteListRequest{Keyword: "amm"}, &app.Pager{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, results, 1)
	assert.Equal(t, "Gamma", results[0].Title)
}

func TestNoteService_RebuildRestoresGraph(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "HTML", Body: "[[CSS]] [[Missing]]"})
	require.NoError(t, err)
	_, err = env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "CSS", Body: "styles"})
	require.NoError(t, err)

	// A fresh graph over the same database must come back identical.
	rebuilt := graph.NewStore()
	svc := NewNoteService(dao.NewNoteRepository(env.dao), dao.NewNoteLinkRepository(env.dao), rebuilt, zap.NewNop())
	require.NoError(t, svc.Rebuild(ctx))

	st := rebuilt.Stat()
	assert.Equal(t, 2, st.Notes)
	assert.Equal(t, 2, st.Links)
	assert.Equal(t, 1, st.Dangling)

	links := rebuilt.Outlinks("HTML")
	require.Len(t, links, 2)
	assert.Equal(t, "CSS", links[0].TargetTitle)
	assert.Equal(t, "Missing", links[1].TargetTitle)
}

func TestNoteService_CaseInsensitiveTitles(t *testing.T) {
	env := newTestEnv(t, graph.WithCaseInsensitive(true))
	ctx := context.Background()

	_, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "JavaScript", Body: "v1"})
	require.NoError(t, err)
	_, err = env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "javascript", Body: "v2"})
	require.NoError(t, err)

	_, count, err := env.notes.List(ctx, &dto.NoteListRequest{}, &app.Pager{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := env.notes.Get(ctx, &dto.NoteGetRequest{Title: "JAVASCRIPT"})
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Body)
}

func TestNoteService_CaseInsensitiveLinkHashesMatchNotes(t *testing.T) {
	env := newTestEnv(t, graph.WithCaseInsensitive(true))
	ctx := context.Background()

	html, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "HTML", Body: "See [[JavaScript]]."})
	require.NoError(t, err)
	_, err = env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "javascript", Body: "scripting"})
	require.NoError(t, err)

	// Persisted link hashes are computed over the folded target, so they
	// join against note rows regardless of the casing either side used.
	foldedHash := util.EncodeHash32(env.graph.Fold("JavaScript"))

	target, err := dao.NewNoteRepository(env.dao).GetByTitleHash(ctx, foldedHash)
	require.NoError(t, err)
	assert.Equal(t, "javascript", target.Title)

	links, err := dao.NewNoteLinkRepository(env.dao).ListBySourceNoteID(ctx, html.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, foldedHash, links[0].TargetTitleHash)
}
