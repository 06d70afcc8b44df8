package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForkFiesta/note-graph-service/internal/dto"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
)

func TestGraphService_BacklinksAndDangling(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{
		Title: "HTML",
		Body:  "Links to [[CSS]] and [[JavaScript|JS Basics]].",
	})
	require.NoError(t, err)
	_, err = env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "CSS", Body: "Styling."})
	require.NoError(t, err)

	backlinks, err := env.graphSvc.Backlinks(ctx, &dto.LinkQueryRequest{Title: "CSS"})
	require.NoError(t, err)
	require.Len(t, backlinks, 1)
	assert.Equal(t, "HTML", backlinks[0].Title)

	// Nothing links to HTML yet.
	backlinks, err = env.graphSvc.Backlinks(ctx, &dto.LinkQueryRequest{Title: "HTML"})
	require.NoError(t, err)
	assert.Empty(t, backlinks)

	dangling := env.graphSvc.Dangling(ctx)
	require.Len(t, dangling, 1)
	assert.Equal(t, "HTML", dangling[0].SourceTitle)
	assert.Equal(t, "JavaScript", dangling[0].TargetTitle)
	assert.Equal(t, "JS Basics", dangling[0].Alias)

	// Creating the missing target clears the dangling record.
	_, err = env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "JavaScript", Body: "Scripting."})
	require.NoError(t, err)
	assert.Empty(t, env.graphSvc.Dangling(ctx))
}

func TestGraphService_Outlinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{
		Title: "Index",
		Body:  "[[B]] then [[A]] then ![[Img]]",
	})
	require.NoError(t, err)

	items, err := env.graphSvc.Outlinks(ctx, &dto.LinkQueryRequest{Title: "Index"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "B", items[0].TargetTitle)
	assert.Equal(t, "A", items[1].TargetTitle)
	assert.Equal(t, "Img", items[2].TargetTitle)
	assert.True(t, items[2].IsEmbed)

	_, err = env.graphSvc.Outlinks(ctx, &dto.LinkQueryRequest{Title: "Missing"})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestGraphService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "CSS", Body: ""})
	require.NoError(t, err)

	res := env.graphSvc.Resolve(ctx, &dto.ResolveRequest{Source: "HTML", Target: "CSS"})
	assert.True(t, res.Resolved)
	assert.Equal(t, "CSS", res.Target)

	res = env.graphSvc.Resolve(ctx, &dto.ResolveRequest{Target: "JavaScript"})
	assert.False(t, res.Resolved)
}

func TestGraphService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "A", Body: "[[B]] [[C]]"})
	require.NoError(t, err)
	_, err = env.notes.Upsert(ctx, &dto.NoteUpsertRequest{Title: "B", Body: "[[A]]"})
	require.NoError(t, err)

	stats := env.graphSvc.Stats(ctx)
	assert.Equal(t, 2, stats.Notes)
	assert.Equal(t, 3, stats.Links)
	assert.Equal(t, 1, stats.Dangling)
}
