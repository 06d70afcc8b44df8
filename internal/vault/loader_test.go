package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ForkFiesta/note-graph-service/internal/dao"
	"github.com/ForkFiesta/note-graph-service/internal/graph"
	"github.com/ForkFiesta/note-graph-service/internal/service"
)

func newTestLoader(t *testing.T, dir string) (*Loader, *graph.Store) {
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
	g := graph.NewStore()
	svc := service.NewNoteService(dao.NewNoteRepository(d), dao.NewNoteLinkRepository(d), g, zap.NewNop())

	loader, err := NewLoader(dir, svc, zap.NewNop())
	require.NoError(t, err)
	return loader, g
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "HTML.md"), "Links to [[CSS]].")
	writeFile(t, filepath.Join(dir, "guides", "CSS.md"), "Styling notes.")
	writeFile(t, filepath.Join(dir, ".obsidian", "workspace.md"), "ignored")
	writeFile(t, filepath.Join(dir, "todo.txt"), "not a note")

	loader, g := newTestLoader(t, dir)

	count, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, []string{"HTML", "guides/CSS"}, g.Titles())

	// Titles are paths, so a bare [[CSS]] does not resolve to guides/CSS.
	assert.False(t, g.ResolveLink("HTML", "CSS"))
	assert.True(t, g.ResolveLink("HTML", "guides/CSS"))
}

func TestLoader_TitleFromPath(t *testing.T) {
	dir := t.TempDir()
	loader, _ := newTestLoader(t, dir)

	title, err := loader.titleFromPath(filepath.Join(dir, "a", "b", "Note.md"))
	require.NoError(t, err)
	assert.Equal(t, "a/b/Note", title)
}

func TestLoader_LoadEmptyVault(t *testing.T) {
	dir := t.TempDir()
	loader, g := newTestLoader(t, dir)

	count, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, g.Len())
}
