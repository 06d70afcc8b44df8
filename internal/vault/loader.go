// Package vault loads markdown notes from a directory tree into the note
// graph and keeps them in sync with on-disk changes.
package vault

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/radovskyb/watcher"
	"go.uber.org/zap"

	"github.com/ForkFiesta/note-graph-service/internal/dto"
	"github.com/ForkFiesta/note-graph-service/internal/service"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
	"github.com/ForkFiesta/note-graph-service/pkg/safe_close"
)

// Loader scans a vault directory for .md files and upserts each one as a
// note. The note title is the slash-separated path relative to the vault
// root, without the .md extension.
type Loader struct {
	path   string
	notes  service.NoteService
	logger *zap.Logger
}

// NewLoader creates a vault loader rooted at path
func NewLoader(path string, notes service.NoteService, logger *zap.Logger) (*Loader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Loader{
		path:   abs,
		notes:  notes,
		logger: logger,
	}, nil
}

// Load walks the vault and upserts every markdown file. Hidden directories
// (".obsidian" and friends) are skipped. Returns the number of notes loaded;
// unreadable files are logged and skipped.
func (l *Loader) Load(ctx context.Context) (int, error) {
	count := 0
	err := filepath.WalkDir(l.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		if err := l.upsertFile(ctx, path); err != nil {
			l.logger.Warn("vault file skipped",
				zap.String("path", path),
				zap.Error(err))
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return count, code.ErrorVaultScan.Clone().WithDetails(err.Error())
	}

	l.logger.Info("vault loaded",
		zap.String("path", l.path),
		zap.Int("notes", count))
	return count, nil
}

// Watch keeps the graph in sync with the vault directory until the close
// signal fires. Uses a polling watcher so network mounts behave.
func (l *Loader) Watch(sc *safe_close.SafeClose, interval time.Duration) {
	w := watcher.New()
	w.FilterOps(watcher.Create, watcher.Write, watcher.Remove, watcher.Rename, watcher.Move)

	sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		go func() {
			<-closeSignal
			w.Close()
		}()

		go l.handleEvents(w)

		if err := w.AddRecursive(l.path); err != nil {
			l.logger.Error("vault watcher add error", zap.Error(err))
			return
		}
		if err := w.Start(interval); err != nil {
			l.logger.Error("vault watcher start error", zap.Error(err))
		}
	})
}

// handleEvents applies watcher events to the note graph
func (l *Loader) handleEvents(w *watcher.Watcher) {
	ctx := context.Background()
	for {
		select {
		case event := <-w.Event:
			if event.IsDir() || !strings.HasSuffix(event.Path, ".md") {
				continue
			}
			l.applyEvent(ctx, event)
		case err := <-w.Error:
			l.logger.Error("vault watcher error", zap.Error(err))
		case <-w.Closed:
			l.logger.Info("vault watcher closed")
			return
		}
	}
}

func (l *Loader) applyEvent(ctx context.Context, event watcher.Event) {
	switch event.Op {
	case watcher.Create, watcher.Write:
		if err := l.upsertFile(ctx, event.Path); err != nil {
			l.logger.Warn("vault change not applied",
				zap.String("path", event.Path),
				zap.Error(err))
			return
		}
		l.logger.Debug("vault change applied",
			zap.String("op", event.Op.String()),
			zap.String("path", event.Path))
	case watcher.Remove:
		l.removePath(ctx, event.Path)
	case watcher.Rename, watcher.Move:
		l.removePath(ctx, event.OldPath)
		if err := l.upsertFile(ctx, event.Path); err != nil {
			l.logger.Warn("vault change not applied",
				zap.String("path", event.Path),
				zap.Error(err))
		}
	}
}

// upsertFile reads one markdown file and upserts it as a note
func (l *Loader) upsertFile(ctx context.Context, path string) error {
	title, err := l.titleFromPath(path)
	if err != nil {
		return err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = l.notes.Upsert(ctx, &dto.NoteUpsertRequest{
		Title: title,
		Body:  string(body),
	})
	return err
}

// removePath deletes the note backed by a vanished file
func (l *Loader) removePath(ctx context.Context, path string) {
	title, err := l.titleFromPath(path)
	if err != nil {
		return
	}
	if err := l.notes.Delete(ctx, &dto.NoteDeleteRequest{Title: title}); err != nil {
		l.logger.Warn("vault removal not applied",
			zap.String("path", path),
			zap.Error(err))
		return
	}
	l.logger.Debug("vault removal applied", zap.String("title", title))
}

// titleFromPath maps a file path to its note title: the slash-separated
// relative path without the .md extension.
func (l *Loader) titleFromPath(path string) (string, error) {
	rel, err := filepath.Rel(l.path, path)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), ".md"), nil
}
