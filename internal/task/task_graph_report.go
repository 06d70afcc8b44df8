package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ForkFiesta/note-graph-service/internal/app"
	"github.com/ForkFiesta/note-graph-service/internal/metrics"
)

// GraphReportTask periodically counts notes and dangling links, refreshes
// the prometheus gauges, and logs unresolved targets.
type GraphReportTask struct {
	app      *app.App
	interval time.Duration
	logger   *zap.Logger
}

// Name returns the task name
func (t *GraphReportTask) Name() string {
	return "GraphReport"
}

// LoopInterval returns the execution interval
func (t *GraphReportTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun runs the census once at startup
func (t *GraphReportTask) IsStartupRun() bool {
	return true
}

// Run executes the census
func (t *GraphReportTask) Run(ctx context.Context) error {
	st := t.app.Graph.Stat()
	metrics.Update(st)

	if st.Dangling == 0 {
		t.logger.Info("task log",
			zap.String("task", t.Name()),
			zap.Int("notes", st.Notes),
			zap.Int("links", st.Links))
		return nil
	}

	// Name the unresolved targets so vault owners can fix them.
	targets := make(map[string]int)
	for link := range t.app.Graph.DanglingLinks() {
		targets[link.TargetTitle]++
	}
	t.logger.Warn("task log",
		zap.String("task", t.Name()),
		zap.Int("notes", st.Notes),
		zap.Int("links", st.Links),
		zap.Int("dangling", st.Dangling),
		zap.Any("targets", targets))

	return nil
}

// NewGraphReportTask creates the census task
func NewGraphReportTask(appContainer *app.App) (Task, error) {
	return &GraphReportTask{
		app:      appContainer,
		interval: appContainer.Config().GetDanglingReportInterval(),
		logger:   appContainer.Logger(),
	}, nil
}

// init registers the census task
func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewGraphReportTask(appContainer)
	})
}
