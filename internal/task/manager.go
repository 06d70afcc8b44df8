package task

import (
	"go.uber.org/zap"

	"github.com/ForkFiesta/note-graph-service/internal/app"
	"github.com/ForkFiesta/note-graph-service/pkg/safe_close"
)

// Manager creates and manages all background tasks
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager creates a task manager
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, appContainer *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       appContainer,
	}
}

// RegisterTasks builds every registered task from its factory
func (m *Manager) RegisterTasks() error {
	for _, factory := range GetFactories() {
		task, err := factory(m.app)
		if err != nil {
			m.logger.Warn("failed to create task", zap.Error(err))
			return err
		}
		if task == nil {
			// disabled by configuration
			continue
		}
		m.scheduler.AddTask(task)
	}
	return nil
}

// Start starts all registered tasks
func (m *Manager) Start() {
	m.scheduler.Start()
}
