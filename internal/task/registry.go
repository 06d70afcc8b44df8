package task

import (
	"sync"

	"github.com/ForkFiesta/note-graph-service/internal/app"
)

// AppTaskFactory builds a task from the application container.
// A factory may return (nil, nil) when the task is disabled by config.
type AppTaskFactory func(appContainer *app.App) (Task, error)

// taskRegistry global task registry
var (
	taskRegistry  []AppTaskFactory
	registryMutex sync.RWMutex
)

// RegisterWithApp registers a task factory, usually from an init() in the
// task's own file.
func RegisterWithApp(factory AppTaskFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	taskRegistry = append(taskRegistry, factory)
}

// GetFactories returns a copy of all registered task factories
func GetFactories() []AppTaskFactory {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factories := make([]AppTaskFactory, len(taskRegistry))
	copy(factories, taskRegistry)
	return factories
}
