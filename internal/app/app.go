// Package app provides the application container holding all dependencies
// and services.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ForkFiesta/note-graph-service/internal/dao"
	"github.com/ForkFiesta/note-graph-service/internal/domain"
	"github.com/ForkFiesta/note-graph-service/internal/graph"
	"github.com/ForkFiesta/note-graph-service/internal/service"
	pkgapp "github.com/ForkFiesta/note-graph-service/pkg/app"
)

// App application container holding all dependencies and services
type App struct {
	// injected infrastructure
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// in-memory note graph, the authoritative query structure
	Graph *graph.Store

	// repository layer
	NoteRepo     domain.NoteRepository
	NoteLinkRepo domain.NoteLinkRepository

	// service layer
	NoteService  service.NoteService
	GraphService service.GraphService

	// StartTime process start time, used by health reporting
	StartTime time.Time

	// shutdown control
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewApp creates the application container, wiring all dependencies, and
// warms the note graph from persistence.
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	dbConfig := &dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
	}

	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(dbConfig),
		dao.WithLogger(logger),
	)

	a.Graph = graph.NewStore(graph.WithCaseInsensitive(cfg.Graph.CaseInsensitive))

	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.NoteLinkRepo = dao.NewNoteLinkRepository(a.Dao)

	a.NoteService = service.NewNoteService(a.NoteRepo, a.NoteLinkRepo, a.Graph, logger)
	a.GraphService = service.NewGraphService(a.Graph, logger)

	// Warm the graph so queries never observe a partially loaded state.
	if err := a.NoteService.Rebuild(context.Background()); err != nil {
		return nil, err
	}

	st := a.Graph.Stat()
	logger.Info("App container initialized successfully",
		zap.Int("notes", st.Notes),
		zap.Int("links", st.Links),
		zap.Int("dangling", st.Dangling))

	return a, nil
}

// Close releases resources held by the container
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config returns the application configuration
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger returns the logger
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version returns the build version information
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// IsProductionMode reports whether production logging is enabled
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// DefaultShutdownTimeout default shutdown timeout
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown gracefully closes the container: waits for background
// operations, then closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	select {
	case <-a.shutdownCh:
		// already shut down
		return nil
	default:
		close(a.shutdownCh)
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
	}

	if err := a.Close(); err != nil {
		return err
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown reports whether shutdown has begun
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh returns the shutdown signal channel
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation tracks a background operation for graceful shutdown.
// The returned function must be called when the operation finishes.
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
