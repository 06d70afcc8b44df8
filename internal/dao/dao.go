// Package dao implements the data access layer
package dao

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/ForkFiesta/note-graph-service/internal/model"
	"github.com/ForkFiesta/note-graph-service/pkg/fileurl"
)

// DatabaseConfig carries the database settings the DAO layer needs.
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao bundles the database handle shared by all repositories.
type Dao struct {
	Db       *gorm.DB
	ctx      context.Context
	config   *DatabaseConfig
	logger   *zap.Logger
	onceKeys sync.Map
}

// Option configures a Dao.
type Option func(*Dao)

// WithConfig injects the database config.
func WithConfig(cfg *DatabaseConfig) Option {
	return func(d *Dao) { d.config = cfg }
}

// WithLogger injects the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dao) { d.logger = logger }
}

// New creates a Dao around an open gorm handle.
func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{Db: db, ctx: ctx}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// DB returns the underlying gorm handle.
func (d *Dao) DB() *gorm.DB {
	return d.Db
}

// migrateOnce runs the model migration a single time per key.
func (d *Dao) migrateOnce(key, modelName string) {
	if _, loaded := d.onceKeys.LoadOrStore(key+"#migrated", true); !loaded {
		if err := model.AutoMigrate(d.Db, modelName); err != nil {
			d.logger.Error("auto migrate failed",
				zap.String("model", modelName),
				zap.Error(err))
		}
	}
}

// NewDBEngineWithConfig opens the database described by the config and
// applies pool settings.
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector := newDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	logMode := gormlogger.Default.LogMode(gormlogger.Silent)
	if c.RunMode == "debug" {
		logMode = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logMode,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	if lifetime, err := time.ParseDuration(c.ConnMaxLifetime); err == nil && lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	}
	if idleTime, err := time.ParseDuration(c.ConnMaxIdleTime); err == nil && idleTime > 0 {
		sqlDB.SetConnMaxIdleTime(idleTime)
	}

	if lg != nil {
		lg.Info("database engine ready", zap.String("type", c.Type))
	}

	return db, nil
}

func newDialector(c DatabaseConfig) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "sqlite" {
		if !fileurl.IsExist(c.Path) {
			_ = fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
