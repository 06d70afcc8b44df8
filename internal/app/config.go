// Package app provides the application container holding all dependencies
// and services.
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig application configuration
type AppConfig struct {
	File     string         `yaml:"-"` // config file path, not serialized
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Graph    GraphConfig    `yaml:"graph"`
	Vault    VaultConfig    `yaml:"vault"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig logging configuration
type LogConfig struct {
	// Level log level, see zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File log file path, empty means stderr only
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production enables JSON output
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig server configuration
type ServerConfig struct {
	// RunMode gin run mode
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort public HTTP listen address
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout read timeout in seconds
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout write timeout in seconds
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen private HTTP listen address (metrics, pprof)
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	// Type database type, sqlite or mysql
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite database file path
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName mysql user
	UserName string `yaml:"username"`
	// Password mysql password
	Password string `yaml:"password"`
	// Host mysql host
	Host string `yaml:"host"`
	// Name mysql database name
	Name string `yaml:"name"`
	// TablePrefix table name prefix
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate enables schema auto migration
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset mysql charset
	Charset string `yaml:"charset"`
	// ParseTime mysql parseTime flag
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns max idle connections
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns max open connections
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime max connection lifetime, e.g. 30m, 1h
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime max idle connection lifetime, e.g. 10m, 1h
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings general application settings
type AppSettings struct {
	// DefaultPageSize default page size for list endpoints
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize max page size for list endpoints
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout request context timeout in seconds
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
}

// GraphConfig note graph configuration
type GraphConfig struct {
	// CaseInsensitive matches titles ignoring case; default is exact match
	CaseInsensitive bool `yaml:"case-insensitive" default:"false"`
	// DanglingReportInterval interval of the periodic dangling link census
	DanglingReportInterval string `yaml:"dangling-report-interval" default:"10m"`
}

// VaultConfig markdown vault configuration
type VaultConfig struct {
	// Path vault directory holding .md files; empty disables vault loading
	Path string `yaml:"path"`
	// Watch reloads notes when vault files change on disk
	Watch bool `yaml:"watch" default:"false"`
	// WatchInterval polling interval of the filesystem watcher
	WatchInterval string `yaml:"watch-interval" default:"2s"`
}

// TracerConfig request tracing configuration
type TracerConfig struct {
	// Enabled turns request tracing on
	Enabled bool `yaml:"enabled" default:"true"`
	// Header trace ID request header name
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig loads configuration from a file.
// Returns the config instance and the absolute path of the config file.
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// Set defaults again to fill fields present in YAML but left empty.
	// defaults.Set only fills fields still at their zero value.
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save writes the configuration back to its file
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetDanglingReportInterval returns the dangling census interval
func (c *AppConfig) GetDanglingReportInterval() time.Duration {
	if interval, err := time.ParseDuration(c.Graph.DanglingReportInterval); err == nil && interval > 0 {
		return interval
	}
	return 10 * time.Minute
}

// GetVaultWatchInterval returns the vault watcher polling interval
func (c *AppConfig) GetVaultWatchInterval() time.Duration {
	if interval, err := time.ParseDuration(c.Vault.WatchInterval); err == nil && interval > 0 {
		return interval
	}
	return 2 * time.Second
}
