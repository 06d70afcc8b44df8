// Package app provides the application container holding all dependencies
// and services.
package app

// Version information, injected at build time
var (
	Version   string = "1.2.0"
	GitTag    string = "2000.01.01.release"
	BuildTime string = "2000-01-01T00:00:00+0800"
)

const (
	// Name application name
	Name = "Note Graph Service"
)
