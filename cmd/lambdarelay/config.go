package main

import (
	"time"

	"github.com/tinytelemetry/lambdarelay/internal/model"
)

const (
	defaultBindHost       = "127.0.0.1"
	defaultPort           = 8080
	defaultContextName    = model.DefaultContextName
	defaultForwardTimeout = model.DefaultForwardTimeout
	defaultMaxBodyBytes   = model.DefaultMaxBodyBytes
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Addr               string        `mapstructure:"addr"`
	IngestURL          string        `mapstructure:"ingest-url"`
	ProjectID          string        `mapstructure:"project-id"`
	PublicKey          string        `mapstructure:"public-key"`
	RoutesFile         string        `mapstructure:"routes-file"`
	ContextName        string        `mapstructure:"context-name"`
	ForwardTimeout     time.Duration `mapstructure:"forward-timeout"`
	SwallowBatchErrors bool          `mapstructure:"swallow-batch-errors"`
	MaxBodyBytes       int64         `mapstructure:"max-body-bytes"`
	LogPath            string        `mapstructure:"log-path"`
	ConfigPath         string        `mapstructure:"-"` // not from config file
}
