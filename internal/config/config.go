package config

import "time"

// Config is the root configuration for a response pipeline run.
type Config struct {
	Instance   InstanceConfig   `yaml:"instance"`
	Data       DataConfig       `yaml:"data"`
	Market     MarketConfig     `yaml:"market"`
	Response   ResponseConfig   `yaml:"response"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Database   DBConfig         `yaml:"database"`
	Store      StoreConfig      `yaml:"store"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Classifier ClassifierConfig `yaml:"classifier"`
}

// InstanceConfig identifies this pipeline run.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// DataConfig locates the raw day files and names the passes to run.
type DataConfig struct {
	Dir     string   `yaml:"dir"`     // root holding original_data_{year}/ subdirs
	Tickers []string `yaml:"tickers"` // e.g. ["AAPL", "MSFT"]
	Days    []string `yaml:"days"`    // ISO dates, e.g. ["2008-01-02"]
}

// MarketConfig holds the per-market time bounds, in seconds since midnight.
//
// The session bounds filter raw change series; the window bounds define the
// analysis grid. The session opens before the window so the resampler can
// seed the first grid seconds from pre-window observations.
type MarketConfig struct {
	SessionOpenSecond  int64 `yaml:"session_open_second"`
	SessionCloseSecond int64 `yaml:"session_close_second"`
	WindowOpenSecond   int64 `yaml:"window_open_second"`
	WindowCloseSecond  int64 `yaml:"window_close_second"`
}

// ResponseConfig holds lagged-response settings.
type ResponseConfig struct {
	MaxLag int `yaml:"max_lag"` // lag bank size in seconds
}

// PipelineConfig holds parallel-map settings.
type PipelineConfig struct {
	Workers    int `yaml:"workers"`     // concurrent day passes
	BufferSize int `yaml:"buffer_size"` // result queue initial capacity
}

// ClassifierConfig selects the trade-sign strategy.
type ClassifierConfig struct {
	Strategy string `yaml:"strategy"` // "linkage" or "tickrule"
}

// DBConfig holds the result cache database connection. An empty host
// disables persistence.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// Enabled reports whether a database was configured.
func (db DBConfig) Enabled() bool { return db.Host != "" }

// StoreConfig holds batch writer settings.
type StoreConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}

// MetricsConfig holds Prometheus metrics settings. Port 0 disables the
// metrics server.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
