package config

import (
	"runtime"
	"time"
)

// Default values for optional configuration fields. The market defaults are
// the NASDAQ session (09:30-16:00) with the 09:40-15:50 analysis window
// used throughout the response-function literature.
const (
	DefaultSessionOpenSecond  = 34200 // 09:30
	DefaultSessionCloseSecond = 57600 // 16:00
	DefaultWindowOpenSecond   = 34800 // 09:40
	DefaultWindowCloseSecond  = 57000 // 15:50
	DefaultMaxLag             = 1000
	DefaultBufferSize         = 64
	DefaultStrategy           = "linkage"
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultBatchSize          = 5000
	DefaultFlushInterval      = 1 * time.Second
	DefaultMetricsPath        = "/metrics"
)

func (c *Config) applyDefaults() {
	if c.Market.SessionOpenSecond == 0 {
		c.Market.SessionOpenSecond = DefaultSessionOpenSecond
	}
	if c.Market.SessionCloseSecond == 0 {
		c.Market.SessionCloseSecond = DefaultSessionCloseSecond
	}
	if c.Market.WindowOpenSecond == 0 {
		c.Market.WindowOpenSecond = DefaultWindowOpenSecond
	}
	if c.Market.WindowCloseSecond == 0 {
		c.Market.WindowCloseSecond = DefaultWindowCloseSecond
	}

	if c.Response.MaxLag == 0 {
		c.Response.MaxLag = DefaultMaxLag
	}

	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = runtime.NumCPU()
	}
	if c.Pipeline.BufferSize == 0 {
		c.Pipeline.BufferSize = DefaultBufferSize
	}

	if c.Classifier.Strategy == "" {
		c.Classifier.Strategy = DefaultStrategy
	}

	if c.Database.Enabled() {
		if c.Database.Port == 0 {
			c.Database.Port = DefaultDBPort
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = DefaultDBSSLMode
		}
		if c.Database.MaxConns == 0 {
			c.Database.MaxConns = DefaultMaxConns
		}
		if c.Database.MinConns == 0 {
			c.Database.MinConns = DefaultMinConns
		}
	}

	if c.Store.BatchSize == 0 {
		c.Store.BatchSize = DefaultBatchSize
	}
	if c.Store.FlushInterval == 0 {
		c.Store.FlushInterval = DefaultFlushInterval
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}
