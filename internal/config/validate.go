package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}
	if c.Data.Dir == "" {
		return errors.New("data.dir is required")
	}
	if len(c.Data.Tickers) == 0 {
		return errors.New("data.tickers must name at least one ticker")
	}
	if len(c.Data.Days) == 0 {
		return errors.New("data.days must name at least one trading day")
	}
	for _, d := range c.Data.Days {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("data.days entry %q is not an ISO date", d)
		}
	}

	m := c.Market
	if m.SessionOpenSecond < 0 || m.SessionCloseSecond > 86400 {
		return errors.New("market session bounds must lie within one day")
	}
	if m.SessionOpenSecond >= m.SessionCloseSecond {
		return errors.New("market.session_open_second must precede session_close_second")
	}
	if m.WindowOpenSecond >= m.WindowCloseSecond {
		return errors.New("market.window_open_second must precede window_close_second")
	}
	if m.WindowOpenSecond < m.SessionOpenSecond || m.WindowCloseSecond > m.SessionCloseSecond {
		return errors.New("analysis window must lie within the market session")
	}

	if c.Response.MaxLag < 1 {
		return errors.New("response.max_lag must be >= 1")
	}
	if int64(c.Response.MaxLag) >= m.WindowCloseSecond-m.WindowOpenSecond {
		return errors.New("response.max_lag must be smaller than the window length")
	}

	if c.Pipeline.Workers < 1 {
		return errors.New("pipeline.workers must be >= 1")
	}
	if c.Pipeline.BufferSize < 1 {
		return errors.New("pipeline.buffer_size must be >= 1")
	}

	switch c.Classifier.Strategy {
	case "linkage", "tickrule":
	default:
		return fmt.Errorf("classifier.strategy must be linkage or tickrule, got %q",
			c.Classifier.Strategy)
	}

	if c.Database.Enabled() {
		if c.Database.Name == "" {
			return errors.New("database.name is required when database.host is set")
		}
		if c.Database.User == "" {
			return errors.New("database.user is required when database.host is set")
		}
		if c.Store.BatchSize < 1 {
			return errors.New("store.batch_size must be >= 1")
		}
	}

	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}
