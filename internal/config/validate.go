package config

import (
	"fmt"
	"slices"
	"strings"
)

var distanceStrategies = []string{"sum_square", "squared_difference"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Matching.validate(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}

	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database: min_conns must be in 0..max_conns (got %d, max %d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database: statement_timeout must be >= 0 (got %v)", c.Database.StatementTimeout)
	}

	if c.Redis.Enabled() && c.Redis.TaxonomyTTL <= 0 {
		return fmt.Errorf("redis: taxonomy_ttl must be > 0 (got %v)", c.Redis.TaxonomyTTL)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server: port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server: rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	return nil
}

func (m *MatchingConfig) validate() error {
	if m.PageSize < 1 || m.PageSize > 100 {
		return fmt.Errorf("page_size must be in 1..100 (got %d)", m.PageSize)
	}
	if m.MaxPageScan <= 0 {
		return fmt.Errorf("max_page_scan must be > 0 (got %d)", m.MaxPageScan)
	}
	if m.RejectedRetentionDays < 0 {
		return fmt.Errorf("rejected_retention_days must be >= 0 (got %d)", m.RejectedRetentionDays)
	}

	m.DistanceStrategy = strings.ToLower(strings.TrimSpace(m.DistanceStrategy))
	if !slices.Contains(distanceStrategies, m.DistanceStrategy) {
		return fmt.Errorf("distance_strategy must be one of %v (got %q)", distanceStrategies, m.DistanceStrategy)
	}

	return nil
}
