package ratelimit

import (
	"time"

	"github.com/jonathan/resume-analyzer/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

func (e *EndpointConfig) capacity() int {
	if e.Burst > 0 {
		return e.Burst
	}
	return e.Limit
}

// refillRate is in tokens per second
func (e *EndpointConfig) refillRate() float64 {
	window := e.Window
	if window <= 0 {
		window = time.Minute
	}
	return float64(e.Limit) / window.Seconds()
}

// FromSettings builds a limiter configuration from the server's rate limit settings.
// Document uploads are decoded before analysis and get a quarter of the JSON budget.
func FromSettings(rl config.RateLimitConfig) *Config {
	if !rl.Enabled {
		return &Config{Enabled: false}
	}

	limit := rl.RequestsPerMinute
	if limit <= 0 {
		limit = 60
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    limit,
		DefaultWindow:   time.Minute,
		DefaultBurst:    rl.Burst,
		CleanupInterval: 5 * time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(limit, rl.Burst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations for a
// per-minute limit.
func DefaultEndpointConfigs(perMinute, burst int) []EndpointConfig {
	uploadLimit := max(perMinute/4, 1)
	uploadBurst := burst
	if uploadBurst > uploadLimit {
		uploadBurst = uploadLimit
	}

	return []EndpointConfig{
		// Decoding plus analysis (strictest)
		{Path: "/analyze-resume", Method: "POST", Limit: uploadLimit, Window: time.Minute, Burst: uploadBurst},

		// Text analysis
		{Path: "/analyze", Method: "POST", Limit: perMinute, Window: time.Minute, Burst: burst},

		// Health check (unlimited) - handled by special case in matcher
	}
}
