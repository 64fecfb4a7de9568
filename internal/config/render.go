package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// EnvRenderWorkers overrides the number of concurrent PDF renders.
	EnvRenderWorkers = "RENDER_WORKERS"
)

// RenderConfig contains PDF rasterization settings.
type RenderConfig struct {
	// Scale is the viewport scale applied to the PDF page box.
	// Default: 2.0
	Scale float64 `toml:"scale"`

	// Workers bounds how many PDF pages may rasterize at once. Rendering
	// is CPU and heap heavy, so this pool keeps a burst of PDF requests
	// from starving the rest of the server.
	Workers int64 `toml:"workers"`
}

// Finalize applies defaults, loads environment overrides, and validates the render configuration.
func (c *RenderConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *RenderConfig) Merge(overlay *RenderConfig) {
	if overlay.Scale != 0 {
		c.Scale = overlay.Scale
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
}

func (c *RenderConfig) loadDefaults() {
	if c.Scale == 0 {
		c.Scale = 2.0
	}
	if c.Workers == 0 {
		c.Workers = 2
	}
}

func (c *RenderConfig) loadEnv() {
	if v := os.Getenv(EnvRenderWorkers); v != "" {
		if workers, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Workers = workers
		}
	}
}

func (c *RenderConfig) validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	return nil
}
