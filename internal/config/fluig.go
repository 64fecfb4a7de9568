package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/docker/go-units"
)

const (
	// EnvFluigBaseDomain overrides the Fluig server base domain.
	EnvFluigBaseDomain = "FLUIG_BASE_DOMAIN"

	// EnvFluigTimeout overrides the total remote fetch timeout.
	EnvFluigTimeout = "FLUIG_TIMEOUT"

	// EnvFluigInsecureSkipVerify disables TLS peer verification when set
	// to a true value. Verification is on by default.
	EnvFluigInsecureSkipVerify = "FLUIG_INSECURE_SKIP_VERIFY"

	// EnvFluigMaxResponseSize overrides the maximum accepted document size.
	EnvFluigMaxResponseSize = "FLUIG_MAX_RESPONSE_SIZE"
)

// FluigConfig contains settings for reaching the remote Fluig
// streamcontrol endpoint.
type FluigConfig struct {
	// BaseDomain is the domain suffix appended to the tenant server name.
	// Default: "rpa.org.br"
	BaseDomain string `toml:"base_domain"`

	// CompanyID is the WDCompanyId query parameter sent on every fetch.
	CompanyID int `toml:"company_id"`

	// DocVersion is the WDNrVersao query parameter sent on every fetch.
	DocVersion int `toml:"doc_version"`

	Timeout string `toml:"timeout"`

	// InsecureSkipVerify disables TLS certificate validation for the
	// remote. The legacy integration ran without verification; keep this
	// off unless a tenant still serves a broken certificate chain.
	InsecureSkipVerify bool `toml:"insecure_skip_verify"`

	MaxResponseSize    string `toml:"max_response_size"`
	maxResponseSizeVal int64
}

// TimeoutDuration parses and returns the total fetch timeout.
func (c *FluigConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxResponseSizeBytes returns the maximum accepted document size in bytes.
func (c *FluigConfig) MaxResponseSizeBytes() int64 {
	return c.maxResponseSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the Fluig configuration.
func (c *FluigConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *FluigConfig) Merge(overlay *FluigConfig) {
	if overlay.BaseDomain != "" {
		c.BaseDomain = overlay.BaseDomain
	}
	if overlay.CompanyID != 0 {
		c.CompanyID = overlay.CompanyID
	}
	if overlay.DocVersion != 0 {
		c.DocVersion = overlay.DocVersion
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.InsecureSkipVerify {
		c.InsecureSkipVerify = true
	}
	if size, err := units.FromHumanSize(overlay.MaxResponseSize); err == nil {
		c.MaxResponseSize = overlay.MaxResponseSize
		c.maxResponseSizeVal = size
	}
}

func (c *FluigConfig) loadDefaults() {
	if c.BaseDomain == "" {
		c.BaseDomain = "rpa.org.br"
	}
	if c.CompanyID == 0 {
		c.CompanyID = 31909
	}
	if c.DocVersion == 0 {
		c.DocVersion = 1000
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MaxResponseSize == "" {
		c.MaxResponseSize = "50MB"
	}
}

func (c *FluigConfig) loadEnv() {
	if v := os.Getenv(EnvFluigBaseDomain); v != "" {
		c.BaseDomain = v
	}
	if v := os.Getenv(EnvFluigTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvFluigInsecureSkipVerify); v != "" {
		if skip, err := strconv.ParseBool(v); err == nil {
			c.InsecureSkipVerify = skip
		}
	}
	if v := os.Getenv(EnvFluigMaxResponseSize); v != "" {
		c.MaxResponseSize = v
	}
}

func (c *FluigConfig) validate() error {
	if c.BaseDomain == "" {
		return fmt.Errorf("base_domain required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	size, err := units.FromHumanSize(c.MaxResponseSize)
	if err != nil {
		return fmt.Errorf("invalid max_response_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_response_size must be positive")
	}
	c.maxResponseSizeVal = size

	return nil
}
