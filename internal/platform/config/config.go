// Package config assembles runtime configuration in three layers: built-in
// defaults, an optional YAML file named by ENRICH_CONFIG_FILE, then
// environment variables. Later layers win field by field.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider names known to the engine, in default priority order.
const (
	Clearbit = "clearbit"
	Surfe    = "surfe"
	Wiza     = "wiza"
	GitHub   = "github"
	Hunter   = "hunter"
)

// KnownProviders lists every provider in default priority order.
var KnownProviders = []string{Clearbit, Surfe, Wiza, GitHub, Hunter}

var defaultQuotas = map[string]int{
	Clearbit: 50,
	Hunter:   50,
	GitHub:   5000,
	Wiza:     100,
	Surfe:    100,
}

// Config is the full runtime configuration.
type Config struct {
	Server    Server
	Log       Log
	Engine    Engine
	Providers map[string]Provider
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	AdminToken      string // empty disables operator endpoints
}

type Log struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// Engine tunes the orchestrator.
type Engine struct {
	Strategy         string   // sequential or parallel
	BreakerThreshold int      // 0 disables circuit breakers
	Priority         []string // provider IDs, highest priority first
}

// Provider holds one provider's credentials and limits. An empty APIKey
// leaves the provider out of the registry.
type Provider struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration // 0 keeps the adapter default
	MonthlyQuota int
	RateLimitRPS float64 // 0 disables client-side rate limiting
}

// Configured reports whether the provider has a credential.
func (p Provider) Configured() bool {
	return strings.TrimSpace(p.APIKey) != ""
}

// Default returns the built-in configuration.
func Default() Config {
	providers := make(map[string]Provider, len(KnownProviders))
	for _, name := range KnownProviders {
		providers[name] = Provider{MonthlyQuota: defaultQuotas[name]}
	}
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Engine: Engine{
			Strategy: "sequential",
			Priority: slices.Clone(KnownProviders),
		},
		Providers: providers,
	}
}

// FromEnv loads configuration from the process environment.
func FromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

// Load builds a Config from defaults, the file named by ENRICH_CONFIG_FILE
// (if any) and environment variables read through lookup.
func Load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path, ok := lookup("ENRICH_CONFIG_FILE"); ok && strings.TrimSpace(path) != "" {
		if err := cfg.applyFile(strings.TrimSpace(path)); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}
	switch c.Engine.Strategy {
	case "sequential", "parallel":
	default:
		return fmt.Errorf("engine strategy %q must be sequential or parallel", c.Engine.Strategy)
	}
	if c.Engine.BreakerThreshold < 0 {
		return fmt.Errorf("breaker threshold must not be negative")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format %q must be json or text", c.Log.Format)
	}

	seen := make(map[string]bool, len(c.Engine.Priority))
	for _, name := range c.Engine.Priority {
		if !slices.Contains(KnownProviders, name) {
			return fmt.Errorf("unknown provider %q in priority", name)
		}
		if seen[name] {
			return fmt.Errorf("provider %q listed twice in priority", name)
		}
		seen[name] = true
	}
	for name, p := range c.Providers {
		if p.MonthlyQuota < 0 {
			return fmt.Errorf("%s monthly quota must not be negative", name)
		}
		if p.RateLimitRPS < 0 {
			return fmt.Errorf("%s rate limit must not be negative", name)
		}
	}
	return nil
}

// fileConfig mirrors the YAML layout. Pointers distinguish "absent" from
// "set to zero" so the file only overrides what it names.
type fileConfig struct {
	Server struct {
		Addr                   *string `yaml:"addr"`
		ShutdownTimeoutSeconds *int    `yaml:"shutdown_timeout_seconds"`
		AdminToken             *string `yaml:"admin_token"`
	} `yaml:"server"`
	Log struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
	Engine struct {
		Strategy         *string  `yaml:"strategy"`
		BreakerThreshold *int     `yaml:"breaker_threshold"`
		Priority         []string `yaml:"priority"`
	} `yaml:"engine"`
	Providers map[string]struct {
		APIKey         *string  `yaml:"api_key"`
		BaseURL        *string  `yaml:"base_url"`
		TimeoutSeconds *int     `yaml:"timeout_seconds"`
		MonthlyQuota   *int     `yaml:"monthly_quota"`
		RateLimitRPS   *float64 `yaml:"rate_limit_rps"`
	} `yaml:"providers"`
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ENRICH_CONFIG_FILE: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("parse ENRICH_CONFIG_FILE YAML: %w", err)
	}

	setIf(&c.Server.Addr, f.Server.Addr)
	if f.Server.ShutdownTimeoutSeconds != nil {
		c.Server.ShutdownTimeout = time.Duration(*f.Server.ShutdownTimeoutSeconds) * time.Second
	}
	setIf(&c.Server.AdminToken, f.Server.AdminToken)
	setIf(&c.Log.Level, f.Log.Level)
	setIf(&c.Log.Format, f.Log.Format)
	setIf(&c.Engine.Strategy, f.Engine.Strategy)
	setIf(&c.Engine.BreakerThreshold, f.Engine.BreakerThreshold)
	if len(f.Engine.Priority) > 0 {
		c.Engine.Priority = normalizeNames(f.Engine.Priority)
	}

	for name, fp := range f.Providers {
		name = strings.ToLower(strings.TrimSpace(name))
		if !slices.Contains(KnownProviders, name) {
			return fmt.Errorf("ENRICH_CONFIG_FILE: unknown provider %q", name)
		}
		p := c.Providers[name]
		setIf(&p.APIKey, fp.APIKey)
		setIf(&p.BaseURL, fp.BaseURL)
		if fp.TimeoutSeconds != nil {
			p.Timeout = time.Duration(*fp.TimeoutSeconds) * time.Second
		}
		setIf(&p.MonthlyQuota, fp.MonthlyQuota)
		setIf(&p.RateLimitRPS, fp.RateLimitRPS)
		c.Providers[name] = p
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	env := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := env("ENRICH_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := env("ENRICH_ADMIN_TOKEN"); ok {
		c.Server.AdminToken = v
	}
	if v, ok := env("ENRICH_LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := env("ENRICH_LOG_FORMAT"); ok {
		c.Log.Format = strings.ToLower(v)
	}
	if v, ok := env("ENRICH_STRATEGY"); ok {
		c.Engine.Strategy = strings.ToLower(v)
	}
	if v, ok := env("ENRICH_BREAKER_THRESHOLD"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ENRICH_BREAKER_THRESHOLD: %w", err)
		}
		c.Engine.BreakerThreshold = n
	}
	if v, ok := env("ENRICH_PROVIDER_PRIORITY"); ok {
		c.Engine.Priority = normalizeNames(strings.Split(v, ","))
	}

	for _, name := range KnownProviders {
		prefix := strings.ToUpper(name) + "_"
		p := c.Providers[name]
		if v, ok := env(prefix + "API_KEY"); ok {
			p.APIKey = v
		}
		if v, ok := env(prefix + "BASE_URL"); ok {
			p.BaseURL = v
		}
		if v, ok := env(prefix + "TIMEOUT_SECONDS"); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%sTIMEOUT_SECONDS: %w", prefix, err)
			}
			p.Timeout = time.Duration(n) * time.Second
		}
		if v, ok := env(prefix + "MONTHLY_QUOTA"); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%sMONTHLY_QUOTA: %w", prefix, err)
			}
			p.MonthlyQuota = n
		}
		if v, ok := env(prefix + "RATE_LIMIT_RPS"); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%sRATE_LIMIT_RPS: %w", prefix, err)
			}
			p.RateLimitRPS = f
		}
		c.Providers[name] = p
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out = append(out, n)
		}
	}
	return out
}
