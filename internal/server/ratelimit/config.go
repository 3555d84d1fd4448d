package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one route. Paths ending in "/" match by prefix.
type Rule struct {
	Method string
	Path   string
	Limit  int           // requests per Window; zero or less means unlimited
	Window time.Duration
	Burst  int // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	// IdleTTL is how long an untouched bucket is kept
	IdleTTL         time.Duration
	CleanupInterval time.Duration
	Allow           map[string]bool
	Deny            map[string]bool
	Rules           []Rule
}

// DefaultConfig returns the limits used when no environment overrides exist
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		IdleTTL:         time.Hour,
		CleanupInterval: 5 * time.Minute,
		Allow:           map[string]bool{},
		Deny:            map[string]bool{},
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the per-route limits. PDF uploads are the most
// expensive call and get the strictest bucket.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "POST", Path: "/imports", Limit: 30, Window: time.Hour, Burst: 5},
		{Method: "POST", Path: "/imports/text", Limit: 120, Window: time.Hour, Burst: 10},
		{Method: "DELETE", Path: "/imports/", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "GET", Path: "/health", Limit: 0},
	}
}

// FromEnv builds a Config from RATE_LIMIT_* variables on top of DefaultConfig
func FromEnv() *Config {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) *Config {
	cfg := DefaultConfig()

	if v, ok := lookup("RATE_LIMIT_ENABLED"); ok {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = enabled
		}
	}
	if v, ok := lookup("RATE_LIMIT_DEFAULT_LIMIT"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultLimit = n
		}
	}
	if v, ok := lookup("RATE_LIMIT_DEFAULT_WINDOW"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.DefaultWindow = d
		}
	}
	if v, ok := lookup("RATE_LIMIT_CLEANUP_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CleanupInterval = d
		}
	}
	if v, ok := lookup("RATE_LIMIT_ALLOW"); ok {
		cfg.Allow = splitSet(v)
	}
	if v, ok := lookup("RATE_LIMIT_DENY"); ok {
		cfg.Deny = splitSet(v)
	}
	return cfg
}

// splitSet parses a comma-separated list into a set
func splitSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			set[item] = true
		}
	}
	return set
}

// ruleFor finds the rule for a request. Exact paths win over prefixes and
// unmatched requests share one default bucket per client.
func (c *Config) ruleFor(method, path string) Rule {
	for _, r := range c.Rules {
		if r.Method == method && r.Path == path {
			return r
		}
	}
	for _, r := range c.Rules {
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return Rule{Method: "*", Path: "*", Limit: c.DefaultLimit, Window: c.DefaultWindow}
}
