// Package config provides configuration loading and validation for the importer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-importer/internal/parsing"
	"gopkg.in/yaml.v3"
)

// Default values applied by MergeWithDefaults
const (
	DefaultPort           = 8080
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
	DefaultMaxUploadBytes = 10 << 20
)

// Config represents the importer configuration loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or come from the environment.
type Config struct {
	LogLevel       string       `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat      string       `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`
	DatabaseURL    string       `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	Port           int          `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	MaxUploadBytes int64        `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty" validate:"gte=0"`
	Parser         ParserConfig `json:"parser,omitempty" yaml:"parser,omitempty"`
}

// ParserConfig holds parser limits and heuristics. Zero values keep the
// parser defaults.
type ParserConfig struct {
	MinTextLength          int `json:"min_text_length,omitempty" yaml:"min_text_length,omitempty" validate:"gte=0"`
	MaxExperiences         int `json:"max_experiences,omitempty" yaml:"max_experiences,omitempty" validate:"gte=0,lte=10"`
	MaxEducation           int `json:"max_education,omitempty" yaml:"max_education,omitempty" validate:"gte=0,lte=5"`
	MaxSkills              int `json:"max_skills,omitempty" yaml:"max_skills,omitempty" validate:"gte=0,lte=50"`
	SummaryMaxLength       int `json:"summary_max_length,omitempty" yaml:"summary_max_length,omitempty" validate:"gte=0"`
	SkillFallbackThreshold int `json:"skill_fallback_threshold,omitempty" yaml:"skill_fallback_threshold,omitempty" validate:"gte=0"`
	SkillShortMaxWords     int `json:"skill_short_max_words,omitempty" yaml:"skill_short_max_words,omitempty" validate:"gte=0"`
	SkillMediumMaxWords    int `json:"skill_medium_max_words,omitempty" yaml:"skill_medium_max_words,omitempty" validate:"gte=0"`
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from DATABASE_URL, LOG_LEVEL and PORT when set
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be a number: %w", err)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	p := c.Parser
	if p.SkillShortMaxWords > 0 && p.SkillMediumMaxWords > 0 && p.SkillMediumMaxWords < p.SkillShortMaxWords {
		return fmt.Errorf("config error: 'skill_medium_max_words' must not be less than 'skill_short_max_words'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.LogLevel == "" {
		result.LogLevel = firstNonEmpty(defaults.LogLevel, DefaultLogLevel)
	}
	if result.LogFormat == "" {
		result.LogFormat = firstNonEmpty(defaults.LogFormat, DefaultLogFormat)
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
		if result.Port == 0 {
			result.Port = DefaultPort
		}
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
		if result.MaxUploadBytes == 0 {
			result.MaxUploadBytes = DefaultMaxUploadBytes
		}
	}

	p, d := &result.Parser, defaults.Parser
	fillInt(&p.MinTextLength, d.MinTextLength)
	fillInt(&p.MaxExperiences, d.MaxExperiences)
	fillInt(&p.MaxEducation, d.MaxEducation)
	fillInt(&p.MaxSkills, d.MaxSkills)
	fillInt(&p.SummaryMaxLength, d.SummaryMaxLength)
	fillInt(&p.SkillFallbackThreshold, d.SkillFallbackThreshold)
	fillInt(&p.SkillShortMaxWords, d.SkillShortMaxWords)
	fillInt(&p.SkillMediumMaxWords, d.SkillMediumMaxWords)

	return result
}

// Options converts the non-zero parser settings into parser options
func (p ParserConfig) Options() []parsing.Option {
	defaults := parsing.DefaultOptions()
	var opts []parsing.Option

	if p.MinTextLength > 0 {
		opts = append(opts, parsing.WithMinTextLength(p.MinTextLength))
	}
	if p.MaxExperiences > 0 || p.MaxEducation > 0 || p.MaxSkills > 0 {
		opts = append(opts, parsing.WithLimits(
			orDefault(p.MaxExperiences, defaults.MaxExperiences),
			orDefault(p.MaxEducation, defaults.MaxEducation),
			orDefault(p.MaxSkills, defaults.MaxSkills),
		))
	}
	if p.SummaryMaxLength > 0 {
		opts = append(opts, parsing.WithSummaryMaxLength(p.SummaryMaxLength))
	}
	if p.SkillFallbackThreshold > 0 {
		opts = append(opts, parsing.WithSkillFallbackThreshold(p.SkillFallbackThreshold))
	}
	if p.SkillShortMaxWords > 0 || p.SkillMediumMaxWords > 0 {
		short := orDefault(p.SkillShortMaxWords, defaults.SkillTiers.ShortMaxWords)
		medium := orDefault(p.SkillMediumMaxWords, defaults.SkillTiers.MediumMaxWords)
		if medium < short {
			medium = short
		}
		opts = append(opts, parsing.WithSkillTiers(parsing.SkillTiers{ShortMaxWords: short, MediumMaxWords: medium}))
	}
	return opts
}

func fillInt(dst *int, fallback int) {
	if *dst == 0 {
		*dst = fallback
	}
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
