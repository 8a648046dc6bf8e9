// Package models defines data structures for configuration, reviews and scores.
package models

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when --config is not given and the file exists.
const DefaultConfigPath = "config.yaml"

// Config holds runtime configuration for an analyze run.
// Values come from an optional YAML file; CLI flags override them.
type Config struct {
	Fetch     FetchConfig    `yaml:"fetch"`
	Extract   ExtractConfig  `yaml:"extract"`
	Language  LanguageConfig `yaml:"language"`
	Export    ExportConfig   `yaml:"export"`
	History   HistoryConfig  `yaml:"history"`
	Averaging AveragingMode  `yaml:"averaging"`
}

// FetchConfig controls the single page request.
type FetchConfig struct {
	UserAgent      string        `yaml:"user_agent"`
	AcceptLanguage string        `yaml:"accept_language"`
	Timeout        time.Duration `yaml:"timeout"`

	// CacheDir and MaxAge enable the on-disk page cache. MaxAge 0 disables it.
	CacheDir string        `yaml:"cache_dir"`
	MaxAge   time.Duration `yaml:"max_age"`
}

// ExtractConfig selects the review containers on the page.
type ExtractConfig struct {
	// ContainerClass is the full class attribute of a review container,
	// space separated, e.g. "a-row a-spacing-small review-data".
	ContainerClass string `yaml:"container_class"`
	ContainerTag   string `yaml:"container_tag"`

	// KeepWhitespaceLines reports whitespace-only lines as (unscoreable)
	// reviews, so the export has one row per line of review text.
	KeepWhitespaceLines bool `yaml:"keep_whitespace_lines"`
}

type LanguageConfig struct {
	Disabled            bool     `yaml:"disabled"`
	Supported           []string `yaml:"supported"` // ISO 639-1 codes
	MinRelativeDistance float64  `yaml:"min_relative_distance"`
}

type ExportConfig struct {
	FileName  string `yaml:"file_name"`
	SheetName string `yaml:"sheet_name"`
}

type HistoryConfig struct {
	Disabled bool   `yaml:"disabled"`
	Path     string `yaml:"path"` // empty means next to the binary
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/44.0.2403.157 Safari/537.36",
			AcceptLanguage: "en-US, en;q=0.5",
			Timeout:        30 * time.Second,
			CacheDir:       ".cache/pages",
		},
		Extract: ExtractConfig{
			ContainerClass: "a-row a-spacing-small review-data",
			ContainerTag:   "div",
		},
		Language: LanguageConfig{
			Supported:           []string{"en"},
			MinRelativeDistance: 0.25,
		},
		Export: ExportConfig{
			FileName:  "Example_Output.xlsx",
			SheetName: "SHEET_TITLE",
		},
		Averaging: AveragingLegacy,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// A missing file returns an error wrapping os.ErrNotExist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, NewAnalysisError(KindConfigInvalid, "failed to parse config "+path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields a run cannot do without.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Extract.ContainerClass) == "" {
		problems = append(problems, "extract.container_class is empty")
	}
	if c.Fetch.Timeout < 0 {
		problems = append(problems, "fetch.timeout is negative")
	}
	if c.Fetch.MaxAge < 0 {
		problems = append(problems, "fetch.max_age is negative")
	}
	if c.Language.MinRelativeDistance < 0 || c.Language.MinRelativeDistance > 0.99 {
		problems = append(problems, "language.min_relative_distance must be in [0, 0.99]")
	}
	if !c.Language.Disabled && len(c.Language.Supported) == 0 {
		problems = append(problems, "language.supported is empty")
	}
	if strings.TrimSpace(c.Export.FileName) == "" {
		problems = append(problems, "export.file_name is empty")
	}
	if strings.TrimSpace(c.Export.SheetName) == "" {
		problems = append(problems, "export.sheet_name is empty")
	}
	if _, err := ParseAveragingMode(string(c.Averaging)); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return NewAnalysisError(KindConfigInvalid, strings.Join(problems, "; "), nil)
	}
	return nil
}
