package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vijay-prabhu/leadradar/internal/lead"
	"github.com/vijay-prabhu/leadradar/internal/logging"
)

// DefaultPath is where the CLI looks for its configuration
const DefaultPath = "~/.config/leadradar/config.toml"

// MaxMinScore is the upper bound of filters.min_score
const MaxMinScore = 120

// ErrConfigNotFound is returned by Load when the file does not exist
var ErrConfigNotFound = errors.New("config file not found")

// Load reads and parses the configuration file. Sections missing from the
// file keep their defaults; weights in the file override individual defaults.
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run 'leadradar config init' to create)", ErrConfigNotFound, expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes TOML over the defaults without validating
func Parse(data []byte) (*Config, error) {
	defaults := Default()

	// Collections are replaced wholesale, so start them empty and
	// restore the defaults for the ones the file leaves out
	cfg := Default()
	cfg.Weights = nil
	cfg.Keywords.Themes = nil
	cfg.Geography.Regions = nil
	cfg.Geography.Markers = nil
	cfg.Sources = nil

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Keywords.Themes == nil {
		cfg.Keywords.Themes = defaults.Keywords.Themes
	}
	if cfg.Geography.Regions == nil {
		cfg.Geography.Regions = defaults.Geography.Regions
	}
	if cfg.Geography.Markers == nil {
		cfg.Geography.Markers = defaults.Geography.Markers
	}
	if cfg.Sources == nil {
		cfg.Sources = defaults.Sources
	}

	weights, err := MergeWeights(lead.DefaultWeights(), cfg.Weights)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Weights = weights.Map()

	return cfg, nil
}

// MergeWeights applies overrides (flag or factor name to weight) on top of
// base. Unknown names and negative values are errors.
func MergeWeights(base lead.Weights, overrides map[string]float64) (lead.Weights, error) {
	result := base
	var errs []error

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := result.Set(name, overrides[name]); err != nil {
			errs = append(errs, fmt.Errorf("weights.%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return base, errors.Join(errs...)
	}
	return result, nil
}

// WeightOverrides describes every weight that differs from its default,
// as "name: default -> value"
func (c *Config) WeightOverrides() []string {
	defaults := lead.DefaultWeights().Map()
	var overrides []string

	for _, name := range lead.WeightNames() {
		value, ok := c.Weights[name]
		if !ok || value == defaults[name] {
			continue
		}
		overrides = append(overrides, fmt.Sprintf("%s: %.2f -> %.2f", name, defaults[name], value))
	}

	return overrides
}

// Save writes the configuration as TOML, creating the parent directory
func (c *Config) Save(path string) error {
	expandedPath, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(expandedPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Weights validation
	if _, err := lead.ParseWeights(c.Weights); err != nil {
		errs = append(errs, err)
	}

	// Keyword validation
	for i, t := range c.Keywords.Themes {
		if strings.TrimSpace(t.Label) == "" {
			errs = append(errs, fmt.Errorf("keywords.themes[%d].label is required", i))
		}
	}

	// Filter validation
	if c.Filters.MinScore < 0 || c.Filters.MinScore > MaxMinScore {
		errs = append(errs, fmt.Errorf("filters.min_score must be between 0 and %d", MaxMinScore))
	}

	// Export validation
	if c.Export.SnippetMaxLength < 1 {
		errs = append(errs, errors.New("export.snippet_max_length must be at least 1"))
	}
	if c.Export.KeywordDelimiter == "" {
		errs = append(errs, errors.New("export.keyword_delimiter is required"))
	}
	if c.Export.FileName == "" {
		errs = append(errs, errors.New("export.file_name is required"))
	}

	// Source validation
	seen := make(map[string]bool)
	for i, s := range c.Sources {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("sources[%d].id is required", i))
		} else if seen[s.ID] {
			errs = append(errs, fmt.Errorf("sources[%d].id %q is duplicated", i, s.ID))
		}
		seen[s.ID] = true
		if !ValidSourceKind(s.Kind) {
			errs = append(errs, fmt.Errorf("sources[%d].kind must be one of %s, got '%s'", i, strings.Join(SourceKinds, ", "), s.Kind))
		}
		if s.URL == "" {
			errs = append(errs, fmt.Errorf("sources[%d].url is required", i))
		}
	}

	// Server validation
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	// Log validation
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level is not a known level, got '%s'", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be 'console' or 'json', got '%s'", c.Log.Format))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Warnings reports settings that are accepted but probably unintended
func (c *Config) Warnings() []string {
	var warnings []string

	if r := c.Filters.Region; r != "" && !slices.Contains(c.Geography.Regions, r) {
		warnings = append(warnings, fmt.Sprintf("filters.region %q is not in geography.regions", r))
	}
	if len(c.Keywords.Themes) == 0 || c.KeywordGraph().TermCount() == 0 {
		warnings = append(warnings, "no keyword terms configured, the keyword fit bonus never applies")
	}
	if len(c.Geography.Markers) == 0 {
		warnings = append(warnings, "geography.markers is empty, the location bias never applies")
	}

	return warnings
}

// ValidSourceKind reports whether kind is an accepted source connector kind
func ValidSourceKind(kind string) bool {
	return slices.Contains(SourceKinds, kind)
}
