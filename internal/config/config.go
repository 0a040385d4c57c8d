package config

import (
	"github.com/vijay-prabhu/leadradar/internal/lead"
)

// Nationwide is the region name meaning "no regional restriction"
const Nationwide = "Bundesweit"

// Config represents the application configuration
type Config struct {
	Weights   map[string]float64 `toml:"weights"`
	Keywords  KeywordsConfig     `toml:"keywords"`
	Geography GeographyConfig    `toml:"geography"`
	Filters   FiltersConfig      `toml:"filters"`
	Export    ExportConfig       `toml:"export"`
	Sources   []SourceConfig     `toml:"sources"`
	Server    ServerConfig       `toml:"server"`
	Log       LogConfig          `toml:"log"`
	MCP       MCPConfig          `toml:"mcp"`
}

// KeywordsConfig contains the keyword themes used for matching
type KeywordsConfig struct {
	Themes []ThemeConfig `toml:"themes"`
}

// ThemeConfig is one labelled group of search terms
type ThemeConfig struct {
	Label string   `toml:"label"`
	Terms []string `toml:"terms"`
}

// GeographyConfig describes the target market
type GeographyConfig struct {
	Name       string   `toml:"name"`
	Nationwide string   `toml:"nationwide"` // Region value that disables the region filter
	Regions    []string `toml:"regions"`
	Markers    []string `toml:"markers"` // Location fragments that earn the location bias
}

// FiltersConfig contains the default filter criteria
type FiltersConfig struct {
	Query              string `toml:"query"`
	Region             string `toml:"region"`
	MinScore           int    `toml:"min_score"`
	OnlyHighConfidence bool   `toml:"only_high_confidence"`
}

// ExportConfig contains CSV/JSON export settings
type ExportConfig struct {
	SnippetMaxLength int    `toml:"snippet_max_length"`
	KeywordDelimiter string `toml:"keyword_delimiter"`
	FileName         string `toml:"file_name"`
}

// SourceConfig is a registered source connector. Sources are only listed;
// fetching from them is done by external tools that produce record batches.
type SourceConfig struct {
	ID    string `toml:"id" json:"id"`
	Kind  string `toml:"kind" json:"kind"`
	Label string `toml:"label" json:"label"`
	URL   string `toml:"url" json:"url"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// SourceKinds lists the accepted source connector kinds
var SourceKinds = []string{
	"RSS", "Sitemap", "HTML", "API", "LinkedIn", "X",
	"Meetup", "Crunchbase", "EU Filings", "Handelsregister",
}

// GermanRegions is the nationwide sentinel followed by the 16 federal states
var GermanRegions = []string{
	Nationwide, "Berlin", "Bayern", "Baden-Württemberg", "Hamburg", "Hessen",
	"Nordrhein-Westfalen", "Sachsen", "Niedersachsen", "Rheinland-Pfalz",
	"Schleswig-Holstein", "Thüringen", "Sachsen-Anhalt", "Brandenburg",
	"Saarland", "Mecklenburg-Vorpommern", "Bremen",
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Weights:  lead.DefaultWeights().Map(),
		Keywords: keywordsFromGraph(lead.DefaultKeywordGraph()),
		Geography: GeographyConfig{
			Name:       "Germany",
			Nationwide: Nationwide,
			Regions:    append([]string(nil), GermanRegions...),
			Markers: []string{
				"germany", "deutschland", "berlin", "munich", "münchen", "köln",
				"nrw", "hamburg", "frankfurt", "stuttgart", "düsseldorf",
			},
		},
		Filters: FiltersConfig{
			Region:   Nationwide,
			MinScore: 60,
		},
		Export: ExportConfig{
			SnippetMaxLength: 300,
			KeywordDelimiter: "|",
			FileName:         "early_vacancy_signals.csv",
		},
		Sources: DefaultSources(),
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}

// DefaultSources returns the stock source connectors
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{ID: "S-1", Kind: "RSS", Label: "Pressemitteilungen (DACH)", URL: "https://example.com/rss/pr-dach.xml"},
		{ID: "S-2", Kind: "Handelsregister", Label: "Neue GmbH/UG (Germany)", URL: "https://handelsregister.de/"},
		{ID: "S-3", Kind: "Meetup", Label: "Berlin Tech Meetups", URL: "https://www.meetup.com/find/tech/berlin"},
		{ID: "S-4", Kind: "API", Label: "Bundesanzeiger (Announcements)", URL: "https://www.bundesanzeiger.de/"},
		{ID: "S-5", Kind: "Crunchbase", Label: "New funding (DACH)", URL: "https://www.crunchbase.com/"},
	}
}

// KeywordGraph returns the configured themes as a normalized keyword graph
func (c *Config) KeywordGraph() lead.KeywordGraph {
	g := lead.KeywordGraph{Themes: make([]lead.Theme, 0, len(c.Keywords.Themes))}
	for _, t := range c.Keywords.Themes {
		g.Themes = append(g.Themes, lead.Theme{Label: t.Label, Terms: t.Terms})
	}
	return g.Normalize()
}

// SetKeywordGraph replaces the configured themes
func (c *Config) SetKeywordGraph(g lead.KeywordGraph) {
	c.Keywords = keywordsFromGraph(g)
}

// ParsedWeights returns the configured weights. Load has already validated them.
func (c *Config) ParsedWeights() (lead.Weights, error) {
	return lead.ParseWeights(c.Weights)
}

// RegionFilter returns the region criterion, mapping the nationwide
// sentinel to "no restriction"
func (c *Config) RegionFilter(region string) string {
	if region == "" || region == c.Geography.Nationwide {
		return ""
	}
	return region
}

func keywordsFromGraph(g lead.KeywordGraph) KeywordsConfig {
	themes := make([]ThemeConfig, 0, len(g.Themes))
	for _, t := range g.Themes {
		themes = append(themes, ThemeConfig{Label: t.Label, Terms: append([]string(nil), t.Terms...)})
	}
	return KeywordsConfig{Themes: themes}
}
