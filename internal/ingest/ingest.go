// Package ingest decodes batches of signal records from JSON, YAML or CSV and
// sanitizes them before they reach the ranking pipeline.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/vijay-prabhu/leadradar/internal/lead"
)

// ErrUnsupportedFormat is returned for input files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Format identifies a record batch encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseFormat resolves a format name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Loader reads record batches. Problems with individual records are logged
// and repaired; only unreadable input is an error.
type Loader struct {
	Logger zerolog.Logger
}

// LoadFile reads and sanitizes the records in path
func (l Loader) LoadFile(path string) ([]lead.Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	records, err := l.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	l.Logger.Debug().Str("path", path).Int("records", len(records)).Msg("loaded records")
	return records, nil
}

// Decode reads and sanitizes a record batch in the given format
func (l Loader) Decode(r io.Reader, format Format) ([]lead.Record, error) {
	var raws []rawRecord
	var err error

	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&raws)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&raws)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatCSV:
		raws, err = decodeCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", format, err)
	}

	records := make([]lead.Record, 0, len(raws))
	for i := range raws {
		records = append(records, l.sanitize(i, &raws[i]))
	}
	return records, nil
}

// rawRecord is the wire shape of a record. Both the camelCase field names of
// the signal exports and snake_case names are accepted.
type rawRecord struct {
	ID                   string          `json:"id" yaml:"id"`
	Org                  string          `json:"org" yaml:"org"`
	Organization         string          `json:"organization" yaml:"organization"`
	Title                string          `json:"title" yaml:"title"`
	SignalType           string          `json:"signalType" yaml:"signalType"`
	SignalTypeSnake      string          `json:"signal_type" yaml:"signal_type"`
	Snippet              string          `json:"snippet" yaml:"snippet"`
	Sector               string          `json:"sector" yaml:"sector"`
	Location             string          `json:"location" yaml:"location"`
	URL                  string          `json:"url" yaml:"url"`
	Date                 string          `json:"date" yaml:"date"`
	Confidence           float64         `json:"confidence" yaml:"confidence"`
	Signals              map[string]bool `json:"signals" yaml:"signals"`
	MatchedKeywords      []string        `json:"matchedKeywords" yaml:"matchedKeywords"`
	MatchedKeywordsSnake []string        `json:"matched_keywords" yaml:"matched_keywords"`
	OrgSize              string          `json:"orgSize" yaml:"orgSize"`
	OrgSizeSnake         string          `json:"org_size" yaml:"org_size"`
}

func (l Loader) sanitize(index int, raw *rawRecord) lead.Record {
	r := lead.Record{
		ID:              strings.TrimSpace(raw.ID),
		Organization:    strings.TrimSpace(firstNonEmpty(raw.Organization, raw.Org)),
		Title:           strings.TrimSpace(raw.Title),
		SignalType:      firstNonEmpty(raw.SignalType, raw.SignalTypeSnake),
		Snippet:         raw.Snippet,
		Sector:          raw.Sector,
		Location:        raw.Location,
		URL:             raw.URL,
		Confidence:      raw.Confidence,
		MatchedKeywords: raw.MatchedKeywords,
		OrgSize:         firstNonEmpty(raw.OrgSize, raw.OrgSizeSnake),
	}
	if r.MatchedKeywords == nil {
		r.MatchedKeywords = raw.MatchedKeywordsSnake
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
		l.Logger.Warn().Int("index", index).Str("id", r.ID).Msg("record has no id, assigned one")
	}
	log := l.Logger.With().Str("id", r.ID).Logger()

	if strings.TrimSpace(raw.Date) == "" {
		log.Warn().Msg("record has no date, recency boost disabled")
	} else if d, err := lead.ParseDate(raw.Date); err != nil {
		log.Warn().Str("date", raw.Date).Msg("unparseable date, recency boost disabled")
	} else {
		r.Date = d
	}

	if c := lead.ClampConfidence(r.Confidence); c != r.Confidence {
		log.Warn().Float64("confidence", r.Confidence).Float64("clamped", c).Msg("confidence out of range")
		r.Confidence = c
	}

	flags, unknown := lead.ParseFlags(raw.Signals)
	r.Signals = flags
	if len(unknown) > 0 {
		log.Warn().Strs("signals", unknown).Msg("ignoring unknown signal flags")
	}

	return r
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
