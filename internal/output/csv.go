package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vijay-prabhu/leadradar/internal/lead"
)

// ExportHeader is the column order of CSV exports
var ExportHeader = []string{
	"id", "score", "organization", "title", "signalType", "location",
	"snippet", "url", "date", "confidence", "matchedKeywords",
}

// ExportOptions controls how results are flattened
type ExportOptions struct {
	SnippetMaxLength int    // In runes; <= 0 keeps the full snippet
	KeywordDelimiter string // Joins matched keywords; defaults to "|"
}

// ExportRow is the flat form of a scored record
type ExportRow struct {
	ID              string  `json:"id"`
	Score           int     `json:"score"`
	Organization    string  `json:"organization"`
	Title           string  `json:"title"`
	SignalType      string  `json:"signalType"`
	Location        string  `json:"location"`
	Snippet         string  `json:"snippet"`
	URL             string  `json:"url"`
	Date            string  `json:"date"`
	Confidence      float64 `json:"confidence"`
	MatchedKeywords string  `json:"matchedKeywords"`
}

// Fields returns the row in ExportHeader order
func (r ExportRow) Fields() []string {
	return []string{
		r.ID,
		strconv.Itoa(r.Score),
		r.Organization,
		r.Title,
		r.SignalType,
		r.Location,
		r.Snippet,
		r.URL,
		r.Date,
		strconv.FormatFloat(r.Confidence, 'f', -1, 64),
		r.MatchedKeywords,
	}
}

// ExportRows flattens results in order
func ExportRows(results []lead.ScoredRecord, opts ExportOptions) []ExportRow {
	delim := opts.KeywordDelimiter
	if delim == "" {
		delim = "|"
	}

	rows := make([]ExportRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ExportRow{
			ID:              r.ID,
			Score:           r.Score,
			Organization:    r.Organization,
			Title:           r.Title,
			SignalType:      r.SignalType,
			Location:        r.Location,
			Snippet:         clip(r.Snippet, opts.SnippetMaxLength),
			URL:             r.URL,
			Date:            r.Date.String(),
			Confidence:      r.Confidence,
			MatchedKeywords: strings.Join(r.MatchedKeywords, delim),
		})
	}
	return rows
}

// WriteCSV writes results as CSV with a header row. Fields containing a
// comma, quote or line break are quoted, with quotes doubled.
func WriteCSV(w io.Writer, results []lead.ScoredRecord, opts ExportOptions) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range ExportRows(results, opts) {
		if err := cw.Write(row.Fields()); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteExportJSON writes results as a JSON array of export rows
func WriteExportJSON(w io.Writer, results []lead.ScoredRecord, opts ExportOptions) error {
	return JSONTo(w, ExportRows(results, opts))
}

// clip keeps the first max runes of s
func clip(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
