package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// listSeparator splits multi-valued CSV cells (signals, matched keywords)
const listSeparator = "|"

// csvColumns maps accepted header names to their canonical column
var csvColumns = map[string]string{
	"id":               "id",
	"org":              "organization",
	"organization":     "organization",
	"title":            "title",
	"signaltype":       "signal_type",
	"signal_type":      "signal_type",
	"snippet":          "snippet",
	"sector":           "sector",
	"location":         "location",
	"url":              "url",
	"date":             "date",
	"confidence":       "confidence",
	"signals":          "signals",
	"matchedkeywords":  "matched_keywords",
	"matched_keywords": "matched_keywords",
	"orgsize":          "org_size",
	"org_size":         "org_size",
}

// decodeCSV reads a header row followed by one record per row. Unknown
// columns are skipped; the score column of an export is ignored.
func decodeCSV(r io.Reader) ([]rawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	hasOrg := false
	for i, h := range header {
		columns[i] = csvColumns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))]
		hasOrg = hasOrg || columns[i] == "organization"
	}
	if !hasOrg {
		return nil, errors.New("header has no organization column")
	}

	var raws []rawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		var raw rawRecord
		for i, cell := range row {
			if i >= len(columns) {
				break
			}
			setCSVField(&raw, columns[i], cell)
		}
		raws = append(raws, raw)
	}

	return raws, nil
}

func setCSVField(raw *rawRecord, column, cell string) {
	switch column {
	case "id":
		raw.ID = cell
	case "organization":
		raw.Organization = cell
	case "title":
		raw.Title = cell
	case "signal_type":
		raw.SignalType = cell
	case "snippet":
		raw.Snippet = cell
	case "sector":
		raw.Sector = cell
	case "location":
		raw.Location = cell
	case "url":
		raw.URL = cell
	case "date":
		raw.Date = cell
	case "confidence":
		raw.Confidence = parseConfidence(cell)
	case "signals":
		for _, name := range splitList(cell) {
			if raw.Signals == nil {
				raw.Signals = make(map[string]bool)
			}
			raw.Signals[name] = true
		}
	case "matched_keywords":
		raw.MatchedKeywords = splitList(cell)
	case "org_size":
		raw.OrgSize = cell
	}
}

// parseConfidence returns NaN for unparseable cells so sanitization
// reports and clamps them like any other out-of-range value
func parseConfidence(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	c, err := strconv.ParseFloat(strings.Replace(cell, ",", ".", 1), 64)
	if err != nil {
		return math.NaN()
	}
	return c
}

func splitList(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
