package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/lead"
	"github.com/vijay-prabhu/leadradar/internal/ranking"
)

func sampleResults() []lead.ScoredRecord {
	return []lead.ScoredRecord{
		{
			Record: lead.Record{
				ID:           "L-001",
				Organization: "Stealth EV Systems GmbH",
				Title:        `EU "Market Entry", Program`,
				SignalType:   "Stealth hiring pattern",
				Location:     "Berlin, Germany",
				Snippet:      strings.Repeat("ä", 350),
				URL:          "https://example.com/lead/stealth-ev",
				Date:         lead.NewDate(2025, time.October, 20),
				Confidence:   0.78,
			},
			Score:           117,
			MatchedKeywords: []string{"market entry", "go-to-market"},
		},
		{
			Record: lead.Record{
				ID:           "L-002",
				Organization: "Helix Bio",
				Title:        "Pilot labs\nramp-up",
				Confidence:   0.7,
			},
			Score: 64,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults(), ExportOptions{SnippetMaxLength: 300, KeywordDelimiter: "|"}))

	assert.True(t, strings.HasPrefix(buf.String(),
		"id,score,organization,title,signalType,location,snippet,url,date,confidence,matchedKeywords\n"))
	assert.Contains(t, buf.String(), `"EU ""Market Entry"", Program"`)
	assert.Contains(t, buf.String(), `"Berlin, Germany"`)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[1]
	assert.Equal(t, "L-001", first[0])
	assert.Equal(t, "117", first[1])
	assert.Equal(t, `EU "Market Entry", Program`, first[3])
	assert.Equal(t, 300, len([]rune(first[6])), "snippet truncated by runes")
	assert.Equal(t, "2025-10-20", first[8])
	assert.Equal(t, "0.78", first[9])
	assert.Equal(t, "market entry|go-to-market", first[10])

	second := rows[2]
	assert.Equal(t, "Pilot labs\nramp-up", second[3])
	assert.Equal(t, "", second[8], "unknown date exports empty")
	assert.Equal(t, "", second[10])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, ExportOptions{}))
	assert.Equal(t, strings.Join(ExportHeader, ",")+"\n", buf.String())
}

func TestWriteExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExportJSON(&buf, sampleResults(), ExportOptions{SnippetMaxLength: 10, KeywordDelimiter: "; "}))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "market entry; go-to-market", rows[0]["matchedKeywords"])
	assert.Equal(t, float64(117), rows[0]["score"])
	assert.Equal(t, strings.Repeat("ä", 10), rows[0]["snippet"])
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "3 early-signal leads", Summary(ranking.Result{PreCutCount: 3}))
	assert.Equal(t, "1 early-signal lead", Summary(ranking.Result{PreCutCount: 1}))
	assert.Equal(t, "0 early-signal leads", Summary(ranking.Result{}))
}

func TestTableTo_Leads(t *testing.T) {
	res := ranking.Result{Results: sampleResults(), PreCutCount: 4}

	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "4 early-signal leads")
	assert.Contains(t, out, "117")
	assert.Contains(t, out, "Helix Bio")
	assert.Contains(t, out, "78%")
	assert.NotContains(t, out, "\033[", "no colors outside a terminal")
}

func TestTableTo_NoLeads(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, ranking.Result{PreCutCount: 2}))
	assert.Contains(t, buf.String(), "2 early-signal leads")
	assert.Contains(t, buf.String(), "No leads above the minimum score.")
}

func TestTableTo_Detail(t *testing.T) {
	s := sampleResults()[0]
	s.Breakdown = lead.Breakdown{
		Contributions:  map[string]float64{"fundingAnnounced": 2.0, "keywordFit": 1.8},
		Base:           3.8,
		AgeDays:        4,
		RecencyFactor:  1.3,
		LocationFactor: 1.3,
		ConfidenceTerm: 1.56,
		Raw:            79.82,
		Score:          80,
	}

	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, &LeadDetail{Rank: 1, Lead: s, Context: []string{"...EU Market Entry..."}}))

	out := buf.String()
	assert.Contains(t, out, "#1  Stealth EV Systems GmbH")
	assert.Contains(t, out, "fundingAnnounced")
	assert.Contains(t, out, "79.82 -> 80")
	assert.Contains(t, out, "...EU Market Entry...")
}

func TestNewLeadDetail(t *testing.T) {
	s := lead.ScoredRecord{
		Record:          lead.Record{Title: "Series A closed; market entry DACH planned"},
		MatchedKeywords: []string{"Market Entry", "not in text"},
	}

	d := NewLeadDetail(3, s)

	assert.Equal(t, 3, d.Rank)
	assert.Equal(t, []string{"Series A closed; market entry DACH planned"}, d.Context)
}

func TestTableTo_Config(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, TableTo(&buf, lead.DefaultWeights()))
	assert.Contains(t, buf.String(), "leadershipHire")
	assert.Contains(t, buf.String(), "2.20")
	assert.Contains(t, buf.String(), "Leadership Hire")

	buf.Reset()
	require.NoError(t, TableTo(&buf, lead.DefaultKeywordGraph()))
	assert.Contains(t, buf.String(), "Market Entry")

	buf.Reset()
	require.NoError(t, TableTo(&buf, config.DefaultSources()))
	assert.Contains(t, buf.String(), "Handelsregister")

	buf.Reset()
	require.NoError(t, TableTo(&buf, ranking.Summary{Total: 2, Shown: 1, ByFlag: []ranking.Count{{Name: "eventsHosted", Count: 1}}}))
	assert.Contains(t, buf.String(), "eventsHosted")

	assert.Error(t, TableTo(&buf, 42))
}

func TestOutputTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputTo(&buf, "json", map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, buf.String())

	assert.Error(t, OutputTo(&buf, "xml", nil))
}

func TestKeywordChips(t *testing.T) {
	assert.Equal(t, "a, b", keywordChips([]string{"a", "b"}))
	assert.Equal(t, "a, b, c, d, e, f +2", keywordChips([]string{"a", "b", "c", "d", "e", "f", "g", "h"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "München", truncate("München", 10))
	assert.Equal(t, "Münc...", truncate("München, Bayern", 7))
}

func TestToneColor(t *testing.T) {
	assert.Equal(t, ColorRed, ToneColor(117))
	assert.Equal(t, ColorYellow, ToneColor(85))
	assert.Equal(t, ColorGreen, ToneColor(60))
	assert.Equal(t, ColorGray, ToneColor(10))

	term := &Terminal{UseColor: true}
	assert.Equal(t, ColorRed+"x"+ColorReset, term.Color(ColorRed, "x"))
	assert.Equal(t, "x", (&Terminal{}).Color(ColorRed, "x"))
}
