package ingest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/leadradar/internal/lead"
)

func newTestLoader(buf *bytes.Buffer) Loader {
	return Loader{Logger: zerolog.New(buf).Level(zerolog.InfoLevel)}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"signals.json", FormatJSON, false},
		{"/tmp/Signals.YAML", FormatYAML, false},
		{"batch.yml", FormatYAML, false},
		{"export.csv", FormatCSV, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile_JSON(t *testing.T) {
	var buf bytes.Buffer
	records, err := newTestLoader(&buf).LoadFile(filepath.Join("testdata", "signals.json"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	r := records[0]
	assert.Equal(t, "L-001", r.ID)
	assert.Equal(t, "Stealth EV Systems GmbH", r.Organization)
	assert.Equal(t, "Stealth hiring pattern", r.SignalType)
	assert.Equal(t, "2025-10-20", r.Date.String())
	assert.Equal(t, 0.78, r.Confidence)
	assert.Equal(t, "50-200", r.OrgSize)
	assert.Equal(t, lead.NewFlags(
		lead.FundingAnnounced, lead.TradeRegisterEntry, lead.LeadershipHire,
		lead.CareersPageAnomaly, lead.CustomerDemandPull,
	), r.Signals)
	assert.Len(t, r.MatchedKeywords, 4)

	assert.Equal(t, "München, Bayern", records[1].Location)
	assert.Empty(t, buf.String(), "clean input logs no warnings")
}

func TestLoadFile_YAML(t *testing.T) {
	var buf bytes.Buffer
	records, err := newTestLoader(&buf).LoadFile(filepath.Join("testdata", "signals.yaml"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Y-001", first.ID)
	assert.Equal(t, "Funding round", first.SignalType)
	assert.Equal(t, "2025-10-21", first.Date.String())
	assert.Equal(t, lead.NewFlags(lead.FundingAnnounced, lead.LeadershipHire), first.Signals)
	assert.Equal(t, []string{"go-to-market"}, first.MatchedKeywords)
	assert.Equal(t, "10-50", first.OrgSize)

	second := records[1]
	_, err = uuid.Parse(second.ID)
	assert.NoError(t, err, "missing id is replaced by a uuid")
	assert.True(t, second.Date.IsZero())
	assert.Equal(t, 1.0, second.Confidence)
	assert.Equal(t, lead.NewFlags(lead.EventsHosted), second.Signals)

	logs := buf.String()
	assert.Contains(t, logs, "assigned one")
	assert.Contains(t, logs, "unparseable date")
	assert.Contains(t, logs, "confidence out of range")
	assert.Contains(t, logs, "crystalBall")
}

func TestLoadFile_CSV(t *testing.T) {
	var buf bytes.Buffer
	records, err := newTestLoader(&buf).LoadFile(filepath.Join("testdata", "signals.csv"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	acme := records[0]
	assert.Equal(t, "C-001", acme.ID)
	assert.Equal(t, "Acme GmbH", acme.Organization)
	assert.Equal(t, "Stuttgart, Baden-Württemberg", acme.Location)
	assert.Equal(t, `New branch, "DACH" focus`, acme.Snippet)
	assert.Equal(t, "2025-10-20", acme.Date.String())
	assert.Equal(t, 0.74, acme.Confidence)
	assert.Equal(t, lead.NewFlags(lead.TradeRegisterEntry, lead.CustomerDemandPull), acme.Signals)
	assert.Equal(t, []string{"expansion", "launch"}, acme.MatchedKeywords)

	beta := records[1]
	assert.Equal(t, 0.5, beta.Confidence, "decimal comma accepted")
	assert.True(t, beta.Date.IsZero())
	assert.Equal(t, lead.Flags(0), beta.Signals)
}

func TestDecode_CSVExportRoundTrip(t *testing.T) {
	in := "id,score,organization,title,signalType,location,snippet,url,date,confidence,matchedKeywords\n" +
		"L-9,117,Acme GmbH,Expansion,PR,Berlin,,https://x.test,2025-10-20,0.78,market entry|launch\n"

	records, err := Loader{Logger: zerolog.Nop()}.Decode(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme GmbH", records[0].Organization)
	assert.Equal(t, "PR", records[0].SignalType)
}

func TestDecode_Errors(t *testing.T) {
	l := Loader{Logger: zerolog.Nop()}

	_, err := l.Decode(strings.NewReader(`{"not":"an array"}`), FormatJSON)
	assert.Error(t, err)

	_, err = l.Decode(strings.NewReader("title,location\nx,y\n"), FormatCSV)
	assert.Error(t, err)

	_, err = l.Decode(strings.NewReader("[]"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.LoadFile(filepath.Join("testdata", "missing.json"))
	assert.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	l := Loader{Logger: zerolog.Nop()}

	records, err := l.Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = l.Decode(strings.NewReader(""), FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = l.Decode(strings.NewReader("[]"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecode_CSVBadConfidence(t *testing.T) {
	var buf bytes.Buffer
	in := "id,org,confidence\nX,Org,high\n"

	records, err := newTestLoader(&buf).Decode(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0.0, records[0].Confidence)
	assert.Contains(t, buf.String(), "confidence out of range")
}
