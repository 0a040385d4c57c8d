package lead

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	tests := []struct {
		name   string
		want   Flag
		wantOK bool
	}{
		{"fundingAnnounced", FundingAnnounced, true},
		{"FUNDINGANNOUNCED", FundingAnnounced, true},
		{"fundingPR", FundingAnnounced, true},
		{"leadershipJoin", LeadershipHire, true},
		{"careersPage404", CareersPageAnomaly, true},
		{"meetupsHosted", EventsHosted, true},
		{"customerHiringPull", CustomerDemandPull, true},
		{" trade_register_entry ", TradeRegisterEntry, true},
		{"somethingElse", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlag(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFlagLabel(t *testing.T) {
	assert.Equal(t, "Funding Announced", FundingAnnounced.Label())
	assert.Equal(t, "Careers Page Anomaly", CareersPageAnomaly.Label())
	assert.Equal(t, "Flag(42)", Flag(42).String())
}

func TestFlags(t *testing.T) {
	s := NewFlags(FundingAnnounced, EventsHosted)

	assert.True(t, s.Has(FundingAnnounced))
	assert.True(t, s.Has(EventsHosted))
	assert.False(t, s.Has(LeadershipHire))
	assert.False(t, s.Has(NumFlags))
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []Flag{FundingAnnounced, EventsHosted}, s.List())
	assert.Equal(t, s, s.With(NumFlags), "out-of-range flags are ignored")
}

func TestParseFlags(t *testing.T) {
	s, unknown := ParseFlags(map[string]bool{
		"fundingPR":      true,
		"tradeRegister":  false,
		"leadershipJoin": true,
		"mystery":        true,
	})

	assert.Equal(t, NewFlags(FundingAnnounced, LeadershipHire), s)
	assert.Equal(t, []string{"mystery"}, unknown)
}

func TestFlagsJSON(t *testing.T) {
	s := NewFlags(CustomerDemandPull)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var m map[string]bool
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, int(NumFlags))
	assert.True(t, m["customerDemandPull"])
	assert.False(t, m["fundingAnnounced"])

	var decoded Flags
	require.NoError(t, json.Unmarshal([]byte(`{"meetupsHosted":true,"unknown":true}`), &decoded))
	assert.Equal(t, NewFlags(EventsHosted), decoded)
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights(map[string]float64{
		"fundingPR":    2.5,
		"eventsHosted": 0.4,
		"keyword_fit":  1.1,
		"germanyBias":  1.2,
		"recencyBoost": 1.4,
	})
	require.NoError(t, err)

	assert.Equal(t, 2.5, w.Flag(FundingAnnounced))
	assert.Equal(t, 0.4, w.Flag(EventsHosted))
	assert.Equal(t, 0.0, w.Flag(LeadershipHire), "missing flags contribute zero")
	assert.Equal(t, 1.1, w.KeywordFit)
	assert.Equal(t, 1.2, w.LocationBias)
	assert.Equal(t, 1.4, w.RecencyBoost)
}

func TestParseWeights_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]float64
	}{
		{"negative flag weight", map[string]float64{"fundingAnnounced": -1}},
		{"negative factor", map[string]float64{"recencyBoost": -0.1}},
		{"unknown name", map[string]float64{"vibes": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeights(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestWeightsMapRoundTrip(t *testing.T) {
	def := DefaultWeights()

	parsed, err := ParseWeights(def.Map())
	require.NoError(t, err)
	assert.Equal(t, def, parsed)
	assert.Len(t, WeightNames(), int(NumFlags)+3)
}

func TestKeywordGraphNormalize(t *testing.T) {
	g := KeywordGraph{Themes: []Theme{
		{Label: " Market Entry ", Terms: []string{"market entry", "", "   ", " launch ", "bad\x00term"}},
		{Label: "Empty", Terms: nil},
	}}

	n := g.Normalize()

	require.Len(t, n.Themes, 2)
	assert.Equal(t, "Market Entry", n.Themes[0].Label)
	assert.Equal(t, []string{"market entry", "launch"}, n.Themes[0].Terms)
	assert.Empty(t, n.Themes[1].Terms)
	assert.Equal(t, 2, n.TermCount())

	// The source graph is untouched
	assert.Len(t, g.Themes[0].Terms, 5)
}

func TestParseTerms(t *testing.T) {
	assert.Equal(t, []string{"brand", "demand gen"}, ParseTerms(" brand, ,demand gen ,"))
	assert.Nil(t, ParseTerms(""))
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0.0, ClampConfidence(-0.3))
	assert.Equal(t, 1.0, ClampConfidence(1.7))
	assert.Equal(t, 0.78, ClampConfidence(0.78))
	assert.Equal(t, 0.0, ClampConfidence(math.NaN()))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-10-20", "2025-10-20", false},
		{"2025-10-20T23:30:00+02:00", "2025-10-20", false},
		{"20.10.2025", "2025-10-20", false},
		{"yesterday", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, d.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDateDaysSince(t *testing.T) {
	now := NewDate(2025, time.October, 24)

	assert.Equal(t, 4, NewDate(2025, time.October, 20).DaysSince(now))
	assert.Equal(t, 14, NewDate(2025, time.October, 10).DaysSince(now))
	assert.Equal(t, 0, NewDate(2025, time.October, 30).DaysSince(now), "future dates are zero-age")
}

func TestDateJSON(t *testing.T) {
	data, err := json.Marshal(NewDate(2025, time.October, 19))
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-10-19"`, string(data))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-10-18"`), &d))
	assert.Equal(t, "2025-10-18", d.String())
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDedupKey(t *testing.T) {
	a := Record{Organization: "Acme GmbH", Title: "Expansion"}
	b := Record{Organization: "ACME GMBH", Title: "expansion"}
	assert.Equal(t, a.DedupKey(), b.DedupKey())
}
