package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/lead"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRecords() []lead.Record {
	return []lead.Record{
		{
			ID:           "L-001",
			Organization: "Stealth EV Systems GmbH",
			Title:        "EU Market Entry Program",
			Location:     "Berlin, Germany",
			Date:         lead.NewDate(2025, time.October, 20),
			Confidence:   0.78,
			Signals:      lead.NewFlags(lead.FundingAnnounced, lead.LeadershipHire),
		},
		{
			ID:           "L-002",
			Organization: "Helix Bio",
			Title:        "Pilot labs",
			Location:     "München, Bayern",
			Date:         lead.NewDate(2025, time.October, 19),
			Confidence:   0.72,
			Signals:      lead.NewFlags(lead.TradeRegisterEntry, lead.LeadershipHire, lead.EventsHosted),
		},
		{
			ID:           "L-003",
			Organization: "Quiet Co",
			Title:        "Nothing much",
			Location:     "Wien",
			Confidence:   0.3,
		},
	}
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	s, err := New(Options{
		Records: testRecords(),
		Config:  config.Default(),
		Logger:  zerolog.Nop(),
		Now:     func() time.Time { return time.Date(2025, time.October, 24, 8, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return s.Router()
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListLeads(t *testing.T) {
	r := newTestServer(t)

	w := get(t, r, "/api/leads")
	require.Equal(t, http.StatusOK, w.Code)

	var body LeadsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	// Default min score 60 cuts the low-signal record
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 2, body.Shown)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "L-001", body.Results[0].ID)
	assert.Equal(t, 117, body.Results[0].Score)
}

func TestListLeads_QueryOverrides(t *testing.T) {
	r := newTestServer(t)

	tests := []struct {
		name      string
		query     string
		wantIDs   []string
		wantTotal int
	}{
		{"min score zero", "?min_score=0", []string{"L-001", "L-002", "L-003"}, 3},
		{"region", "?region=Bayern", []string{"L-002"}, 1},
		{"nationwide region", "?region=Bundesweit&min_score=0", []string{"L-001", "L-002", "L-003"}, 3},
		{"query", "?q=helix", []string{"L-002"}, 1},
		{"high confidence", "?high_confidence=true&min_score=0", []string{"L-001", "L-002"}, 2},
		{"limit", "?limit=1", []string{"L-001"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, r, "/api/leads"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var body LeadsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

			var ids []string
			for _, l := range body.Results {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantTotal, body.Total)
		})
	}
}

func TestListLeads_NowParam(t *testing.T) {
	r := newTestServer(t)

	w := get(t, r, "/api/leads?now=2026-01-01&min_score=0")
	require.Equal(t, http.StatusOK, w.Code)

	var body LeadsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Results)
	assert.Equal(t, 1.0, body.Results[0].Breakdown.RecencyFactor, "old signals lose the recency boost")
}

func TestListLeads_BadParams(t *testing.T) {
	r := newTestServer(t)

	for _, q := range []string{"?min_score=abc", "?min_score=500", "?high_confidence=maybe", "?limit=-1", "?now=tomorrow"} {
		w := get(t, r, "/api/leads"+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Contains(t, w.Body.String(), "error", q)
	}
}

func TestGetLead(t *testing.T) {
	r := newTestServer(t)

	w := get(t, r, "/api/leads/L-003")
	require.Equal(t, http.StatusOK, w.Code)

	var body LeadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Rank)
	assert.Equal(t, "Quiet Co", body.Lead.Organization)

	w = get(t, r, "/api/leads/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfigEndpoints(t *testing.T) {
	r := newTestServer(t)

	w := get(t, r, "/api/weights")
	require.Equal(t, http.StatusOK, w.Code)
	var weights map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &weights))
	assert.Equal(t, 2.2, weights["leadershipHire"])

	w = get(t, r, "/api/themes")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Market Entry")

	w = get(t, r, "/api/sources")
	require.Equal(t, http.StatusOK, w.Code)
	var sources []config.SourceConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sources))
	assert.Len(t, sources, 5)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestServer(t)

	w := get(t, r, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","records":3}`, w.Body.String())

	get(t, r, "/api/leads")
	w = get(t, r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "leadradar_records_scored_total 3"))
}

func TestNew_InvalidWeights(t *testing.T) {
	cfg := config.Default()
	cfg.Weights["nonsense"] = 1

	_, err := New(Options{Config: cfg})
	assert.Error(t, err)
}
