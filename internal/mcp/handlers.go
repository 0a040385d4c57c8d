package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/filter"
	"github.com/vijay-prabhu/leadradar/internal/lead"
	"github.com/vijay-prabhu/leadradar/internal/output"
	"github.com/vijay-prabhu/leadradar/internal/ranking"
)

const defaultLimit = 20

func (s *Server) registerHandlers() {
	s.handlers["rank_leads"] = s.handleRankLeads
	s.handlers["get_lead"] = s.handleGetLead
	s.handlers["list_themes"] = s.handleListThemes
	s.handlers["get_weights"] = s.handleGetWeights
}

// rankLeadsParams overlays the configured filters; nil fields keep the config value
type rankLeadsParams struct {
	Query          *string `json:"query"`
	Region         *string `json:"region"`
	MinScore       *int    `json:"min_score"`
	HighConfidence *bool   `json:"high_confidence"`
	Now            string  `json:"now"`
	Limit          int     `json:"limit"`
}

type rankLeadsResult struct {
	Total   int                 `json:"total"`
	Shown   int                 `json:"shown"`
	Stats   ranking.Stats       `json:"stats"`
	Results []lead.ScoredRecord `json:"results"`
}

func (s *Server) handleRankLeads(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p rankLeadsParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	cfg := s.base
	if p.Query != nil {
		cfg.Criteria.Query = *p.Query
	}
	if p.Region != nil {
		cfg.Criteria.Region = s.config.RegionFilter(*p.Region)
	}
	if p.MinScore != nil {
		if *p.MinScore < 0 || *p.MinScore > config.MaxMinScore {
			return nil, fmt.Errorf("min_score must be between 0 and %d", config.MaxMinScore)
		}
		cfg.Criteria.MinScore = *p.MinScore
	}
	if p.HighConfidence != nil {
		cfg.Criteria.OnlyHighConfidence = *p.HighConfidence
	}

	now, err := s.parseNow(p.Now)
	if err != nil {
		return nil, err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	res := s.metrics.Timed(s.records, cfg, now)
	results := res.Top(limit)
	if results == nil {
		results = []lead.ScoredRecord{}
	}

	return rankLeadsResult{
		Total:   res.PreCutCount,
		Shown:   len(res.Results),
		Stats:   res.Stats,
		Results: results,
	}, nil
}

type getLeadParams struct {
	ID  string `json:"id"`
	Now string `json:"now"`
}

// handleGetLead ranks without filters so every lead that survives dedup can
// be inspected
func (s *Server) handleGetLead(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getLeadParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	now, err := s.parseNow(p.Now)
	if err != nil {
		return nil, err
	}

	cfg := s.base
	cfg.Criteria = filter.Criteria{}
	res := s.metrics.Timed(s.records, cfg, now)

	for i, r := range res.Results {
		if r.ID == p.ID {
			return output.NewLeadDetail(i+1, r), nil
		}
	}

	return nil, fmt.Errorf("lead not found: %s", p.ID)
}

func (s *Server) handleListThemes(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return s.base.Keywords, nil
}

func (s *Server) handleGetWeights(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return s.base.Weights.Map(), nil
}

func (s *Server) parseNow(v string) (time.Time, error) {
	if v == "" {
		return s.now(), nil
	}
	d, err := lead.ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid now: %w", err)
	}
	return d.Time(), nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case uriSummary:
		return s.getResourceSummary()
	case uriTop:
		return s.getResourceTop()
	case uriThemes:
		return render(s.base.Keywords)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceSummary() (string, error) {
	res := s.metrics.Timed(s.records, s.base, s.now())
	return render(ranking.Summarize(res, s.base.Keywords))
}

func (s *Server) getResourceTop() (string, error) {
	res := s.metrics.Timed(s.records, s.base, s.now())
	res.Results = res.Top(topResourceSize)
	return render(res)
}

// render draws data with the plain-text table views
func render(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := output.TableTo(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
