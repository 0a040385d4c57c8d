package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/filter"
	"github.com/vijay-prabhu/leadradar/internal/lead"
	"github.com/vijay-prabhu/leadradar/internal/ranking"
)

// LeadsResponse is the body of GET /api/leads
type LeadsResponse struct {
	Total   int                 `json:"total"` // Leads before the min score cut
	Shown   int                 `json:"shown"`
	Stats   ranking.Stats       `json:"stats"`
	Results []lead.ScoredRecord `json:"results"`
}

// LeadResponse is the body of GET /api/leads/:id
type LeadResponse struct {
	Rank int               `json:"rank"`
	Lead lead.ScoredRecord `json:"lead"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "records": len(s.records)})
}

func (s *Server) listLeads(c *gin.Context) {
	cfg, err := s.criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now, err := s.nowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}

	res := s.metrics.Timed(s.records, cfg, now)
	results := res.Top(limit)
	if results == nil {
		results = []lead.ScoredRecord{}
	}

	c.JSON(http.StatusOK, LeadsResponse{
		Total:   res.PreCutCount,
		Shown:   len(res.Results),
		Stats:   res.Stats,
		Results: results,
	})
}

// getLead looks the id up in an unfiltered ranking, so any lead that
// survives dedup can be inspected regardless of the default filters
func (s *Server) getLead(c *gin.Context) {
	now, err := s.nowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := s.base
	cfg.Criteria = filter.Criteria{}
	res := s.metrics.Timed(s.records, cfg, now)

	id := c.Param("id")
	for i, r := range res.Results {
		if r.ID == id {
			c.JSON(http.StatusOK, LeadResponse{Rank: i + 1, Lead: r})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("lead %q not found", id)})
}

func (s *Server) listThemes(c *gin.Context) {
	c.JSON(http.StatusOK, s.base.Keywords)
}

func (s *Server) getWeights(c *gin.Context) {
	c.JSON(http.StatusOK, s.base.Weights.Map())
}

func (s *Server) listSources(c *gin.Context) {
	sources := s.cfg.Sources
	if sources == nil {
		sources = []config.SourceConfig{}
	}
	c.JSON(http.StatusOK, sources)
}

// criteriaFromQuery overlays q, region, min_score and high_confidence on
// the configured filters
func (s *Server) criteriaFromQuery(c *gin.Context) (ranking.Config, error) {
	cfg := s.base

	if q, ok := c.GetQuery("q"); ok {
		cfg.Criteria.Query = q
	}
	if region, ok := c.GetQuery("region"); ok {
		cfg.Criteria.Region = s.cfg.RegionFilter(region)
	}
	if v, ok := c.GetQuery("min_score"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > config.MaxMinScore {
			return cfg, fmt.Errorf("min_score must be an integer between 0 and %d", config.MaxMinScore)
		}
		cfg.Criteria.MinScore = n
	}
	if v, ok := c.GetQuery("high_confidence"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("high_confidence must be a boolean")
		}
		cfg.Criteria.OnlyHighConfidence = b
	}

	return cfg, nil
}

func (s *Server) nowFromQuery(c *gin.Context) (time.Time, error) {
	v := c.Query("now")
	if v == "" {
		return s.now(), nil
	}
	d, err := lead.ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("now: %w", err)
	}
	return d.Time(), nil
}
