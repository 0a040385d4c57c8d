// Package lead defines the signal records ranked by leadradar and the
// configuration types (flags, weights, keyword graph) that score them.
package lead

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Record is one observed organizational event. Records are treated as
// immutable once ingested; ranking always produces new ScoredRecords.
type Record struct {
	ID              string   `json:"id"`
	Organization    string   `json:"organization"`
	Title           string   `json:"title"`
	SignalType      string   `json:"signal_type,omitempty"`
	Snippet         string   `json:"snippet,omitempty"`
	Sector          string   `json:"sector,omitempty"`
	Location        string   `json:"location,omitempty"`
	URL             string   `json:"url,omitempty"`
	Date            Date     `json:"date"`
	Confidence      float64  `json:"confidence"`
	Signals         Flags    `json:"signals"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"` // source hint, replaced by matching
	OrgSize         string   `json:"org_size,omitempty"`
}

// Breakdown records how a score was composed
type Breakdown struct {
	Contributions  map[string]float64 `json:"contributions"`
	Base           float64            `json:"base"`
	AgeDays        int                `json:"age_days"`
	RecencyFactor  float64            `json:"recency_factor"`
	LocationFactor float64            `json:"location_factor"`
	ConfidenceTerm float64            `json:"confidence_term"`
	Raw            float64            `json:"raw"`
	Score          int                `json:"score"`
}

// ScoredRecord is a Record with its derived score and keyword matches
type ScoredRecord struct {
	Record
	Score           int       `json:"score"`
	MatchedCount    int       `json:"matched_count"`
	MatchedKeywords []string  `json:"matched_keywords"`
	Breakdown       Breakdown `json:"breakdown"`
}

// ClampConfidence limits c to [0, 1]. NaN becomes 0.
func ClampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}

// DedupKey returns the normalized identity of a lead
func (r Record) DedupKey() string {
	return strings.ToLower(r.Organization + "::" + r.Title)
}

// Date is a calendar date in UTC. The zero value means the date is unknown.
type Date struct {
	t time.Time
}

// dateLayouts are tried in order by ParseDate
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02.01.2006",
}

// NewDate returns the given calendar date
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in UTC
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// ParseDate parses YYYY-MM-DD, RFC 3339 or DD.MM.YYYY
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// IsZero reports whether the date is unknown
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the date at midnight UTC
func (d Date) Time() time.Time { return d.t }

// String formats the date as YYYY-MM-DD, or "" when unknown
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// DaysSince returns the whole days from d to now, clamped at zero
func (d Date) DaysSince(now Date) int {
	days := int(math.Round(now.t.Sub(d.t).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// MarshalJSON encodes the date as "YYYY-MM-DD" or null
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any layout understood by ParseDate. Empty and null
// values leave the date unknown.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
