package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/filter"
	"github.com/vijay-prabhu/leadradar/internal/lead"
	"github.com/vijay-prabhu/leadradar/internal/ranking"
)

const (
	maxKeywordChips = 6  // Keywords shown per row
	contextRunes    = 40 // Runes kept either side of a keyword in detail view
)

// LeadDetail is one lead with the keyword context shown by `show`
type LeadDetail struct {
	Rank    int               `json:"rank"`
	Lead    lead.ScoredRecord `json:"lead"`
	Context []string          `json:"context,omitempty"`
}

// NewLeadDetail pulls the text around each matched keyword out of the
// title and snippet
func NewLeadDetail(rank int, s lead.ScoredRecord) *LeadDetail {
	text := strings.TrimSpace(s.Title + " " + s.Snippet)
	return &LeadDetail{
		Rank:    rank,
		Lead:    s,
		Context: filter.ExtractKeywordContext(text, s.MatchedKeywords, contextRunes),
	}
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	t := NewTerminal(w)

	switch v := data.(type) {
	case ranking.Result:
		return leadsTable(w, t, v)
	case *LeadDetail:
		return leadDetail(w, t, v)
	case ranking.Summary:
		return statsTable(w, v)
	case lead.Weights:
		return weightsTable(w, v)
	case lead.KeywordGraph:
		return themesTable(w, v)
	case []config.SourceConfig:
		return sourcesTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

// Summary returns the headline for a run, counting leads before the min score cut
func Summary(res ranking.Result) string {
	if res.PreCutCount == 1 {
		return "1 early-signal lead"
	}
	return fmt.Sprintf("%d early-signal leads", res.PreCutCount)
}

func leadsTable(w io.Writer, t *Terminal, res ranking.Result) error {
	fmt.Fprintln(w, Summary(res))
	if len(res.Results) == 0 {
		fmt.Fprintln(w, "No leads above the minimum score.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Score", "Organization", "Title", "Signal", "Location", "Date", "Conf", "Keywords")

	for i, r := range res.Results {
		row := []string{
			strconv.Itoa(i + 1),
			t.Color(ToneColor(r.Score), strconv.Itoa(r.Score)),
			truncate(r.Organization, 28),
			truncate(r.Title, 36),
			truncate(r.SignalType, 24),
			truncate(r.Location, 20),
			r.Date.String(),
			fmt.Sprintf("%.0f%%", r.Confidence*100),
			keywordChips(r.MatchedKeywords),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}

func keywordChips(terms []string) string {
	if len(terms) <= maxKeywordChips {
		return strings.Join(terms, ", ")
	}
	return strings.Join(terms[:maxKeywordChips], ", ") + fmt.Sprintf(" +%d", len(terms)-maxKeywordChips)
}

func leadDetail(w io.Writer, t *Terminal, d *LeadDetail) error {
	r := d.Lead
	b := r.Breakdown

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "#%d  %s\n", d.Rank, r.Organization)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "ID:          %s\n", r.ID)
	fmt.Fprintf(w, "Title:       %s\n", r.Title)
	if r.SignalType != "" {
		fmt.Fprintf(w, "Signal:      %s\n", r.SignalType)
	}
	if r.Sector != "" {
		fmt.Fprintf(w, "Sector:      %s\n", r.Sector)
	}
	if r.OrgSize != "" {
		fmt.Fprintf(w, "Org size:    %s\n", r.OrgSize)
	}
	fmt.Fprintf(w, "Location:    %s\n", r.Location)
	date := r.Date.String()
	if date == "" {
		date = "unknown"
	}
	fmt.Fprintf(w, "Date:        %s\n", date)
	fmt.Fprintf(w, "Confidence:  %.0f%%\n", r.Confidence*100)
	if r.URL != "" {
		fmt.Fprintf(w, "URL:         %s\n", r.URL)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Score:       %s\n", t.Color(ToneColor(r.Score), strconv.Itoa(r.Score)))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, name := range lead.WeightNames() {
		if v, ok := b.Contributions[name]; ok {
			fmt.Fprintf(w, "  + %-22s %5.2f\n", name, v)
		}
	}
	fmt.Fprintf(w, "  = base                   %5.2f\n", b.Base)
	fmt.Fprintf(w, "  x recency (%2d days)      %5.2f\n", b.AgeDays, b.RecencyFactor)
	fmt.Fprintf(w, "  x location               %5.2f\n", b.LocationFactor)
	fmt.Fprintf(w, "  + confidence x 2         %5.2f\n", b.ConfidenceTerm)
	fmt.Fprintf(w, "  x 10 = %.2f -> %d\n", b.Raw, b.Score)

	if len(r.MatchedKeywords) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Keywords (%d): %s\n", r.MatchedCount, strings.Join(r.MatchedKeywords, ", "))
	}
	if len(d.Context) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Context:")
		for _, c := range d.Context {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}

	return nil
}

func statsTable(w io.Writer, s ranking.Summary) error {
	fmt.Fprintln(w, "Lead Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Records in batch:       %d\n", s.Stats.Input)
	fmt.Fprintf(w, "Passed filters:         %d\n", s.Stats.Passed)
	fmt.Fprintf(w, "Duplicates removed:     %d\n", s.Stats.Duplicates)
	fmt.Fprintf(w, "Early-signal leads:     %d\n", s.Total)
	fmt.Fprintf(w, "Shown (>= min score):   %d\n", s.Shown)
	if s.Shown > 0 {
		fmt.Fprintf(w, "Top score:              %d\n", s.TopScore)
		fmt.Fprintf(w, "Mean score:             %.1f\n", s.MeanScore)
	}

	for _, section := range []struct {
		title  string
		counts []ranking.Count
	}{
		{"Signals", s.ByFlag},
		{"Themes", s.ByTheme},
		{"Tones", s.ByTone},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, section.title)
		for _, c := range section.counts {
			fmt.Fprintf(w, "  %-22s %d\n", c.Name, c.Count)
		}
	}

	return nil
}

func weightsTable(w io.Writer, weights lead.Weights) error {
	table := tablewriter.NewWriter(w)
	table.Header("Weight", "Signal", "Value")

	values := weights.Map()
	for _, name := range lead.WeightNames() {
		label := ""
		if f, ok := lead.ParseFlag(name); ok {
			label = f.Label()
		}
		if err := table.Append([]string{name, label, strconv.FormatFloat(values[name], 'f', 2, 64)}); err != nil {
			return err
		}
	}

	return table.Render()
}

func themesTable(w io.Writer, g lead.KeywordGraph) error {
	if len(g.Themes) == 0 {
		fmt.Fprintln(w, "No keyword themes configured.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Theme", "Terms")

	for _, theme := range g.Themes {
		if err := table.Append([]string{theme.Label, strings.Join(theme.Terms, ", ")}); err != nil {
			return err
		}
	}

	return table.Render()
}

func sourcesTable(w io.Writer, sources []config.SourceConfig) error {
	if len(sources) == 0 {
		fmt.Fprintln(w, "No sources configured.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Kind", "Label", "URL")

	for _, s := range sources {
		if err := table.Append([]string{s.ID, s.Kind, s.Label, s.URL}); err != nil {
			return err
		}
	}

	return table.Render()
}

// truncate shortens s to max runes, marking the cut with "..."
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
