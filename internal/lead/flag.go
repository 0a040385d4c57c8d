package lead

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Flag identifies one boolean organizational signal
type Flag int

const (
	FundingAnnounced Flag = iota
	TradeRegisterEntry
	LeadershipHire
	CareersPageAnomaly
	EventsHosted
	CustomerDemandPull

	// NumFlags is the size of the closed flag set. Keep it last.
	NumFlags
)

// flagNames holds the canonical name of every flag, indexed by Flag
var flagNames = [NumFlags]string{
	FundingAnnounced:   "fundingAnnounced",
	TradeRegisterEntry: "tradeRegisterEntry",
	LeadershipHire:     "leadershipHire",
	CareersPageAnomaly: "careersPageAnomaly",
	EventsHosted:       "eventsHosted",
	CustomerDemandPull: "customerDemandPull",
}

// flagAliases maps older field names and snake_case spellings to flags
var flagAliases = map[string]Flag{
	"fundingpr":            FundingAnnounced,
	"funding_announced":    FundingAnnounced,
	"traderegister":        TradeRegisterEntry,
	"trade_register_entry": TradeRegisterEntry,
	"leadershipjoin":       LeadershipHire,
	"leadership_hire":      LeadershipHire,
	"careerspage404":       CareersPageAnomaly,
	"careers_page_anomaly": CareersPageAnomaly,
	"meetupshosted":        EventsHosted,
	"events_hosted":        EventsHosted,
	"customerhiringpull":   CustomerDemandPull,
	"customer_demand_pull": CustomerDemandPull,
}

// AllFlags returns every flag in declaration order
func AllFlags() []Flag {
	flags := make([]Flag, NumFlags)
	for i := range flags {
		flags[i] = Flag(i)
	}
	return flags
}

// String returns the canonical flag name
func (f Flag) String() string {
	if f < 0 || f >= NumFlags {
		return fmt.Sprintf("Flag(%d)", int(f))
	}
	return flagNames[f]
}

// Label returns a human-readable label, e.g. "Funding Announced"
func (f Flag) Label() string {
	name := f.String()
	var b strings.Builder
	for i, r := range name {
		if i == 0 {
			b.WriteString(strings.ToUpper(string(r)))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseFlag resolves a canonical flag name or a known alias (case-insensitive)
func ParseFlag(name string) (Flag, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range flagNames {
		if strings.ToLower(n) == key {
			return Flag(i), true
		}
	}
	f, ok := flagAliases[key]
	return f, ok
}

// Flags is the set of signals observed for a record
type Flags uint32

// NewFlags builds a set from the given flags
func NewFlags(flags ...Flag) Flags {
	var s Flags
	for _, f := range flags {
		s = s.With(f)
	}
	return s
}

// Has reports whether f is set
func (s Flags) Has(f Flag) bool {
	if f < 0 || f >= NumFlags {
		return false
	}
	return s&(1<<uint(f)) != 0
}

// With returns a copy of the set with f set
func (s Flags) With(f Flag) Flags {
	if f < 0 || f >= NumFlags {
		return s
	}
	return s | 1<<uint(f)
}

// List returns the set flags in declaration order
func (s Flags) List() []Flag {
	var out []Flag
	for _, f := range AllFlags() {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Count returns the number of set flags
func (s Flags) Count() int {
	return len(s.List())
}

// ParseFlags builds a set from a name -> bool map. Unknown names are
// returned separately so the caller can decide how to report them.
func ParseFlags(m map[string]bool) (Flags, []string) {
	var s Flags
	var unknown []string
	for name, on := range m {
		f, ok := ParseFlag(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if on {
			s = s.With(f)
		}
	}
	sort.Strings(unknown)
	return s, unknown
}

// MarshalJSON encodes the set as an object of every flag name to its value
func (s Flags) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, NumFlags)
	for _, f := range AllFlags() {
		m[f.String()] = s.Has(f)
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object of flag name to bool. Unknown names are ignored.
func (s *Flags) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s, _ = ParseFlags(m)
	return nil
}
