// Package detect flags dataset columns that likely carry personally
// identifiable information. It is a best-effort, explainable heuristic:
// column-name keywords, value regexes, dataset-relative statistical
// thresholds, and coordinate-range pairing. Results are hints for human
// review, not a compliance verdict.
package detect

import (
	"strings"

	"github.com/KaramelBytes/tablesafe-cli/internal/dataset"
)

// PairSeparator joins the two members of a coordinate pair when an entry
// is rendered as a single identifier.
const PairSeparator = " & "

// Pair names two numeric columns whose value ranges look like a coordinate
// pair. Lat is the column that passed the latitude range test.
type Pair struct {
	Lat string `yaml:"lat" json:"lat"`
	Lon string `yaml:"lon" json:"lon"`
}

func (p Pair) String() string { return p.Lat + PairSeparator + p.Lon }

// Entry is one flagged column or column pair with its reason tags.
// Exactly one of Column and Pair is set.
type Entry struct {
	Column  string   `yaml:"column,omitempty" json:"column,omitempty"`
	Pair    *Pair    `yaml:"pair,omitempty" json:"pair,omitempty"`
	Reasons []Reason `yaml:"reasons" json:"reasons"`
}

// Key returns the entry's identifier: the column name, or "lat & lon" for
// a pair. The joined form is presentation only; Pair keeps the structure.
func (e Entry) Key() string {
	if e.Pair != nil {
		return e.Pair.String()
	}
	return e.Column
}

// Report is the ordered sequence of flagged entries for one detection run.
// An empty report is valid and means no PII evidence was found.
type Report struct {
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Empty reports whether no column tripped any detector.
func (r *Report) Empty() bool { return len(r.Entries) == 0 }

// Flagged reports whether the identifier (column name or rendered pair)
// has at least one reason.
func (r *Report) Flagged(key string) bool {
	return len(r.Reasons(key)) > 0
}

// Reasons lists every reason recorded for the identifier, across entries.
func (r *Report) Reasons(key string) []Reason {
	var out []Reason
	for _, e := range r.Entries {
		if e.Key() == key {
			out = append(out, e.Reasons...)
		}
	}
	return out
}

// PIIColumns flattens the report into individual column names: singly
// flagged columns plus both members of every pair, deduplicated, in
// first-seen order.
func (r *Report) PIIColumns() []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, e := range r.Entries {
		if e.Pair != nil {
			add(e.Pair.Lat)
			add(e.Pair.Lon)
			continue
		}
		add(e.Column)
	}
	return out
}

// Detector runs the rule chain over a frame. The zero-config detector from
// New uses the fixed keyword set only.
type Detector struct {
	keywords []string
}

// Option configures a Detector.
type Option func(*Detector)

// WithKeywords layers extra case-insensitive name keywords on top of the
// fixed set.
func WithKeywords(extra ...string) Option {
	return func(d *Detector) {
		for _, kw := range extra {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				d.keywords = append(d.keywords, kw)
			}
		}
	}
}

// New builds a detector.
func New(opts ...Option) *Detector {
	d := &Detector{keywords: append([]string(nil), baseKeywords...)}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Check inspects every column and returns the flagged report. It never
// mutates the frame; running it twice on the same frame yields the same
// report. Dataset statistics are recomputed per call.
func (d *Detector) Check(f *dataset.Frame) *Report {
	cols := f.Columns()
	profiles := make([]Profile, len(cols))
	for i, c := range cols {
		profiles[i] = profileColumn(c)
	}
	stats := computeStats(profiles)

	rep := &Report{}
	var latCols, lonCols []string
	for i, c := range cols {
		if c.Kind == dataset.KindNumeric || c.Kind == dataset.KindTemporal {
			switch classifyCoordinate(c) {
			case coordLat:
				latCols = append(latCols, c.Name)
			case coordLon:
				lonCols = append(lonCols, c.Name)
			}
			// Numeric and temporal columns see no other detector.
			continue
		}
		rc := &ruleContext{
			col:        c,
			profile:    profiles[i],
			stats:      stats,
			nonMissing: c.NonMissing(),
		}
		for _, rl := range textRules {
			if rl.match(d, rc) {
				rep.Entries = append(rep.Entries, Entry{
					Column:  c.Name,
					Reasons: []Reason{rl.reason},
				})
				break
			}
		}
	}

	// Exhaustive cross product, in column declaration order. Pairs are not
	// deduplicated and unrelated in-range columns are paired too; callers
	// treat these as review hints.
	for _, lat := range latCols {
		for _, lon := range lonCols {
			rep.Entries = append(rep.Entries, Entry{
				Pair:    &Pair{Lat: lat, Lon: lon},
				Reasons: []Reason{ReasonCoordinatePair},
			})
		}
	}
	return rep
}

type coordClass int

const (
	coordNone coordClass = iota
	coordLat
	coordLon
)

// classifyCoordinate buckets a gated column by value range: all non-missing
// values within [-90, 90] is latitude-like; within [-180, 180] but not the
// narrower band is longitude-like. The buckets are disjoint so a column
// never pairs with itself. An all-missing or unparseable column is neither.
func classifyCoordinate(c *dataset.Column) coordClass {
	vals, ok := c.Floats()
	if !ok || len(vals) == 0 {
		return coordNone
	}
	lat, lon := true, true
	for _, v := range vals {
		if v < -90 || v > 90 {
			lat = false
		}
		if v < -180 || v > 180 {
			lon = false
		}
	}
	switch {
	case lat:
		return coordLat
	case lon:
		return coordLon
	default:
		return coordNone
	}
}
