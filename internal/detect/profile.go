package detect

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/KaramelBytes/tablesafe-cli/internal/dataset"
)

// Profile is a read-only per-column summary feeding the rule chain.
type Profile struct {
	Name       string
	Kind       dataset.Kind
	NonMissing int
	Unique     int
	// Uniqueness is Unique/NonMissing; 0 for an all-missing column.
	Uniqueness float64
	// Lengths holds the rune length of every non-missing cell of a text column.
	Lengths []int
}

// Stats are the dataset-wide aggregates used as dynamic baselines.
// They are recomputed on every Check call; datasets differ between runs.
type Stats struct {
	// MedianLength is the median rune length across all text columns' cells.
	MedianLength float64
	// MedianUniqueness is the median uniqueness ratio across all columns.
	MedianUniqueness float64
}

func profileColumn(c *dataset.Column) Profile {
	p := Profile{Name: c.Name, Kind: c.Kind}
	seen := make(map[string]struct{})
	for _, v := range c.Values {
		if v == "" {
			continue
		}
		p.NonMissing++
		seen[v] = struct{}{}
		if c.Kind == dataset.KindText {
			p.Lengths = append(p.Lengths, utf8.RuneCountInString(v))
		}
	}
	p.Unique = len(seen)
	if p.NonMissing > 0 {
		p.Uniqueness = float64(p.Unique) / float64(p.NonMissing)
	}
	return p
}

func computeStats(profiles []Profile) Stats {
	var lengths []float64
	ratios := make([]float64, 0, len(profiles))
	for _, p := range profiles {
		for _, l := range p.Lengths {
			lengths = append(lengths, float64(l))
		}
		ratios = append(ratios, p.Uniqueness)
	}
	return Stats{
		MedianLength:     median(lengths),
		MedianUniqueness: median(ratios),
	}
}

// median interpolates the 0.5 quantile; empty input yields 0 so that
// degenerate datasets resolve to "no match" rather than an error.
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	pos := 0.5 * float64(len(cp)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return cp[lo]
	}
	w := pos - float64(lo)
	return cp[lo]*(1-w) + cp[hi]*w
}
