package detect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tablesafe-cli/internal/dataset"
)

// Reason is a categorical tag explaining why a column was flagged.
type Reason string

const (
	ReasonKeywordName    Reason = "Column name suggests PII"
	ReasonPhone          Reason = "Phone number detected"
	ReasonEmail          Reason = "Email address detected"
	ReasonNameLike       Reason = "Potential name or unique identifier"
	ReasonMixedTypes     Reason = "Mixed data types detected"
	ReasonPlaceName      Reason = "Potential city/town/village name"
	ReasonDisability     Reason = "Disability status detected"
	ReasonCoordinatePair Reason = "Potential latitude/longitude pair detected"
)

// baseKeywords is the fixed, case-insensitive substring set for the
// column-name test. Config may layer extra keywords on top, never replace.
var baseKeywords = []string{
	"name", "id", "identification", "phone", "email", "geo", "address",
	"city", "town", "village", "disability", "ssn", "social security", "zip",
}

var placeKeywords = []string{"city", "town", "village", "region", "district"}

var (
	// phoneRe matches 3-digit groups with an optional parenthesized area code,
	// 7 or 10 digits total, separated by dashes, dots, or spaces.
	phoneRe = regexp.MustCompile(`^(\(\d{3}\)|\d{3})?[-. ]?\d{3}[-. ]?\d{4}$`)
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	// disabilityRe is applied to lower-cased cell values.
	disabilityRe = regexp.MustCompile(`disability|disabled|handicap`)
)

// nameLikeLengthFloor is the lower bound clamp for the dynamic length band.
const nameLikeLengthFloor = 2

// uniquenessBoost scales the dataset median into the name-like threshold.
const uniquenessBoost = 1.2

// ruleContext carries everything a single column's rules may inspect.
type ruleContext struct {
	col        *dataset.Column
	profile    Profile
	stats      Stats
	nonMissing []string
}

// rule pairs a reason tag with its predicate. The chain is evaluated in
// order and stops at the first match.
type rule struct {
	reason Reason
	match  func(d *Detector, rc *ruleContext) bool
}

// textRules is the ordered chain applied to non-gated columns.
var textRules = []rule{
	{ReasonKeywordName, (*Detector).matchKeywordName},
	{ReasonPhone, (*Detector).matchPhone},
	{ReasonEmail, (*Detector).matchEmail},
	{ReasonNameLike, (*Detector).matchNameLike},
	{ReasonMixedTypes, (*Detector).matchMixedTypes},
	{ReasonPlaceName, (*Detector).matchPlaceName},
	{ReasonDisability, (*Detector).matchDisability},
}

func (d *Detector) matchKeywordName(rc *ruleContext) bool {
	name := strings.ToLower(rc.col.Name)
	for _, kw := range d.keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func (d *Detector) matchPhone(rc *ruleContext) bool {
	for _, v := range rc.nonMissing {
		if phoneRe.MatchString(v) {
			return true
		}
	}
	return false
}

func (d *Detector) matchEmail(rc *ruleContext) bool {
	for _, v := range rc.nonMissing {
		if emailRe.MatchString(v) {
			return true
		}
	}
	return false
}

// matchNameLike flags short, mostly-unique strings: every non-missing value's
// length must sit inside the dataset-derived band and the column's uniqueness
// must exceed the boosted dataset median.
func (d *Detector) matchNameLike(rc *ruleContext) bool {
	if len(rc.profile.Lengths) == 0 {
		return false
	}
	lo := 0.5 * rc.stats.MedianLength
	if lo < nameLikeLengthFloor {
		lo = nameLikeLengthFloor
	}
	hi := 1.5 * rc.stats.MedianLength
	for _, l := range rc.profile.Lengths {
		if float64(l) < lo || float64(l) > hi {
			return false
		}
	}
	return rc.profile.Uniqueness > uniquenessBoost*rc.stats.MedianUniqueness
}

// matchMixedTypes flags a text-declared column that carries numeric-looking
// cells alongside non-numeric ones.
func (d *Detector) matchMixedTypes(rc *ruleContext) bool {
	if rc.col.Kind != dataset.KindText || len(rc.nonMissing) == 0 {
		return false
	}
	numeric, other := false, false
	for _, v := range rc.nonMissing {
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			numeric = true
		} else {
			other = true
		}
		if numeric && other {
			return true
		}
	}
	return false
}

func (d *Detector) matchPlaceName(rc *ruleContext) bool {
	if rc.profile.Uniqueness <= 0.5 {
		return false
	}
	name := strings.ToLower(rc.col.Name)
	for _, kw := range placeKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func (d *Detector) matchDisability(rc *ruleContext) bool {
	for _, v := range rc.nonMissing {
		if disabilityRe.MatchString(strings.ToLower(v)) {
			return true
		}
	}
	return false
}
