package detect_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/tablesafe-cli/internal/dataset"
	"github.com/KaramelBytes/tablesafe-cli/internal/detect"
)

func mustFrame(t *testing.T, cols ...*dataset.Column) *dataset.Frame {
	t.Helper()
	f, err := dataset.New(cols...)
	if err != nil {
		t.Fatalf("new frame: %v", err)
	}
	return f
}

func text(name string, values ...string) *dataset.Column {
	return &dataset.Column{Name: name, Kind: dataset.KindText, Values: values}
}

func numeric(name string, values ...string) *dataset.Column {
	return &dataset.Column{Name: name, Kind: dataset.KindNumeric, Values: values}
}

func singleReason(t *testing.T, rep *detect.Report, key string, want detect.Reason) {
	t.Helper()
	got := rep.Reasons(key)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("reasons for %q = %v, want [%s]", key, got, want)
	}
}

func TestEmailDetected(t *testing.T) {
	f := mustFrame(t,
		text("contact", "a@b.com", "c@d.org", "e@f.net"),
		numeric("score", "1000", "2000", "3000"),
	)
	rep := detect.New().Check(f)
	if len(rep.Entries) != 1 {
		t.Fatalf("entries = %v, want exactly one", rep.Entries)
	}
	singleReason(t, rep, "contact", detect.ReasonEmail)
	if rep.Flagged("score") {
		t.Fatalf("score should not be flagged")
	}
}

func TestKeywordNameBeatsContent(t *testing.T) {
	f := mustFrame(t,
		// no value-level signal at all
		text("patient_id", "x", "y", "z"),
		// keyword outranks the email pattern on this one
		text("email", "a@b.com", "c@d.org", "e@f.net"),
	)
	rep := detect.New().Check(f)
	singleReason(t, rep, "patient_id", detect.ReasonKeywordName)
	singleReason(t, rep, "email", detect.ReasonKeywordName)
}

func TestPhoneDetected(t *testing.T) {
	f := mustFrame(t,
		text("contact", "555-867-5309", "(555) 123-4567", "867-5309"),
	)
	rep := detect.New().Check(f)
	singleReason(t, rep, "contact", detect.ReasonPhone)
}

func TestNameLikeDynamicThresholds(t *testing.T) {
	f := mustFrame(t,
		text("respondent", "alice smith", "brian jones", "carol white", "diana moore"),
		text("category", "aa", "bb", "aa", "bb"),
		text("notes", "xxxxxxxxxxx", "yyyyyyyyyyy", "xxxxxxxxxxx", "xxxxxxxxxxx"),
	)
	rep := detect.New().Check(f)
	singleReason(t, rep, "respondent", detect.ReasonNameLike)
	if rep.Flagged("category") {
		t.Fatalf("category should fall outside the length band")
	}
	if rep.Flagged("notes") {
		t.Fatalf("notes should fail the uniqueness threshold")
	}
}

func TestMixedTypesDetected(t *testing.T) {
	f := mustFrame(t,
		text("code", "12", "abc", "12", "abc"),
	)
	rep := detect.New().Check(f)
	singleReason(t, rep, "code", detect.ReasonMixedTypes)
}

func TestPlaceNameDetected(t *testing.T) {
	f := mustFrame(t,
		text("region", "north", "south", "east", "west"),
	)
	rep := detect.New().Check(f)
	singleReason(t, rep, "region", detect.ReasonPlaceName)
}

func TestDisabilityDetected(t *testing.T) {
	f := mustFrame(t,
		text("status", "employed", "Disabled", "employed", "disabled"),
	)
	rep := detect.New().Check(f)
	singleReason(t, rep, "status", detect.ReasonDisability)
}

func TestCoordinatePairs(t *testing.T) {
	f := mustFrame(t,
		numeric("alpha", "10.5", "20.25", "-45"),
		numeric("beta", "89", "-89", "0"),
		numeric("gamma", "120.5", "-170", "95"),
		numeric("score", "1000", "2000", "3000"),
	)
	rep := detect.New().Check(f)
	if len(rep.Entries) != 2 {
		t.Fatalf("entries = %v, want exactly two pairs", rep.Entries)
	}
	singleReason(t, rep, "alpha & gamma", detect.ReasonCoordinatePair)
	singleReason(t, rep, "beta & gamma", detect.ReasonCoordinatePair)

	want := []string{"alpha", "gamma", "beta"}
	if got := rep.PIIColumns(); !reflect.DeepEqual(got, want) {
		t.Fatalf("pii columns = %v, want %v", got, want)
	}
}

func TestNumericGateSkipsTextRules(t *testing.T) {
	// The name carries a keyword, but numeric columns are only ever
	// range-checked.
	f := mustFrame(t,
		numeric("phone_number", "1000", "2000"),
	)
	rep := detect.New().Check(f)
	if !rep.Empty() {
		t.Fatalf("expected empty report, got %v", rep.Entries)
	}
}

func TestTemporalColumnsAreGated(t *testing.T) {
	f := mustFrame(t,
		&dataset.Column{Name: "joined", Kind: dataset.KindTemporal, Values: []string{"2021-05-01", "2022-11-12"}},
	)
	rep := detect.New().Check(f)
	if !rep.Empty() {
		t.Fatalf("expected empty report, got %v", rep.Entries)
	}
}

func TestAllMissingColumnsDoNotMatch(t *testing.T) {
	f := mustFrame(t,
		numeric("reading", "", "", ""),
		text("comment", "", "", ""),
	)
	rep := detect.New().Check(f)
	if !rep.Empty() {
		t.Fatalf("expected empty report, got %v", rep.Entries)
	}
}

func TestSingleRowDataset(t *testing.T) {
	f := mustFrame(t,
		text("contact", "a@b.com"),
	)
	rep := detect.New().Check(f)
	singleReason(t, rep, "contact", detect.ReasonEmail)
}

func TestCheckIsIdempotent(t *testing.T) {
	f := mustFrame(t,
		text("contact", "a@b.com", "c@d.org"),
		numeric("alpha", "10", "20"),
		numeric("gamma", "120", "-170"),
	)
	det := detect.New()
	first := det.Check(f)
	second := det.Check(f)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ:\n%v\n%v", first, second)
	}
}

func TestWithKeywords(t *testing.T) {
	f := mustFrame(t,
		text("household_roster", "x", "y"),
	)
	if rep := detect.New().Check(f); !rep.Empty() {
		t.Fatalf("unexpected flag without extra keyword: %v", rep.Entries)
	}
	rep := detect.New(detect.WithKeywords("household")).Check(f)
	singleReason(t, rep, "household_roster", detect.ReasonKeywordName)
}

func TestMarkdownRendering(t *testing.T) {
	f := mustFrame(t,
		text("contact", "a@b.com"),
	)
	md := detect.New().Check(f).Markdown()
	for _, want := range []string{"[PII SCAN]", "Flagged: 1", "- contact: Email address detected"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}

	empty := detect.New().Check(mustFrame(t, numeric("score", "1000"))).Markdown()
	if !strings.Contains(empty, "No PII signals detected.") {
		t.Fatalf("markdown missing empty notice:\n%s", empty)
	}
}
