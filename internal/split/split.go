// Package split partitions a dataset into a PII-bearing frame and a
// safe-to-share frame linked by a synthetic join key.
package split

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/KaramelBytes/tablesafe-cli/internal/dataset"
	"github.com/KaramelBytes/tablesafe-cli/internal/detect"
)

// DefaultKeyColumn is the join key column name added to both outputs.
const DefaultKeyColumn = "join_key"

// Options controls partitioning behavior.
type Options struct {
	// KeyColumn names the join key column; DefaultKeyColumn if empty.
	KeyColumn string
	// Exclude lists flagged columns to keep out of the PII frame. An
	// unknown name is an error, so a typo cannot silently leak PII.
	Exclude []string
	// Detector runs the flagging pass; a zero-config detector if nil.
	Detector *detect.Detector
}

// Result holds the two derived frames. Both carry the join key column and
// intersect on nothing else. Callers treat both as immutable snapshots.
type Result struct {
	PII  *dataset.Frame
	Safe *dataset.Frame
}

// UnknownExcludeError indicates an exclusion naming a column absent from
// the dataset.
type UnknownExcludeError struct{ Name string }

func (e *UnknownExcludeError) Error() string {
	return fmt.Sprintf("exclude names unknown column %q", e.Name)
}

// Split runs detection over the frame and partitions its columns into a PII
// frame (flagged columns minus exclusions, plus the join key) and a safe
// frame (everything else, plus the join key). Row order is preserved: row i
// of both outputs shares one fresh key value and originates from row i of
// the input. A frame with zero rows is valid and yields empty outputs.
func Split(f *dataset.Frame, opt Options) (*Result, error) {
	keyName := opt.KeyColumn
	if keyName == "" {
		keyName = DefaultKeyColumn
	}
	if f.Has(keyName) {
		return nil, fmt.Errorf("dataset already has a %q column", keyName)
	}
	excluded := make(map[string]struct{}, len(opt.Exclude))
	for _, name := range opt.Exclude {
		if !f.Has(name) {
			return nil, &UnknownExcludeError{Name: name}
		}
		excluded[name] = struct{}{}
	}

	det := opt.Detector
	if det == nil {
		det = detect.New()
	}
	rep := det.Check(f)

	piiSet := make(map[string]struct{})
	var piiNames []string
	for _, name := range rep.PIIColumns() {
		if _, skip := excluded[name]; skip {
			continue
		}
		piiSet[name] = struct{}{}
		piiNames = append(piiNames, name)
	}
	var safeNames []string
	for _, name := range f.Names() {
		if _, pii := piiSet[name]; !pii {
			safeNames = append(safeNames, name)
		}
	}

	key := &dataset.Column{
		Name:   keyName,
		Kind:   dataset.KindText,
		Values: freshKeys(f.Rows()),
	}
	pii, err := f.Select(piiNames, key)
	if err != nil {
		return nil, fmt.Errorf("build pii frame: %w", err)
	}
	safe, err := f.Select(safeNames, key)
	if err != nil {
		return nil, fmt.Errorf("build safe frame: %w", err)
	}
	return &Result{PII: pii, Safe: safe}, nil
}

// freshKeys generates n row-aligned identifiers, collision-free within a
// call and never reused across runs.
func freshKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = uuid.NewString()
	}
	return keys
}
