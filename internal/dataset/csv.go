package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/tablesafe-cli/internal/utils"
)

// ReadOptions controls CSV ingestion.
type ReadOptions struct {
	// Delimiter for CSV. If 0, auto-detects from the file extension (',' or tab).
	Delimiter rune
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
}

// DefaultReadOptions returns reasonable defaults for dataset loading.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{}
}

// ReadCSV loads a CSV/TSV file into a frame. The first record is the header.
// Each column's kind is inferred from its values: numeric or temporal only
// when every non-missing cell parses as such, text otherwise.
func ReadCSV(path string, opt ReadOptions) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &InvalidInputError{Reason: "empty file"}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	if ncol == 0 {
		return nil, &InvalidInputError{Reason: "header has no columns"}
	}

	cols := make([]*Column, ncol)
	for i := range header {
		cols[i] = &Column{Name: strings.TrimSpace(header[i])}
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	rows := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		if rows >= maxRows {
			continue
		}
		rows++
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			cols[j].Values = append(cols[j].Values, v)
		}
	}

	for _, c := range cols {
		c.Kind = inferKind(c.Values)
	}
	return New(cols...)
}

// WriteCSV renders the frame as CSV and writes it atomically.
func WriteCSV(f *Frame, path string, delim rune) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if delim != 0 {
		w.Comma = delim
	}
	if err := w.Write(f.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	cols := f.Columns()
	row := make([]string, len(cols))
	for i := 0; i < f.Rows(); i++ {
		for j, c := range cols {
			row[j] = c.Values[i]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// inferKind declares a column numeric, temporal, or boolean only when every
// non-missing cell parses as that kind; anything else is text. An all-missing
// column is text. A partially numeric column therefore stays text, which is
// what the mixed-type detector looks for.
func inferKind(values []string) Kind {
	nonMissing := 0
	numeric, temporal, boolean := true, true, true
	for _, v := range values {
		if v == "" {
			continue
		}
		nonMissing++
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			numeric = false
		}
		if _, ok := parseTimeMaybe(v); !ok {
			temporal = false
		}
		switch strings.ToLower(v) {
		case "true", "false":
		default:
			boolean = false
		}
		if !numeric && !temporal && !boolean {
			return KindText
		}
	}
	if nonMissing == 0 {
		return KindText
	}
	switch {
	case boolean:
		return KindBool
	case numeric:
		return KindNumeric
	case temporal:
		return KindTemporal
	default:
		return KindText
	}
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
