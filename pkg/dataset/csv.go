package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mlortz/sankey/pkg/errors"
	"github.com/mlortz/sankey/pkg/sankey"
)

// CSVOptions controls how observation rows are read. Column indices are
// zero-based; set a weight column to -1 when the file has none.
type CSVOptions struct {
	Delimiter         rune // field separator, default ','
	HasHeader         bool // skip the first row
	LeftColumn        int
	RightColumn       int
	LeftWeightColumn  int // -1 = every record gets weight 1
	RightWeightColumn int // -1 = right weight defaults to left weight
}

// DefaultCSVOptions reads "left,right,leftweight,rightweight" files with
// a header row. Missing trailing weight columns fall back to the record
// defaulting rules.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:         ',',
		HasHeader:         true,
		LeftColumn:        0,
		RightColumn:       1,
		LeftWeightColumn:  2,
		RightWeightColumn: 3,
	}
}

// ReadCSV decodes observation records from r. Rows shorter than a
// configured weight column simply omit that weight; rows shorter than a
// label column are an error. Weight cells must parse as non-negative
// numbers; empty cells count as omitted.
func ReadCSV(r io.Reader, opts CSVOptions) ([]sankey.Record, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv")
	}
	if opts.HasHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	records := make([]sankey.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := parseRow(row, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "csv row %d", i+1)
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadCSV reads observation records from the file at path.
func LoadCSV(path string, opts CSVOptions) ([]sankey.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadCSV(f, opts)
}

func parseRow(row []string, opts CSVOptions) (sankey.Record, error) {
	left, err := cell(row, opts.LeftColumn, "left")
	if err != nil {
		return sankey.Record{}, err
	}
	right, err := cell(row, opts.RightColumn, "right")
	if err != nil {
		return sankey.Record{}, err
	}

	rec := sankey.Record{Left: left, Right: right, LeftWeight: 1}

	if w, ok, err := weightCell(row, opts.LeftWeightColumn); err != nil {
		return sankey.Record{}, err
	} else if ok {
		rec.LeftWeight = w
	}
	rec.RightWeight = rec.LeftWeight
	if w, ok, err := weightCell(row, opts.RightWeightColumn); err != nil {
		return sankey.Record{}, err
	} else if ok {
		rec.RightWeight = w
	}
	return rec, nil
}

// cell returns the trimmed label at col, which must exist. Empty labels
// are passed through so the core's null check reports them uniformly.
func cell(row []string, col int, name string) (string, error) {
	if col < 0 || col >= len(row) {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"missing %s column %d (row has %d fields)", name, col, len(row))
	}
	return strings.TrimSpace(row[col]), nil
}

// weightCell parses an optional weight column. A column outside the row
// or an empty cell reports ok=false.
func weightCell(row []string, col int) (float64, bool, error) {
	if col < 0 || col >= len(row) {
		return 0, false, nil
	}
	s := strings.TrimSpace(row[col])
	if s == "" {
		return 0, false, nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, errors.New(errors.ErrCodeInvalidInput, "malformed weight %q", s)
	}
	if w < 0 {
		return 0, false, errors.New(errors.ErrCodeInvalidInput, "negative weight %q", s)
	}
	return w, true, nil
}
