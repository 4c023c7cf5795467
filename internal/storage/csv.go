package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/arvid-k/charsweep/internal/dataset"
)

// WriteCSV writes a header row of column names followed by one record
// per sample. Values use the shortest representation that round-trips
// a float64, so Inf/NaN sentinels survive as +Inf/-Inf/NaN tokens.
func WriteCSV(w io.Writer, t *dataset.Table) error {
	cw := csv.NewWriter(w)

	names := t.Names()
	if err := cw.Write(names); err != nil {
		return err
	}

	cols := make([][]float64, len(names))
	for i, n := range names {
		col, err := t.Column(n)
		if err != nil {
			return err
		}
		cols[i] = col
	}

	record := make([]string, len(names))
	for r := 0; r < t.Len(); r++ {
		for c := range names {
			record[c] = strconv.FormatFloat(cols[c][r], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV loads a table written by WriteCSV.
func ReadCSV(r io.Reader) (*dataset.Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("storage: csv file has no header")
	}

	t := dataset.New(records[0]...)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for c, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: csv row %d column %d: %w", i+1, c, err)
			}
			vals[c] = v
		}
		if err := t.AppendRow(vals...); err != nil {
			return nil, err
		}
	}
	return t, nil
}
