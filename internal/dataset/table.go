package dataset

import "fmt"

// Table is a rectangular columnar table of float64 samples. Column
// order is significant: it is the schema jobs are checked against and
// the order serializers write.
type Table struct {
	names   []string
	columns map[string][]float64
	rows    int
}

// New creates an empty table with the given column schema.
func New(names ...string) *Table {
	t := &Table{
		names:   append([]string(nil), names...),
		columns: make(map[string][]float64, len(names)),
	}
	for _, n := range names {
		t.columns[n] = nil
	}
	return t
}

func (t *Table) Len() int { return t.rows }

// Names returns the column schema in order. The slice is a copy.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

func (t *Table) Has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns the backing slice for a column. Callers that mutate
// it mutate the table.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("dataset: no column %q", name)
	}
	return col, nil
}

// Set replaces a column, or appends it to the schema if absent. The
// value count must match the table's row count unless the table is
// still empty.
func (t *Table) Set(name string, vals []float64) error {
	if t.rows > 0 && len(vals) != t.rows {
		return fmt.Errorf("dataset: column %q has %d values, table has %d rows", name, len(vals), t.rows)
	}
	if _, ok := t.columns[name]; !ok {
		t.names = append(t.names, name)
	}
	if t.rows == 0 {
		t.rows = len(vals)
	}
	t.columns[name] = vals
	return nil
}

// AppendRow appends one sample in schema order.
func (t *Table) AppendRow(vals ...float64) error {
	if len(vals) != len(t.names) {
		return fmt.Errorf("dataset: row has %d values, schema has %d columns", len(vals), len(t.names))
	}
	for i, n := range t.names {
		t.columns[n] = append(t.columns[n], vals[i])
	}
	t.rows++
	return nil
}

// Select projects the table onto a subset of its columns, in the given
// order. The result shares backing slices with the receiver.
func (t *Table) Select(names ...string) (*Table, error) {
	out := New(names...)
	for _, n := range names {
		col, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		out.columns[n] = col
	}
	out.rows = t.rows
	return out, nil
}

func sameSchema(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Concat joins tables row-wise into a fresh table. All tables must
// share the first table's exact column schema; a divergent table is an
// adapter defect and fails with SchemaMismatchError. Per-table row
// positions are discarded, the result is indexed contiguously.
func Concat(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("dataset: nothing to concatenate")
	}

	schema := tables[0].names
	total := 0
	for i, tab := range tables {
		if !sameSchema(schema, tab.names) {
			return nil, &SchemaMismatchError{Index: i, Want: tables[0].Names(), Got: tab.Names()}
		}
		total += tab.rows
	}

	out := New(schema...)
	for _, n := range schema {
		col := make([]float64, 0, total)
		for _, tab := range tables {
			col = append(col, tab.columns[n]...)
		}
		out.columns[n] = col
	}
	out.rows = total
	return out, nil
}
