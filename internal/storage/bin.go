package storage

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/arvid-k/charsweep/internal/dataset"
)

// binStore is the on-disk layout of the binary format: the ordered
// column-name manifest and the data matrix, column major.
type binStore struct {
	Columns []string
	Data    [][]float64
}

// WriteBin persists the table as a gob-encoded columnar store.
func WriteBin(w io.Writer, t *dataset.Table) error {
	store := binStore{
		Columns: t.Names(),
		Data:    make([][]float64, 0, len(t.Names())),
	}
	for _, n := range store.Columns {
		col, err := t.Column(n)
		if err != nil {
			return err
		}
		store.Data = append(store.Data, col)
	}
	return gob.NewEncoder(w).Encode(store)
}

// ReadBin loads a table written by WriteBin.
func ReadBin(r io.Reader) (*dataset.Table, error) {
	var store binStore
	if err := gob.NewDecoder(r).Decode(&store); err != nil {
		return nil, err
	}
	if len(store.Columns) != len(store.Data) {
		return nil, fmt.Errorf("storage: manifest has %d names for %d columns", len(store.Columns), len(store.Data))
	}

	t := dataset.New(store.Columns...)
	for i, n := range store.Columns {
		if err := t.Set(n, store.Data[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}
