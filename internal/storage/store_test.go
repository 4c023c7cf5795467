package storage

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/arvid-k/charsweep/internal/dataset"
)

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	tab := dataset.New("W", "Vgs", "id", "gmid")
	rows := [][]float64{
		{1e-6, 0.0, 0.0, math.NaN()},
		{1e-6, 0.6, 3.4e-5, 12.5},
		{1e-6, 1.2, 2.1e-4, math.Inf(1)},
	}
	for _, r := range rows {
		if err := tab.AppendRow(r...); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return tab
}

func assertTablesEqual(t *testing.T, want, got *dataset.Table) {
	t.Helper()
	if got.Len() != want.Len() {
		t.Fatalf("expected %d rows, got %d", want.Len(), got.Len())
	}
	wantNames, gotNames := want.Names(), got.Names()
	if len(wantNames) != len(gotNames) {
		t.Fatalf("expected %d columns, got %d", len(wantNames), len(gotNames))
	}
	for i := range wantNames {
		if wantNames[i] != gotNames[i] {
			t.Fatalf("column %d: expected %s, got %s", i, wantNames[i], gotNames[i])
		}
		w, _ := want.Column(wantNames[i])
		g, _ := got.Column(wantNames[i])
		for r := range w {
			if math.IsNaN(w[r]) != math.IsNaN(g[r]) || (!math.IsNaN(w[r]) && w[r] != g[r]) {
				t.Errorf("%s[%d]: expected %g, got %g", wantNames[i], r, w[r], g[r])
			}
		}
	}
}

func TestWriteReadFormats(t *testing.T) {
	for _, format := range []string{"csv", "bin"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+format)
			want := sampleTable(t)

			if err := Write(path, format, want); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := Read(path, format)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			assertTablesEqual(t, want, got)
		})
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.h5")
	err := Write(path, "hdf5", sampleTable(t))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSupportedFormat(t *testing.T) {
	for format, want := range map[string]bool{"csv": true, "bin": true, "hdf5": false, "": false} {
		if got := SupportedFormat(format); got != want {
			t.Errorf("SupportedFormat(%q) = %v, want %v", format, got, want)
		}
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.meta.json")
	meta := RunMetadata{
		Model:       "90nm_bulk",
		Device:      "nmos",
		Temperature: 27,
		Timestamp:   time.Now().UTC(),
		Jobs:        1000,
		Rows:        14641000,
		Columns:     []string{"W", "L", "id"},
	}

	if err := WriteMetadata(path, meta); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	got, err := ReadMetadata(path)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if got.Model != meta.Model || got.Rows != meta.Rows || len(got.Columns) != 3 {
		t.Errorf("metadata mismatch: %+v", got)
	}
}
