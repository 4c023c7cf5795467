package ngspice

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arvid-k/charsweep/internal/dataset"
)

// ParseWrdata reads an ngspice wrdata dump into a table. wrdata emits,
// for every requested vector, a sweep-scale column followed by the
// vector's values, so a row carries 2*len(names) fields; only the odd
// fields are data.
func ParseWrdata(r io.Reader, names []string) (*dataset.Table, error) {
	t := dataset.New(names...)
	vals := make([]float64, len(names))

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2*len(names) {
			return nil, fmt.Errorf("ngspice: wrdata line %d has %d fields, expected %d", line, len(fields), 2*len(names))
		}
		for i := range names {
			v, err := strconv.ParseFloat(fields[2*i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("ngspice: wrdata line %d field %d: %w", line, 2*i+1, err)
			}
			vals[i] = v
		}
		if err := t.AppendRow(vals...); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
