package storage

import (
	"encoding/json"
	"os"
	"time"
)

// RunMetadata is the sidecar record written next to a dataset so a run
// can be identified without parsing the data itself.
type RunMetadata struct {
	Model       string    `json:"model"`
	Device      string    `json:"device"`
	Temperature float64   `json:"temperature"`
	Timestamp   time.Time `json:"timestamp"`
	Jobs        int       `json:"jobs"`
	Rows        int       `json:"rows"`
	Columns     []string  `json:"columns"`
}

// WriteMetadata writes the sidecar as indented JSON to path.
func WriteMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// ReadMetadata loads a sidecar written by WriteMetadata.
func ReadMetadata(path string) (*RunMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
