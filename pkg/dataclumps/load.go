package dataclumps

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads and decodes a report file.
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	report, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return report, nil
}

// Decode reads a single report from r. A report without a data_clumps
// dictionary decodes to an empty report.
func Decode(r io.Reader) (*Report, error) {
	var report Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}
