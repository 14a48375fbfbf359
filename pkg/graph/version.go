package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/simonhull/firebird-suite/weaver/pkg/dataclumps"
)

// Version derives a deterministic identity for a build input. Renderers use
// it to decide whether a graph needs to be remounted, so every option that
// changes the built graph is part of the hash.
func Version(report *dataclumps.Report, filter Filter, opts Options) (string, error) {
	input := struct {
		Report          *dataclumps.Report `json:"report"`
		Filter          Filter             `json:"filter"`
		DarkMode        bool               `json:"dark_mode"`
		ApplyToFilePath bool               `json:"apply_to_file_path"`
		DedupeRelations bool               `json:"dedupe_relations"`
	}{report, filter, opts.DarkMode, opts.ApplyToFilePath, opts.DedupeRelations}

	data, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("encoding build input: %w", err)
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
