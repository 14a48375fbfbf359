package graph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/weaver/pkg/dataclumps"
)

// site is one end of an occurrence. An empty Method leaves the method keys
// out of the JSON entirely.
type site struct {
	File, Class, Method, Var string
}

type occurrence struct {
	ID       string
	Type     dataclumps.ClumpType
	From, To site
}

func (o occurrence) clump() map[string]any {
	c := map[string]any{
		"data_clump_type":              string(o.Type),
		"from_file_path":               o.From.File,
		"from_class_or_interface_key":  o.From.Class,
		"from_class_or_interface_name": o.From.Class,
		"to_file_path":                 o.To.File,
		"to_class_or_interface_key":    o.To.Class,
		"to_class_or_interface_name":   o.To.Class,
		"data_clump_data": map[string]any{
			o.From.Var: map[string]any{
				"key":  o.From.Var,
				"name": o.From.Var,
				"to_variable": map[string]any{
					"key":  o.To.Var,
					"name": o.To.Var,
				},
			},
		},
	}
	if o.From.Method != "" {
		c["from_method_key"] = o.From.Method
		c["from_method_name"] = o.From.Method
	}
	if o.To.Method != "" {
		c["to_method_key"] = o.To.Method
		c["to_method_name"] = o.To.Method
	}
	return c
}

// buildReport encodes occurrences in the given order and decodes them back
// through the real report decoder.
func buildReport(t *testing.T, occs ...occurrence) *dataclumps.Report {
	t.Helper()

	entries := make([]string, 0, len(occs))
	for _, o := range occs {
		id, err := json.Marshal(o.ID)
		require.NoError(t, err)
		body, err := json.Marshal(o.clump())
		require.NoError(t, err)
		entries = append(entries, string(id)+":"+string(body))
	}

	doc := `{"data_clumps":{` + strings.Join(entries, ",") + `}}`
	report, err := dataclumps.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return report
}

var (
	paramsOcc = occurrence{
		ID:   "c1",
		Type: dataclumps.ParametersToParameters,
		From: site{File: "src/F1.java", Class: "C1", Method: "M1", Var: "p1"},
		To:   site{File: "src/F2.java", Class: "C2", Method: "M2", Var: "p2"},
	}
	fieldsOcc = occurrence{
		ID:   "c2",
		Type: dataclumps.FieldsToFields,
		From: site{File: "src/F1.java", Class: "C1", Var: "f1"},
		To:   site{File: "src/F3.java", Class: "C3", Var: "f3"},
	}
	paramToFieldOcc = occurrence{
		ID:   "c3",
		Type: dataclumps.ParametersToFields,
		From: site{File: "src/F1.java", Class: "C1", Method: "M1", Var: "p1"},
		To:   site{File: "src/F2.java", Class: "C2", Var: "f1"},
	}
)

func nodeIDs(g *Graph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func edgePairs(g *Graph, kind EdgeKind) []string {
	var pairs []string
	for _, e := range g.Edges {
		if e.Kind == kind {
			pairs = append(pairs, e.From+"->"+e.To)
		}
	}
	return pairs
}
