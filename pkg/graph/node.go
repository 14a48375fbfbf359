package graph

// Font carries the label color of a node.
type Font struct {
	Color string `json:"color,omitempty"`
}

// Node is one entity in the graph. Only the sets that belong to the node's
// kind are allocated; the others stay nil and are omitted from JSON.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  Kind   `json:"kind"`
	Color string `json:"color,omitempty"`
	Font  Font   `json:"font"`
	Shape string `json:"shape,omitempty"`

	// file
	ClassesOrInterfaces *IDSet `json:"classes_or_interfaces_ids,omitempty"`
	// class or interface
	Fields  *IDSet `json:"field_ids,omitempty"`
	Methods *IDSet `json:"method_ids,omitempty"`
	// method
	Parameters *IDSet `json:"parameter_ids,omitempty"`
	// field or parameter
	RelatedTo *IDSet `json:"related_to,omitempty"`
}

func newNode(kind Kind, id, label string, theme *Theme) *Node {
	style := theme.StyleFor(kind)
	n := &Node{
		ID:    id,
		Label: label,
		Kind:  kind,
		Color: style.Color,
		Font:  Font{Color: style.TextColor},
		Shape: theme.Shape,
	}

	switch kind {
	case KindFile:
		n.ClassesOrInterfaces = &IDSet{}
	case KindClass:
		n.Fields = &IDSet{}
		n.Methods = &IDSet{}
	case KindMethod:
		n.Parameters = &IDSet{}
	case KindField, KindParameter:
		n.RelatedTo = &IDSet{}
	}
	return n
}

// Key returns the registry key of n.
func (n *Node) Key() Key {
	return Key{Namespace: NamespaceOf(n.Kind), ID: n.ID}
}

// EdgeKind separates structural edges from clump relations.
type EdgeKind string

const (
	EdgeContains EdgeKind = "contains"
	EdgeRelated  EdgeKind = "related"
)

// ArrowHead configures one end of an edge for vis-network.
type ArrowHead struct {
	Enabled bool   `json:"enabled"`
	Type    string `json:"type"`
}

// Arrows holds the arrow markers of an edge.
type Arrows struct {
	To ArrowHead `json:"to"`
}

// openArrow is the "vee" marker at the target end of containment edges.
var openArrow = Arrows{To: ArrowHead{Enabled: true, Type: "vee"}}

// Edge connects two node ids.
type Edge struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Kind   EdgeKind `json:"kind"`
	Arrows *Arrows  `json:"arrows,omitempty"`
}

// Directed reports whether the edge is drawn with an arrow.
func (e Edge) Directed() bool {
	return e.Arrows != nil && e.Arrows.To.Enabled
}
