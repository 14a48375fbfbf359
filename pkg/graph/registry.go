package graph

import "strings"

// Registry is the get-or-create identity map used during one build. It only
// grows; there is no removal.
type Registry struct {
	theme *Theme
	nodes map[Key]*Node
	order [namespaceCount][]*Node
}

// NewRegistry creates an empty registry that styles new nodes with theme.
func NewRegistry(theme *Theme) *Registry {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Registry{
		theme: theme,
		nodes: make(map[Key]*Node),
	}
}

// GetOrCreate returns the node registered under (namespace of kind, id),
// allocating it on first use. A later call with a different label or a
// different variable role returns the existing node unchanged.
func (r *Registry) GetOrCreate(kind Kind, id, label string) *Node {
	key := Key{Namespace: NamespaceOf(kind), ID: id}
	if n, ok := r.nodes[key]; ok {
		return n
	}

	n := newNode(kind, id, label, r.theme)
	r.nodes[key] = n
	r.order[key.Namespace] = append(r.order[key.Namespace], n)
	return n
}

// Lookup finds an existing node without creating one.
func (r *Registry) Lookup(kind Kind, id string) (*Node, bool) {
	n, ok := r.nodes[Key{Namespace: NamespaceOf(kind), ID: id}]
	return n, ok
}

// File registers a file node labelled with the last path segment.
func (r *Registry) File(path string) *Node {
	return r.GetOrCreate(KindFile, path, fileLabel(path))
}

func (r *Registry) Class(key, name string) *Node {
	return r.GetOrCreate(KindClass, key, name)
}

func (r *Registry) Method(key, name string) *Node {
	return r.GetOrCreate(KindMethod, key, name)
}

func (r *Registry) Field(key, name string) *Node {
	return r.GetOrCreate(KindField, key, name)
}

func (r *Registry) Parameter(key, name string) *Node {
	return r.GetOrCreate(KindParameter, key, name)
}

// Len returns the total number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// Nodes returns the nodes of one kind in first-registration order.
func (r *Registry) Nodes(kind Kind) []*Node {
	ns := NamespaceOf(kind)
	if ns != NamespaceVariable {
		out := make([]*Node, len(r.order[ns]))
		copy(out, r.order[ns])
		return out
	}

	var out []*Node
	for _, n := range r.order[ns] {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Relate links two variables. Symmetric links are recorded on both ends.
func Relate(from, to *Node, symmetric bool) {
	if from.RelatedTo == nil || to.RelatedTo == nil {
		return
	}
	from.RelatedTo.Add(to.ID)
	if symmetric {
		to.RelatedTo.Add(from.ID)
	}
}

// fileLabel derives a short display name from a path. Paths ending in a
// separator keep the full path as label.
func fileLabel(path string) string {
	name := path[strings.LastIndex(path, "/")+1:]
	if name == "" {
		return path
	}
	return name
}
