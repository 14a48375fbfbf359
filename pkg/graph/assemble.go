package graph

// assemble flattens a registry into node and edge lists. Kinds are visited
// in output order and each node's outgoing edges follow the node.
func assemble(reg *Registry, dedupe bool) ([]*Node, []Edge) {
	nodes := make([]*Node, 0, reg.Len())
	edges := make([]Edge, 0)

	emitted := make(map[[2]string]struct{})
	relate := func(from, to string) {
		if dedupe {
			if _, seen := emitted[[2]string{to, from}]; seen {
				return
			}
			emitted[[2]string{from, to}] = struct{}{}
		}
		edges = append(edges, Edge{From: from, To: to, Kind: EdgeRelated})
	}
	contain := func(from string, children *IDSet) {
		for _, id := range children.IDs() {
			arrows := openArrow
			edges = append(edges, Edge{From: from, To: id, Kind: EdgeContains, Arrows: &arrows})
		}
	}

	for _, kind := range Kinds {
		for _, n := range reg.Nodes(kind) {
			nodes = append(nodes, n)

			switch kind {
			case KindFile:
				contain(n.ID, n.ClassesOrInterfaces)
			case KindClass:
				contain(n.ID, n.Fields)
				contain(n.ID, n.Methods)
			case KindMethod:
				contain(n.ID, n.Parameters)
			case KindField, KindParameter:
				for _, id := range n.RelatedTo.IDs() {
					relate(n.ID, id)
				}
			}
		}
	}

	return nodes, edges
}
