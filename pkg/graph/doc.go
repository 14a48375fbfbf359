// Package graph turns data clump reports into a renderable node/edge model.
//
// # Model
//
// Five node kinds form a containment tree plus a relation overlay:
//
//	file ──▶ class/interface ──▶ method ──▶ parameter
//	                         └─▶ field
//	parameter/field ─── parameter/field   (clump relation)
//
// Fields and parameters are the same entity (a variable) used in two roles,
// so they share one identity namespace. Files, classes and methods each have
// their own namespace.
//
// # Building
//
// A Builder owns no state between calls. Every Build starts from an empty
// Registry, walks the report, and flattens the result:
//
//	b := graph.NewBuilder(graph.DefaultTheme(), graph.Options{})
//	g, err := b.Build(report, graph.Filter{FromFilePath: "src/A.java"})
//
// Nodes are emitted files first, then classes, fields, methods and
// parameters. Within a kind they keep the order in which the walk first saw
// them, so identical input always yields identical output.
package graph
