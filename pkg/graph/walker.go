package graph

import (
	"github.com/simonhull/firebird-suite/weaver/pkg/dataclumps"
	"github.com/simonhull/firebird-suite/weaver/pkg/logger"
)

// Filter restricts which occurrences contribute to the graph.
//
// FromFilePath is an exact match on the occurrence's from_file_path.
// ToFilePath is recorded (it feeds the version hash) but is only applied
// when Options.ApplyToFilePath is set.
type Filter struct {
	FromFilePath string `json:"from_file_path,omitempty"`
	ToFilePath   string `json:"to_file_path,omitempty"`
}

// WalkStats counts what the walker did with the report.
type WalkStats struct {
	Occurrences int `json:"occurrences"`
	Processed   int `json:"processed"`
	Filtered    int `json:"filtered"`
	Unknown     int `json:"unknown"`
	Pairs       int `json:"pairs"`
}

// walker registers the node chain of every accepted occurrence.
type walker struct {
	reg    *Registry
	filter Filter
	opts   Options
	logger logger.Logger
	stats  WalkStats
}

func (w *walker) walk(report *dataclumps.Report) {
	if report == nil {
		return
	}

	for id, clump := range report.DataClumps.All() {
		w.stats.Occurrences++
		if clump == nil {
			w.stats.Unknown++
			continue
		}
		if !w.accept(clump) {
			w.stats.Filtered++
			continue
		}
		if !clump.Type.Known() {
			w.stats.Unknown++
			w.logger.Debug("Skipping occurrence of unknown type",
				logger.F("clump", id),
				logger.F("type", clump.Type))
			continue
		}

		w.stats.Processed++
		for _, pair := range clump.Data.All() {
			if pair == nil {
				continue
			}
			w.stats.Pairs++
			w.visit(clump, pair)
		}
	}
}

func (w *walker) accept(c *dataclumps.DataClump) bool {
	if w.filter.FromFilePath != "" && c.FromFilePath != w.filter.FromFilePath {
		return false
	}
	if w.opts.ApplyToFilePath && w.filter.ToFilePath != "" && c.ToFilePath != w.filter.ToFilePath {
		return false
	}
	return true
}

// visit wires one variable pair. Both sides always get their file and class
// registered before the kind-specific members.
func (w *walker) visit(c *dataclumps.DataClump, v *dataclumps.Variable) {
	fromClass := w.classIn(c.FromFilePath, c.FromClassOrInterfaceKey, c.FromClassOrInterfaceName)
	toClass := w.classIn(c.ToFilePath, c.ToClassOrInterfaceKey, c.ToClassOrInterfaceName)

	switch c.Type {
	case dataclumps.ParametersToParameters:
		fromParam := w.reg.Parameter(v.Key, v.Name)
		toParam := w.reg.Parameter(v.ToVariable.Key, v.ToVariable.Name)
		if m := w.methodIn(fromClass, c.FromMethodKey, c.FromMethodName); m != nil {
			m.Parameters.Add(fromParam.ID)
		}
		if m := w.methodIn(toClass, c.ToMethodKey, c.ToMethodName); m != nil {
			m.Parameters.Add(toParam.ID)
		}
		Relate(fromParam, toParam, true)

	case dataclumps.FieldsToFields:
		fromField := w.reg.Field(v.Key, v.Name)
		toField := w.reg.Field(v.ToVariable.Key, v.ToVariable.Name)
		fromClass.Fields.Add(fromField.ID)
		toClass.Fields.Add(toField.ID)
		Relate(fromField, toField, true)

	case dataclumps.ParametersToFields:
		fromParam := w.reg.Parameter(v.Key, v.Name)
		toField := w.reg.Field(v.ToVariable.Key, v.ToVariable.Name)
		if m := w.methodIn(fromClass, c.FromMethodKey, c.FromMethodName); m != nil {
			m.Parameters.Add(fromParam.ID)
		}
		toClass.Fields.Add(toField.ID)
		Relate(fromParam, toField, false)
	}
}

// classIn registers a file and a class and records the containment.
func (w *walker) classIn(path, key, name string) *Node {
	file := w.reg.File(path)
	class := w.reg.Class(key, name)
	file.ClassesOrInterfaces.Add(class.ID)
	return class
}

// methodIn registers a method under class. It returns nil when the
// occurrence carries no method key for this side.
func (w *walker) methodIn(class *Node, key, name dataclumps.Text) *Node {
	if !key.Present() {
		return nil
	}
	method := w.reg.Method(key.String(), name.String())
	class.Methods.Add(method.ID)
	return method
}
