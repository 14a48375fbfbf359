// Package dataclumps decodes data clump reports produced by the external
// detector.
//
// A report is a dictionary of occurrences keyed by clump id. Each occurrence
// links a "from" site to a "to" site and carries a dictionary of variable
// pairs. Dictionary order is preserved exactly as it appears in the file.
package dataclumps

import "encoding/json"

// ClumpType identifies which kind of sites an occurrence connects.
type ClumpType string

const (
	ParametersToParameters ClumpType = "parameters_to_parameters_data_clump"
	FieldsToFields         ClumpType = "fields_to_fields_data_clump"
	ParametersToFields     ClumpType = "parameters_to_fields_data_clump"
)

// Known reports whether t is one of the recognised clump types.
func (t ClumpType) Known() bool {
	switch t {
	case ParametersToParameters, FieldsToFields, ParametersToFields:
		return true
	default:
		return false
	}
}

// Report is the top level document written by the detector.
type Report struct {
	ReportVersion  string              `json:"report_version,omitempty"`
	TargetLanguage string              `json:"target_language,omitempty"`
	Detector       *Detector           `json:"detector,omitempty"`
	ProjectInfo    *ProjectInfo        `json:"project_info,omitempty"`
	ReportSummary  json.RawMessage     `json:"report_summary,omitempty"`
	DataClumps     Ordered[*DataClump] `json:"data_clumps"`
}

// Detector describes the tool that produced the report.
type Detector struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// ProjectInfo identifies the analysed project.
type ProjectInfo struct {
	ProjectName    string `json:"project_name,omitempty"`
	ProjectVersion string `json:"project_version,omitempty"`
	ProjectURL     string `json:"project_url,omitempty"`
}

// DataClump is one detected occurrence.
type DataClump struct {
	Type ClumpType `json:"data_clump_type"`
	Key  string    `json:"key,omitempty"`

	FromFilePath             string `json:"from_file_path"`
	FromClassOrInterfaceKey  string `json:"from_class_or_interface_key"`
	FromClassOrInterfaceName string `json:"from_class_or_interface_name"`
	FromMethodKey            Text   `json:"from_method_key"`
	FromMethodName           Text   `json:"from_method_name"`

	ToFilePath             string `json:"to_file_path"`
	ToClassOrInterfaceKey  string `json:"to_class_or_interface_key"`
	ToClassOrInterfaceName string `json:"to_class_or_interface_name"`
	ToMethodKey            Text   `json:"to_method_key"`
	ToMethodName           Text   `json:"to_method_name"`

	Data Ordered[*Variable] `json:"data_clump_data"`
}

// Variable is the "from" side of a variable pair.
type Variable struct {
	Key        string      `json:"key"`
	Name       string      `json:"name"`
	Type       string      `json:"type,omitempty"`
	ToVariable VariableRef `json:"to_variable"`
}

// VariableRef is the "to" side of a variable pair.
type VariableRef struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}
