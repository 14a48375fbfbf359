// Package weaver turns data clump reports into renderable graphs.
package weaver

// Version is the current release of the weaver CLI.
const Version = "0.1.0"
