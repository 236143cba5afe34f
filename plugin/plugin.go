// Package plugin defines the plugin surface: bundles of extra template
// functions and extension-keyed node parsers, including plugins written in
// JavaScript.
package plugin

import (
	"github.com/stuartgen/stuart/functions"
	"github.com/stuartgen/stuart/vfs"
)

// Plugin is a named bundle of capabilities contributed by external code.
type Plugin struct {
	Name    string
	Version string

	// Functions extend the template function registry.
	Functions []functions.Parser

	// Parsers claim file extensions for plugin-owned parsing and processing.
	Parsers []vfs.NodeParser
}
