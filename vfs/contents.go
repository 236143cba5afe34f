package vfs

import (
	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/parse"
)

// ParsedContents is the per-file parse result.  It is one of HTML, Markdown,
// JSON, Custom, None or Ignored.
type ParsedContents interface {
	// ToJSON returns the metadata representation of the contents, or nil if
	// the contents carry no metadata.
	ToJSON() data.Value
}

// HTML is a file parsed into template tokens.
type HTML struct {
	Tokens []parse.Token
}

// Markdown is a markdown file parsed into frontmatter and a template body.
type Markdown struct {
	*parse.ParsedMarkdown
}

// JSON is a parsed JSON data file.
type JSON struct {
	Value data.Value
}

// Custom is plugin-owned parsed contents.
type Custom struct {
	Processor NodeProcessor
}

// None marks a file with no parser for its extension.
type None struct{}

// Ignored marks a file whose parsing was disabled; it copies through
// byte-for-byte.
type Ignored struct{}

// NodeProcessor renders plugin-owned contents during the tree walk.
type NodeProcessor interface {
	// Process produces the output contents and optionally a replacement file
	// name (empty keeps the input name).
	Process() (contents []byte, name string, err error)

	// ToJSON returns the metadata representation, or nil.
	ToJSON() data.Value
}

func (c HTML) ToJSON() data.Value { return nil }
func (c None) ToJSON() data.Value { return nil }
func (c Ignored) ToJSON() data.Value { return nil }

func (c Markdown) ToJSON() data.Value {
	return data.Map{
		"type":  data.String("markdown"),
		"value": c.FrontmatterValue(),
	}
}

func (c JSON) ToJSON() data.Value {
	return data.Map{
		"type":  data.String("json"),
		"value": c.Value,
	}
}

func (c Custom) ToJSON() data.Value { return c.Processor.ToJSON() }
