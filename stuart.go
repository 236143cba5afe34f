// Package stuart is a static-site generator built around a template
// evaluation engine over a virtual in-memory filesystem.  Each file of the
// input tree renders inside the nearest root.html / md.html layouts found
// among its ancestors.
package stuart

import (
	"os"
	"strings"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/functions"
	"github.com/stuartgen/stuart/process"
	"github.com/stuartgen/stuart/vfs"
)

// Stuart is a single project build: the parsed input tree, the function
// registry and, after Build, the output tree.
type Stuart struct {
	Config   Config
	Registry *functions.Registry
	Input    *vfs.Node
	Out      *vfs.OutputNode

	parsers  map[string]vfs.NodeParser
	renderer *process.Renderer
}

// New creates a processor with the built-in functions registered.
func New(config Config) *Stuart {
	return &Stuart{
		Config:   config,
		Registry: functions.NewRegistry(),
		parsers:  make(map[string]vfs.NodeParser),
	}
}

// RegisterNodeParser claims the parser's extensions for plugin-owned file
// parsing.  It must be called before Read.
func (s *Stuart) RegisterNodeParser(p vfs.NodeParser) {
	for _, ext := range p.Extensions() {
		s.parsers[ext] = p
	}
}

// Read builds the input tree from the directory at root, parsing every file.
func (s *Stuart) Read(root string) error {
	var tree, err = vfs.New(root, vfs.Options{
		Registry: s.Registry,
		Parsers:  s.parsers,
	})
	if err != nil {
		return err
	}
	s.Input = tree
	return nil
}

// SetInput supplies an already-constructed input tree, used by tests and
// embedders.
func (s *Stuart) SetInput(tree *vfs.Node) {
	s.Input = tree
}

// Build renders every leaf of the input tree into a fresh output tree.  A
// build is a pure function of the input tree, the configuration and the
// process environment.
func (s *Stuart) Build() error {
	var base = process.NewFrame("base")
	base.AddVariable("env", envValue())
	s.renderer = &process.Renderer{Input: s.Input, Base: base}

	if err := s.preprocess(s.Input); err != nil {
		return err
	}

	var env = process.Environment{}
	var out, err = s.buildNode(s.Input, env)
	if err != nil {
		return err
	}
	s.Out = out
	return nil
}

// preprocess evaluates the template tokens inside every markdown body and
// converts the results to HTML, so that directory iteration and rendering
// see finished content.
func (s *Stuart) preprocess(node *vfs.Node) error {
	if node.IsDir() {
		for _, child := range node.Children {
			if err := s.preprocess(child); err != nil {
				return err
			}
		}
		return nil
	}

	if md, ok := node.Parsed.(vfs.Markdown); ok {
		return s.renderer.PreprocessMarkdown(node.Source, md.ParsedMarkdown)
	}
	return nil
}

func (s *Stuart) buildNode(node *vfs.Node, env process.Environment) (*vfs.OutputNode, error) {
	if node.IsDir() {
		env = env.UpdateFromChildren(node.Children)

		var children = make([]*vfs.OutputNode, 0, len(node.Children))
		for _, child := range node.Children {
			var built, err = s.buildNode(child, env)
			if err != nil {
				return nil, err
			}
			children = append(children, built)
		}
		return &vfs.OutputNode{
			Name:     node.Name,
			Dir:      true,
			Children: children,
			Source:   node.Source,
		}, nil
	}

	var out = &vfs.OutputNode{
		Name:     node.Name,
		Contents: node.Contents,
		Source:   node.Source,
	}

	// Layouts copy through untouched and carry no metadata.
	if node.Name == "root.html" || node.Name == "md.html" {
		return out, nil
	}

	if s.Config.SaveMetadata && node.Parsed != nil {
		out.Metadata = node.Parsed.ToJSON()
	}

	switch parsed := node.Parsed.(type) {
	case vfs.HTML:
		var rendered, err = s.renderer.RenderHTML(node.Source, parsed.Tokens, env)
		if err != nil {
			return nil, err
		}
		out.Contents = rendered.Contents
	case vfs.Markdown:
		var rendered, err = s.renderer.RenderMarkdown(node.Source, node.Name, parsed.ParsedMarkdown, env)
		if err != nil {
			return nil, err
		}
		out.Contents = rendered.Contents
		out.Name = rendered.Name
	case vfs.Custom:
		var contents, name, err = parsed.Processor.Process()
		if err != nil {
			return nil, err
		}
		out.Contents = contents
		if name != "" {
			out.Name = name
		}
	}

	return out, nil
}

// MergeOutput merges an auxiliary tree, such as static assets, into the
// build output.
func (s *Stuart) MergeOutput(other *vfs.OutputNode) error {
	if s.Out == nil {
		return errortypes.ErrWrite
	}
	return s.Out.Merge(other)
}

// Save writes the output tree to path.
func (s *Stuart) Save(path string) error {
	if s.Out == nil {
		return errortypes.ErrWrite
	}
	return s.Out.Save(path, vfs.WriteOptions{
		StripExtensions: s.Config.StripExtensions,
		SaveDataFiles:   s.Config.SaveDataFiles,
	})
}

// SaveMetadata writes the metadata export to path.
func (s *Stuart) SaveMetadata(path string) error {
	if s.Out == nil || !s.Config.SaveMetadata {
		return errortypes.ErrWrite
	}

	var meta = data.Map{
		"name":   data.String(s.Config.Name),
		"author": data.String(s.Config.Author),
		"data":   s.Out.MetadataValue(),
	}
	var b, err = data.Marshal(meta)
	if err != nil {
		return errortypes.ErrWrite
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errortypes.ErrWrite
	}
	return nil
}

// envValue snapshots the process environment as a JSON object.
func envValue() data.Value {
	var m = make(data.Map)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = data.String(v)
		}
	}
	return m
}
