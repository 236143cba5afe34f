// Package process executes parsed tokens against a call stack, rendering
// each file of the input tree inside its nearest layouts.
package process

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/vfs"
)

// Executable is implemented by function handles that the engine can run.
// Handles are produced at parse time and shared between renders.
type Executable interface {
	parse.Function
	Execute(s *Scope) error
}

// Environment propagates down the tree walk: the nearest root.html and
// md.html layout tokens.  Process environment variables live in the
// renderer's base frame.
type Environment struct {
	Root []parse.Token
	MD   []parse.Token
}

// UpdateFromChildren narrows the environment with any root.html / md.html
// found among a directory's direct children.
func (e Environment) UpdateFromChildren(children []*vfs.Node) Environment {
	var out = e
	for _, child := range children {
		switch child.Name {
		case "root.html":
			if html, ok := child.Parsed.(vfs.HTML); ok {
				out.Root = html.Tokens
			} else {
				out.Root = nil
			}
		case "md.html":
			if html, ok := child.Parsed.(vfs.HTML); ok {
				out.MD = html.Tokens
			} else {
				out.MD = nil
			}
		}
	}
	return out
}

// Renderer drives file renders for one build.  It is shared by every render
// of the build but owns no per-render state.
type Renderer struct {
	// Input is the input tree, read-only during evaluation.
	Input *vfs.Node

	// Base is the template for the bottom stack frame of every render; it
	// carries the `env` object.
	Base *Frame
}

// Output is the result of rendering one file.
type Output struct {
	Contents []byte
	Name     string // empty keeps the input name
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(htmlrenderer.WithUnsafe()),
)

// Process executes a single token against the scope.
func Process(t parse.Token, s *Scope) error {
	switch t := t.(type) {
	case *parse.Raw:
		return s.Output([]byte(t.Text))

	case *parse.FunctionCall:
		var ex, ok = t.Fn.(Executable)
		if !ok {
			return t.Traceback(&errortypes.NonexistentFunctionError{Name: t.Fn.Name()})
		}
		return ex.Execute(s)

	case *parse.Variable:
		var value, ok = s.GetVariable(t.Name)
		if !ok {
			return t.Traceback(&errortypes.UndefinedVariableError{Name: t.Name})
		}
		switch v := value.(type) {
		case data.String:
			return s.Output([]byte(v))
		case data.Null:
			return t.Traceback(&errortypes.NullError{Name: t.Name})
		default:
			return t.Traceback(&errortypes.InvalidDataTypeError{
				Variable: t.Name,
				Expected: "string",
				Found:    value.Type(),
			})
		}
	}
	return nil
}

// RenderHTML renders an HTML file: its own tokens first, then the root
// layout.  Sections captured in the first phase survive into the second; the
// first phase's direct output does not.
func (r *Renderer) RenderHTML(source string, tokens []parse.Token, env Environment) (*Output, error) {
	if env.Root == nil {
		return nil, errortypes.NewTraceback(source, 0, 0, errortypes.ErrMissingHTMLRoot)
	}

	var contents, err = r.renderPhases(source, r.Base.Clone(), tokens, env.Root)
	if err != nil {
		return nil, err
	}
	return &Output{Contents: contents}, nil
}

// RenderMarkdown renders a markdown file inside the md.html layout and then
// the root layout, with the file bound as `self`.  The body's own tokens
// were already evaluated by PreprocessMarkdown.  The output name swaps the
// .md extension for .html.
func (r *Renderer) RenderMarkdown(source, name string, md *parse.ParsedMarkdown, env Environment) (*Output, error) {
	if env.Root == nil {
		return nil, errortypes.NewTraceback(source, 0, 0, errortypes.ErrMissingHTMLRoot)
	}
	if env.MD == nil {
		return nil, errortypes.NewTraceback(source, 0, 0, errortypes.ErrMissingMarkdownRoot)
	}

	var base = r.Base.Clone()
	if err := base.AddVariable("self", md.Value()); err != nil {
		return nil, errortypes.NewTraceback(source, 0, 0, err)
	}

	var contents, err = r.renderPhases(source, base, env.MD, env.Root)
	if err != nil {
		return nil, err
	}

	var stem = name
	if len(stem) > 3 && stem[len(stem)-3:] == ".md" {
		stem = stem[:len(stem)-3]
	}
	return &Output{Contents: contents, Name: stem + ".html"}, nil
}

// renderPhases runs the two render phases over a shared section table.  Each
// phase starts from a clone of the base frame; the first phase's output is
// discarded once its stack discipline has been checked.
func (r *Renderer) renderPhases(source string, base *Frame, first, second []parse.Token) ([]byte, error) {
	var stack = Stack{base}
	var sections Sections
	var scope = &Scope{
		Tokens:   NewCursor(first),
		Stack:    &stack,
		Renderer: r,
		Sections: &sections,
	}

	if err := runTokens(scope); err != nil {
		return nil, err
	}
	if err := checkBase(source, &stack); err != nil {
		return nil, err
	}

	stack.Push(base.Clone())
	scope.Tokens = NewCursor(second)

	if err := runTokens(scope); err != nil {
		return nil, err
	}

	var final = stack.Pop()
	if final == nil || final.Name != "base" || stack.Height() != 0 {
		return nil, errortypes.NewTraceback(source, 0, 0, errortypes.ErrStack)
	}
	return final.Output.Bytes(), nil
}

func runTokens(scope *Scope) error {
	for {
		var token, ok = scope.Tokens.Next()
		if !ok {
			return nil
		}
		if err := Process(token, scope); err != nil {
			return err
		}
	}
}

func checkBase(source string, stack *Stack) error {
	var frame = stack.Pop()
	if frame == nil || frame.Name != "base" || stack.Height() != 0 {
		return errortypes.NewTraceback(source, 0, 0, errortypes.ErrStack)
	}
	return nil
}

// PreprocessMarkdown evaluates the template tokens inside a markdown body and
// converts the result to HTML, filling md.HTML.  This runs before the tree
// walk so that directory iteration sees rendered content.
func (r *Renderer) PreprocessMarkdown(source string, md *parse.ParsedMarkdown) error {
	var stack = Stack{r.Base.Clone()}
	var sections Sections
	var scope = &Scope{
		Tokens:   NewCursor(md.Tokens),
		Stack:    &stack,
		Renderer: r,
		Sections: &sections,
	}

	if err := runTokens(scope); err != nil {
		return err
	}

	var frame = stack.Pop()
	if frame == nil || frame.Name != "base" || stack.Height() != 0 {
		return errortypes.NewTraceback(source, 0, 0, errortypes.ErrStack)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(frame.Output.Bytes(), &buf); err != nil {
		return errortypes.NewTraceback(source, 0, 0, err)
	}
	md.HTML = buf.String()
	return nil
}
