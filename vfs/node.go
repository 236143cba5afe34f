// Package vfs implements the virtual in-memory filesystem: an input tree
// built eagerly from disk with parsed file contents, and an output tree that
// is merged, serialized and exported.
package vfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
)

// Node is a file or directory in the input tree.
type Node struct {
	Name     string
	Dir      bool
	Contents []byte          // files only
	Parsed   ParsedContents  // files only
	Children []*Node         // directories only
	Source   string          // path on disk this node was read from
}

// NodeParser parses files of particular extensions on behalf of a plugin.
type NodeParser interface {
	// Extensions returns the file extensions (without the dot) this parser
	// claims.
	Extensions() []string

	// Parse parses the file, returning its contents.  Returning Ignored{}
	// copies the file through untouched.
	Parse(name string, contents []byte, source string) (ParsedContents, error)
}

// Options configures tree construction.
type Options struct {
	// Registry resolves template function names.
	Registry parse.Registry

	// Parsers maps file extensions to plugin node parsers.  Plugin parsers
	// take precedence over the built-in html/md/json handling.
	Parsers map[string]NodeParser
}

// New reads the directory at root into a tree, parsing each file according to
// its extension.
func New(root string, opts Options) (*Node, error) {
	var abs, err = filepath.Abs(root)
	if err != nil {
		return nil, &errortypes.NotFoundError{Path: root}
	}
	var info, statErr = os.Stat(abs)
	if statErr != nil || !info.IsDir() {
		return nil, &errortypes.NotFoundError{Path: root}
	}
	return newFromDir(abs, opts)
}

func newFromDir(dir string, opts Options) (*Node, error) {
	var entries, err = os.ReadDir(dir)
	if err != nil {
		return nil, &errortypes.NotFoundError{Path: dir}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var children = make([]*Node, 0, len(entries))
	for _, entry := range entries {
		var path = filepath.Join(dir, entry.Name())
		var child *Node
		if entry.IsDir() {
			child, err = newFromDir(path, opts)
		} else if entry.Type().IsRegular() {
			child, err = newFromFile(path, opts)
		} else {
			continue
		}
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return &Node{
		Name:     filepath.Base(dir),
		Dir:      true,
		Children: children,
		Source:   dir,
	}, nil
}

func newFromFile(path string, opts Options) (*Node, error) {
	var contents, err = os.ReadFile(path)
	if err != nil {
		return nil, errortypes.ErrRead
	}

	var name = filepath.Base(path)
	var parsed, parseErr = parseContents(name, contents, path, opts)
	if parseErr != nil {
		return nil, parseErr
	}

	return &Node{
		Name:     name,
		Contents: contents,
		Parsed:   parsed,
		Source:   path,
	}, nil
}

func parseContents(name string, contents []byte, source string, opts Options) (ParsedContents, error) {
	var ext = strings.TrimPrefix(filepath.Ext(name), ".")

	if parser, ok := opts.Parsers[ext]; ok {
		return parser.Parse(name, contents, source)
	}

	switch ext {
	case "html":
		var tokens, err = parse.ParseHTML(string(contents), source, opts.Registry)
		if err != nil {
			return nil, err
		}
		return HTML{Tokens: tokens}, nil
	case "md":
		var md, err = parse.ParseMarkdown(string(contents), source, opts.Registry)
		if err != nil {
			return nil, err
		}
		return Markdown{md}, nil
	case "json":
		var value, err = data.Decode(contents)
		if err != nil {
			return nil, errortypes.NewTraceback(source, 0, 0, errortypes.ErrInvalidJSON)
		}
		return JSON{Value: value}, nil
	default:
		return None{}, nil
	}
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.Dir }

// IsFile reports whether the node is a file.
func (n *Node) IsFile() bool { return !n.Dir }

// GetAtPath walks the tree by the normal components of path.  "." components
// are ignored; ".." and rooted paths resolve to nothing.
func (n *Node) GetAtPath(path string) *Node {
	if strings.HasPrefix(path, "/") {
		return nil
	}

	var current = n
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			return nil
		}

		if !current.Dir {
			return nil
		}
		var next *Node
		for _, child := range current.Children {
			if child.Name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}
