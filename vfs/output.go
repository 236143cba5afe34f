package vfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
)

// OutputNode is a file or directory in the output tree.
type OutputNode struct {
	Name     string
	Dir      bool
	Contents []byte
	Children []*OutputNode
	Source   string
	Metadata data.Value // parsed-contents metadata, when enabled
}

// WriteOptions controls output serialization.
type WriteOptions struct {
	// StripExtensions rewrites X.html to X/index.html for X != "index".
	StripExtensions bool
	// SaveDataFiles keeps .json files in the output.
	SaveDataFiles bool
}

// NewOutput reads a directory from disk into an output tree, without parsing.
// It is used for auxiliary trees such as static assets.
func NewOutput(root string) (*OutputNode, error) {
	var abs, err = filepath.Abs(root)
	if err != nil {
		return nil, &errortypes.NotFoundError{Path: root}
	}
	var info, statErr = os.Stat(abs)
	if statErr != nil || !info.IsDir() {
		return nil, &errortypes.NotFoundError{Path: root}
	}
	return outputFromDir(abs)
}

func outputFromDir(dir string) (*OutputNode, error) {
	var entries, err = os.ReadDir(dir)
	if err != nil {
		return nil, &errortypes.NotFoundError{Path: dir}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var children = make([]*OutputNode, 0, len(entries))
	for _, entry := range entries {
		var path = filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			child, err := outputFromDir(path)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		} else if entry.Type().IsRegular() {
			contents, err := os.ReadFile(path)
			if err != nil {
				return nil, errortypes.ErrRead
			}
			children = append(children, &OutputNode{
				Name:     entry.Name(),
				Contents: contents,
				Source:   path,
			})
		}
	}

	return &OutputNode{
		Name:     filepath.Base(dir),
		Dir:      true,
		Children: children,
		Source:   dir,
	}, nil
}

// GetAtPath walks the output tree by the normal components of path.
func (n *OutputNode) GetAtPath(path string) *OutputNode {
	if strings.HasPrefix(path, "/") {
		return nil
	}

	var current = n
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == "." {
			continue
		}
		if part == ".." || !current.Dir {
			return nil
		}
		var next *OutputNode
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

// Merge combines another tree into this one.  Directories with the same name
// merge recursively; any other name collision is a conflict.
func (n *OutputNode) Merge(other *OutputNode) error {
	if !n.Dir || !other.Dir {
		return &errortypes.ConflictError{SourceA: n.Source, SourceB: other.Source}
	}

	for _, otherChild := range other.Children {
		var existing *OutputNode
		for _, child := range n.Children {
			if child.Name == otherChild.Name {
				existing = child
				break
			}
		}

		if existing == nil {
			n.Children = append(n.Children, otherChild)
			continue
		}
		if existing.Dir && otherChild.Dir {
			if err := existing.Merge(otherChild); err != nil {
				return err
			}
			continue
		}
		return &errortypes.ConflictError{SourceA: existing.Source, SourceB: otherChild.Source}
	}

	return nil
}

// Save writes the tree to path.  An existing directory at path is removed
// first.
func (n *OutputNode) Save(path string, opts WriteOptions) error {
	if !n.Dir {
		return errortypes.ErrWrite
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return errortypes.ErrWrite
		}
	}

	if err := os.Mkdir(path, 0o755); err != nil {
		return errortypes.ErrWrite
	}

	for _, child := range n.Children {
		if err := child.saveRecur(path, opts); err != nil {
			return err
		}
	}
	return nil
}

func (n *OutputNode) saveRecur(parent string, opts WriteOptions) error {
	if n.Dir {
		var dir = filepath.Join(parent, n.Name)
		if err := mkdir(dir); err != nil {
			return err
		}
		for _, child := range n.Children {
			if err := child.saveRecur(dir, opts); err != nil {
				return err
			}
		}
		return nil
	}

	if n.Name == "root.html" || n.Name == "md.html" {
		return nil
	}
	if !opts.SaveDataFiles && strings.HasSuffix(n.Name, ".json") {
		return nil
	}

	if opts.StripExtensions && strings.HasSuffix(n.Name, ".html") && n.Name != "index.html" {
		var dir = filepath.Join(parent, strings.TrimSuffix(n.Name, ".html"))
		if err := mkdir(dir); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, "index.html"), n.Contents, 0o644); err != nil {
			return errortypes.ErrWrite
		}
		return nil
	}

	if err := os.WriteFile(filepath.Join(parent, n.Name), n.Contents, 0o644); err != nil {
		return errortypes.ErrWrite
	}
	return nil
}

// mkdir creates a directory, tolerating one that already exists.  Extension
// stripping can create the same directory twice.
func mkdir(dir string) error {
	if err := os.Mkdir(dir, 0o755); err != nil && !os.IsExist(err) {
		return errortypes.ErrWrite
	}
	return nil
}

// MetadataValue returns the recursive metadata representation of the tree.
func (n *OutputNode) MetadataValue() data.Value {
	if n.Dir {
		var children = make(data.List, 0, len(n.Children))
		for _, child := range n.Children {
			children = append(children, child.MetadataValue())
		}
		return data.Map{
			"type":     data.String("directory"),
			"name":     data.String(n.Name),
			"children": children,
		}
	}

	var m = data.Map{
		"type": data.String("file"),
		"name": data.String(n.Name),
	}
	if n.Metadata != nil {
		m["value"] = n.Metadata
	}
	return m
}
