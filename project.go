package stuart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stuartgen/stuart/plugin"
	"github.com/stuartgen/stuart/vfs"
)

// A project directory contains a stuart.yml manifest, a content/ tree to
// build, and optionally a static/ tree merged into the output.

// ApplyPlugin registers a plugin's functions and node parsers.  Plugins must
// be applied before Read.
func (s *Stuart) ApplyPlugin(p *plugin.Plugin) error {
	for _, fn := range p.Functions {
		if err := s.Registry.Register(fn); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name, err)
		}
	}
	for _, parser := range p.Parsers {
		s.RegisterNodeParser(parser)
	}
	return nil
}

// BuildProject loads the manifest at dir, applies its plugins, builds the
// content tree and merges the static tree.  The returned processor holds the
// finished output, ready to Save.
func BuildProject(dir string) (*Stuart, error) {
	var manifest, err = os.ReadFile(filepath.Join(dir, "stuart.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	config, err := LoadConfig(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	var s = New(config)

	for name, path := range config.Plugins {
		if !strings.HasSuffix(path, ".js") {
			return nil, fmt.Errorf("plugin %s: only JavaScript plugins can be loaded from a manifest", name)
		}
		p, err := plugin.LoadJS(filepath.Join(dir, path))
		if err != nil {
			return nil, err
		}
		if err := s.ApplyPlugin(p); err != nil {
			return nil, err
		}
	}

	if err := s.Read(filepath.Join(dir, "content")); err != nil {
		return nil, err
	}
	if err := s.Build(); err != nil {
		return nil, err
	}

	var static = filepath.Join(dir, "static")
	if info, err := os.Stat(static); err == nil && info.IsDir() {
		tree, err := vfs.NewOutput(static)
		if err != nil {
			return nil, err
		}
		if err := s.MergeOutput(tree); err != nil {
			return nil, err
		}
	}

	return s, nil
}
