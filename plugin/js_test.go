package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

const testPlugin = `
stuart.plugin = {
    name: "demo",
    version: "0.1.0",
    functions: [
        {name: "shout", fn: function(s) { return s.toUpperCase() + "!"; }},
        {name: "repeat", fn: function(s, n) { var out = ""; for (var i = 0; i < n; i++) out += s; return out; }}
    ]
};
`

func loadTestPlugin(t *testing.T) *Plugin {
	t.Helper()
	var path = filepath.Join(t.TempDir(), "demo.js")
	require.NoError(t, os.WriteFile(path, []byte(testPlugin), 0o644))

	var plugin, err = LoadJS(path)
	require.NoError(t, err)
	return plugin
}

func TestLoadJS(t *testing.T) {
	var plugin = loadTestPlugin(t)
	assert.Equal(t, "demo", plugin.Name)
	assert.Equal(t, "0.1.0", plugin.Version)
	require.Len(t, plugin.Functions, 2)
	assert.Equal(t, "shout", plugin.Functions[0].Name())
	assert.Equal(t, "repeat", plugin.Functions[1].Name())
}

func TestLoadJSMissingDeclaration(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "broken.js")
	require.NoError(t, os.WriteFile(path, []byte("1 + 1;"), 0o644))

	var _, err = LoadJS(path)
	assert.Error(t, err)
}

// execute runs a handle against a minimal scope with the given variables
// bound in the base frame.
func execute(t *testing.T, fn parse.Function, vars map[string]data.Value) string {
	t.Helper()

	var base = process.NewFrame("base")
	for k, v := range vars {
		require.NoError(t, base.AddVariable(k, v))
	}
	var stack = process.Stack{base}
	var sections process.Sections
	var cursor = process.NewCursor([]parse.Token{
		&parse.FunctionCall{Pos: parse.Pos{Path: "test.html", Line: 1, Column: 1}, Fn: fn},
	})
	cursor.Next()

	var scope = &process.Scope{
		Tokens:   cursor,
		Stack:    &stack,
		Sections: &sections,
	}

	var ex, ok = fn.(process.Executable)
	require.True(t, ok)
	require.NoError(t, ex.Execute(scope))
	return base.Output.String()
}

func TestJSFunctionExecute(t *testing.T) {
	var plugin = loadTestPlugin(t)

	var fn, err = plugin.Functions[0].Parse(parse.RawFunction{
		Name:       "shout",
		Positional: []parse.RawArgument{{Kind: parse.ArgVariable, Text: "greeting"}},
	})
	require.NoError(t, err)

	var out = execute(t, fn, map[string]data.Value{"greeting": data.String("hello")})
	assert.Equal(t, "HELLO!", out)
}

func TestJSFunctionLiteralArgs(t *testing.T) {
	var plugin = loadTestPlugin(t)

	var fn, err = plugin.Functions[1].Parse(parse.RawFunction{
		Name: "repeat",
		Positional: []parse.RawArgument{
			{Kind: parse.ArgString, Text: "ab"},
			{Kind: parse.ArgInteger, Integer: 3},
		},
	})
	require.NoError(t, err)

	var out = execute(t, fn, nil)
	assert.Equal(t, "ababab", out)
}

func TestJSFunctionUndefinedVariable(t *testing.T) {
	var plugin = loadTestPlugin(t)

	var fn, err = plugin.Functions[0].Parse(parse.RawFunction{
		Name:       "shout",
		Positional: []parse.RawArgument{{Kind: parse.ArgVariable, Text: "missing"}},
	})
	require.NoError(t, err)

	var base = process.NewFrame("base")
	var stack = process.Stack{base}
	var sections process.Sections
	var cursor = process.NewCursor([]parse.Token{
		&parse.FunctionCall{Pos: parse.Pos{Path: "test.html", Line: 1, Column: 1}, Fn: fn},
	})
	cursor.Next()

	var scope = &process.Scope{Tokens: cursor, Stack: &stack, Sections: &sections}
	assert.Error(t, fn.(process.Executable).Execute(scope))
}
