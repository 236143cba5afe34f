package parse

import (
	"errors"
	"testing"

	"github.com/stuartgen/stuart/errortypes"
)

// stubFunction and stubRegistry stand in for the real function registry so
// the tokenizer can be tested in isolation.
type stubFunction struct {
	name string
	raw  RawFunction
}

func (f *stubFunction) Name() string { return f.name }

type stubRegistry struct{ names []string }

func (r *stubRegistry) ParseFunction(raw RawFunction) (Function, error) {
	for _, name := range r.names {
		if name == raw.Name {
			return &stubFunction{raw.Name, raw}, nil
		}
	}
	return nil, &errortypes.NonexistentFunctionError{Name: raw.Name}
}

func (r *stubRegistry) IsIdent(s string) bool {
	for _, name := range r.names {
		if name == s {
			return true
		}
	}
	return false
}

var testRegistry = &stubRegistry{[]string{"begin", "end", "for", "insert", "ifdefined"}}

func TestParseHTMLRawOnly(t *testing.T) {
	var tokens, err = ParseHTML("<h1>hello</h1>", "test.html", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	var raw, ok = tokens[0].(*Raw)
	if !ok || raw.Text != "<h1>hello</h1>" {
		t.Errorf("unexpected token: %#v", tokens[0])
	}
}

func TestParseHTMLEscapedDelimiter(t *testing.T) {
	var tokens, err = ParseHTML(`literal \{{ braces`, "test.html", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	if raw := tokens[0].(*Raw); raw.Text != "literal {{ braces" {
		t.Errorf("unexpected raw text: %q", raw.Text)
	}
}

func TestParseHTMLVariable(t *testing.T) {
	var tokens, err = ParseHTML("hello {{ $name }}!", "test.html", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if v := tokens[1].(*Variable); v.Name != "name" {
		t.Errorf("unexpected variable: %q", v.Name)
	}
	if raw := tokens[2].(*Raw); raw.Text != "!" {
		t.Errorf("unexpected trailing raw: %q", raw.Text)
	}
}

func TestParseHTMLDottedVariable(t *testing.T) {
	var tokens, err = ParseHTML("{{ $self.meta.date }}", "test.html", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	if v := tokens[0].(*Variable); v.Name != "self.meta.date" {
		t.Errorf("unexpected variable: %q", v.Name)
	}
}

func TestParseHTMLEmptyVariable(t *testing.T) {
	var _, err = ParseHTML("{{ $ }}", "test.html", testRegistry)
	var invalid *errortypes.InvalidVariableNameError
	if !errors.As(err, &invalid) || invalid.Name != "<empty>" {
		t.Errorf("expected InvalidVariableNameError, got %v", err)
	}
}

func TestParseHTMLFunction(t *testing.T) {
	var tokens, err = ParseHTML(`{{ begin("section") }}`, "test.html", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	var fn = tokens[0].(*FunctionCall).Fn.(*stubFunction)
	if fn.name != "begin" {
		t.Errorf("unexpected function: %q", fn.name)
	}
	if len(fn.raw.Positional) != 1 {
		t.Fatalf("expected 1 positional arg, got %d", len(fn.raw.Positional))
	}
	if s, ok := fn.raw.Positional[0].AsString(); !ok || s != "section" {
		t.Errorf("unexpected arg: %#v", fn.raw.Positional[0])
	}
}

func TestParseHTMLFunctionZeroArgs(t *testing.T) {
	var reg = &stubRegistry{[]string{"else"}}
	var tokens, err = ParseHTML("{{ else() }}", "test.html", reg)
	if err != nil {
		t.Fatal(err)
	}
	var fn = tokens[0].(*FunctionCall).Fn.(*stubFunction)
	if len(fn.raw.Positional) != 0 || len(fn.raw.Named) != 0 {
		t.Errorf("expected no args, got %#v", fn.raw)
	}
}

func TestParseHTMLNamedArguments(t *testing.T) {
	var tokens, err = ParseHTML(
		`{{ for($post, "posts/", skip=1, limit=2, sortby=$date, order="desc") }}`,
		"test.html", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	var fn = tokens[0].(*FunctionCall).Fn.(*stubFunction)
	if len(fn.raw.Positional) != 2 || len(fn.raw.Named) != 4 {
		t.Fatalf("unexpected args: %#v", fn.raw)
	}
	if fn.raw.Named[0].Name != "skip" {
		t.Errorf("unexpected named arg: %#v", fn.raw.Named[0])
	}
	if i, ok := fn.raw.Named[0].Value.AsInteger(); !ok || i != 1 {
		t.Errorf("unexpected skip value: %#v", fn.raw.Named[0].Value)
	}
	if v, ok := fn.raw.Named[2].Value.AsVariable(); !ok || v != "date" {
		t.Errorf("unexpected sortby value: %#v", fn.raw.Named[2].Value)
	}
	if s, ok := fn.raw.Named[3].Value.AsString(); !ok || s != "desc" {
		t.Errorf("unexpected order value: %#v", fn.raw.Named[3].Value)
	}
}

func TestParseHTMLPositionalAfterNamed(t *testing.T) {
	var _, err = ParseHTML(`{{ for($x, skip=1, "posts/") }}`, "test.html", testRegistry)
	if !errors.Is(err, errortypes.ErrPositionalAfterNamed) {
		t.Errorf("expected ErrPositionalAfterNamed, got %v", err)
	}
}

func TestParseHTMLNonexistentFunction(t *testing.T) {
	var _, err = ParseHTML("{{ nope() }}", "test.html", testRegistry)
	var nonexistent *errortypes.NonexistentFunctionError
	if !errors.As(err, &nonexistent) || nonexistent.Name != "nope" {
		t.Errorf("expected NonexistentFunctionError, got %v", err)
	}
}

func TestParseHTMLStringArgWithComma(t *testing.T) {
	var reg = &stubRegistry{[]string{"dateformat"}}
	var tokens, err = ParseHTML(`{{ dateformat($date, "%b %d, %Y") }}`, "test.html", reg)
	if err != nil {
		t.Fatal(err)
	}
	var fn = tokens[0].(*FunctionCall).Fn.(*stubFunction)
	if len(fn.raw.Positional) != 2 {
		t.Fatalf("expected 2 args, got %d", len(fn.raw.Positional))
	}
	if s, _ := fn.raw.Positional[1].AsString(); s != "%b %d, %Y" {
		t.Errorf("comma inside string split the argument: %q", s)
	}
}

func TestParseHTMLTokenPositions(t *testing.T) {
	var tokens, err = ParseHTML("line one\n{{ $x }}", "test.html", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	var pos = tokens[1].Position()
	if pos.Line != 2 {
		t.Errorf("expected variable on line 2, got %d", pos.Line)
	}
	if pos.Path != "test.html" {
		t.Errorf("unexpected path %q", pos.Path)
	}
}

func TestParseHTMLUnclosedTag(t *testing.T) {
	var _, err = ParseHTML("{{ $x ", "test.html", testRegistry)
	if err == nil {
		t.Fatal("expected an error for an unclosed tag")
	}
}

func TestRawArgumentKinds(t *testing.T) {
	type test struct {
		input string
		kind  ArgumentKind
		fails bool
	}
	var tests = []test{
		{"$var", ArgVariable, false},
		{"$a.b.c", ArgVariable, false},
		{`"text"`, ArgString, false},
		{"42", ArgInteger, false},
		{"-7", ArgInteger, false},
		{"for", ArgIdent, false},
		{"unknown", 0, true},
		{`"unterminated`, 0, true},
		{`"a"b"`, 0, true},
	}

	for _, test := range tests {
		var arg, err = ParseRawArgument(test.input, testRegistry)
		if test.fails {
			if err == nil {
				t.Errorf("ParseRawArgument(%q): expected error", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRawArgument(%q): %v", test.input, err)
			continue
		}
		if arg.Kind != test.kind {
			t.Errorf("ParseRawArgument(%q): expected kind %v, got %v", test.input, test.kind, arg.Kind)
		}
	}
}
