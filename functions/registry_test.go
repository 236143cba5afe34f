package functions

import (
	"errors"
	"testing"

	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
)

func TestRegistryIsIdent(t *testing.T) {
	var reg = NewRegistry()
	for _, name := range []string{
		"begin", "end", "insert", "import", "for", "ifdefined", "else",
		"ifeq", "ifne", "ifgt", "ifge", "iflt", "ifle",
		"dateformat", "timetoread", "excerpt",
	} {
		if !reg.IsIdent(name) {
			t.Errorf("%s should be registered", name)
		}
	}
	if reg.IsIdent("nope") {
		t.Error("unknown name reported as an ident")
	}
}

func TestRegistryDuplicate(t *testing.T) {
	var reg = NewRegistry()
	if err := reg.Register(beginParser{}); err == nil {
		t.Error("registering a duplicate name must fail")
	}
}

func TestRegistryUnknownFunction(t *testing.T) {
	var reg = NewRegistry()
	var _, err = reg.ParseFunction(parse.RawFunction{Name: "nope"})
	var nonexistent *errortypes.NonexistentFunctionError
	if !errors.As(err, &nonexistent) {
		t.Errorf("expected NonexistentFunctionError, got %v", err)
	}
}

func parseCall(t *testing.T, src string) (parse.Function, error) {
	t.Helper()
	var reg = NewRegistry()
	var tokens, err = parse.ParseHTML(src, "test.html", reg)
	if err != nil {
		return nil, err
	}
	if len(tokens) != 1 {
		t.Fatalf("expected one token, got %d", len(tokens))
	}
	return tokens[0].(*parse.FunctionCall).Fn, nil
}

func TestArityErrors(t *testing.T) {
	var cases = []string{
		`{{ begin() }}`,
		`{{ begin("a", "b") }}`,
		`{{ end() }}`,
		`{{ else("x") }}`,
		`{{ insert() }}`,
		`{{ import($x) }}`,
		`{{ ifdefined() }}`,
		`{{ ifeq($a) }}`,
		`{{ dateformat($a) }}`,
		`{{ timetoread($a, $b) }}`,
		`{{ excerpt($a) }}`,
		`{{ for($x) }}`,
	}
	for _, src := range cases {
		var _, err = parseCall(t, src)
		var assertion *errortypes.AssertionError
		if !errors.As(err, &assertion) {
			t.Errorf("%s: expected AssertionError, got %v", src, err)
		}
	}
}

func TestArgumentKindErrors(t *testing.T) {
	var cases = []string{
		`{{ begin(42) }}`,
		`{{ insert($x) }}`,
		`{{ import("x", "y.json") }}`,
		`{{ import($x, $y) }}`,
		`{{ ifdefined("x") }}`,
		`{{ dateformat("2022", "%Y") }}`,
		`{{ excerpt($a, "5") }}`,
		`{{ for($x, 42) }}`,
		`{{ for($x, "not-a-source") }}`,
		`{{ for($x, "posts/", order="sideways") }}`,
		`{{ for($x, "posts/", unknown=1) }}`,
	}
	for _, src := range cases {
		var _, err = parseCall(t, src)
		if !errors.Is(err, errortypes.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", src, err)
		}
	}
}

func TestForDuplicateNamedArgs(t *testing.T) {
	var _, err = parseCall(t, `{{ for($x, "posts/", skip=1, skip=2) }}`)
	var assertion *errortypes.AssertionError
	if !errors.As(err, &assertion) {
		t.Errorf("expected AssertionError, got %v", err)
	}

	_, err = parseCall(t, `{{ for($x, "posts/", sortby=$a, sortby=$b) }}`)
	if !errors.As(err, &assertion) {
		t.Errorf("expected AssertionError, got %v", err)
	}
}

func TestForValidSources(t *testing.T) {
	for _, src := range []string{
		`{{ for($x, "data.json") }}`,
		`{{ for($x, "posts/") }}`,
		`{{ for($x, $list) }}`,
		`{{ for($x, "posts/", skip=1, limit=2, sortby=$date, order="asc") }}`,
	} {
		if _, err := parseCall(t, src); err != nil {
			t.Errorf("%s: %v", src, err)
		}
	}
}

func TestBeginEndKinds(t *testing.T) {
	var fn, err = parseCall(t, `{{ begin("custom") }}`)
	if err != nil {
		t.Fatal(err)
	}
	if fn.(*beginFunction).custom != true {
		t.Error("string label should be custom")
	}

	fn, err = parseCall(t, `{{ end(for) }}`)
	if err != nil {
		t.Fatal(err)
	}
	if fn.(*endFunction).custom {
		t.Error("ident label should not be custom")
	}
}
