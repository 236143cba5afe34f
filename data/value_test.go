package data

import "testing"

func TestGet(t *testing.T) {
	var v = Map{
		"title": String("hello"),
		"tags":  List{String("a"), String("b")},
		"meta":  Map{"date": String("2022-01-01")},
	}

	type test struct {
		path     []string
		expected Value
	}
	var tests = []test{
		{nil, v},
		{[]string{"title"}, String("hello")},
		{[]string{"meta", "date"}, String("2022-01-01")},
		{[]string{"tags", "0"}, String("a")},
		{[]string{"tags", "1"}, String("b")},
		{[]string{"tags", "2"}, Null{}},
		{[]string{"missing"}, Null{}},
		{[]string{"title", "nested"}, Null{}},
	}

	for _, test := range tests {
		var actual = Get(v, test.path...)
		if !actual.Equals(test.expected) {
			t.Errorf("Get(%v): expected %v, got %v", test.path, test.expected, actual)
		}
	}
}

func TestSplitPath(t *testing.T) {
	var head, rest = SplitPath("self.meta.date")
	if head != "self" || len(rest) != 2 || rest[0] != "meta" || rest[1] != "date" {
		t.Errorf("unexpected split: %v %v", head, rest)
	}

	head, rest = SplitPath("name")
	if head != "name" || len(rest) != 0 {
		t.Errorf("unexpected split: %v %v", head, rest)
	}
}

func TestEquals(t *testing.T) {
	type test struct {
		a, b     Value
		expected bool
	}
	var tests = []test{
		{Int(3), Int(3), true},
		{Int(3), Float(3.0), true},
		{Int(3), Int(4), false},
		{String("a"), String("a"), true},
		{String("a"), Int(3), false},
		{Null{}, Null{}, true},
		{Bool(true), Bool(true), true},
		{Bool(true), Int(1), false},
	}
	for _, test := range tests {
		if actual := test.a.Equals(test.b); actual != test.expected {
			t.Errorf("%v == %v: expected %v, got %v", test.a, test.b, test.expected, actual)
		}
	}
}

func TestDecode(t *testing.T) {
	var v, err = Decode([]byte(`{"n": 3, "f": 1.5, "s": "x", "a": [1, 2], "z": null}`))
	if err != nil {
		t.Fatal(err)
	}
	var m = v.(Map)
	if !m["n"].Equals(Int(3)) {
		t.Errorf("expected Int(3), got %#v", m["n"])
	}
	if !m["f"].Equals(Float(1.5)) {
		t.Errorf("expected Float(1.5), got %#v", m["f"])
	}
	if !m["s"].Equals(String("x")) {
		t.Errorf("expected String(x), got %#v", m["s"])
	}
	if len(m["a"].(List)) != 2 {
		t.Errorf("expected 2 elements, got %#v", m["a"])
	}
	if _, ok := m["z"].(Null); !ok {
		t.Errorf("expected Null, got %#v", m["z"])
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	var orig = Map{"a": List{Int(1), String("two")}, "b": Null{}}
	var b, err = Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var back Value
	back, err = Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if !Get(back, "a", "1").Equals(String("two")) {
		t.Errorf("round trip lost a value: %s", b)
	}
}
