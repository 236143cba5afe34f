package functions

import (
	"strconv"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

// input is a comparison operand: a variable reference, a string literal or
// an integer literal.
type input struct {
	kind    parse.ArgumentKind
	text    string
	integer int32
}

func inputFromArg(arg parse.RawArgument) (input, error) {
	switch arg.Kind {
	case parse.ArgVariable, parse.ArgString:
		return input{kind: arg.Kind, text: arg.Text}, nil
	case parse.ArgInteger:
		return input{kind: parse.ArgInteger, integer: arg.Integer}, nil
	}
	return input{}, errortypes.ErrInvalidArgument
}

// deref resolves a variable operand through the scope: a JSON string becomes
// a string operand and a JSON number an integer operand.  Anything else, or
// a missing variable, fails.  Literal operands pass through unchanged.
func (in input) deref(s *process.Scope) (input, bool) {
	if in.kind != parse.ArgVariable {
		return in, true
	}

	var value, ok = s.GetVariable(in.text)
	if !ok {
		return input{}, false
	}
	switch v := value.(type) {
	case data.String:
		return input{kind: parse.ArgString, text: string(v)}, true
	case data.Int:
		return input{kind: parse.ArgInteger, integer: int32(v)}, true
	case data.Float:
		return input{kind: parse.ArgInteger, integer: int32(v)}, true
	}
	return input{}, false
}

// equals is defined on like kinds only.
func (in input) equals(other input) bool {
	if in.kind != other.kind {
		return false
	}
	if in.kind == parse.ArgInteger {
		return in.integer == other.integer
	}
	return in.text == other.text
}

// compare returns an ordering for integer operands; every other pairing has
// no ordering.
func (in input) compare(other input) (int, bool) {
	if in.kind != parse.ArgInteger || other.kind != parse.ArgInteger {
		return 0, false
	}
	switch {
	case in.integer < other.integer:
		return -1, true
	case in.integer > other.integer:
		return 1, true
	}
	return 0, true
}

func (in input) String() string {
	if in.kind == parse.ArgInteger {
		return strconv.FormatInt(int64(in.integer), 10)
	}
	return in.text
}
