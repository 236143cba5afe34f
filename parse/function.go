package parse

import (
	"strconv"

	"github.com/stuartgen/stuart/errortypes"
)

// RawFunction is the first stage of a parsed function call: the name plus its
// raw positional and named arguments, before a function parser has validated
// them.
type RawFunction struct {
	Name       string
	Positional []RawArgument
	Named      []NamedArgument
}

// NamedArgument is a `name=value` argument.
type NamedArgument struct {
	Name  string
	Value RawArgument
}

// ArgumentKind discriminates the RawArgument variants.
type ArgumentKind int

const (
	// ArgVariable is a `$dotted.name` reference.
	ArgVariable ArgumentKind = iota
	// ArgString is a double-quoted literal.
	ArgString
	// ArgInteger is a 32-bit integer literal.
	ArgInteger
	// ArgIdent is a bare identifier naming a registered function.
	ArgIdent
)

// RawArgument is a single parsed argument slice.
type RawArgument struct {
	Kind    ArgumentKind
	Text    string // variable name, string contents or identifier
	Integer int32
}

// ParseRawArgument classifies a trimmed argument slice.
func ParseRawArgument(arg string, reg Registry) (RawArgument, error) {
	if len(arg) > 0 && arg[0] == '$' {
		var name = arg[1:]
		for _, c := range name {
			if !isVariableChar(c) {
				return RawArgument{}, &errortypes.InvalidVariableNameError{Name: name}
			}
		}
		return RawArgument{Kind: ArgVariable, Text: name}, nil
	}

	if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
		var s = arg[1 : len(arg)-1]
		for i := 0; i < len(s); i++ {
			if s[i] == '"' {
				return RawArgument{}, errortypes.ErrGenericSyntax
			}
		}
		return RawArgument{Kind: ArgString, Text: s}, nil
	}

	if i, err := strconv.ParseInt(arg, 10, 32); err == nil {
		return RawArgument{Kind: ArgInteger, Integer: int32(i)}, nil
	}

	if reg.IsIdent(arg) {
		return RawArgument{Kind: ArgIdent, Text: arg}, nil
	}

	return RawArgument{}, errortypes.ErrGenericSyntax
}

// AsVariable returns the variable name, if this argument is a variable.
func (a RawArgument) AsVariable() (string, bool) {
	return a.Text, a.Kind == ArgVariable
}

// AsString returns the string contents, if this argument is a string.
func (a RawArgument) AsString() (string, bool) {
	return a.Text, a.Kind == ArgString
}

// AsIdent returns the identifier, if this argument is an identifier.
func (a RawArgument) AsIdent() (string, bool) {
	return a.Text, a.Kind == ArgIdent
}

// AsInteger returns the integer value, if this argument is an integer.
func (a RawArgument) AsInteger() (int32, bool) {
	return a.Integer, a.Kind == ArgInteger
}

// String renders the argument the way it appeared in the source, minus
// string quotes and a variable's leading `$`.
func (a RawArgument) String() string {
	if a.Kind == ArgInteger {
		return strconv.FormatInt(int64(a.Integer), 10)
	}
	return a.Text
}
