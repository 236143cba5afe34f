// Package parse converts template source into a stream of position-tagged
// tokens.  Templates alternate between raw text and `{{ ... }}` tags holding
// either a `$variable` reference or a function call.
package parse

import (
	"strings"
	"unicode"

	"github.com/stuartgen/stuart/errortypes"
)

// ParseHTML parses template source into a list of tokens.  Function names are
// resolved against the given registry and their arguments validated as part
// of parsing.
func ParseHTML(input, path string, reg Registry) ([]Token, error) {
	var p = NewParser(input, path)
	var tokens []Token

	var line, column = p.Location()

	for {
		var raw, ok = p.ExtractUntil("{{", true)
		if !ok {
			break
		}

		if raw != "" {
			tokens = append(tokens, &Raw{Pos{path, line, column}, raw})
		}

		p.IgnoreWhile(unicode.IsSpace)
		line, column = p.Location()

		var token Token
		var err error
		if c, ok := p.Peek(); !ok {
			return nil, p.Traceback(errortypes.ErrUnexpectedEOF)
		} else if c == '$' {
			token, err = parseVariable(p)
		} else {
			token, err = parseFunction(p, reg)
		}
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)

		p.IgnoreWhile(unicode.IsSpace)
		if err := p.Expect("}}"); err != nil {
			return nil, err
		}

		line, column = p.Location()
	}

	var remaining = p.ExtractRemaining(true)
	if remaining != "" {
		tokens = append(tokens, &Raw{Pos{path, line, column}, remaining})
	}

	return tokens, nil
}

func parseVariable(p *Parser) (Token, error) {
	if err := p.Expect("$"); err != nil {
		return nil, err
	}

	var line, column = p.Location()
	var name = p.ExtractWhile(isVariableChar)
	if name == "" {
		return nil, p.Traceback(&errortypes.InvalidVariableNameError{Name: "<empty>"})
	}

	return &Variable{Pos{p.Path(), line, column}, name}, nil
}

func parseFunction(p *Parser, reg Registry) (Token, error) {
	var line, column = p.Location()
	var name = p.ExtractWhile(isNameChar)
	if name == "" {
		return nil, p.Traceback(&errortypes.InvalidFunctionNameError{Name: "<empty>"})
	}

	p.IgnoreWhile(unicode.IsSpace)
	if err := p.Expect("("); err != nil {
		return nil, err
	}

	var positional []RawArgument
	var named []NamedArgument

	for {
		p.IgnoreWhile(unicode.IsSpace)

		var openQuote = false
		var arg = p.ExtractWhile(func(c rune) bool {
			if c == '"' {
				openQuote = !openQuote
			}
			return openQuote || (c != ')' && c != ',')
		})
		arg = strings.TrimSpace(arg)

		if eq := unquotedIndex(arg, '='); eq >= 0 {
			var argName = arg[:eq]
			var value = arg[eq+1:]

			if argName == "" || value == "" || !isName(argName) {
				return nil, p.Traceback(errortypes.ErrGenericSyntax)
			}

			parsed, err := ParseRawArgument(value, reg)
			if err != nil {
				return nil, p.Traceback(err)
			}
			named = append(named, NamedArgument{argName, parsed})
		} else if arg != "" {
			if len(named) > 0 {
				return nil, p.Traceback(errortypes.ErrPositionalAfterNamed)
			}

			parsed, err := ParseRawArgument(arg, reg)
			if err != nil {
				return nil, p.Traceback(err)
			}
			positional = append(positional, parsed)
		}

		var c, err = p.Next()
		if err != nil {
			return nil, err
		}
		if c == ')' {
			break
		}
	}

	p.IgnoreWhile(unicode.IsSpace)

	var fn, err = reg.ParseFunction(RawFunction{
		Name:       name,
		Positional: positional,
		Named:      named,
	})
	if err != nil {
		return nil, errortypes.NewTraceback(p.Path(), line, column, err)
	}

	return &FunctionCall{Pos{p.Path(), line, column}, fn}, nil
}

// unquotedIndex returns the index of the first occurrence of c outside double
// quotes, or -1.
func unquotedIndex(s string, c byte) int {
	var inQuote = false
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			inQuote = !inQuote
		} else if s[i] == c && !inQuote {
			return i
		}
	}
	return -1
}

func isVariableChar(c rune) bool {
	return isNameChar(c) || c == '.'
}

func isNameChar(c rune) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

func isName(s string) bool {
	for _, c := range s {
		if !isNameChar(c) {
			return false
		}
	}
	return s != ""
}
