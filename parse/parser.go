package parse

import (
	"strings"

	"github.com/stuartgen/stuart/errortypes"
)

// Parser is a forward-only character cursor with line and column tracking.
//
// The position reported by Location and captured by Traceback is that of the
// most recently consumed character.  Advancing over '\n' moves to the next
// line and resets the column; '\r' is skipped for column accounting.
type Parser struct {
	chars      []rune
	index      int
	path       string
	line       int
	column     int
	nextLine   int
	nextColumn int
}

// NewParser creates a parser over the given input, attributed to path.
func NewParser(input, path string) *Parser {
	return &Parser{
		chars:      []rune(input),
		path:       path,
		line:       1,
		column:     1,
		nextLine:   1,
		nextColumn: 1,
	}
}

// Traceback wraps an error kind with the parser's current position.
func (p *Parser) Traceback(kind error) error {
	return errortypes.NewTraceback(p.path, p.line, p.column, kind)
}

// Next consumes and returns the next character, or an error if the end of the
// input has been reached.
func (p *Parser) Next() (rune, error) {
	if p.index >= len(p.chars) {
		return 0, p.Traceback(errortypes.ErrUnexpectedEOF)
	}

	var c = p.chars[p.index]
	p.index++
	p.line = p.nextLine
	p.column = p.nextColumn

	if c == '\n' {
		p.nextLine++
		p.nextColumn = 0
	} else if c != '\r' {
		p.nextColumn++
	}

	return c, nil
}

// Peek returns the next character without consuming it.
func (p *Parser) Peek() (rune, bool) {
	if p.index >= len(p.chars) {
		return 0, false
	}
	return p.chars[p.index], true
}

// Expect consumes the characters of s, returning an error if they do not
// match.
func (p *Parser) Expect(s string) error {
	for _, c := range s {
		var next, err = p.Next()
		if err != nil {
			return err
		}
		if next != c {
			return p.Traceback(&errortypes.ExpectedError{Expected: s})
		}
	}
	return nil
}

// ExtractUntil accumulates characters until the accumulated text ends with s,
// returning the text with the terminator removed.  When allowEscape is set, a
// backslash immediately preceding the terminator removes the backslash and
// keeps scanning, leaving the terminator in the result as literal text.  If
// the end of the input is reached first, the cursor is restored and ok is
// false.
func (p *Parser) ExtractUntil(s string, allowEscape bool) (string, bool) {
	var result strings.Builder
	var saved = *p

	for {
		var c, err = p.Next()
		if err != nil {
			*p = saved
			return "", false
		}
		result.WriteRune(c)

		var text = result.String()
		if strings.HasSuffix(text, s) {
			if allowEscape && len(text) > len(s) && text[len(text)-len(s)-1] == '\\' {
				result.Reset()
				result.WriteString(text[:len(text)-len(s)-1])
				result.WriteString(s)
				continue
			}
			return text[:len(text)-len(s)], true
		}
	}
}

// ExtractWhile accumulates characters while the predicate returns true.
func (p *Parser) ExtractWhile(f func(rune) bool) string {
	var result strings.Builder
	for {
		var c, ok = p.Peek()
		if !ok || !f(c) {
			break
		}
		c, _ = p.Next()
		result.WriteRune(c)
	}
	return result.String()
}

// ExtractRemaining drains the rest of the input.  When allowEscape is set,
// every `\{{` becomes `{{`.
func (p *Parser) ExtractRemaining(allowEscape bool) string {
	var result strings.Builder
	for {
		var c, err = p.Next()
		if err != nil {
			break
		}
		result.WriteRune(c)
	}

	if allowEscape {
		return strings.ReplaceAll(result.String(), `\{{`, "{{")
	}
	return result.String()
}

// IgnoreWhile discards characters while the predicate returns true.
func (p *Parser) IgnoreWhile(f func(rune) bool) {
	for {
		var c, ok = p.Peek()
		if !ok || !f(c) {
			break
		}
		p.Next()
	}
}

// Location returns the line and column of the last consumed character.
func (p *Parser) Location() (int, int) {
	return p.line, p.column
}

// Path returns the path the parser's input is attributed to.
func (p *Parser) Path() string {
	return p.path
}
