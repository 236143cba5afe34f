package parse

import (
	"strings"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
)

// FrontmatterEntry is a single `key: "value"` pair, in source order.
type FrontmatterEntry struct {
	Key   string
	Value string
}

// ParsedMarkdown is a markdown file split into frontmatter and body.  The
// body keeps both its raw text (for CommonMark conversion after template
// evaluation) and its template tokens.  HTML is filled in by the markdown
// preprocessing pass, not at parse time.
type ParsedMarkdown struct {
	Frontmatter []FrontmatterEntry
	Markdown    string
	Tokens      []Token
	HTML        string
}

// ParseMarkdown parses a markdown file: an optional frontmatter block
// delimited by `---` lines, then a body parsed as template tokens.
func ParseMarkdown(input, path string, reg Registry) (*ParsedMarkdown, error) {
	var frontmatter []FrontmatterEntry
	var linesToSkip = 0

	if strings.HasPrefix(input, "---\n") || strings.HasPrefix(input, "---\r\n") {
		var lines = splitLines(input)
		var dashedLines = 0

		for i, line := range lines {
			if strings.HasPrefix(line, "---") {
				dashedLines++
				if dashedLines == 2 {
					linesToSkip = i + 1
					break
				}
				continue
			}

			if dashedLines == 1 {
				var key, value, ok = strings.Cut(line, ":")
				if !ok {
					return nil, errortypes.NewTraceback(path, i+1, 0, errortypes.ErrInvalidFrontmatter)
				}

				value = strings.TrimSpace(value)
				if !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) || len(value) < 2 {
					return nil, errortypes.NewTraceback(path, i+1, 0, errortypes.ErrInvalidFrontmatter)
				}

				frontmatter = append(frontmatter, FrontmatterEntry{
					Key:   strings.TrimSpace(key),
					Value: value[1 : len(value)-1],
				})
			}
		}

		if dashedLines != 2 {
			return nil, errortypes.NewTraceback(path, len(lines), 0, errortypes.ErrUnexpectedEOF)
		}
	}

	var body = strings.Join(splitLines(input)[linesToSkip:], "\n")

	var tokens, err = ParseHTML(body, path, reg)
	if err != nil {
		return nil, err
	}

	return &ParsedMarkdown{
		Frontmatter: frontmatter,
		Markdown:    body,
		Tokens:      tokens,
	}, nil
}

// Value returns the binding for this file's `self` variable and for markdown
// directory iteration: the frontmatter plus the rendered HTML under `content`
// and the raw body under `markdown`.
func (md *ParsedMarkdown) Value() data.Value {
	var m = md.FrontmatterValue().(data.Map)
	m["content"] = data.String(md.HTML)
	m["markdown"] = data.String(md.Markdown)
	return m
}

// FrontmatterValue returns the frontmatter alone as a JSON object.
func (md *ParsedMarkdown) FrontmatterValue() data.Value {
	var m = make(data.Map, len(md.Frontmatter)+2)
	for _, entry := range md.Frontmatter {
		m[entry.Key] = data.String(entry.Value)
	}
	return m
}

// splitLines splits on '\n', dropping a trailing '\r' from each line, the way
// a lines iterator does.
func splitLines(s string) []string {
	var lines = strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
