package parse

import (
	"errors"
	"testing"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
)

func TestParseMarkdownFrontmatter(t *testing.T) {
	var input = "---\ntitle: \"Hello\"\ndate: \"2022-01-01\"\n---\n# Heading\n\nBody text."
	var md, err = ParseMarkdown(input, "post.md", testRegistry)
	if err != nil {
		t.Fatal(err)
	}

	if len(md.Frontmatter) != 2 {
		t.Fatalf("expected 2 frontmatter entries, got %d", len(md.Frontmatter))
	}
	if md.Frontmatter[0].Key != "title" || md.Frontmatter[0].Value != "Hello" {
		t.Errorf("unexpected entry: %#v", md.Frontmatter[0])
	}
	if md.Frontmatter[1].Key != "date" || md.Frontmatter[1].Value != "2022-01-01" {
		t.Errorf("unexpected entry: %#v", md.Frontmatter[1])
	}

	if md.Markdown != "# Heading\n\nBody text." {
		t.Errorf("unexpected body: %q", md.Markdown)
	}
	if len(md.Tokens) != 1 {
		t.Errorf("expected the body to parse to one raw token, got %d", len(md.Tokens))
	}
}

func TestParseMarkdownNoFrontmatter(t *testing.T) {
	var md, err = ParseMarkdown("just a body", "post.md", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	if len(md.Frontmatter) != 0 || md.Markdown != "just a body" {
		t.Errorf("unexpected parse: %#v", md)
	}
}

func TestParseMarkdownValueColon(t *testing.T) {
	var input = "---\nurl: \"https://example.com\"\n---\nbody"
	var md, err = ParseMarkdown(input, "post.md", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	if md.Frontmatter[0].Value != "https://example.com" {
		t.Errorf("colon in value was truncated: %q", md.Frontmatter[0].Value)
	}
}

func TestParseMarkdownUnterminatedFrontmatter(t *testing.T) {
	var _, err = ParseMarkdown("---\ntitle: \"x\"", "post.md", testRegistry)
	if !errors.Is(err, errortypes.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}

	// A malformed line inside an unterminated block fails first.
	_, err = ParseMarkdown("---\ntitle: \"x\"\nbody", "post.md", testRegistry)
	if !errors.Is(err, errortypes.ErrInvalidFrontmatter) {
		t.Errorf("expected ErrInvalidFrontmatter, got %v", err)
	}
}

func TestParseMarkdownUnquotedValue(t *testing.T) {
	var _, err = ParseMarkdown("---\ntitle: bare\n---\nbody", "post.md", testRegistry)
	if !errors.Is(err, errortypes.ErrInvalidFrontmatter) {
		t.Errorf("expected ErrInvalidFrontmatter, got %v", err)
	}
}

func TestParseMarkdownTemplateBody(t *testing.T) {
	var md, err = ParseMarkdown("---\ntitle: \"x\"\n---\nHello {{ $name }}", "post.md", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	if len(md.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(md.Tokens))
	}
	if v, ok := md.Tokens[1].(*Variable); !ok || v.Name != "name" {
		t.Errorf("unexpected token: %#v", md.Tokens[1])
	}
}

func TestParsedMarkdownValue(t *testing.T) {
	var md, err = ParseMarkdown("---\ntitle: \"x\"\n---\nbody", "post.md", testRegistry)
	if err != nil {
		t.Fatal(err)
	}
	md.HTML = "<p>body</p>"

	var m = md.Value().(data.Map)
	if s := m.Key("title").String(); s != "x" {
		t.Errorf("unexpected title: %q", s)
	}
	if s := m.Key("content").String(); s != "<p>body</p>" {
		t.Errorf("unexpected content: %q", s)
	}
	if s := m.Key("markdown").String(); s != "body" {
		t.Errorf("unexpected markdown: %q", s)
	}
}
