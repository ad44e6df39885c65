package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/frontmatter"
)

type Parser struct {
	md goldmark.Markdown
}

type options struct {
	headingShift int
}

type Option func(*options)

// WithHeadingShift demotes every heading by n levels, capped at h6.
// Pages that render their own h1 use 1 so the body never adds another.
func WithHeadingShift(n int) Option {
	return func(o *options) {
		o.headingShift = n
	}
}

func NewParser(opts ...Option) *Parser {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	parserOpts := []parser.Option{
		parser.WithAutoHeadingID(),
	}
	if o.headingShift > 0 {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(&headingShifter{by: o.headingShift}, 100),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseWithFrontmatter renders the body and decodes the YAML frontmatter.
// A document without frontmatter yields an empty, non-nil map.
// Malformed frontmatter is an error.
func (p *Parser) ParseWithFrontmatter(source []byte) (content []byte, meta map[string]any, err error) {
	context := parser.NewContext()
	var buf bytes.Buffer

	err = p.md.Convert(source, &buf, parser.WithContext(context))
	if err != nil {
		return nil, nil, err
	}

	meta, err = decode(frontmatter.Get(context))
	if err != nil {
		return nil, nil, err
	}

	return buf.Bytes(), meta, nil
}

func (p *Parser) ExtractFrontmatter(source []byte) (map[string]any, error) {
	context := parser.NewContext()
	p.md.Parser().Parse(text.NewReader(source), parser.WithContext(context))
	return decode(frontmatter.Get(context))
}

func decode(data *frontmatter.Data) (map[string]any, error) {
	meta := make(map[string]any)
	if data == nil {
		return meta, nil
	}
	err := data.Decode(&meta)
	if err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if meta == nil {
		meta = make(map[string]any)
	}
	return meta, nil
}

type headingShifter struct {
	by int
}

func (s *headingShifter) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			h.Level = min(h.Level+s.by, 6)
		}
		return ast.WalkContinue, nil
	})
}
