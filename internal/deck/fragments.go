package deck

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Text colors used across slides.
const (
	colorText      = "2D3748"
	colorSecondary = "718096"
	colorAccent    = "4A90E2"
	colorHighlight = "E53E3E"
	colorQuote     = "4A5568"
	colorCode      = "1A202C"
)

var markdown = goldmark.New()

// FromMarkdown maps a lightweight markdown document to styled fragments:
// paragraphs become plain runs (bold when emphasis-marked or keyword-hit),
// list items become bulleted lines, blockquotes italic quoted lines, and
// inline code monospace runs. Keyword matching is case-insensitive substring
// matching; a hit forces bold plus the highlight color regardless of other
// styling.
func FromMarkdown(source string, keywords []string) []Fragment {
	src := []byte(source)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var frags []Fragment
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		frags = append(frags, blockFragments(node, src, keywords)...)
	}
	return frags
}

func blockFragments(node ast.Node, src []byte, keywords []string) []Fragment {
	switch n := node.(type) {
	case *ast.Paragraph:
		return inlineFragments(n, src, keywords)

	case *ast.List:
		var frags []Fragment
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			t := nodeText(item, src)
			hit := keywordHit(t, keywords)
			frags = append(frags, Fragment{
				Text:  "• " + t + "\n",
				Bold:  hit,
				Color: pickColor(hit, colorText),
				Size:  18,
			})
		}
		return frags

	case *ast.Blockquote:
		t := nodeText(n, src)
		return []Fragment{{
			Text:   `"` + t + `"` + "\n",
			Italic: true,
			Color:  colorQuote,
			Size:   18,
		}}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var b strings.Builder
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
		}
		return []Fragment{{Text: b.String(), Mono: true, Bold: true, Color: colorCode, Size: 18}}

	case *ast.Heading:
		t := nodeText(n, src)
		return []Fragment{{Text: t + "\n", Bold: true, Color: colorText, Size: 20}}

	default:
		if t := nodeText(node, src); t != "" {
			return []Fragment{{Text: t + "\n", Color: colorText, Size: 18}}
		}
		return nil
	}
}

// inlineFragments walks a paragraph's inline children, splitting inline code
// into monospace runs and carrying emphasis onto the surrounding text.
func inlineFragments(p ast.Node, src []byte, keywords []string) []Fragment {
	full := nodeText(p, src)
	hit := keywordHit(full, keywords)
	bold := hit || containsKind(p, ast.KindEmphasis, 2)
	italic := containsKind(p, ast.KindEmphasis, 1)

	var frags []Fragment
	var plain strings.Builder

	flush := func(newline bool) {
		t := plain.String()
		if newline {
			t += "\n"
		}
		if t == "" {
			return
		}
		frags = append(frags, Fragment{
			Text:   t,
			Bold:   bold,
			Italic: italic,
			Color:  pickColor(hit, colorText),
			Size:   18,
		})
		plain.Reset()
	}

	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		if code, ok := c.(*ast.CodeSpan); ok {
			flush(false)
			frags = append(frags, Fragment{
				Text:  nodeText(code, src),
				Mono:  true,
				Bold:  true,
				Color: colorCode,
				Size:  18,
			})
			continue
		}
		// Raw text here: per-child trimming would glue adjacent segments
		// together across emphasis boundaries.
		plain.WriteString(rawNodeText(c, src))
	}
	flush(true)
	return frags
}

// nodeText concatenates every text segment under n, trimmed.
func nodeText(n ast.Node, src []byte) string {
	return strings.TrimSpace(rawNodeText(n, src))
}

func rawNodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// containsKind reports whether a descendant of n has the given kind (and, for
// emphasis, at least the given level).
func containsKind(n ast.Node, kind ast.NodeKind, level int) bool {
	found := false
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found {
			return ast.WalkContinue, nil
		}
		if child.Kind() == kind {
			if em, ok := child.(*ast.Emphasis); !ok || em.Level >= level {
				found = true
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return found
}

func keywordHit(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func pickColor(highlighted bool, base string) string {
	if highlighted {
		return colorHighlight
	}
	return base
}
