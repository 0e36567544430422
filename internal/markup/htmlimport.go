package markup

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/easylearning/docforge/internal/normalize"
)

// HTML import patterns.
var (
	dataURI = regexp.MustCompile(`^data:image/(png|jpe?g|gif);base64,(.+)$`)

	// Lines that look like enumerated choices: "A) text", "b. text",
	// "(1) text", "2. text".
	enumeratedChoice = regexp.MustCompile(`^\(?([A-Ea-e]|[1-9])[).]\s+(.*)$`)

	// Boundary between option list and explanation.
	solutionStart = regexp.MustCompile(`(?i)^\(?\s*(solution|answer|ans|explanation)\b[:.\-)]?\s*(.*)$`)

	// Correct-answer letter inside a solution line: "Answer: B", "ans - c".
	answerLetter = regexp.MustCompile(`(?i)\b(?:answer|ans)\s*(?:is)?\s*[:\-]?\s*\(?([A-Ea-e])\)?(?:\s|$|[.,)])`)

	imageToken = regexp.MustCompile(`\[Image: (image\d+)\]`)
)

// ParseHTML heuristically splits rich-text-exported HTML into question
// records. Images become inline [Image: imageN] tokens with payloads
// collected separately; math containers become [Math: ...] tokens; blocks
// are split on blank lines and the option list located by scanning for
// enumerated-choice lines.
//
// This is a best-effort importer, not a guaranteed-correct parser: atypical
// formatting is ambiguous, so every record keeps its raw source block for
// manual review.
func ParseHTML(html string) []Question {
	text, payloads := tokenize(html)

	blocks := blockSeparator.Split(strings.TrimSpace(text), -1)
	questions := make([]Question, 0, len(blocks))
	for _, block := range blocks {
		q, ok := parseHTMLBlock(block)
		if !ok {
			continue
		}
		q.Images = payloadsFor(&q, payloads)
		questions = append(questions, q)
	}
	return questions
}

// tokenize replaces <img> elements and math containers with inline tokens,
// strips the remaining markup, and returns the plain text plus the collected
// image payloads keyed by token id.
func tokenize(html string) (string, map[string]ImagePayload) {
	payloads := make(map[string]ImagePayload)
	n := 0

	s := normalize.ImageTags.ReplaceAllStringFunc(html, func(tag string) string {
		n++
		id := fmt.Sprintf("image%d", n)
		src, alt := normalize.ImageAttrs(tag)
		payloads[id] = decodePayload(id, src, alt)
		return fmt.Sprintf(" [Image: %s] ", id)
	})

	mathToken := func(container string) string {
		return " [Math: " + normalize.MathContent(container) + "] "
	}
	s = normalize.MathContainers.ReplaceAllStringFunc(s, mathToken)
	s = normalize.MathBlocks.ReplaceAllStringFunc(s, mathToken)

	return normalize.StripMarkup(s), payloads
}

// decodePayload decodes a data-URI source into bytes. Non-data sources keep
// their reference with nil Data; downstream builders treat those as
// non-embeddable and fall back to text.
func decodePayload(id, src, alt string) ImagePayload {
	p := ImagePayload{ID: id, Alt: alt, Source: src}
	if m := dataURI.FindStringSubmatch(src); m != nil {
		if data, err := base64.StdEncoding.DecodeString(m[2]); err == nil {
			p.Data = data
			p.Ext = strings.Replace(m[1], "jpg", "jpeg", 1)
			p.Source = ""
		}
	}
	return p
}

// parseHTMLBlock splits one plain-text block into question text, options,
// and solution. Everything before the first enumerated-choice line is the
// question; everything from a later solution/answer line onward is the
// solution. ok is false when no question text remains.
func parseHTMLBlock(block string) (Question, bool) {
	lines := strings.Split(block, "\n")

	optionStart := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if enumeratedChoice.MatchString(trimmed) ||
			strings.Contains(strings.ToLower(trimmed), "option") {
			optionStart = i
			break
		}
	}

	q := Question{Type: TypeMultipleChoice, Marks: DefaultMarks, Source: block}

	if optionStart < 0 {
		// No recognizable option list: the whole block is question text.
		q.Text = normalize.Normalize(block, normalize.MaxQuestionLen).Text
		if q.Text == "" || q.Text == normalize.MissingContent {
			return Question{}, false
		}
		q.Solution = "Solution not provided."
		return q, true
	}

	q.Text = normalize.Normalize(strings.Join(lines[:optionStart], "\n"), normalize.MaxQuestionLen).Text
	if q.Text == "" || q.Text == normalize.MissingContent {
		return Question{}, false
	}

	var rawOptions []string
	var solutionLines []string
	correctLetter := -1

	for _, line := range lines[optionStart:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(solutionLines) > 0 {
			solutionLines = append(solutionLines, trimmed)
			continue
		}
		if m := solutionStart.FindStringSubmatch(trimmed); m != nil {
			if lm := answerLetter.FindStringSubmatch(trimmed); lm != nil {
				correctLetter = letterIndex(lm[1])
			}
			if rest := strings.TrimSpace(m[2]); rest != "" {
				solutionLines = append(solutionLines, rest)
			} else {
				solutionLines = append(solutionLines, trimmed)
			}
			continue
		}
		if m := enumeratedChoice.FindStringSubmatch(trimmed); m != nil {
			rawOptions = append(rawOptions, m[2])
			continue
		}
		// Continuation of the previous option, or stray text; attach to the
		// last option so nothing is silently lost.
		if len(rawOptions) > 0 {
			rawOptions[len(rawOptions)-1] += " " + trimmed
		}
	}

	q.Options = make([]Option, len(rawOptions))
	for i, text := range rawOptions {
		q.Options[i] = Option{
			Text:    normalize.Field(text).Text,
			Correct: i == correctLetter,
		}
	}

	if len(solutionLines) > 0 {
		q.Solution = normalize.Field(strings.Join(solutionLines, "\n")).Text
	} else {
		q.Solution = "Solution not provided."
	}
	return q, true
}

// payloadsFor returns the payloads referenced by the question's text fields,
// in token order of first appearance.
func payloadsFor(q *Question, payloads map[string]ImagePayload) []ImagePayload {
	var fields []string
	fields = append(fields, q.Text, q.Solution)
	for _, opt := range q.Options {
		fields = append(fields, opt.Text)
	}

	seen := make(map[string]bool)
	var out []ImagePayload
	for _, field := range fields {
		for _, m := range imageToken.FindAllStringSubmatch(field, -1) {
			id := m[1]
			if seen[id] {
				continue
			}
			seen[id] = true
			if p, ok := payloads[id]; ok {
				out = append(out, p)
			}
		}
	}
	return out
}
