// Package markup parses question records from two external text protocols:
// the line-oriented tagged format ([Q]/[O]/[A]/[S]/[M]) and HTML exported
// from rich-text editors. Both paths run every field through the content
// normalizer; both silently drop blocks that yield no question text.
package markup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/easylearning/docforge/internal/normalize"
)

// DefaultMarks is used when [M] is absent or unparsable.
const DefaultMarks = 1

// TypeMultipleChoice is the record type assigned to parsed questions.
const TypeMultipleChoice = "multiple_choice"

// Option is one answer choice with its derived correctness.
type Option struct {
	Text    string
	Correct bool
}

// ImagePayload is an image collected during HTML import, keyed by the
// placeholder token left in the text. Data is nil when the source could not
// be decoded locally (e.g. a remote URL).
type ImagePayload struct {
	ID     string
	Data   []byte
	Ext    string
	Alt    string
	Source string
}

// Question is a parsed record before conversion to the public type.
type Question struct {
	Text     string
	Solution string
	Type     string
	Marks    int
	Options  []Option
	Images   []ImagePayload
	Source   string // raw source block, kept for manual review of HTML imports
}

var blockSeparator = regexp.MustCompile(`\n\s*\n+`)

// ParseTagged parses blank-line-delimited tagged blocks into questions.
// Tag prefixes are matched case-insensitively. Blocks producing no question
// text are dropped, not reported.
func ParseTagged(text string) []Question {
	blocks := blockSeparator.Split(strings.TrimSpace(text), -1)
	questions := make([]Question, 0, len(blocks))

	for _, block := range blocks {
		if q, ok := parseTaggedBlock(block); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// parseTaggedBlock parses one block. ok is false when the block has no [Q]
// line (or the question text normalizes to nothing recognizable).
func parseTaggedBlock(block string) (Question, bool) {
	q := Question{Type: TypeMultipleChoice, Marks: DefaultMarks}
	var answer string
	var rawOptions []string

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "[Q]"):
			q.Text = normalize.Field(strings.TrimSpace(line[3:])).Text
		case strings.HasPrefix(upper, "[O]"):
			rawOptions = append(rawOptions, strings.TrimSpace(line[3:]))
		case strings.HasPrefix(upper, "[A]"):
			answer = strings.TrimSpace(line[3:])
		case strings.HasPrefix(upper, "[S]"):
			q.Solution = normalize.Field(strings.TrimSpace(line[3:])).Text
		case strings.HasPrefix(upper, "[M]"):
			if n, err := strconv.Atoi(strings.TrimSpace(line[3:])); err == nil {
				q.Marks = n
			}
		}
	}

	if q.Text == "" || q.Text == normalize.MissingContent {
		return Question{}, false
	}

	q.Options = resolveOptions(rawOptions, answer)

	if q.Solution == "" {
		if answer != "" {
			q.Solution = "Correct answer: " + answer
		} else {
			q.Solution = "Solution not provided."
		}
	}
	return q, true
}

// resolveOptions derives per-option correctness from the [A] value.
//
// Matching is literal text equality for backward compatibility with the
// original format; the first match wins, which makes duplicate option text
// ambiguous (a known limitation, not special-cased). When the answer is a
// single letter that matches no option text, it is resolved as a letter
// index instead ([A] B selects the second option).
func resolveOptions(raw []string, answer string) []Option {
	options := make([]Option, len(raw))
	matched := false
	for i, text := range raw {
		correct := !matched && answer != "" && text == answer
		if correct {
			matched = true
		}
		options[i] = Option{Text: normalize.Field(text).Text, Correct: correct}
	}

	if !matched && len(answer) == 1 {
		if idx := letterIndex(answer); idx >= 0 && idx < len(options) {
			options[idx].Correct = true
		}
	}
	return options
}

// letterIndex maps "A"/"a" to 0, "B"/"b" to 1, and so on; -1 otherwise.
func letterIndex(s string) int {
	if len(s) != 1 {
		return -1
	}
	c := s[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	}
	return -1
}

// FormatTagged serializes questions back to the tagged protocol, one blank
// line between records. The [A] value is the correct option's text.
func FormatTagged(questions []Question) string {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[Q] %s\n", q.Text)
		for _, opt := range q.Options {
			fmt.Fprintf(&b, "[O] %s\n", opt.Text)
		}
		for _, opt := range q.Options {
			if opt.Correct {
				fmt.Fprintf(&b, "[A] %s\n", opt.Text)
				break
			}
		}
		if q.Solution != "" {
			fmt.Fprintf(&b, "[S] %s\n", q.Solution)
		}
		fmt.Fprintf(&b, "[M] %d", q.Marks)
	}
	return b.String()
}
