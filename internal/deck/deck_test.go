package deck

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func openDeck(t *testing.T, data []byte, err error) map[string]string {
	t.Helper()
	if err != nil {
		t.Fatalf("build error = %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a valid ZIP: %v", err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part %s: %v", f.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("read part %s: %v", f.Name, err)
		}
		rc.Close()
		parts[f.Name] = buf.String()
	}
	return parts
}

func slideCount(parts map[string]string) int {
	n := 0
	for name := range parts {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			n++
		}
	}
	return n
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func sampleQuestions(n int) []Question {
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{
			Text:       fmt.Sprintf("question %d?", i+1),
			Solution:   fmt.Sprintf("solution %d", i+1),
			Difficulty: "easy",
			Options:    []Option{{Text: "no"}, {Text: "yes", Correct: true}},
		}
	}
	return questions
}

func TestBuildQuiz_SlideCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 3, 7} {
		data, err := NewBuilder(nil).BuildQuiz(sampleQuestions(n), Meta{Title: "T"})
		parts := openDeck(t, data, err)
		if got := slideCount(parts); got != 1+2*n {
			t.Errorf("n=%d: slide count = %d, want %d", n, got, 1+2*n)
		}
	}
}

func TestBuildQuiz_MandatoryParts(t *testing.T) {
	t.Parallel()

	data, err := NewBuilder(nil).BuildQuiz(sampleQuestions(1), Meta{})
	parts := openDeck(t, data, err)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}

	pres := parts["ppt/presentation.xml"]
	if !strings.Contains(pres, `<p:sldId id="256" r:id="rId2"/>`) {
		t.Errorf("presentation.xml missing slide list entry: %s", pres)
	}
}

func TestBuildQuiz_QuestionSlideContent(t *testing.T) {
	t.Parallel()

	questions := sampleQuestions(2)
	questions[0].Difficulty = "hard"
	data, err := NewBuilder(nil).BuildQuiz(questions, Meta{Title: "Quiz"})
	parts := openDeck(t, data, err)

	qSlide := parts["ppt/slides/slide2.xml"]
	if !strings.Contains(qSlide, "Question 1 of 2") {
		t.Error("question slide missing running header")
	}
	if !strings.Contains(qSlide, "A) no") || !strings.Contains(qSlide, "B) yes") {
		t.Error("question slide missing lettered options")
	}
	if !strings.Contains(qSlide, `val="E53E3E"`) {
		t.Error("hard difficulty badge color missing")
	}
	if !strings.Contains(qSlide, DefaultWatermark) {
		t.Error("watermark missing from question slide")
	}
	if !strings.Contains(qSlide, `rot="-3000000"`) {
		t.Error("watermark not rotated")
	}
}

func TestBuildQuiz_AnswerSlideContent(t *testing.T) {
	t.Parallel()

	data, err := NewBuilder(nil).BuildQuiz(sampleQuestions(1), Meta{})
	parts := openDeck(t, data, err)
	aSlide := parts["ppt/slides/slide3.xml"]
	if !strings.Contains(aSlide, "Answer 1 of 1") {
		t.Error("answer slide missing running header")
	}
	if !strings.Contains(aSlide, "Correct Answer: B) yes") {
		t.Errorf("answer slide missing resolved answer: %s", aSlide)
	}
	if !strings.Contains(aSlide, "solution 1") {
		t.Error("answer slide missing solution text")
	}
}

func TestBuildQuiz_NoAnswerMarked(t *testing.T) {
	t.Parallel()

	questions := []Question{{
		Text:    "orphan?",
		Options: []Option{{Text: "a"}, {Text: "b"}},
	}}
	data, err := NewBuilder(nil).BuildQuiz(questions, Meta{})
	parts := openDeck(t, data, err)
	if !strings.Contains(parts["ppt/slides/slide3.xml"], "No answer marked") {
		t.Error("answer slide does not surface the missing-answer state")
	}
}

func TestBuildQuiz_ErrorSlideIsolation(t *testing.T) {
	t.Parallel()

	questions := sampleQuestions(3)
	questions[1].Text = "   " // fails to build a pair
	data, err := NewBuilder(nil).BuildQuiz(questions, Meta{})
	parts := openDeck(t, data, err)

	// Two surviving pairs plus one placeholder plus the title slide.
	if got := slideCount(parts); got != 1+2*2+1 {
		t.Fatalf("slide count = %d, want %d", got, 1+2*2+1)
	}

	var found bool
	for name, data := range parts {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.Contains(data, "Error Processing Question 2") {
			found = true
		}
	}
	if !found {
		t.Error("missing error placeholder slide for question 2")
	}
}

func TestBuildQuiz_EmbedsImages(t *testing.T) {
	t.Parallel()

	questions := []Question{{
		Text:   "see figure",
		Images: []Image{{ID: "fig", Data: tinyPNG(t)}},
	}}
	data, err := NewBuilder(nil).BuildQuiz(questions, Meta{})
	parts := openDeck(t, data, err)

	if _, ok := parts["ppt/media/image1.png"]; !ok {
		t.Fatal("missing media part ppt/media/image1.png")
	}
	qSlide := parts["ppt/slides/slide2.xml"]
	if !strings.Contains(qSlide, `r:embed="rId2"`) {
		t.Error("slide missing picture reference")
	}
	rels := parts["ppt/slides/_rels/slide2.xml.rels"]
	if !strings.Contains(rels, "../media/image1.png") {
		t.Errorf("slide rels missing image entry: %s", rels)
	}
	if !strings.Contains(parts["[Content_Types].xml"], `Extension="png"`) {
		t.Error("content types missing png default")
	}
}

func TestBuildQuiz_ImageFailureDegradesToPlaceholder(t *testing.T) {
	t.Parallel()

	questions := []Question{{
		Text:   "see figure",
		Images: []Image{{ID: "fig", Data: []byte("junk"), Alt: "a diagram"}},
	}}
	data, err := NewBuilder(nil).BuildQuiz(questions, Meta{})
	parts := openDeck(t, data, err)

	qSlide := parts["ppt/slides/slide2.xml"]
	if !strings.Contains(qSlide, "[Image 1: a diagram]") {
		t.Error("missing italic placeholder for failed image")
	}
	if strings.Contains(qSlide, "<p:pic>") {
		t.Error("picture emitted for undecodable image")
	}
}

func TestBuildQuiz_ImagesCappedAtTwo(t *testing.T) {
	t.Parallel()

	img := tinyPNG(t)
	questions := []Question{{
		Text: "busy",
		Images: []Image{
			{ID: "one", Data: img}, {ID: "two", Data: img}, {ID: "three", Data: img},
		},
	}}
	data, err := NewBuilder(nil).BuildQuiz(questions, Meta{})
	parts := openDeck(t, data, err)
	if got := strings.Count(parts["ppt/slides/slide2.xml"], "<p:pic>"); got != 2 {
		t.Errorf("picture count = %d, want 2", got)
	}
}

func TestBuildFlashcards_SlideCountAndContent(t *testing.T) {
	t.Parallel()

	cards := []Card{
		{Front: "What is Go?", Back: "A **compiled** language"},
		{Front: "What is a goroutine?", Back: "- lightweight\n- scheduled by the runtime"},
	}
	data, err := NewBuilder(nil).BuildFlashcards(cards, Meta{Title: "Go Basics"})
	parts := openDeck(t, data, err)

	if got := slideCount(parts); got != 1+2*len(cards) {
		t.Fatalf("slide count = %d, want %d", got, 1+2*len(cards))
	}
	title := parts["ppt/slides/slide1.xml"]
	if !strings.Contains(title, "Go Basics") || !strings.Contains(title, "2 Cards") {
		t.Errorf("title slide content wrong: %s", title)
	}
	front := parts["ppt/slides/slide2.xml"]
	if !strings.Contains(front, "What is Go?") || !strings.Contains(front, ">Solution<") {
		t.Error("front slide missing card text or solution button")
	}
	back := parts["ppt/slides/slide3.xml"]
	if !strings.Contains(back, "A compiled language") && !strings.Contains(back, "compiled") {
		t.Error("back slide missing rendered markdown text")
	}
	if !strings.Contains(back, `b="1"`) {
		t.Error("emphasis-marked back text not bold")
	}
}

func TestFromMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		check  func(t *testing.T, frags []Fragment)
	}{
		{
			name:   "plain paragraph",
			source: "just text",
			check: func(t *testing.T, frags []Fragment) {
				if len(frags) != 1 || frags[0].Text != "just text\n" || frags[0].Bold {
					t.Errorf("frags = %+v", frags)
				}
			},
		},
		{
			name:   "strong emphasis bolds paragraph",
			source: "this is **important** stuff",
			check: func(t *testing.T, frags []Fragment) {
				if len(frags) == 0 || !frags[0].Bold {
					t.Errorf("frags = %+v", frags)
				}
			},
		},
		{
			name:   "list items bulleted",
			source: "- first\n- second",
			check: func(t *testing.T, frags []Fragment) {
				if len(frags) != 2 || frags[0].Text != "• first\n" || frags[1].Text != "• second\n" {
					t.Errorf("frags = %+v", frags)
				}
			},
		},
		{
			name:   "blockquote quoted italic",
			source: "> wisdom",
			check: func(t *testing.T, frags []Fragment) {
				if len(frags) != 1 || frags[0].Text != "\"wisdom\"\n" || !frags[0].Italic {
					t.Errorf("frags = %+v", frags)
				}
				if frags[0].Color != colorQuote {
					t.Errorf("Color = %q, want %q", frags[0].Color, colorQuote)
				}
			},
		},
		{
			name:   "inline code monospace",
			source: "use `fmt.Println` here",
			check: func(t *testing.T, frags []Fragment) {
				var mono *Fragment
				for i := range frags {
					if frags[i].Mono {
						mono = &frags[i]
					}
				}
				if mono == nil || mono.Text != "fmt.Println" {
					t.Errorf("frags = %+v", frags)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, FromMarkdown(tt.source, nil))
		})
	}
}

func TestFromMarkdown_KeywordHighlight(t *testing.T) {
	t.Parallel()

	frags := FromMarkdown("photosynthesis converts light", []string{"PHOTOSYNTHESIS"})
	if len(frags) == 0 {
		t.Fatal("no fragments")
	}
	if !frags[0].Bold || frags[0].Color != colorHighlight {
		t.Errorf("keyword hit not highlighted: %+v", frags[0])
	}
}

func TestPreviewHTML(t *testing.T) {
	t.Parallel()

	cards := []Card{{Front: "a < b?", Back: "yes, **always**"}}
	html, err := PreviewHTML(context.Background(), cards, "Compare & Contrast")
	if err != nil {
		t.Fatalf("PreviewHTML() error = %v", err)
	}
	if !strings.Contains(html, "a &lt; b?") {
		t.Error("front text not escaped")
	}
	if !strings.Contains(html, "<strong>always</strong>") {
		t.Error("back markdown not rendered")
	}
	if !strings.Contains(html, "Compare &amp; Contrast") {
		t.Error("title not escaped")
	}
}

func TestPreviewHTML_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := PreviewHTML(ctx, []Card{{Front: "f", Back: "b"}}, "t"); err == nil {
		t.Error("expected error for canceled context")
	}
}
