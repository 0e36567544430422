package markup

import (
	"encoding/base64"
	"reflect"
	"strings"
	"testing"
)

func TestParseTagged_SingleBlock(t *testing.T) {
	t.Parallel()

	got := ParseTagged("[Q] 2+2?\n[O] 3\n[O] 4\n[A] 4\n[M] 2")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	q := got[0]
	if q.Text != "2+2?" {
		t.Errorf("Text = %q, want %q", q.Text, "2+2?")
	}
	wantOptions := []Option{{Text: "3"}, {Text: "4", Correct: true}}
	if !reflect.DeepEqual(q.Options, wantOptions) {
		t.Errorf("Options = %+v, want %+v", q.Options, wantOptions)
	}
	if q.Solution != "Correct answer: 4" {
		t.Errorf("Solution = %q, want synthesized answer", q.Solution)
	}
	if q.Marks != 2 {
		t.Errorf("Marks = %d, want 2", q.Marks)
	}
	if q.Type != TypeMultipleChoice {
		t.Errorf("Type = %q, want %q", q.Type, TypeMultipleChoice)
	}
}

func TestParseTagged_MultipleBlocks(t *testing.T) {
	t.Parallel()

	text := "[Q] first?\n[O] a\n[O] b\n[A] a\n\n[Q] second?\n[O] c\n[O] d\n[A] d"
	got := ParseTagged(text)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Text != "first?" || got[1].Text != "second?" {
		t.Errorf("texts = %q, %q", got[0].Text, got[1].Text)
	}
	if !got[0].Options[0].Correct || !got[1].Options[1].Correct {
		t.Errorf("correct flags misplaced: %+v / %+v", got[0].Options, got[1].Options)
	}
}

func TestParseTagged_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		text         string
		wantSolution string
		wantMarks    int
	}{
		{
			name:         "no answer no solution",
			text:         "[Q] open question\n[O] a\n[O] b",
			wantSolution: "Solution not provided.",
			wantMarks:    DefaultMarks,
		},
		{
			name:         "answer synthesizes solution",
			text:         "[Q] q\n[O] yes\n[O] no\n[A] yes",
			wantSolution: "Correct answer: yes",
			wantMarks:    DefaultMarks,
		},
		{
			name:         "explicit solution wins",
			text:         "[Q] q\n[O] yes\n[A] yes\n[S] because reasons\n[M] 3",
			wantSolution: "because reasons",
			wantMarks:    3,
		},
		{
			name:         "unparsable marks fall back",
			text:         "[Q] q\n[M] many",
			wantSolution: "Solution not provided.",
			wantMarks:    DefaultMarks,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseTagged(tt.text)
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			if got[0].Solution != tt.wantSolution {
				t.Errorf("Solution = %q, want %q", got[0].Solution, tt.wantSolution)
			}
			if got[0].Marks != tt.wantMarks {
				t.Errorf("Marks = %d, want %d", got[0].Marks, tt.wantMarks)
			}
		})
	}
}

func TestParseTagged_CaseInsensitiveTags(t *testing.T) {
	t.Parallel()

	got := ParseTagged("[q] lower?\n[o] one\n[o] two\n[a] two")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if !got[0].Options[1].Correct {
		t.Errorf("Options = %+v, want second correct", got[0].Options)
	}
}

func TestParseTagged_LetterIndexFallback(t *testing.T) {
	t.Parallel()

	// "B" matches no option text, so it resolves as the second option.
	got := ParseTagged("[Q] pick one\n[O] red\n[O] green\n[O] blue\n[A] B")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	for i, opt := range got[0].Options {
		if opt.Correct != (i == 1) {
			t.Errorf("Options[%d].Correct = %v", i, opt.Correct)
		}
	}
}

func TestParseTagged_LiteralMatchBeatsLetterIndex(t *testing.T) {
	t.Parallel()

	// An option literally named "B" takes precedence over index resolution.
	got := ParseTagged("[Q] pick one\n[O] A\n[O] B\n[O] C\n[A] B")
	if !got[0].Options[1].Correct {
		t.Errorf("Options = %+v, want literal match on second", got[0].Options)
	}
}

func TestParseTagged_DuplicateOptionFirstWins(t *testing.T) {
	t.Parallel()

	got := ParseTagged("[Q] q\n[O] same\n[O] same\n[A] same")
	if !got[0].Options[0].Correct || got[0].Options[1].Correct {
		t.Errorf("Options = %+v, want only first correct", got[0].Options)
	}
}

func TestParseTagged_DropsBlocksWithoutQuestion(t *testing.T) {
	t.Parallel()

	text := "[O] orphan option\n[A] orphan\n\n[Q] kept?\n[O] a\n[A] a\n\njust stray prose"
	got := ParseTagged(text)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (orphan blocks dropped)", len(got))
	}
	if got[0].Text != "kept?" {
		t.Errorf("Text = %q, want %q", got[0].Text, "kept?")
	}
}

func TestParseTagged_DropsEmptyQuestionText(t *testing.T) {
	t.Parallel()

	// A bare [Q] line normalizes to the missing-content sentinel, which is no
	// question text at all; the block is dropped like any questionless block.
	text := "[Q]\n[O] a\n[O] b\n[A] a\n\n[Q] <p></p>\n[O] c\n\n[Q] kept?\n[O] x\n[A] x"
	got := ParseTagged(text)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (sentinel-only blocks dropped)", len(got))
	}
	if got[0].Text != "kept?" {
		t.Errorf("Text = %q, want %q", got[0].Text, "kept?")
	}
}

func TestParseTagged_NormalizesFields(t *testing.T) {
	t.Parallel()

	got := ParseTagged(`[Q] what is <b>\frac{1}{2}</b>?` + "\n[O] 0.5\n[A] 0.5")
	if got[0].Text != "what is (1)/(2)?" {
		t.Errorf("Text = %q, want normalized fraction", got[0].Text)
	}
}

func TestFormatTagged_RoundTrip(t *testing.T) {
	t.Parallel()

	original := ParseTagged("[Q] 2+2?\n[O] 3\n[O] 4\n[A] 4\n[S] basic arithmetic\n[M] 2\n\n[Q] capital of France?\n[O] Paris\n[O] Lyon\n[A] Paris")
	reparsed := ParseTagged(FormatTagged(original))
	if !reflect.DeepEqual(original, reparsed) {
		t.Errorf("round trip mismatch:\noriginal: %+v\nreparsed: %+v", original, reparsed)
	}
}

func TestFormatTagged_OmitsAnswerWhenNoneCorrect(t *testing.T) {
	t.Parallel()

	out := FormatTagged([]Question{{
		Text:     "open?",
		Solution: "essay",
		Marks:    1,
		Options:  []Option{{Text: "a"}, {Text: "b"}},
	}})
	if strings.Contains(out, "[A]") {
		t.Errorf("output contains [A] line: %q", out)
	}
}

func TestParseHTML_EnumeratedOptions(t *testing.T) {
	t.Parallel()

	html := `<p>What is the boiling point of water?</p>
<p>A) 90°C</p>
<p>B) 100°C</p>
<p>C) 110°C</p>
<p>Answer: B because water boils at 100°C at sea level.</p>`

	got := ParseHTML(html)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	q := got[0]
	if q.Text != "What is the boiling point of water?" {
		t.Errorf("Text = %q", q.Text)
	}
	if len(q.Options) != 3 {
		t.Fatalf("len(Options) = %d, want 3", len(q.Options))
	}
	for i, opt := range q.Options {
		if opt.Correct != (i == 1) {
			t.Errorf("Options[%d] = %+v", i, opt)
		}
	}
	if q.Options[1].Text != "100°C" {
		t.Errorf("Options[1].Text = %q", q.Options[1].Text)
	}
	if !strings.Contains(q.Solution, "water boils") {
		t.Errorf("Solution = %q", q.Solution)
	}
	if q.Source == "" {
		t.Error("Source not retained")
	}
}

func TestParseHTML_NumericOptionsAndSolutionBlock(t *testing.T) {
	t.Parallel()

	html := `Solve x+1=3.<br>1) x=1<br>2) x=2<br>Solution: subtract one from both sides.`
	got := ParseHTML(html)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Text != "Solve x+1=3." {
		t.Errorf("Text = %q", got[0].Text)
	}
	if len(got[0].Options) != 2 || got[0].Options[1].Text != "x=2" {
		t.Errorf("Options = %+v", got[0].Options)
	}
	if got[0].Solution != "subtract one from both sides." {
		t.Errorf("Solution = %q", got[0].Solution)
	}
}

func TestParseHTML_InlineImagePayload(t *testing.T) {
	t.Parallel()

	png := base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G'})
	html := `<p>Identify the shape: <img src="data:image/png;base64,` + png + `" alt="a triangle"></p>`

	got := ParseHTML(html)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	q := got[0]
	if !strings.Contains(q.Text, "[Image: image1]") {
		t.Errorf("Text = %q, want inline token", q.Text)
	}
	if len(q.Images) != 1 {
		t.Fatalf("len(Images) = %d, want 1", len(q.Images))
	}
	img := q.Images[0]
	if img.ID != "image1" || img.Ext != "png" || img.Alt != "a triangle" {
		t.Errorf("payload = %+v", img)
	}
	if string(img.Data) != "\x89PNG" {
		t.Errorf("Data = %v", img.Data)
	}
}

func TestParseHTML_RemoteImageKeptAsReference(t *testing.T) {
	t.Parallel()

	got := ParseHTML(`<p>See figure <img src="https://cdn.example.com/fig.png"></p>`)
	if len(got) != 1 || len(got[0].Images) != 1 {
		t.Fatalf("got = %+v", got)
	}
	img := got[0].Images[0]
	if img.Data != nil {
		t.Errorf("Data = %v, want nil for remote source", img.Data)
	}
	if img.Source != "https://cdn.example.com/fig.png" {
		t.Errorf("Source = %q", img.Source)
	}
}

func TestParseHTML_MathToken(t *testing.T) {
	t.Parallel()

	html := `<p>Evaluate <mjx-container><mjx-c class="mjx-c78"></mjx-c><mjx-c class="mjx-c3D"></mjx-c><mjx-c class="mjx-c32"></mjx-c></mjx-container> for y.</p>`
	got := ParseHTML(html)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if !strings.Contains(got[0].Text, "[Math: x=2]") {
		t.Errorf("Text = %q, want math token", got[0].Text)
	}
}

func TestParseHTML_DropsEmptyBlocks(t *testing.T) {
	t.Parallel()

	got := ParseHTML(`<p>real question?</p><p></p><div>   </div>`)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestParseHTML_QuestionWithoutOptions(t *testing.T) {
	t.Parallel()

	got := ParseHTML(`<p>Describe photosynthesis in your own words.</p>`)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if len(got[0].Options) != 0 {
		t.Errorf("Options = %+v, want none", got[0].Options)
	}
	if got[0].Solution != "Solution not provided." {
		t.Errorf("Solution = %q", got[0].Solution)
	}
}
