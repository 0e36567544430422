// Package deck assembles slideshow packages (PresentationML ZIP containers)
// for question decks and flashcard decks. Every content slide carries a
// rotated low-opacity watermark and a running position header; quiz slides
// add a color-coded difficulty badge. A single question failing to build
// degrades to a visible error slide instead of aborting the deck.
package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/zap"

	"github.com/easylearning/docforge/internal/logging"
)

// DefaultWatermark is stamped on every slide unless metadata overrides it.
const DefaultWatermark = "EasyLearning"

// Quiz slides use a 4:3 canvas; flashcards a tall phone-screen canvas.
const (
	quizWidthIn  = 10.0
	quizHeightIn = 7.5

	cardWidthIn  = 2.92
	cardHeightIn = 6.25
)

// maxImagesPerSlide caps how many images are placed on one content region.
const maxImagesPerSlide = 2

// Card is one front/back flashcard.
type Card struct {
	Front string
	Back  string
}

// Option is one answer choice with its correctness.
type Option struct {
	Text    string
	Correct bool
}

// Image is an embeddable payload attached to a question.
type Image struct {
	ID   string
	Data []byte
	Alt  string
}

// Question is one quiz record rendered as a question/answer slide pair.
type Question struct {
	Text       string
	Solution   string
	Difficulty string
	Options    []Option
	Images     []Image
}

// Meta carries deck-level presentation fields.
type Meta struct {
	Title     string
	Chapter   string
	Subject   string
	Watermark string
	Keywords  []string
}

// Builder assembles decks. Safe for reuse; each Build call is independent.
type Builder struct {
	log *logging.Logger
}

// NewBuilder returns a Builder logging per-unit failures to zl (nil for
// silent operation).
func NewBuilder(zl *zap.Logger) *Builder {
	return &Builder{log: logging.Wrap(zl)}
}

// mediaPart is one file under ppt/media/.
type mediaPart struct {
	filename string
	ext      string
	data     []byte
}

// deckState collects slides and media while a deck is assembled.
type deckState struct {
	log    *logging.Logger
	slides []*slide
	media  []mediaPart
}

// addImage registers an image payload as a media part and returns the
// slide-local relationship binding. ok is false when the payload is missing
// or does not decode as a supported raster format.
func (ds *deckState) addImage(s *slide, img Image) (picture, bool) {
	if len(img.Data) == 0 {
		ds.log.Warn("skipping image without payload", "id", img.ID)
		return picture{}, false
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil || cfg.Width <= 0 {
		ds.log.Warn("skipping undecodable image", "id", img.ID, "error", err)
		return picture{}, false
	}

	filename := fmt.Sprintf("image%d.%s", len(ds.media)+1, format)
	ds.media = append(ds.media, mediaPart{filename: filename, ext: format, data: img.Data})

	relID := fmt.Sprintf("rId%d", len(s.images)+2) // rId1 is the layout
	s.images = append(s.images, mediaRef{relID: relID, filename: filename})
	return picture{relID: relID, name: img.ID}, true
}

// BuildQuiz produces a deck with one title slide followed by a question and
// an answer slide per question. A question whose slide pair fails to build
// contributes a single error-placeholder slide instead.
func (b *Builder) BuildQuiz(questions []Question, meta Meta) ([]byte, error) {
	ds := &deckState{log: b.log}
	total := len(questions)

	ds.slides = append(ds.slides, quizTitleSlide(meta, total))
	for i, q := range questions {
		pair, err := ds.questionSlides(i+1, total, q, meta)
		if err != nil {
			b.log.Warn("question slide pair failed", "question", i+1, "error", err)
			ds.slides = append(ds.slides, errorSlide(i+1, meta))
			continue
		}
		ds.slides = append(ds.slides, pair...)
	}

	return writePackage(ds, emu(quizWidthIn), emu(quizHeightIn))
}

// BuildFlashcards produces a deck with one title slide followed by a
// front/back slide pair per card. The back side is markdown mapped to styled
// fragments with keyword highlighting.
func (b *Builder) BuildFlashcards(cards []Card, meta Meta) ([]byte, error) {
	ds := &deckState{log: b.log}

	ds.slides = append(ds.slides, cardTitleSlide(meta, len(cards)))
	for _, card := range cards {
		ds.slides = append(ds.slides, cardFrontSlide(card, meta), cardBackSlide(card, meta))
	}

	return writePackage(ds, emu(cardWidthIn), emu(cardHeightIn))
}

func watermarkText(meta Meta) string {
	if meta.Watermark != "" {
		return meta.Watermark
	}
	return DefaultWatermark
}

// addWatermark stamps the rotated near-background-color text element centered
// on the slide.
func addWatermark(s *slide, meta Meta, w, h float64) {
	s.addBox(textBox{
		x: w/2 - 0.96, y: h/2 - 0.25, w: 1.92, h: 0.5,
		frags: []Fragment{{
			Text: watermarkText(meta), Bold: true, Color: "F1F5F9", Size: 22,
		}},
		align:  "ctr",
		anchor: "ctr",
		rotate: -50,
	})
}

func difficultyColor(difficulty string) string {
	switch strings.ToLower(difficulty) {
	case "easy":
		return "48BB78"
	case "medium":
		return "ED8936"
	case "hard":
		return colorHighlight
	}
	return colorSecondary
}

func quizTitleSlide(meta Meta, total int) *slide {
	s := &slide{bg: "F8F9FA"}
	s.addBox(textBox{x: 0.3, y: 0.3, w: 9.4, h: 6.9, fill: "FFFFFF"})
	addWatermark(s, meta, quizWidthIn, quizHeightIn)

	title := meta.Title
	if title == "" {
		title = "Question Deck"
	}
	s.addBox(textBox{
		x: 0.8, y: 2.2, w: 8.4, h: 1.5,
		frags: []Fragment{{Text: title, Bold: true, Color: colorText, Size: 36}},
		align: "ctr", anchor: "ctr",
	})

	var sub []string
	if meta.Subject != "" {
		sub = append(sub, meta.Subject)
	}
	if meta.Chapter != "" {
		sub = append(sub, meta.Chapter)
	}
	if len(sub) > 0 {
		s.addBox(textBox{
			x: 0.8, y: 3.8, w: 8.4, h: 0.6,
			frags: []Fragment{{Text: strings.Join(sub, " - "), Color: colorSecondary, Size: 20}},
			align: "ctr",
		})
	}
	s.addBox(textBox{
		x: 0.8, y: 4.5, w: 8.4, h: 0.6,
		frags: []Fragment{{Text: fmt.Sprintf("%d Questions", total), Color: colorSecondary, Size: 18}},
		align: "ctr",
	})
	return s
}

// questionSlides builds the question/answer pair for one record.
func (ds *deckState) questionSlides(n, total int, q Question, meta Meta) ([]*slide, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, fmt.Errorf("question %d has no text", n)
	}

	qs := ds.questionSlide(n, total, q, meta)
	as := answerSlide(n, total, q, meta)
	return []*slide{qs, as}, nil
}

func contentHeader(s *slide, label string, n, total int, difficulty string) {
	s.addBox(textBox{
		x: 0.4, y: 0.25, w: 3.5, h: 0.4,
		frags: []Fragment{{
			Text:  fmt.Sprintf("%s %d of %d", label, n, total),
			Color: colorSecondary, Size: 14,
		}},
	})
	s.addBox(textBox{
		x: 8.2, y: 0.25, w: 1.4, h: 0.4,
		fill: difficultyColor(difficulty),
		frags: []Fragment{{
			Text: strings.ToUpper(difficulty), Bold: true, Color: "FFFFFF", Size: 12,
		}},
		align: "ctr", anchor: "ctr",
	})
}

func (ds *deckState) questionSlide(n, total int, q Question, meta Meta) *slide {
	s := &slide{bg: "F8F9FA"}
	s.addBox(textBox{x: 0.3, y: 0.8, w: 9.4, h: 6.4, fill: "FFFFFF"})
	addWatermark(s, meta, quizWidthIn, quizHeightIn)
	contentHeader(s, "Question", n, total, q.Difficulty)

	s.addBox(textBox{
		x: 0.6, y: 1.0, w: 8.8, h: 1.6,
		frags: []Fragment{{Text: q.Text, Bold: true, Color: colorText, Size: 20}},
	})

	var optFrags []Fragment
	for i, opt := range q.Options {
		optFrags = append(optFrags, Fragment{
			Text:  fmt.Sprintf("%c) %s\n", 'A'+i, opt.Text),
			Color: colorText,
			Size:  18,
		})
	}
	if len(optFrags) > 0 {
		s.addBox(textBox{x: 0.6, y: 2.7, w: 8.8, h: 1.8, frags: optFrags})
	}

	placeImages(ds, s, q.Images)
	return s
}

// placeImages puts up to two images at a fixed offset stepped by a fixed
// width increment. An image that cannot be embedded degrades to an italic
// placeholder naming its index and alt text; it never fails the slide.
func placeImages(ds *deckState, s *slide, images []Image) {
	shown := 0
	for i, img := range images {
		if shown >= maxImagesPerSlide {
			break
		}
		x := 0.6 + float64(shown)*4.5
		pic, ok := ds.addImage(s, img)
		if !ok {
			alt := img.Alt
			if alt == "" {
				alt = img.ID
			}
			s.addBox(textBox{
				x: x, y: 4.6, w: 4.2, h: 0.5,
				frags: []Fragment{{
					Text: fmt.Sprintf("[Image %d: %s]", i+1, alt), Italic: true,
					Color: colorSecondary, Size: 14,
				}},
			})
			shown++
			continue
		}
		pic.x, pic.y, pic.w, pic.h = x, 4.6, 4.2, 2.4
		s.pics = append(s.pics, pic)
		shown++
	}
}

func answerSlide(n, total int, q Question, meta Meta) *slide {
	s := &slide{bg: "F8F9FA"}
	s.addBox(textBox{x: 0.3, y: 0.8, w: 9.4, h: 6.4, fill: "FFFFFF"})
	addWatermark(s, meta, quizWidthIn, quizHeightIn)
	contentHeader(s, "Answer", n, total, q.Difficulty)

	answer := Fragment{Text: "No answer marked", Italic: true, Color: colorHighlight, Size: 20}
	for i, opt := range q.Options {
		if opt.Correct {
			answer = Fragment{
				Text: fmt.Sprintf("Correct Answer: %c) %s", 'A'+i, opt.Text),
				Bold: true, Color: colorAccent, Size: 20,
			}
			break
		}
	}
	s.addBox(textBox{x: 0.6, y: 1.2, w: 8.8, h: 0.8, frags: []Fragment{answer}})

	if q.Solution != "" {
		s.addBox(textBox{
			x: 0.6, y: 2.2, w: 8.8, h: 4.6,
			frags: []Fragment{{Text: q.Solution, Color: colorText, Size: 18}},
		})
	}
	return s
}

// errorSlide is the visible placeholder substituted for a question whose
// slide pair failed to build.
func errorSlide(n int, meta Meta) *slide {
	s := &slide{bg: "F8F9FA"}
	s.addBox(textBox{x: 0.3, y: 0.8, w: 9.4, h: 6.4, fill: "FFFFFF"})
	addWatermark(s, meta, quizWidthIn, quizHeightIn)
	s.addBox(textBox{
		x: 0.6, y: 3.0, w: 8.8, h: 1.0,
		frags: []Fragment{{
			Text: fmt.Sprintf("Error Processing Question %d", n),
			Bold: true, Color: colorHighlight, Size: 24,
		}},
		align: "ctr", anchor: "ctr",
	})
	return s
}

func cardTitleSlide(meta Meta, total int) *slide {
	s := &slide{bg: "F8F9FA"}
	s.addBox(textBox{x: 0.1, y: 0.1, w: 2.72, h: 6.05, fill: "FFFFFF"})
	addWatermark(s, meta, cardWidthIn, cardHeightIn)

	title := meta.Title
	if title == "" {
		title = "Flashcard Set"
	}
	s.addBox(textBox{
		x: 0.2, y: 1.5, w: 2.52, h: 1.5,
		frags: []Fragment{{Text: title, Bold: true, Color: colorText, Size: 28}},
		align: "ctr",
	})
	s.addBox(textBox{
		x: 0.2, y: 3.2, w: 2.52, h: 0.8,
		frags: []Fragment{{Text: fmt.Sprintf("%d Cards", total), Color: colorSecondary, Size: 18}},
		align: "ctr",
	})
	return s
}

func cardFrontSlide(card Card, meta Meta) *slide {
	s := &slide{bg: "F8F9FA"}
	s.addBox(textBox{x: 0.1, y: 0.1, w: 2.72, h: 6.05, fill: "FFFFFF"})
	addWatermark(s, meta, cardWidthIn, cardHeightIn)

	s.addBox(textBox{
		x: 0.2, y: 1.5, w: 2.52, h: 3,
		frags:  []Fragment{{Text: card.Front, Color: colorText, Size: 22}},
		align:  "ctr",
		anchor: "ctr",
	})
	s.addBox(textBox{
		x: 0.7, y: 5, w: 1.52, h: 0.6,
		fill: "FFFFFF", line: colorAccent, lineWidth: 2,
		frags:  []Fragment{{Text: "Solution", Color: colorAccent, Size: 16}},
		align:  "ctr",
		anchor: "ctr",
	})
	return s
}

func cardBackSlide(card Card, meta Meta) *slide {
	s := &slide{bg: "F8F9FA"}
	s.addBox(textBox{x: 0.1, y: 0.1, w: 2.72, h: 6.05, fill: "FFFFFF"})
	addWatermark(s, meta, cardWidthIn, cardHeightIn)

	s.addBox(textBox{
		x: 0.2, y: 1.5, w: 2.52, h: 4.6,
		frags: FromMarkdown(card.Back, meta.Keywords),
	})
	return s
}

// writePackage serializes the assembled slides and media into the ZIP
// container.
func writePackage(ds *deckState, widthEMU, heightEMU int64) ([]byte, error) {
	var exts []string
	for _, m := range ds.media {
		exts = append(exts, m.ext)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML(len(ds.slides), exts))},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"ppt/presentation.xml", []byte(presentationXML(len(ds.slides), widthEMU, heightEMU))},
		{"ppt/_rels/presentation.xml.rels", []byte(presentationRelsXML(len(ds.slides)))},
		{"ppt/slideMasters/slideMaster1.xml", []byte(slideMasterXML)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(slideMasterRelsXML)},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(slideLayoutXML)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", []byte(slideLayoutRelsXML)},
		{"ppt/theme/theme1.xml", []byte(themeXML)},
	}
	for i, s := range ds.slides {
		parts = append(parts,
			struct {
				name string
				data []byte
			}{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), []byte(s.xml())},
			struct {
				name string
				data []byte
			}{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), []byte(slideRelsXML(s.images))},
		)
	}
	for _, m := range ds.media {
		parts = append(parts, struct {
			name string
			data []byte
		}{"ppt/media/" + m.filename, m.data})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create part %s: %w", part.name, err)
		}
		if _, err := w.Write(part.data); err != nil {
			return nil, fmt.Errorf("write part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
