package docforge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/easylearning/docforge/internal/deck"
)

// DeckBuilder assembles slideshow packages from questions or flashcards.
type DeckBuilder struct {
	builder *deck.Builder
}

// NewDeckBuilder returns a DeckBuilder logging per-unit failures to zl (nil
// for silent operation).
func NewDeckBuilder(zl *zap.Logger) *DeckBuilder {
	return &DeckBuilder{builder: deck.NewBuilder(zl)}
}

// BuildQuizDeck produces a deck with a title slide plus a question/answer
// slide pair per question. A question whose pair fails to build degrades to
// a visible error slide; the deck as a whole still completes.
func (b *DeckBuilder) BuildQuizDeck(questions []Question, meta DeckMeta) (DocumentPackage, error) {
	if len(questions) == 0 {
		return DocumentPackage{}, ErrNoQuestions
	}

	data, err := b.builder.BuildQuiz(toDeck(questions), deckMeta(meta, nil))
	if err != nil {
		return DocumentPackage{}, fmt.Errorf("%w: %v", ErrArchiveWrite, err)
	}

	name := meta.Title
	if name == "" {
		name = timestampedName("quiz")
	}
	return DocumentPackage{
		Data:        data,
		ContentType: ContentTypePptx,
		Filename:    SafeFilename(name) + ".pptx",
	}, nil
}

// BuildFlashcardDeck produces a deck with a title slide plus a front/back
// slide pair per card. Card backs may contain Markdown; fragments matching a
// keyword (case-insensitive substring) are bolded and accent-colored.
func (b *DeckBuilder) BuildFlashcardDeck(cards []Flashcard, meta DeckMeta, keywords []string) (DocumentPackage, error) {
	if len(cards) == 0 {
		return DocumentPackage{}, ErrNoCards
	}

	deckCards := make([]deck.Card, len(cards))
	for i, c := range cards {
		deckCards[i] = deck.Card{Front: c.Front, Back: c.Back}
	}

	data, err := b.builder.BuildFlashcards(deckCards, deckMeta(meta, keywords))
	if err != nil {
		return DocumentPackage{}, fmt.Errorf("%w: %v", ErrArchiveWrite, err)
	}

	name := meta.Title
	if name == "" {
		name = "flashcards"
	}
	return DocumentPackage{
		Data:        data,
		ContentType: ContentTypePptx,
		Filename:    SafeFilename(name) + ".pptx",
	}, nil
}

// DeckPreviewHTML renders a flashcard set as a standalone HTML document for
// browser preview or for the raster renderer.
func DeckPreviewHTML(ctx context.Context, cards []Flashcard, title string) (string, error) {
	if len(cards) == 0 {
		return "", ErrNoCards
	}
	deckCards := make([]deck.Card, len(cards))
	for i, c := range cards {
		deckCards[i] = deck.Card{Front: c.Front, Back: c.Back}
	}
	return deck.PreviewHTML(ctx, deckCards, title)
}

func deckMeta(meta DeckMeta, keywords []string) deck.Meta {
	return deck.Meta{
		Title:     meta.Title,
		Chapter:   meta.Chapter,
		Subject:   meta.Subject,
		Watermark: meta.Watermark,
		Keywords:  keywords,
	}
}

func toDeck(in []Question) []deck.Question {
	out := make([]deck.Question, len(in))
	for i, q := range in {
		options := make([]deck.Option, len(q.Options))
		for j, opt := range q.Options {
			options[j] = deck.Option{Text: opt.Text.Text, Correct: opt.Correct}
		}
		images := make([]deck.Image, len(q.Images))
		for j, img := range q.Images {
			images[j] = deck.Image{ID: img.ID, Data: img.Data, Alt: img.Alt}
		}
		out[i] = deck.Question{
			Text:       q.Text.Text,
			Solution:   q.Solution.Text,
			Difficulty: string(q.Difficulty),
			Options:    options,
			Images:     images,
		}
	}
	return out
}
