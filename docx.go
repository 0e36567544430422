package docforge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/easylearning/docforge/internal/docx"
)

// DocxBuilder assembles word-processor packages from questions.
type DocxBuilder struct {
	builder *docx.Builder
}

// NewDocxBuilder returns a DocxBuilder logging per-image failures to zl (nil
// for silent operation).
func NewDocxBuilder(zl *zap.Logger) *DocxBuilder {
	return &DocxBuilder{builder: docx.NewBuilder(zl)}
}

// BuildDocx produces the package for the given questions. filename is the
// suggested download name without extension; unsafe characters are replaced
// and an empty name falls back to a timestamped default. Zero questions is a
// validation error; no archive is constructed.
func (b *DocxBuilder) BuildDocx(questions []Question, filename string) (DocumentPackage, error) {
	if len(questions) == 0 {
		return DocumentPackage{}, ErrNoQuestions
	}

	data, err := b.builder.Build(toDocx(questions))
	if err != nil {
		return DocumentPackage{}, fmt.Errorf("%w: %v", ErrArchiveWrite, err)
	}

	if filename == "" {
		filename = timestampedName("MCQs")
	}
	return DocumentPackage{
		Data:        data,
		ContentType: ContentTypeDocx,
		Filename:    SafeFilename(filename) + ".docx",
	}, nil
}

func toDocx(in []Question) []docx.Question {
	out := make([]docx.Question, len(in))
	for i, q := range in {
		options := make([]docx.Option, len(q.Options))
		for j, opt := range q.Options {
			options[j] = docx.Option{Text: opt.Text.Text, Correct: opt.Correct}
		}
		images := make([]docx.Image, len(q.Images))
		for j, img := range q.Images {
			images[j] = docx.Image{ID: img.ID, Data: img.Data, Ext: img.Ext, Alt: img.Alt}
		}
		out[i] = docx.Question{
			Text:     q.Text.Text,
			Type:     q.Type,
			Solution: q.Solution.Text,
			Marks:    q.Marks,
			Options:  options,
			Images:   images,
		}
	}
	return out
}
