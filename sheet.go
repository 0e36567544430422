package docforge

import (
	"fmt"

	"github.com/easylearning/docforge/internal/sheet"
)

// BuildXlsx exports questions as a spreadsheet workbook for bulk review.
// filename is the suggested download name without extension.
func BuildXlsx(questions []Question, filename string) (DocumentPackage, error) {
	if len(questions) == 0 {
		return DocumentPackage{}, ErrNoQuestions
	}

	rows := make([]sheet.Question, len(questions))
	for i, q := range questions {
		options := make([]sheet.Option, len(q.Options))
		for j, opt := range q.Options {
			options[j] = sheet.Option{Text: opt.Text.Text, Correct: opt.Correct}
		}
		rows[i] = sheet.Question{
			Text:       q.Text.Text,
			Type:       q.Type,
			Solution:   q.Solution.Text,
			Difficulty: string(q.Difficulty),
			Chapter:    q.Chapter,
			Subject:    q.Subject,
			Marks:      q.Marks,
			Options:    options,
		}
	}

	data, err := sheet.BuildWorkbook(rows)
	if err != nil {
		return DocumentPackage{}, fmt.Errorf("%w: %v", ErrWorkbookWrite, err)
	}

	if filename == "" {
		filename = timestampedName("questions")
	}
	return DocumentPackage{
		Data:        data,
		ContentType: ContentTypeXlsx,
		Filename:    SafeFilename(filename) + ".xlsx",
	}, nil
}
