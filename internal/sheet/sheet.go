// Package sheet exports a question bank as a spreadsheet workbook for bulk
// review and editing outside the app.
package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Option is one answer choice.
type Option struct {
	Text    string
	Correct bool
}

// Question is one exported row.
type Question struct {
	Text       string
	Type       string
	Solution   string
	Difficulty string
	Chapter    string
	Subject    string
	Marks      int
	Options    []Option
}

const sheetName = "Questions"

var headers = []string{
	"#", "Question", "Type", "Options", "Correct Answer",
	"Solution", "Difficulty", "Chapter", "Subject", "Marks",
}

// BuildWorkbook produces the XLSX bytes: a single sheet, one header row, one
// row per question with options flattened into a lettered list.
func BuildWorkbook(questions []Question) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", endHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, q := range questions {
		row := i + 2
		values := []interface{}{
			i + 1,
			q.Text,
			q.Type,
			flattenOptions(q.Options),
			correctAnswer(q.Options),
			q.Solution,
			q.Difficulty,
			q.Chapter,
			q.Subject,
			q.Marks,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	// Readable default widths for the text-heavy columns.
	if err := f.SetColWidth(sheetName, "B", "B", 60); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "D", "F", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// flattenOptions joins the choices as "A) x | B) y".
func flattenOptions(options []Option) string {
	parts := make([]string, len(options))
	for i, opt := range options {
		parts[i] = fmt.Sprintf("%c) %s", 'A'+i, opt.Text)
	}
	return strings.Join(parts, " | ")
}

// correctAnswer returns the lettered correct choice, or "" when none is
// marked.
func correctAnswer(options []Option) string {
	for i, opt := range options {
		if opt.Correct {
			return fmt.Sprintf("%c) %s", 'A'+i, opt.Text)
		}
	}
	return ""
}
