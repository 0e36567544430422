package sheet

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	t.Parallel()

	questions := []Question{
		{
			Text:       "What is 2+2?",
			Type:       "multiple_choice",
			Solution:   "Basic arithmetic",
			Difficulty: "easy",
			Chapter:    "Numbers",
			Subject:    "Math",
			Marks:      2,
			Options:    []Option{{Text: "3"}, {Text: "4", Correct: true}},
		},
		{
			Text:     "Open question",
			Type:     "multiple_choice",
			Solution: "Solution not provided.",
			Marks:    1,
		},
	}

	data, err := BuildWorkbook(questions)
	if err != nil {
		t.Fatalf("BuildWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output does not open as a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1+len(questions) {
		t.Fatalf("row count = %d, want %d", len(rows), 1+len(questions))
	}
	if rows[0][1] != "Question" || rows[0][4] != "Correct Answer" {
		t.Errorf("header row = %v", rows[0])
	}

	first := rows[1]
	if first[1] != "What is 2+2?" {
		t.Errorf("question cell = %q", first[1])
	}
	if first[3] != "A) 3 | B) 4" {
		t.Errorf("options cell = %q", first[3])
	}
	if first[4] != "B) 4" {
		t.Errorf("correct answer cell = %q", first[4])
	}
	if first[9] != "2" {
		t.Errorf("marks cell = %q", first[9])
	}

	second := rows[2]
	if len(second) > 4 && second[4] != "" {
		t.Errorf("unanswered question has correct answer %q", second[4])
	}
}

func TestBuildWorkbook_Empty(t *testing.T) {
	t.Parallel()

	data, err := BuildWorkbook(nil)
	if err != nil {
		t.Fatalf("BuildWorkbook() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output does not open: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("row count = %d, want header only", len(rows))
	}
}
