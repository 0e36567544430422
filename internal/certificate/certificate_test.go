package certificate

import (
	"strings"
	"testing"
	"time"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	html, err := HTML(Data{
		StudentName:    "Asha Rao",
		Rank:           1,
		TestsAttempted: 12,
		Medal:          "gold",
		EventName:      "Winter Olympiad",
		Date:           time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{
		"Asha Rao",
		"WINTER OLYMPIAD",
		"🥇",
		"RANK 1",
		"12 Tests Attempted",
		"March 09, 2025",
		"width: 1600px",
		"height: 1131px",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("certificate missing %q", want)
		}
	}
}

func TestHTML_EscapesStudentName(t *testing.T) {
	t.Parallel()

	html, err := HTML(Data{StudentName: `<script>alert("x")</script>`, EventName: "e"})
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Error("student name not escaped")
	}
}

func TestMedalEmoji(t *testing.T) {
	t.Parallel()

	tests := []struct {
		medal string
		want  string
	}{
		{"gold", "🥇"},
		{"silver", "🥈"},
		{"bronze", "🥉"},
		{"participation", "⭐"},
		{"", "⭐"},
	}
	for _, tt := range tests {
		if got := medalEmoji(tt.medal); got != tt.want {
			t.Errorf("medalEmoji(%q) = %q, want %q", tt.medal, got, tt.want)
		}
	}
}

func TestParseBatch(t *testing.T) {
	t.Parallel()

	entries, err := ParseBatch("1, Asha Rao, 12\n\n2, Vikram Iyer, 9\n3,Lena,4\n")
	if err != nil {
		t.Fatalf("ParseBatch() error = %v", err)
	}
	want := []Entry{
		{Rank: 1, StudentName: "Asha Rao", TestsAttempted: 12},
		{Rank: 2, StudentName: "Vikram Iyer", TestsAttempted: 9},
		{Rank: 3, StudentName: "Lena", TestsAttempted: 4},
	}
	if len(entries) != len(want) {
		t.Fatalf("len = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestParseBatch_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"missing field", "1, Asha"},
		{"bad rank", "first, Asha, 12"},
		{"bad tests", "1, Asha, many"},
		{"empty name", "1, , 12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseBatch(tt.text); err == nil {
				t.Errorf("ParseBatch(%q) succeeded, want error", tt.text)
			}
		})
	}
}
