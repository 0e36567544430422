package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	docforge "github.com/easylearning/docforge"
)

// ErrJobParse reports an unreadable or malformed YAML job file.
var ErrJobParse = errors.New("failed to parse job file")

// maxJobSize limits YAML input to prevent memory exhaustion (1MB).
const maxJobSize = 1 << 20

// deckJob carries deck metadata loaded from a YAML job file. CLI flags
// override job values.
type deckJob struct {
	Title     string `yaml:"title"`
	Chapter   string `yaml:"chapter"`
	Subject   string `yaml:"subject"`
	Watermark string `yaml:"watermark"`
}

// cardsJob is a flashcard set loaded from a YAML file.
type cardsJob struct {
	Title    string      `yaml:"title"`
	Keywords []string    `yaml:"keywords"`
	Cards    []cardEntry `yaml:"cards"`
}

type cardEntry struct {
	Front string `yaml:"front"`
	Back  string `yaml:"back"`
}

// Flashcards converts the job entries to library values.
func (j *cardsJob) Flashcards() []docforge.Flashcard {
	cards := make([]docforge.Flashcard, len(j.Cards))
	for i, c := range j.Cards {
		cards[i] = docforge.Flashcard{Front: c.Front, Back: c.Back}
	}
	return cards
}

// loadJob reads and strictly unmarshals a YAML job file into dst.
func loadJob(path string, dst any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJobParse, err)
	}
	if len(data) > maxJobSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrJobParse, path, maxJobSize)
	}
	if err := yaml.UnmarshalWithOptions(data, dst, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrJobParse, err)
	}
	return nil
}
