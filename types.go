package docforge

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MIME content types for the produced document packages.
const (
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	ContentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePNG  = "image/png"
	ContentTypePDF  = "application/pdf"
)

// Difficulty classifies a quiz question.
type Difficulty string

// Difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PageRole is the positional classification of an extracted page.
type PageRole string

// Page roles. Assignment is purely positional: page 0 is the title page,
// odd pages are card fronts, even pages (from 2) are card backs.
const (
	RoleTitle PageRole = "title"
	RoleFront PageRole = "front"
	RoleBack  PageRole = "back"
)

// RoleForIndex returns the role for a page at its original 0-based index.
// Roles are computed from the original index, never from output position, so
// skipped pages do not shift the roles of surviving pages.
func RoleForIndex(i int) PageRole {
	switch {
	case i == 0:
		return RoleTitle
	case i%2 == 1:
		return RoleFront
	default:
		return RoleBack
	}
}

// ImageRef is an image reference extracted from rich content.
type ImageRef struct {
	Source string // src attribute, verbatim
	Alt    string // alt attribute, may be empty
}

// NormalizedRecord is a cleaned content field: font-safe plain text plus the
// image references extracted from it, in document order.
type NormalizedRecord struct {
	Text   string
	Images []ImageRef
}

// ImagePayload carries a decoded image collected during HTML import, keyed by
// the placeholder token ([Image: <ID>]) left in the normalized text.
type ImagePayload struct {
	ID   string
	Data []byte
	Ext  string // "png", "jpeg", "gif"
	Alt  string
}

// Option is a single answer choice of a Question.
type Option struct {
	ID      int
	Text    NormalizedRecord
	Correct bool
}

// Question is a normalized quiz item, ready for a builder.
// Well-formed input has zero or one correct option; builders tolerate zero.
type Question struct {
	ID         int
	Text       NormalizedRecord
	Solution   NormalizedRecord
	Difficulty Difficulty
	Chapter    string
	Subject    string
	Standard   string
	Type       string // e.g. "multiple_choice"
	Marks      int
	Options    []Option
	Images     []ImagePayload // payloads for [Image: ...] placeholders
	Source     string         // raw source block (HTML import keeps it for review)
}

// CorrectOption returns the first option marked correct, or nil.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].Correct {
			return &q.Options[i]
		}
	}
	return nil
}

// Flashcard is a front/back study card. Back text may contain Markdown.
type Flashcard struct {
	Front string
	Back  string
}

// FlashcardPage is one rasterized page of a source document.
type FlashcardPage struct {
	Index int    // original 0-based page index (gaps mark skipped pages)
	Name  string // stable image name, e.g. "b1c2....png"
	PNG   []byte
	Text  string // best-effort extracted page text, may be empty
	Role  PageRole
}

// DocumentPackage is the output of a builder: an in-memory binary buffer plus
// the caller-facing content type and suggested filename. Immutable once
// produced; ownership transfers entirely to the caller.
type DocumentPackage struct {
	Data        []byte
	ContentType string
	Filename    string
}

// DeckMeta carries presentation-level metadata for a quiz deck.
type DeckMeta struct {
	Title     string
	Chapter   string
	Subject   string
	Watermark string // watermark text; empty uses DefaultWatermark
}

// DefaultWatermark is stamped on every content slide unless overridden.
const DefaultWatermark = "EasyLearning"

// MedalType classifies a certificate medal.
type MedalType string

// Medal types.
const (
	MedalGold          MedalType = "gold"
	MedalSilver        MedalType = "silver"
	MedalBronze        MedalType = "bronze"
	MedalParticipation MedalType = "participation"
)

// MedalForRank derives the medal from a rank: 1 gold, 2 silver, 3 bronze,
// everything else participation.
func MedalForRank(rank int) MedalType {
	switch rank {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return MedalParticipation
	}
}

// Student identifies the certificate recipient.
type Student struct {
	Name           string
	Rank           int
	TestsAttempted int
	Medal          MedalType // derived from Rank when empty
}

// EventDetails identifies the certified event.
type EventDetails struct {
	Name string
	Date time.Time
}

// CertificateData is the immutable value object behind one certificate render.
type CertificateData struct {
	Student Student
	Event   EventDetails
}

// Validate checks required certificate fields.
func (d CertificateData) Validate() error {
	if strings.TrimSpace(d.Student.Name) == "" {
		return ErrMissingStudent
	}
	if strings.TrimSpace(d.Event.Name) == "" {
		return ErrMissingEvent
	}
	return nil
}

// withDerivedMedal fills Student.Medal from the rank when unset.
func (d CertificateData) withDerivedMedal() CertificateData {
	if d.Student.Medal == "" {
		d.Student.Medal = MedalForRank(d.Student.Rank)
	}
	return d
}

// BatchEntry is one row of a certificate batch ("rank, name, tests").
type BatchEntry struct {
	Rank           int
	StudentName    string
	TestsAttempted int
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_\-]`)

// SafeFilename replaces every character outside [A-Za-z0-9_-] with an
// underscore. An empty or all-unsafe input falls back to a timestamped name.
func SafeFilename(name string) string {
	safe := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(name), "_")
	if strings.Trim(safe, "_") == "" {
		safe = "document_" + time.Now().UTC().Format("2006-01-02T15-04-05")
	}
	return safe
}

// timestampedName builds "<prefix>_<UTC timestamp>" for default filenames.
func timestampedName(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, time.Now().UTC().Format("2006-01-02T15-04-05"))
}
