package main

import (
	"os"
	"time"

	flag "github.com/spf13/pflag"

	docforge "github.com/easylearning/docforge"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	output  string
	quiet   bool
	verbose bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")
}

// questionFlags holds flags for the docx and xlsx commands.
type questionFlags struct {
	common commonFlags
	html   bool
	name   string
}

// parseQuestionFlags parses docx/xlsx flags and returns positional args.
func parseQuestionFlags(cmd string, args []string) (*questionFlags, []string, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	f := &questionFlags{}
	fs.BoolVar(&f.html, "html", false, "parse input as rich-text HTML export")
	fs.StringVar(&f.name, "name", "", "document name (without extension)")
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printQuestionUsage(os.Stderr, cmd) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// deckFlags holds flags for the deck command.
type deckFlags struct {
	common    commonFlags
	job       string
	html      bool
	title     string
	chapter   string
	subject   string
	watermark string
}

// parseDeckFlags parses deck flags and returns positional args.
func parseDeckFlags(args []string) (*deckFlags, []string, error) {
	fs := flag.NewFlagSet("deck", flag.ContinueOnError)
	f := &deckFlags{}
	fs.StringVarP(&f.job, "job", "c", "", "YAML job file with deck metadata")
	fs.BoolVar(&f.html, "html", false, "parse input as rich-text HTML export")
	fs.StringVar(&f.title, "title", "", "deck title")
	fs.StringVar(&f.chapter, "chapter", "", "chapter name")
	fs.StringVar(&f.subject, "subject", "", "subject name")
	fs.StringVar(&f.watermark, "watermark", "", "watermark text")
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printDeckUsage(os.Stderr) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// cardsFlags holds flags for the cards command.
type cardsFlags struct {
	common  commonFlags
	preview bool
}

// parseCardsFlags parses cards flags and returns positional args.
func parseCardsFlags(args []string) (*cardsFlags, []string, error) {
	fs := flag.NewFlagSet("cards", flag.ContinueOnError)
	f := &cardsFlags{}
	fs.BoolVar(&f.preview, "preview", false, "write an HTML preview instead of a deck")
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printCardsUsage(os.Stderr) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// certFlags holds flags for the cert command.
type certFlags struct {
	common   commonFlags
	student  string
	rank     int
	tests    int
	event    string
	date     string
	batch    string
	pdf      bool
	fallback bool
	fontPath string
	workers  int
	timeout  time.Duration
}

// parseCertFlags parses cert flags and returns positional args.
func parseCertFlags(args []string) (*certFlags, []string, error) {
	fs := flag.NewFlagSet("cert", flag.ContinueOnError)
	f := &certFlags{}
	fs.StringVar(&f.student, "student", "", "student name")
	fs.IntVar(&f.rank, "rank", 0, "student rank (1=gold, 2=silver, 3=bronze)")
	fs.IntVar(&f.tests, "tests", 0, "tests attempted")
	fs.StringVar(&f.event, "event", "", "event name")
	fs.StringVar(&f.date, "date", "", "event date (YYYY-MM-DD, default today)")
	fs.StringVar(&f.batch, "batch", "", "roster file: one \"rank, name, tests\" row per line")
	fs.BoolVar(&f.pdf, "pdf", false, "render PDF instead of PNG")
	fs.BoolVar(&f.fallback, "fallback", false, "render without a browser (plainer output)")
	fs.StringVar(&f.fontPath, "font", "", "TTF font for fallback rendering")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renderers for batch (0 = auto)")
	fs.DurationVarP(&f.timeout, "timeout", "t", docforge.DefaultRenderTimeout, "per-render timeout")
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printCertUsage(os.Stderr) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// extractFlags holds flags for the extract command.
type extractFlags struct {
	common commonFlags
	scale  float64
	thumb  int
}

// parseExtractFlags parses extract flags and returns positional args.
func parseExtractFlags(args []string) (*extractFlags, []string, error) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	f := &extractFlags{}
	fs.Float64Var(&f.scale, "scale", 2.0, "raster scale factor (1.0 = 72 DPI)")
	fs.IntVar(&f.thumb, "thumb", 0, "also write a thumbnail of the first page, longest edge N px")
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printExtractUsage(os.Stderr) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
