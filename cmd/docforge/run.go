package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	docforge "github.com/easylearning/docforge"
)

// Sentinel errors for CLI operations.
var (
	ErrNoCommand          = errors.New("no command specified")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrNoInput            = errors.New("no input file specified")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("timeout must be positive")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// run dispatches the command line to a verb handler.
func run(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ErrNoCommand
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "docx":
		return runDocx(rest, env)
	case "xlsx":
		return runXlsx(rest, env)
	case "deck":
		return runDeck(rest, env)
	case "cards":
		return runCards(rest, env)
	case "cert":
		return runCert(rest, env)
	case "extract":
		return runExtract(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "docforge %s\n", Version)
		return nil
	case "help":
		runHelp(rest, env)
		return nil
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// runDocx parses question markup and writes a word-processor package.
func runDocx(args []string, env *Environment) error {
	flags, positional, err := parseQuestionFlags("docx", args)
	if err != nil {
		return err
	}
	questions, err := loadQuestions(positional, flags.html)
	if err != nil {
		return err
	}

	builder := docforge.NewDocxBuilder(buildLogger(flags.common.verbose))
	pkg, err := builder.BuildDocx(questions, flags.name)
	if err != nil {
		return err
	}
	return writePackage(pkg, flags.common, env)
}

// runXlsx parses question markup and writes a workbook.
func runXlsx(args []string, env *Environment) error {
	flags, positional, err := parseQuestionFlags("xlsx", args)
	if err != nil {
		return err
	}
	questions, err := loadQuestions(positional, flags.html)
	if err != nil {
		return err
	}

	pkg, err := docforge.BuildXlsx(questions, flags.name)
	if err != nil {
		return err
	}
	return writePackage(pkg, flags.common, env)
}

// runDeck parses question markup and writes a quiz slide deck.
func runDeck(args []string, env *Environment) error {
	flags, positional, err := parseDeckFlags(args)
	if err != nil {
		return err
	}
	questions, err := loadQuestions(positional, flags.html)
	if err != nil {
		return err
	}

	var job deckJob
	if flags.job != "" {
		if err := loadJob(flags.job, &job); err != nil {
			return err
		}
	}
	meta := mergeDeckMeta(flags, job)

	builder := docforge.NewDeckBuilder(buildLogger(flags.common.verbose))
	pkg, err := builder.BuildQuizDeck(questions, meta)
	if err != nil {
		return err
	}
	return writePackage(pkg, flags.common, env)
}

// mergeDeckMeta merges CLI flags into job metadata. CLI values win.
func mergeDeckMeta(flags *deckFlags, job deckJob) docforge.DeckMeta {
	meta := docforge.DeckMeta{
		Title:     job.Title,
		Chapter:   job.Chapter,
		Subject:   job.Subject,
		Watermark: job.Watermark,
	}
	if flags.title != "" {
		meta.Title = flags.title
	}
	if flags.chapter != "" {
		meta.Chapter = flags.chapter
	}
	if flags.subject != "" {
		meta.Subject = flags.subject
	}
	if flags.watermark != "" {
		meta.Watermark = flags.watermark
	}
	return meta
}

// runCards loads a YAML flashcard set and writes a deck or an HTML preview.
func runCards(args []string, env *Environment) error {
	flags, positional, err := parseCardsFlags(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}

	var job cardsJob
	if err := loadJob(positional[0], &job); err != nil {
		return err
	}
	cards := job.Flashcards()

	if flags.preview {
		html, err := docforge.DeckPreviewHTML(context.Background(), cards, job.Title)
		if err != nil {
			return err
		}
		name := docforge.SafeFilename(job.Title) + ".html"
		path, err := resolveOutputPath(flags.common.output, name)
		if err != nil {
			return err
		}
		if err := writeFile(path, []byte(html)); err != nil {
			return err
		}
		report(env, flags.common.quiet, path)
		return nil
	}

	builder := docforge.NewDeckBuilder(buildLogger(flags.common.verbose))
	pkg, err := builder.BuildFlashcardDeck(cards, docforge.DeckMeta{Title: job.Title}, job.Keywords)
	if err != nil {
		return err
	}
	return writePackage(pkg, flags.common, env)
}

// runCert renders one certificate from flags, or a whole roster with --batch.
func runCert(args []string, env *Environment) error {
	flags, _, err := parseCertFlags(args)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.timeout <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeout, flags.timeout)
	}

	event, err := resolveEvent(flags, env)
	if err != nil {
		return err
	}

	if flags.batch != "" {
		return runCertBatch(flags, event, env)
	}

	data := docforge.CertificateData{
		Student: docforge.Student{
			Name:           flags.student,
			Rank:           flags.rank,
			TestsAttempted: flags.tests,
		},
		Event: event,
	}
	out, ext, err := renderCertificate(flags, data)
	if err != nil {
		return err
	}

	path, err := resolveOutputPath(flags.common.output, docforge.CertificateFilename(data)+ext)
	if err != nil {
		return err
	}
	if err := writeFile(path, out); err != nil {
		return err
	}
	report(env, flags.common.quiet, path)
	return nil
}

// resolveEvent builds the event details from flags, defaulting the date to
// today.
func resolveEvent(flags *certFlags, env *Environment) (docforge.EventDetails, error) {
	date := env.Now()
	if flags.date != "" {
		parsed, err := time.Parse("2006-01-02", flags.date)
		if err != nil {
			return docforge.EventDetails{}, fmt.Errorf("invalid date %q: %w", flags.date, err)
		}
		date = parsed
	}
	return docforge.EventDetails{Name: flags.event, Date: date}, nil
}

// renderCertificate produces one certificate image via the browser renderer
// or the fallback painter.
func renderCertificate(flags *certFlags, data docforge.CertificateData) ([]byte, string, error) {
	if flags.fallback {
		renderer, err := docforge.NewFallbackRenderer(flags.fontPath, buildLogger(flags.common.verbose))
		if err != nil {
			return nil, "", err
		}
		out, err := renderer.RenderPNG(data)
		return out, ".png", err
	}

	html, err := docforge.CertificateHTML(data)
	if err != nil {
		return nil, "", err
	}

	renderer := docforge.NewRenderer(docforge.WithRenderTimeout(flags.timeout))
	defer renderer.Close()

	ctx := context.Background()
	if flags.pdf {
		out, err := renderer.RenderPDF(ctx, html)
		return out, ".pdf", err
	}
	out, err := renderer.RenderPNG(ctx, html)
	return out, ".png", err
}

// certResult holds the outcome of a single batch render.
type certResult struct {
	Path string
	Err  error
}

// runCertBatch renders every roster row, fanning out across a renderer pool.
func runCertBatch(flags *certFlags, event docforge.EventDetails, env *Environment) error {
	roster, err := os.ReadFile(flags.batch) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	entries, err := docforge.ParseBatch(string(roster))
	if err != nil {
		return err
	}

	outDir := flags.common.output
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if flags.fallback {
		return runCertBatchFallback(flags, event, entries, outDir, env)
	}

	pool := docforge.NewRendererPool(
		docforge.ResolvePoolSize(flags.workers),
		docforge.WithRenderTimeout(flags.timeout),
	)
	defer pool.Close()

	results := make([]certResult, len(entries))
	jobs := make(chan int, len(entries))
	concurrency := pool.Size()
	if concurrency > len(entries) {
		concurrency = len(entries)
	}

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			renderer := pool.Acquire()
			defer pool.Release(renderer)

			for idx := range jobs {
				results[idx] = renderBatchEntry(renderer, flags, event, entries[idx], outDir)
			}
		}()
	}
	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return reportBatch(results, flags.common.quiet, env)
}

// renderBatchEntry renders one roster row with an acquired renderer.
func renderBatchEntry(renderer *docforge.Renderer, flags *certFlags, event docforge.EventDetails, entry docforge.BatchEntry, outDir string) certResult {
	data := docforge.CertificateData{
		Student: docforge.Student{
			Name:           entry.StudentName,
			Rank:           entry.Rank,
			TestsAttempted: entry.TestsAttempted,
		},
		Event: event,
	}

	html, err := docforge.CertificateHTML(data)
	if err != nil {
		return certResult{Err: fmt.Errorf("%s: %w", entry.StudentName, err)}
	}

	ctx := context.Background()
	var out []byte
	ext := ".png"
	if flags.pdf {
		ext = ".pdf"
		out, err = renderer.RenderPDF(ctx, html)
	} else {
		out, err = renderer.RenderPNG(ctx, html)
	}
	if err != nil {
		return certResult{Err: fmt.Errorf("%s: %w", entry.StudentName, err)}
	}

	path := filepath.Join(outDir, docforge.CertificateFilename(data)+ext)
	if err := writeFile(path, out); err != nil {
		return certResult{Err: err}
	}
	return certResult{Path: path}
}

// runCertBatchFallback renders the roster sequentially with the browser-free
// painter.
func runCertBatchFallback(flags *certFlags, event docforge.EventDetails, entries []docforge.BatchEntry, outDir string, env *Environment) error {
	renderer, err := docforge.NewFallbackRenderer(flags.fontPath, buildLogger(flags.common.verbose))
	if err != nil {
		return err
	}

	results := make([]certResult, len(entries))
	for i, entry := range entries {
		data := docforge.CertificateData{
			Student: docforge.Student{
				Name:           entry.StudentName,
				Rank:           entry.Rank,
				TestsAttempted: entry.TestsAttempted,
			},
			Event: event,
		}
		out, err := renderer.RenderPNG(data)
		if err != nil {
			results[i] = certResult{Err: fmt.Errorf("%s: %w", entry.StudentName, err)}
			continue
		}
		path := filepath.Join(outDir, docforge.CertificateFilename(data)+".png")
		if err := writeFile(path, out); err != nil {
			results[i] = certResult{Err: err}
			continue
		}
		results[i] = certResult{Path: path}
	}
	return reportBatch(results, flags.common.quiet, env)
}

// reportBatch prints per-entry outcomes and fails if any entry failed.
func reportBatch(results []certResult, quiet bool, env *Environment) error {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %v\n", r.Err)
			continue
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Path)
		}
	}
	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d certificate(s) failed", failed)
	}
	return nil
}

// runExtract rasterizes document pages to PNG files.
func runExtract(args []string, env *Environment) error {
	flags, positional, err := parseExtractFlags(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}

	data, err := os.ReadFile(positional[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	extractor := docforge.NewExtractor(buildLogger(flags.common.verbose))
	pages, err := extractor.ExtractPages(context.Background(), data, flags.scale)
	if err != nil {
		return err
	}

	outDir := flags.common.output
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	for _, p := range pages {
		path := filepath.Join(outDir, p.Name)
		if err := writeFile(path, p.PNG); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Page %d (%s) -> %s\n", p.Index, p.Role, path)
		}
	}

	if flags.thumb > 0 && len(pages) > 0 {
		thumb, err := docforge.Thumbnail(pages[0].PNG, flags.thumb)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, "thumbnail.png")
		if err := writeFile(path, thumb); err != nil {
			return err
		}
		report(env, flags.common.quiet, path)
	}
	return nil
}

// loadQuestions reads the markup input and parses it as tagged text or as a
// rich-text HTML export (forced by flag, or detected from the extension).
func loadQuestions(positional []string, forceHTML bool) ([]docforge.Question, error) {
	if len(positional) == 0 {
		return nil, ErrNoInput
	}
	path := positional[0]
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if forceHTML || ext == ".html" || ext == ".htm" {
		return docforge.ParseHTML(string(data))
	}
	return docforge.ParseTagged(string(data))
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > docforge.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, docforge.MaxPoolSize)
	}
	return nil
}

// writePackage writes a built document package to the resolved output path.
func writePackage(pkg docforge.DocumentPackage, common commonFlags, env *Environment) error {
	path, err := resolveOutputPath(common.output, pkg.Filename)
	if err != nil {
		return err
	}
	if err := writeFile(path, pkg.Data); err != nil {
		return err
	}
	report(env, common.quiet, path)
	return nil
}

// resolveOutputPath combines the --output flag with the package's suggested
// filename. An empty flag writes to the current directory; a directory flag
// keeps the suggested name inside it; anything else is the literal path.
func resolveOutputPath(output, suggested string) (string, error) {
	if output == "" {
		return suggested, nil
	}
	info, err := os.Stat(output)
	if err == nil && info.IsDir() {
		return filepath.Join(output, suggested), nil
	}
	if strings.HasSuffix(output, string(os.PathSeparator)) {
		if err := os.MkdirAll(output, dirPermissions); err != nil {
			return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return filepath.Join(output, suggested), nil
	}
	return output, nil
}

// writeFile writes output data with standard permissions.
func writeFile(path string, data []byte) error {
	// #nosec G306 -- generated documents are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// report prints a created-file line unless quiet.
func report(env *Environment, quiet bool, path string) {
	if !quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
}
