// Package docforge synthesizes binary document containers from semi-structured
// educational content: Word packages from MCQ records, PowerPoint decks from
// flashcards and quiz questions, rendered certificates, and per-page images
// extracted from uploaded PDFs.
//
// # Quick Start
//
// Parse tagged MCQ markup and build a Word package:
//
//	questions, err := docforge.ParseTagged(mcqText)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	builder := docforge.NewDocxBuilder(nil)
//	pkg, err := builder.BuildDocx(questions, "physics_set_1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(pkg.Filename, pkg.Data, 0644)
//
// Every builder returns a DocumentPackage: an in-memory buffer plus the MIME
// content type and a download-safe filename. Ownership of the buffer transfers
// entirely to the caller.
//
// # Pipeline
//
// The synthesis paths share a common shape:
//
//  1. Content normalization (HTML/LaTeX-ish fields to font-safe plain text,
//     extracting embedded image references)
//  2. Record parsing (tagged [Q]/[O]/[A]/[S]/[M] markup or exported HTML)
//  3. Container assembly (WordprocessingML or PresentationML ZIP packages,
//     XLSX workbooks) or rendering (headless Chrome for certificates, MuPDF
//     for page extraction)
//
// # Failure model
//
// Builders favor degraded-but-complete output: a single image, page, or
// question that fails to process is replaced by a placeholder or skipped, and
// the batch continues. Only whole-operation failures (unreadable document,
// browser launch failure, archive serialization failure) surface as errors.
// An errored call returns no partial buffer.
//
// # Certificate rendering
//
// Certificate PNG/PDF rendering requires Chrome/Chromium; the go-rod library
// downloads a managed Chromium on first run. For containers and CI set
// ROD_BROWSER_BIN to a pre-installed binary. Use RendererPool for parallel
// batch rendering:
//
//	pool := docforge.NewRendererPool(4)
//	defer pool.Close()
//
//	html, err := docforge.CertificateHTML(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := pool.Acquire()
//	defer pool.Release(r)
//	png, err := r.RenderPNG(ctx, html)
package docforge
