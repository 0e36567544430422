package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docforge <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  docx       Build a word-processor package from question markup")
	fmt.Fprintln(w, "  xlsx       Export question markup as a spreadsheet workbook")
	fmt.Fprintln(w, "  deck       Build a quiz slide deck from question markup")
	fmt.Fprintln(w, "  cards      Build a flashcard deck (or HTML preview) from a YAML set")
	fmt.Fprintln(w, "  cert       Render achievement certificates")
	fmt.Fprintln(w, "  extract    Rasterize document pages to PNG images")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docforge help <command>' for details on a specific command.")
}

// printQuestionUsage prints usage for the docx and xlsx commands.
func printQuestionUsage(w io.Writer, cmd string) {
	fmt.Fprintf(w, "Usage: docforge %s <input> [flags]\n", cmd)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Tagged markup file, or a rich-text HTML export")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --html            Force HTML import (auto for .html/.htm)")
	fmt.Fprintln(w, "      --name <s>        Document name (without extension)")
	printCommonUsage(w)
}

// printDeckUsage prints usage for the deck command.
func printDeckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docforge deck <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a quiz slide deck: a title slide plus a question/answer")
	fmt.Fprintln(w, "slide pair per question.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --job <path>      YAML job file with deck metadata")
	fmt.Fprintln(w, "      --html            Force HTML import (auto for .html/.htm)")
	fmt.Fprintln(w, "      --title <s>       Deck title")
	fmt.Fprintln(w, "      --chapter <s>     Chapter name")
	fmt.Fprintln(w, "      --subject <s>     Subject name")
	fmt.Fprintln(w, "      --watermark <s>   Watermark text")
	printCommonUsage(w)
}

// printCardsUsage prints usage for the cards command.
func printCardsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docforge cards <set.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a flashcard deck from a YAML set:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  title: Biology Basics")
	fmt.Fprintln(w, "  keywords: [mitochondria]")
	fmt.Fprintln(w, "  cards:")
	fmt.Fprintln(w, "    - front: Powerhouse of the cell?")
	fmt.Fprintln(w, "      back: The **mitochondria**.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --preview         Write an HTML preview instead of a deck")
	printCommonUsage(w)
}

// printCertUsage prints usage for the cert command.
func printCertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docforge cert [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one certificate from flags, or a whole roster with --batch.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --student <s>     Student name")
	fmt.Fprintln(w, "      --rank <n>        Rank (1=gold, 2=silver, 3=bronze)")
	fmt.Fprintln(w, "      --tests <n>       Tests attempted")
	fmt.Fprintln(w, "      --event <s>       Event name")
	fmt.Fprintln(w, "      --date <s>        Event date (YYYY-MM-DD, default today)")
	fmt.Fprintln(w, "      --batch <path>    Roster file: \"rank, name, tests\" per line")
	fmt.Fprintln(w, "      --pdf             Render PDF instead of PNG")
	fmt.Fprintln(w, "      --fallback        Render without a browser (plainer output)")
	fmt.Fprintln(w, "      --font <path>     TTF font for fallback rendering")
	fmt.Fprintln(w, "  -w, --workers <n>     Parallel renderers for batch (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>     Per-render timeout (e.g., 30s, 2m)")
	printCommonUsage(w)
}

// printExtractUsage prints usage for the extract command.
func printExtractUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docforge extract <input.pdf> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rasterize every page to a PNG image. Page 0 is the title page,")
	fmt.Fprintln(w, "odd pages are card fronts, even pages are card backs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --scale <f>       Raster scale factor (default 2.0)")
	fmt.Fprintln(w, "      --thumb <n>       Also write a first-page thumbnail, longest edge N px")
	printCommonUsage(w)
}

// printCommonUsage prints the shared flag block.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "  -o, --output <path>   Output file or directory")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors")
	fmt.Fprintln(w, "  -v, --verbose         Show debug logging")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "docx", "xlsx":
		printQuestionUsage(env.Stdout, args[0])
	case "deck":
		printDeckUsage(env.Stdout)
	case "cards":
		printCardsUsage(env.Stdout)
	case "cert":
		printCertUsage(env.Stdout)
	case "extract":
		printExtractUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docforge version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docforge help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
