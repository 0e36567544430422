package normalize

import (
	"regexp"
	"strings"
)

// Precompiled patterns for LaTeX fragment handling.
var (
	displayMath = regexp.MustCompile(`\$\$([^$]+)\$\$`)
	inlineMath  = regexp.MustCompile(`\$([^$\n]+)\$`)

	// Non-nested fraction/root bodies; applied repeatedly so nested
	// fragments resolve inside-out.
	fracPattern    = regexp.MustCompile(`\\[dt]?frac\{([^{}]*)\}\{([^{}]*)\}`)
	sqrtPattern    = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
	sqrtBare       = regexp.MustCompile(`\\sqrt(\w)`)
	superBraced    = regexp.MustCompile(`\^\{([^{}]*)\}`)
	superBare      = regexp.MustCompile(`\^(\w)`)
	subBraced      = regexp.MustCompile(`_\{([^{}]*)\}`)
	subBare        = regexp.MustCompile(`_(\w)`)
	leftoverMacro  = regexp.MustCompile(`\\([a-zA-Z]+)`)
	leftoverBraces = regexp.MustCompile(`[{}]`)
)

// latexReplacements is the fixed, ordered substitution table for LaTeX
// commands that map directly to a Unicode character. Longer commands come
// before their prefixes (\leqslant before \leq before \le).
var latexReplacements = [][2]string{
	{`\leqslant`, "≤"},
	{`\geqslant`, "≥"},
	{`\leq`, "≤"},
	{`\geq`, "≥"},
	{`\neq`, "≠"},
	{`\approx`, "≈"},
	{`\equiv`, "≡"},
	{`\le`, "≤"},
	{`\ge`, "≥"},
	{`\ne`, "≠"},
	{`\times`, "×"},
	{`\div`, "÷"},
	{`\cdot`, "⋅"},
	{`\pm`, "±"},
	{`\mp`, "∓"},
	{`\infty`, "∞"},
	{`\degree`, "°"},
	{`\circ`, "°"},
	{`\propto`, "∝"},
	{`\partial`, "∂"},
	{`\nabla`, "∇"},
	{`\notin`, "∉"},
	{`\in`, "∈"},
	{`\subseteq`, "⊆"},
	{`\supseteq`, "⊇"},
	{`\subset`, "⊂"},
	{`\supset`, "⊃"},
	{`\cup`, "∪"},
	{`\cap`, "∩"},
	{`\emptyset`, "∅"},
	{`\forall`, "∀"},
	{`\exists`, "∃"},
	{`\therefore`, "∴"},
	{`\because`, "∵"},
	{`\rightarrow`, "→"},
	{`\leftarrow`, "←"},
	{`\Rightarrow`, "⇒"},
	{`\Leftarrow`, "⇐"},
	{`\to`, "→"},
	{`\sum`, "∑"},
	{`\prod`, "∏"},
	{`\int`, "∫"},
	{`\sqrt`, "√"}, // bare \sqrt with no argument

	// Greek letters, lowercase then uppercase. \varepsilon before \epsilon
	// ordering is irrelevant here but longer names still come first.
	{`\varepsilon`, "ε"},
	{`\vartheta`, "θ"},
	{`\varphi`, "φ"},
	{`\alpha`, "α"},
	{`\beta`, "β"},
	{`\gamma`, "γ"},
	{`\delta`, "δ"},
	{`\epsilon`, "ε"},
	{`\zeta`, "ζ"},
	{`\eta`, "η"},
	{`\theta`, "θ"},
	{`\iota`, "ι"},
	{`\kappa`, "κ"},
	{`\lambda`, "λ"},
	{`\mu`, "μ"},
	{`\nu`, "ν"},
	{`\xi`, "ξ"},
	{`\pi`, "π"},
	{`\rho`, "ρ"},
	{`\sigma`, "σ"},
	{`\tau`, "τ"},
	{`\upsilon`, "υ"},
	{`\phi`, "φ"},
	{`\chi`, "χ"},
	{`\psi`, "ψ"},
	{`\omega`, "ω"},
	{`\Gamma`, "Γ"},
	{`\Delta`, "Δ"},
	{`\Theta`, "Θ"},
	{`\Lambda`, "Λ"},
	{`\Xi`, "Ξ"},
	{`\Pi`, "Π"},
	{`\Sigma`, "Σ"},
	{`\Upsilon`, "Υ"},
	{`\Phi`, "Φ"},
	{`\Psi`, "Ψ"},
	{`\Omega`, "Ω"},
}

// superscriptRunes maps characters to their Unicode superscript equivalents.
var superscriptRunes = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³',
	'4': '⁴', '5': '⁵', '6': '⁶', '7': '⁷',
	'8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼',
	'(': '⁽', ')': '⁾',
	'n': 'ⁿ', 'i': 'ⁱ',
}

// subscriptRunes maps characters to their Unicode subscript equivalents.
var subscriptRunes = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃',
	'4': '₄', '5': '₅', '6': '₆', '7': '₇',
	'8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌',
	'(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'o': 'ₒ', 'x': 'ₓ',
	'h': 'ₕ', 'k': 'ₖ', 'l': 'ₗ', 'm': 'ₘ',
	'n': 'ₙ', 'p': 'ₚ', 's': 'ₛ', 't': 'ₜ',
}

// resolveLaTeX rewrites LaTeX-ish fragments into a plain-text approximation.
// This is best effort: anything the table does not cover keeps its name with
// the backslash dropped. It is not a math renderer.
func resolveLaTeX(s string) string {
	if !strings.ContainsAny(s, `\$^_`) {
		return s
	}

	// Unwrap dollar-delimited math; the inner content flows through the
	// remaining substitutions.
	s = displayMath.ReplaceAllString(s, "$1")
	s = inlineMath.ReplaceAllString(s, "$1")

	// Fractions and roots, innermost first.
	for fracPattern.MatchString(s) {
		s = fracPattern.ReplaceAllString(s, "($1)/($2)")
	}
	for sqrtPattern.MatchString(s) {
		s = sqrtPattern.ReplaceAllString(s, "√($1)")
	}
	s = sqrtBare.ReplaceAllString(s, "√$1")

	// Direct command-to-character substitutions, in table order.
	for _, pair := range latexReplacements {
		s = strings.ReplaceAll(s, pair[0], pair[1])
	}

	// Superscripts and subscripts via Unicode combining equivalents.
	s = superBraced.ReplaceAllStringFunc(s, func(m string) string {
		return mapScript(superBraced.FindStringSubmatch(m)[1], superscriptRunes, "^")
	})
	s = superBare.ReplaceAllStringFunc(s, func(m string) string {
		return mapScript(m[1:], superscriptRunes, "^")
	})
	s = subBraced.ReplaceAllStringFunc(s, func(m string) string {
		return mapScript(subBraced.FindStringSubmatch(m)[1], subscriptRunes, "_")
	})
	s = subBare.ReplaceAllStringFunc(s, func(m string) string {
		return mapScript(m[1:], subscriptRunes, "_")
	})

	// Unknown macros keep their name without the backslash; stray braces go.
	s = leftoverMacro.ReplaceAllString(s, "$1")
	s = leftoverBraces.ReplaceAllString(s, "")

	return s
}

// mapScript converts every rune of body through table. If any rune has no
// equivalent the original marker notation is kept, parenthesized for multi-rune
// bodies so the grouping stays visible.
func mapScript(body string, table map[rune]rune, marker string) string {
	var b strings.Builder
	for _, r := range body {
		mapped, ok := table[r]
		if !ok {
			if len([]rune(body)) > 1 {
				return marker + "(" + body + ")"
			}
			return marker + body
		}
		b.WriteRune(mapped)
	}
	return b.String()
}
