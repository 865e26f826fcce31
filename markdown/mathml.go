package markdown

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
	"github.com/mjarosz/clipdown"
)

// mathmlToLatex converts a MathML subtree to LaTeX source. The
// selection is serialized and re-read as XML, which also validates
// that the markup is well formed.
func mathmlToLatex(s *goquery.Selection) (string, error) {
	raw, err := goquery.OuterHtml(s)
	if err != nil {
		return "", clipdown.Errorf(clipdown.EINVALID, "serialize mathml: %s", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return "", clipdown.Errorf(clipdown.EINVALID, "parse mathml: %s", err)
	}
	root := doc.Root()
	if root == nil {
		return "", clipdown.Errorf(clipdown.EINVALID, "empty mathml document")
	}
	latex := strings.TrimSpace(latexFromElement(root))
	if latex == "" {
		return "", clipdown.Errorf(clipdown.EINVALID, "mathml produced no latex")
	}
	return latex, nil
}

func latexFromElement(el *etree.Element) string {
	switch el.Tag {
	case "math", "mrow", "mstyle", "mpadded", "menclose", "merror":
		return latexFromChildren(el)
	case "semantics":
		// First presentation child; annotations carry other formats.
		for _, child := range el.ChildElements() {
			if strings.HasPrefix(child.Tag, "annotation") {
				continue
			}
			return latexFromElement(child)
		}
		return ""
	case "mi", "mn":
		return latexToken(strings.TrimSpace(el.Text()))
	case "mo":
		return latexOperator(strings.TrimSpace(el.Text()))
	case "mtext", "ms":
		t := strings.TrimSpace(el.Text())
		if t == "" {
			return ""
		}
		return `\text{` + t + `}`
	case "mfrac":
		if args := childLatex(el); len(args) == 2 {
			return `\frac{` + args[0] + `}{` + args[1] + `}`
		}
		return latexFromChildren(el)
	case "msqrt":
		return `\sqrt{` + strings.TrimSpace(latexFromChildren(el)) + `}`
	case "mroot":
		if args := childLatex(el); len(args) == 2 {
			return `\sqrt[` + args[1] + `]{` + args[0] + `}`
		}
		return latexFromChildren(el)
	case "msup":
		if args := childLatex(el); len(args) == 2 {
			return latexBase(args[0]) + `^{` + args[1] + `}`
		}
		return latexFromChildren(el)
	case "msub":
		if args := childLatex(el); len(args) == 2 {
			return latexBase(args[0]) + `_{` + args[1] + `}`
		}
		return latexFromChildren(el)
	case "msubsup":
		if args := childLatex(el); len(args) == 3 {
			return latexBase(args[0]) + `_{` + args[1] + `}^{` + args[2] + `}`
		}
		return latexFromChildren(el)
	case "munder":
		return latexUnder(el)
	case "mover":
		return latexOver(el)
	case "munderover":
		if args := childLatex(el); len(args) == 3 {
			return latexBase(args[0]) + `_{` + args[1] + `}^{` + args[2] + `}`
		}
		return latexFromChildren(el)
	case "mfenced":
		open := fenceDelim(el.SelectAttrValue("open", "("))
		close := fenceDelim(el.SelectAttrValue("close", ")"))
		return `\left` + open + strings.Join(childLatex(el), ",") + `\right` + close
	case "mtable":
		return `\begin{matrix}` + strings.Join(childLatex(el), ` \\ `) + `\end{matrix}`
	case "mtr":
		return strings.Join(childLatex(el), " & ")
	case "mtd":
		return latexFromChildren(el)
	case "mspace":
		return `\ `
	case "mphantom", "annotation", "annotation-xml":
		return ""
	default:
		return latexFromChildren(el)
	}
}

func latexFromChildren(el *etree.Element) string {
	var b strings.Builder
	for _, child := range el.ChildElements() {
		b.WriteString(latexFromElement(child))
	}
	return b.String()
}

func childLatex(el *etree.Element) []string {
	children := el.ChildElements()
	out := make([]string, 0, len(children))
	for _, child := range children {
		out = append(out, strings.TrimSpace(latexFromElement(child)))
	}
	return out
}

// latexBase braces a script base when it is longer than one rune, so
// commands and grouped terms bind to the whole script.
func latexBase(base string) string {
	trimmed := strings.TrimSpace(base)
	if utf8.RuneCountInString(trimmed) <= 1 {
		return trimmed
	}
	return "{" + trimmed + "}"
}

func latexUnder(el *etree.Element) string {
	children := el.ChildElements()
	if len(children) != 2 {
		return latexFromChildren(el)
	}
	base := strings.TrimSpace(latexFromElement(children[0]))
	switch strings.TrimSpace(children[1].Text()) {
	case "⏟":
		return `\underbrace{` + base + `}`
	case "_", "̲":
		return `\underline{` + base + `}`
	}
	return latexBase(base) + `_{` + strings.TrimSpace(latexFromElement(children[1])) + `}`
}

// overAccents maps accent characters in mover to their commands.
var overAccents = map[string]string{
	"^": `\hat`, "ˆ": `\hat`,
	"¯": `\overline`, "‾": `\overline`, "―": `\overline`,
	"→": `\vec`, "⃗": `\vec`,
	"˙": `\dot`, "¨": `\ddot`,
	"~": `\tilde`, "˜": `\tilde`,
	"⏞": `\overbrace`,
}

func latexOver(el *etree.Element) string {
	children := el.ChildElements()
	if len(children) != 2 {
		return latexFromChildren(el)
	}
	base := strings.TrimSpace(latexFromElement(children[0]))
	if cmd, ok := overAccents[strings.TrimSpace(children[1].Text())]; ok {
		return cmd + `{` + base + `}`
	}
	return `\overset{` + strings.TrimSpace(latexFromElement(children[1])) + `}{` + base + `}`
}

// latexSymbols maps unicode math characters to their LaTeX commands.
var latexSymbols = map[string]string{
	"−": "-", "×": `\times`, "÷": `\div`, "±": `\pm`, "∓": `\mp`,
	"⋅": `\cdot`, "∗": `\ast`, "∘": `\circ`,
	"∑": `\sum`, "∏": `\prod`, "∫": `\int`, "∬": `\iint`, "∮": `\oint`,
	"∞": `\infty`, "∂": `\partial`, "∇": `\nabla`,
	"≈": `\approx`, "≠": `\neq`, "≡": `\equiv`, "∝": `\propto`,
	"≤": `\le`, "≥": `\ge`, "≪": `\ll`, "≫": `\gg`,
	"∈": `\in`, "∉": `\notin`, "∋": `\ni`,
	"⊂": `\subset`, "⊆": `\subseteq`, "⊃": `\supset`, "⊇": `\supseteq`,
	"∪": `\cup`, "∩": `\cap`, "∅": `\emptyset`, "∖": `\setminus`,
	"→": `\to`, "←": `\leftarrow`, "↔": `\leftrightarrow`, "↦": `\mapsto`,
	"⇒": `\Rightarrow`, "⇐": `\Leftarrow`, "⇔": `\Leftrightarrow`,
	"∀": `\forall`, "∃": `\exists`, "¬": `\neg`,
	"∧": `\wedge`, "∨": `\vee`, "⊕": `\oplus`, "⊗": `\otimes`,
	"⋯": `\cdots`, "…": `\ldots`, "′": "'",
	"ℏ": `\hbar`, "ℓ": `\ell`, "ℜ": `\Re`, "ℑ": `\Im`, "ℵ": `\aleph`,
	"α": `\alpha`, "β": `\beta`, "γ": `\gamma`, "δ": `\delta`,
	"ε": `\varepsilon`, "ϵ": `\epsilon`, "ζ": `\zeta`, "η": `\eta`,
	"θ": `\theta`, "ι": `\iota`, "κ": `\kappa`, "λ": `\lambda`,
	"μ": `\mu`, "ν": `\nu`, "ξ": `\xi`, "π": `\pi`, "ρ": `\rho`,
	"σ": `\sigma`, "τ": `\tau`, "υ": `\upsilon`, "φ": `\varphi`,
	"ϕ": `\phi`, "χ": `\chi`, "ψ": `\psi`, "ω": `\omega`,
	"Γ": `\Gamma`, "Δ": `\Delta`, "Θ": `\Theta`, "Λ": `\Lambda`,
	"Ξ": `\Xi`, "Π": `\Pi`, "Σ": `\Sigma`, "Υ": `\Upsilon`,
	"Φ": `\Phi`, "Ψ": `\Psi`, "Ω": `\Omega`,
}

// latexFunctions are multi-letter identifiers with standard commands.
var latexFunctions = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true,
	"csc": true, "sinh": true, "cosh": true, "tanh": true,
	"arcsin": true, "arccos": true, "arctan": true,
	"log": true, "ln": true, "lg": true, "exp": true,
	"lim": true, "max": true, "min": true, "sup": true, "inf": true,
	"det": true, "dim": true, "ker": true, "deg": true, "gcd": true,
	"arg": true, "mod": true,
}

// symbolLatex resolves a character through latexSymbols, appending
// the space that keeps a command from fusing with a following letter.
func symbolLatex(t string) (string, bool) {
	cmd, ok := latexSymbols[t]
	if !ok {
		return "", false
	}
	if strings.HasPrefix(cmd, `\`) {
		return cmd + " ", true
	}
	return cmd, true
}

func latexToken(t string) string {
	if t == "" {
		return ""
	}
	if out, ok := symbolLatex(t); ok {
		return out
	}
	if latexFunctions[t] {
		return `\` + t + ` `
	}
	return t
}

func latexOperator(t string) string {
	if t == "" {
		return ""
	}
	if out, ok := symbolLatex(t); ok {
		return out
	}
	return t
}

func fenceDelim(d string) string {
	switch strings.TrimSpace(d) {
	case "(", ")", "[", "]", "|":
		return strings.TrimSpace(d)
	case "{":
		return `\{`
	case "}":
		return `\}`
	case "‖":
		return `\|`
	case "⟨":
		return `\langle `
	case "⟩":
		return `\rangle `
	default:
		return "."
	}
}
