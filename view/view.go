package view

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hnmd-format/go-hnmd/ir"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

const DefaultWidth = 80

var (
	softBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
	lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

type viewOpts struct {
	width  int
	color  bool
	errors bool
}

type ViewOption func(*viewOpts)

func ViewWidth(n int) ViewOption {
	return func(o *viewOpts) { o.width = n }
}

func ViewColor(v bool) ViewOption {
	return func(o *viewOpts) { o.color = v }
}

// ViewErrors lists the parse errors with their line and column after the
// document.
func ViewErrors(v bool) ViewOption {
	return func(o *viewOpts) { o.errors = v }
}

// TermWidth returns the width of the terminal f refers to, else the COLUMNS
// environment variable, else DefaultWidth.
func TermWidth(f *os.File) int {
	if f != nil && isatty.IsTerminal(f.Fd()) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return DefaultWidth
}

type styles struct {
	heading, strong, em, code, url, marker, dim, expr, tag, err *color.Color
}

func newStyles(enable bool) *styles {
	s := &styles{
		heading: color.New(color.FgHiMagenta, color.Bold),
		strong:  color.New(color.Bold),
		em:      color.New(color.Italic),
		code:    color.New(color.FgYellow),
		url:     color.New(color.FgCyan, color.Underline),
		marker:  color.New(color.FgHiBlack),
		dim:     color.New(color.Faint),
		expr:    color.New(color.FgHiCyan),
		tag:     color.New(color.FgBlue),
		err:     color.New(color.FgRed),
	}
	for _, c := range []*color.Color{s.heading, s.strong, s.em, s.code, s.url, s.marker, s.dim, s.expr, s.tag, s.err} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

type viewer struct {
	doc *ir.Document
	o   *viewOpts
	st  *styles
}

// View writes a terminal rendering of doc to w: styled inline markup,
// paragraphs wrapped to the width, list and quote prefixes, indented element
// content.
func View(doc *ir.Document, w io.Writer, opts ...ViewOption) error {
	_, err := io.WriteString(w, String(doc, opts...))
	return err
}

func String(doc *ir.Document, opts ...ViewOption) string {
	o := &viewOpts{width: DefaultWidth}
	for _, opt := range opts {
		opt(o)
	}
	o.width = max(o.width, 8)
	v := &viewer{doc: doc, o: o, st: newStyles(o.color)}
	var res string
	if len(doc.Nodes) > 0 {
		res = v.blocks(doc.ChildIndices(doc.Root), o.width)
	}
	if o.errors && len(doc.Errors) > 0 {
		pd := doc.PosDoc()
		lines := make([]string, 0, len(doc.Errors))
		for _, e := range doc.Errors {
			l, c := pd.LineCol(e.Offset)
			lines = append(lines, v.st.err.Sprintf("%d:%d: %s", l+1, c+1, e.Message))
		}
		if res != "" {
			res += "\n\n"
		}
		res += strings.Join(lines, "\n")
	}
	if res == "" {
		return ""
	}
	return res + "\n"
}

func (v *viewer) blocks(kids []int, width int) string {
	parts := make([]string, 0, len(kids))
	for _, c := range kids {
		parts = append(parts, v.block(c, width))
	}
	return strings.Join(parts, "\n\n")
}

func (v *viewer) block(i, width int) string {
	n := v.doc.Node(i)
	st := v.st
	switch n.Kind {
	case ir.FrontmatterKind:
		label := st.marker.Sprintf("%s frontmatter", n.Format)
		if n.Value == "" {
			return label
		}
		return label + "\n" + prefix(st.dim.Sprint(n.Value), st.marker.Sprint("┆ "))
	case ir.HeadingKind:
		mark := strings.Repeat("#", n.Level) + " "
		text := wordwrap.String(st.heading.Sprint(v.inlines(v.doc.ChildIndices(i))), width-len(mark))
		return hang(text, st.marker.Sprint(mark), len(mark))
	case ir.ParagraphKind:
		return wordwrap.String(v.inlines(v.doc.ChildIndices(i)), width)
	case ir.BlockquoteKind:
		text := wordwrap.String(v.inlines(v.doc.ChildIndices(i)), width-2)
		return prefix(text, st.marker.Sprint("│ "))
	case ir.ListUnorderedKind, ir.ListOrderedKind:
		items := v.doc.ChildIndices(i)
		lines := make([]string, 0, len(items))
		for k, c := range items {
			mark := "• "
			if n.Kind == ir.ListOrderedKind {
				mark = strconv.Itoa(k+1) + ". "
			}
			text := wordwrap.String(v.inlines(v.doc.ChildIndices(c)), width-len(mark))
			lines = append(lines, hang(text, st.marker.Sprint(mark), len(mark)))
		}
		return strings.Join(lines, "\n")
	case ir.CodeBlockKind:
		var b strings.Builder
		if n.HasLang {
			b.WriteString(st.marker.Sprintf("[%s]", n.Lang))
		}
		for _, ln := range strings.Split(lineBreaks.Replace(n.Value), "\n") {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("  ")
			b.WriteString(st.code.Sprint(truncate.StringWithTail(ln, uint(width-2), "…")))
		}
		return b.String()
	case ir.HrKind:
		return st.marker.Sprint(strings.Repeat("─", width))
	case ir.ElementKind, ir.FragmentKind:
		open, close := v.tags(i)
		body := v.blocks(v.doc.ChildIndices(i), width-2)
		if body == "" {
			return open + "\n" + close
		}
		return open + "\n" + pad(body, 2) + "\n" + close
	case ir.FlowExpressionKind:
		return st.expr.Sprint("{" + n.Value + "}")
	}
	return wordwrap.String(v.inline(i), width)
}

func (v *viewer) inlines(kids []int) string {
	var b strings.Builder
	for _, c := range kids {
		b.WriteString(v.inline(c))
	}
	return b.String()
}

func (v *viewer) inline(i int) string {
	n := v.doc.Node(i)
	st := v.st
	switch n.Kind {
	case ir.TextKind:
		// line breaks inside a paragraph are soft
		return softBreaks.Replace(n.Value)
	case ir.StrongKind:
		return st.strong.Sprint(v.inlines(v.doc.ChildIndices(i)))
	case ir.EmphasisKind:
		return st.em.Sprint(v.inlines(v.doc.ChildIndices(i)))
	case ir.CodeInlineKind:
		return st.code.Sprint(n.Value)
	case ir.LinkKind:
		text := v.inlines(v.doc.ChildIndices(i))
		if text == "" || text == n.URL {
			return st.url.Sprint(n.URL)
		}
		return text + " " + st.url.Sprint("("+n.URL+")")
	case ir.ImageKind:
		return st.marker.Sprint("[image: ") + v.inlines(v.doc.ChildIndices(i)) + st.marker.Sprint("] ") + st.url.Sprint("("+n.URL+")")
	case ir.HardBreakKind:
		return "\n"
	case ir.TextExpressionKind:
		return st.expr.Sprint("{" + n.Value + "}")
	case ir.SelfClosingElementKind:
		open, _ := v.tags(i)
		return open
	case ir.ElementKind, ir.FragmentKind:
		open, close := v.tags(i)
		return open + v.inlines(v.doc.ChildIndices(i)) + close
	}
	return v.block(i, v.o.width)
}

func (v *viewer) tags(i int) (string, string) {
	n := v.doc.Node(i)
	if n.Kind == ir.FragmentKind {
		return v.st.tag.Sprint("<>"), v.st.tag.Sprint("</>")
	}
	var b strings.Builder
	b.WriteString("<" + n.Name)
	for _, a := range v.doc.Attributes(i) {
		b.WriteByte(' ')
		switch {
		case a.Kind == ir.ExpressionAttr && a.Name == "":
			fmt.Fprintf(&b, "{%s}", a.Value)
		case a.Kind == ir.ExpressionAttr:
			fmt.Fprintf(&b, "%s={%s}", a.Name, a.Value)
		case a.HasValue:
			fmt.Fprintf(&b, "%s=%q", a.Name, a.Value)
		default:
			b.WriteString(a.Name)
		}
	}
	if n.Kind == ir.SelfClosingElementKind {
		b.WriteString(" />")
		return v.st.tag.Sprint(b.String()), ""
	}
	b.WriteString(">")
	return v.st.tag.Sprint(b.String()), v.st.tag.Sprint("</" + n.Name + ">")
}

// prefix puts p before every line of s.
func prefix(s, p string) string {
	lines := strings.Split(s, "\n")
	for k, ln := range lines {
		lines[k] = p + ln
	}
	return strings.Join(lines, "\n")
}

// hang puts mark before the first line of s and indents the others by n.
func hang(s, mark string, n int) string {
	first, rest, ok := strings.Cut(s, "\n")
	if !ok {
		return mark + s
	}
	return mark + first + "\n" + pad(rest, n)
}

// pad indents the non blank lines of s by n columns.
func pad(s string, n int) string {
	lines := strings.Split(indent.String(s, uint(n)), "\n")
	for k, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			lines[k] = ""
		}
	}
	return strings.Join(lines, "\n")
}
