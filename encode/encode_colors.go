package encode

import (
	"strings"

	"github.com/hnmd-format/go-hnmd/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind ir.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	MarkerColor ColorAttr = iota
	NameColor
	AttrNameColor
	AttrValueColor
	ValueColor
	URLColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range ir.Kinds() {
		colors.Map[Colorable{Kind: k, Attr: MarkerColor}] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: MarkerColor}

	able.Kind = ir.HeadingKind
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Kind = ir.BlockquoteKind
	colors.Map[able] = color.BlueString
	able.Kind = ir.HrKind
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()

	for _, k := range []ir.Kind{ir.ElementKind, ir.SelfClosingElementKind, ir.FragmentKind} {
		able.Kind = k
		able.Attr = MarkerColor
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = NameColor
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = AttrNameColor
		colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()
		able.Attr = AttrValueColor
		colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	}

	able.Attr = ValueColor
	able.Kind = ir.CodeInlineKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	able.Kind = ir.CodeBlockKind
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()
	able.Kind = ir.TextExpressionKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = ir.FlowExpressionKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = ir.FrontmatterKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Attr = URLColor
	able.Kind = ir.LinkKind
	colors.Map[able] = color.CyanString
	able.Kind = ir.ImageKind
	colors.Map[able] = color.CyanString

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k ir.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k ir.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
