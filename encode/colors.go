package encode

import (
	"strings"

	"github.com/fatih/color"
)

// Class says what kind of token is being written so colors can key
// off it.
type Class int

const (
	NullClass Class = iota
	BoolClass
	NumberClass
	StringClass
	FuncClass
	FieldClass
	IndexClass
)

func Classes() []Class {
	return []Class{
		NullClass, BoolClass, NumberClass, StringClass,
		FuncClass, FieldClass, IndexClass,
	}
}

type Colorable struct {
	Class Class
	Attr  ColorAttr
}

type ColorAttr int

const (
	ValueColor ColorAttr = iota
	FieldColor
	SepColor
	AccessedColor
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
	for _, c := range Classes() {
		able := Colorable{
			Class: c,
			Attr:  SepColor,
		}
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = AccessedColor
		colors.Map[able] = color.New(color.Bold, color.FgHiYellow).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Class = NumberClass
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Class = NullClass
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Class = BoolClass
	colors.Map[able] = color.CyanString

	able.Class = StringClass
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Class = FuncClass
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()

	able.Class = FieldClass
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()

	able.Class = IndexClass
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(cl Class, a ColorAttr, s string) string {
	return c.Get(cl, a)(s)
}

func (c *Colors) Get(cl Class, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Class: cl, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
