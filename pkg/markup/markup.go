package markup

import (
	"html/template"
	"strings"

	"github.com/amannn/next-intl-sub001/pkg/icu"
)

// voidElements are written without children or a closing tag.
var voidElements = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
	"wbr": true,
}

// Element returns a tag handler that wraps its children in an HTML element.
// attrs are name/value pairs; a trailing name without a value is ignored.
// Attribute values and child text are escaped.
//
//	markup.Element("a", "href", "/terms", "class", "link")
func Element(name string, attrs ...string) icu.Value {
	var open strings.Builder
	open.WriteString("<")
	open.WriteString(name)
	for i := 0; i+1 < len(attrs); i += 2 {
		open.WriteString(" ")
		open.WriteString(attrs[i])
		open.WriteString(`="`)
		open.WriteString(template.HTMLEscapeString(attrs[i+1]))
		open.WriteString(`"`)
	}
	open.WriteString(">")
	start := open.String()

	if voidElements[name] {
		return icu.Handler[template.HTML](func([]icu.Chunk[template.HTML]) template.HTML {
			return template.HTML(start)
		})
	}

	end := "</" + name + ">"
	return icu.Handler[template.HTML](func(children []icu.Chunk[template.HTML]) template.HTML {
		return template.HTML(start) + Render(children) + template.HTML(end)
	})
}

// Render concatenates formatted chunks into HTML. Text is escaped; values
// produced by tag handlers are trusted as is.
func Render(chunks icu.Result[template.HTML]) template.HTML {
	var b strings.Builder
	for _, c := range chunks {
		if c.Rich {
			b.WriteString(string(c.Value))
			continue
		}
		b.WriteString(template.HTMLEscapeString(c.Text))
	}
	return template.HTML(b.String())
}
