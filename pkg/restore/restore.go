// Package restore reconstructs a minimal semantic HTML skeleton from a
// snapshot, grouped by inferred page regions. The result is a readability
// aid for humans and LLMs, not an inverse of compression: round-tripping
// reproduces structure, selectors, and labels, never the original markup.
package restore

import (
	"html"
	"regexp"
	"strings"

	"github.com/dtnitsch/tinyshot/models"
)

var paragraphRe = regexp.MustCompile(`\n\s*\n`)

// Restore renders a snapshot as semantic HTML. Output always contains a
// doctype, a <title>, and a <body>, however sparse the snapshot.
func Restore(snap models.Snapshot) string {
	var nav, header, rest []models.Element
	forms := make(map[string][]models.Element)
	var formOrder []string

	for _, e := range snap.Elements {
		ctx := e.Context
		if ctx == "" {
			ctx = "main"
		}
		switch {
		case ctx == "nav":
			nav = append(nav, e)
		case ctx == "header":
			header = append(header, e)
		case strings.Contains(ctx, "form"):
			if _, ok := forms[ctx]; !ok {
				formOrder = append(formOrder, ctx)
			}
			forms[ctx] = append(forms[ctx], e)
		default:
			rest = append(rest, e)
		}
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><title>")
	b.WriteString(html.EscapeString(snap.Title))
	b.WriteString("</title></head>\n<body>\n")

	if len(nav) > 0 {
		b.WriteString("<header><nav>\n")
		writeElements(&b, nav)
		b.WriteString("</nav></header>\n")
		// The nav block owns the header wrapper; header-context elements
		// fall through to the main section.
		rest = append(header, rest...)
	} else if len(header) > 0 {
		b.WriteString("<header>\n")
		writeElements(&b, header)
		b.WriteString("</header>\n")
	}

	for _, ctx := range formOrder {
		b.WriteString("<form>\n")
		writeElements(&b, forms[ctx])
		b.WriteString("</form>\n")
	}

	b.WriteString("<main><section>\n")
	for _, para := range splitParagraphs(snap.Text) {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(para))
		b.WriteString("</p>\n")
	}
	if len(rest) > 0 {
		b.WriteString(`<div class="actions">` + "\n")
		writeElements(&b, rest)
		b.WriteString("</div>\n")
	}
	b.WriteString("</section></main>\n</body>\n</html>\n")

	return b.String()
}

func splitParagraphs(text string) []string {
	var out []string
	for _, para := range paragraphRe.Split(text, -1) {
		if para = strings.TrimSpace(para); para != "" {
			out = append(out, para)
		}
	}
	return out
}

func writeElements(b *strings.Builder, elems []models.Element) {
	for _, e := range elems {
		b.WriteString(renderElement(e))
		b.WriteString("\n")
	}
}

// renderElement emits the minimal matching tag, carrying the original
// selector in a sel attribute.
func renderElement(e models.Element) string {
	sel := html.EscapeString(e.Sel)
	text := html.EscapeString(e.Text)
	switch e.Type {
	case models.TypeLink:
		return `<a sel="` + sel + `">` + text + `</a>`
	case models.TypeInput:
		if text != "" {
			return `<input sel="` + sel + `" placeholder="` + text + `">`
		}
		return `<input sel="` + sel + `">`
	case models.TypeSelect:
		return `<select sel="` + sel + `">` + text + `</select>`
	default:
		return `<button sel="` + sel + `">` + text + `</button>`
	}
}
