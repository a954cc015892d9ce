// Package selector derives short CSS-like selectors and region hints for DOM
// elements. Selectors are identification aids for a downstream LLM-driven
// automation loop; uniqueness within the document is not verified.
package selector

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/dtnitsch/tinyshot/pkg/caching"
)

const (
	// ancestorDepth bounds the walk for the selector context prefix.
	ancestorDepth = 3
	// regionDepth bounds the walk for the human-readable region hint.
	regionDepth = 2
)

// landmarkTags are structural anchors that make good ancestor context.
var landmarkTags = map[string]bool{
	"nav":    true,
	"form":   true,
	"header": true,
	"footer": true,
	"main":   true,
	"aside":  true,
}

// classAllowTokens mark a class as likely human-authored and semantic.
var classAllowTokens = []string{
	"btn", "button", "nav", "menu", "link", "form", "login", "signup",
	"submit", "search", "input", "field", "primary", "secondary", "action",
	"cta", "header", "footer", "title", "card", "tab", "toggle", "dropdown",
}

// classDenyRe rejects utility and generated classes (spacing/layout
// shorthands, framework hashes).
var classDenyRe = regexp.MustCompile(
	`^([mp][tblrxy]?-|w-|h-|col-|row-|grid|flex|gap-|text-|bg-|border|css-|sc-|jsx-)|[0-9a-f]{5,}$`)

// idDenyRe rejects ids that are purely numeric or short hex-like tokens.
var idDenyRe = regexp.MustCompile(`(?i)^\d+$|^[0-9a-f]{4,8}$`)

// idDenyTokens are generator markers, compared against whole -/_ separated
// tokens so ids like "agenda-view" or "general-info" survive.
var idDenyTokens = map[string]bool{
	"auto":      true,
	"gen":       true,
	"generated": true,
	"temp":      true,
	"tmp":       true,
}

// Synthesizer builds selectors, memoizing by element shape through the
// shared cache. Only the positionless part of a selector is memoized; the
// ancestor prefix depends on document position and is recomputed on every
// call, so cache state never changes output.
type Synthesizer struct {
	cache *caching.Cache
}

func New(cache *caching.Cache) *Synthesizer {
	return &Synthesizer{cache: cache}
}

// For returns a short selector for the element: a meaningful #id alone when
// one exists, otherwise tag + up to two meaningful classes + [type] for
// inputs, prefixed with ancestor context when any is found.
func (s *Synthesizer) For(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}

	base := s.base(n)
	if strings.HasPrefix(base, "#") {
		return base
	}
	if prefix := ancestorContext(n); prefix != "" {
		return prefix + " " + base
	}
	return base
}

// base returns the shape-derived selector part, memoized per (tag, id,
// class, type).
func (s *Synthesizer) base(n *html.Node) string {
	key := memoKey(n)
	if sel, ok := s.cache.GetSelector(key); ok {
		return sel
	}

	sel := buildBase(n)
	s.cache.PutSelector(key, sel)
	return sel
}

func buildBase(n *html.Node) string {
	if id := attr(n, "id"); MeaningfulID(id) {
		return "#" + id
	}

	var b strings.Builder
	b.WriteString(n.Data)
	for _, cls := range meaningfulClasses(n, 2) {
		b.WriteString(".")
		b.WriteString(cls)
	}
	if n.Data == "input" {
		if typ := attr(n, "type"); typ != "" {
			b.WriteString(`[type="` + typ + `"]`)
		}
	}
	return b.String()
}

// Context returns a short human-readable region hint for the element, used
// for display grouping only. It walks at most two ancestor levels.
func (s *Synthesizer) Context(n *html.Node) string {
	if n == nil {
		return ""
	}
	p := n.Parent
	for depth := 0; depth < regionDepth && p != nil && p.Type == html.ElementNode; depth++ {
		switch p.Data {
		case "nav":
			return "nav"
		case "header":
			return "header"
		case "footer":
			return "footer"
		case "aside":
			return "aside"
		case "main":
			return "main"
		case "form":
			return classifyForm(p)
		}
		p = p.Parent
	}
	return ""
}

// classifyForm distinguishes login and search forms from generic ones by
// the input types they contain.
func classifyForm(form *html.Node) string {
	var kind string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if kind != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "input" {
			switch strings.ToLower(attr(n, "type")) {
			case "password":
				kind = "login form"
			case "search":
				kind = "search form"
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(form)
	if kind == "" {
		return "form"
	}
	return kind
}

// ancestorContext walks up to three ancestor levels and returns the first
// landmark tag, meaningful #id, or meaningful .class found.
func ancestorContext(n *html.Node) string {
	p := n.Parent
	for depth := 0; depth < ancestorDepth && p != nil && p.Type == html.ElementNode; depth++ {
		if landmarkTags[p.Data] {
			return p.Data
		}
		if id := attr(p, "id"); MeaningfulID(id) {
			return "#" + id
		}
		if classes := meaningfulClasses(p, 1); len(classes) > 0 {
			return "." + classes[0]
		}
		p = p.Parent
	}
	return ""
}

// MeaningfulID reports whether an id looks human-authored and stable:
// length strictly between 2 and 30, and not matching auto-generated
// patterns.
func MeaningfulID(id string) bool {
	if len(id) <= 2 || len(id) >= 30 {
		return false
	}
	if idDenyRe.MatchString(id) {
		return false
	}
	for _, token := range strings.FieldsFunc(strings.ToLower(id), idSeparator) {
		if idDenyTokens[token] {
			return false
		}
	}
	return true
}

func idSeparator(r rune) bool {
	return r == '-' || r == '_'
}

// MeaningfulClass reports whether a class name carries a semantic token and
// is not a utility or generated class.
func MeaningfulClass(cls string) bool {
	if cls == "" {
		return false
	}
	lower := strings.ToLower(cls)
	if classDenyRe.MatchString(lower) {
		return false
	}
	for _, token := range classAllowTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func meaningfulClasses(n *html.Node, max int) []string {
	var out []string
	for _, cls := range strings.Fields(attr(n, "class")) {
		if MeaningfulClass(cls) {
			out = append(out, cls)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

func memoKey(n *html.Node) string {
	return n.Data + "#" + attr(n, "id") + "." + attr(n, "class") + "|" + attr(n, "type")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
