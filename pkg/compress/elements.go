package compress

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dtnitsch/tinyshot/models"
	"github.com/dtnitsch/tinyshot/pkg/caching"
)

const (
	// maxLabelLen caps element labels in the snapshot.
	maxLabelLen = 30
	// maxMeaningfulText: candidates with longer visible text are containers
	// or prose, not labelable controls.
	maxMeaningfulText = 100
	// maxUnwrapDepth bounds wrapper collapsing on pathological nesting.
	maxUnwrapDepth = 5
)

// candidateSelector covers the interactive element categories: buttons,
// anchors with href, non-hidden typed inputs, selects, textareas, ARIA
// widget roles, inline click handlers, and navigation-link class patterns.
var candidateSelector = strings.Join([]string{
	"button",
	"a[href]",
	`input:not([type="hidden"])`,
	"select",
	"textarea",
	`[role="button"]`,
	`[role="link"]`,
	`[role="menuitem"]`,
	"[onclick]",
	`a[class*="nav"]`,
}, ", ")

// hiddenClassTokens are utility class substrings that hide an element.
var hiddenClassTokens = []string{"hidden", "invisible", "sr-only", "d-none"}

// domElements runs the structured extraction pass. A parse failure returns
// nil, which the caller treats as "zero elements found".
func (c *Compressor) domElements(htmlStr string) []models.Element {
	key := caching.Fingerprint(htmlStr)
	doc, ok := c.cache.GetDoc(key)
	if !ok {
		var err error
		doc, err = goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
		if err != nil || doc == nil {
			return nil
		}
		c.cache.PutDoc(key, doc)
	}

	var out []models.Element
	seen := make(map[*html.Node]bool)
	doc.Find(candidateSelector).Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		n := s.Nodes[0]
		if !meaningful(n) || !visible(n) {
			return
		}
		n = unwrap(n, 0)
		if seen[n] {
			return
		}
		seen[n] = true
		out = append(out, c.toElement(n))
	})
	return out
}

// meaningful requires non-empty visible text of at most 100 characters.
// Inputs are exempt from the non-empty requirement (their label comes from
// placeholder or name).
func meaningful(n *html.Node) bool {
	text := collapseSpace(nodeText(n))
	if len([]rune(text)) > maxMeaningfulText {
		return false
	}
	if text == "" && n.Data != "input" && n.Data != "textarea" {
		return false
	}
	return true
}

// visible walks the ancestor chain to the document root; any hidden
// ancestor hides the descendant.
func visible(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if nodeHidden(p) {
			return false
		}
	}
	return true
}

func nodeHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		case "class":
			cls := strings.ToLower(a.Val)
			for _, token := range hiddenClassTokens {
				if strings.Contains(cls, token) {
					return true
				}
			}
		}
	}
	return false
}

// unwrap collapses useless wrappers: a div/span with no own text, exactly
// one child element, and no meaningful attribute is replaced by that child,
// recursively, up to maxUnwrapDepth levels. Running it on an already
// unwrapped node is a no-op.
func unwrap(n *html.Node, depth int) *html.Node {
	if depth >= maxUnwrapDepth || !isWrapper(n) {
		return n
	}
	return unwrap(singleChildElement(n), depth+1)
}

func isWrapper(n *html.Node) bool {
	if n.Data != "div" && n.Data != "span" {
		return false
	}
	if hasOwnText(n) {
		return false
	}
	if singleChildElement(n) == nil {
		return false
	}
	return !hasMeaningfulAttr(n)
}

// hasMeaningfulAttr reports attributes beyond class/style that make an
// element worth keeping as-is.
func hasMeaningfulAttr(n *html.Node) bool {
	for _, a := range n.Attr {
		switch {
		case a.Key == "id", a.Key == "role", a.Key == "onclick", a.Key == "onchange":
			return true
		case strings.HasPrefix(a.Key, "data-"), strings.HasPrefix(a.Key, "aria-"):
			return true
		}
	}
	return false
}

func hasOwnText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

// singleChildElement returns the node's only element child, or nil when the
// node has zero or more than one.
func singleChildElement(n *html.Node) *html.Node {
	var child *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if child != nil {
			return nil
		}
		child = c
	}
	return child
}

// toElement maps a surviving DOM node to its snapshot form.
func (c *Compressor) toElement(n *html.Node) models.Element {
	var kind models.ElementType
	switch n.Data {
	case "a":
		kind = models.TypeLink
	case "input", "textarea":
		kind = models.TypeInput
	case "select":
		kind = models.TypeSelect
	default:
		// button, role widgets, onclick handlers, unknown tags
		kind = models.TypeButton
	}

	label := collapseSpace(nodeText(n))
	if label == "" {
		label = nodeAttr(n, "placeholder")
	}
	if label == "" {
		label = nodeAttr(n, "name")
	}

	return models.Element{
		Type:    kind,
		Text:    truncateRunes(label, maxLabelLen),
		Sel:     c.synth.For(n),
		Context: c.synth.Context(n),
	}
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
