package compress

import (
	"regexp"

	"github.com/dtnitsch/tinyshot/models"
)

// The regex pass guarantees forward progress on markup the DOM parser gets
// nothing out of. It trades selector fidelity (bare tag names, no
// disambiguation) for robustness.
var (
	buttonFallbackRe = regexp.MustCompile(`(?is)<button\b[^>]*>(.*?)</button>`)
	anchorFallbackRe = regexp.MustCompile(`(?is)<a\b[^>]*>(.*?)</a>`)
	inputFallbackRe  = regexp.MustCompile(`(?i)<input\b[^>]*>`)

	typeAttrRe        = regexp.MustCompile(`(?i)type\s*=\s*["']?([^"'\s>]+)`)
	placeholderAttrRe = regexp.MustCompile(`(?i)placeholder\s*=\s*["']([^"']*)["']`)
	nameAttrRe        = regexp.MustCompile(`(?i)name\s*=\s*["']([^"']*)["']`)
)

// fallbackElements scans raw markup for buttons, anchors, and inputs, in
// that fixed order. Used only when the structured pass yields nothing; the
// two passes are never mixed.
func fallbackElements(html string) []models.Element {
	var out []models.Element

	for _, m := range buttonFallbackRe.FindAllStringSubmatch(html, -1) {
		label := collapseSpace(tagRe.ReplaceAllString(m[1], " "))
		if label == "" {
			continue
		}
		out = append(out, models.Element{
			Type: models.TypeButton,
			Text: truncateRunes(label, maxLabelLen),
			Sel:  "button",
		})
	}

	for _, m := range anchorFallbackRe.FindAllStringSubmatch(html, -1) {
		label := collapseSpace(tagRe.ReplaceAllString(m[1], " "))
		if label == "" {
			continue
		}
		out = append(out, models.Element{
			Type: models.TypeLink,
			Text: truncateRunes(label, maxLabelLen),
			Sel:  "a",
		})
	}

	for _, tag := range inputFallbackRe.FindAllString(html, -1) {
		if m := typeAttrRe.FindStringSubmatch(tag); m != nil && m[1] == "hidden" {
			continue
		}
		label := ""
		if m := placeholderAttrRe.FindStringSubmatch(tag); m != nil {
			label = collapseSpace(m[1])
		}
		if label == "" {
			if m := nameAttrRe.FindStringSubmatch(tag); m != nil {
				label = collapseSpace(m[1])
			}
		}
		out = append(out, models.Element{
			Type: models.TypeInput,
			Text: truncateRunes(label, maxLabelLen),
			Sel:  "input",
		})
	}

	return out
}
