// Package compress reduces a raw HTML document to a compact structured
// snapshot: title, visible-text excerpt, and a bounded list of interactive
// elements with selectors. The output is sized for inclusion in an LLM
// prompt.
package compress

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/tinyshot/models"
	"github.com/dtnitsch/tinyshot/pkg/caching"
	"github.com/dtnitsch/tinyshot/pkg/selector"
)

// MaxInputLen is the hard safety ceiling on input size. Inputs beyond it are
// rejected outright rather than risking unbounded processing time.
const MaxInputLen = 5_000_000

// ErrInputTooLarge is returned when the input HTML exceeds MaxInputLen.
// Retrying with the same input will fail again.
var ErrInputTooLarge = errors.New("input html exceeds size limit")

// FallbackTitle is used when the document has no usable <title>.
const FallbackTitle = "Page"

var (
	titleRe  = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Compressor turns raw HTML into snapshots. The cache is optional (nil
// disables memoization without changing output); it is shared with the
// selector synthesizer so both are swept together.
type Compressor struct {
	cache *caching.Cache
	synth *selector.Synthesizer
	opts  models.Options
}

// New creates a Compressor with the given cache and default options.
func New(cache *caching.Cache, opts models.Options) *Compressor {
	return &Compressor{
		cache: cache,
		synth: selector.New(cache),
		opts:  opts.Normalize(),
	}
}

// Compress produces a snapshot using the compressor's default options.
func (c *Compressor) Compress(html string) (models.Snapshot, error) {
	return c.CompressWith(html, c.opts)
}

// CompressWith produces a snapshot with per-call option overrides. Malformed
// or empty input yields a best-effort snapshot; the only error condition is
// the input size guard.
func (c *Compressor) CompressWith(html string, opts models.Options) (models.Snapshot, error) {
	opts = opts.Normalize()
	if len(html) > MaxInputLen {
		return models.Snapshot{}, fmt.Errorf("%d chars: %w", len(html), ErrInputTooLarge)
	}
	c.cache.MaybeSweep()

	snap := models.Snapshot{
		Title: extractTitle(html),
		Text:  truncateRunes(extractText(html), opts.MaxTextLength),
	}

	elems := c.domElements(html)
	if len(elems) == 0 {
		// Parse failure or no structured matches: best-effort regex pass.
		elems = fallbackElements(html)
	}
	if len(elems) > opts.MaxElementCount {
		elems = elems[:opts.MaxElementCount]
	}
	snap.Elements = elems
	return snap, nil
}

// extractTitle returns the first <title> content, or FallbackTitle.
func extractTitle(html string) string {
	m := titleRe.FindStringSubmatch(html)
	if m == nil {
		return FallbackTitle
	}
	title := collapseSpace(m[1])
	if title == "" {
		return FallbackTitle
	}
	return title
}

// extractText strips script and style blocks with their content, then all
// remaining tags, and normalizes whitespace.
func extractText(html string) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	return collapseSpace(text)
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
