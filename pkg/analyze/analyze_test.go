package analyze

import (
	"strings"
	"testing"

	"github.com/dtnitsch/tinyshot/models"
)

func TestAnalyzeCounts(t *testing.T) {
	a := New()
	snap := models.Snapshot{
		Title: "Orders",
		Text:  "The quarterly revenue numbers exceeded every forecast the analysts published this spring.",
		Elements: []models.Element{
			{Type: models.TypeButton, Text: "Export"},
			{Type: models.TypeLink, Text: "Details"},
			{Type: models.TypeLink, Text: "Archive"},
		},
	}

	report := a.Analyze(snap, "")
	if report.Title != "Orders" {
		t.Errorf("title = %q, want %q", report.Title, "Orders")
	}
	if report.WordCount != 12 {
		t.Errorf("word count = %d, want 12", report.WordCount)
	}
	if report.EstimatedTokens == 0 {
		t.Error("estimated tokens should be non-zero")
	}
	if report.ElementCounts["btn"] != 1 || report.ElementCounts["link"] != 2 {
		t.Errorf("element counts = %v", report.ElementCounts)
	}
	if report.Excerpt != "" || report.Author != "" {
		t.Errorf("readability fields set without raw HTML: %+v", report)
	}
}

func TestAnalyzeDetectsEnglish(t *testing.T) {
	a := New()
	snap := models.Snapshot{
		Title: "Article",
		Text: "The committee reviewed the proposal carefully and decided that further " +
			"discussion would be necessary before any funding could be approved.",
	}

	report := a.Analyze(snap, "")
	if report.Language != "en" {
		t.Errorf("language = %q, want en", report.Language)
	}
	if report.LanguageConfidence <= 0 {
		t.Errorf("confidence = %v, want > 0", report.LanguageConfidence)
	}
}

func TestAnalyzeKeywords(t *testing.T) {
	a := New()
	snap := models.Snapshot{
		Title: "Report",
		Text:  "revenue revenue revenue forecast forecast margin",
	}

	report := a.Analyze(snap, "")
	if len(report.TopKeywords) != 3 {
		t.Fatalf("keyword count = %d, want 3: %v", len(report.TopKeywords), report.TopKeywords)
	}
	if report.TopKeywords[0] != "revenue:3" {
		t.Errorf("top keyword = %q, want revenue:3", report.TopKeywords[0])
	}
}

func TestAnalyzeReadabilityEnrichment(t *testing.T) {
	a := New()
	snap := models.Snapshot{Title: "Post"}

	var body strings.Builder
	body.WriteString(`<html><head><title>Post</title>`)
	body.WriteString(`<meta property="og:site_name" content="Example Blog">`)
	body.WriteString(`<meta name="author" content="Jordan Lee">`)
	body.WriteString(`</head><body><article>`)
	for i := 0; i < 8; i++ {
		body.WriteString("<p>A long enough paragraph of running prose that the extractor treats this document as an article worth parsing for metadata.</p>")
	}
	body.WriteString(`</article></body></html>`)

	report := a.Analyze(snap, body.String())
	if report.SiteName != "Example Blog" {
		t.Errorf("site name = %q, want %q", report.SiteName, "Example Blog")
	}
}

func TestAnalyzeMalformedHTMLIsHarmless(t *testing.T) {
	a := New()
	report := a.Analyze(models.Snapshot{Title: "X"}, "<div><<<not html")
	if report.Title != "X" {
		t.Errorf("title = %q, want X", report.Title)
	}
}
