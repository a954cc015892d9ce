// Package analyze enriches a snapshot with content metrics that are cheap to
// compute and useful when deciding whether a page is worth a model's
// attention: word and token counts, top keywords, language, and readability
// metadata from the raw HTML.
package analyze

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/tinyshot/models"
)

// Report is the enrichment result for one snapshot.
type Report struct {
	Title              string         `yaml:"title" json:"title"`
	WordCount          int            `yaml:"word_count" json:"word_count"`
	EstimatedTokens    int            `yaml:"estimated_tokens" json:"estimated_tokens"`
	TopKeywords        []string       `yaml:"top_keywords,omitempty" json:"top_keywords,omitempty"`
	Language           string         `yaml:"language,omitempty" json:"language,omitempty"`
	LanguageConfidence float64        `yaml:"language_confidence,omitempty" json:"language_confidence,omitempty"`
	ElementCounts      map[string]int `yaml:"element_counts" json:"element_counts"`

	// Readability enrichment, present when raw HTML was available.
	Excerpt  string `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
	SiteName string `yaml:"site_name,omitempty" json:"site_name,omitempty"`
	Author   string `yaml:"author,omitempty" json:"author,omitempty"`
}

// Analyzer holds the language detector, which is expensive to build and
// reused across calls.
type Analyzer struct {
	detector lingua.LanguageDetector
}

// detectionLanguages is the closed set we distinguish between. Low-accuracy
// mode keeps the model footprint small.
var detectionLanguages = []lingua.Language{
	lingua.English, lingua.Spanish, lingua.French, lingua.German,
	lingua.Portuguese, lingua.Italian, lingua.Dutch, lingua.Russian,
	lingua.Japanese, lingua.Chinese,
}

func New() *Analyzer {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(detectionLanguages...).
		WithLowAccuracyMode().
		Build()
	return &Analyzer{detector: detector}
}

const topKeywordCount = 10

// Analyze computes the enrichment report for a snapshot. rawHTML may be
// empty, in which case the readability fields stay blank.
func (a *Analyzer) Analyze(snap models.Snapshot, rawHTML string) Report {
	report := Report{
		Title:           snap.Title,
		WordCount:       snap.WordCount(),
		EstimatedTokens: snap.EstimatedTokens(),
		TopKeywords:     TopKeywords(WordFrequency(snap.Text), topKeywordCount),
		ElementCounts:   countElements(snap.Elements),
	}

	if lang, ok := a.detector.DetectLanguageOf(snap.Text); ok {
		report.Language = strings.ToLower(lang.IsoCode639_1().String())
		report.LanguageConfidence = a.detector.ComputeLanguageConfidence(snap.Text, lang)
	}

	if rawHTML != "" {
		a.enrichFromHTML(&report, rawHTML)
	}
	return report
}

// enrichFromHTML pulls article metadata out of the raw document. Failures
// leave the report as-is; enrichment is strictly optional.
func (a *Analyzer) enrichFromHTML(report *Report, rawHTML string) {
	pageURL, err := url.Parse("http://localhost/")
	if err != nil {
		return
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return
	}
	report.Excerpt = article.Excerpt
	report.SiteName = article.SiteName
	report.Author = article.Byline
}

func countElements(elems []models.Element) map[string]int {
	counts := make(map[string]int)
	for _, e := range elems {
		counts[string(e.Type)]++
	}
	return counts
}
