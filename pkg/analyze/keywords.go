package analyze

import (
	"fmt"
	"sort"
	"strings"
)

// stopwords are skipped in frequency analysis. The list favors web/UI noise
// over exhaustive English coverage; snapshot excerpts are short.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "more": {},
	"no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "our": {}, "so": {},
	"such": {}, "that": {}, "the": {}, "their": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "to": {}, "was": {}, "we": {},
	"were": {}, "will": {}, "with": {}, "you": {}, "your": {},

	// Web/UI noise
	"click": {}, "button": {}, "link": {}, "menu": {}, "page": {},
	"pages": {}, "site": {}, "website": {}, "home": {}, "search": {},
	"loading": {}, "login": {}, "submit": {},
}

// WordFrequency counts cleaned, lowercased, non-stopword tokens.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})
		if word == "" {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// isValidKeyword filters obviously malformed tokens: unmatched delimiters,
// trailing specials, unmatched quotes. Conservative so technical terms like
// x_train survive.
func isValidKeyword(word string) bool {
	if strings.HasSuffix(word, ":") || strings.HasSuffix(word, "=") {
		return false
	}
	if strings.Contains(word, "(") != strings.Contains(word, ")") {
		return false
	}
	if strings.Contains(word, "[") != strings.Contains(word, "]") {
		return false
	}
	if strings.Count(word, `"`)%2 != 0 || strings.Count(word, "'")%2 != 0 {
		return false
	}
	return true
}

// TopKeywords returns the top N keywords as "word:count" strings, sorted by
// descending count.
func TopKeywords(wordCounts map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	var ss []kv
	for k, v := range wordCounts {
		if isValidKeyword(k) {
			ss = append(ss, kv{k, v})
		}
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	if n > len(ss) {
		n = len(ss)
	}
	keywords := make([]string, 0, n)
	for _, e := range ss[:n] {
		keywords = append(keywords, fmt.Sprintf("%s:%d", e.Key, e.Value))
	}
	return keywords
}
