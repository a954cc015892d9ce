// Package models defines the data structures shared across tinyshot packages.
package models

import (
	"math"
	"strings"
)

// ElementType classifies an interactive element in a snapshot.
type ElementType string

const (
	TypeButton ElementType = "btn"
	TypeInput  ElementType = "input"
	TypeLink   ElementType = "link"
	TypeSelect ElementType = "select"
)

// Element is one interactive control discovered on a page.
type Element struct {
	Type    ElementType `json:"type"`
	Text    string      `json:"text"`
	Sel     string      `json:"sel"`
	Context string      `json:"context,omitempty"`
}

// Snapshot is the compact structured summary of a web page: title, a
// truncated visible-text excerpt, and a bounded list of interactive
// elements. It is pure data, created fresh per compression and immutable
// once returned.
type Snapshot struct {
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	Elements []Element `json:"elems"`
}

// Options bounds the size of a snapshot.
type Options struct {
	MaxTextLength   int
	MaxElementCount int
}

const (
	DefaultMaxTextLength   = 1000
	DefaultMaxElementCount = 15
)

// Normalize fills zero or negative fields with defaults.
func (o Options) Normalize() Options {
	if o.MaxTextLength <= 0 {
		o.MaxTextLength = DefaultMaxTextLength
	}
	if o.MaxElementCount <= 0 {
		o.MaxElementCount = DefaultMaxElementCount
	}
	return o
}

// WordCount returns the number of whitespace-separated words in the excerpt.
func (s *Snapshot) WordCount() int {
	return len(strings.Fields(s.Text))
}

// EstimatedTokens approximates the LLM token cost of the excerpt.
func (s *Snapshot) EstimatedTokens() int {
	return int(math.Round(float64(s.WordCount()) / 2.5))
}
