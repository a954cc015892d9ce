package analyze

import (
	"reflect"
	"testing"
)

func TestWordFrequency(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]int
	}{
		{
			name: "lowercases and counts",
			text: "Pricing pricing PRICING",
			want: map[string]int{"pricing": 3},
		},
		{
			name: "stopwords dropped",
			text: "the cart and the checkout",
			want: map[string]int{"cart": 1, "checkout": 1},
		},
		{
			name: "ui noise dropped",
			text: "click the button to login",
			want: map[string]int{},
		},
		{
			name: "punctuation trimmed",
			text: `"orders", (invoices).`,
			want: map[string]int{"orders": 1, "invoices": 1},
		},
		{
			name: "empty text",
			text: "",
			want: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordFrequency(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WordFrequency = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidKeyword(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"checkout", true},
		{"x_train", true},
		{"f(x)", true},
		{"key:", false},
		{"name=", false},
		{"open(paren", false},
		{"bracket]", false},
		{`say"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := isValidKeyword(tt.word); got != tt.want {
				t.Errorf("isValidKeyword(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestTopKeywords(t *testing.T) {
	counts := map[string]int{
		"cart":     5,
		"checkout": 5,
		"invoice":  2,
		"refund":   9,
		"broken(":  100,
	}

	got := TopKeywords(counts, 3)
	want := []string{"refund:9", "cart:5", "checkout:5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords = %v, want %v", got, want)
	}
}

func TestTopKeywordsFewerThanN(t *testing.T) {
	got := TopKeywords(map[string]int{"only": 1}, 10)
	if len(got) != 1 || got[0] != "only:1" {
		t.Errorf("TopKeywords = %v, want [only:1]", got)
	}
}
