package compress

import (
	"errors"
	"strings"
	"testing"

	"github.com/dtnitsch/tinyshot/models"
	"github.com/dtnitsch/tinyshot/pkg/caching"
)

func newTestCompressor(t *testing.T) *Compressor {
	t.Helper()
	return New(caching.New(0, 0), models.Options{})
}

func TestCompressSizeGuard(t *testing.T) {
	c := newTestCompressor(t)

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{
			name:    "exactly at the ceiling",
			size:    MaxInputLen,
			wantErr: false,
		},
		{
			name:    "one past the ceiling",
			size:    MaxInputLen + 1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Compress(strings.Repeat("a", tt.size))
			if tt.wantErr {
				if !errors.Is(err, ErrInputTooLarge) {
					t.Fatalf("expected ErrInputTooLarge, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCompressTitle(t *testing.T) {
	c := newTestCompressor(t)

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "simple title",
			html: "<html><head><title>Login</title></head><body></body></html>",
			want: "Login",
		},
		{
			name: "title with surrounding whitespace",
			html: "<title>\n  Dashboard  \n</title>",
			want: "Dashboard",
		},
		{
			name: "uppercase tag",
			html: "<TITLE>Shouty</TITLE>",
			want: "Shouty",
		},
		{
			name: "missing title falls back",
			html: "<html><body><p>no title here</p></body></html>",
			want: "Page",
		},
		{
			name: "empty title falls back",
			html: "<title>   </title>",
			want: "Page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := c.Compress(tt.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if snap.Title != tt.want {
				t.Errorf("title = %q, want %q", snap.Title, tt.want)
			}
		})
	}
}

func TestCompressTextExcludesScriptAndStyle(t *testing.T) {
	c := newTestCompressor(t)

	snap, err := c.Compress("<p>A</p><script>danger()</script><style>.x{color:red}</style><p>B</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(snap.Text, "danger") {
		t.Errorf("text contains script content: %q", snap.Text)
	}
	if strings.Contains(snap.Text, "color") {
		t.Errorf("text contains style content: %q", snap.Text)
	}
	if snap.Text != "A B" {
		t.Errorf("text = %q, want %q", snap.Text, "A B")
	}
}

func TestCompressTextTruncation(t *testing.T) {
	c := newTestCompressor(t)

	html := "<body><p>" + strings.Repeat("x", 5000) + "</p></body>"
	snap, err := c.CompressWith(html, models.Options{MaxTextLength: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Text) != 50 {
		t.Errorf("text length = %d, want 50", len(snap.Text))
	}
}

func TestCompressBounds(t *testing.T) {
	c := newTestCompressor(t)

	var b strings.Builder
	b.WriteString("<body>")
	for i := 0; i < 30; i++ {
		b.WriteString(`<a href="/page">Link text here</a>`)
	}
	b.WriteString("</body>")

	snap, err := c.Compress(b.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Elements) > models.DefaultMaxElementCount {
		t.Errorf("element count = %d, want <= %d", len(snap.Elements), models.DefaultMaxElementCount)
	}
	if len(snap.Text) > models.DefaultMaxTextLength {
		t.Errorf("text length = %d, want <= %d", len(snap.Text), models.DefaultMaxTextLength)
	}
}

func TestCompressLoginForm(t *testing.T) {
	c := newTestCompressor(t)

	html := `<html><head><title>Login</title></head><body><form>` +
		`<input type="text" placeholder="Username">` +
		`<input type="password" placeholder="Password">` +
		`<button>Sign In</button>` +
		`</form></body></html>`

	snap, err := c.Compress(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Title != "Login" {
		t.Errorf("title = %q, want %q", snap.Title, "Login")
	}
	if len(snap.Elements) != 3 {
		t.Fatalf("element count = %d, want 3: %+v", len(snap.Elements), snap.Elements)
	}

	wantTypes := []models.ElementType{models.TypeInput, models.TypeInput, models.TypeButton}
	for i, want := range wantTypes {
		if snap.Elements[i].Type != want {
			t.Errorf("element %d type = %q, want %q", i, snap.Elements[i].Type, want)
		}
	}
	if snap.Elements[2].Text != "Sign In" {
		t.Errorf("button label = %q, want %q", snap.Elements[2].Text, "Sign In")
	}
	if snap.Elements[0].Text != "Username" {
		t.Errorf("input label = %q, want %q", snap.Elements[0].Text, "Username")
	}
	if snap.Elements[0].Context != "login form" {
		t.Errorf("input context = %q, want %q", snap.Elements[0].Context, "login form")
	}
}

func TestCompressHiddenElementExclusion(t *testing.T) {
	c := newTestCompressor(t)

	tests := []struct {
		name string
		html string
	}{
		{
			name: "inline display none",
			html: `<body><button style="display:none">Hidden</button><button>Visible</button></body>`,
		},
		{
			name: "hidden attribute",
			html: `<body><button hidden>Hidden</button><button>Visible</button></body>`,
		},
		{
			name: "hidden utility class",
			html: `<body><button class="sr-only">Hidden</button><button>Visible</button></body>`,
		},
		{
			name: "hidden ancestor",
			html: `<body><div style="visibility:hidden"><button>Hidden</button></div><button>Visible</button></body>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := c.Compress(tt.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(snap.Elements) != 1 {
				t.Fatalf("element count = %d, want 1: %+v", len(snap.Elements), snap.Elements)
			}
			if snap.Elements[0].Text != "Visible" {
				t.Errorf("kept element = %q, want %q", snap.Elements[0].Text, "Visible")
			}
		})
	}
}

func TestCompressGracefulDegradation(t *testing.T) {
	c := newTestCompressor(t)

	tests := []struct {
		name string
		html string
	}{
		{name: "empty input", html: ""},
		{name: "unclosed tags", html: "<div><p><a href='/x'>dangling"},
		{name: "binary garbage", html: "\x00\x01\x02<<<>>>\xff\xfe"},
		{name: "only whitespace", html: "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := c.Compress(tt.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if snap.Title == "" {
				t.Error("title must never be empty")
			}
		})
	}
}

func TestCompressCacheNonInterference(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "mixed elements",
			html: `<html><head><title>Cached</title></head><body>` +
				`<nav><a href="/home" class="nav-link">Home</a></nav>` +
				`<button id="checkout">Buy now</button></body></html>`,
		},
		{
			// Same-shaped buttons under different landmarks share a selector
			// memo entry; their ancestor prefixes must still differ.
			name: "same shape different landmarks",
			html: `<body><nav><button class="btn">Alpha</button></nav>` +
				`<form><button class="btn">Beta</button></form></body>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cached := New(caching.New(0, 0), models.Options{})
			uncached := New(nil, models.Options{})

			want, err := uncached.Compress(tt.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Twice through the same compressor: second call hits the doc cache.
			for i := 0; i < 2; i++ {
				got, err := cached.Compress(tt.html)
				if err != nil {
					t.Fatalf("unexpected error on pass %d: %v", i, err)
				}
				if got.Title != want.Title || got.Text != want.Text {
					t.Fatalf("pass %d: cached output diverged: %+v vs %+v", i, got, want)
				}
				if len(got.Elements) != len(want.Elements) {
					t.Fatalf("pass %d: element count %d vs %d", i, len(got.Elements), len(want.Elements))
				}
				for j := range got.Elements {
					if got.Elements[j] != want.Elements[j] {
						t.Errorf("pass %d element %d: %+v vs %+v", i, j, got.Elements[j], want.Elements[j])
					}
				}
			}
		})
	}
}

func TestCompressLongTextNotALabel(t *testing.T) {
	c := newTestCompressor(t)

	// An anchor whose text runs past 100 characters is prose, not a control.
	html := `<body><a href="/article">` + strings.Repeat("word ", 30) + `</a><button>OK</button></body>`
	snap, err := c.Compress(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Elements) != 1 {
		t.Fatalf("element count = %d, want 1: %+v", len(snap.Elements), snap.Elements)
	}
	if snap.Elements[0].Type != models.TypeButton {
		t.Errorf("kept element type = %q, want btn", snap.Elements[0].Type)
	}
}
