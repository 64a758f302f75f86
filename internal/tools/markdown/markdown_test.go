package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading and bold", "# Hello\n\nThis is **bold**.", "<h1>Hello</h1>\n<p>This is <strong>bold</strong>.</p>"},
		{"link", "[site](https://example.com)", `<p><a href="https://example.com">site</a></p>`},
		{"list", "- a\n- b", "<ul>\n<li>a</li>\n<li>b</li>\n</ul>"},
		{"strikethrough", "~~gone~~", "<p><del>gone</del></p>"},
		{"rule", "---", "<hr />"},
		{"blank", "  \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.in, Options{})
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToHTML_CodeBlockEscapes(t *testing.T) {
	got, _ := ToHTML("```\nif a < b {}\n```", Options{})
	if !strings.Contains(got, "<pre><code>if a &lt; b {}\n</code></pre>") {
		t.Errorf("code block: %q", got)
	}
}

func TestToHTML_RawHTML(t *testing.T) {
	safe, _ := ToHTML("hi <b>there</b>", Options{})
	if strings.Contains(safe, "<b>") {
		t.Errorf("raw html should be omitted by default: %q", safe)
	}
	raw, _ := ToHTML("hi <b>there</b>", Options{RawHTML: true})
	if raw != "<p>hi <b>there</b></p>" {
		t.Errorf("raw: %q", raw)
	}
}

func TestToHTML_HeadingIDsAndEmoji(t *testing.T) {
	got, _ := ToHTML("## Getting Started :smile:", Options{HeadingIDs: true})
	if !strings.Contains(got, `id="getting-started`) {
		t.Errorf("heading id missing: %q", got)
	}
	if strings.Contains(got, ":smile:") {
		t.Errorf("emoji shortcode not rendered: %q", got)
	}
}
