package minify

import "testing"

func TestMinify(t *testing.T) {
	tests := []struct {
		lang, in, want string
	}{
		{"js", "// lead\nfunction add(a, b) {\n  /* sum */\n  return a + b; // tail\n}\n", "function add(a,b){return a+b;}"},
		{"javascript", "const u = \"http://x\";", "const u=\"http://x\";"},
		{"css", "body {\n  color : red ;\n  margin: 0 auto;\n}", "body{color:red;margin:0 auto;}"},
		{"html", "<div>\n  <!-- note -->\n  <p>Hi  there</p>\n</div>", "<div><p>Hi there</p></div>"},
	}
	for _, tt := range tests {
		got, err := Minify(tt.lang, tt.in)
		if err != nil {
			t.Fatalf("%s: %v", tt.lang, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.lang, got, tt.want)
		}
	}
	if _, err := Minify("cobol", "x"); err == nil {
		t.Error("unsupported language accepted")
	}
}

func TestStats(t *testing.T) {
	if s, l := Stats("a\nbc"); s != 4 || l != 2 {
		t.Errorf("got %d/%d", s, l)
	}
	if s, l := Stats(""); s != 0 || l != 0 {
		t.Errorf("empty: %d/%d", s, l)
	}
}
