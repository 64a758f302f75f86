package secret

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

func TestPassword_LengthAndCharset(t *testing.T) {
	tests := []struct {
		name    string
		cs      Charset
		allowed string
	}{
		{"all", AllClasses, upperChars + lowerChars + numberChars + symbolChars},
		{"digits", Charset{Numbers: true}, numberChars},
		{"letters", Charset{Upper: true, Lower: true}, upperChars + lowerChars},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range []int{MinPasswordLength, 20, MaxPasswordLength} {
				pw, err := Password(n, tt.cs)
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				if len(pw) != n {
					t.Errorf("length: got %d, want %d", len(pw), n)
				}
				for _, r := range pw {
					if !strings.ContainsRune(tt.allowed, r) {
						t.Fatalf("char %q outside charset", r)
					}
				}
			}
		})
	}
}

func TestPassword_Errors(t *testing.T) {
	if _, err := Password(16, Charset{}); !errors.Is(err, ErrNoCharset) {
		t.Errorf("empty charset: %v", err)
	}
	if _, err := Password(7, AllClasses); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("short: %v", err)
	}
	if _, err := Password(65, AllClasses); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("long: %v", err)
	}
}

func TestToken(t *testing.T) {
	tok, err := Token(DefaultTokenLength, Charset{Lower: true, Numbers: true})
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`^[a-z0-9]{32}$`).MatchString(tok) {
		t.Errorf("token %q", tok)
	}
	if _, err := Token(3, AllClasses); err == nil {
		t.Error("token below minimum accepted")
	}
	other, _ := Token(DefaultTokenLength, Charset{Lower: true, Numbers: true})
	if other == tok {
		t.Error("two tokens collided")
	}
}

func TestEntropyBits(t *testing.T) {
	// 88 symbols: floor(32 * log2(88)).
	if got := EntropyBits(32, AllClasses); got != 206 {
		t.Errorf("got %d, want 206", got)
	}
	if EntropyBits(10, Charset{}) != 0 {
		t.Error("empty charset should have no entropy")
	}
}

func TestGenerationStrength(t *testing.T) {
	tests := []struct {
		length int
		cs     Charset
		want   string
	}{
		{8, Charset{Lower: true}, "Weak"},
		{12, Charset{Upper: true, Lower: true}, "Weak"},
		{12, Charset{Upper: true, Lower: true, Numbers: true}, "Medium"},
		{16, Charset{Upper: true, Lower: true, Numbers: true}, "Strong"},
		{16, AllClasses, "Very Strong"},
	}
	for _, tt := range tests {
		if got := GenerationStrength(tt.length, tt.cs); got != tt.want {
			t.Errorf("GenerationStrength(%d, %+v) = %q, want %q", tt.length, tt.cs, got, tt.want)
		}
	}
}

func TestStrength(t *testing.T) {
	tests := []struct {
		pw    string
		score int
		label string
	}{
		{"", 0, "Very Weak"},
		{"abc", 1, "Very Weak"},
		{"abcDEF", 2, "Weak"},
		{"abcDEF123", 3, "Medium"},
		{"abcDEF123!", 5, "Exceptional"},
		{"abcdefghij1", 3, "Medium"},
		{"abcdefGHIJ1", 4, "Strong"},
	}
	for _, tt := range tests {
		a := Strength(tt.pw)
		if a.Score != tt.score || a.Label != tt.label {
			t.Errorf("Strength(%q) = %d %q, want %d %q", tt.pw, a.Score, a.Label, tt.score, tt.label)
		}
	}
	if Strength("abcdefghijklm").CrackTime != "Over 100 years" {
		t.Error("crack time for long password")
	}
	if Strength("abc").CrackTime != "Seconds" {
		t.Error("crack time for short password")
	}
}

func TestUUIDs(t *testing.T) {
	std := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	ids, err := UUIDs(5, UUIDStandard)
	if err != nil || len(ids) != 5 {
		t.Fatalf("uuids: %v %v", ids, err)
	}
	for _, id := range ids {
		if !std.MatchString(id) {
			t.Errorf("not a v4 uuid: %q", id)
		}
	}

	up, _ := UUIDs(1, UUIDUppercase)
	if up[0] != strings.ToUpper(up[0]) {
		t.Errorf("uppercase: %q", up[0])
	}
	bare, _ := UUIDs(1, UUIDNoHyphens)
	if len(bare[0]) != 32 || strings.Contains(bare[0], "-") {
		t.Errorf("nohyphens: %q", bare[0])
	}

	many, _ := UUIDs(1000, "")
	if len(many) != 100 {
		t.Errorf("count clamp: %d", len(many))
	}
	if _, err := UUIDs(1, "weird"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestBcrypt(t *testing.T) {
	h, err := BcryptHash("hunter2", MinBcryptCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(h, "$2a$04$") {
		t.Errorf("unexpected hash prefix %q", h)
	}
	ok, err := BcryptVerify("hunter2", h)
	if err != nil || !ok {
		t.Errorf("verify: %v %v", ok, err)
	}
	ok, err = BcryptVerify("wrong", h)
	if err != nil || ok {
		t.Errorf("mismatch: %v %v", ok, err)
	}
	if _, err := BcryptVerify("x", "not-a-hash"); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("bad hash: %v", err)
	}
	if _, err := BcryptHash("x", 3); err == nil {
		t.Error("cost below minimum accepted")
	}
}
