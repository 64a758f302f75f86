// Package secret generates passwords, tokens and UUIDs, grades password
// strength and wraps bcrypt.
package secret

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	numberChars = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Password and token length limits.
const (
	DefaultPasswordLength = 16
	MinPasswordLength     = 8
	MaxPasswordLength     = 64

	DefaultTokenLength = 32
	MinTokenLength     = 4
	MaxTokenLength     = 128
)

// random is the entropy source; tests may swap it.
var random io.Reader = rand.Reader

// ErrNoCharset is returned when every character class is disabled.
var ErrNoCharset = apperr.Validationf("Select at least one option")

// Charset selects the character classes to draw from.
type Charset struct {
	Upper   bool
	Lower   bool
	Numbers bool
	Symbols bool
}

// AllClasses enables every class.
var AllClasses = Charset{Upper: true, Lower: true, Numbers: true, Symbols: true}

// Alphabet concatenates the enabled classes.
func (c Charset) Alphabet() string {
	var b strings.Builder
	if c.Upper {
		b.WriteString(upperChars)
	}
	if c.Lower {
		b.WriteString(lowerChars)
	}
	if c.Numbers {
		b.WriteString(numberChars)
	}
	if c.Symbols {
		b.WriteString(symbolChars)
	}
	return b.String()
}

// Password draws length characters uniformly from the enabled classes.
func Password(length int, c Charset) (string, error) {
	if length < MinPasswordLength || length > MaxPasswordLength {
		return "", apperr.Validationf("Password length must be between %d and %d.", MinPasswordLength, MaxPasswordLength)
	}
	return draw(length, c.Alphabet())
}

// Token is Password with the wider token length range.
func Token(length int, c Charset) (string, error) {
	if length < MinTokenLength || length > MaxTokenLength {
		return "", apperr.Validationf("Token length must be between %d and %d.", MinTokenLength, MaxTokenLength)
	}
	return draw(length, c.Alphabet())
}

func draw(length int, alphabet string) (string, error) {
	if alphabet == "" {
		return "", ErrNoCharset
	}
	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(random, limit)
		if err != nil {
			return "", apperr.Transient(fmt.Errorf("read entropy: %w", err), "Could not gather randomness. Try again.")
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// EntropyBits estimates the entropy of a token drawn from c.
func EntropyBits(length int, c Charset) int {
	n := len(c.Alphabet())
	if n == 0 || length <= 0 {
		return 0
	}
	return int(math.Floor(float64(length) * math.Log2(float64(n))))
}

// GenerationStrength grades generator settings before anything is drawn.
func GenerationStrength(length int, c Charset) string {
	score := 0
	if length >= 12 {
		score++
	}
	if length >= 16 {
		score++
	}
	if c.Upper && c.Lower {
		score++
	}
	if c.Numbers {
		score++
	}
	if c.Symbols {
		score++
	}
	switch {
	case score <= 2:
		return "Weak"
	case score == 3:
		return "Medium"
	case score == 4:
		return "Strong"
	default:
		return "Very Strong"
	}
}

// Checks are the individual strength criteria.
type Checks struct {
	Length  bool `json:"length"`
	Upper   bool `json:"upper"`
	Lower   bool `json:"lower"`
	Number  bool `json:"number"`
	Special bool `json:"special"`
}

// Analysis grades an existing password.
type Analysis struct {
	Checks    Checks `json:"checks"`
	Score     int    `json:"score"`
	Label     string `json:"label"`
	CrackTime string `json:"crack_time"`
}

var (
	reUpper   = regexp.MustCompile(`[A-Z]`)
	reLower   = regexp.MustCompile(`[a-z]`)
	reNumber  = regexp.MustCompile(`[0-9]`)
	reSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

var strengthLabels = [...]string{"Very Weak", "Very Weak", "Weak", "Medium", "Strong", "Exceptional"}

// Strength scores password out of five.
func Strength(password string) Analysis {
	c := Checks{
		Length:  len([]rune(password)) >= 10,
		Upper:   reUpper.MatchString(password),
		Lower:   reLower.MatchString(password),
		Number:  reNumber.MatchString(password),
		Special: reSpecial.MatchString(password),
	}
	score := 0
	for _, ok := range []bool{c.Length, c.Upper, c.Lower, c.Number, c.Special} {
		if ok {
			score++
		}
	}
	return Analysis{
		Checks:    c,
		Score:     score,
		Label:     strengthLabels[score],
		CrackTime: crackTime(password),
	}
}

func crackTime(password string) string {
	switch n := len([]rune(password)); {
	case n > 12:
		return "Over 100 years"
	case n > 8:
		return "Weeks"
	default:
		return "Seconds"
	}
}

// UUID output formats.
const (
	UUIDStandard  = "standard"
	UUIDUppercase = "uppercase"
	UUIDNoHyphens = "nohyphens"
)

// UUIDs returns count random (version 4) UUIDs; count is clamped to
// 1..100.
func UUIDs(count int, format string) ([]string, error) {
	count = max(1, min(100, count))
	out := make([]string, count)
	for i := range out {
		id, err := uuid.NewRandomFromReader(random)
		if err != nil {
			return nil, apperr.Transient(fmt.Errorf("uuid: %w", err), "Could not gather randomness. Try again.")
		}
		s := id.String()
		switch format {
		case "", UUIDStandard:
		case UUIDUppercase:
			s = strings.ToUpper(s)
		case UUIDNoHyphens:
			s = strings.ReplaceAll(s, "-", "")
		default:
			return nil, apperr.Validationf("Unknown UUID format %q.", format)
		}
		out[i] = s
	}
	return out, nil
}

// Bcrypt cost limits.
const (
	DefaultBcryptCost = 10
	MinBcryptCost     = 4
	MaxBcryptCost     = 15
)

// BcryptHash hashes password at cost.
func BcryptHash(password string, cost int) (string, error) {
	if password == "" {
		return "", apperr.ErrEmptyInput
	}
	if cost < MinBcryptCost || cost > MaxBcryptCost {
		return "", apperr.Validationf("Rounds must be between %d and %d.", MinBcryptCost, MaxBcryptCost)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", apperr.Validation(err, "Password could not be hashed (bcrypt accepts at most 72 bytes).")
	}
	return string(h), nil
}

// BcryptVerify reports whether password matches hash.
func BcryptVerify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, apperr.Validation(err, "That is not a valid bcrypt hash.")
	}
}
