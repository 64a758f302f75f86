// Package jwt decodes, builds and checks JSON Web Tokens signed with an
// HMAC-SHA2 family algorithm.
package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
	"strings"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/tools/jsonvalue"
)

// DefaultHeader is the header a new token starts with.
const DefaultHeader = `{"alg":"HS256","typ":"JWT"}`

var b64 = base64.RawURLEncoding

var algorithms = map[string]func() hash.Hash{
	"HS256": sha256.New,
	"HS384": sha512.New384,
	"HS512": sha512.New,
}

// Decoded is a token split into its parts. Header and Payload are
// pretty-printed JSON.
type Decoded struct {
	Header    string     `json:"header"`
	Payload   string     `json:"payload"`
	Signature string     `json:"signature"`
	Algorithm string     `json:"alg,omitempty"`
	IssuedAt  *time.Time `json:"iat,omitempty"`
	ExpiresAt *time.Time `json:"exp,omitempty"`
}

// Expired reports whether the exp claim is in the past relative to now.
func (d Decoded) Expired(now time.Time) bool {
	return d.ExpiresAt != nil && now.After(*d.ExpiresAt)
}

// Decode splits token and base64url-decodes header and payload. The
// signature is not checked.
func Decode(token string) (*Decoded, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) < 2 {
		return nil, apperr.Validationf("A JWT has three dot-separated parts.")
	}
	header, err := decodePart(parts[0], "header")
	if err != nil {
		return nil, err
	}
	payload, err := decodePart(parts[1], "payload")
	if err != nil {
		return nil, err
	}

	d := &Decoded{}
	if len(parts) > 2 {
		d.Signature = parts[2]
	}
	if alg, ok := header.Get("alg"); ok {
		d.Algorithm = alg.Str()
	}
	d.IssuedAt = unixClaim(payload, "iat")
	d.ExpiresAt = unixClaim(payload, "exp")

	h, _ := header.Indent("  ")
	p, _ := payload.Indent("  ")
	d.Header, d.Payload = string(h), string(p)
	return d, nil
}

func decodePart(part, name string) (jsonvalue.Value, error) {
	raw, err := b64.DecodeString(strings.TrimRight(part, "="))
	if err != nil {
		return jsonvalue.Value{}, apperr.Validation(fmt.Errorf("%s: %w", name, err), fmt.Sprintf("The %s is not valid base64url.", name))
	}
	v, err := jsonvalue.Parse(raw)
	if err != nil {
		return jsonvalue.Value{}, apperr.Validation(fmt.Errorf("%s: %w", name, err), fmt.Sprintf("The %s is not valid JSON.", name))
	}
	return v, nil
}

func unixClaim(payload jsonvalue.Value, name string) *time.Time {
	v, ok := payload.Get(name)
	if !ok || v.Kind() != jsonvalue.Number {
		return nil
	}
	secs, err := v.Number().Float64()
	if err != nil {
		return nil
	}
	t := time.Unix(int64(secs), 0).UTC()
	return &t
}

// Encode builds a token from header and payload JSON. With a secret the
// token is signed using the header's alg (HS256 when absent); without one
// the header's alg becomes "none" and the signature part is left empty.
func Encode(headerJSON, payloadJSON, secret string) (string, error) {
	header, err := jsonvalue.Parse([]byte(headerJSON))
	if err != nil || header.Kind() != jsonvalue.Object {
		return "", apperr.Validationf("Invalid JSON format")
	}
	payload, err := jsonvalue.Parse([]byte(payloadJSON))
	if err != nil {
		return "", apperr.Validationf("Invalid JSON format")
	}

	alg := "HS256"
	if v, ok := header.Get("alg"); ok && v.Str() != "" {
		alg = v.Str()
	}
	if secret == "" {
		header.Set("alg", jsonvalue.StringValue("none"))
	}
	hb, _ := header.MarshalJSON()
	pb, _ := payload.MarshalJSON()
	signingInput := b64.EncodeToString(hb) + "." + b64.EncodeToString(pb)
	if secret == "" {
		return signingInput + ".", nil
	}
	sig, err := sign(alg, signingInput, secret)
	if err != nil {
		return "", err
	}
	return signingInput + "." + sig, nil
}

// Verify checks the token's HMAC signature against secret.
func Verify(token, secret string) (bool, error) {
	token = strings.TrimSpace(token)
	d, err := Decode(token)
	if err != nil {
		return false, err
	}
	i := strings.LastIndex(token, ".")
	if i < 0 || d.Signature == "" {
		return false, nil
	}
	want, err := sign(d.Algorithm, token[:i], secret)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(want), []byte(d.Signature)), nil
}

var errUnsupportedAlg = errors.New("unsupported alg")

func sign(alg, input, secret string) (string, error) {
	newHash, ok := algorithms[alg]
	if !ok {
		return "", apperr.Validation(fmt.Errorf("%w %q", errUnsupportedAlg, alg), fmt.Sprintf("Signing with %q is not supported (use HS256, HS384 or HS512).", alg))
	}
	mac := hmac.New(newHash, []byte(secret))
	mac.Write([]byte(input))
	return b64.EncodeToString(mac.Sum(nil)), nil
}
