// Package tools dispatches text tools by catalog id. The CLI `text`
// command and the HTTP `POST /api/text/:id` route both go through
// Registry.Run.
package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/tools/codec"
	"github.com/AnyUserName/stylo-cli/internal/tools/csvjson"
	"github.com/AnyUserName/stylo-cli/internal/tools/digest"
	"github.com/AnyUserName/stylo-cli/internal/tools/htmlcheck"
	"github.com/AnyUserName/stylo-cli/internal/tools/jsonfmt"
	"github.com/AnyUserName/stylo-cli/internal/tools/jwt"
	"github.com/AnyUserName/stylo-cli/internal/tools/lines"
	"github.com/AnyUserName/stylo-cli/internal/tools/lorem"
	"github.com/AnyUserName/stylo-cli/internal/tools/minify"
	"github.com/AnyUserName/stylo-cli/internal/tools/regextest"
	"github.com/AnyUserName/stylo-cli/internal/tools/secret"
	"github.com/AnyUserName/stylo-cli/internal/tools/seo"
	"github.com/AnyUserName/stylo-cli/internal/tools/sqlfmt"
	"github.com/AnyUserName/stylo-cli/internal/tools/textcase"
	"github.com/AnyUserName/stylo-cli/internal/tools/textdiff"
	"github.com/AnyUserName/stylo-cli/internal/tools/textstat"
	"github.com/AnyUserName/stylo-cli/internal/tools/timestamp"
	"github.com/AnyUserName/stylo-cli/internal/tools/units"
	"github.com/AnyUserName/stylo-cli/internal/tools/yamljson"
	"github.com/spf13/cast"
)

// Request is one tool invocation. Options come from CLI flags or a JSON
// body, so values are converted leniently.
type Request struct {
	Input   string         `json:"input"`
	Options map[string]any `json:"options,omitempty"`

	ctx context.Context
}

// Context is the context the request was run with.
func (r Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// String returns option key, or def when unset.
func (r Request) String(key, def string) string {
	if v, ok := r.Options[key]; ok && v != nil {
		if s := cast.ToString(v); s != "" {
			return s
		}
	}
	return def
}

// Int returns option key as an int, or def when unset or malformed.
func (r Request) Int(key string, def int) int {
	if v, ok := r.Options[key]; ok {
		if n, err := cast.ToIntE(v); err == nil {
			return n
		}
	}
	return def
}

// Bool returns option key as a bool, or def when unset or malformed.
func (r Request) Bool(key string, def bool) bool {
	if v, ok := r.Options[key]; ok {
		if b, err := cast.ToBoolE(v); err == nil {
			return b
		}
	}
	return def
}

// Strings returns option key as a list. Comma-separated strings split.
func (r Request) Strings(key string) []string {
	v, ok := r.Options[key]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		v = strings.Split(s, ",")
	}
	var out []string
	for _, s := range cast.ToStringSlice(v) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Response carries the printable output plus optional structured data.
type Response struct {
	Output string `json:"output"`
	Data   any    `json:"data,omitempty"`
}

// Func runs one tool.
type Func func(Request) (Response, error)

// Tool binds a catalog id to its implementation.
type Tool struct {
	ID      string
	Actions []string
	Run     Func
}

// Registry holds the runnable text tools.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry returns a registry with every built-in text tool.
func NewRegistry() *Registry {
	return NewRegistryWith(builtin()...)
}

// NewRegistryWith builds a registry from the given tools.
func NewRegistryWith(all ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(all))}
	for _, t := range all {
		r.tools[t.ID] = t
	}
	return r
}

// Get returns the tool registered under id.
func (r *Registry) Get(id string) (Tool, bool) {
	t, ok := r.tools[id]
	return t, ok
}

// IDs lists registered ids, sorted.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.tools))
	for id := range r.tools {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Run executes tool id. Unknown ids are validation errors. Network
// lookups stop when ctx is done.
func (r *Registry) Run(ctx context.Context, id string, req Request) (Response, error) {
	t, ok := r.tools[id]
	if !ok {
		return Response{}, apperr.Validationf("No text tool named %q.", id)
	}
	req.ctx = ctx
	return t.Run(req)
}

func text(s string) (Response, error) { return Response{Output: s}, nil }

func action(req Request, t Tool) (string, error) {
	a := req.String("action", t.Actions[0])
	for _, known := range t.Actions {
		if a == known {
			return a, nil
		}
	}
	return "", apperr.Validationf("Unknown action %q for %s. Choose one of: %s.", a, t.ID, strings.Join(t.Actions, ", "))
}

// actionTool builds a Tool whose behaviour depends on the "action"
// option. The first action is the default.
func actionTool(id string, run map[string]Func, order ...string) Tool {
	t := Tool{ID: id, Actions: order}
	t.Run = func(req Request) (Response, error) {
		a, err := action(req, t)
		if err != nil {
			return Response{}, err
		}
		return run[a](req)
	}
	return t
}

func nonEmpty(req Request) error {
	if strings.TrimSpace(req.Input) == "" {
		return apperr.ErrEmptyInput
	}
	return nil
}

func charset(req Request) secret.Charset {
	return secret.Charset{
		Upper:   req.Bool("upper", true),
		Lower:   req.Bool("lower", true),
		Numbers: req.Bool("numbers", true),
		Symbols: req.Bool("symbols", true),
	}
}

func builtin() []Tool {
	return append([]Tool{
		{ID: "case-converter", Run: func(req Request) (Response, error) {
			out, err := textcase.Apply(req.String("mode", "upper"), req.Input)
			return Response{Output: out}, err
		}},
		{ID: "text-formatter", Run: func(req Request) (Response, error) {
			out, err := textcase.Apply(req.String("mode", "extra-spaces"), req.Input)
			return Response{Output: out}, err
		}},
		{ID: "word-counter", Run: func(req Request) (Response, error) {
			w := textstat.CountWords(req.Input)
			return Response{
				Output: fmt.Sprintf("%d words, %d characters, %d sentences, %d paragraphs, ~%d min read",
					w.Words, w.Characters, w.Sentences, w.Paragraphs, w.ReadingMinutes),
				Data: w,
			}, nil
		}},
		{ID: "line-counter", Run: func(req Request) (Response, error) {
			l := textstat.CountLines(req.Input)
			return Response{
				Output: fmt.Sprintf("%d lines (%d non-empty, %d empty)", l.Total, l.NonEmpty, l.Empty),
				Data:   l,
			}, nil
		}},
		{ID: "text-diff", Run: func(req Request) (Response, error) {
			other := req.String("other", "")
			rows := textdiff.Compare(req.Input, other)
			stats := textdiff.Summarize(rows)
			return Response{
				Output: textdiff.Render(textdiff.Unified(req.Input, other)),
				Data:   map[string]any{"rows": rows, "stats": stats},
			}, nil
		}},
		{ID: "duplicate-remover", Run: func(req Request) (Response, error) {
			res := lines.Dedupe(req.Input, lines.DedupeOptions{
				CaseSensitive: req.Bool("case_sensitive", true),
				TrimLines:     req.Bool("trim", true),
				RemoveEmpty:   req.Bool("remove_empty", true),
			})
			out := res.Lines
			switch req.String("sort", "") {
			case "asc":
				out = lines.SortNatural(out, false)
			case "desc":
				out = lines.SortNatural(out, true)
			}
			return Response{Output: strings.Join(out, "\n"), Data: res}, nil
		}},
		{ID: "string-trimmer", Run: func(req Request) (Response, error) {
			out, err := lines.Trim(req.String("op", "trim"), req.Input)
			return Response{Output: out}, err
		}},
		{ID: "lorem-ipsum", Run: func(req Request) (Response, error) {
			out, err := lorem.New(nil).Generate(req.String("unit", lorem.Paragraphs), req.Int("count", 3))
			return Response{Output: out}, err
		}},
		actionTool("json-formatter", map[string]Func{
			"format": func(req Request) (Response, error) {
				out, err := jsonfmt.Format(req.Input, req.Int("indent", 2))
				return Response{Output: out}, err
			},
			"minify": func(req Request) (Response, error) {
				out, err := jsonfmt.Minify(req.Input)
				return Response{Output: out}, err
			},
			"validate": func(req Request) (Response, error) {
				if err := jsonfmt.Validate(req.Input); err != nil {
					return Response{}, err
				}
				return text("Valid JSON")
			},
		}, "format", "minify", "validate"),
		{ID: "code-minifier", Run: func(req Request) (Response, error) {
			out, err := minify.Minify(req.String("lang", minify.JavaScript), req.Input)
			if err != nil {
				return Response{}, err
			}
			before, _ := minify.Stats(req.Input)
			after, _ := minify.Stats(out)
			return Response{Output: out, Data: map[string]int{"before": before, "after": after}}, nil
		}},
		{ID: "sql-formatter", Run: func(req Request) (Response, error) {
			return text(sqlfmt.Format(req.Input))
		}},
		{ID: "regex-tester", Run: func(req Request) (Response, error) {
			res, err := regextest.Run(req.String("pattern", ""), req.String("flags", "g"), req.Input)
			if err != nil {
				return Response{}, err
			}
			return Response{Output: fmt.Sprintf("%d found\n%s", len(res.Matches), res.Highlighted), Data: res}, nil
		}},
		actionTool("base64", map[string]Func{
			"encode": func(req Request) (Response, error) { return text(codec.Base64Encode(req.Input)) },
			"decode": func(req Request) (Response, error) {
				out, err := codec.Base64Decode(req.Input)
				return Response{Output: out}, err
			},
		}, "encode", "decode"),
		actionTool("url-encoder", map[string]Func{
			"encode": func(req Request) (Response, error) { return text(codec.URLEncode(req.Input)) },
			"decode": func(req Request) (Response, error) {
				out, err := codec.URLDecode(req.Input)
				return Response{Output: out}, err
			},
		}, "encode", "decode"),
		actionTool("html-entities", map[string]Func{
			"encode": func(req Request) (Response, error) { return text(codec.HTMLEncode(req.Input)) },
			"decode": func(req Request) (Response, error) { return text(codec.HTMLDecode(req.Input)) },
		}, "encode", "decode"),
		actionTool("yaml-json", map[string]Func{
			"to-json": func(req Request) (Response, error) {
				out, err := yamljson.ToJSON(req.Input)
				return Response{Output: out}, err
			},
			"to-yaml": func(req Request) (Response, error) {
				out, err := yamljson.FromJSON(req.Input)
				return Response{Output: out}, err
			},
		}, "to-json", "to-yaml"),
		{ID: "csv-json", Run: func(req Request) (Response, error) {
			out, err := csvjson.ToJSONText(req.Input)
			return Response{Output: out}, err
		}},
		{ID: "json-to-csv", Run: func(req Request) (Response, error) {
			out, err := csvjson.ToCSV(req.Input)
			return Response{Output: out}, err
		}},
		{ID: "unit-converter", Run: func(req Request) (Response, error) {
			out, err := units.Convert(req.Input, req.String("from", "m"), req.String("to", "km"))
			return Response{Output: out}, err
		}},
		actionTool("timestamp-converter", map[string]Func{
			"to-date": func(req Request) (Response, error) {
				out, err := timestamp.FromUnix(req.Input)
				return Response{Output: out}, err
			},
			"to-unix": func(req Request) (Response, error) {
				out, err := timestamp.ToUnix(req.Input)
				return Response{Output: out}, err
			},
			"now": func(Request) (Response, error) { return text(timestamp.Now()) },
		}, "to-date", "to-unix", "now"),
		{ID: "password-generator", Run: func(req Request) (Response, error) {
			n, cs := req.Int("length", secret.DefaultPasswordLength), charset(req)
			out, err := secret.Password(n, cs)
			if err != nil {
				return Response{}, err
			}
			return Response{Output: out, Data: map[string]any{
				"strength":     secret.GenerationStrength(n, cs),
				"entropy_bits": secret.EntropyBits(n, cs),
			}}, nil
		}},
		{ID: "secure-token", Run: func(req Request) (Response, error) {
			n, cs := req.Int("length", secret.DefaultTokenLength), charset(req)
			out, err := secret.Token(n, cs)
			if err != nil {
				return Response{}, err
			}
			return Response{Output: out, Data: map[string]int{"entropy_bits": secret.EntropyBits(n, cs)}}, nil
		}},
		{ID: "password-strength", Run: func(req Request) (Response, error) {
			if req.Input == "" {
				return Response{}, apperr.ErrEmptyInput
			}
			a := secret.Strength(req.Input)
			return Response{Output: fmt.Sprintf("%s (%d/5), crack time: %s", a.Label, a.Score, a.CrackTime), Data: a}, nil
		}},
		{ID: "uuid-generator", Run: func(req Request) (Response, error) {
			ids, err := secret.UUIDs(req.Int("count", 1), req.String("format", secret.UUIDStandard))
			if err != nil {
				return Response{}, err
			}
			return Response{Output: strings.Join(ids, "\n"), Data: ids}, nil
		}},
		actionTool("bcrypt-generator", map[string]Func{
			"hash": func(req Request) (Response, error) {
				out, err := secret.BcryptHash(req.Input, req.Int("cost", secret.DefaultBcryptCost))
				return Response{Output: out}, err
			},
			"verify": func(req Request) (Response, error) {
				ok, err := secret.BcryptVerify(req.Input, req.String("hash", ""))
				if err != nil {
					return Response{}, err
				}
				if ok {
					return Response{Output: "Match", Data: true}, nil
				}
				return Response{Output: "No match", Data: false}, nil
			},
		}, "hash", "verify"),
		{ID: "hash-generator", Run: func(req Request) (Response, error) {
			if alg := req.String("algorithm", ""); alg != "" {
				out, err := digest.Sum(alg, []byte(req.Input))
				return Response{Output: out}, err
			}
			all := digest.All([]byte(req.Input))
			var b strings.Builder
			for _, r := range all {
				fmt.Fprintf(&b, "%-8s %s\n", r.Algorithm, r.Hex)
			}
			return Response{Output: strings.TrimSuffix(b.String(), "\n"), Data: all}, nil
		}},
		actionTool("jwt-decoder", map[string]Func{
			"decode": func(req Request) (Response, error) {
				d, err := jwt.Decode(req.Input)
				if err != nil {
					return Response{}, err
				}
				return Response{Output: d.Header + "\n" + d.Payload, Data: d}, nil
			},
			"encode": func(req Request) (Response, error) {
				out, err := jwt.Encode(req.String("header", jwt.DefaultHeader), req.Input, req.String("secret", ""))
				return Response{Output: out}, err
			},
			"verify": func(req Request) (Response, error) {
				ok, err := jwt.Verify(req.Input, req.String("secret", ""))
				if err != nil {
					return Response{}, err
				}
				if ok {
					return Response{Output: "Signature verified", Data: true}, nil
				}
				return Response{Output: "Invalid signature", Data: false}, nil
			},
		}, "decode", "encode", "verify"),
		actionTool("html-validator", map[string]Func{
			"validate": func(req Request) (Response, error) {
				if err := nonEmpty(req); err != nil {
					return Response{}, err
				}
				issues := htmlcheck.Validate(req.Input)
				if len(issues) == 0 {
					return Response{Output: "No issues found", Data: issues}, nil
				}
				var b strings.Builder
				for _, is := range issues {
					fmt.Fprintf(&b, "%s: %s\n", is.Severity, is.Message)
				}
				return Response{Output: strings.TrimSuffix(b.String(), "\n"), Data: issues}, nil
			},
			"format": func(req Request) (Response, error) { return text(htmlcheck.Format(req.Input)) },
		}, "validate", "format"),
		{ID: "meta-tag-generator", Run: func(req Request) (Response, error) {
			return text(seo.MetaTags(seo.Meta{
				Title:       req.String("title", req.Input),
				Description: req.String("description", ""),
				Keywords:    req.String("keywords", ""),
				Author:      req.String("author", ""),
				OGType:      req.String("og_type", ""),
				URL:         req.String("url", ""),
				Image:       req.String("image", ""),
				TwitterCard: req.String("twitter_card", ""),
			}))
		}},
		{ID: "robots-generator", Run: func(req Request) (Response, error) {
			rule := seo.RobotsRule{
				UserAgent: req.String("user_agent", "*"),
				Allow:     req.Strings("allow"),
				Disallow:  req.Strings("disallow"),
			}
			if _, set := req.Options["disallow"]; !set {
				rule.Disallow = seo.DefaultRobotsRule.Disallow
			}
			out, err := seo.Robots([]seo.RobotsRule{rule}, req.String("sitemap", ""))
			return Response{Output: out}, err
		}},
		{ID: "sitemap-generator", Run: func(req Request) (Response, error) {
			var urls []seo.SitemapURL
			for _, l := range strings.Split(req.Input, "\n") {
				urls = append(urls, seo.SitemapURL{
					Loc:        strings.TrimSpace(l),
					ChangeFreq: req.String("changefreq", ""),
					Priority:   req.String("priority", ""),
				})
			}
			out, err := seo.Sitemap(urls)
			return Response{Output: out}, err
		}},
	}, webTools()...)
}
