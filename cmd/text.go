package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/catalog"
	"github.com/AnyUserName/stylo-cli/internal/tools"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	inputFile  string
	inputPaste bool
	outputCopy bool
	outputJSON bool
	textOpts   []string

	registry = tools.NewRegistry()
)

var textCmd = &cobra.Command{
	Use:   "text <tool> [input...]",
	Short: "Run any text tool by catalog id",
	Long: `Runs a text tool from the catalog. Input comes from the remaining
arguments, --file, --paste or stdin, in that order. Tool options are
passed as -O key=value; multi-mode tools take -O action=<mode>.

Tools: ` + strings.Join(registry.IDs(), ", "),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := map[string]any{}
		for _, kv := range textOpts {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return apperr.Validationf("Option %q must look like key=value.", kv)
			}
			opts[strings.TrimSpace(k)] = v
		}
		return runTool(cmd.Context(), args[0], args[1:], opts, false)
	},
}

func init() {
	textCmd.Flags().StringArrayVarP(&textOpts, "opt", "O", nil, "tool option as key=value (repeatable)")
	addIOFlags(textCmd)
	rootCmd.AddCommand(textCmd)
}

func addIOFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&inputFile, "file", "i", "", "read input from a file")
	f.BoolVar(&inputPaste, "paste", false, "read input from the clipboard")
	f.BoolVar(&outputCopy, "copy", false, "copy the output to the clipboard")
	f.BoolVar(&outputJSON, "json", false, "print the full result as JSON")
}

// readInput resolves the tool input. A terminal stdin is never read so
// generators do not block.
func readInput(args []string, skipStdin bool) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", apperr.Transient(fmt.Errorf("read %s: %w", inputFile, err), "The input file could not be read.")
		}
		return string(data), nil
	case inputPaste:
		text, err := clipboard.ReadAll()
		if err != nil {
			logger.Warn("clipboard read failed", zap.Error(err))
			return "", nil
		}
		return text, nil
	case skipStdin:
		return "", nil
	}
	fi, err := os.Stdin.Stat()
	if err != nil || fi.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", apperr.Transient(fmt.Errorf("read stdin: %w", err), "Standard input could not be read.")
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

func runTool(ctx context.Context, id string, args []string, opts map[string]any, skipStdin bool) error {
	input, err := readInput(args, skipStdin)
	if err != nil {
		return err
	}
	logger.Debug("run tool", zap.String("tool", id), zap.Int("input_len", len(input)), zap.Any("options", opts))
	res, err := registry.Run(ctx, id, tools.Request{Input: input, Options: opts})
	if err != nil {
		return err
	}
	return emit(res)
}

func emit(res tools.Response) error {
	if outputJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Println(res.Output)
	}
	if outputCopy {
		if err := clipboard.WriteAll(res.Output); err != nil {
			logger.Warn("clipboard write failed", zap.Error(err))
		} else {
			logVerbose("copied %d bytes to the clipboard", len(res.Output))
		}
	}
	return nil
}

// option is one tool option exposed as a flag. Only flags the user set
// are forwarded, so the tool's own defaults apply otherwise.
type option struct {
	flag    string
	def     string
	usage   string
	boolean bool
}

func (o option) key() string { return strings.ReplaceAll(o.flag, "-", "_") }

// shortcut is a named command bound to one text tool.
type shortcut struct {
	use     string
	tool    string
	short   string
	action  string // fixed "action" option
	noInput bool
	opts    []option

	// resolve picks the tool from the collected options; nil uses tool.
	resolve func(opts map[string]any) string
}

func (s shortcut) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   s.use,
		Short: s.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := map[string]any{}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				for _, o := range s.opts {
					if o.flag == f.Name {
						opts[o.key()] = f.Value.String()
					}
				}
			})
			if s.action != "" {
				opts["action"] = s.action
			}
			id := s.tool
			if s.resolve != nil {
				id = s.resolve(opts)
			}
			return runTool(cmd.Context(), id, args, opts, s.noInput)
		},
	}
	if e, ok := catalog.Get(s.tool); ok {
		cmd.Long = e.Name + ": " + e.Description
	}
	for _, o := range s.opts {
		cmd.Flags().String(o.flag, o.def, o.usage)
		if o.boolean {
			cmd.Flags().Lookup(o.flag).NoOptDefVal = "true"
		}
	}
	addIOFlags(cmd)
	return cmd
}

var charsetOpts = []option{
	{flag: "upper", def: "true", usage: "include A-Z", boolean: true},
	{flag: "lower", def: "true", usage: "include a-z", boolean: true},
	{flag: "numbers", def: "true", usage: "include 0-9", boolean: true},
	{flag: "symbols", def: "true", usage: "include symbols", boolean: true},
}

func withCharset(length string) []option {
	return append([]option{{flag: "length", def: length, usage: "number of characters"}}, charsetOpts...)
}

func pickCodec(opts map[string]any) string {
	as, _ := opts["as"].(string)
	delete(opts, "as")
	switch as {
	case "url":
		return "url-encoder"
	case "html":
		return "html-entities"
	default:
		return "base64"
	}
}

var shortcuts = []shortcut{
	{use: "case [text...]", tool: "case-converter", short: "Convert text case",
		opts: []option{{flag: "mode", def: "upper", usage: "upper, lower, title, sentence, camel, pascal, snake, kebab, constant, alternating, reverse"}}},
	{use: "format-text [text...]", tool: "text-formatter", short: "Clean up whitespace and punctuation",
		opts: []option{{flag: "mode", def: "extra-spaces", usage: "extra-spaces, line-breaks, numbers or punctuation"}}},
	{use: "count [text...]", tool: "word-counter", short: "Count words, characters, sentences and lines",
		opts: []option{{flag: "lines", def: "false", usage: "count lines instead", boolean: true}},
		resolve: func(opts map[string]any) string {
			lines := opts["lines"] == "true"
			delete(opts, "lines")
			if lines {
				return "line-counter"
			}
			return "word-counter"
		}},
	{use: "dedupe [text...]", tool: "duplicate-remover", short: "Remove duplicate lines",
		opts: []option{
			{flag: "case-sensitive", def: "true", usage: "treat case differences as distinct", boolean: true},
			{flag: "trim", def: "true", usage: "trim lines before comparing", boolean: true},
			{flag: "remove-empty", def: "true", usage: "drop empty lines", boolean: true},
			{flag: "sort", usage: "sort the result: asc or desc"},
		}},
	{use: "trim [text...]", tool: "string-trimmer", short: "Trim and normalize whitespace",
		opts: []option{{flag: "op", def: "trim", usage: "trim, trim-start, trim-end, no-spaces, single-spaces, remove-empty, unique, sort-asc, sort-desc, reverse"}}},
	{use: "lorem", tool: "lorem-ipsum", short: "Generate placeholder text", noInput: true,
		opts: []option{
			{flag: "unit", def: "paragraphs", usage: "words, sentences or paragraphs"},
			{flag: "count", def: "3", usage: "how many units (1-100)"},
		}},
	{use: "json [json...]", tool: "json-formatter", short: "Format, minify or validate JSON",
		opts: []option{
			{flag: "action", def: "format", usage: "format, minify or validate"},
			{flag: "indent", def: "2", usage: "indent width"},
		}},
	{use: "minify [code...]", tool: "code-minifier", short: "Minify JavaScript, CSS or HTML",
		opts: []option{{flag: "lang", def: "javascript", usage: "javascript, css or html"}}},
	{use: "sql [query...]", tool: "sql-formatter", short: "Format SQL"},
	{use: "regex [text...]", tool: "regex-tester", short: "Test a regular expression against text",
		opts: []option{
			{flag: "pattern", usage: "regular expression"},
			{flag: "flags", def: "g", usage: "g, i, m, s"},
		}},
	{use: "encode [text...]", tool: "base64", short: "Encode as base64, URL or HTML entities", action: "encode",
		opts:    []option{{flag: "as", def: "base64", usage: "base64, url or html"}},
		resolve: pickCodec},
	{use: "decode [text...]", tool: "base64", short: "Decode base64, URL or HTML entities", action: "decode",
		opts:    []option{{flag: "as", def: "base64", usage: "base64, url or html"}},
		resolve: pickCodec},
	{use: "yaml2json [yaml...]", tool: "yaml-json", short: "Convert YAML to JSON", action: "to-json"},
	{use: "json2yaml [json...]", tool: "yaml-json", short: "Convert JSON to YAML", action: "to-yaml"},
	{use: "csv2json [csv...]", tool: "csv-json", short: "Convert CSV to JSON"},
	{use: "json2csv [json...]", tool: "json-to-csv", short: "Convert a JSON array to CSV"},
	{use: "convert <value>", tool: "unit-converter", short: "Convert length, weight or temperature",
		opts: []option{
			{flag: "from", def: "m", usage: "source unit"},
			{flag: "to", def: "km", usage: "target unit"},
		}},
	{use: "timestamp [value]", tool: "timestamp-converter", short: "Convert between Unix timestamps and dates",
		opts: []option{{flag: "action", def: "to-date", usage: "to-date, to-unix or now"}}},
	{use: "password", tool: "password-generator", short: "Generate a random password", noInput: true,
		opts: withCharset("16")},
	{use: "token", tool: "secure-token", short: "Generate a secure random token", noInput: true,
		opts: withCharset("32")},
	{use: "strength [password]", tool: "password-strength", short: "Estimate password strength"},
	{use: "uuid", tool: "uuid-generator", short: "Generate UUIDs", noInput: true,
		opts: []option{
			{flag: "count", def: "1", usage: "how many"},
			{flag: "format", def: "standard", usage: "standard, uppercase or nohyphens"},
		}},
	{use: "bcrypt [password]", tool: "bcrypt-generator", short: "Hash or verify a password with bcrypt",
		opts: []option{
			{flag: "action", def: "hash", usage: "hash or verify"},
			{flag: "cost", def: "10", usage: "work factor"},
			{flag: "hash", usage: "hash to verify against"},
		}},
	{use: "hash [text...]", tool: "hash-generator", short: "Compute message digests",
		opts: []option{{flag: "algorithm", usage: "single algorithm (default: all)"}}},
	{use: "jwt [token]", tool: "jwt-decoder", short: "Decode, sign or verify a JWT",
		opts: []option{
			{flag: "action", def: "decode", usage: "decode, encode or verify"},
			{flag: "header", usage: "header JSON for encode"},
			{flag: "secret", usage: "HMAC secret"},
		}},
	{use: "html [markup...]", tool: "html-validator", short: "Validate or pretty-print HTML",
		opts: []option{{flag: "action", def: "validate", usage: "validate or format"}}},
	{use: "meta [title...]", tool: "meta-tag-generator", short: "Generate HTML meta tags",
		opts: []option{
			{flag: "title", usage: "page title (default: input)"},
			{flag: "description", usage: "page description"},
			{flag: "keywords", usage: "comma-separated keywords"},
			{flag: "author", usage: "author"},
			{flag: "og-type", def: "website", usage: "Open Graph type"},
			{flag: "url", usage: "canonical URL"},
			{flag: "image", usage: "preview image URL"},
			{flag: "twitter-card", def: "summary_large_image", usage: "Twitter card type"},
		}},
	{use: "robots", tool: "robots-generator", short: "Generate robots.txt", noInput: true,
		opts: []option{
			{flag: "user-agent", def: "*", usage: "user agent"},
			{flag: "allow", usage: "comma-separated allowed paths"},
			{flag: "disallow", def: "/cgi-bin/", usage: "comma-separated disallowed paths"},
			{flag: "sitemap", usage: "sitemap URL"},
		}},
	{use: "sitemap [urls...]", tool: "sitemap-generator", short: "Generate sitemap.xml from one URL per line",
		opts: []option{
			{flag: "changefreq", def: "weekly", usage: "change frequency"},
			{flag: "priority", def: "0.8", usage: "priority"},
		}},
	{use: "md2html [markdown...]", tool: "markdown-html", short: "Convert Markdown to HTML",
		opts: []option{
			{flag: "raw-html", def: "false", usage: "pass raw HTML in the source through", boolean: true},
			{flag: "heading-ids", def: "false", usage: "add id attributes to headings", boolean: true},
		}},
	{use: "color [hex]", tool: "color-picker", short: "Show a color as HEX, RGB, HSL and CMYK",
		opts: []option{{flag: "action", def: "describe", usage: "describe or random"}}},
	{use: "gradient [stops...]", tool: "gradient-generator", short: "Build a CSS gradient from \"#hex [pos], ...\"",
		opts: []option{
			{flag: "type", def: "linear", usage: "linear or radial"},
			{flag: "angle", def: "135", usage: "angle in degrees for linear gradients"},
			{flag: "reverse", def: "false", usage: "reverse the color order", boolean: true},
		}},
	{use: "tokens [hex]", tool: "color-tokens", short: "Generate shadcn/ui CSS color tokens",
		opts: []option{{flag: "mode", def: "light", usage: "light or dark"}}},
	{use: "whois <domain>", tool: "whois-lookup", short: "Look up domain registration data"},
	{use: "ip <domain>", tool: "domain-ip", short: "Resolve a domain's IPv4 and IPv6 addresses"},
}

var diffCmd = &cobra.Command{
	Use:   "diff <file1> <file2>",
	Short: "Compare two text files line by line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		b, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}
		res, err := registry.Run(cmd.Context(), "text-diff", tools.Request{Input: string(a), Options: map[string]any{"other": string(b)}})
		if err != nil {
			return err
		}
		return emit(res)
	},
}

func init() {
	for _, s := range shortcuts {
		rootCmd.AddCommand(s.command())
	}
	diffCmd.Flags().BoolVar(&outputCopy, "copy", false, "copy the output to the clipboard")
	diffCmd.Flags().BoolVar(&outputJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(diffCmd)
}
