package catalog

// entries is the full tool list in display order.
var entries = []Entry{
	{
		ID:          "image-compressor",
		Name:        "Image Compressor",
		Description: "Compress and optimize your images instantly with high-quality results. Our native engine reduces file size without losing quality, perfect for web optimization.",
		Category:    ImageTools,
		Tags:        []string{"image", "compress", "optimize", "native"},
		Available:   true,
		Native:      true,
	},
	{
		ID:          "qr-generator",
		Name:        "QR Code Generator",
		Description: "Generate custom, high-resolution QR codes for URLs, text, or contact info instantly. Perfect for marketing materials, websites, and business cards.",
		Category:    ImageTools,
		Tags:        []string{"qr", "code", "generate", "barcode"},
		Available:   true,
	},
	{
		ID:          "color-picker",
		Name:        "Color Picker",
		Description: "Professional color picker and palette generator. Extract HEX, RGB, HSL, and CMYK values with ease. A must-have tool for designers and front-end developers.",
		Category:    ImageTools,
		Tags:        []string{"color", "picker", "hex", "rgb", "palette"},
		Available:   true,
	},
	{
		ID:          "svg-to-png",
		Name:        "SVG to PNG",
		Description: "Convert scalable vector graphics (SVG) to high-quality PNG images instantly. Preserve transparency and clarity with our fast, browser-based conversion tool.",
		Category:    ImageTools,
		Tags:        []string{"svg", "png", "convert", "image"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "image-resizer",
		Name:        "Image Resizer",
		Description: "Batch resize and crop your images with pixel-perfect precision. Adjust dimensions for social media, web, or print while maintaining the perfect aspect ratio.",
		Category:    ImageTools,
		Tags:        []string{"resize", "crop", "image", "dimensions"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "exif-remover",
		Name:        "EXIF Remover",
		Description: "Protect your privacy by stripping sensitive EXIF metadata from your photos. Remove GPS coordinates, camera settings, and personal data before sharing online.",
		Category:    ImageTools,
		Tags:        []string{"exif", "metadata", "privacy", "image"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "text-formatter",
		Name:        "Text Formatter",
		Description: "Easily clean and transform your text with multiple formatting options. Remove extra spaces, fix line breaks, and prettify messy content in seconds.",
		Category:    TextTools,
		Tags:        []string{"text", "format", "case", "transform"},
		Available:   true,
	},
	{
		ID:          "word-counter",
		Name:        "Word Counter",
		Description: "Advanced word and character counter with real-time statistics. Track word count, character count, sentence count, and estimated reading time precisely.",
		Category:    TextTools,
		Tags:        []string{"word", "count", "character", "line"},
		Available:   true,
	},
	{
		ID:          "text-diff",
		Name:        "Text Diff Checker",
		Description: "Compare two pieces of text side-by-side to highlight differences instantly. Perfect for reviewing code changes, document versions, or repetitive content.",
		Category:    TextTools,
		Tags:        []string{"diff", "compare", "text", "difference"},
		Available:   true,
		Native:      true,
	},
	{
		ID:          "case-converter",
		Name:        "Case Converter",
		Description: "Instant text case conversion between UPPERCASE, lowercase, camelCase, PascalCase, and more. Clean up your variable names or document headings easily.",
		Category:    TextTools,
		Tags:        []string{"case", "uppercase", "lowercase", "camelcase"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "duplicate-remover",
		Name:        "Duplicate Remover",
		Description: "Quickly remove duplicate lines or items from any list. Clean up your datasets, email lists, or code logs with our efficient deduplication utility.",
		Category:    TextTools,
		Tags:        []string{"duplicate", "lines", "clean", "text"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "lorem-ipsum",
		Name:        "Lorem Ipsum",
		Description: "Generate customized placeholder text for your designs and mockups. Choose word, sentence, or paragraph counts to perfectly fit your layout needs.",
		Category:    TextTools,
		Tags:        []string{"lorem", "ipsum", "placeholder", "text"},
		Available:   true,
	},
	{
		ID:          "json-formatter",
		Name:        "JSON Formatter",
		Description: "Format, validate, and prettify JSON data instantly. Turn messy JSON strings into readable, well-structured objects with syntax highlighting and error checking.",
		Category:    CodeTools,
		Tags:        []string{"json", "format", "validate", "prettify"},
		Available:   true,
		Native:      true,
	},
	{
		ID:          "code-minifier",
		Name:        "Code Minifier",
		Description: "Reduce file size for JavaScript, CSS, and HTML by removing unnecessary characters. Optimize your website performance with our fast code minification tool.",
		Category:    CodeTools,
		Tags:        []string{"minify", "js", "css", "html", "code"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "sql-formatter",
		Name:        "SQL Formatter",
		Description: "Professional SQL query beautifier. Format complex SQL queries for better readability across various dialects including MySQL, PostgreSQL, and SQL Server.",
		Category:    CodeTools,
		Tags:        []string{"sql", "query", "format", "beautify"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "regex-tester",
		Name:        "Regex Tester",
		Description: "Test and debug regular expressions in real-time. Validate your patterns against sample text with instant results and clear highlight markers.",
		Category:    CodeTools,
		Tags:        []string{"regex", "pattern", "test", "match"},
		Available:   true,
		Native:      true,
	},
	{
		ID:          "base64",
		Name:        "Base64 Encoder",
		Description: "Encode and decode text or files to Base64 format securely. Essential for data transmission, embedding images, or handling binary data in web apps.",
		Category:    CodeTools,
		Tags:        []string{"base64", "encode", "decode", "convert"},
		Available:   true,
	},
	{
		ID:          "url-encoder",
		Name:        "URL Encoder",
		Description: "Encode and decode URLs to ensure safe transmission of web data. Safely handle special characters and parameters for clean, valid URI strings.",
		Category:    CodeTools,
		Tags:        []string{"url", "encode", "decode", "uri"},
		Available:   true,
	},
	{
		ID:          "markdown-html",
		Name:        "Markdown to HTML",
		Description: "Convert Markdown syntax to clean, semantic HTML instantly. Perfect for blog posts, documentation, and previewing README files with ease.",
		Category:    Converters,
		Tags:        []string{"markdown", "html", "convert", "transform"},
		Available:   true,
		Native:      true,
	},
	{
		ID:          "yaml-json",
		Name:        "YAML to JSON",
		Description: "Seamlessly convert between YAML and JSON formats. Transition your configuration files between formats while maintaining structure and data integrity.",
		Category:    Converters,
		Tags:        []string{"yaml", "json", "convert"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "csv-json",
		Name:        "CSV to JSON",
		Description: "Convert CSV data to structured JSON objects instantly. Transform spreadsheet data into developer-friendly formats for API testing or database imports.",
		Category:    Converters,
		Tags:        []string{"csv", "json", "convert", "data"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "unit-converter",
		Name:        "Unit Converter",
		Description: "All-in-one converter for length, weight, temperature, and more. Get accurate conversions across metric and imperial systems with our simple interface.",
		Category:    Converters,
		Tags:        []string{"unit", "convert", "measure", "calculate"},
		Available:   true,
	},
	{
		ID:          "password-generator",
		Name:        "Password Generator",
		Description: "Create ultra-secure, random passwords with cryptographic strength. Customize length and complexity to protect your accounts from brute-force attacks.",
		Category:    Security,
		Tags:        []string{"password", "generate", "secure", "random"},
		Available:   true,
		Native:      true,
	},
	{
		ID:          "hash-generator",
		Name:        "Hash Generator",
		Description: "Generate secure cryptographic hashes like MD5, SHA-256, and SHA-512. Perfect for verifying file integrity or securely storing sensitive data identifiers.",
		Category:    Security,
		Tags:        []string{"hash", "md5", "sha", "encrypt"},
		Available:   true,
		Native:      true,
	},
	{
		ID:          "bcrypt-generator",
		Name:        "Bcrypt Hash",
		Description: "Generate and verify Bcrypt hashes for production-grade security. Used by professional developers for secure password hashing and authentication flows.",
		Category:    Security,
		Tags:        []string{"bcrypt", "hash", "password", "security"},
		Available:   true,
		New:         true,
		Native:      true,
	},
	{
		ID:          "jwt-decoder",
		Name:        "JWT Decoder",
		Description: "Decode and inspect JSON Web Tokens (JWT) safely. View header and payload data instantly without sending your sensitive tokens to any server.",
		Category:    Security,
		Tags:        []string{"jwt", "token", "decode", "auth"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "password-strength",
		Name:        "Password Strength",
		Description: "Analyze the security level of your passwords. Get instant feedback on entropy, complexity, and potential vulnerabilities to keep your data safe.",
		Category:    Security,
		Tags:        []string{"password", "strength", "security", "leak"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "uuid-generator",
		Name:        "UUID Generator",
		Description: "Generate unique version 4 UUIDs (GUIDs) instantly. Reliable and cryptographically secure identifiers for your database entries and software projects.",
		Category:    Utility,
		Tags:        []string{"uuid", "guid", "generate", "unique"},
		Available:   true,
	},
	{
		ID:          "timestamp-converter",
		Name:        "Epoch Converter",
		Description: "Convert UNIX timestamps to human-readable dates and vice-versa. Easily handle time zones and various time formats for your development projects.",
		Category:    Utility,
		Tags:        []string{"timestamp", "epoch", "date", "time"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "favicon-generator",
		Name:        "Favicon Gen",
		Description: "Create professional favicons for your website from images or text. Generate all necessary sizes and formats, including ICO and PNG files, in seconds.",
		Category:    Utility,
		Tags:        []string{"favicon", "icon", "website", "generate"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "whois-lookup",
		Name:        "Whois Lookup",
		Description: "Perform instant WHOIS lookups to get domain registration details. Check ownership, expiration dates, and nameserver info for any domain name.",
		Category:    Utility,
		Tags:        []string{"whois", "domain", "lookup", "info"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "robots-generator",
		Name:        "Robots.txt Gen",
		Description: "Easily generate custom robots.txt files to manage search engine crawling. Protect sensitive areas of your site and improve SEO with proper directives.",
		Category:    SEOTools,
		Tags:        []string{"seo", "robots", "crawler", "search"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "sitemap-generator",
		Name:        "Sitemap Gen",
		Description: "Generate XML sitemaps to help search engines index your website efficiently. Ensure all your important pages are discovered and ranked properly.",
		Category:    SEOTools,
		Tags:        []string{"seo", "sitemap", "xml", "search"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "html-validator",
		Name:        "HTML Validator",
		Description: "Check your HTML code for errors and SEO best practices. Improve page load speed and search ranking by ensuring clean, valid, and semantic markup.",
		Category:    SEOTools,
		Tags:        []string{"seo", "html", "validate", "audit"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "meta-tag-generator",
		Name:        "Meta Tag Gen",
		Description: "Generate all essential SEO meta tags including Title, Description, and Open Graph. Boost your site's social sharing and search engine appearance.",
		Category:    SEOTools,
		Tags:        []string{"seo", "meta", "tags", "social"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "json-to-csv",
		Name:        "JSON to CSV",
		Description: "Convert JSON data structures to flat CSV files effortlessly. Perfect for exporting data for spreadsheets or simple database migrations.",
		Category:    Converters,
		Tags:        []string{"json", "csv", "convert"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "string-trimmer",
		Name:        "Trim Whitespace",
		Description: "Quickly remove leading, trailing, and extra whitespaces from any text. Clean up your data and ensure consistency in your strings and logs.",
		Category:    TextTools,
		Tags:        []string{"trim", "clean", "whitespace"},
		Available:   true,
	},
	{
		ID:          "html-entities",
		Name:        "HTML Entities",
		Description: "Safely encode and decode HTML entities to prevent rendering issues. Convert special characters to their HTML-safe equivalent and vice-versa.",
		Category:    TextTools,
		Tags:        []string{"html", "entities", "encode", "decode"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "domain-ip",
		Name:        "Domain to IP",
		Description: "Convert any domain name into its corresponding IP address instantly. Useful for DNS troubleshooting, server configuration, and network debugging.",
		Category:    SEOTools,
		Tags:        []string{"dns", "ip", "domain", "lookup"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "line-counter",
		Name:        "Line Counter",
		Description: "Count total lines, non-empty lines, and character density in your text documents. A simple yet powerful utility for code analysis and document review.",
		Category:    TextTools,
		Tags:        []string{"count", "lines", "text"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "secure-token",
		Name:        "Token Generator",
		Description: "Generate cryptographically secure tokens for authentication, API keys, and session management. Choose from various formats including HEX and Base64.",
		Category:    Security,
		Tags:        []string{"token", "secure", "random", "auth"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "gradient-generator",
		Name:        "Gradient Generator",
		Description: "Design stunning linear and radial CSS gradients visually. Copy production-ready CSS code and level up your web designs with beautiful color transitions.",
		Category:    ImageTools,
		Tags:        []string{"gradient", "css", "color", "design"},
		Available:   true,
		New:         true,
	},
	{
		ID:          "color-tokens",
		Name:        "Color Tokens Gen",
		Description: "Generate professional shadcn/ui compatible color tokens from any base color. Create consistent, accessible themes for your modern web applications.",
		Category:    Utility,
		Tags:        []string{"color", "tokens", "shadcn", "theme"},
		Available:   true,
		New:         true,
	},
}
