package richtext

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-showcase/internal/records"
)

var htmlTag = regexp.MustCompile(`(?i)<(p|br|div|span|ul|ol|li|strong|em|b|i|a|h[1-6]|blockquote|img)\b`)

// Renderer converts rich text field values into sanitized HTML. Markdown
// strings are rendered with goldmark; HTML input and rendered output are
// scrubbed with a user-generated-content policy. Renderer is safe for
// concurrent use.
type Renderer struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// Option customises the renderer.
type Option func(*config)

type config struct {
	hardWraps  bool
	extensions []goldmark.Extender
}

// WithHardWraps renders single newlines as line breaks.
func WithHardWraps() Option {
	return func(c *config) { c.hardWraps = true }
}

// WithExtensions replaces the default goldmark extensions (GFM, linkify).
func WithExtensions(exts ...goldmark.Extender) Option {
	return func(c *config) { c.extensions = exts }
}

// New constructs a Renderer.
func New(opts ...Option) *Renderer {
	cfg := config{extensions: []goldmark.Extender{extension.GFM, extension.Linkify}}
	for _, opt := range opts {
		opt(&cfg)
	}

	rendererOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(cfg.extensions...),
	}
	htmlOptions := []renderer.Option{html.WithUnsafe()}
	if cfg.hardWraps {
		htmlOptions = append(htmlOptions, html.WithHardWraps())
	}
	rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(htmlOptions...))

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		engine: goldmark.New(rendererOptions...),
		policy: policy,
	}
}

// Markdown renders markdown source into sanitized HTML.
func (r *Renderer) Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("richtext: markdown render: %w", err)
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String())), nil
}

// Sanitize scrubs an HTML fragment.
func (r *Renderer) Sanitize(fragment string) string {
	return strings.TrimSpace(r.policy.Sanitize(fragment))
}

// HTML renders a field value as sanitized HTML. Strings containing markup
// are sanitized as is, other strings are treated as markdown, block lists
// become paragraphs, and nested {content}/{text}/{value} nodes are unwrapped.
// Unsupported values yield the empty string.
func (r *Renderer) HTML(value any) string {
	return r.render(records.Decode(value), 0)
}

const maxDepth = 16

func (r *Renderer) render(value any, depth int) string {
	if depth > maxDepth {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return ""
		}
		if htmlTag.MatchString(trimmed) {
			return r.Sanitize(trimmed)
		}
		out, err := r.Markdown(trimmed)
		if err != nil {
			return r.Sanitize(trimmed)
		}
		return out
	case []any:
		var b strings.Builder
		for _, node := range v {
			b.WriteString(r.renderNode(records.Decode(node), depth+1))
		}
		return b.String()
	case map[string]any:
		for _, key := range []string{"content", "text", "value"} {
			if nested, ok := v[key]; ok {
				if out := r.render(records.Decode(nested), depth+1); out != "" {
					return out
				}
			}
		}
		if _, ok := v["children"]; ok {
			return r.renderNode(v, depth)
		}
	}
	return ""
}

func (r *Renderer) renderNode(node any, depth int) string {
	obj, ok := node.(map[string]any)
	if !ok {
		return r.render(node, depth)
	}
	typ := strings.ToLower(records.String(obj["type"]))
	text := records.PlainText(obj)
	if text == "" {
		return ""
	}
	escaped := r.Sanitize(htmlEscape(text))
	switch typ {
	case "heading":
		level := 2
		if n, ok := records.Number(obj["level"]); ok && n >= 1 && n <= 6 {
			level = int(n)
		}
		return fmt.Sprintf("<h%d>%s</h%d>", level, escaped, level)
	case "quote":
		return "<blockquote>" + escaped + "</blockquote>"
	case "list-item":
		return "<li>" + escaped + "</li>"
	case "image", "gallery":
		return ""
	default:
		return "<p>" + escaped + "</p>"
	}
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;", "'", "&#39;")

func htmlEscape(s string) string {
	return escaper.Replace(s)
}
