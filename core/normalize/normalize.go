package normalize

import (
	"mime"
	"net/http"
	"strings"

	"github.com/leofalp/scrapego/providers/fetcher"
)

// TruncationMarker is appended whenever normalized text is cut to a
// caller-supplied bound.
const TruncationMarker = "\n\n[Content truncated]"

// Kind is the tagged variant the normalizer dispatches on. Every declared or
// sniffed content type maps to exactly one kind; unknown types fall into
// [KindOther] and pass through untouched so no content type is silently
// dropped.
type Kind int

const (
	// KindOther covers binary and unrecognized content, passed through as-is.
	KindOther Kind = iota
	// KindMarkup is HTML/XHTML, converted to a markdown-like text form.
	KindMarkup
	// KindStructured is JSON, XML, or plain text: already machine-parseable,
	// so only length bounding applies.
	KindStructured
)

// Options controls a single normalization pass.
type Options struct {
	// MainContentOnly hints that navigation and boilerplate regions should
	// be stripped from markup before conversion.
	MainContentOnly bool

	// MaxChars bounds the returned text in characters. Zero means
	// unbounded.
	MaxChars int
}

// Result is the bounded text form of one payload.
type Result struct {
	// Text is the normalized, possibly bounded text.
	Text string

	// Truncated reports whether Text was cut to Options.MaxChars.
	Truncated bool
}

// Normalize converts a raw fetched payload into bounded text. It never
// returns an error: malformed markup degrades to the raw body, and unknown
// content types pass through, so the caller always gets some text to work
// with.
func Normalize(p *fetcher.Payload, opts Options) Result {
	if p == nil {
		return Result{}
	}

	var text string
	switch DetectKind(p.ContentType, p.Body) {
	case KindMarkup:
		text = convertMarkup(p.Body, opts.MainContentOnly)
	case KindStructured:
		// JSON, XML, and plain text are already machine-parseable;
		// no semantic transformation is applied.
		text = p.Body
	default:
		text = p.Body
	}

	bounded, truncated := Bound(text, opts.MaxChars)
	return Result{Text: bounded, Truncated: truncated}
}

// DetectKind maps a declared MIME type to a normalization [Kind]. An empty
// or unparseable declaration falls back to sniffing the body with
// http.DetectContentType.
func DetectKind(contentType, body string) Kind {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "" {
		sniffLen := len(body)
		if sniffLen > 512 {
			sniffLen = 512
		}
		mediaType, _, err = mime.ParseMediaType(http.DetectContentType([]byte(body[:sniffLen])))
		if err != nil {
			return KindOther
		}
	}
	mediaType = strings.ToLower(mediaType)

	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return KindMarkup
	case mediaType == "application/json" || mediaType == "application/xml":
		return KindStructured
	case strings.HasSuffix(mediaType, "+json") || strings.HasSuffix(mediaType, "+xml"):
		return KindStructured
	case strings.HasPrefix(mediaType, "text/"):
		return KindStructured
	default:
		return KindOther
	}
}

// Bound cuts text at maxChars characters and appends [TruncationMarker].
// The operation is idempotent: any text of at most maxChars plus the
// marker's length is returned unchanged, so re-bounding previously bounded
// output is a no-op. The tolerance window means text between maxChars and
// maxChars+len(marker) characters is never cut. maxChars <= 0 means
// unbounded.
func Bound(text string, maxChars int) (string, bool) {
	if maxChars <= 0 {
		return text, false
	}

	runes := []rune(text)
	if len(runes) <= maxChars+len(TruncationMarker) {
		return text, false
	}
	return string(runes[:maxChars]) + TruncationMarker, true
}
