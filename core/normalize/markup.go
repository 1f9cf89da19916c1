package normalize

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// boilerplateSelector lists the regions stripped before conversion when the
// caller asks for main content only.
const boilerplateSelector = "nav, header, footer, aside, script, style, noscript"

// landmarkSelector locates the primary content container. The first match
// wins; when no landmark exists the full body is converted.
const landmarkSelector = "article, main, [role=main], #content, #main-content"

// convertMarkup converts HTML to a markdown-like plain-text form preserving
// headings, lists, emphasis, blockquotes, code fences, and link targets.
// Malformed markup degrades gracefully: whatever cannot be converted is
// returned as raw text, since a partially useful result beats none for an
// agent consumer.
func convertMarkup(html string, mainContentOnly bool) string {
	source := html

	if mainContentOnly {
		if trimmed, ok := mainContent(html); ok {
			source = trimmed
		}
	}

	markdown, err := htmltomarkdown.ConvertString(source)
	if err != nil || strings.TrimSpace(markdown) == "" {
		// Fall back to the untrimmed document before giving up entirely.
		if source != html {
			if markdown, err = htmltomarkdown.ConvertString(html); err == nil && strings.TrimSpace(markdown) != "" {
				return markdown
			}
		}
		return html
	}
	return markdown
}

// mainContent heuristically extracts the primary content subtree of an HTML
// document, dropping navigation and boilerplate regions first. Returns
// false when the document cannot be parsed or no landmark is found, in
// which case the caller converts the full document.
func mainContent(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	doc.Find(boilerplateSelector).Remove()

	landmark := doc.Find(landmarkSelector).First()
	if landmark.Length() == 0 {
		// No landmark: still benefit from the boilerplate strip.
		if body, err := doc.Find("body").Html(); err == nil && strings.TrimSpace(body) != "" {
			return body, true
		}
		return "", false
	}

	subtree, err := goquery.OuterHtml(landmark)
	if err != nil || strings.TrimSpace(subtree) == "" {
		return "", false
	}
	return subtree, true
}
