package browser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// PageContent is the cleaned, text-focused view of a page.
type PageContent struct {
	Title     string
	Text      string
	Truncated bool
}

// DefaultContentLength caps extracted content when the caller supplies
// no limit.
const DefaultContentLength = 10000

// skippedElements are removed wholesale during extraction; they carry
// no visible text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
	"iframe":   true,
	"head":     true,
}

// ExtractContent parses raw HTML and returns its title and visible
// text, truncated at maxLength characters.
func ExtractContent(rawHTML string, maxLength int) (*PageContent, error) {
	if maxLength <= 0 {
		maxLength = DefaultContentLength
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	content := &PageContent{Title: findTitle(doc)}

	var builder strings.Builder
	content.Truncated = collectText(doc, &builder, maxLength)
	content.Text = strings.TrimSpace(builder.String())

	if content.Truncated {
		content.Text += fmt.Sprintf("\n\n[content truncated at %d characters]", maxLength)
	}
	return content, nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var text strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				text.WriteString(c.Data)
			}
		}
		return strings.TrimSpace(text.String())
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// collectText walks the tree appending visible text, inserting line
// breaks at block boundaries. Returns true once maxLength is reached.
func collectText(n *html.Node, builder *strings.Builder, maxLength int) bool {
	if builder.Len() >= maxLength {
		return true
	}

	switch n.Type {
	case html.CommentNode:
		return false
	case html.ElementNode:
		name := strings.ToLower(n.Data)
		if skippedElements[name] {
			return false
		}
		if isBlockElement(name) && builder.Len() > 0 {
			builder.WriteString("\n")
		}
	case html.TextNode:
		text := strings.Join(strings.Fields(n.Data), " ")
		if text == "" {
			return false
		}
		if builder.Len() > 0 && !strings.HasSuffix(builder.String(), "\n") {
			builder.WriteString(" ")
		}
		remaining := maxLength - builder.Len()
		if len(text) > remaining {
			// Back off to a rune boundary so the cut never emits a
			// partial UTF-8 sequence.
			cut := remaining
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			builder.WriteString(text[:cut])
			return true
		}
		builder.WriteString(text)
		return false
	}

	truncated := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if collectText(c, builder, maxLength) {
			truncated = true
			break
		}
	}
	return truncated
}

func isBlockElement(name string) bool {
	switch name {
	case "p", "div", "section", "article", "header", "footer", "main",
		"h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "br", "ul", "ol",
		"table", "blockquote", "pre", "form":
		return true
	}
	return false
}
