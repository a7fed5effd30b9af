package format

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const wordsPerMinute = 200

// PlainText returns the visible text of an HTML fragment with whitespace collapsed.
func PlainText(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.Join(strings.Fields(content), " ")
	}

	// Selection.Text() glues adjacent blocks together ("</h2><p>"), so walk
	// the text nodes and separate them.
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Excerpt builds a summary of at most max runes from HTML content.
func Excerpt(content string, max int) string {
	return Truncate(PlainText(content), max)
}

// ReadingTime estimates minutes to read the HTML content, never less than one.
func ReadingTime(content string) int {
	words := len(strings.Fields(PlainText(content)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// FirstImage returns the src of the first <img> in the HTML, if any.
func FirstImage(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}
