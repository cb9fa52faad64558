package wiki

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// LeadText pulls the lead section out of a rendered wiki article page:
// every paragraph before the first h2, minus infobox and navigation
// tables and the [n] citation markers. This is the scrape-path stand-in
// for the summary endpoint's extract.
func LeadText(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	content := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" &&
			(hasClass(n, "mw-parser-output") || attr(n, "id") == "mw-content-text")
	})
	if content == nil {
		content = doc
	}

	var paragraphs []string
	inLead := true
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if !inLead {
			return
		}
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "h2":
				inLead = false
				return
			case n.Data == "table" && (hasClass(n, "infobox") || hasClass(n, "navbox")):
				return
			case n.Data == "p":
				if text := collapseText(n); text != "" {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(content)

	return strings.Join(paragraphs, "\n\n"), nil
}

// collapseText flattens a node to plain text with single spaces, skipping
// citation superscripts and embedded style/script.
func collapseText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "sup", "style", "script":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
