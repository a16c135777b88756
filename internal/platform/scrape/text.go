package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// SpacedText joins every text node under sel with a space, skipping script
// and style content, and collapses whitespace. Unlike goquery's Text it keeps
// "<td>Real</td><td>Betis</td>" as two words.
func SpacedText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			parts = append(parts, n.Data)
			return
		case n.Type == html.ElementNode && skipElement(n.Data):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// OwnText is the text of sel's direct text children only.
func OwnText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				parts = append(parts, c.Data)
			}
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// VisibleText is the spaced text of the whole document.
func VisibleText(doc *goquery.Document) string {
	return SpacedText(doc.Selection)
}

func skipElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}
