package export

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*\s][^*]*?)\*`)
)

// AnalysisToHTML converts the legal-analysis text into simple markup:
// "#", "##" and "###" lines become headings, "**x**" bold, "*x*" italic,
// "- x" a bullet paragraph and every blank line a <br>.
func AnalysisToHTML(analysis string) string {
	var b strings.Builder
	lines := strings.Split(strings.ReplaceAll(analysis, "\r\n", "\n"), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			b.WriteString("<br>")
		case strings.HasPrefix(line, "### "):
			b.WriteString("<h3>" + inline(line[4:]) + "</h3>")
		case strings.HasPrefix(line, "## "):
			b.WriteString("<h2>" + inline(line[3:]) + "</h2>")
		case strings.HasPrefix(line, "# "):
			b.WriteString("<h1>" + inline(line[2:]) + "</h1>")
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			b.WriteString("<li>" + inline(line[2:]) + "</li>")
		default:
			b.WriteString("<p>" + inline(line) + "</p>")
		}
	}
	return b.String()
}

func inline(s string) string {
	s = html.EscapeString(s)
	s = boldPattern.ReplaceAllString(s, "<strong>$1</strong>")
	return italicPattern.ReplaceAllString(s, "<em>$1</em>")
}

// HTMLToParagraphs walks markup node by node and maps it onto document
// paragraphs: h1-h3 keep their level, p and li become normal paragraphs,
// br an empty paragraph. Inline strong/b and em/i set run formatting.
func HTMLToParagraphs(markup string) ([]Paragraph, error) {
	root, err := nethtml.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	body := findBody(root)
	if body == nil {
		return nil, nil
	}

	var paragraphs []Paragraph
	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case nethtml.TextNode:
				if strings.TrimSpace(c.Data) != "" {
					paragraphs = append(paragraphs, Paragraph{Runs: []Run{{Text: c.Data}}})
				}
			case nethtml.ElementNode:
				switch c.DataAtom {
				case atom.H1:
					paragraphs = append(paragraphs, Paragraph{Style: StyleHeading1, Runs: runs(c, false, false)})
				case atom.H2:
					paragraphs = append(paragraphs, Paragraph{Style: StyleHeading2, Runs: runs(c, false, false)})
				case atom.H3:
					paragraphs = append(paragraphs, Paragraph{Style: StyleHeading3, Runs: runs(c, false, false)})
				case atom.P:
					paragraphs = append(paragraphs, Paragraph{Runs: runs(c, false, false)})
				case atom.Li:
					paragraphs = append(paragraphs, Paragraph{Runs: append([]Run{{Text: "• "}}, runs(c, false, false)...)})
				case atom.Br:
					paragraphs = append(paragraphs, Paragraph{})
				case atom.Strong, atom.B, atom.Em, atom.I:
					paragraphs = append(paragraphs, Paragraph{Runs: nodeRuns(c, false, false)})
				default:
					walk(c)
				}
			}
		}
	}
	walk(body)

	return paragraphs, nil
}

func runs(n *nethtml.Node, bold, italic bool) []Run {
	var out []Run
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, nodeRuns(c, bold, italic)...)
	}
	return out
}

func nodeRuns(n *nethtml.Node, bold, italic bool) []Run {
	switch n.Type {
	case nethtml.TextNode:
		return []Run{{Text: n.Data, Bold: bold, Italic: italic}}
	case nethtml.ElementNode:
		switch n.DataAtom {
		case atom.Strong, atom.B:
			return runs(n, true, italic)
		case atom.Em, atom.I:
			return runs(n, bold, true)
		case atom.Br:
			return []Run{{Text: " ", Bold: bold, Italic: italic}}
		default:
			return runs(n, bold, italic)
		}
	}
	return nil
}

func findBody(n *nethtml.Node) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
