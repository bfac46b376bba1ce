// Package fragment turns mini-game markup into something a terminal can show.
package fragment

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is the parsed, script-free form of a mini-game fragment.
type Fragment struct {
	Title   string
	Prompt  string
	Body    []string // remaining paragraphs and list items, in order
	Buttons []string
}

// Parse reads markup and extracts the parts the TUI renders. Script and
// style elements are dropped entirely.
func Parse(markup string) (*Fragment, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	f := &Fragment{}
	var docTitle string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Noscript, atom.Style:
				return
			case atom.Title:
				docTitle = collapse(textOf(n))
				return
			case atom.H1, atom.H2, atom.H3:
				if t := collapse(textOf(n)); t != "" {
					if f.Title == "" {
						f.Title = t
					} else {
						f.Body = append(f.Body, t)
					}
				}
				return
			case atom.P, atom.Li:
				if t := collapse(textOf(n)); t != "" {
					if f.Prompt == "" && n.DataAtom == atom.P {
						f.Prompt = t
					} else {
						f.Body = append(f.Body, t)
					}
				}
				return
			case atom.Button:
				f.Buttons = append(f.Buttons, collapse(textOf(n)))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if f.Title == "" {
		f.Title = docTitle
	}
	return f, nil
}

// Text renders the fragment as plain text with numbered buttons.
func (f *Fragment) Text() string {
	var b strings.Builder
	if f.Title != "" {
		b.WriteString(f.Title)
		b.WriteString("\n\n")
	}
	if f.Prompt != "" {
		b.WriteString(f.Prompt)
		b.WriteString("\n")
	}
	for _, line := range f.Body {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(f.Buttons) > 0 {
		b.WriteString("\n")
		for i, label := range f.Buttons {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, label)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// textOf concatenates the text nodes below n, skipping scripts.
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
