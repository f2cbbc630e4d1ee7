package discovery

import (
	"fmt"
	"strings"

	"captcha-verifier/internal/domain/entity"

	"golang.org/x/net/html"
)

// DebugTriggers returns the debug-panel captcha buttons declared in rawHTML,
// in document order. Duplicated ids are reported once.
func DebugTriggers(rawHTML string) ([]entity.DebugTrigger, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var triggers []entity.DebugTrigger
	seen := make(map[string]bool)
	walk(doc, func(n *html.Node) {
		id := attr(n, "id")
		name, ok := entity.CaptchaFromTriggerID(id)
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		triggers = append(triggers, entity.DebugTrigger{
			ID:      id,
			Captcha: name,
			Label:   strings.Join(strings.Fields(textOf(n)), " "),
		})
	})
	return triggers, nil
}

// HasElement reports whether an element with the given id exists in rawHTML.
func HasElement(rawHTML, id string) bool {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return false
	}
	found := false
	walk(doc, func(n *html.Node) {
		if attr(n, "id") == id {
			found = true
		}
	})
	return found
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
