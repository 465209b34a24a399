package site

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/markup"
	"golang.org/x/net/html"
)

// StylesheetPath is the output path of the bundled stylesheet.
const StylesheetPath = "assets/style.css"

// RenderDocument renders a converted markdown document.
func RenderDocument(model *PageModel) (*html.Node, error) {
	nodes, err := markup.ParseFragment(model.ContentHTML)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", model.SourcePath, err)
	}
	rewriteMarkdownLinks(nodes, model.SourcePath, model.Routes)
	return markup.Element("article", nil, nodes...), nil
}

// RenderIndex renders the root page: the index document when there is one,
// followed by a list of every other page.
func RenderIndex(model *PageModel) (*html.Node, error) {
	var children []*html.Node
	if model.ContentHTML != "" {
		body, err := RenderDocument(model)
		if err != nil {
			return nil, err
		}
		children = append(children, body)
	} else {
		children = append(children, markup.Element("h1", nil, markup.Text(model.Title)))
	}

	if len(model.Children) > 0 {
		list := markup.Element("ul", nil)
		for _, child := range model.Children {
			list.AppendChild(markup.Element("li", nil,
				markup.Element("a", []markup.Attr{{Key: "href", Val: child.URL}}, markup.Text(child.Title)),
			))
		}
		children = append(children, markup.Element("nav", []markup.Attr{{Key: "class", Val: "pages"}}, list))
	}
	return markup.Fragment(children...), nil
}

// composePage wraps a rendered body in the site layout and runs the layout hooks.
func composePage(hooks *Hooks, rc *RenderContext, body *html.Node) *html.Node {
	root := rc.RelativeRoot()

	title := rc.SiteName
	if m := rc.Page.Model; m != nil && m.Title != "" && m.Title != rc.SiteName {
		title = m.Title + " | " + rc.SiteName
	}

	head := markup.Element("head", nil,
		markup.Element("meta", []markup.Attr{{Key: "charset", Val: "utf-8"}}),
		markup.Element("meta", []markup.Attr{{Key: "name", Val: "viewport"}, {Key: "content", Val: "width=device-width, initial-scale=1"}}),
		markup.Element("title", nil, markup.Text(title)),
		markup.Element("link", []markup.Attr{{Key: "rel", Val: "stylesheet"}, {Key: "href", Val: root + StylesheetPath}}),
	)
	for _, n := range hooks.Emit(HookHeadEnd, rc) {
		head.AppendChild(n)
	}

	page := markup.Element("body", nil,
		markup.Element("header", nil,
			markup.Element("a", []markup.Attr{{Key: "href", Val: root + IndexURL}}, markup.Text(rc.SiteName)),
		),
		markup.Element("main", nil, body),
	)
	for _, n := range hooks.Emit(HookBodyEnd, rc) {
		page.AppendChild(n)
	}

	return markup.Element("html", []markup.Attr{{Key: "lang", Val: "en"}}, head, page)
}
