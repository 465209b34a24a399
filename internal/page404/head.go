package page404

import (
	"git.home.luguber.info/inful/docsite/internal/markup"
	"git.home.luguber.info/inful/docsite/internal/site"
	"golang.org/x/net/html"
)

// NoIndexHead is the head.end hook. It returns a robots noindex meta element
// for the 404 page and an empty fragment for every other page.
func NoIndexHead(ctx *site.RenderContext) *html.Node {
	if ctx == nil || ctx.Page == nil || ctx.Page.URL != NotFoundURL {
		return markup.Fragment()
	}
	return markup.Element("meta", []markup.Attr{
		{Key: "name", Val: "robots"},
		{Key: "content", Val: "noindex"},
	})
}
