package page404

import (
	"fmt"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/markup"
	"git.home.luguber.info/inful/docsite/internal/site"
	"golang.org/x/net/html"
)

const (
	// NotFoundURL is the output path of the synthesized page.
	NotFoundURL = "404.html"
	// ContentClass is the class of the element wrapping the page content.
	ContentClass = "404-content"
)

// AddNotFoundPage appends a 404.html mapping to the render plan. The mapping
// shares the index page's model; its body is content wrapped in
// <div class="404-content">, inserted without escaping. 404.html is reserved:
// a plan that already renders it is rejected.
func AddNotFoundPage(event *site.BeginEvent, content string) error {
	if event == nil || event.URLs == nil {
		return hostContractError(ErrURLsNotDetected)
	}
	index, ok := event.URLs.Find(site.IndexURL)
	if !ok {
		return hostContractError(ErrIndexNotFound)
	}
	if existing, ok := event.URLs.Find(NotFoundURL); ok {
		return reservedURLError(existing)
	}

	event.URLs.Push(site.NewURLMapping(NotFoundURL, index.Model, func(*site.PageModel) (*html.Node, error) {
		return notFoundBody(content), nil
	}))
	return nil
}

func notFoundBody(content string) *html.Node {
	return markup.Element("div", []markup.Attr{{Key: "class", Val: ContentClass}}, markup.Raw(content))
}

func hostContractError(err error) error {
	return derrors.Wrap(err, derrors.CategoryPlugin, derrors.SeverityFatal, "host contract violation").
		WithContext("plugin", PluginName)
}

func reservedURLError(existing *site.URLMapping) error {
	source := "another plugin"
	if existing.Model != nil && existing.Model.SourcePath != "" {
		source = existing.Model.SourcePath
	}
	return derrors.Wrap(ErrReservedURL, derrors.CategoryConfig, derrors.SeverityFatal,
		fmt.Sprintf("%s is reserved for the page not found document but %s renders to it; rename the source", NotFoundURL, source)).
		WithContext("plugin", PluginName).
		WithContext("source", source)
}
