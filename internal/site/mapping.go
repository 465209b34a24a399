package site

import (
	"golang.org/x/net/html"
)

// PageModel is the data a page is rendered from. Several URL mappings may
// share one model.
type PageModel struct {
	// Title is the first level-one heading, or a title derived from the file name.
	Title string
	// SourcePath is relative to the entry point; empty for generated pages.
	SourcePath string
	// URL is the page's own output path.
	URL string
	// ContentHTML is the converted markdown body.
	ContentHTML string
	// Children lists the pages linked from a generated index.
	Children []*PageModel
	// Routes maps the source paths of a project to their output URLs. All
	// pages of one project share it.
	Routes map[string]string
}

// RenderFunc produces the body of one page from its model.
type RenderFunc func(model *PageModel) (*html.Node, error)

// URLMapping pairs an output path with the model and render function that
// produce it.
type URLMapping struct {
	URL    string
	Model  *PageModel
	Render RenderFunc
}

// NewURLMapping creates a mapping.
func NewURLMapping(url string, model *PageModel, render RenderFunc) *URLMapping {
	return &URLMapping{URL: url, Model: model, Render: render}
}

// URLMappings is the ordered render plan of one pass. Begin handlers may
// append to it; pages are rendered in order.
type URLMappings struct {
	items []*URLMapping
}

// NewURLMappings creates a plan holding the given mappings in order.
func NewURLMappings(items ...*URLMapping) *URLMappings {
	return &URLMappings{items: append([]*URLMapping(nil), items...)}
}

// Find returns the first mapping with the given URL.
func (m *URLMappings) Find(url string) (*URLMapping, bool) {
	for _, item := range m.items {
		if item.URL == url {
			return item, true
		}
	}
	return nil, false
}

// Push appends a mapping at the end of the plan.
func (m *URLMappings) Push(mapping *URLMapping) {
	m.items = append(m.items, mapping)
}

// All returns the mappings in render order. The slice is a copy.
func (m *URLMappings) All() []*URLMapping {
	return append([]*URLMapping(nil), m.items...)
}

// Len returns the number of mappings.
func (m *URLMappings) Len() int {
	return len(m.items)
}
