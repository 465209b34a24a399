// Package page404 is the docsite plugin that adds a "page not found" document.
//
// At the start of every render pass it appends a 404.html mapping that
// borrows the index page's model and renders the configured page404Content
// inside <div class="404-content">. The content is inserted verbatim, so it
// may contain markup. A head.end hook marks only that page as noindex.
//
// Links on the 404 page must resolve from any request path, so the plugin
// refuses to run unless useHostedBaseUrlForAbsoluteLinks is enabled.
package page404
