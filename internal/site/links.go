package site

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/markup"
	"golang.org/x/net/html"
)

// linkAttrs are the attributes holding URLs, per element.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
}

// isRelative reports whether ref points into the site itself.
func isRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return !u.IsAbs() && u.Host == ""
}

// rewriteMarkdownLinks points relative links at .md sources to their output
// pages. from is the source path of the page holding the links; routes maps
// source paths to output URLs. Links to sources missing from routes keep
// their path with an .html extension.
func rewriteMarkdownLinks(nodes []*html.Node, from string, routes map[string]string) {
	dir := path.Dir(from)
	for _, n := range nodes {
		markup.Walk(n, func(n *html.Node) {
			if n.Type != html.ElementNode || n.Data != "a" {
				return
			}
			href := markup.GetAttr(n, "href")
			if !isRelative(href) {
				return
			}
			u, err := url.Parse(href)
			if err != nil || !strings.EqualFold(path.Ext(u.Path), ".md") {
				return
			}
			u.Path = markdownTarget(dir, u.Path, routes)
			markup.SetAttr(n, "href", u.String())
		})
	}
}

func markdownTarget(dir, ref string, routes map[string]string) string {
	if target, ok := routes[path.Join(dir, ref)]; ok {
		if rel, err := filepath.Rel(filepath.FromSlash(dir), filepath.FromSlash(target)); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return strings.TrimSuffix(ref, path.Ext(ref)) + ".html"
}

// absolutizeLinks resolves every relative link in the page against the hosted
// base URL, so the page works when served from any path (as a 404 page is).
func absolutizeLinks(root *html.Node, base *url.URL, pageURL string) {
	page := base.ResolveReference(&url.URL{Path: pageURL})
	markup.Walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		key, ok := linkAttrs[n.Data]
		if !ok {
			return
		}
		val := markup.GetAttr(n, key)
		if !isRelative(val) {
			return
		}
		ref, err := url.Parse(val)
		if err != nil {
			return
		}
		markup.SetAttr(n, key, page.ResolveReference(ref).String())
	})
}

// parseHostedBaseURL validates the hosted base URL and gives it a trailing slash.
func parseHostedBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: raw, Err: errNotAbsolute}
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
