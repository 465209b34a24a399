package site

import (
	"strings"
	"sync"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/markup"
	"golang.org/x/net/html"
)

// BeginEvent is emitted once per render pass, before any page is rendered.
// Handlers may append to URLs; nothing has been written to OutputDir yet.
type BeginEvent struct {
	PassID    string
	Project   *Project
	OutputDir string
	URLs      *URLMappings
}

// BeginHandler reacts to BeginEvent. A returned error aborts the pass.
type BeginHandler func(event *BeginEvent) error

type beginSubscription struct {
	owner   string
	handler BeginHandler
}

// PageEvent identifies the page being rendered.
type PageEvent struct {
	URL   string
	Model *PageModel
}

// RenderContext is the read-only per-page state passed to hooks.
type RenderContext struct {
	PassID   string
	SiteName string
	Page     *PageEvent
	Options  *config.Options
}

// RelativeRoot returns the relative path from the page back to the site root,
// e.g. "../" for "guide/setup.html".
func (rc *RenderContext) RelativeRoot() string {
	return strings.Repeat("../", strings.Count(rc.Page.URL, "/"))
}

// HookName identifies an injection point in the page layout.
type HookName string

const (
	// HookHeadEnd contributes markup at the end of <head>.
	HookHeadEnd HookName = "head.end"
	// HookBodyEnd contributes markup at the end of <body>.
	HookBodyEnd HookName = "body.end"
)

// HookFunc returns markup for one page. Nil or an empty fragment contributes nothing.
type HookFunc func(ctx *RenderContext) *html.Node

// Hooks holds the layout hooks registered by plugins.
type Hooks struct {
	mu    sync.RWMutex
	hooks map[HookName][]HookFunc
}

// NewHooks creates an empty hook set.
func NewHooks() *Hooks {
	return &Hooks{hooks: make(map[HookName][]HookFunc)}
}

// On registers fn for name. Hooks run in registration order.
func (h *Hooks) On(name HookName, fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks[name] = append(h.hooks[name], fn)
}

// Emit invokes every hook registered for name exactly once and returns the
// non-empty contributions.
func (h *Hooks) Emit(name HookName, ctx *RenderContext) []*html.Node {
	h.mu.RLock()
	fns := append([]HookFunc(nil), h.hooks[name]...)
	h.mu.RUnlock()

	var out []*html.Node
	for _, fn := range fns {
		if n := fn(ctx); !markup.IsEmpty(n) {
			out = append(out, n)
		}
	}
	return out
}
