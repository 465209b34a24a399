package site

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IndexURL is the output path of the site's root page.
const IndexURL = "index.html"

// indexCandidates are root-level sources that become index.html, in priority order.
var indexCandidates = []string{"index.md", "README.md", "readme.md"}

// Project is the documentation tree of one entry point.
type Project struct {
	Name  string
	Root  string
	Index *PageModel
	Pages []*PageModel
}

// LoadProject discovers markdown documents below root. Directories whose name
// starts with "." and any directory listed in exclude are skipped.
func LoadProject(name, root string, exclude ...string) (*Project, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, derrors.ConfigInvalid(fmt.Sprintf("entry point %s is not readable: %v", root, err))
	}
	if !info.IsDir() {
		return nil, derrors.ConfigInvalid(fmt.Sprintf("entry point %s is not a directory", root))
	}

	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if abs, err := filepath.Abs(e); err == nil {
			skip[abs] = true
		}
	}

	var sources []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(p); err == nil && skip[abs] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".md") {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			sources = append(sources, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to scan entry point")
	}
	sort.Strings(sources)

	project := &Project{Name: name, Root: root}
	indexSource := ""
	for _, candidate := range indexCandidates {
		if contains(sources, candidate) {
			indexSource = candidate
			break
		}
	}

	for _, src := range sources {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(src)))
		if err != nil {
			return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to read document").
				WithContext("path", src)
		}
		page, err := convertDocument(src, data)
		if err != nil {
			return nil, derrors.RenderFailed(src, err)
		}
		if src == indexSource {
			page.URL = IndexURL
			project.Index = page
			continue
		}
		project.Pages = append(project.Pages, page)
	}

	if project.Index == nil {
		project.Index = &PageModel{Title: name, URL: IndexURL}
	}
	project.Index.Children = project.Pages

	routes := make(map[string]string, len(sources))
	for _, page := range append([]*PageModel{project.Index}, project.Pages...) {
		if page.SourcePath != "" {
			routes[page.SourcePath] = page.URL
		}
		page.Routes = routes
	}
	return project, nil
}

// URLMappings builds the default render plan: the index first, then every
// document in URL order.
func (p *Project) URLMappings() *URLMappings {
	urls := NewURLMappings(NewURLMapping(IndexURL, p.Index, RenderIndex))
	for _, page := range p.Pages {
		urls.Push(NewURLMapping(page.URL, page, RenderDocument))
	}
	return urls
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func convertDocument(src string, data []byte) (*PageModel, error) {
	root := markdown.Parser().Parse(text.NewReader(data))
	var buf bytes.Buffer
	if err := markdown.Renderer().Render(&buf, data, root); err != nil {
		return nil, err
	}

	title := firstHeading(root, data)
	if title == "" {
		title = titleFromPath(src)
	}
	return &PageModel{
		Title:       title,
		SourcePath:  src,
		URL:         strings.TrimSuffix(src, path.Ext(src)) + ".html",
		ContentHTML: buf.String(),
	}, nil
}

func firstHeading(root gmast.Node, src []byte) string {
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(inlineText(h, src))
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

func inlineText(n gmast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *gmast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(inlineText(c, src))
		}
	}
	return sb.String()
}

// titleFromPath turns "guide/getting-started.md" into "Getting Started".
func titleFromPath(src string) string {
	stem := strings.TrimSuffix(path.Base(src), path.Ext(src))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return cases.Title(language.English).String(strings.TrimSpace(stem))
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
