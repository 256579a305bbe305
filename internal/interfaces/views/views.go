// Package views renders the dashboard pages. Engine implements fiber.Views so
// handlers call c.Render(page, data).
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed templates
var templateFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsFile = "templates/partials.html"
)

// Engine parses every page together with the layout and the shared partials.
type Engine struct {
	publicURL string

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// NewEngine returns an unloaded engine; Fiber calls Load at startup.
func NewEngine(publicURL string) *Engine {
	if publicURL == "" {
		publicURL = "http://localhost:3000"
	}
	return &Engine{publicURL: publicURL}
}

// Load parses the embedded templates.
func (e *Engine) Load() error {
	funcs := Funcs()
	funcs["publicURL"] = func() string { return e.publicURL }

	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, layoutFile, partialsFile)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template)
	err = fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || p == layoutFile || p == partialsFile || path.Ext(p) != ".html" {
			return err
		}
		t, err := base.Clone()
		if err != nil {
			return err
		}
		if _, err := t.ParseFS(templateFS, p); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		pages[name] = t
		return nil
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.pages = pages
	e.mu.Unlock()
	return nil
}

// Render writes page name inside the layout. Layout arguments are ignored: every
// page uses the one dashboard layout.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	e.mu.RLock()
	loaded := e.pages != nil
	e.mu.RUnlock()
	if !loaded {
		if err := e.Load(); err != nil {
			return err
		}
	}

	e.mu.RLock()
	t, ok := e.pages[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("views: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", binding)
}

// NavItem is one sidebar link.
type NavItem struct {
	Name string
	Href string
	Icon string
}

// Navigation is the sidebar in display order.
var Navigation = []NavItem{
	{Name: "Dashboard", Href: "/", Icon: "📊"},
	{Name: "Listings", Href: "/listings", Icon: "🏠"},
	{Name: "Leads", Href: "/leads", Icon: "👥"},
	{Name: "Partners", Href: "/partners", Icon: "🤝"},
}

// Page is the binding every template receives.
type Page struct {
	Title string
	// Path is the request path, used to highlight the active nav item.
	Path  string
	Alert string
	Data  interface{}
}

// Active reports whether nav item href matches the current page.
func (p Page) Active(href string) bool {
	if href == "/" {
		return p.Path == "/"
	}
	return p.Path == href || strings.HasPrefix(p.Path, href+"/")
}

func (p Page) Nav() []NavItem { return Navigation }
