// Package site serves the navmark pages and the navigation API. Every
// request gets a fresh highlighter over the configured items, bound to the
// requesting client's stored selection.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/navmark/internal/nav"
	"github.com/ziadkadry99/navmark/internal/selection"
)

// Options configures a Site.
type Options struct {
	Title      string
	CookieName string
	StorageKey string
	Items      []nav.Item
	Routes     *nav.RouteTable
	Store      *selection.Store
	Log        logrus.FieldLogger
}

// Site renders pages and handles navigation API calls.
type Site struct {
	title      string
	cookieName string
	storageKey string
	items      []nav.Item
	routes     *nav.RouteTable
	store      *selection.Store
	hub        *Hub
	log        logrus.FieldLogger

	page     *template.Template
	bodies   map[string]*template.Template
	pages    map[string]pageHandler
	docsHTML template.HTML
}

// pageHandler is a page title and the body rendered under it.
type pageHandler struct {
	title string
	body  bodyFunc
}

// New builds a Site. Store may be nil, in which case nothing is persisted.
func New(opts Options) (*Site, error) {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.CookieName == "" {
		opts.CookieName = "navmark_client"
	}
	if opts.StorageKey == "" {
		opts.StorageKey = nav.DefaultStorageKey
	}
	if opts.Routes == nil {
		opts.Routes = nav.MustRouteTable(nav.DefaultRoutes(), "")
	}

	s := &Site{
		title:      opts.Title,
		cookieName: opts.CookieName,
		storageKey: opts.StorageKey,
		items:      opts.Items,
		routes:     opts.Routes,
		store:      opts.Store,
		log:        opts.Log.WithField("component", "site"),
		bodies:     make(map[string]*template.Template),
	}
	s.hub = NewHub(s.log)

	var err error
	if s.page, err = template.New("page").Parse(pageTemplate); err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	for name, src := range map[string]string{
		"home":     homeTemplate,
		"history":  historyTemplate,
		"settings": settingsTemplate,
		"section":  sectionTemplate,
		"notfound": notFoundTemplate,
	} {
		t, err := template.New(name).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		s.bodies[name] = t
	}

	if s.docsHTML, err = renderMarkdown(newMarkdown(), documentationMarkdown); err != nil {
		return nil, fmt.Errorf("rendering documentation: %w", err)
	}

	s.pages = map[string]pageHandler{
		"/":              {"Home", s.homeBody},
		"/history":       {"History", s.historyBody},
		"/settings":      {"Settings", s.settingsBody},
		"/documentation": {"Documentation", s.documentationBody},
	}
	return s, nil
}

// Hub returns the websocket hub used for tab sync.
func (s *Site) Hub() *Hub { return s.hub }

// RegisterRoutes mounts pages, static assets and /api/nav on r.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(s.withClient)

		r.Get("/api/nav/ws", func(w http.ResponseWriter, r *http.Request) {
			s.hub.Serve(w, r, clientID(r.Context()))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			for path, p := range s.pages {
				r.Get(path, s.handlePage(p.title, p.body))
			}
			r.Post("/settings/forget", s.handleForget)

			r.Route("/api/nav", func(r chi.Router) {
				r.Get("/", s.handleLoadState)
				r.Post("/activate", s.handleActivate)
				r.Get("/selection", s.handleSelection)
				r.Get("/history", s.handleHistory)
			})
		})

		r.NotFound(s.handleNotFound)
	})

	r.Get("/static/style.css", staticHandler("text/css; charset=utf-8", cssContent))
	r.Get("/static/navmark.js", staticHandler("application/javascript; charset=utf-8", jsContent))
}

// highlighter returns a highlighter over a fresh copy of the items, bound
// to clientID's stored selection.
func (s *Site) highlighter(clientID string) *nav.Highlighter {
	var store nav.Store
	if s.store != nil {
		store = s.store.For(clientID)
	}
	return nav.New(
		nav.NewCollection(s.items...),
		s.routes,
		store,
		nav.WithStorageKey(s.storageKey),
		nav.WithLogger(s.log.WithField("client", clientID)),
	)
}

// pageData is passed to the page template and each body template.
type pageData struct {
	Title      string
	SiteTitle  string
	Path       string
	Items      []nav.Item
	Body       template.HTML
	ClientID   string
	StorageKey string
	Selection  string
	History    []selection.Activation
}

type bodyFunc func(r *http.Request, data *pageData) (template.HTML, error)

func (s *Site) handlePage(title string, body bodyFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, title, body)
	}
}

// handleNotFound serves paths the router has no page for. A path an exact
// or glob route names gets the page its item links to; anything else is a
// 404, highlighting only the fallback item if one is configured.
func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		if p, ok := s.routedPage(r.URL.Path); ok {
			s.render(w, r, http.StatusOK, p.title, p.body)
			return
		}
	}
	s.render(w, r, http.StatusNotFound, "Not found", s.notFoundBody)
}

// routedPage finds the page for a path the route table matches. Items
// without a built-in page get a plain section page.
func (s *Site) routedPage(path string) (pageHandler, bool) {
	id, ok := s.routes.Match(path)
	if !ok {
		return pageHandler{}, false
	}
	for _, it := range s.items {
		if it.ID != id {
			continue
		}
		if p, ok := s.pages[it.Path]; ok {
			return p, true
		}
		return pageHandler{it.Label, s.sectionBody}, true
	}
	return pageHandler{}, false
}

// render runs load activation for the request path, then writes the page.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, title string, body bodyFunc) {
	ctx := r.Context()
	client := clientID(ctx)
	h := s.highlighter(client)

	if active, ok := h.ActivateOnLoad(r.URL.Path); ok {
		s.recordLoad(r, client, active.ID)
	}

	data := &pageData{
		Title:      title,
		SiteTitle:  s.title,
		Path:       r.URL.Path,
		Items:      h.Snapshot(),
		ClientID:   client,
		StorageKey: h.StorageKey(),
	}
	if sel, ok, err := h.Selection(ctx); err != nil {
		s.log.WithError(err).Warn("site: reading selection")
	} else if ok {
		data.Selection = sel
	}

	content, err := body(r, data)
	if err != nil {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("site: rendering body")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data.Body = content

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.log.WithError(err).Error("site: rendering page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Site) recordLoad(r *http.Request, client, itemID string) {
	if s.store == nil {
		return
	}
	err := s.store.Record(r.Context(), selection.Activation{
		ClientID: client,
		ItemID:   itemID,
		Trigger:  selection.TriggerLoad,
		Path:     r.URL.Path,
	})
	if err != nil {
		s.log.WithError(err).Warn("site: recording load activation")
	}
}

func (s *Site) execBody(name string, data *pageData) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.bodies[name].Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func (s *Site) homeBody(_ *http.Request, data *pageData) (template.HTML, error) {
	return s.execBody("home", data)
}

func (s *Site) historyBody(r *http.Request, data *pageData) (template.HTML, error) {
	if s.store != nil {
		hist, err := s.store.History(r.Context(), data.ClientID, 0)
		if err != nil {
			return "", err
		}
		data.History = hist
	}
	return s.execBody("history", data)
}

func (s *Site) settingsBody(_ *http.Request, data *pageData) (template.HTML, error) {
	return s.execBody("settings", data)
}

func (s *Site) documentationBody(_ *http.Request, _ *pageData) (template.HTML, error) {
	return s.docsHTML, nil
}

func (s *Site) sectionBody(_ *http.Request, data *pageData) (template.HTML, error) {
	return s.execBody("section", data)
}

func (s *Site) notFoundBody(_ *http.Request, data *pageData) (template.HTML, error) {
	return s.execBody("notfound", data)
}

func (s *Site) handleForget(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Forget(r.Context(), clientID(r.Context())); err != nil {
			s.log.WithError(err).Warn("site: forgetting client")
		}
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func staticHandler(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Write([]byte(body))
	}
}
