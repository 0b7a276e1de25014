package web

import (
	"context"
	"github.com/QuantumGhost/folio/internal"
	"github.com/QuantumGhost/folio/internal/content"
	"github.com/QuantumGhost/folio/internal/i18n"
	"github.com/QuantumGhost/folio/internal/jsontree"
	"github.com/QuantumGhost/folio/internal/metrics"
	"github.com/QuantumGhost/folio/internal/render"
	"github.com/QuantumGhost/folio/internal/search"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"html/template"
	"net/http"
)

// Content is the read side of the content origin.
type Content interface {
	Posts(ctx context.Context, lang string) []content.Post
	Post(ctx context.Context, slug string, lang string) (*content.Article, bool)
}

type Searcher interface {
	Search(ctx context.Context, lang string, query string, limit int) ([]search.Result, error)
}

type Options struct {
	Site        internal.Site
	Content     Content
	Renderer    *render.Renderer
	Preferences i18n.PreferenceStore
	Metrics     *metrics.Collector
	// Searcher is optional; the search page is only routed when set.
	Searcher Searcher
	// HTTPClient fetches documents for the JSON viewer. The default client
	// only reaches public addresses.
	HTTPClient *http.Client
}

type Server struct {
	site     internal.Site
	content  Content
	renderer *render.Renderer
	prefs    i18n.PreferenceStore
	metrics  *metrics.Collector
	searcher Searcher
	client   *http.Client
	pages    map[string]*template.Template
}

func NewServer(opts Options) (*Server, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	s := &Server{
		site:     opts.Site,
		content:  opts.Content,
		renderer: opts.Renderer,
		prefs:    opts.Preferences,
		metrics:  opts.Metrics,
		searcher: opts.Searcher,
		client:   opts.HTTPClient,
		pages:    pages,
	}
	if s.renderer == nil {
		s.renderer = render.New()
	}
	if s.prefs == nil {
		s.prefs = i18n.NewCookieStore()
	}
	if s.metrics == nil {
		s.metrics = metrics.NewCollector("folio")
	}
	if s.client == nil {
		s.client = jsontree.NewClient()
	}
	return s, nil
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(requestIDLogger)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)
	r.Use(instrument(s.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", s.metrics.Handler())
	r.Handle("/static/*", staticHandler())

	r.Get("/lang/{code}", s.switchLanguage)
	r.Get("/json", s.jsonPage)
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		r.Get("/json", s.jsonAPI)
	})
	if s.searcher != nil {
		r.Get("/search", s.searchPage)
	}

	r.Get("/", s.about)
	r.Get("/writing", s.writing)
	r.Get("/{param}", s.aboutOrPost)
	r.Get("/{lang}/writing", s.localizedWriting)
	r.Get("/{lang}/{slug}", s.localizedPost)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.notFound(w, r, i18n.FromPath(r.URL.Path))
	})
	return r
}
