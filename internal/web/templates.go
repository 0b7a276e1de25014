package web

import (
	"bytes"
	"embed"
	"github.com/QuantumGhost/folio/internal"
	"github.com/QuantumGhost/folio/internal/i18n"
	"github.com/morikuni/failure"
	"github.com/rs/zerolog/hlog"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"about", "writing", "post", "error", "json", "search"}

var funcs = template.FuncMap{
	"t":        i18n.T,
	"date":     i18n.FormatDate,
	"langPath": i18n.WithPath,
	"switchHref": func(code string, path string) string {
		return "/lang/" + code + "?" + url.Values{"next": {path}}.Encode()
	},
}

func parseTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, failure.Wrap(err, failure.Context{"template": name})
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// page is what every template receives.
type page struct {
	Title     string
	Site      internal.Site
	Lang      string
	HTMLLang  string
	Path      string
	Languages []i18n.Language
	Search    bool
	Data      interface{}
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	p.Site = s.site
	p.Languages = i18n.Languages()
	p.HTMLLang = i18n.Resolve(p.Lang).Tag.String()
	p.Search = s.searcher != nil
	if p.Path == "" {
		p.Path = i18n.StripPath(r.URL.Path)
	}
	if p.Title == "" {
		p.Title = s.site.Author
	}
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("error while rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type errorView struct {
	Status  int
	Message string
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, lang string, err error) {
	status := statusOf(err)
	event := hlog.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = hlog.FromRequest(r).Error().Stack()
	}
	event.Err(err).Int("status", status).Msg("request failed")
	s.writePage(w, r, status, "error", page{
		Lang: lang,
		Data: errorView{Status: status, Message: messageOf(err)},
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, lang string) {
	s.writePage(w, r, http.StatusNotFound, "error", page{
		Lang: lang,
		Data: errorView{Status: http.StatusNotFound, Message: i18n.T(lang, "common.notFound")},
	})
}
