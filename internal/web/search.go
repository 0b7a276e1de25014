package web

import (
	"github.com/QuantumGhost/folio/internal"
	"github.com/QuantumGhost/folio/internal/i18n"
	"github.com/QuantumGhost/folio/internal/search"
	"net/http"
	"strings"
)

type searchResult struct {
	search.Result
	Href string
}

type searchView struct {
	Query   string
	Results []searchResult
}

func (s *Server) searchPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang := q.Get("lang")
	if _, ok := i18n.Lookup(lang); !ok {
		lang = s.viewerLanguage(r)
	}
	view := searchView{Query: strings.TrimSpace(q.Get("q"))}
	if view.Query != "" {
		results, err := s.searcher.Search(r.Context(), lang, view.Query, internal.DefaultSearchLimit)
		if err != nil {
			s.writeError(w, r, lang, err)
			return
		}
		for _, res := range results {
			view.Results = append(view.Results, searchResult{
				Result: res,
				Href:   i18n.WithPath("/"+res.Slug, lang),
			})
		}
	}
	s.writePage(w, r, http.StatusOK, "search", page{
		Title: i18n.T(lang, "search.title") + " - " + s.site.Author,
		Lang:  lang,
		Path:  r.URL.RequestURI(),
		Data:  view,
	})
}
