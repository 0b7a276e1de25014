package web

import (
	"context"
	"encoding/json"
	"github.com/QuantumGhost/folio/internal/i18n"
	"github.com/QuantumGhost/folio/internal/jsontree"
	"github.com/morikuni/failure"
	"github.com/rs/zerolog/hlog"
	"net/http"
	"net/url"
)

type jsonNode struct {
	Key        string        `json:"key"`
	Type       jsontree.Type `json:"type"`
	Path       []string      `json:"path"`
	ID         string        `json:"id"`
	Display    string        `json:"display"`
	Expandable bool          `json:"expandable"`
	Href       string        `json:"-"`
}

type crumb struct {
	Key  string
	Href string
}

type jsonView struct {
	URL     string              `json:"url"`
	Path    []string            `json:"path"`
	Summary string              `json:"summary"`
	TOC     []jsontree.TocEntry `json:"toc,omitempty"`
	Nodes   []jsonNode          `json:"nodes"`
	Crumbs  []crumb             `json:"-"`
}

func viewerHref(raw string, path []string) string {
	q := url.Values{"url": {raw}}
	if len(path) > 0 {
		q["path"] = path
	}
	return "/json?" + q.Encode()
}

// loadJSON fetches the document at raw and builds the view of the value at
// path. Only the top level carries an outline.
func (s *Server) loadJSON(ctx context.Context, raw string, path []string) (*jsonView, error) {
	root, err := jsontree.Fetch(ctx, s.client, raw)
	if err != nil {
		return nil, err
	}
	v, ok := jsontree.Resolve(root, path)
	if !ok {
		return nil, failure.New(PathNotFound,
			failure.Context{"url": raw},
			failure.Message("No value at the requested path"),
		)
	}
	view := &jsonView{URL: raw, Path: path, Summary: jsontree.Summary(v), Nodes: []jsonNode{}}
	if !v.IsContainer() {
		view.Summary = jsontree.Format(v)
	}
	if len(path) == 0 {
		view.TOC = jsontree.ExtractTOC(root, jsontree.DefaultTOCDepth)
	}
	for i := range path {
		view.Crumbs = append(view.Crumbs, crumb{Key: path[i], Href: viewerHref(raw, path[:i+1])})
	}
	for _, n := range jsontree.Nodes(v, path) {
		node := jsonNode{
			Key:        n.Key,
			Type:       n.Type,
			Path:       n.Path,
			ID:         n.ID,
			Display:    jsontree.Format(n.Value),
			Expandable: n.Value.IsContainer() && n.Value.Len() > 0,
		}
		if node.Expandable {
			node.Href = viewerHref(raw, n.Path)
		}
		view.Nodes = append(view.Nodes, node)
	}
	return view, nil
}

func (s *Server) viewerLanguage(r *http.Request) string {
	if code, ok := s.prefs.Get(r); ok {
		return code
	}
	return i18n.DefaultCode
}

func (s *Server) jsonPage(w http.ResponseWriter, r *http.Request) {
	lang := s.viewerLanguage(r)
	q := r.URL.Query()
	view, err := s.loadJSON(r.Context(), q.Get("url"), q["path"])
	if err != nil {
		s.writeError(w, r, lang, err)
		return
	}
	s.writePage(w, r, http.StatusOK, "json", page{
		Title: view.Summary + " - " + s.site.Author,
		Lang:  lang,
		Path:  r.URL.RequestURI(),
		Data:  view,
	})
}

func (s *Server) jsonAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := s.loadJSON(r.Context(), q.Get("url"), q["path"])
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("json view failed")
		writeJSON(w, statusOf(err), map[string]string{"error": messageOf(err)})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
