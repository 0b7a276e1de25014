package web

import (
	"github.com/QuantumGhost/folio/internal/content"
	"github.com/QuantumGhost/folio/internal/i18n"
	"github.com/go-chi/chi/v5"
	"github.com/morikuni/failure"
	"html/template"
	"net/http"
	"strings"
)

const aboutSlug = "about"

// Pages with a single address for every language.
var unlocalized = map[string]bool{"/json": true, "/search": true}

// preferredRedirect sends a visitor on an unprefixed page to the language
// they picked earlier. It reports whether a redirect was written.
func (s *Server) preferredRedirect(w http.ResponseWriter, r *http.Request) bool {
	code, ok := s.prefs.Get(r)
	if !ok || i18n.IsDefault(code) {
		return false
	}
	http.Redirect(w, r, i18n.WithPath(r.URL.Path, code), http.StatusFound)
	return true
}

// prefixedLanguage checks the language segment of a prefixed route. The
// default language has no prefix, so its paths are redirected.
func (s *Server) prefixedLanguage(w http.ResponseWriter, r *http.Request) (string, bool) {
	code := chi.URLParam(r, "lang")
	if _, ok := i18n.Lookup(code); !ok {
		s.notFound(w, r, i18n.DefaultCode)
		return "", false
	}
	if i18n.IsDefault(code) {
		http.Redirect(w, r, i18n.StripPath(r.URL.Path), http.StatusMovedPermanently)
		return "", false
	}
	s.prefs.Set(w, r, code)
	return code, true
}

func (s *Server) about(w http.ResponseWriter, r *http.Request) {
	if s.preferredRedirect(w, r) {
		return
	}
	s.renderAbout(w, r, i18n.DefaultCode)
}

func (s *Server) writing(w http.ResponseWriter, r *http.Request) {
	if s.preferredRedirect(w, r) {
		return
	}
	s.renderWriting(w, r, i18n.DefaultCode)
}

// aboutOrPost serves /{param}: a language code selects that language's
// about page, anything else is a post slug.
func (s *Server) aboutOrPost(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "param")
	if _, ok := i18n.Lookup(param); ok {
		if i18n.IsDefault(param) {
			http.Redirect(w, r, "/", http.StatusMovedPermanently)
			return
		}
		s.prefs.Set(w, r, param)
		s.renderAbout(w, r, param)
		return
	}
	if s.preferredRedirect(w, r) {
		return
	}
	s.renderPost(w, r, param, i18n.DefaultCode)
}

func (s *Server) localizedWriting(w http.ResponseWriter, r *http.Request) {
	if lang, ok := s.prefixedLanguage(w, r); ok {
		s.renderWriting(w, r, lang)
	}
}

func (s *Server) localizedPost(w http.ResponseWriter, r *http.Request) {
	if lang, ok := s.prefixedLanguage(w, r); ok {
		s.renderPost(w, r, chi.URLParam(r, "slug"), lang)
	}
}

func (s *Server) switchLanguage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if _, ok := i18n.Lookup(code); !ok {
		s.notFound(w, r, i18n.DefaultCode)
		return
	}
	next := r.URL.Query().Get("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	s.prefs.Set(w, r, code)
	if target, _, _ := strings.Cut(next, "?"); unlocalized[target] {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}
	http.Redirect(w, r, i18n.WithPath(next, code), http.StatusFound)
}

type aboutView struct {
	Body template.HTML
}

func (s *Server) renderAbout(w http.ResponseWriter, r *http.Request, lang string) {
	article, ok := s.content.Post(r.Context(), aboutSlug, lang)
	if !ok {
		s.notFound(w, r, lang)
		return
	}
	body, err := s.renderer.Render(article.Body)
	if err != nil {
		s.writeError(w, r, lang, err)
		return
	}
	s.writePage(w, r, http.StatusOK, "about", page{Lang: lang, Data: aboutView{Body: body}})
}

type postItem struct {
	Title      string
	Href       string
	CreateTime string
	Created    string
}

func (s *Server) renderWriting(w http.ResponseWriter, r *http.Request, lang string) {
	posts := s.content.Posts(r.Context(), lang)
	items := make([]postItem, 0, len(posts))
	for _, post := range posts {
		if post.Slug() == aboutSlug {
			continue
		}
		items = append(items, postItem{
			Title:      post.DisplayTitle(),
			Href:       i18n.WithPath("/"+post.Slug(), lang),
			CreateTime: post.CreateTime,
			Created:    formatDate(post.CreateTime, lang),
		})
	}
	s.writePage(w, r, http.StatusOK, "writing", page{
		Title: i18n.T(lang, "nav.writing") + " - " + s.site.Author,
		Lang:  lang,
		Data:  items,
	})
}

type postView struct {
	Article *content.Article
	Title   string
	Created string
	Updated string
	TOC     []content.TocEntry
	Body    template.HTML
}

func (s *Server) renderPost(w http.ResponseWriter, r *http.Request, slug string, lang string) {
	article, ok := s.content.Post(r.Context(), slug, lang)
	if !ok {
		s.notFound(w, r, lang)
		return
	}
	body, err := s.renderer.Render(article.Body)
	if err != nil {
		s.writeError(w, r, lang, failure.Wrap(err, failure.Context{"slug": slug}))
		return
	}
	view := postView{
		Article: article,
		Title:   article.DisplayTitle(),
		Created: formatDate(article.CreateTime, lang),
		TOC:     content.ExtractTOC(article.Body),
		Body:    body,
	}
	if updated := formatDate(article.UpdateTime, lang); updated != view.Created {
		view.Updated = updated
	}
	s.writePage(w, r, http.StatusOK, "post", page{
		Title: view.Title + " - " + s.site.Author,
		Lang:  lang,
		Data:  view,
	})
}

func formatDate(value string, lang string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return i18n.FormatDate(value, lang)
}
