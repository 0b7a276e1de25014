package i18n

import (
	"net/http"
	"sync"
	"time"
)

// PreferenceStore remembers the language a visitor picked.
type PreferenceStore interface {
	Get(r *http.Request) (string, bool)
	Set(w http.ResponseWriter, r *http.Request, code string)
}

const preferenceCookie = "language"

type CookieStore struct {
	MaxAge time.Duration
	Secure bool
}

func NewCookieStore() *CookieStore {
	return &CookieStore{MaxAge: 365 * 24 * time.Hour}
}

func (s *CookieStore) Get(r *http.Request) (string, bool) {
	c, err := r.Cookie(preferenceCookie)
	if err != nil {
		return "", false
	}
	if _, ok := Lookup(c.Value); !ok {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(w http.ResponseWriter, _ *http.Request, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     preferenceCookie,
		Value:    code,
		Path:     "/",
		MaxAge:   int(s.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// MemoryStore keeps a single preference for every request.
type MemoryStore struct {
	mu   sync.Mutex
	code string
}

func (s *MemoryStore) Get(_ *http.Request) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code, s.code != ""
}

func (s *MemoryStore) Set(_ http.ResponseWriter, _ *http.Request, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = code
}
