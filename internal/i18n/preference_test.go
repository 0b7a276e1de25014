package i18n

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCookieStore(t *testing.T) {
	store := NewCookieStore()
	rec := httptest.NewRecorder()
	store.Set(rec, httptest.NewRequest(http.MethodGet, "/", nil), "ja")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "language", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	code, ok := store.Get(req)
	assert.True(t, ok)
	assert.Equal(t, "ja", code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "language", Value: "klingon"})
	_, ok = store.Get(req)
	assert.False(t, ok)

	_, ok = store.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	store := &MemoryStore{}
	_, ok := store.Get(nil)
	assert.False(t, ok)
	store.Set(nil, nil, "zhs")
	code, ok := store.Get(nil)
	assert.True(t, ok)
	assert.Equal(t, "zhs", code)
}
