package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionMiddleware(t *testing.T, f guardFixture, next http.HandlerFunc) http.Handler {
	t.Helper()
	store := NewCookieStore(CookieStoreOptions{Secret: []byte(testSessionSecret)})
	return BrowserSessions(BrowserSessionsConfig{Store: store, Registry: f.registry})(next)
}

// browserCookie returns the last browser cookie written, which carries the final session state.
func browserCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var last *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == BrowserCookieName {
			last = c
		}
	}
	return last
}

func TestBrowserSessions_IssuesAndReusesBrowserID(t *testing.T) {
	f := newGuardFixture(t, 0)
	var seen []string
	h := newSessionMiddleware(t, f, func(w http.ResponseWriter, r *http.Request) {
		bs, ok := GetBrowserSessionFromContext(r.Context())
		require.True(t, ok)
		seen = append(seen, bs.ID)
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c := browserCookie(t, rec)
	require.NotNil(t, c, "first visit issues a browser cookie")
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Nil(t, browserCookie(t, rec), "known browsers are not re-issued a cookie")

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
	assert.Equal(t, 1, f.registry.Len())
}

func TestBrowserSessions_ReplacesTamperedCookie(t *testing.T) {
	f := newGuardFixture(t, 0)
	var id string
	h := newSessionMiddleware(t, f, func(_ http.ResponseWriter, r *http.Request) {
		bs, _ := GetBrowserSessionFromContext(r.Context())
		id = bs.ID
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: BrowserCookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotNil(t, browserCookie(t, rec))
	assert.Len(t, id, 36)
}

func TestFlashes_SurviveRedirect(t *testing.T) {
	f := newGuardFixture(t, 0)
	var popped int
	var got []string
	h := newSessionMiddleware(t, f, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			addFlash(w, r, FlashError, "Failed to approve loan")
			addFlash(w, r, FlashSuccess, "Member created")
			addFlash(w, r, FlashSuccess, "")
			redirectTo(w, r, "/admin")
			return
		}
		flashes := popFlashes(w, r)
		popped = len(flashes)
		for _, fl := range flashes {
			got = append(got, fl.Kind+":"+fl.Message)
		}
	})

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := browserCookie(t, first)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodPost, "/admin/members", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	withFlash := browserCookie(t, rec)
	require.NotNil(t, withFlash)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(withFlash)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, []string{"success:Member created", "error:Failed to approve loan"}, got)
	cleared := browserCookie(t, rec)
	require.NotNil(t, cleared, "draining flashes rewrites the cookie")

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cleared)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Zero(t, popped, "flashes are shown once")
}
