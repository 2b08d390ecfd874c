package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfHandler(t *testing.T, cfg CSRFConfig) (http.Handler, *string) {
	t.Helper()
	var seen string
	return CSRFProtection(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCSRFToken(r)
		w.WriteHeader(http.StatusOK)
	})), &seen
}

func csrfCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultCSRFCookieName {
			return c
		}
	}
	return nil
}

func TestCSRF_SafeMethodIssuesToken(t *testing.T) {
	h, seen := csrfHandler(t, CSRFConfig{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	c := csrfCookie(rec)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, c.Value, *seen, "templates see the cookie token")
	assert.False(t, c.HttpOnly, "scripts read the token for htmx headers")
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.False(t, c.Secure)

	// An existing cookie is reused rather than rotated.
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Nil(t, csrfCookie(rec))
	assert.Equal(t, c.Value, *seen)
}

func TestCSRF_SecureBehindTLSProxy(t *testing.T) {
	h, _ := csrfHandler(t, CSRFConfig{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "http, https")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotNil(t, csrfCookie(rec))
	assert.True(t, csrfCookie(rec).Secure)
}

func TestCSRF_PostValidation(t *testing.T) {
	const token = "known-token"
	h, _ := csrfHandler(t, CSRFConfig{})

	tests := []struct {
		name   string
		header map[string]string
		form   url.Values
		cookie bool
		want   int
	}{
		{name: "header token", header: map[string]string{DefaultCSRFHeaderName: token}, cookie: true, want: http.StatusOK},
		{name: "form token", form: url.Values{DefaultCSRFFormField: {token}}, cookie: true, want: http.StatusOK},
		{name: "wrong header token", header: map[string]string{DefaultCSRFHeaderName: "nope"}, cookie: true, want: http.StatusForbidden},
		{name: "wrong form token", form: url.Values{DefaultCSRFFormField: {"nope"}}, cookie: true, want: http.StatusForbidden},
		{name: "no token", cookie: true, want: http.StatusForbidden},
		{name: "no cookie", form: url.Values{DefaultCSRFFormField: {token}}, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.form != nil {
				body = strings.NewReader(tt.form.Encode())
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(http.MethodPost, "/login", body)
			if tt.form != nil {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if tt.cookie {
				req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCSRF_HTMXFailureRaisesToast(t *testing.T) {
	h, _ := csrfHandler(t, CSRFConfig{})
	req := httptest.NewRequest(http.MethodPost, "/admin/members", nil)
	req.Header.Set("Hx-Request", "true")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "abc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "showToast")
}

func TestCSRF_CustomNames(t *testing.T) {
	h, _ := csrfHandler(t, CSRFConfig{CookieName: "c", HeaderName: "X-Token", FormFieldName: "tok"})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tok=v"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "c", Value: "v"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateCSRFToken(t *testing.T) {
	a, err := generateCSRFToken(DefaultCSRFTokenLength)
	require.NoError(t, err)
	b, err := generateCSRFToken(DefaultCSRFTokenLength)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44)
}
