package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	apperrors "github.com/Esangam/Esangam-UI/internal/errors"
	"github.com/Esangam/Esangam-UI/internal/http/ui/viewmodel"
)

func TestNavFor(t *testing.T) {
	tests := []struct {
		role domainauth.Role
		page string
		want []viewmodel.NavItem
	}{
		{domainauth.RolePlatformAdmin, PagePlatformAdmin, []viewmodel.NavItem{{Label: "Sangams", Href: "/esadmin", Active: true}}},
		{domainauth.RoleSocietyAdmin, PageHome, []viewmodel.NavItem{{Label: "Admin Dashboard", Href: "/admin"}}},
		{domainauth.RoleMember, PageMember, []viewmodel.NavItem{{Label: "My Dashboard", Href: "/member", Active: true}}},
		{domainauth.Role("AUDITOR"), PageHome, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, navFor(tt.role, tt.page))
		})
	}
}

func TestBuildLayout_Guest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	layout := buildLayout(r, PageMeta{Title: "Esangam", PageTitle: "Home", CurrentPage: PageHome})

	assert.False(t, layout.IsAuthenticated)
	assert.Nil(t, layout.User)
	assert.Empty(t, layout.Nav)
	assert.Equal(t, PageHome, layout.CurrentPage)
}

func TestBuildLayout_SignedIn(t *testing.T) {
	f := newGuardFixture(t, 0)
	bs := f.signedIn(t, "b1", societyAdminUser())
	r := guardedRequest(bs, nil)

	layout := buildLayout(r, PageMeta{Title: "Esangam - Admin", CurrentPage: PageSocietyAdmin})
	require.True(t, layout.IsAuthenticated)
	require.NotNil(t, layout.User)
	assert.Equal(t, "8888888888 (ADMIN · Alpha)", layout.User.Label)
	assert.Equal(t, []viewmodel.NavItem{{Label: "Admin Dashboard", Href: "/admin", Active: true}}, layout.Nav)
}

func TestRenderPage_PartialWritesTitleAndTrigger(t *testing.T) {
	h := &UIHandlers{T: RequireTemplateRenderer(t)}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Hx-Request", "true")
	rec := httptest.NewRecorder()

	h.renderPage(rec, r, basePageData(r, PageMeta{Title: "Esangam <Home>", CurrentPage: PageHome}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Esangam &lt;Home&gt;</title>")
	assert.Contains(t, body, "Welcome to Esangam")
	assert.NotContains(t, body, "app-bar", "partial renders skip the layout")
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "nav:activate")
}

func TestRenderPage_Full(t *testing.T) {
	h := &UIHandlers{T: RequireTemplateRenderer(t)}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.renderPage(rec, r, basePageData(r, PageMeta{Title: "Esangam", CurrentPage: PageHome}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ContainsAll(rec.Body.String(), []string{"<html", "app-bar", "brand-suffix", "Welcome to Esangam"}))
	assert.Empty(t, rec.Header().Get("Hx-Trigger"))
}

func TestBackendMessage(t *testing.T) {
	const fallback = "Something went wrong"
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain error", errors.New("dial tcp: refused"), fallback},
		{"backend message", apperrors.Upstream(http.StatusConflict, "ES Admin already exists"), "ES Admin already exists"},
		{"bare status text", apperrors.Upstream(http.StatusBadGateway, http.StatusText(http.StatusBadGateway)), fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backendMessage(tt.err, fallback))
		})
	}
}
