package httpx

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"github.com/Esangam/Esangam-UI/internal/adapters/memstore"
	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/mocks"
	"github.com/Esangam/Esangam-UI/internal/service"
)

const testSessionSecret = "0123456789abcdef0123456789abcdef"

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// testApp is the full router over real services backed by mocked backend ports.
type testApp struct {
	identity *mocks.MockIdentityClient
	platform *mocks.MockPlatformAPI
	society  *mocks.MockSocietyAdminAPI
	member   *mocks.MockMemberAPI
	tokens   *memstore.TokenStore
	clock    *clockwork.FakeClock
	registry *service.SessionRegistry
	server   *httptest.Server
}

type testAppOptions struct {
	LoginRate  rate.Limit
	LoginBurst int
	Registry   service.SessionRegistryConfig
}

func newTestApp(t *testing.T, opts testAppOptions) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)
	a := &testApp{
		identity: mocks.NewMockIdentityClient(ctrl),
		platform: mocks.NewMockPlatformAPI(ctrl),
		society:  mocks.NewMockSocietyAdminAPI(ctrl),
		member:   mocks.NewMockMemberAPI(ctrl),
		tokens:   memstore.NewTokenStore(),
		clock:    clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)),
	}
	a.registry = service.NewSessionRegistry(service.SessionRegistryOptions{
		Identity: a.identity,
		Tokens:   a.tokens,
		Clock:    a.clock,
		Config:   opts.Registry,
	})
	t.Cleanup(a.registry.Close)

	loginRate := opts.LoginRate
	if loginRate == 0 {
		loginRate = rate.Inf
	}
	handler, err := NewRouter(RouterServices{
		Registry:    a.registry,
		Platform:    service.NewPlatformService(service.PlatformServiceOptions{API: a.platform}),
		Society:     service.NewSocietyAdminService(service.SocietyAdminServiceOptions{API: a.society}),
		Members:     service.NewMemberService(service.MemberServiceOptions{API: a.member}),
		CookieStore: NewCookieStore(CookieStoreOptions{Secret: []byte(testSessionSecret), MaxAge: time.Hour}),
		LoginRate:   loginRate,
		LoginBurst:  opts.LoginBurst,
		TemplateFS:  os.DirFS(TemplatePathFromTest),
		Clock:       a.clock,
	})
	require.NoError(t, err)

	a.server = httptest.NewServer(handler)
	t.Cleanup(a.server.Close)
	return a
}

// expectLogin wires a successful credential exchange and identity fetch.
func (a *testApp) expectLogin(mobile, password, token string, user domainauth.UserIdentity) {
	a.identity.EXPECT().Login(gomock.Any(), mobile, password).Return(token, nil)
	a.identity.EXPECT().Me(gomock.Any(), gomock.Any()).Return(user, nil)
}

// browser is a cookie-keeping client that never follows redirects.
type browser struct {
	t      *testing.T
	base   *url.URL
	client *http.Client
}

func (a *testApp) newBrowser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base, err := url.Parse(a.server.URL)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: base,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

func (b *browser) get(path string, header http.Header) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base.String()+path, nil)
	require.NoError(b.t, err)
	for k, vs := range header {
		req.Header[k] = vs
	}
	return b.do(req)
}

// post submits form with the CSRF token picked up from an earlier page load.
func (b *browser) post(path string, form url.Values, header http.Header) (*http.Response, string) {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if form.Get(DefaultCSRFFormField) == "" {
		form.Set(DefaultCSRFFormField, b.cookie(DefaultCSRFCookieName))
	}
	req, err := http.NewRequest(http.MethodPost, b.base.String()+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, vs := range header {
		req.Header[k] = vs
	}
	return b.do(req)
}

func (b *browser) cookie(name string) string {
	for _, c := range b.client.Jar.Cookies(b.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// login loads the form for its cookies, then posts credentials.
func (b *browser) login(mobile, password string) *http.Response {
	b.t.Helper()
	b.get("/login", nil)
	resp, _ := b.post("/login", url.Values{"mobile": {mobile}, "password": {password}}, nil)
	return resp
}

func htmxHeader() http.Header {
	return http.Header{"Hx-Request": {"true"}}
}

func jsonHeader() http.Header {
	return http.Header{"Accept": {"application/json"}}
}

func memberUser() domainauth.UserIdentity {
	id := int64(3)
	return domainauth.UserIdentity{Mobile: "9999999999", Role: domainauth.RoleMember, SocietyID: &id, SocietyName: "Alpha"}
}

func societyAdminUser() domainauth.UserIdentity {
	id := int64(3)
	return domainauth.UserIdentity{Mobile: "8888888888", Role: domainauth.RoleSocietyAdmin, SocietyID: &id, SocietyName: "Alpha"}
}

func platformAdminUser() domainauth.UserIdentity {
	return domainauth.UserIdentity{Mobile: "7777777777", Role: domainauth.RolePlatformAdmin}
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
