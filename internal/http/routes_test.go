package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/domain/model"
	"github.com/Esangam/Esangam-UI/internal/service"
)

func TestRoutes_MemberLoginScenario(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.expectLogin("9999999999", "secret", "tok-1", memberUser())

	resp := b.login("9999999999", "secret")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	app.member.EXPECT().MyLoans(gomock.Any(), gomock.Any()).Return([]model.Loan{
		{ID: 1, Amount: 10000, Status: model.LoanStatusApproved, BaseRate: 12, DueDate: "2025-06-01"},
	}, nil)
	app.member.EXPECT().Announcements(gomock.Any(), gomock.Any()).Return([]model.Announcement{
		{ID: 4, Title: "AGM", Message: "Sunday 10am", CreatedAt: "2025-02-20"},
	}, nil)
	app.member.EXPECT().CurrentInterest(gomock.Any(), gomock.Any()).Return(model.InterestRate{BaseRate: 12, OverdueRate: 18}, nil)

	resp, body := b.get("/member", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, ContainsAll(body, []string{
		"My Dashboard",
		"Alpha",
		"9999999999 (MEMBER · Alpha)",
		"₹10,000.00",
		"₹11,200.00",
		"Jun 1, 2025",
		"AGM",
		"loan-chart-data",
	}), body)

	resp, _ = b.get("/admin", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = b.get("/esadmin", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestRoutes_UnauthenticatedVisitor(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)

	for _, path := range []string{"/member", "/admin", "/esadmin", "/notifications"} {
		resp, _ := b.get(path, nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	resp, body := b.get("/member", jsonHeader())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "unauthorized")

	resp, _ = b.get("/member", htmxHeader())
	assert.Equal(t, "/login", resp.Header.Get("Hx-Redirect"))

	resp, body = b.get("/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Welcome to Esangam")
	assert.Contains(t, body, `href="/login"`)
}

func TestRoutes_LoginFailureRerendersForm(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.identity.EXPECT().Login(gomock.Any(), "9999999999", "wrong").Return("", errors.New("401"))

	b.get("/login", nil)
	resp, body := b.post("/login", url.Values{"mobile": {"9999999999"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, service.MsgLoginFailed)
	assert.Contains(t, body, `value="9999999999"`)

	resp, body = b.post("/login", url.Values{"mobile": {""}, "password": {""}}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, service.MsgLoginFailed)
}

func TestRoutes_LoginIdentityFailureKeepsToken(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.identity.EXPECT().Login(gomock.Any(), "9999999999", "secret").Return("tok-1", nil)
	app.identity.EXPECT().Me(gomock.Any(), gomock.Any()).Return(domainauth.UserIdentity{}, errors.New("boom"))

	b.get("/login", nil)
	resp, body := b.post("/login", url.Values{"mobile": {"9999999999"}, "password": {"secret"}}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, service.MsgLoginFailed)

	resp, body = b.get("/auth/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &status))
	assert.Equal(t, false, status["authenticated"])
}

func TestRoutes_LoginHonoursRedirect(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.expectLogin("8888888888", "secret", "tok-2", societyAdminUser())

	_, body := b.get("/login?redirect=/admin", nil)
	assert.Contains(t, body, `name="redirect" value="/admin"`)

	resp, _ := b.post("/login", url.Values{"mobile": {"8888888888"}, "password": {"secret"}, "redirect": {"https://evil.example/"}}, nil)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestRoutes_HTMXLoginUsesHxRedirect(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.expectLogin("8888888888", "secret", "tok-2", societyAdminUser())

	b.get("/login", nil)
	resp, _ := b.post("/login", url.Values{"mobile": {"8888888888"}, "password": {"secret"}, "redirect": {"/admin"}}, htmxHeader())
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Hx-Redirect"))
}

func TestRoutes_LogoutClearsSession(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.expectLogin("9999999999", "secret", "tok-1", memberUser())
	b.login("9999999999", "secret")

	resp, _ := b.post("/logout", nil, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = b.get("/member", nil)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Zero(t, app.tokens.Len(), "persisted token removed")
}

func TestRoutes_AuthStatus(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.expectLogin("8888888888", "secret", "tok-2", societyAdminUser())
	b.login("8888888888", "secret")

	_, body := b.get("/auth/status", jsonHeader())
	var status struct {
		Authenticated bool                    `json:"authenticated"`
		Landing       string                  `json:"landing"`
		User          domainauth.UserIdentity `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &status))
	assert.True(t, status.Authenticated)
	assert.Equal(t, "/admin", status.Landing)
	assert.Equal(t, "8888888888", status.User.Mobile)
}

func TestRoutes_SocietyAdminDashboardAndMutations(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.expectLogin("8888888888", "secret", "tok-2", societyAdminUser())
	b.login("8888888888", "secret")

	dashboard := model.AdminDashboard{
		SocietyName: "Alpha",
		Members:     []model.Member{{MobileNumber: "9999999999", FirstName: "Ravi", LastName: "K"}},
		Loans: []model.Loan{
			{ID: 11, Name: "Ravi K", Amount: 5000, Status: model.LoanStatusRequested},
			{ID: 12, Name: "Ravi K", Amount: 2000, Status: model.LoanStatusApproved},
		},
		BaseRate:    10,
		OverdueRate: 15,
	}
	app.society.EXPECT().Dashboard(gomock.Any(), gomock.Any()).Return(dashboard, nil).Times(2)

	resp, body := b.get("/admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, ContainsAll(body, []string{
		"Alpha",
		"Sangam Admin Dashboard",
		"Ravi K",
		"/admin/loans/11/approve",
		"Admin Dashboard",
	}), body)
	assert.NotContains(t, body, "/admin/loans/12/approve", "only requested loans can be decided")

	app.society.EXPECT().ApproveLoan(gomock.Any(), gomock.Any(), model.LoanDecision{LoanID: 11}).Return(nil)
	resp, _ = b.post("/admin/loans/11/approve", nil, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	_, body = b.get("/admin", nil)
	assert.Contains(t, body, service.MsgLoanApproved, "flash shown after redirect")

	resp, _ = b.post("/admin/interest", url.Values{"baseRate": {"abc"}, "overdueRate": {"1"}}, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestRoutes_CSRFRequiredOnPosts(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	b.get("/login", nil)

	resp, _ := b.post("/login", url.Values{"mobile": {"1"}, "password": {"2"}, DefaultCSRFFormField: {"forged"}}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRoutes_NotFoundAndHealth(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)

	resp, _ := b.get("/does-not-exist", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = b.get("/does-not-exist", jsonHeader())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := b.get("/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestRoutes_BootstrapIsPublicAndUnauthenticated(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.platform.EXPECT().BootstrapAdmin(gomock.Any(), model.BootstrapAdminRequest{MobileNumber: "7777777777", Password: "pw"}).
		Return(model.BootstrapAdminResponse{}, nil)

	resp, body := b.get("/bootstrap", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Initialize ES Admin")

	_, body = b.post("/bootstrap", url.Values{"mobile": {"7777777777"}, "password": {"pw"}, "confirm": {"pw"}}, nil)
	assert.Contains(t, body, service.MsgBootstrapCreated)

	_, body = b.post("/bootstrap", url.Values{"mobile": {"7777777777"}, "password": {"pw"}, "confirm": {"other"}}, nil)
	assert.Contains(t, body, service.MsgBootstrapMismatch)
}

func TestNewRouter_RequiresDependencies(t *testing.T) {
	_, err := NewRouter(RouterServices{})
	require.Error(t, err)
}

func TestRoutes_PlatformAdminSocieties(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.expectLogin("7777777777", "secret", "tok-3", platformAdminUser())
	resp := b.login("7777777777", "secret")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	societies := []model.Society{{ID: 3, Name: "Alpha", Description: "Lake view"}}
	app.platform.EXPECT().ListSocieties(gomock.Any(), gomock.Any()).Return(societies, nil).Times(3)

	resp, body := b.get("/esadmin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, ContainsAll(body, []string{"Esangam Admin", "Alpha", "Lake view", "Sangams"}), body)

	_, body = b.post("/esadmin/societies", url.Values{"societyName": {"Beta"}, "adminMobile": {"6666666666"}}, nil)
	assert.Contains(t, body, service.MsgSocietyMissing)
	assert.Contains(t, body, `value="Beta"`, "submitted values are kept")

	req := model.CreateSocietyRequest{SocietyName: "Beta", AdminMobile: "6666666666", FirstName: "Asha", Password: "pw"}
	app.platform.EXPECT().CreateSociety(gomock.Any(), gomock.Any(), req).Return(nil)
	resp, _ = b.post("/esadmin/societies", url.Values{
		"societyName": {"Beta"}, "adminMobile": {"6666666666"}, "firstName": {"Asha"}, "password": {"pw"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/esadmin", resp.Header.Get("Location"))

	_, body = b.get("/esadmin", nil)
	assert.Contains(t, body, service.MsgSocietyCreated)
}

func TestRoutes_MemberLoanRequest(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.newBrowser(t)
	app.expectLogin("9999999999", "secret", "tok-1", memberUser())
	b.login("9999999999", "secret")

	resp, _ := b.post("/member/loans", url.Values{"amount": {"-5"}}, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/member", resp.Header.Get("Location"))

	app.member.EXPECT().RequestLoan(gomock.Any(), gomock.Any(), model.LoanRequest{Amount: 2500}).Return(nil)
	resp, _ = b.post("/member/loans", url.Values{"amount": {"2500"}}, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	app.member.EXPECT().MyLoans(gomock.Any(), gomock.Any()).Return(nil, errors.New("down"))
	app.member.EXPECT().Announcements(gomock.Any(), gomock.Any()).Return([]model.Announcement{}, nil)
	app.member.EXPECT().CurrentInterest(gomock.Any(), gomock.Any()).Return(model.InterestRate{BaseRate: 12, OverdueRate: 18}, nil)

	resp, body := b.get("/member", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, service.MsgLoanAmountInvalid)
	assert.Contains(t, body, service.MsgLoanRequested)
	assert.Contains(t, body, "No announcements.")
}
