package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/domain/model"
	apperrors "github.com/Esangam/Esangam-UI/internal/errors"
	"github.com/Esangam/Esangam-UI/internal/observability/metrics"
)

type loginRequest struct {
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// identityResponse mirrors GET /auth/me before the role is parsed.
type identityResponse struct {
	Mobile      string `json:"mobile"`
	Role        string `json:"role"`
	SocietyID   *int64 `json:"societyId"`
	SocietyName string `json:"societyName"`
}

// Login exchanges credentials for a bearer token. It never sends a credential.
func (c *Client) Login(ctx context.Context, mobile, password string) (string, error) {
	req, err := c.newRequest(ctx, nil, http.MethodPost, "/auth/login", nil, loginRequest{
		MobileNumber: strings.TrimSpace(mobile),
		Password:     password,
	})
	if err != nil {
		return "", err
	}
	var out loginResponse
	if err := c.do(req, "auth_login", &out); err != nil {
		return "", err
	}
	tok := strings.TrimSpace(out.Token)
	if tok == "" {
		return "", apperrors.Upstream(http.StatusOK, "login response did not contain a token")
	}
	return tok, nil
}

// Me fetches the identity bound to the bearer token from ts.
func (c *Client) Me(ctx context.Context, ts oauth2.TokenSource) (domainauth.UserIdentity, error) {
	req, err := c.newRequest(ctx, ts, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return domainauth.UserIdentity{}, err
	}
	var out identityResponse
	if err := c.do(req, "auth_me", &out); err != nil {
		return domainauth.UserIdentity{}, err
	}
	role, err := domainauth.ParseRole(out.Role)
	if err != nil {
		return domainauth.UserIdentity{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "invalid identity payload")
	}
	id := domainauth.UserIdentity{
		Mobile:      strings.TrimSpace(out.Mobile),
		Role:        role,
		SocietyID:   out.SocietyID,
		SocietyName: strings.TrimSpace(out.SocietyName),
	}
	if err := id.Validate(); err != nil {
		return domainauth.UserIdentity{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "invalid identity payload")
	}
	return id, nil
}

// BootstrapAdmin creates the first platform admin. It never sends a credential.
func (c *Client) BootstrapAdmin(
	ctx context.Context,
	in model.BootstrapAdminRequest,
) (model.BootstrapAdminResponse, error) {
	if err := in.Validate(); err != nil {
		return model.BootstrapAdminResponse{}, apperrors.Validation(err.Error())
	}
	req, err := c.newRequest(ctx, nil, http.MethodPost, "/auth/bootstrap/create-admin", nil, in)
	if err != nil {
		return model.BootstrapAdminResponse{}, err
	}
	var out model.BootstrapAdminResponse
	if err := c.do(req, "auth_bootstrap", &out); err != nil {
		if errors.Is(err, errEmptyBody) {
			return model.BootstrapAdminResponse{}, nil
		}
		return model.BootstrapAdminResponse{}, err
	}
	return out, nil
}

// OpenStream opens GET /notifications/stream?mobile=<id>. It never sends a credential.
// The caller owns the returned body and must close it.
func (c *Client) OpenStream(ctx context.Context, mobile string) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, nil, http.MethodGet, "/notifications/stream", url.Values{"mobile": {mobile}}, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	body, err := c.breaker.Execute(func() (any, error) {
		resp, doErr := c.stream.Do(req)
		if doErr != nil {
			return nil, transportError(ctx, doErr)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			defer resp.Body.Close()
			return nil, c.errorFromResponse(resp)
		}
		return resp.Body, nil
	})
	err = breakerError(err)
	metrics.ObserveBackendCall("notifications_stream", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return body.(io.ReadCloser), nil
}
