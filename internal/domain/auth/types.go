// Package auth contains domain-level types for authentication, sessions and route guarding.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

// TokenKey is the well-known storage key under which the bearer token is persisted.
const TokenKey = "esangam_token"

// Role represents a platform authorization role.
// The string form matches the backend wire value.
type Role string

const (
	RolePlatformAdmin Role = "ES_ADMIN"
	RoleSocietyAdmin  Role = "ADMIN"
	RoleMember        Role = "MEMBER"
)

// Valid reports whether the role is one the platform knows about.
func (r Role) Valid() bool {
	switch r {
	case RolePlatformAdmin, RoleSocietyAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a backend role string.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return role, nil
}

// LandingPath is the dashboard route for the role.
func (r Role) LandingPath() string {
	switch r {
	case RolePlatformAdmin:
		return "/esadmin"
	case RoleSocietyAdmin:
		return "/admin"
	case RoleMember:
		return "/member"
	default:
		return HomePath
	}
}

// NavLabel is the navigation label shown for the role's dashboard.
func (r Role) NavLabel() string {
	switch r {
	case RolePlatformAdmin:
		return "Sangams"
	case RoleSocietyAdmin:
		return "Admin Dashboard"
	case RoleMember:
		return "My Dashboard"
	default:
		return ""
	}
}

// UserIdentity is the authenticated principal returned by GET /auth/me.
// It is immutable for the lifetime of a session.
type UserIdentity struct {
	Mobile      string `json:"mobile"`
	Role        Role   `json:"role"`
	SocietyID   *int64 `json:"societyId,omitempty"`
	SocietyName string `json:"societyName,omitempty"`
}

// Validate checks the identity payload received from the backend.
func (u UserIdentity) Validate() error {
	if strings.TrimSpace(u.Mobile) == "" {
		return errors.New("identity mobile is required")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("identity role %q is not supported", u.Role)
	}
	return nil
}

// Label renders "mobile (ROLE · society)" for navigation chrome.
func (u UserIdentity) Label() string {
	if u.SocietyName != "" {
		return fmt.Sprintf("%s (%s · %s)", u.Mobile, u.Role, u.SocietyName)
	}
	return fmt.Sprintf("%s (%s)", u.Mobile, u.Role)
}

// Session is the observable state of a session manager.
// User is non-nil only when Token is set and the identity fetch succeeded.
// Loading is true only while the initial restore is in progress.
type Session struct {
	Token   string
	User    *UserIdentity
	Loading bool
}

// Authenticated reports whether an identity is present.
func (s Session) Authenticated() bool { return s.User != nil }

// HasToken reports whether a bearer token is installed.
func (s Session) HasToken() bool { return s.Token != "" }
