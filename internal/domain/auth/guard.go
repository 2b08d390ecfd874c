package auth

import "slices"

const (
	// LoginPath is the login entry point unauthenticated visitors are sent to.
	LoginPath = "/login"
	// HomePath is the default landing route.
	HomePath = "/"
)

// Decision is the outcome of evaluating a Policy against a Session.
type Decision int

const (
	DecisionRender Decision = iota
	DecisionLoading
	DecisionLogin
	DecisionHome
)

func (d Decision) String() string {
	switch d {
	case DecisionRender:
		return "render"
	case DecisionLoading:
		return "loading"
	case DecisionLogin:
		return "login"
	case DecisionHome:
		return "home"
	default:
		return "unknown"
	}
}

// Location returns the redirect target for redirect decisions and "" otherwise.
func (d Decision) Location() string {
	switch d {
	case DecisionLogin:
		return LoginPath
	case DecisionHome:
		return HomePath
	default:
		return ""
	}
}

// Policy describes what a route requires: nothing (public), any identity, or one of a set of roles.
type Policy struct {
	public bool
	roles  []Role
}

// Public allows every visitor, including while a session is restoring.
func Public() Policy { return Policy{public: true} }

// Authenticated requires an identity of any role.
func Authenticated() Policy { return Policy{} }

// RequireRoles requires an identity whose role is in roles.
// With no roles it behaves like Authenticated.
func RequireRoles(roles ...Role) Policy {
	return Policy{roles: slices.Clone(roles)}
}

// IsPublic reports whether the policy performs no checks.
func (p Policy) IsPublic() bool { return p.public }

// Allows reports whether role satisfies the policy's role set.
func (p Policy) Allows(role Role) bool {
	if p.public || len(p.roles) == 0 {
		return true
	}
	return slices.Contains(p.roles, role)
}

// Decide is a pure function of session state and policy.
// Checks run in order: loading, missing identity, role mismatch.
func Decide(s Session, p Policy) Decision {
	if p.public {
		return DecisionRender
	}
	if s.Loading {
		return DecisionLoading
	}
	if s.User == nil {
		return DecisionLogin
	}
	if !p.Allows(s.User.Role) {
		return DecisionHome
	}
	return DecisionRender
}
