package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func member() *UserIdentity {
	return &UserIdentity{Mobile: "9999999999", Role: RoleMember, SocietyName: "Alpha"}
}

func TestDecide_TruthTable(t *testing.T) {
	adminOnly := RequireRoles(RoleSocietyAdmin)
	memberOnly := RequireRoles(RoleMember)

	tests := []struct {
		name    string
		session Session
		policy  Policy
		want    Decision
	}{
		{"loading without user", Session{Loading: true}, adminOnly, DecisionLoading},
		{"loading with matching user", Session{Token: "t", User: member(), Loading: true}, memberOnly, DecisionLoading},
		{"loading with wrong role", Session{Token: "t", User: member(), Loading: true}, adminOnly, DecisionLoading},
		{"no user", Session{}, memberOnly, DecisionLogin},
		{"token but no user", Session{Token: "t"}, memberOnly, DecisionLogin},
		{"no user authenticated-only", Session{}, Authenticated(), DecisionLogin},
		{"wrong role", Session{Token: "t", User: member()}, adminOnly, DecisionHome},
		{"match", Session{Token: "t", User: member()}, memberOnly, DecisionRender},
		{"authenticated-only match", Session{Token: "t", User: member()}, Authenticated(), DecisionRender},
		{"multi-role match", Session{Token: "t", User: member()}, RequireRoles(RoleSocietyAdmin, RoleMember), DecisionRender},
		{"public while loading", Session{Loading: true}, Public(), DecisionRender},
		{"public without user", Session{}, Public(), DecisionRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.session, tt.policy))
		})
	}
}

func TestDecide_MemberOnAdminRouteRedirectsHome(t *testing.T) {
	d := Decide(Session{Token: "tok", User: member()}, RequireRoles(RoleSocietyAdmin))
	assert.Equal(t, DecisionHome, d)
	assert.Equal(t, "/", d.Location())
}

func TestDecision_Location(t *testing.T) {
	assert.Equal(t, "/login", DecisionLogin.Location())
	assert.Equal(t, "/", DecisionHome.Location())
	assert.Empty(t, DecisionRender.Location())
	assert.Empty(t, DecisionLoading.Location())
}

func TestRequireRoles_CopiesInput(t *testing.T) {
	roles := []Role{RoleMember}
	p := RequireRoles(roles...)
	roles[0] = RoleSocietyAdmin
	assert.True(t, p.Allows(RoleMember))
	assert.False(t, p.Allows(RoleSocietyAdmin))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" member ")
	assert.NoError(t, err)
	assert.Equal(t, RoleMember, r)

	_, err = ParseRole("SUPERUSER")
	assert.Error(t, err)
}

func TestUserIdentity_ValidateAndLabel(t *testing.T) {
	u := member()
	assert.NoError(t, u.Validate())
	assert.Equal(t, "9999999999 (MEMBER · Alpha)", u.Label())

	assert.Error(t, UserIdentity{Role: RoleMember}.Validate())
	assert.Error(t, UserIdentity{Mobile: "1", Role: "ROOT"}.Validate())
	assert.Equal(t, "1 (ES_ADMIN)", UserIdentity{Mobile: "1", Role: RolePlatformAdmin}.Label())
}
