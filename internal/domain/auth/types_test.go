package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_LandingPathAndNavLabel(t *testing.T) {
	tests := []struct {
		role  Role
		path  string
		label string
	}{
		{RolePlatformAdmin, "/esadmin", "Sangams"},
		{RoleSocietyAdmin, "/admin", "Admin Dashboard"},
		{RoleMember, "/member", "My Dashboard"},
		{Role("AUDITOR"), HomePath, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.path, tt.role.LandingPath())
			assert.Equal(t, tt.label, tt.role.NavLabel())
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role("member").Valid(), "wire values are upper case")
	assert.False(t, Role("").Valid())
}

func TestSession_AuthenticatedAndHasToken(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{}.HasToken())

	restoring := Session{Token: "tok-1", Loading: true}
	assert.True(t, restoring.HasToken())
	assert.False(t, restoring.Authenticated())

	signedIn := Session{Token: "tok-1", User: &UserIdentity{Mobile: "9999999999", Role: RoleMember}}
	assert.True(t, signedIn.HasToken())
	assert.True(t, signedIn.Authenticated())
}
