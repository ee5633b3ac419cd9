package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, input := range []string{"User", "user", "USER", " user "} {
		role, err := ParseRole(input)
		require.NoError(t, err)
		require.Equal(t, RoleUser, role)
	}

	for _, input := range []string{"Admin", "admin", "ADMIN"} {
		role, err := ParseRole(input)
		require.NoError(t, err)
		require.Equal(t, RoleAdmin, role)
	}

	for _, input := range []string{"", "root", "administrator"} {
		_, err := ParseRole(input)
		require.Error(t, err)
	}
}

func TestRoleIsAdmin(t *testing.T) {
	require.True(t, RoleAdmin.IsAdmin())
	require.True(t, Role("ADMIN").IsAdmin())
	require.False(t, RoleUser.IsAdmin())
	require.False(t, Role("").IsAdmin())
}
