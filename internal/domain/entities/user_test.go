package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@campus.edu", NormalizeEmail("  User@Campus.EDU "))
	assert.Equal(t, "user@campus.edu", NormalizeEmail("user@campus.edu"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestValidUserRole(t *testing.T) {
	assert.True(t, ValidUserRole(UserRoleBuyer))
	assert.True(t, ValidUserRole(UserRoleSeller))
	assert.True(t, ValidUserRole(UserRoleAdmin))
	assert.False(t, ValidUserRole(UserRole("MODERATOR")))
	assert.False(t, ValidUserRole(UserRole("")))
	assert.False(t, ValidUserRole(UserRole("buyer")))
}
