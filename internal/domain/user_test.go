package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasRole(t *testing.T) {
	employee := &User{Role: RoleEmployee}
	admin := &User{Role: RoleAdmin}

	assert.True(t, employee.HasRole(RoleEmployee))
	assert.False(t, employee.HasRole(RoleAdmin))

	// Admins can do everything employees can.
	assert.True(t, admin.HasRole(RoleEmployee))
	assert.True(t, admin.HasRole(RoleAdmin))

	assert.False(t, admin.HasRole("superuser"))
}

func TestUser_IsAnonymous(t *testing.T) {
	email := "someone@example.com"

	assert.True(t, (&User{}).IsAnonymous())
	assert.False(t, (&User{Email: &email}).IsAnonymous())
}
