package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-admin/internal/domain"
)

func TestMemoryUserDirectory(t *testing.T) {
	runDirectoryContract(t, func(*testing.T) UserDirectory {
		return NewMemoryUserDirectory()
	})
}

func TestMemoryUserDirectory_ReturnsCopies(t *testing.T) {
	dir := NewMemoryUserDirectory()
	ctx := context.Background()

	user := applicant("doc1")
	require.NoError(t, dir.Save(ctx, user))

	got, err := dir.FindByID(ctx, user.ID)
	require.NoError(t, err)
	got.DisabilityInformation.IsIDVerified = true
	got.Banned = true

	again, err := dir.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, again.Banned)
	assert.False(t, again.DisabilityInformation.IsIDVerified)
}

func TestMemoryUserDirectory_RoleIsKept(t *testing.T) {
	dir := NewMemoryUserDirectory()
	ctx := context.Background()

	user := employer("Acme", "")
	require.NoError(t, dir.Save(ctx, user))

	user.Role = domain.RoleApplicant
	require.NoError(t, dir.Save(ctx, user))
	assert.Equal(t, domain.RoleEmployer, user.Role)

	got, err := dir.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployer, got.Role)
}
