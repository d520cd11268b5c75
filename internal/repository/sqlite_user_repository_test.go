package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-admin/internal/persistence"
)

func openSQLiteDirectory(t *testing.T) *SQLiteUserDirectory {
	t.Helper()

	db, err := persistence.OpenSQLite(filepath.Join(t.TempDir(), "directory.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	dir := NewSQLiteUserDirectory(db.DB)
	require.NoError(t, dir.Init(context.Background()))
	return dir
}

func TestSQLiteUserDirectory(t *testing.T) {
	runDirectoryContract(t, func(t *testing.T) UserDirectory {
		return openSQLiteDirectory(t)
	})
}

func TestSQLiteUserDirectory_InitIsIdempotent(t *testing.T) {
	dir := openSQLiteDirectory(t)
	ctx := context.Background()

	user := applicant("doc1")
	require.NoError(t, dir.Save(ctx, user))
	require.NoError(t, dir.Init(ctx))

	total, err := dir.Count(ctx, UserFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestSQLiteUserDirectory_AbsentRecordStaysNil(t *testing.T) {
	dir := openSQLiteDirectory(t)
	ctx := context.Background()

	user := employer("Acme", "")
	user.EmployerInformation = nil
	require.NoError(t, dir.Save(ctx, user))

	got, err := dir.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EmployerInformation)
	assert.Nil(t, got.DisabilityInformation)
}
