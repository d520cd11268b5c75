package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-admin/internal/domain"
)

// runDirectoryContract exercises behaviour every UserDirectory shares.
func runDirectoryContract(t *testing.T, open func(t *testing.T) UserDirectory) {
	t.Run("save assigns id and round trips", func(t *testing.T) {
		dir := open(t)
		ctx := context.Background()

		user := employer("Acme", "biz-1")
		require.NoError(t, dir.Save(ctx, user))
		require.NotEmpty(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		got, err := dir.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEmployer, got.Role)
		assert.Equal(t, "Owner", got.FullName)
		require.NotNil(t, got.EmployerInformation)
		assert.Equal(t, "biz-1", got.EmployerInformation.VerificationID)
		assert.Nil(t, got.DisabilityInformation)
	})

	t.Run("unknown id", func(t *testing.T) {
		dir := open(t)
		ctx := context.Background()

		_, err := dir.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.ErrorIs(t, dir.DeleteByID(ctx, "missing"), ErrUserNotFound)
	})

	t.Run("save replaces whole record", func(t *testing.T) {
		dir := open(t)
		ctx := context.Background()

		user := applicant("doc1")
		require.NoError(t, dir.Save(ctx, user))

		user.Banned = true
		user.DisabilityInformation.IsIDVerified = true
		require.NoError(t, dir.Save(ctx, user))

		got, err := dir.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.Banned)
		assert.True(t, got.DisabilityInformation.IsIDVerified)
		assert.Equal(t, "doc1", got.DisabilityInformation.VerificationID)
	})

	t.Run("find all keeps insertion order", func(t *testing.T) {
		dir := open(t)
		ctx := context.Background()

		first := applicant("a")
		second := employer("Beta", "")
		third := applicant("")
		for _, u := range []*domain.User{first, second, third} {
			require.NoError(t, dir.Save(ctx, u))
		}
		first.FullName = "Renamed"
		require.NoError(t, dir.Save(ctx, first))

		all, err := dir.FindAll(ctx, UserFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{first.ID, second.ID, third.ID}, ids(all))

		applicants, err := dir.FindAll(ctx, RoleFilter(domain.RoleApplicant))
		require.NoError(t, err)
		assert.Equal(t, []string{first.ID, third.ID}, ids(applicants))
	})

	t.Run("count with filters", func(t *testing.T) {
		dir := open(t)
		ctx := context.Background()

		banned := applicant("")
		banned.Banned = true
		for _, u := range []*domain.User{applicant(""), banned, employer("Gamma", "")} {
			require.NoError(t, dir.Save(ctx, u))
		}

		total, err := dir.Count(ctx, UserFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)

		applicants, err := dir.Count(ctx, RoleFilter(domain.RoleApplicant))
		require.NoError(t, err)
		assert.EqualValues(t, 2, applicants)

		yes := true
		role := domain.RoleApplicant
		bannedApplicants, err := dir.Count(ctx, UserFilter{Role: &role, Banned: &yes})
		require.NoError(t, err)
		assert.EqualValues(t, 1, bannedApplicants)
	})

	t.Run("delete removes", func(t *testing.T) {
		dir := open(t)
		ctx := context.Background()

		user := employer("Delta", "")
		require.NoError(t, dir.Save(ctx, user))
		require.NoError(t, dir.DeleteByID(ctx, user.ID))

		_, err := dir.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
		total, err := dir.Count(ctx, UserFilter{})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("rejects record of the other role", func(t *testing.T) {
		dir := open(t)

		user := employer("Epsilon", "")
		user.DisabilityInformation = &domain.DisabilityInformation{DisabilityType: "visual"}
		assert.ErrorIs(t, dir.Save(context.Background(), user), domain.ErrRoleRecordMismatch)
	})

	t.Run("role swap on existing id is rejected", func(t *testing.T) {
		dir := open(t)
		ctx := context.Background()

		user := applicant("doc1")
		require.NoError(t, dir.Save(ctx, user))

		swapped := &domain.User{
			ID:                  user.ID,
			Role:                domain.RoleEmployer,
			FullName:            "Jo",
			EmployerInformation: &domain.EmployerInformation{CompanyName: "Evil"},
		}
		assert.ErrorIs(t, dir.Save(ctx, swapped), domain.ErrRoleRecordMismatch)

		got, err := dir.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleApplicant, got.Role)
		assert.Nil(t, got.EmployerInformation)
		require.NotNil(t, got.DisabilityInformation)
		assert.Equal(t, "doc1", got.DisabilityInformation.VerificationID)
	})
}

func employer(company, verificationID string) *domain.User {
	return &domain.User{
		Role:     domain.RoleEmployer,
		FullName: "Owner",
		Contact:  "555-0100",
		Email:    "owner@" + company + ".test",
		EmployerInformation: &domain.EmployerInformation{
			CompanyName:    company,
			CompanyAddress: "1 Main St",
			VerificationID: verificationID,
		},
	}
}

func applicant(verificationID string) *domain.User {
	return &domain.User{
		Role:     domain.RoleApplicant,
		FullName: "Jo",
		Contact:  "555-0199",
		Address:  "22 Elm St",
		DisabilityInformation: &domain.DisabilityInformation{
			VerificationID: verificationID,
			DisabilityType: "visual",
		},
	}
}

func ids(users []domain.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}
