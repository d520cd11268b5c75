package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-admin/internal/domain"
	"github.com/spec-kit/directory-admin/internal/events"
	"github.com/spec-kit/directory-admin/internal/repository"
	apperrors "github.com/spec-kit/directory-admin/pkg/util/errorutil"
)

// PasswordHasher turns a plaintext credential into its stored form.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

var errNoHasher = errors.New("password hasher not configured")

// ProfileMergeService applies partial profile updates.
type ProfileMergeService struct {
	directory  repository.UserDirectory
	dispatcher events.Dispatcher
	hasher     PasswordHasher
	logger     *zap.Logger
}

// NewProfileMergeService constructs the service.
func NewProfileMergeService(deps AdminDependencies) *ProfileMergeService {
	return &ProfileMergeService{
		directory:  deps.Directory,
		dispatcher: deps.Dispatcher,
		hasher:     deps.Hasher,
		logger:     deps.logger(),
	}
}

// ApplyPatch merges patch into the stored user and returns the merged record.
func (s *ProfileMergeService) ApplyPatch(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	user, err := loadUser(ctx, s.directory, userID)
	if err != nil {
		return nil, err
	}

	changed, err := s.merge(user, patch)
	if err != nil {
		return nil, err
	}

	if err := saveUser(ctx, s.directory, user); err != nil {
		s.logger.Error("persist patched user", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user patched",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role.String()),
		zap.Strings("fields", changed))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventUserPatched,
		UserID:  user.ID,
		Role:    user.Role,
		Payload: events.UserPatchedPayload{Fields: changed},
	})
	return user, nil
}

// merge writes the patch onto user and reports the fields it touched. Common
// string fields treat "" as absent. Information blocks are merged only onto
// the record matching the stored role; the other role's block is dropped.
func (s *ProfileMergeService) merge(user *domain.User, patch domain.UserPatch) ([]string, error) {
	var changed []string

	setString := func(name string, dst *string, src *string) {
		if src != nil && *src != "" {
			*dst = *src
			changed = append(changed, name)
		}
	}

	setString("email", &user.Email, patch.Email)
	if patch.Password != nil && *patch.Password != "" {
		if s.hasher == nil {
			return nil, apperrors.NewInternalError(errNoHasher)
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
		changed = append(changed, "password")
	}
	if patch.IsVerified != nil {
		user.IsVerified = *patch.IsVerified
		changed = append(changed, "isVerified")
	}
	setString("fullName", &user.FullName, patch.FullName)
	setString("contact", &user.Contact, patch.Contact)

	switch user.Role {
	case domain.RoleEmployer:
		if patch.EmployerInformation != nil {
			if user.EmployerInformation == nil {
				user.EmployerInformation = &domain.EmployerInformation{}
			}
			patch.EmployerInformation.MergeInto(user.EmployerInformation)
			changed = append(changed, "employerInformation")
		}
		if patch.DisabilityInformation != nil || patch.Address != nil {
			s.logger.Debug("ignoring applicant-only patch fields", zap.String("user_id", user.ID))
		}
	case domain.RoleApplicant:
		if patch.DisabilityInformation != nil {
			if user.DisabilityInformation == nil {
				user.DisabilityInformation = &domain.DisabilityInformation{}
			}
			patch.DisabilityInformation.MergeInto(user.DisabilityInformation)
			changed = append(changed, "disabilityInformation")
		}
		setString("address", &user.Address, patch.Address)
		if patch.EmployerInformation != nil {
			s.logger.Debug("ignoring employer-only patch fields", zap.String("user_id", user.ID))
		}
	default:
		return nil, apperrors.NewInvalidRole(user.Role.String())
	}

	return changed, nil
}
