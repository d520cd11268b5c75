package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-admin/internal/domain"
	"github.com/spec-kit/directory-admin/internal/events"
	"github.com/spec-kit/directory-admin/internal/repository"
	apperrors "github.com/spec-kit/directory-admin/pkg/util/errorutil"
)

// VerificationService reviews role-specific identity submissions.
type VerificationService struct {
	directory  repository.UserDirectory
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewVerificationService constructs the service.
func NewVerificationService(deps AdminDependencies) *VerificationService {
	return &VerificationService{
		directory:  deps.Directory,
		dispatcher: deps.Dispatcher,
		logger:     deps.logger(),
	}
}

// SetVerificationStatus approves (true) or rejects (false) the submission held
// in the record of the supplied role. The supplied role, not the stored one,
// picks the record; a user never carries the other role's record, so a
// mismatched role fails with MissingVerificationSubmission.
func (s *VerificationService) SetVerificationStatus(ctx context.Context, userID, role string, isVerified bool) (*domain.User, error) {
	user, err := loadUser(ctx, s.directory, userID)
	if err != nil {
		return nil, err
	}

	parsed, ok := domain.ParseRole(role)
	if !ok {
		return nil, apperrors.NewInvalidRole(role)
	}

	record := user.VerificationRecord(parsed)
	if record == nil || !record.HasSubmission() {
		s.logger.Debug("verification without submission",
			zap.String("user_id", userID),
			zap.String("role", role))
		return nil, apperrors.NewMissingVerificationSubmission(role)
	}

	previous := record.IDVerified()
	record.SetIDVerified(isVerified)
	if err := saveUser(ctx, s.directory, user); err != nil {
		s.logger.Error("persist verification status", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("verification status updated",
		zap.String("user_id", user.ID),
		zap.String("role", role),
		zap.Bool("is_id_verified", isVerified))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:   events.EventVerificationStatusChanged,
		UserID: user.ID,
		Role:   user.Role,
		Payload: events.VerificationChangedPayload{
			Role:           parsed,
			VerificationID: record.SubmissionID(),
			OldVerified:    previous,
			NewVerified:    isVerified,
		},
	})
	return user, nil
}

// Approve marks the submission verified.
func (s *VerificationService) Approve(ctx context.Context, userID, role string) (*domain.User, error) {
	return s.SetVerificationStatus(ctx, userID, role, true)
}

// Reject marks the submission not verified.
func (s *VerificationService) Reject(ctx context.Context, userID, role string) (*domain.User, error) {
	return s.SetVerificationStatus(ctx, userID, role, false)
}

// ListPendingVerifications returns every user of role that has submitted a
// verification id, whatever its current verified flag, in insertion order.
func (s *VerificationService) ListPendingVerifications(ctx context.Context, role string) ([]domain.User, error) {
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return nil, apperrors.NewInvalidRole(role)
	}

	users, err := s.directory.FindAll(ctx, repository.RoleFilter(parsed))
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	result := make([]domain.User, 0, len(users))
	for i := range users {
		record := users[i].VerificationRecord(parsed)
		if record != nil && record.HasSubmission() {
			result = append(result, users[i])
		}
	}
	return result, nil
}
