package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-admin/internal/events"
	"github.com/spec-kit/directory-admin/internal/repository"
	apperrors "github.com/spec-kit/directory-admin/pkg/util/errorutil"
)

// ModerationService suspends, restores and removes accounts.
type ModerationService struct {
	directory  repository.UserDirectory
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewModerationService constructs the service.
func NewModerationService(deps AdminDependencies) *ModerationService {
	return &ModerationService{
		directory:  deps.Directory,
		dispatcher: deps.Dispatcher,
		logger:     deps.logger(),
	}
}

// Ban suspends an unbanned user and returns the new ban state.
func (s *ModerationService) Ban(ctx context.Context, userID string) (bool, error) {
	return s.setBanned(ctx, userID, true)
}

// Unban restores a banned user and returns the new ban state.
func (s *ModerationService) Unban(ctx context.Context, userID string) (bool, error) {
	return s.setBanned(ctx, userID, false)
}

func (s *ModerationService) setBanned(ctx context.Context, userID string, banned bool) (bool, error) {
	user, err := loadUser(ctx, s.directory, userID)
	if err != nil {
		return false, err
	}

	if user.Banned == banned {
		msg := "user is not banned"
		if banned {
			msg = "user is already banned"
		}
		s.logger.Debug("ban transition rejected", zap.String("user_id", userID), zap.Bool("banned", user.Banned))
		return user.Banned, apperrors.NewAlreadyInState(msg, map[string]any{"user_id": userID, "banned": user.Banned})
	}

	user.Banned = banned
	if err := saveUser(ctx, s.directory, user); err != nil {
		s.logger.Error("persist ban state", zap.String("user_id", userID), zap.Error(err))
		return !banned, err
	}

	eventType := events.EventUserUnbanned
	if banned {
		eventType = events.EventUserBanned
	}
	s.logger.Info("ban state changed",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role.String()),
		zap.Bool("banned", banned))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    eventType,
		UserID:  user.ID,
		Role:    user.Role,
		Payload: events.BanChangedPayload{Banned: banned},
	})
	return banned, nil
}

// DeleteUser removes the user permanently.
func (s *ModerationService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.directory.DeleteByID(ctx, userID); err != nil {
		return directoryError(err, userID)
	}

	s.logger.Info("user deleted", zap.String("user_id", userID))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:   events.EventUserDeleted,
		UserID: userID,
	})
	return nil
}
