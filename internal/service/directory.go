package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-admin/internal/domain"
	"github.com/spec-kit/directory-admin/internal/events"
	"github.com/spec-kit/directory-admin/internal/repository"
	apperrors "github.com/spec-kit/directory-admin/pkg/util/errorutil"
)

// AdminDependencies bundles the collaborators shared by the admin services.
type AdminDependencies struct {
	Directory  repository.UserDirectory
	Dispatcher events.Dispatcher
	Hasher     PasswordHasher
	Logger     *zap.Logger
}

func (d AdminDependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// loadUser reads a user and converts directory errors into domain errors.
func loadUser(ctx context.Context, directory repository.UserDirectory, userID string) (*domain.User, error) {
	user, err := directory.FindByID(ctx, userID)
	if err != nil {
		return nil, directoryError(err, userID)
	}
	return user, nil
}

func saveUser(ctx context.Context, directory repository.UserDirectory, user *domain.User) error {
	if err := directory.Save(ctx, user); err != nil {
		return directoryError(err, user.ID)
	}
	return nil
}

func directoryError(err error, userID string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
	}
	return apperrors.NewStorageFailure(err)
}

// publishEvent emits a moderation event after the write it describes has been
// persisted. Failures are logged and never returned.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if actor, ok := events.ActorFromContext(ctx); ok {
		event.Actor = actor
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish moderation event",
			zap.String("event_type", string(event.Type)),
			zap.String("user_id", event.UserID),
			zap.Error(err))
	}
}
