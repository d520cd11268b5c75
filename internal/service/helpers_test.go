package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-admin/internal/domain"
	"github.com/spec-kit/directory-admin/internal/events"
	"github.com/spec-kit/directory-admin/internal/repository"
)

var errDirectoryDown = errors.New("directory down")

// failingDirectory fails every call with errDirectoryDown.
type failingDirectory struct{}

func (failingDirectory) FindByID(context.Context, string) (*domain.User, error) {
	return nil, errDirectoryDown
}

func (failingDirectory) FindAll(context.Context, repository.UserFilter) ([]domain.User, error) {
	return nil, errDirectoryDown
}

func (failingDirectory) Save(context.Context, *domain.User) error { return errDirectoryDown }

func (failingDirectory) DeleteByID(context.Context, string) error { return errDirectoryDown }

func (failingDirectory) Count(context.Context, repository.UserFilter) (int64, error) {
	return 0, errDirectoryDown
}

// saveFailingDirectory reads from the wrapped directory and fails on writes.
type saveFailingDirectory struct {
	repository.UserDirectory
}

func (saveFailingDirectory) Save(context.Context, *domain.User) error { return errDirectoryDown }

type prefixHasher struct{}

func (prefixHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

// eventRecorder subscribes to every moderation event.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func newEventRecorder(d events.Dispatcher) *eventRecorder {
	r := &eventRecorder{}
	for _, eventType := range events.AllEventTypes {
		d.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, e)
			return nil
		})
	}
	return r
}

func (r *eventRecorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	directory *repository.MemoryUserDirectory
	recorder  *eventRecorder
	deps      AdminDependencies
}

func newFixture() *fixture {
	directory := repository.NewMemoryUserDirectory()
	dispatcher := events.NewInMemoryDispatcher()
	return &fixture{
		directory: directory,
		recorder:  newEventRecorder(dispatcher),
		deps: AdminDependencies{
			Directory:  directory,
			Dispatcher: dispatcher,
			Hasher:     prefixHasher{},
		},
	}
}

func (f *fixture) seed(t *testing.T, user *domain.User) *domain.User {
	t.Helper()
	require.NoError(t, f.directory.Save(context.Background(), user))
	return user
}

func (f *fixture) reload(t *testing.T, id string) *domain.User {
	t.Helper()
	user, err := f.directory.FindByID(context.Background(), id)
	require.NoError(t, err)
	return user
}

func newEmployer(verificationID string) *domain.User {
	return &domain.User{
		Role:     domain.RoleEmployer,
		FullName: "Acme Owner",
		Contact:  "555-0100",
		Email:    "owner@acme.test",
		EmployerInformation: &domain.EmployerInformation{
			CompanyName:    "Acme",
			CompanyAddress: "1 Main St",
			VerificationID: verificationID,
		},
	}
}

func newApplicant(verificationID string) *domain.User {
	return &domain.User{
		Role:     domain.RoleApplicant,
		FullName: "Jo Applicant",
		Contact:  "555-0199",
		Email:    "jo@example.test",
		Address:  "22 Elm St",
		DisabilityInformation: &domain.DisabilityInformation{
			VerificationID: verificationID,
			DisabilityType: "visual",
		},
	}
}

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }
