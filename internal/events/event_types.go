package events

import (
	"time"

	"github.com/spec-kit/directory-admin/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserBanned                EventType = "user_banned"
	EventUserUnbanned              EventType = "user_unbanned"
	EventUserDeleted               EventType = "user_deleted"
	EventVerificationStatusChanged EventType = "verification_status_changed"
	EventUserPatched               EventType = "user_patched"
)

// AllEventTypes lists every moderation event type.
var AllEventTypes = []EventType{
	EventUserBanned,
	EventUserUnbanned,
	EventUserDeleted,
	EventVerificationStatusChanged,
	EventUserPatched,
}

// Actor identifies the administrator behind an event, when known.
type Actor struct {
	AdminID string `json:"admin_id,omitempty"`
}

// Event represents a moderation change emitted after a successful write.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Role      domain.Role `json:"role,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

// BanChangedPayload payload for ban and unban.
type BanChangedPayload struct {
	Banned bool `json:"banned"`
}

// VerificationChangedPayload payload.
type VerificationChangedPayload struct {
	Role           domain.Role `json:"role"`
	VerificationID string      `json:"verification_id"`
	OldVerified    bool        `json:"old_verified"`
	NewVerified    bool        `json:"new_verified"`
}

// UserPatchedPayload lists the fields a patch changed.
type UserPatchedPayload struct {
	Fields []string `json:"fields"`
}
