package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUnknownRole        = errors.New("unknown role")
	ErrRoleRecordMismatch = errors.New("information record does not match role")
)

// EmployerInformation is the company record carried by Employer users.
type EmployerInformation struct {
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	VerificationID string `json:"verificationId,omitempty"`
	IsIDVerified   bool   `json:"isIdVerified"`
}

// DisabilityInformation is the disability-status record carried by Applicant users.
type DisabilityInformation struct {
	VerificationID string `json:"verificationId,omitempty"`
	DisabilityType string `json:"disabilityType"`
	IsIDVerified   bool   `json:"isIdVerified"`
}

// VerificationRecord is the role-specific record an administrator reviews.
type VerificationRecord interface {
	SubmissionID() string
	HasSubmission() bool
	IDVerified() bool
	SetIDVerified(verified bool)
}

func (e *EmployerInformation) SubmissionID() string { return e.VerificationID }
func (e *EmployerInformation) HasSubmission() bool { return hasSubmission(e.VerificationID) }
func (e *EmployerInformation) IDVerified() bool { return e.IsIDVerified }
func (e *EmployerInformation) SetIDVerified(verified bool) { e.IsIDVerified = verified }

func (d *DisabilityInformation) SubmissionID() string { return d.VerificationID }
func (d *DisabilityInformation) HasSubmission() bool { return hasSubmission(d.VerificationID) }
func (d *DisabilityInformation) IDVerified() bool { return d.IsIDVerified }
func (d *DisabilityInformation) SetIDVerified(verified bool) { d.IsIDVerified = verified }

func hasSubmission(id string) bool {
	return strings.TrimSpace(id) != ""
}

// User is the canonical directory entry.
type User struct {
	ID                    string
	Role                  Role
	FullName              string
	Contact               string
	Email                 string
	PasswordHash          string
	Age                   int
	Address               string
	Banned                bool
	IsVerified            bool
	EmployerInformation   *EmployerInformation
	DisabilityInformation *DisabilityInformation
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// VerificationRecord returns the record reviewed for role, or nil when the
// user carries none for it.
func (u *User) VerificationRecord(role Role) VerificationRecord {
	switch role {
	case RoleEmployer:
		if u.EmployerInformation != nil {
			return u.EmployerInformation
		}
	case RoleApplicant:
		if u.DisabilityInformation != nil {
			return u.DisabilityInformation
		}
	}
	return nil
}

// PendingVerification reports a submitted but not yet approved document.
func (u *User) PendingVerification() bool {
	rec := u.VerificationRecord(u.Role)
	return rec != nil && rec.HasSubmission() && !rec.IDVerified()
}

// Validate checks the role tag against the populated information record.
func (u *User) Validate() error {
	switch u.Role {
	case RoleEmployer:
		if u.DisabilityInformation != nil {
			return ErrRoleRecordMismatch
		}
	case RoleApplicant:
		if u.EmployerInformation != nil {
			return ErrRoleRecordMismatch
		}
	default:
		return ErrUnknownRole
	}
	return nil
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.EmployerInformation != nil {
		info := *u.EmployerInformation
		cp.EmployerInformation = &info
	}
	if u.DisabilityInformation != nil {
		info := *u.DisabilityInformation
		cp.DisabilityInformation = &info
	}
	return &cp
}
