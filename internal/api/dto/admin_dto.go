package dto

import (
	"time"

	"github.com/spec-kit/directory-admin/internal/domain"
	"github.com/spec-kit/directory-admin/internal/service"
)

// UserResponse is the full user record without credential material.
type UserResponse struct {
	ID                    string                        `json:"id"`
	Role                  domain.Role                   `json:"role"`
	FullName              string                        `json:"fullName"`
	Contact               string                        `json:"contact"`
	Email                 string                        `json:"email"`
	Age                   int                           `json:"age,omitempty"`
	Address               string                        `json:"address,omitempty"`
	Banned                bool                          `json:"banned"`
	IsVerified            bool                          `json:"isVerified"`
	EmployerInformation   *domain.EmployerInformation   `json:"employerInformation,omitempty"`
	DisabilityInformation *domain.DisabilityInformation `json:"disabilityInformation,omitempty"`
	CreatedAt             time.Time                     `json:"createdAt"`
	UpdatedAt             time.Time                     `json:"updatedAt"`
}

// UserListResponse partitions full records by role.
type UserListResponse struct {
	Employers  []UserResponse `json:"employers"`
	Applicants []UserResponse `json:"applicants"`
}

// UserSummaryResponse is the narrowed administrator view of a user.
type UserSummaryResponse struct {
	UserID                string                        `json:"userId"`
	FullName              string                        `json:"fullName"`
	Contact               string                        `json:"contact"`
	EmployerInformation   *domain.EmployerInformation   `json:"employerInformation,omitempty"`
	DisabilityInformation *domain.DisabilityInformation `json:"disabilityInformation,omitempty"`
	Banned                bool                          `json:"banned"`
}

// SummaryListResponse partitions summaries by role.
type SummaryListResponse struct {
	Employers  []UserSummaryResponse `json:"employers"`
	Applicants []UserSummaryResponse `json:"applicants"`
}

// BanStateResponse acknowledges a ban or unban.
type BanStateResponse struct {
	UserID string `json:"userId"`
	Banned bool   `json:"banned"`
}

// EmployerInformationPatch mirrors domain.EmployerInformationPatch on the wire.
type EmployerInformationPatch struct {
	CompanyName    *string `json:"companyName"`
	CompanyAddress *string `json:"companyAddress"`
	VerificationID *string `json:"verificationId"`
}

// DisabilityInformationPatch mirrors domain.DisabilityInformationPatch on the wire.
type DisabilityInformationPatch struct {
	VerificationID *string `json:"verificationId"`
	DisabilityType *string `json:"disabilityType"`
}

// PatchUserRequest payload for PATCH /admin/users/:id.
type PatchUserRequest struct {
	FullName              *string                     `json:"fullName"`
	Contact               *string                     `json:"contact"`
	Email                 *string                     `json:"email"`
	Password              *string                     `json:"password"`
	IsVerified            *bool                       `json:"isVerified"`
	Address               *string                     `json:"address"`
	EmployerInformation   *EmployerInformationPatch   `json:"employerInformation"`
	DisabilityInformation *DisabilityInformationPatch `json:"disabilityInformation"`
}

// VerificationRequest payload for PUT /admin/verifications.
type VerificationRequest struct {
	UserID     string `json:"userId"`
	Role       string `json:"role"`
	IsVerified *bool  `json:"isVerified"`
}

// PendingVerificationResponse lists one submitted document.
type PendingVerificationResponse struct {
	UserID         string      `json:"userId"`
	FullName       string      `json:"fullName"`
	Role           domain.Role `json:"role"`
	VerificationID string      `json:"verificationId"`
	IsIDVerified   bool        `json:"isIdVerified"`
	Pending        bool        `json:"pending"`
}

// CountsResponse payload for GET /admin/stats/counts.
type CountsResponse struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalEmployers  int64 `json:"totalEmployers"`
	TotalApplicants int64 `json:"totalApplicants"`
}

// PercentagesResponse payload for GET /admin/stats/percentages.
type PercentagesResponse struct {
	TotalUsers          int64  `json:"totalUsers"`
	ApplicantPercentage string `json:"applicantPercentage"`
	EmployerPercentage  string `json:"employerPercentage"`
}

// ToDomain converts the wire payload into a patch.
func (r PatchUserRequest) ToDomain() domain.UserPatch {
	patch := domain.UserPatch{
		FullName:   r.FullName,
		Contact:    r.Contact,
		Email:      r.Email,
		Password:   r.Password,
		IsVerified: r.IsVerified,
		Address:    r.Address,
	}
	if r.EmployerInformation != nil {
		patch.EmployerInformation = &domain.EmployerInformationPatch{
			CompanyName:    r.EmployerInformation.CompanyName,
			CompanyAddress: r.EmployerInformation.CompanyAddress,
			VerificationID: r.EmployerInformation.VerificationID,
		}
	}
	if r.DisabilityInformation != nil {
		patch.DisabilityInformation = &domain.DisabilityInformationPatch{
			VerificationID: r.DisabilityInformation.VerificationID,
			DisabilityType: r.DisabilityInformation.DisabilityType,
		}
	}
	return patch
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:                    u.ID,
		Role:                  u.Role,
		FullName:              u.FullName,
		Contact:               u.Contact,
		Email:                 u.Email,
		Age:                   u.Age,
		Address:               u.Address,
		Banned:                u.Banned,
		IsVerified:            u.IsVerified,
		EmployerInformation:   u.EmployerInformation,
		DisabilityInformation: u.DisabilityInformation,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

// NewUserResponses maps a slice of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// NewSummaryResponses maps service summaries.
func NewSummaryResponses(summaries []service.UserSummary) []UserSummaryResponse {
	out := make([]UserSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, UserSummaryResponse{
			UserID:                s.UserID,
			FullName:              s.FullName,
			Contact:               s.Contact,
			EmployerInformation:   s.EmployerInformation,
			DisabilityInformation: s.DisabilityInformation,
			Banned:                s.Banned,
		})
	}
	return out
}

// NewPendingVerificationResponse maps a user holding a submission for role.
func NewPendingVerificationResponse(u *domain.User, role domain.Role) PendingVerificationResponse {
	resp := PendingVerificationResponse{UserID: u.ID, FullName: u.FullName, Role: role}
	if rec := u.VerificationRecord(role); rec != nil {
		resp.VerificationID = rec.SubmissionID()
		resp.IsIDVerified = rec.IDVerified()
		resp.Pending = rec.HasSubmission() && !rec.IDVerified()
	}
	return resp
}
