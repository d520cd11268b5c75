package domain

// Role classifies a user and decides which information record applies.
type Role string

const (
	RoleEmployer  Role = "Employer"
	RoleApplicant Role = "Applicant"
)

// ParseRole maps caller input onto a defined role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleEmployer:
		return RoleEmployer, true
	case RoleApplicant:
		return RoleApplicant, true
	default:
		return "", false
	}
}

func (r Role) String() string {
	return string(r)
}
