package domain

// UserPatch is a partial update. Nil fields are absent and leave the stored
// value untouched.
type UserPatch struct {
	FullName              *string
	Contact               *string
	Email                 *string
	Password              *string
	IsVerified            *bool
	Address               *string
	EmployerInformation   *EmployerInformationPatch
	DisabilityInformation *DisabilityInformationPatch
}

// EmployerInformationPatch names the employer fields a patch may change.
// IsIDVerified is absent on purpose: only verification review sets it.
type EmployerInformationPatch struct {
	CompanyName    *string
	CompanyAddress *string
	VerificationID *string
}

// DisabilityInformationPatch names the applicant fields a patch may change.
type DisabilityInformationPatch struct {
	VerificationID *string
	DisabilityType *string
}

// MergeInto copies every present field onto info.
func (p *EmployerInformationPatch) MergeInto(info *EmployerInformation) {
	if p == nil || info == nil {
		return
	}
	if p.CompanyName != nil {
		info.CompanyName = *p.CompanyName
	}
	if p.CompanyAddress != nil {
		info.CompanyAddress = *p.CompanyAddress
	}
	if p.VerificationID != nil {
		info.VerificationID = *p.VerificationID
	}
}

// MergeInto copies every present field onto info.
func (p *DisabilityInformationPatch) MergeInto(info *DisabilityInformation) {
	if p == nil || info == nil {
		return
	}
	if p.VerificationID != nil {
		info.VerificationID = *p.VerificationID
	}
	if p.DisabilityType != nil {
		info.DisabilityType = *p.DisabilityType
	}
}
