package domain

import "time"

// Invitation is one issued vendor invitation. Its token is the opaque
// credential a vendor session presents to initialize a draft; the same
// token always resolves to the same draft.
type Invitation struct {
	Token        string    `json:"token"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	CompanyName  string    `json:"companyName"`
	InviterEmail string    `json:"inviterEmail,omitempty"`
	CreatedOn    time.Time `json:"createdOn"`
	ExpiresOn    time.Time `json:"expiresOn"`
}

// Expired reports whether the invitation can no longer start a new
// draft. Expiry gates draft creation only; an existing draft keeps
// working so an in-progress vendor is never locked out mid-flow.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresOn)
}

// ToInvite projects the invitation into the informational record handed
// to the wizard for pre-population.
func (i *Invitation) ToInvite() *Invite {
	return &Invite{
		FirstName:   i.FirstName,
		LastName:    i.LastName,
		Email:       i.Email,
		CompanyName: i.CompanyName,
	}
}

// UploadTarget is a pre-signed destination for a staged tax document
// upload.
type UploadTarget struct {
	UploadURL   string `json:"uploadUrl"`
	StagingPath string `json:"stagingPath"`
}
