package domain

import (
	"strconv"
	"time"
)

// Step identifies a wizard page. Steps 1-7 collect data, step 8 is the
// review page, and StepDone is the terminal thank-you view shown once
// the draft has been submitted.
type Step int

const (
	StepProfile Step = iota + 1
	StepSites
	StepContacts
	StepTax
	StepDemographics
	StepInterests
	StepCapabilities
	StepReview
	StepDone
)

// Valid reports whether s is one of the nine defined steps.
func (s Step) Valid() bool {
	return s >= StepProfile && s <= StepDone
}

// DataStep reports whether s carries a payload fragment. The review and
// terminal steps do not; the review is derived from pages 1-7.
func (s Step) DataStep() bool {
	return s >= StepProfile && s <= StepCapabilities
}

// PageKey returns the payload key for a data step ("page1".."page7").
// It returns an empty string for non-data steps.
func (s Step) PageKey() string {
	if !s.DataStep() {
		return ""
	}
	return "page" + strconv.Itoa(int(s))
}

// Invite is the informational record attached to a vendor invitation.
// It is sourced from the server at draft initialization and used only to
// pre-populate profile and contact fields.
type Invite struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
}

// Empty reports whether the invite has no populated name or email
// fields. A company name alone does not make an invite real; the cache
// reconciliation uses this to keep an empty cached invite from
// clobbering the server-sourced one.
func (i *Invite) Empty() bool {
	return i == nil || (i.FirstName == "" && i.LastName == "" && i.Email == "")
}

// Draft is the in-progress vendor application record. DraftID is
// assigned by the store on initialization and immutable afterwards.
// VendorID is assigned exactly once, at submission; a non-nil VendorID
// means the draft is finalized and no further mutation is permitted.
type Draft struct {
	DraftID      string    `json:"draftId"`
	VendorToken  string    `json:"vendorToken"`
	InviterEmail string    `json:"inviterEmail,omitempty"`
	Step         Step      `json:"step"`
	Payload      Payload   `json:"payload"`
	Invite       *Invite   `json:"invite,omitempty"`
	VendorID     *string   `json:"vendorId,omitempty"`
	CreatedOn    time.Time `json:"createdOn"`
	UpdatedOn    time.Time `json:"updatedOn"`
}

// Submitted reports whether the draft holds a finalized vendor identity.
func (d *Draft) Submitted() bool {
	return d.VendorID != nil
}
