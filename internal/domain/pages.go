package domain

import (
	"encoding/json"
	"fmt"
)

// Fragment is one page's slice of the draft payload. Each data page has
// its own concrete type; together they form a closed union keyed by
// step. Sessions clone fragments on ingest so the renderer and the
// state machine never alias the same object.
type Fragment interface {
	Step() Step
	Clone() Fragment
}

// ProfilePage holds the company profile collected on page 1.
type ProfilePage struct {
	CompanyName string `json:"companyName"`
	Website     string `json:"website"`
	TimeZone    string `json:"timeZone"`
}

func (p *ProfilePage) Step() Step { return StepProfile }

func (p *ProfilePage) Clone() Fragment {
	cp := *p
	return &cp
}

// Site is one owned-and-operated site entry on page 2.
type Site struct {
	SiteName string `json:"siteName"`
	URL      string `json:"url"`
	Notes    string `json:"notes,omitempty"`
}

// SitesPage holds the site list collected on page 2.
type SitesPage struct {
	Sites []Site `json:"sites"`
}

func (p *SitesPage) Step() Step { return StepSites }

func (p *SitesPage) Clone() Fragment {
	cp := *p
	cp.Sites = append([]Site(nil), p.Sites...)
	return &cp
}

// Contact is one contact entry on page 3. Phone is mandatory.
type Contact struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	IsPrimary    bool   `json:"isPrimary"`
	IsAccounting bool   `json:"isAccounting"`
	IsMobile     bool   `json:"isMobile"`
	IsAdOps      bool   `json:"isAdOps"`
}

// ContactsPage holds the contact list collected on page 3.
type ContactsPage struct {
	Contacts []Contact `json:"contacts"`
}

func (p *ContactsPage) Step() Step { return StepContacts }

func (p *ContactsPage) Clone() Fragment {
	cp := *p
	cp.Contacts = append([]Contact(nil), p.Contacts...)
	return &cp
}

// TaxDocument references an uploaded tax document in staging storage.
type TaxDocument struct {
	FileName    string `json:"fileName"`
	StagingPath string `json:"stagingPath"`
	ContentType string `json:"contentType,omitempty"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
}

// TaxPage holds the optional tax document reference from page 4.
type TaxPage struct {
	TaxDoc *TaxDocument `json:"taxDoc"`
}

func (p *TaxPage) Step() Step { return StepTax }

func (p *TaxPage) Clone() Fragment {
	cp := *p
	if p.TaxDoc != nil {
		doc := *p.TaxDoc
		cp.TaxDoc = &doc
	}
	return &cp
}

// DemographicsPage holds the audience description from page 5.
type DemographicsPage struct {
	PercentFemale    int     `json:"percentFemale"`
	AgeBracketIDs    []int64 `json:"ageBracketIds"`
	LifeStageIDs     []int64 `json:"lifeStageIds"`
	IncomeBracketIDs []int64 `json:"incomeBracketIds"`
}

func (p *DemographicsPage) Step() Step { return StepDemographics }

func (p *DemographicsPage) Clone() Fragment {
	cp := *p
	cp.AgeBracketIDs = append([]int64(nil), p.AgeBracketIDs...)
	cp.LifeStageIDs = append([]int64(nil), p.LifeStageIDs...)
	cp.IncomeBracketIDs = append([]int64(nil), p.IncomeBracketIDs...)
	return &cp
}

// InterestsPage holds the interest selections from page 6.
type InterestsPage struct {
	InterestIDs []int64 `json:"interestsAndIntentIds"`
}

func (p *InterestsPage) Step() Step { return StepInterests }

func (p *InterestsPage) Clone() Fragment {
	cp := *p
	cp.InterestIDs = append([]int64(nil), p.InterestIDs...)
	return &cp
}

// CapabilitiesPage holds the advertising capability selections from
// page 7. Platforms are stored by title rather than id.
type CapabilitiesPage struct {
	CoRegAdTypeIDs           []int64  `json:"coregAdTypeIds"`
	DisplayAdTypeIDs         []int64  `json:"displayAdTypeIds"`
	PricingTypeIDs           []int64  `json:"pricingTypeIds"`
	TargetingIDs             []int64  `json:"targetingIds"`
	CampaignFunctionalityIDs []int64  `json:"campaignFunctionalityIds"`
	RegionIDs                []int64  `json:"regionIds"`
	PlatformValues           []string `json:"platformValues"`
}

func (p *CapabilitiesPage) Step() Step { return StepCapabilities }

func (p *CapabilitiesPage) Clone() Fragment {
	cp := *p
	cp.CoRegAdTypeIDs = append([]int64(nil), p.CoRegAdTypeIDs...)
	cp.DisplayAdTypeIDs = append([]int64(nil), p.DisplayAdTypeIDs...)
	cp.PricingTypeIDs = append([]int64(nil), p.PricingTypeIDs...)
	cp.TargetingIDs = append([]int64(nil), p.TargetingIDs...)
	cp.CampaignFunctionalityIDs = append([]int64(nil), p.CampaignFunctionalityIDs...)
	cp.RegionIDs = append([]int64(nil), p.RegionIDs...)
	cp.PlatformValues = append([]string(nil), p.PlatformValues...)
	return &cp
}

// Payload maps each data page to its fragment. A nil slot means the
// page has not been completed yet. The JSON shape ("page1".."page7")
// matches the wire and storage contract.
type Payload struct {
	Profile      *ProfilePage      `json:"page1,omitempty"`
	Sites        *SitesPage        `json:"page2,omitempty"`
	Contacts     *ContactsPage     `json:"page3,omitempty"`
	Tax          *TaxPage          `json:"page4,omitempty"`
	Demographics *DemographicsPage `json:"page5,omitempty"`
	Interests    *InterestsPage    `json:"page6,omitempty"`
	Capabilities *CapabilitiesPage `json:"page7,omitempty"`
}

// Set stores the fragment into its page slot.
func (p *Payload) Set(f Fragment) {
	switch v := f.(type) {
	case *ProfilePage:
		p.Profile = v
	case *SitesPage:
		p.Sites = v
	case *ContactsPage:
		p.Contacts = v
	case *TaxPage:
		p.Tax = v
	case *DemographicsPage:
		p.Demographics = v
	case *InterestsPage:
		p.Interests = v
	case *CapabilitiesPage:
		p.Capabilities = v
	}
}

// Get returns the fragment for a data step, or nil if the page has not
// been completed.
func (p *Payload) Get(s Step) Fragment {
	switch s {
	case StepProfile:
		if p.Profile != nil {
			return p.Profile
		}
	case StepSites:
		if p.Sites != nil {
			return p.Sites
		}
	case StepContacts:
		if p.Contacts != nil {
			return p.Contacts
		}
	case StepTax:
		if p.Tax != nil {
			return p.Tax
		}
	case StepDemographics:
		if p.Demographics != nil {
			return p.Demographics
		}
	case StepInterests:
		if p.Interests != nil {
			return p.Interests
		}
	case StepCapabilities:
		if p.Capabilities != nil {
			return p.Capabilities
		}
	}
	return nil
}

// Clone deep-copies the payload.
func (p *Payload) Clone() Payload {
	var cp Payload
	for s := StepProfile; s <= StepCapabilities; s++ {
		if f := p.Get(s); f != nil {
			cp.Set(f.Clone())
		}
	}
	return cp
}

// ParseFragment decodes a raw JSON fragment for a data step into its
// concrete page type.
func ParseFragment(s Step, raw []byte) (Fragment, error) {
	var f Fragment
	switch s {
	case StepProfile:
		f = &ProfilePage{}
	case StepSites:
		f = &SitesPage{}
	case StepContacts:
		f = &ContactsPage{}
	case StepTax:
		f = &TaxPage{}
	case StepDemographics:
		f = &DemographicsPage{}
	case StepInterests:
		f = &InterestsPage{}
	case StepCapabilities:
		f = &CapabilitiesPage{}
	default:
		return nil, fmt.Errorf("step %d has no payload fragment", s)
	}
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, fmt.Errorf("parse page %d fragment: %w", s, err)
	}
	return f, nil
}
