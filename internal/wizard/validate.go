package wizard

import (
	"fmt"

	"vendorhub/internal/domain"
	"vendorhub/internal/utils"
)

// Capability group names accepted in Settings.RequiredCapabilityGroups.
// GroupAdTypes is satisfied by a selection in either the co-reg or the
// display ad type list.
const (
	GroupAdTypes               = "adTypes"
	GroupPricingTypes          = "pricingTypes"
	GroupTargeting             = "targeting"
	GroupCampaignFunctionality = "campaignFunctionality"
	GroupRegions               = "regions"
	GroupPlatforms             = "platforms"
)

// Settings are the deployment-configurable knobs of the page validation
// gates.
type Settings struct {
	// TaxRequired makes page 4 reject when no document is supplied.
	TaxRequired bool
	// MaxUploadBytes caps the tax document size.
	MaxUploadBytes int64
	// AllowedTaxTypes lists the accepted tax document content types.
	AllowedTaxTypes []string
	// MinInterests is the minimum number of selections on page 6.
	MinInterests int
	// RequiredCapabilityGroups lists the multi-select groups on page 7
	// that must each have at least one selection. The group set differs
	// by deployment, so it is configuration rather than schema.
	RequiredCapabilityGroups []string
}

// DefaultSettings mirror the shipped deployment configuration: optional
// tax document, PDF only, 10 MB cap, one interest minimum, every
// capability group required.
func DefaultSettings() Settings {
	return Settings{
		TaxRequired:     false,
		MaxUploadBytes:  10 << 20,
		AllowedTaxTypes: []string{"application/pdf"},
		MinInterests:    1,
		RequiredCapabilityGroups: []string{
			GroupAdTypes,
			GroupPricingTypes,
			GroupTargeting,
			GroupCampaignFunctionality,
			GroupRegions,
			GroupPlatforms,
		},
	}
}

// ValidationError is a recoverable page-gate failure carrying a
// human-readable, page-specific reason. It is surfaced to the user
// as-is, and no network call is made when one is returned.
type ValidationError struct {
	Step   domain.Step
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func gateFail(step domain.Step, reason string) error {
	return &ValidationError{Step: step, Reason: reason}
}

// NormalizeFragment applies field normalization that must happen before
// validation and persistence: URL fields are trimmed and given a scheme.
func NormalizeFragment(frag domain.Fragment) {
	switch f := frag.(type) {
	case *domain.ProfilePage:
		f.Website = utils.NormalizeURL(f.Website)
	case *domain.SitesPage:
		for i := range f.Sites {
			f.Sites[i].URL = utils.NormalizeURL(f.Sites[i].URL)
		}
	}
}

// ValidateFragment runs the page gate for the fragment's step. Gates
// are pure predicates evaluated only when advancing; in-page editing is
// never blocked.
func ValidateFragment(frag domain.Fragment, settings Settings) error {
	switch f := frag.(type) {
	case *domain.ProfilePage:
		return validateProfile(f)
	case *domain.SitesPage:
		return validateSites(f)
	case *domain.ContactsPage:
		return validateContacts(f)
	case *domain.TaxPage:
		return validateTax(f, settings)
	case *domain.DemographicsPage:
		return validateDemographics(f)
	case *domain.InterestsPage:
		return validateInterests(f, settings)
	case *domain.CapabilitiesPage:
		return validateCapabilities(f, settings)
	}
	return fmt.Errorf("no validation gate for step %d", frag.Step())
}

func validateProfile(f *domain.ProfilePage) error {
	if f.CompanyName == "" || f.Website == "" {
		return gateFail(domain.StepProfile, "Please provide a company name and corporate website.")
	}
	if f.TimeZone == "" {
		return gateFail(domain.StepProfile, "Please select a time zone.")
	}
	return nil
}

func validateSites(f *domain.SitesPage) error {
	if len(f.Sites) == 0 {
		return gateFail(domain.StepSites, "Please add at least one site.")
	}
	for _, site := range f.Sites {
		if site.SiteName == "" || site.URL == "" {
			return gateFail(domain.StepSites, "Every site needs a name and a URL.")
		}
	}
	return nil
}

func validateContacts(f *domain.ContactsPage) error {
	if len(f.Contacts) == 0 {
		return gateFail(domain.StepContacts, "Please add at least one contact.")
	}
	for _, c := range f.Contacts {
		if c.FirstName == "" || c.LastName == "" || c.Email == "" || c.Phone == "" {
			return gateFail(domain.StepContacts, "Contact name, email, and phone are all required.")
		}
	}
	return nil
}

func validateTax(f *domain.TaxPage, settings Settings) error {
	if f.TaxDoc == nil {
		if settings.TaxRequired {
			return gateFail(domain.StepTax, "Please upload a tax document.")
		}
		return nil
	}
	if f.TaxDoc.ContentType != "" && !contentTypeAllowed(f.TaxDoc.ContentType, settings.AllowedTaxTypes) {
		return gateFail(domain.StepTax, fmt.Sprintf("Tax document type %s is not accepted.", f.TaxDoc.ContentType))
	}
	if settings.MaxUploadBytes > 0 && f.TaxDoc.SizeBytes > settings.MaxUploadBytes {
		return gateFail(domain.StepTax, fmt.Sprintf("Tax document exceeds the %d MB limit.", settings.MaxUploadBytes>>20))
	}
	return nil
}

func contentTypeAllowed(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}

func validateDemographics(f *domain.DemographicsPage) error {
	if len(f.AgeBracketIDs) == 0 || len(f.LifeStageIDs) == 0 || len(f.IncomeBracketIDs) == 0 {
		return gateFail(domain.StepDemographics, "Please select at least one option in each demographic section.")
	}
	return nil
}

func validateInterests(f *domain.InterestsPage, settings Settings) error {
	if len(f.InterestIDs) < settings.MinInterests {
		return gateFail(domain.StepInterests, fmt.Sprintf("Please select at least %d interests.", settings.MinInterests))
	}
	return nil
}

func validateCapabilities(f *domain.CapabilitiesPage, settings Settings) error {
	for _, group := range settings.RequiredCapabilityGroups {
		var selections int
		switch group {
		case GroupAdTypes:
			selections = len(f.CoRegAdTypeIDs) + len(f.DisplayAdTypeIDs)
		case GroupPricingTypes:
			selections = len(f.PricingTypeIDs)
		case GroupTargeting:
			selections = len(f.TargetingIDs)
		case GroupCampaignFunctionality:
			selections = len(f.CampaignFunctionalityIDs)
		case GroupRegions:
			selections = len(f.RegionIDs)
		case GroupPlatforms:
			selections = len(f.PlatformValues)
		default:
			return fmt.Errorf("unknown capability group %q in settings", group)
		}
		if selections == 0 {
			return gateFail(domain.StepCapabilities, "Please select at least one option in each capability section.")
		}
	}
	return nil
}
