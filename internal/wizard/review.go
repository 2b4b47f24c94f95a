package wizard

import (
	"fmt"
	"sort"
	"strings"

	"vendorhub/internal/domain"
)

// Row is one read-only line of the review page.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BuildReview projects pages 1-7 into display rows. Catalog ids are
// resolved to titles; ids with no catalog match are silently dropped.
// Missing pages render their rows with empty or "None" values so the
// review shape is stable.
func BuildReview(payload *domain.Payload, catalog *domain.Catalog) []Row {
	rows := make([]Row, 0, 18)
	add := func(label, value string) {
		rows = append(rows, Row{Label: label, Value: value})
	}

	var p1 domain.ProfilePage
	if payload.Profile != nil {
		p1 = *payload.Profile
	}
	add("Company", p1.CompanyName)
	add("Website", p1.Website)
	add("Time Zone", p1.TimeZone)

	add("Sites", siteSummary(payload.Sites))
	add("Contacts", contactSummary(payload.Contacts))

	taxValue := "None"
	if payload.Tax != nil && payload.Tax.TaxDoc != nil {
		taxValue = payload.Tax.TaxDoc.FileName
	}
	add("Tax Doc", taxValue)

	percentFemale := 50
	var p5 domain.DemographicsPage
	if payload.Demographics != nil {
		p5 = *payload.Demographics
		percentFemale = p5.PercentFemale
	}
	add("Percent Female", fmt.Sprintf("%d%%", percentFemale))
	add("Age Brackets", titlesOrNone(catalog, domain.CategoryAgeBrackets, p5.AgeBracketIDs))
	add("Life Stages", titlesOrNone(catalog, domain.CategoryLifeStages, p5.LifeStageIDs))
	add("Household Income", titlesOrNone(catalog, domain.CategoryIncomeBrackets, p5.IncomeBracketIDs))

	var p6 domain.InterestsPage
	if payload.Interests != nil {
		p6 = *payload.Interests
	}
	add("Interests", titlesOrNone(catalog, domain.CategoryInterests, p6.InterestIDs))

	var p7 domain.CapabilitiesPage
	if payload.Capabilities != nil {
		p7 = *payload.Capabilities
	}
	add("CoReg Ad Types", titlesOrNone(catalog, domain.CategoryCoRegAdTypes, p7.CoRegAdTypeIDs))
	add("Display Ad Types", titlesOrNone(catalog, domain.CategoryDisplayAdTypes, p7.DisplayAdTypeIDs))
	add("Pricing Types", titlesOrNone(catalog, domain.CategoryPricingTypes, p7.PricingTypeIDs))
	add("Targeting", titlesOrNone(catalog, domain.CategoryTargeting, p7.TargetingIDs))
	add("Campaign Functionality", titlesOrNone(catalog, domain.CategoryCampaignFunctionality, p7.CampaignFunctionalityIDs))
	add("Regions", titlesOrNone(catalog, domain.CategoryRegions, p7.RegionIDs))
	add("Platform", valuesOrNone(p7.PlatformValues))

	return rows
}

func titlesOrNone(catalog *domain.Catalog, category string, ids []int64) string {
	if catalog == nil {
		return "None"
	}
	titles := catalog.Titles(category, ids)
	if len(titles) == 0 {
		return "None"
	}
	return strings.Join(titles, ", ")
}

// valuesOrNone joins title-valued selections (the platform list stores
// titles, not ids).
func valuesOrNone(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

func siteSummary(p *domain.SitesPage) string {
	if p == nil || len(p.Sites) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Sites))
	for _, s := range p.Sites {
		entry := fmt.Sprintf("%s (%s)", s.SiteName, s.URL)
		if s.Notes != "" {
			entry += " - " + s.Notes
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, ", ")
}

func contactSummary(p *domain.ContactsPage) string {
	if p == nil || len(p.Contacts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Contacts))
	for _, c := range p.Contacts {
		entry := strings.TrimSpace(c.FirstName + " " + c.LastName)
		entry += fmt.Sprintf(" <%s>", c.Email)
		if c.Phone != "" {
			entry += fmt.Sprintf(" (%s)", c.Phone)
		}
		if c.IsPrimary {
			entry += " [Primary]"
		}
		if c.IsAccounting {
			entry += " [Accounting]"
		}
		if c.IsMobile {
			entry += " [Mobile]"
		}
		if c.IsAdOps {
			entry += " [Ad Ops]"
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, "; ")
}
