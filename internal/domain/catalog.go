package domain

import (
	"encoding/json"
	"sort"
)

// Option is one selectable entry in a reference catalog category.
type Option struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Reference catalog category names, as served by the reference endpoint.
const (
	CategoryTimeZones             = "timeZones"
	CategoryAgeBrackets           = "ageBrackets"
	CategoryLifeStages            = "lifeStages"
	CategoryIncomeBrackets        = "householdIncomeBrackets"
	CategoryInterests             = "interestsAndIntent"
	CategoryCoRegAdTypes          = "coRegAdTypes"
	CategoryDisplayAdTypes        = "displayAdTypes"
	CategoryPricingTypes          = "pricingTypes"
	CategoryTargeting             = "targeting"
	CategoryCampaignFunctionality = "campaignFunctionality"
	CategoryRegions               = "regions"
	CategoryPlatforms             = "platforms"
)

// Catalog is the immutable, session-scoped set of enumerated option
// lists used to populate choice fields and resolve ids for display. An
// id-to-title index per category is built once at load time so review
// rendering does not scan lists on every lookup.
type Catalog struct {
	categories map[string][]Option
	index      map[string]map[int64]string
}

// NewCatalog builds a catalog from category option lists.
func NewCatalog(categories map[string][]Option) *Catalog {
	c := &Catalog{
		categories: make(map[string][]Option, len(categories)),
		index:      make(map[string]map[int64]string, len(categories)),
	}
	for name, opts := range categories {
		c.categories[name] = append([]Option(nil), opts...)
		byID := make(map[int64]string, len(opts))
		for _, o := range opts {
			byID[o.ID] = o.Title
		}
		c.index[name] = byID
	}
	return c
}

// Options returns the ordered option list for a category.
func (c *Catalog) Options(category string) []Option {
	return c.categories[category]
}

// Title resolves an option id within a category.
func (c *Catalog) Title(category string, id int64) (string, bool) {
	title, ok := c.index[category][id]
	return title, ok
}

// Titles resolves ids to titles within a category, sorted
// alphabetically. Ids with no catalog match are dropped, never reported
// as errors.
func (c *Catalog) Titles(category string, ids []int64) []string {
	byID := c.index[category]
	titles := make([]string, 0, len(ids))
	for _, id := range ids {
		if title, ok := byID[id]; ok {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)
	return titles
}

// MarshalJSON renders the catalog as the flat category-to-options map
// used on the wire.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.categories)
}

// UnmarshalJSON rebuilds the catalog, including its id index, from the
// wire shape.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var categories map[string][]Option
	if err := json.Unmarshal(data, &categories); err != nil {
		return err
	}
	*c = *NewCatalog(categories)
	return nil
}
