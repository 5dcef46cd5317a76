package catalog

import "strings"

// Listing is the in-memory browse view of a service row. Skills are
// unpacked from JSON so the filter doesn't touch the DB types.
type Listing struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Location     string   `json:"location"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Availability string   `json:"availability"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"review_count"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	ProviderID   string   `json:"provider_id"`
	Price        string   `json:"price,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

// FilterState mirrors the browse query params. An empty group means no
// constraint for that group.
type FilterState struct {
	Query        string
	Categories   []string
	Locations    []string
	Availability []string
}

// Filter returns the listings matching every active group, in the
// original catalog order. Groups are OR within, AND across. Free text is
// a case-insensitive substring match over title, category, location,
// description and skills. No ranking.
func Filter(listings []Listing, f FilterState) []Listing {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if !matchesQuery(l, query) {
			continue
		}
		if !inGroup(f.Categories, l.Category) {
			continue
		}
		if !inGroup(f.Locations, l.Location) {
			continue
		}
		if !inGroup(f.Availability, l.Availability) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matchesQuery(l Listing, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(l.Title), query) ||
		strings.Contains(strings.ToLower(l.Category), query) ||
		strings.Contains(strings.ToLower(l.Location), query) ||
		strings.Contains(strings.ToLower(l.Description), query) {
		return true
	}
	for _, skill := range l.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	return false
}

func inGroup(group []string, value string) bool {
	if len(group) == 0 {
		return true
	}
	for _, g := range group {
		if g == value {
			return true
		}
	}
	return false
}
