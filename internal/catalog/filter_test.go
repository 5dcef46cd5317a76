package catalog

import (
	"reflect"
	"testing"
)

func sampleListings() []Listing {
	return []Listing{
		{
			ID:           "s1",
			Title:        "Quick Fix Plumbing",
			Category:     "Plumber",
			Location:     "Mumbai",
			Availability: "available",
			Description:  "Leak repairs and pipe fitting",
			Skills:       []string{"Plumbing"},
		},
		{
			ID:           "s2",
			Title:        "Math Tutoring",
			Category:     "Tutor",
			Location:     "Delhi",
			Availability: "busy",
			Description:  "High school math classes",
			Skills:       []string{"Teaching", "Tutoring"},
		},
		{
			ID:           "s3",
			Title:        "Home Electrics",
			Category:     "Electrician",
			Location:     "Mumbai",
			Availability: "offline",
			Description:  "Wiring and appliance installs",
		},
	}
}

func ids(listings []Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterEmptyStateIsIdentity(t *testing.T) {
	listings := sampleListings()

	got := Filter(listings, FilterState{})

	if !reflect.DeepEqual(ids(got), []string{"s1", "s2", "s3"}) {
		t.Fatalf("empty filter state should return the full catalog in order, got %v", ids(got))
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		state FilterState
		want  []string
	}{
		{
			name:  "single category",
			state: FilterState{Categories: []string{"Plumber"}},
			want:  []string{"s1"},
		},
		{
			name:  "categories are OR within the group",
			state: FilterState{Categories: []string{"Plumber", "Tutor"}},
			want:  []string{"s1", "s2"},
		},
		{
			name: "groups are AND across",
			state: FilterState{
				Categories: []string{"Plumber", "Electrician"},
				Locations:  []string{"Mumbai"},
			},
			want: []string{"s1", "s3"},
		},
		{
			name: "availability narrows further",
			state: FilterState{
				Locations:    []string{"Mumbai"},
				Availability: []string{"available"},
			},
			want: []string{"s1"},
		},
		{
			name:  "free text matches description",
			state: FilterState{Query: "wiring"},
			want:  []string{"s3"},
		},
		{
			name:  "free text matches skills",
			state: FilterState{Query: "tutoring"},
			want:  []string{"s2"},
		},
		{
			name:  "free text is case-insensitive",
			state: FilterState{Query: "MUMBAI"},
			want:  []string{"s1", "s3"},
		},
		{
			name: "text and groups combine conjunctively",
			state: FilterState{
				Query:      "mumbai",
				Categories: []string{"Electrician"},
			},
			want: []string{"s3"},
		},
		{
			name:  "no match",
			state: FilterState{Categories: []string{"Carpenter"}},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(sampleListings(), tt.state))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterResultSatisfiesActiveGroups(t *testing.T) {
	listings := sampleListings()
	state := FilterState{
		Query:        "m",
		Categories:   []string{"Plumber", "Electrician", "Tutor"},
		Locations:    []string{"Mumbai", "Delhi"},
		Availability: []string{"available", "busy", "offline"},
	}

	got := Filter(listings, state)

	for _, l := range got {
		if !inGroup(state.Categories, l.Category) {
			t.Errorf("listing %s fails category group", l.ID)
		}
		if !inGroup(state.Locations, l.Location) {
			t.Errorf("listing %s fails location group", l.ID)
		}
		if !inGroup(state.Availability, l.Availability) {
			t.Errorf("listing %s fails availability group", l.ID)
		}
	}
}

func TestFilterDoesNotReorder(t *testing.T) {
	listings := sampleListings()

	got := Filter(listings, FilterState{Locations: []string{"Mumbai"}})

	if !reflect.DeepEqual(ids(got), []string{"s1", "s3"}) {
		t.Fatalf("filtered result must keep catalog order, got %v", ids(got))
	}
}
