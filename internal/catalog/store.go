package catalog

import (
	"encoding/json"
	"log"
	"sync"

	"gorm.io/gorm"

	"github.com/aryanpatel3011/localseva_be/internal/models"
	"github.com/aryanpatel3011/localseva_be/internal/services/geocode"
)

// Geocoder is the slice of the LocationIQ client the store needs.
type Geocoder interface {
	Search(q string) (*geocode.Result, error)
}

// Store holds the browsable listing snapshot in memory. It is loaded at
// boot and reloaded after every listing or rating mutation; browse
// requests never hit the DB.
type Store struct {
	db  *gorm.DB
	geo Geocoder

	mu       sync.RWMutex
	listings []Listing
}

func NewStore(db *gorm.DB, geo Geocoder) *Store {
	return &Store{db: db, geo: geo}
}

// Reload rebuilds the snapshot from the services table. Listings without
// coordinates are enriched through the geocoder; a geocode failure only
// loses the coordinates, never the listing.
func (s *Store) Reload() error {
	var services []models.Service
	if err := s.db.Order("created_at ASC").Find(&services).Error; err != nil {
		return err
	}

	listings := make([]Listing, 0, len(services))
	for _, svc := range services {
		l := Listing{
			ID:           svc.ID.String(),
			Title:        svc.Title,
			Category:     svc.Category,
			Location:     svc.Location,
			Latitude:     svc.Latitude,
			Longitude:    svc.Longitude,
			Availability: string(svc.Availability),
			Rating:       svc.Rating,
			ReviewCount:  svc.ReviewCount,
			Description:  svc.Description,
			Image:        svc.Image,
			ProviderID:   svc.ProviderID.String(),
			Price:        svc.Price,
		}
		if len(svc.Skills) > 0 {
			if err := json.Unmarshal(svc.Skills, &l.Skills); err != nil {
				log.Printf("catalog: bad skills json on service %s: %v", svc.ID, err)
			}
		}
		if (l.Latitude == nil || l.Longitude == nil) && l.Location != "" && s.geo != nil {
			if res, err := s.geo.Search(l.Location); err == nil && res != nil {
				lat, lon := res.Lat, res.Lon
				l.Latitude = &lat
				l.Longitude = &lon
			} else if err != nil {
				log.Printf("catalog: geocode failed for %q: %v", l.Location, err)
			}
		}
		listings = append(listings, l)
	}

	s.mu.Lock()
	s.listings = listings
	s.mu.Unlock()
	return nil
}

// All returns a copy of the snapshot in catalog order.
func (s *Store) All() []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Browse filters the current snapshot.
func (s *Store) Browse(f FilterState) []Listing {
	return Filter(s.All(), f)
}
