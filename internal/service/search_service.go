package service

import (
	"fmt"
	"strings"

	"github.com/yamensam88/vitrio/internal/db"
	"github.com/yamensam88/vitrio/internal/entities"
	"github.com/yamensam88/vitrio/internal/repository"
	"github.com/yamensam88/vitrio/internal/search"
)

type SearchService struct {
	GarageRepo *repository.GarageRepository
}

func NewSearchService(garageRepo *repository.GarageRepository) *SearchService {
	return &SearchService{GarageRepo: garageRepo}
}

// Search loads the active garages and runs them through filtering and ranking.
// Ranking never fails: an empty candidate set just yields an empty response.
func (s *SearchService) Search(req entities.SearchRequest) (*entities.SearchResponse, error) {
	rows, offers, err := s.GarageRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("internal error loading garages: %w", err)
	}

	garages := make([]search.Garage, 0, len(rows))
	for _, row := range rows {
		if req.City != "" && !strings.EqualFold(row.City, req.City) {
			continue
		}
		garages = append(garages, toSearchGarage(row, offers[row.ID]))
	}

	filtered := search.Filter(garages, search.Filters{
		HomeService:     req.HomeService,
		CourtesyVehicle: req.CourtesyVehicle,
	})
	ranked := search.Rank(filtered, req.Location, parseCriteria(req.SortBy))

	return &entities.SearchResponse{Garages: ranked, Total: len(ranked)}, nil
}

func toSearchGarage(row db.Garage, offers []db.Offer) search.Garage {
	g := search.Garage{
		ID:               row.ID,
		Name:             row.Name,
		Address:          row.Address,
		City:             row.City,
		Coordinates:      search.Coordinates{Lat: row.Lat, Lng: row.Lng},
		Rating:           row.Rating,
		NextAvailability: row.NextAvailability,
		HomeService:      row.HomeService,
		CourtesyVehicle:  row.CourtesyVehicle,
	}
	for _, o := range offers {
		g.Offers = append(g.Offers, search.Offer{
			ID:              o.ID,
			Price:           o.Price,
			Currency:        o.Currency,
			Description:     o.Description,
			DurationMinutes: o.DurationMinutes,
		})
	}
	return g
}

// parseCriteria keeps only the criteria the ranking knows about; anything else
// in the request is ignored rather than rejected.
func parseCriteria(sortBy []string) []search.Criterion {
	var criteria []search.Criterion
	for _, raw := range sortBy {
		switch search.Criterion(strings.ToLower(raw)) {
		case search.ByDistance:
			criteria = append(criteria, search.ByDistance)
		case search.ByPrice:
			criteria = append(criteria, search.ByPrice)
		case search.ByAvailability:
			criteria = append(criteria, search.ByAvailability)
		}
	}
	return criteria
}
