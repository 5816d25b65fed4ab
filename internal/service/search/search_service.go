package search

import (
	"context"
	"log"
	"time"

	"github.com/Domenick1991/flyflex/internal/cache"
	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/Domenick1991/flyflex/internal/repository"
)

type SearchUseCase interface {
	Search(ctx context.Context, q Query) []domain.Offer
}

// Query is an already validated search. The HTTP layer owns input checks
// (dates, required fields, passenger count).
type Query struct {
	DepartureCity string
	ArrivalCity   string
	DepartureDate time.Time
	Passengers    int
	Class         domain.FareClass
}

type Cache interface {
	GetOffers(ctx context.Context, key string) ([]domain.Offer, error)
	SetOffers(ctx context.Context, key string, offers []domain.Offer) error
}

type SearchService struct {
	flights    repository.FlightRepository
	cache      Cache
	broadLimit int
}

func NewSearchService(flights repository.FlightRepository, cache Cache, broadLimit int) *SearchService {
	if broadLimit <= 0 {
		broadLimit = 10
	}
	return &SearchService{flights: flights, cache: cache, broadLimit: broadLimit}
}

// Search runs the two-phase matching policy: a tolerant route/date match
// first, then a broad any-route fallback so the caller still gets usable
// offers when the route yields nothing. Pure read, best-effort: storage
// failures are logged and degrade to an empty offer list.
func (s *SearchService) Search(ctx context.Context, q Query) []domain.Offer {
	key := cache.OffersKey(q.DepartureCity, q.ArrivalCity, q.DepartureDate, q.Passengers, q.Class)
	if s.cache != nil {
		if cached, err := s.cache.GetOffers(ctx, key); err == nil && cached != nil {
			return cached
		}
	}

	flights, err := s.flights.SearchExact(ctx, repository.SearchQuery{
		DepartureCity: q.DepartureCity,
		ArrivalCity:   q.ArrivalCity,
		DepartureDate: q.DepartureDate,
		Passengers:    q.Passengers,
	})
	if err != nil {
		log.Printf("search flights: %v", err)
		return []domain.Offer{}
	}

	if len(flights) == 0 {
		flights, err = s.flights.SearchBroad(ctx, q.Passengers, s.broadLimit)
		if err != nil {
			log.Printf("broad search flights: %v", err)
			return []domain.Offer{}
		}
	}

	offers := make([]domain.Offer, 0, len(flights))
	for _, f := range flights {
		unit := q.Class.UnitPriceCents(f.BasePriceCents)
		offers = append(offers, domain.Offer{
			Flight:          f,
			FareClass:       q.Class,
			Passengers:      q.Passengers,
			UnitPriceCents:  unit,
			TotalPriceCents: unit * int64(q.Passengers),
		})
	}

	if s.cache != nil {
		if err := s.cache.SetOffers(ctx, key, offers); err != nil {
			log.Printf("cache offers: %v", err)
		}
	}
	return offers
}

var _ SearchUseCase = (*SearchService)(nil)
