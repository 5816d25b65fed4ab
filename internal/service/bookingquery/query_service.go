package bookingquery

import (
	"context"
	"log"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/Domenick1991/flyflex/internal/repository"
)

type QueryUseCase interface {
	ListForUser(ctx context.Context, userID int64) []domain.BookingDetail
	ListAll(ctx context.Context, filter repository.ListFilter) []domain.BookingDetail
	Stats(ctx context.Context) domain.BookingStats
}

type StatsCache interface {
	GetStats(ctx context.Context) (*domain.BookingStats, error)
	SetStats(ctx context.Context, stats domain.BookingStats) error
}

// QueryService is the read-only side of the ledger. All reads are
// best-effort: a storage failure is logged and degrades to an empty
// result, never propagated.
type QueryService struct {
	bookings repository.BookingRepository
	cache    StatsCache
}

func NewQueryService(bookings repository.BookingRepository, cache StatsCache) *QueryService {
	return &QueryService{bookings: bookings, cache: cache}
}

func (s *QueryService) ListForUser(ctx context.Context, userID int64) []domain.BookingDetail {
	details, err := s.bookings.ListForUser(ctx, userID)
	if err != nil {
		log.Printf("list bookings for user %d: %v", userID, err)
		return []domain.BookingDetail{}
	}
	return details
}

func (s *QueryService) ListAll(ctx context.Context, filter repository.ListFilter) []domain.BookingDetail {
	details, err := s.bookings.ListAll(ctx, filter)
	if err != nil {
		log.Printf("list all bookings: %v", err)
		return []domain.BookingDetail{}
	}
	return details
}

func (s *QueryService) Stats(ctx context.Context) domain.BookingStats {
	if s.cache != nil {
		if cached, err := s.cache.GetStats(ctx); err == nil && cached != nil {
			return *cached
		}
	}

	stats, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		log.Printf("booking stats: %v", err)
		return domain.BookingStats{}
	}
	if s.cache != nil {
		if err := s.cache.SetStats(ctx, stats); err != nil {
			log.Printf("cache booking stats: %v", err)
		}
	}
	return stats
}

var _ QueryUseCase = (*QueryService)(nil)
