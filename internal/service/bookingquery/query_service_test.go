package bookingquery

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/Domenick1991/flyflex/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithReservation(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) CancelWithRelease(ctx context.Context, bookingID, userID int64) (*domain.Booking, bool, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.Bool(1), args.Error(2)
}

func (m *MockBookingRepository) Confirm(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, f repository.ListFilter) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context) (domain.BookingStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.BookingStats), args.Error(1)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) GetStats(ctx context.Context) (*domain.BookingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingStats), args.Error(1)
}

func (m *MockStatsCache) SetStats(ctx context.Context, stats domain.BookingStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func TestQueryService_ListForUser(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	service := NewQueryService(mockRepo, nil)

	ctx := context.Background()
	details := []domain.BookingDetail{
		{Booking: domain.Booking{ID: 2, UserID: 7, Reference: "FFB"}},
		{Booking: domain.Booking{ID: 1, UserID: 7, Reference: "FFA"}},
	}

	mockRepo.On("ListForUser", ctx, int64(7)).Return(details, nil).Once()

	result := service.ListForUser(ctx, 7)

	assert.Equal(t, details, result)
	mockRepo.AssertExpectations(t)
}

func TestQueryService_ListForUser_ErrorDegradesToEmpty(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	service := NewQueryService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("ListForUser", ctx, int64(7)).Return(nil, errors.New("connection refused")).Once()

	result := service.ListForUser(ctx, 7)

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestQueryService_ListAll_PassesFilter(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	service := NewQueryService(mockRepo, nil)

	ctx := context.Background()
	filter := repository.ListFilter{Status: domain.BookingStatusConfirmed, Airline: "FlyFlex Air"}

	mockRepo.On("ListAll", ctx, filter).Return([]domain.BookingDetail{}, nil).Once()

	result := service.ListAll(ctx, filter)

	assert.Empty(t, result)
	mockRepo.AssertExpectations(t)
}

func TestQueryService_Stats(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockCache := &MockStatsCache{}
	service := NewQueryService(mockRepo, mockCache)

	ctx := context.Background()
	stats := domain.BookingStats{Total: 10, Pending: 3, Confirmed: 5, Cancelled: 2}

	mockCache.On("GetStats", ctx).Return(nil, nil).Once()
	mockRepo.On("CountByStatus", ctx).Return(stats, nil).Once()
	mockCache.On("SetStats", ctx, stats).Return(nil).Once()

	result := service.Stats(ctx)

	assert.Equal(t, stats, result)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestQueryService_Stats_CacheHit(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockCache := &MockStatsCache{}
	service := NewQueryService(mockRepo, mockCache)

	ctx := context.Background()
	stats := domain.BookingStats{Total: 4, Confirmed: 4}

	mockCache.On("GetStats", ctx).Return(&stats, nil).Once()

	result := service.Stats(ctx)

	assert.Equal(t, stats, result)
	mockRepo.AssertNotCalled(t, "CountByStatus")
}

func TestQueryService_Stats_ErrorDegradesToZero(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	service := NewQueryService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("CountByStatus", ctx).Return(domain.BookingStats{}, errors.New("connection refused")).Once()

	result := service.Stats(ctx)

	assert.Equal(t, domain.BookingStats{}, result)
}
