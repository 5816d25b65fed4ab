package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/Domenick1991/flyflex/internal/repository"
	"github.com/Domenick1991/flyflex/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Reserve(ctx context.Context, userID int64, input booking.ReserveInput) (*domain.Booking, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Confirm(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockQueryUseCase struct {
	mock.Mock
}

func (m *MockQueryUseCase) ListForUser(ctx context.Context, userID int64) []domain.BookingDetail {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.BookingDetail)
}

func (m *MockQueryUseCase) ListAll(ctx context.Context, filter repository.ListFilter) []domain.BookingDetail {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.BookingDetail)
}

func (m *MockQueryUseCase) Stats(ctx context.Context) domain.BookingStats {
	args := m.Called(ctx)
	return args.Get(0).(domain.BookingStats)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, &MockQueryUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ctxUserID, int64(7))

	body, _ := json.Marshal(createBookingRequest{
		FlightID:        4,
		PassengerName:   "Jordan Lee",
		PassengerEmail:  "jordan@example.com",
		Passengers:      2,
		Class:           "business",
		TotalPriceCents: 50000,
	})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Booking{
		ID:               1,
		UserID:           7,
		FlightID:         4,
		Reference:        "FFABC123",
		TotalAmountCents: 50000,
		Status:           domain.BookingStatusPending,
	}
	mockService.On("Reserve", c.Request.Context(), int64(7), mock.Anything).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response createBookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "FFABC123", response.BookingReference)
	assert.Equal(t, int64(50000), response.TotalAmountCents)
	assert.Equal(t, "500.00", response.TotalAmount)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_RequiresIdentity(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, &MockQueryUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/bookings", nil)

	handler.create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response statusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	mockService.AssertNotCalled(t, "Reserve")
}

func TestBookingHandler_create_InsufficientSeats(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, &MockQueryUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ctxUserID, int64(7))

	body, _ := json.Marshal(createBookingRequest{
		FlightID:       4,
		PassengerName:  "Jordan Lee",
		PassengerEmail: "jordan@example.com",
		Passengers:     5,
	})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Reserve", c.Request.Context(), int64(7), mock.Anything).Return(nil, domain.ErrInsufficientSeats)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response statusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, &MockQueryUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ctxUserID, int64(7))
	c.Params = gin.Params{{Key: "id", Value: "10"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/10", nil)

	cancelled := &domain.Booking{ID: 10, UserID: 7, Status: domain.BookingStatusCancelled}
	mockService.On("Cancel", c.Request.Context(), int64(7), int64(10)).Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response statusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_NotOwned(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, &MockQueryUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ctxUserID, int64(7))
	c.Params = gin.Params{{Key: "id", Value: "10"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/10", nil)

	mockService.On("Cancel", c.Request.Context(), int64(7), int64(10)).Return(nil, domain.ErrNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_cancel_InventoryInconsistency(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, &MockQueryUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ctxUserID, int64(7))
	c.Params = gin.Params{{Key: "id", Value: "10"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/10", nil)

	mockService.On("Cancel", c.Request.Context(), int64(7), int64(10)).Return(nil, domain.ErrIntegrityViolation)

	handler.cancel(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response statusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "Inventory inconsistency detected", response.Message)
}

func TestBookingHandler_listMine(t *testing.T) {
	mockQueries := &MockQueryUseCase{}
	handler := NewBookingHandler(&MockBookingUseCase{}, mockQueries)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ctxUserID, int64(7))
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	details := []domain.BookingDetail{
		{
			Booking:      domain.Booking{ID: 2, UserID: 7, Reference: "FFB", Status: domain.BookingStatusPending, FareClass: domain.FareClassEconomy},
			FlightNumber: "FF101",
			AirlineName:  "FlyFlex Air",
		},
	}
	mockQueries.On("ListForUser", c.Request.Context(), int64(7)).Return(details)

	handler.listMine(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success  bool              `json:"success"`
		Bookings []bookingListItem `json:"bookings"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Len(t, response.Bookings, 1)
	assert.Equal(t, "FFB", response.Bookings[0].BookingReference)
}
