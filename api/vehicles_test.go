package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rideaway/vehicle-rental/internal/apperr"
	"github.com/rideaway/vehicle-rental/internal/auth"
	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/service/vehicles"
)

type MockVehicleUseCase struct {
	mock.Mock
}

func (m *MockVehicleUseCase) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleUseCase) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleUseCase) Create(ctx context.Context, input vehicles.CreateVehicleInput) (*domain.Vehicle, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleUseCase) Update(ctx context.Context, id string, input vehicles.UpdateVehicleInput) (*domain.Vehicle, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func vehicleRouter(service vehicles.VehicleUseCase, p auth.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewVehicleHandler(service).Register(router.Group("/vehicles"), asPrincipal(p), RequireRoles(domain.RoleAdmin))
	return router
}

func TestVehicleHandler_List_Public(t *testing.T) {
	service := &MockVehicleUseCase{}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// no auth middleware at all on reads
	NewVehicleHandler(service).Register(router.Group("/vehicles"), asPrincipal(auth.Principal{}), RequireRoles(domain.RoleAdmin))

	service.On("List", mock.Anything).Return([]domain.Vehicle{{ID: "v1"}}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicles", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVehicleHandler_Get_NotFound(t *testing.T) {
	service := &MockVehicleUseCase{}
	router := vehicleRouter(service, auth.Principal{})

	service.On("GetByID", mock.Anything, "missing").Return(nil, apperr.New(apperr.NotFound, "Vehicle not found")).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicles/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Vehicle not found", resp.Message)
}

func TestVehicleHandler_Create_AdminOnly(t *testing.T) {
	service := &MockVehicleUseCase{}
	router := vehicleRouter(service, auth.Principal{ID: "c1", Role: domain.RoleCustomer})

	body, _ := json.Marshal(map[string]any{
		"vehicle_name":        "Toyota Corolla",
		"type":                "car",
		"registration_number": "DHK-1234",
		"daily_rent_price":    100,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vehicles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVehicleHandler_Create_AsAdmin(t *testing.T) {
	service := &MockVehicleUseCase{}
	router := vehicleRouter(service, auth.Principal{ID: "admin1", Role: domain.RoleAdmin})

	created := &domain.Vehicle{ID: "v1", VehicleName: "Toyota Corolla", AvailabilityStatus: domain.VehicleAvailable}
	service.On("Create", mock.Anything, mock.AnythingOfType("vehicles.CreateVehicleInput")).Return(created, nil).Once()

	body, _ := json.Marshal(map[string]any{
		"vehicle_name":        "Toyota Corolla",
		"type":                "car",
		"registration_number": "DHK-1234",
		"daily_rent_price":    100,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vehicles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	service.AssertExpectations(t)
}

func TestVehicleHandler_Create_RejectsUnknownType(t *testing.T) {
	service := &MockVehicleUseCase{}
	router := vehicleRouter(service, auth.Principal{ID: "admin1", Role: domain.RoleAdmin})

	body, _ := json.Marshal(map[string]any{
		"vehicle_name":        "Cessna 172",
		"type":                "plane",
		"registration_number": "DHK-0001",
		"daily_rent_price":    500,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vehicles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVehicleHandler_Delete_ActiveBookingConflict(t *testing.T) {
	service := &MockVehicleUseCase{}
	router := vehicleRouter(service, auth.Principal{ID: "admin1", Role: domain.RoleAdmin})

	service.On("Delete", mock.Anything, "v1").Return(apperr.New(apperr.Conflict, "Cannot delete vehicle with active bookings")).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/vehicles/v1", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}
