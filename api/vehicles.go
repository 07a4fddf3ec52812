package api

import (
	"github.com/gin-gonic/gin"

	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/service/vehicles"
)

type VehicleHandler struct {
	service vehicles.VehicleUseCase
}

func NewVehicleHandler(service vehicles.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// Register wires the vehicle routes. Reads are public; writes require an
// authenticated admin.
func (h *VehicleHandler) Register(router *gin.RouterGroup, authn gin.HandlerFunc, adminOnly gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:vehicleId", h.get)
	router.POST("", authn, adminOnly, h.create)
	router.PUT("/:vehicleId", authn, adminOnly, h.update)
	router.DELETE("/:vehicleId", authn, adminOnly, h.delete)
}

type createVehicleRequest struct {
	VehicleName        string  `json:"vehicle_name" binding:"required"`
	Type               string  `json:"type" binding:"required,oneof=car bike van SUV"`
	RegistrationNumber string  `json:"registration_number" binding:"required"`
	DailyRentPrice     float64 `json:"daily_rent_price" binding:"required,gt=0"`
	Description        string  `json:"description"`
}

type updateVehicleRequest struct {
	VehicleName        *string  `json:"vehicle_name"`
	Type               *string  `json:"type" binding:"omitempty,oneof=car bike van SUV"`
	RegistrationNumber *string  `json:"registration_number"`
	DailyRentPrice     *float64 `json:"daily_rent_price" binding:"omitempty,gt=0"`
	Description        *string  `json:"description"`
}

func (h *VehicleHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Vehicles retrieved successfully", result)
}

func (h *VehicleHandler) get(c *gin.Context) {
	vehicle, err := h.service.GetByID(c.Request.Context(), c.Param("vehicleId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Vehicle retrieved successfully", vehicle)
}

func (h *VehicleHandler) create(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	vehicle, err := h.service.Create(c.Request.Context(), vehicles.CreateVehicleInput{
		VehicleName:        req.VehicleName,
		Type:               domain.VehicleType(req.Type),
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		Description:        req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Vehicle created successfully", vehicle)
}

func (h *VehicleHandler) update(c *gin.Context) {
	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var vehicleType *domain.VehicleType
	if req.Type != nil {
		t := domain.VehicleType(*req.Type)
		vehicleType = &t
	}

	vehicle, err := h.service.Update(c.Request.Context(), c.Param("vehicleId"), vehicles.UpdateVehicleInput{
		VehicleName:        req.VehicleName,
		Type:               vehicleType,
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		Description:        req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Vehicle updated successfully", vehicle)
}

func (h *VehicleHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("vehicleId")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Vehicle deleted successfully", nil)
}
