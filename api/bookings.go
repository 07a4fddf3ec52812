package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, authn gin.HandlerFunc) {
	router.POST("", authn, h.create)
	router.GET("", authn, h.list)
	router.PUT("/:bookingId", authn, h.updateStatus)
}

type createBookingRequest struct {
	VehicleID     string `json:"vehicle_id" binding:"required"`
	RentStartDate string `json:"rent_start_date" binding:"required"`
	RentEndDate   string `json:"rent_end_date" binding:"required"`
	CustomerID    string `json:"customer_id"`
}

type updateBookingRequest struct {
	Status string `json:"status" binding:"required,oneof=cancelled returned"`
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	start, err := time.Parse(time.RFC3339, req.RentStartDate)
	if err != nil {
		respondBadRequest(c, "rent_start_date must be an RFC 3339 timestamp")
		return
	}
	end, err := time.Parse(time.RFC3339, req.RentEndDate)
	if err != nil {
		respondBadRequest(c, "rent_end_date must be an RFC 3339 timestamp")
		return
	}

	result, err := h.service.Create(c.Request.Context(), booking.CreateBookingInput{
		VehicleID:     req.VehicleID,
		RentStartDate: start,
		RentEndDate:   end,
		CustomerID:    req.CustomerID,
	}, principalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Booking created successfully", result)
}

func (h *BookingHandler) list(c *gin.Context) {
	requester := principalFrom(c)
	result, err := h.service.List(c.Request.Context(), requester)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(result) == 0 {
		respondOK(c, "No bookings found", result)
		return
	}

	message := "Bookings retrieved successfully"
	if requester.Role == domain.RoleCustomer {
		message = "Your bookings retrieved successfully"
	}
	respondOK(c, message, result)
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), c.Param("bookingId"), domain.BookingStatus(req.Status), principalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Booking updated successfully", result)
}
