package api

import (
	"github.com/gin-gonic/gin"

	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/service/users"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup, authn gin.HandlerFunc, adminOnly gin.HandlerFunc) {
	router.GET("", authn, adminOnly, h.list)
	router.PUT("/:userId", authn, h.update)
	router.DELETE("/:userId", authn, adminOnly, h.delete)
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
	Role  *string `json:"role" binding:"omitempty,oneof=admin customer"`
}

func (h *UserHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Users retrieved successfully", result)
}

func (h *UserHandler) update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var role *domain.Role
	if req.Role != nil {
		r := domain.Role(*req.Role)
		role = &r
	}

	user, err := h.service.Update(c.Request.Context(), c.Param("userId"), users.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  role,
	}, principalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "User updated successfully", user)
}

func (h *UserHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "User deleted successfully", nil)
}
