package handlers

import (
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/services"
	"github.com/adam-ctrlc/gotrabahu/internal/services/dto"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	userService *services.UserService
	subService  *services.SubscriptionService
}

func NewAdminHandler(base *BaseHandler, userService *services.UserService, subService *services.SubscriptionService) *AdminHandler {
	return &AdminHandler{BaseHandler: base, userService: userService, subService: subService}
}

// Dashboard returns the admin landing payload: headline counters plus a
// page of employees and employers.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	db := h.GetDB(c)

	dashboard, err := h.userService.AdminDashboard(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	limit, offset := ParsePagination(c)
	employees, err := h.userService.ListByRole(db, models.UserRoleEmployee, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	employers, err := h.userService.ListByRole(db, models.UserRoleEmployer, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"dashboard": dashboard,
		"employees": employees,
		"employers": employers,
	}, "")
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.AdminCreate(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondCreated(c, user, "User created successfully")
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, user, "")
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req dto.AdminUpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.AdminUpdate(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, user, "User updated successfully")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.AdminDelete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, nil, "User deleted successfully")
}

func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	limit, offset := ParsePagination(c)
	subs, err := h.subService.ListAll(h.GetDB(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, subs, "")
}

// UpdateUserSubscription approves or rejects a user's plan request and,
// on 20_token activation, grants the token balance.
func (h *AdminHandler) UpdateUserSubscription(c *gin.Context) {
	var req dto.AdminUpdateUserSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	sub, err := h.subService.AdminUpdateUserSubscription(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, sub, "Subscription updated successfully")
}
