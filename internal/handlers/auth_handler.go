package handlers

import (
	"github.com/adam-ctrlc/gotrabahu/internal/services"
	"github.com/adam-ctrlc/gotrabahu/internal/services/dto"
	"github.com/adam-ctrlc/gotrabahu/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService *services.AuthService
	userService *services.UserService
	appService  *services.ApplicationService
}

func NewAuthHandler(
	base *BaseHandler,
	authService *services.AuthService,
	userService *services.UserService,
	appService *services.ApplicationService,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		userService: userService,
		appService:  appService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondCreated(c, user, "Registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, resp, "Logged in successfully")
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.Me(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, profile, "")
}

func (h *AuthHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit, offset := ParsePagination(c)
	apps, err := h.userService.History(h.GetDB(c), userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, apps, "")
}

// UpdateProfile updates the caller's own profile. The id path param must
// match the authenticated user.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if c.Param("id") != userID {
		h.HandleServiceError(c, apperrors.NewForbiddenError("You can only update your own profile"))
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, user, "Profile updated successfully")
}

func (h *AuthHandler) TokenLedger(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit, offset := ParsePagination(c)
	entries, err := h.appService.TokenLedger(h.GetDB(c), userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, entries, "")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, nil, "Password changed successfully")
}
