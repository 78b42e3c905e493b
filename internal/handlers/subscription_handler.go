package handlers

import (
	"github.com/adam-ctrlc/gotrabahu/internal/services"
	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subService *services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{BaseHandler: base, subService: subService}
}

func (h *SubscriptionHandler) Overview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	overview, err := h.subService.Overview(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, overview, "")
}

func (h *SubscriptionHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	subs, err := h.subService.History(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, subs, "")
}

// Apply requests the plan in the path. A fresh request returns 201; an
// overwritten pending request returns 200.
func (h *SubscriptionHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sub, created, err := h.subService.Apply(h.GetDB(c), userID, c.Param("subscriptions_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if created {
		RespondCreated(c, sub, "Subscription requested successfully")
		return
	}
	RespondOK(c, sub, "Subscription request updated successfully")
}
