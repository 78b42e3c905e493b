package handlers

import (
	"github.com/adam-ctrlc/gotrabahu/internal/services"
	"github.com/adam-ctrlc/gotrabahu/internal/services/dto"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService *services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{BaseHandler: base, commentService: commentService}
}

func (h *CommentHandler) ListByJob(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	comments, err := h.commentService.ListByJob(h.GetDB(c), c.Param("job_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, comments, "")
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req struct {
		JobID string `json:"job_id" validate:"required,uuid4"`
		dto.CreateCommentRequest
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(h.GetDB(c), userID, req.JobID, req.Comment)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondCreated(c, comment, "Comment created successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, nil, "Comment deleted successfully")
}

// DeleteAsJobOwner lets the employer who posted the job remove a comment
// from its thread.
func (h *CommentHandler) DeleteAsJobOwner(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteAsJobOwner(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, nil, "Comment deleted successfully")
}
