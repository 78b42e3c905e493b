package dto

type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}
