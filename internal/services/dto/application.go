package dto

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=applied accepted rejected"`
}
