package dto

type ApplySubscriptionRequest struct {
	SubscriptionID string `json:"subscriptions_id" validate:"required,uuid4"`
}

type AdminUpdateUserSubscriptionRequest struct {
	UserID         string `json:"user_id" validate:"required,uuid4"`
	SubscriptionID string `json:"subscriptions_id" validate:"required,uuid4"`
	Status         string `json:"status" validate:"required,oneof=pending active inactive"`
	TokenCount     *int   `json:"token_count" validate:"omitempty,min=0"`
}
