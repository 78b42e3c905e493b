package dto

type RegisterRequest struct {
	Username       string  `json:"username" validate:"required,min=3,max=50"`
	Password       string  `json:"password" validate:"required,min=8"`
	Role           string  `json:"role" validate:"required,oneof=employer employee"`
	FirstName      string  `json:"first_name" validate:"required,max=100"`
	LastName       string  `json:"last_name" validate:"required,max=100"`
	MiddleName     *string `json:"middle_name" validate:"omitempty,max=100"`
	BirthDate      string  `json:"birth_date" validate:"required"`
	Phone          string  `json:"phone" validate:"required,max=30"`
	Address        string  `json:"address" validate:"required,max=255"`
	City           string  `json:"city" validate:"required,max=100"`
	Gender         string  `json:"gender" validate:"required,oneof=male female other"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
	Role      string `json:"role"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
