package dto

type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,max=100"`
	MiddleName     *string `json:"middle_name" validate:"omitempty,max=100"`
	BirthDate      *string `json:"birth_date" validate:"omitempty"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	Address        *string `json:"address" validate:"omitempty,max=255"`
	City           *string `json:"city" validate:"omitempty,max=100"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=male female other"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty"`
}

type AdminCreateUserRequest struct {
	Username   string  `json:"username" validate:"required,min=3,max=50"`
	Password   string  `json:"password" validate:"required,min=8"`
	Role       string  `json:"role" validate:"required,oneof=admin employer employee"`
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	LastName   string  `json:"last_name" validate:"required,max=100"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=100"`
	BirthDate  string  `json:"birth_date" validate:"required"`
	Phone      string  `json:"phone" validate:"required,max=30"`
	Address    string  `json:"address" validate:"required,max=255"`
	City       string  `json:"city" validate:"required,max=100"`
	Gender     string  `json:"gender" validate:"required,oneof=male female other"`
	Tokens     *int    `json:"token" validate:"omitempty,min=0"`
}

type AdminUpdateUserRequest struct {
	Role           *string `json:"role" validate:"omitempty,oneof=admin employer employee"`
	FirstName      *string `json:"first_name" validate:"omitempty,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,max=100"`
	MiddleName     *string `json:"middle_name" validate:"omitempty,max=100"`
	BirthDate      *string `json:"birth_date" validate:"omitempty"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	Address        *string `json:"address" validate:"omitempty,max=255"`
	City           *string `json:"city" validate:"omitempty,max=100"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=male female other"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty"`
	Tokens         *int    `json:"token" validate:"omitempty,min=0"`
}
