package request

type UpdateProfileRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone             *string `json:"phone,omitempty" validate:"omitempty,phonedigits,max=20"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer admin"`
}
