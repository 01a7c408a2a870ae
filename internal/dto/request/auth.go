package request

type RegisterRequest struct {
	Name              string  `json:"name" validate:"required,min=3,max=100"`
	Email             string  `json:"email" validate:"required,email"`
	Password          string  `json:"password" validate:"required,min=6"`
	PasswordRepeat    string  `json:"password_repeat" validate:"required,eqfield=Password"`
	Phone             *string `json:"phone,omitempty" validate:"omitempty,phonedigits,max=20"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
