package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             *string         `json:"phone,omitempty"`
	ProfilePictureURL *string         `json:"profile_picture_url,omitempty"`
	Role              entity.UserRole `json:"role"`
	CreatedAt         time.Time       `json:"created_at"`
}

// IsAdmin reports whether the user may open the admin views.
func (u UserResponse) IsAdmin() bool {
	return u.Role == entity.RoleAdmin
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                user.ID.String(),
		Name:              user.Name,
		Email:             user.Email,
		Phone:             user.Phone,
		ProfilePictureURL: user.ProfilePictureURL,
		Role:              user.Role,
		CreatedAt:         user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{User: UserToResponse(user)}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
