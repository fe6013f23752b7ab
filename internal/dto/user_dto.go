package dto

type CreateUserRequest struct {
	Username    string  `json:"username"     validate:"required,min=3,max=100"`
	Name        string  `json:"name"         validate:"required,min=2,max=100"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Password    string  `json:"password"     validate:"required,min=6,max=100"`
	Role        string  `json:"role"         validate:"required,oneof=ceo admin stockManager medicalRep"`
	Region      *string `json:"region"`
	AvatarURL   *string `json:"avatar_url"`
	SpecialtyID *string `json:"specialty_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Name        string  `json:"name"         validate:"omitempty,min=2,max=100"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Password    string  `json:"password"     validate:"omitempty,min=6,max=100"`
	Role        string  `json:"role"         validate:"omitempty,oneof=ceo admin stockManager medicalRep"`
	Region      *string `json:"region"`
	AvatarURL   *string `json:"avatar_url"`
	SpecialtyID *string `json:"specialty_id" validate:"omitempty,uuid"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	Role        string  `json:"role"`
	Region      *string `json:"region,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	SpecialtyID *string `json:"specialty_id,omitempty"`
	Active      bool    `json:"active"`
}
