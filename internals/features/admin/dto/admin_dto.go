package dto

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	Admin       AdminInfo `json:"admin"`
}

type AdminInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

type CreateAdminRequest struct {
	Username  string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" form:"email"`
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name" form:"last_name" validate:"required"`
	Role      string `json:"role" form:"role"`
	Password  string `json:"password" form:"password" validate:"required,min=6"`
}

type UpdateAdminRequest struct {
	Email     string `json:"email" form:"email"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Role      string `json:"role" form:"role"`
	IsActive  *bool  `json:"is_active" form:"is_active"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" form:"new_password" validate:"required,min=6"`
}
