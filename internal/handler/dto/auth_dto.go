package dto

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=student admin"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MessageResponse is a plain status message
type MessageResponse struct {
	Message string `json:"message"`
}
