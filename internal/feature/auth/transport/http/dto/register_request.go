package dto

import usersdto "user_backend/internal/feature/users/transport/http/dto"

// RegisterReq represents the request body for the /register endpoint.
type RegisterReq struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,bcryptmax"`
}

// RegisterRes represents the response for a successful registration.
type RegisterRes struct {
	User  usersdto.UserRes `json:"user"`
	Token string           `json:"token"`
}
