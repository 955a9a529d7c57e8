// Package dto defines data transfer objects for the users HTTP API.
package dto

// CreateUserReq represents the request body for POST /users.
type CreateUserReq struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,bcryptmax"`
}

// UpdateUserReq represents the request body for PUT /users/{id}.
// Every field is optional and validated only when present.
type UpdateUserReq struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6,bcryptmax"`
}
