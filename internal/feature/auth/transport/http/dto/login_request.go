// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// LoginReq represents the request body for the /login endpoint.
// Fields are not validated here: any bad credential is answered with the same 401.
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRes represents the response for a successful login.
type LoginRes struct {
	Token string `json:"token"`
}
