package dto

import "user_backend/internal/feature/users/domain/entity"

// UserRes is the public representation of a user. The password hash is never included.
type UserRes struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUserRes converts a domain user into its response form.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NewUserListRes converts users into a non-nil response slice.
func NewUserListRes(users []entity.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for i := range users {
		out = append(out, NewUserRes(&users[i]))
	}
	return out
}
