// Package entity defines the domain entities for the users feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user. It is assigned by the database
	// and never changes for the lifetime of the record.
	ID uint `gorm:"primaryKey"`

	// Name is the display name of the user.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored and the hash is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
