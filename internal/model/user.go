// Package model defines domain entities for the application.
package model

import "time"

// User represents an account that can own tools and borrow them from others.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
