package models

import (
	"time"
)

type User struct {
	ID            string     `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	PhoneNumber   string     `json:"phone_number" db:"phone_number"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	State         string     `json:"state" db:"state"`
	District      string     `json:"district" db:"district"`
	Status        UserStatus `json:"status" db:"status"`
	LoginAttempts int        `json:"login_attempts" db:"login_attempts"`
	LockedUntil   int64      `json:"locked_until" db:"locked_until"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	LastLogin     *time.Time `json:"last_login" db:"last_login"`
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)
