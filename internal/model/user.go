package model

import (
	"strings"
	"time"
)

type User struct {
	ID       int64     `validate:"gte=0"`
	Email    string    `validate:"notblank,max=255,email"`
	Login    string    `validate:"notblank,max=255,nowhitespace"`
	Name     string    `validate:"max=255"`
	Birthday time.Time `validate:"notfuture"`

	// Friends holds friend ids in ascending order.
	Friends []int64
}

// WithDefaultName falls back to the login when no display name was given.
func (u User) WithDefaultName() User {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	return u
}
