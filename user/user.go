package user

import "errors"

var ErrUserNotFound = errors.New("user not found")

var ErrRoleNotFound = errors.New("role not found")

var ErrPermissionNotFound = errors.New("permission not found")

// User carries its role by reference; RoleName is denormalized on read so the
// booking lifecycle can apply the administrator auto-confirmation rule without
// a second lookup.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	RoleID       int64  `json:"roleId"`
	RoleName     string `json:"roleName,omitempty"`
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Permission struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
