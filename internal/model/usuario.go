package model

import (
	"time"
)

// Role is the closed set of access roles. There is no dynamic group
// lookup: a user has exactly one role plus an optional superuser flag.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleMedico        Role = "medico"
	RoleRecepcionista Role = "recepcionista"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMedico, RoleRecepcionista:
		return true
	}
	return false
}

// Usuario is an authentication account. The username is the holder's RUT.
type Usuario struct {
	Base
	Rut                 string     `json:"rut" db:"rut"`
	Nombre              string     `json:"nombre" db:"nombre"`
	Apellido            string     `json:"apellido" db:"apellido"`
	Password            string     `json:"password,omitempty" db:"-"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	Role                Role       `json:"role" db:"role"`
	Superuser           bool       `json:"superuser" db:"superuser"`
	Activo              bool       `json:"activo" db:"activo"`
	FailedLoginAttempts int        `json:"-" db:"failed_login_attempts"`
	LastLoginAttempt    *time.Time `json:"-" db:"last_login_attempt"`
	LastLoginAt         *time.Time `json:"last_login_at" db:"last_login_at"`
}

// NombreCompleto joins first and last name the way the dashboards show it.
func (u *Usuario) NombreCompleto() string {
	if u.Apellido == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Rut      string `json:"rut" binding:"required,rut"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued token plus the role the client
// needs to pick a dashboard.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	Role        Role      `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}
