package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SignupRequest holds the registration payload. Optional profile fields may
// be absent; absent means NULL in the store, never empty string.
type SignupRequest struct {
	DepartmentID       string  `json:"department_id" validate:"required"`
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=6"`
	FirstName          string  `json:"firstName" validate:"required"`
	LastName           string  `json:"lastName" validate:"required"`
	RegistrationNumber string  `json:"registrationNumber" validate:"required"`
	Phone              *string `json:"phone,omitempty"`
	Address            *string `json:"address,omitempty"`
	City               *string `json:"city,omitempty"`
	State              *string `json:"state,omitempty"`
	ZipCode            *string `json:"zip_code,omitempty"`
	Country            *string `json:"country,omitempty"`
	DOB                *string `json:"dob,omitempty"`
	Gender             *string `json:"gender,omitempty"`
	ProfileImageURL    *string `json:"profileImageUrl,omitempty"`
}

// LoginRequest holds credentials for authenticating a student.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the issued token and the student record.
type AuthResponse struct {
	Student *StudentProfile `json:"student"`
	Token   string          `json:"token"`
}

// UpdateProfileRequest carries mutable profile fields. Every listed field is
// written on update, so a nil optional clears the column.
type UpdateProfileRequest struct {
	FirstName       string  `json:"firstName" validate:"required"`
	LastName        string  `json:"lastName" validate:"required"`
	DepartmentID    string  `json:"department_id" validate:"required"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	City            *string `json:"city,omitempty"`
	State           *string `json:"state,omitempty"`
	ZipCode         *string `json:"zip_code,omitempty"`
	Country         *string `json:"country,omitempty"`
	DOB             *string `json:"dob,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	StudentID string `json:"student_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
