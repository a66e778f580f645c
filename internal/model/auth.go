package model

// UserRole identifies the principal kind behind a token.
type UserRole string

const (
	RolePatient UserRole = "PATIENT"
	RoleNurse   UserRole = "NURSE"
	RoleAdmin   UserRole = "ADMIN"
)

// TokenClaims is the decoded identity carried by a bearer token.
type TokenClaims struct {
	Email string
	Role  UserRole
}

// AuthResponse is returned by every login/registration operation.
type AuthResponse struct {
	Token   string   `json:"token"`
	Role    UserRole `json:"role"`
	Email   string   `json:"email"`
	Message string   `json:"message"`
}

type NurseLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// PatientLoginRequest matches the registration details; patients do not
// carry a password.
type PatientLoginRequest struct {
	FullName string `json:"full_name" binding:"required"`
	MobileNo string `json:"mobile_no" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
