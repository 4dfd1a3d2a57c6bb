// File: internal/auth/model.go
package auth

// Credentials defines the structure for login requests.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegistrationRequest accepts both the canonical field names and the legacy aliases older
// clients still send (fullName, mobileNumber, dateOfBirth, confirmPassword).
// MapRegistration folds the aliases into the canonical fields before validation.
type RegistrationRequest struct {
	FirstName       string `json:"firstName,omitempty" validate:"required"`
	LastName        string `json:"lastName,omitempty" validate:"required"`
	FullName        string `json:"fullName,omitempty"`
	Email           string `json:"email,omitempty" validate:"required"`
	Phone           string `json:"phone,omitempty" validate:"required"`
	MobileNumber    string `json:"mobileNumber,omitempty"`
	Dob             string `json:"dob,omitempty" validate:"required"`
	DateOfBirth     string `json:"dateOfBirth,omitempty"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm,omitempty" validate:"required,eqfield=Password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// upstreamRegistration is the body the user service expects on POST /users.
type upstreamRegistration struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Dob             string `json:"dob"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// ForgotPasswordRequest starts the reset-link flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest completes the reset flow; Token comes from the URL path.
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm,omitempty" validate:"omitempty,eqfield=Password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

type upstreamPasswordReset struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm,omitempty"`
}

// PasswordChangeRequest is the self-service password update.
// UserID is only required when no bearer token identifies the caller.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	UserID          string `json:"userId,omitempty" validate:"required_unless=Authenticated true"`
	Authenticated   bool   `json:"-"`
}

type upstreamPasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	UserID          string `json:"userId,omitempty"`
}

// Identity is what the caller proved about itself on this request.
type Identity struct {
	Token  string
	UserID string // from the session bound to Token, if any
}
