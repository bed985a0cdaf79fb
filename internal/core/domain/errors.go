package domain

import "errors"

// Common domain errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrUpstream           = errors.New("upstream service failure")
	ErrDuplicateEntry     = errors.New("duplicate entry")
)

// Identity errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin already exists")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("otp not found, request a new one")
	ErrOTPExpired     = errors.New("otp expired, request a new one")
	ErrOTPInvalid     = errors.New("otp code is incorrect")
	ErrOTPTooMany     = errors.New("too many otp attempts, request a new one")
	ErrOTPRateLimited = errors.New("please wait before requesting another otp")
)

// Complaint errors
var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrInvalidCategory   = errors.New("invalid complaint category")
	ErrInvalidStatus     = errors.New("invalid complaint status")
)
