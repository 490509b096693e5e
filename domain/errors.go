package domain

import "errors"

// Lookup errors
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// Conflict errors (duplicate-key storage failures are translated to these)
var (
	ErrEmailTaken       = errors.New("email is already in use")
	ErrAttendanceExists = errors.New("attendance already marked for this date")
)

// OTP errors
var (
	ErrPhoneRequired  = errors.New("phone is required to send otp")
	ErrOTPNotPending  = errors.New("no otp pending")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPMaxAttempts = errors.New("too many otp attempts")
	ErrSMSDispatch    = errors.New("failed to dispatch sms")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)
