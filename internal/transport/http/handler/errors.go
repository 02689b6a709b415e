package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid email or password"
	errUserNotFound       = "User not found"
	errSessionNotFound    = "Session not found"
	errDuplicateEmail     = "Email already exists. Please use a different email."
	errInvalidCode        = "Invalid verification code"
	errCodeExpired        = "Verification code has expired"
)
