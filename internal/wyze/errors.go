package wyze

import "errors"

var (
	// ErrAuthFailed is returned when login is rejected or yields no token.
	ErrAuthFailed = errors.New("wyze authentication failed")
	// ErrNotAuthenticated is returned when the device list is requested
	// before a successful Login.
	ErrNotAuthenticated = errors.New("wyze client is not authenticated")
	// ErrAPI is returned for non-success responses from the device API.
	ErrAPI = errors.New("wyze api error")
)
