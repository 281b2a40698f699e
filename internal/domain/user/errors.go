package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNameTaken          = errors.New("user name already taken")
	ErrInvalidName        = errors.New("invalid user name")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not allowed to access this user's data")
	ErrChecklistCorrupt   = errors.New("checklist file is not valid JSON")
)
