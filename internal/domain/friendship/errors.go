package friendship

import "errors"

var (
	ErrAlreadyFriends = errors.New("users are already friends")
	ErrSelfFriendship = errors.New("cannot befriend yourself")
)
