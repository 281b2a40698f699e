package user

import (
	"context"
	"fmt"
)

type Access int

const (
	Read Access = iota
	Write
)

// Authorizer decides whether a caller may read or write an owner's data.
type Authorizer interface {
	CanRead(ctx context.Context, callerID int64, owner *User) (bool, error)
	CanWrite(ctx context.Context, callerID int64, owner *User) (bool, error)
}

// Guard resolves the user named in a request and applies an Authorizer.
type Guard struct {
	users *Service
	authz Authorizer
}

func NewGuard(users *Service, authz Authorizer) *Guard {
	return &Guard{users: users, authz: authz}
}

// Owner returns the named user if callerID has the requested access.
// Fails with ErrUserNotFound or ErrForbidden.
func (g *Guard) Owner(ctx context.Context, callerID int64, name string, access Access) (*User, error) {
	owner, err := g.users.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	var ok bool
	switch access {
	case Write:
		ok, err = g.authz.CanWrite(ctx, callerID, owner)
	default:
		ok, err = g.authz.CanRead(ctx, callerID, owner)
	}
	if err != nil {
		return nil, fmt.Errorf("authorize user %d on %s: %w", callerID, name, err)
	}
	if !ok {
		return nil, ErrForbidden
	}
	return owner, nil
}

func (g *Guard) Users() *Service { return g.users }
