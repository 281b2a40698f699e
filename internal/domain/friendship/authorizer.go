package friendship

import (
	"context"

	"socialhub/internal/domain/user"
)

type userLookup interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// Authorizer grants read access to the owner, their friends and admins,
// and write access to the owner and admins.
type Authorizer struct {
	repo  Repository
	users userLookup
}

func NewAuthorizer(repo Repository, users userLookup) *Authorizer {
	return &Authorizer{repo: repo, users: users}
}

func (a *Authorizer) CanRead(ctx context.Context, callerID int64, owner *user.User) (bool, error) {
	if ok, err := a.CanWrite(ctx, callerID, owner); ok || err != nil {
		return ok, err
	}
	return a.repo.Exists(ctx, callerID, owner.ID)
}

func (a *Authorizer) CanWrite(ctx context.Context, callerID int64, owner *user.User) (bool, error) {
	if callerID == owner.ID {
		return true, nil
	}
	return a.isAdmin(ctx, callerID)
}

func (a *Authorizer) isAdmin(ctx context.Context, callerID int64) (bool, error) {
	caller, err := a.users.GetByID(ctx, callerID)
	if err != nil {
		return false, err
	}
	return caller.IsAdmin(), nil
}
