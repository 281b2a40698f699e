package friendship

import (
	"context"
	"errors"
	"log/slog"

	"socialhub/internal/domain/user"
)

type Service struct {
	repo   Repository
	users  *user.Service
	guard  *user.Guard
	logger *slog.Logger
}

func NewService(repo Repository, users *user.Service, guard *user.Guard, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		users:  users,
		guard:  guard,
		logger: logger.With(slog.String("component", "friendships")),
	}
}

// Befriend links a and b. The caller needs write access to a.
func (s *Service) Befriend(ctx context.Context, callerID int64, a, b string) error {
	ua, err := s.guard.Owner(ctx, callerID, a, user.Write)
	if err != nil {
		return err
	}
	ub, err := s.users.GetByName(ctx, b)
	if err != nil {
		return err
	}
	if ua.ID == ub.ID {
		return ErrSelfFriendship
	}

	if err := s.repo.Create(ctx, ua.ID, ub.ID); err != nil {
		return err
	}
	s.logger.Info("friendship created", slog.String("a", ua.Name), slog.String("b", ub.Name))
	return nil
}

// Friends lists name's friends. Only name itself or an admin may ask; being
// a friend is not enough.
func (s *Service) Friends(ctx context.Context, callerID int64, name string) ([]Friend, error) {
	owner, err := s.guard.Owner(ctx, callerID, name, user.Write)
	if err != nil {
		return nil, err
	}

	ids, err := s.repo.ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	friends := make([]Friend, 0, len(ids))
	for _, id := range ids {
		u, err := s.users.GetByID(ctx, id)
		if errors.Is(err, user.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		p, err := s.users.Profile(u)
		if err != nil {
			return nil, err
		}
		friends = append(friends, Friend{
			UserName:     p.Name,
			ProfileImage: p.ProfileImage,
			Description:  p.Description,
			IsBot:        p.IsBot,
			AmountPosts:  p.AmountPosts,
		})
	}
	return friends, nil
}
