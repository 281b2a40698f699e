package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"socialhub/internal/pkg/mediafs"
	"socialhub/internal/pkg/validator"

	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"
)

type CreateInput struct {
	Name        string
	Password    string
	Description string
	IsBot       bool
	Role        Role
}

// Service owns user records and the per-user directory tree.
type Service struct {
	repo   Repository
	fs     afero.Fs
	layout Layout
	logger *slog.Logger
}

func NewService(repo Repository, fs afero.Fs, layout Layout, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		fs:     fs,
		layout: layout,
		logger: logger.With(slog.String("component", "users")),
	}
}

func (s *Service) Layout() Layout { return s.layout }

// Create stores a new user and prepares their information directory, which
// also creates the permanent media root.
func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	if !validator.IsUserName(in.Name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, in.Name)
	}
	role := in.Role
	if role == "" {
		role = RoleUser
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:         in.Name,
		PasswordHash: hash,
		Role:         role,
		Description:  in.Description,
		IsBot:        in.IsBot,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.fs.MkdirAll(s.layout.InformationDir(u.Name), 0o755); err != nil {
		return nil, fmt.Errorf("create directories for %s: %w", u.Name, err)
	}

	s.logger.Info("user created", slog.Int64("user_id", u.ID), slog.String("name", u.Name))
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (*User, error) {
	return s.repo.GetByName(ctx, name)
}

// UserExists satisfies the session middleware.
func (s *Service) UserExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Authenticate checks a name/password pair.
func (s *Service) Authenticate(ctx context.Context, name, password string) (*User, error) {
	u, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := CheckPassword(password, u.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) UpdateDescription(ctx context.Context, id int64, description string) error {
	return s.repo.UpdateDescription(ctx, id, description)
}

// Profile builds the public view of u. amount_posts counts the files in the
// permanent media root; a missing root counts as zero.
func (s *Service) Profile(u *User) (*Profile, error) {
	p := &Profile{
		Name:        u.Name,
		Description: u.Description,
		IsBot:       u.IsBot,
	}

	entries, err := mediafs.List(s.fs, s.layout.MediaDir(u.Name), false)
	switch {
	case errors.Is(err, mediafs.ErrNotReadable):
		s.logger.Debug("media root not readable", slog.String("name", u.Name), slog.String("error", err.Error()))
	case err != nil:
		return nil, err
	default:
		p.AmountPosts = len(entries)
	}

	hasAvatar, err := afero.Exists(s.fs, s.layout.AvatarPath(u.Name))
	if err != nil {
		return nil, fmt.Errorf("check avatar of %s: %w", u.Name, err)
	}
	if hasAvatar {
		p.ProfileImage = "/api/user/" + u.Name + "/avatar"
	}
	return p, nil
}

// HashPassword hashes a plain password string
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plain password with a hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
