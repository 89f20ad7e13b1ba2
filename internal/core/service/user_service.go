package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/leverblum/boardsctrl/internal/core/domain"
	"github.com/leverblum/boardsctrl/internal/core/ports"
)

type userService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
	now   func() time.Time
}

// NewUserService returns the administrative UserService. Accounts it
// creates have no local password.
func NewUserService(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) ports.UserService {
	return &userService{users: users, roles: roles, log: log, now: time.Now}
}

func (s *userService) List(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.User], error) {
	page = page.Normalize()
	items, total, err := s.users.List(ctx, page)
	if err != nil {
		return domain.Page[*domain.User]{}, fmt.Errorf("list users: %w", err)
	}
	return domain.NewPage(items, total, page), nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) Create(ctx context.Context, in ports.UserInput, actor string) (*domain.User, error) {
	exists, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateUsername
	}
	if _, err := s.roles.FindByID(ctx, in.RoleID); err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username: in.Username,
		Email:    strings.TrimSpace(in.Email),
		RoleID:   in.RoleID,
		Active:   true,
		Audit:    domain.NewAudit(actor, s.now()),
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", user.Username).Str("actor", actor).Msg("user created")
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, in ports.UserPatch, actor string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.RoleID != nil && *in.RoleID != user.RoleID {
		if _, err := s.roles.FindByID(ctx, *in.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = *in.RoleID
	}
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
	}

	user.Touch(actor, s.now())
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Active = nextActive(user.Active, active)
	user.Touch(actor, s.now())
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("toggle user: %w", err)
	}
	return user, nil
}
