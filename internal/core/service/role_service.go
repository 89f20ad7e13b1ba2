package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/leverblum/boardsctrl/internal/core/domain"
	"github.com/leverblum/boardsctrl/internal/core/ports"
)

type roleService struct {
	repo ports.RoleRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewRoleService returns a RoleService implementation. Role names are unique.
func NewRoleService(repo ports.RoleRepository, log zerolog.Logger) ports.RoleService {
	return &roleService{repo: repo, log: log, now: time.Now}
}

func (s *roleService) List(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Role], error) {
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return domain.Page[*domain.Role]{}, fmt.Errorf("list roles: %w", err)
	}
	return domain.NewPage(items, total, page), nil
}

func (s *roleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *roleService) Create(ctx context.Context, in ports.RoleInput, actor string) (*domain.Role, error) {
	name := strings.TrimSpace(in.Name)
	if err := s.ensureUniqueName(ctx, name, ""); err != nil {
		return nil, err
	}

	role, err := s.repo.Create(ctx, &domain.Role{
		Name:   name,
		Active: true,
		Audit:  domain.NewAudit(actor, s.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	s.log.Info().Str("role", role.Name).Str("actor", actor).Msg("role created")
	return role, nil
}

func (s *roleService) Update(ctx context.Context, id string, in ports.RolePatch, actor string) (*domain.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != role.Name {
			if err := s.ensureUniqueName(ctx, name, id); err != nil {
				return nil, err
			}
		}
		role.Name = name
	}

	role.Touch(actor, s.now())
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return role, nil
}

func (s *roleService) SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role.Active = nextActive(role.Active, active)
	role.Touch(actor, s.now())
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("toggle role: %w", err)
	}
	return role, nil
}

func (s *roleService) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	existing, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check role name: %w", err)
	}
	if existing.ID != excludeID {
		return domain.Conflict("Ya existe un rol con ese nombre.")
	}
	return nil
}
