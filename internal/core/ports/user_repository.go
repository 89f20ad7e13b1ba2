package ports

import (
	"context"

	"github.com/leverblum/boardsctrl/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// FindByUsername matches the username exactly. Returns domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Create returns domain.ErrDuplicateUsername when the unique index rejects the insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, page domain.PageRequest) ([]*domain.User, int64, error)
}

// RoleRepository stores roles. Role names are unique.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) error
	List(ctx context.Context, page domain.PageRequest) ([]*domain.Role, int64, error)
}
