package ports

import (
	"context"

	"github.com/leverblum/boardsctrl/internal/core/domain"
)

// Create/Update inputs. Update fields left nil are not changed.

type CategoryInput struct {
	Title string
}

type CategoryPatch struct {
	Title *string
}

type BoardInput struct {
	CategoryID  string
	Title       string
	Description string
}

type BoardPatch struct {
	CategoryID  *string
	Title       *string
	Description *string
}

type SlideInput struct {
	BoardID string
	Title   string
	URL     string
	Time    int
}

type SlidePatch struct {
	BoardID *string
	Title   *string
	URL     *string
	Time    *int
}

type RoleInput struct {
	Name string
}

type RolePatch struct {
	Name *string
}

type UserInput struct {
	Username string
	Email    string
	RoleID   string
}

type UserPatch struct {
	Email  *string
	RoleID *string
}

// The actor argument is the account id of the caller; it is written into
// the audit stamps. SetActive toggles the flag when active is nil.

type CategoryService interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Category], error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in CategoryInput, actor string) (*domain.Category, error)
	Update(ctx context.Context, id string, in CategoryPatch, actor string) (*domain.Category, error)
	SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.Category, error)
}

type BoardService interface {
	List(ctx context.Context, filter BoardFilter, page domain.PageRequest) (domain.Page[*domain.Board], error)
	Get(ctx context.Context, id string) (*domain.Board, error)
	Create(ctx context.Context, in BoardInput, actor string) (*domain.Board, error)
	Update(ctx context.Context, id string, in BoardPatch, actor string) (*domain.Board, error)
	SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.Board, error)
}

type SlideService interface {
	List(ctx context.Context, filter SlideFilter, page domain.PageRequest) (domain.Page[*domain.Slide], error)
	Get(ctx context.Context, id string) (*domain.Slide, error)
	Create(ctx context.Context, in SlideInput, actor string) (*domain.Slide, error)
	Update(ctx context.Context, id string, in SlidePatch, actor string) (*domain.Slide, error)
	SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.Slide, error)
}

type RoleService interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Role], error)
	Get(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, in RoleInput, actor string) (*domain.Role, error)
	Update(ctx context.Context, id string, in RolePatch, actor string) (*domain.Role, error)
	SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.Role, error)
}

type UserService interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.User], error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in UserInput, actor string) (*domain.User, error)
	Update(ctx context.Context, id string, in UserPatch, actor string) (*domain.User, error)
	SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.User, error)
}
