package ports

import (
	"context"

	"github.com/leverblum/boardsctrl/internal/core/domain"
)

// CategoryRepository stores board categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// ExistsByTitle ignores the record with id excludeID when it is non-empty.
	ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	List(ctx context.Context, page domain.PageRequest) ([]*domain.Category, int64, error)
}

// BoardFilter narrows board listings. Empty fields match everything.
type BoardFilter struct {
	CategoryID string
}

// BoardRepository stores boards.
type BoardRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Board, error)
	ExistsByTitle(ctx context.Context, categoryID, title, excludeID string) (bool, error)
	Create(ctx context.Context, board *domain.Board) error
	Update(ctx context.Context, board *domain.Board) error
	List(ctx context.Context, filter BoardFilter, page domain.PageRequest) ([]*domain.Board, int64, error)
}

// SlideFilter narrows slide listings. Empty fields match everything.
type SlideFilter struct {
	BoardID string
}

// SlideRepository stores slides.
type SlideRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Slide, error)
	Create(ctx context.Context, slide *domain.Slide) error
	Update(ctx context.Context, slide *domain.Slide) error
	List(ctx context.Context, filter SlideFilter, page domain.PageRequest) ([]*domain.Slide, int64, error)
}
