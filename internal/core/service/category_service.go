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

type categoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewCategoryService returns a CategoryService implementation.
func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) ports.CategoryService {
	return &categoryService{repo: repo, log: log, now: time.Now}
}

func (s *categoryService) List(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Category], error) {
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return domain.Page[*domain.Category]{}, fmt.Errorf("list categories: %w", err)
	}
	return domain.NewPage(items, total, page), nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, in ports.CategoryInput, actor string) (*domain.Category, error) {
	title := strings.TrimSpace(in.Title)
	if err := s.ensureUniqueTitle(ctx, title, ""); err != nil {
		return nil, err
	}

	category := &domain.Category{
		Title:  title,
		Active: true,
		Audit:  domain.NewAudit(actor, s.now()),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.log.Info().Str("category_id", category.ID).Str("actor", actor).Msg("category created")
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id string, in ports.CategoryPatch, actor string) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title != category.Title {
			if err := s.ensureUniqueTitle(ctx, title, id); err != nil {
				return nil, err
			}
		}
		category.Title = title
	}

	category.Touch(actor, s.now())
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Active = nextActive(category.Active, active)
	category.Touch(actor, s.now())
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("toggle category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ensureUniqueTitle(ctx context.Context, title, excludeID string) error {
	exists, err := s.repo.ExistsByTitle(ctx, title, excludeID)
	if err != nil {
		return fmt.Errorf("check category title: %w", err)
	}
	if exists {
		return domain.Conflict("Ya existe una categoría con ese título.")
	}
	return nil
}

// nextActive returns the requested state, or the negation of current when
// none is requested.
func nextActive(current bool, requested *bool) bool {
	if requested != nil {
		return *requested
	}
	return !current
}
