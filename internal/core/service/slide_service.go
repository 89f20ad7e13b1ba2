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

const (
	minSlideTime = 1
	maxSlideTime = 1000
)

type slideService struct {
	slides ports.SlideRepository
	boards ports.BoardRepository
	log    zerolog.Logger
	now    func() time.Time
}

// NewSlideService returns a SlideService implementation.
func NewSlideService(slides ports.SlideRepository, boards ports.BoardRepository, log zerolog.Logger) ports.SlideService {
	return &slideService{slides: slides, boards: boards, log: log, now: time.Now}
}

func (s *slideService) List(ctx context.Context, filter ports.SlideFilter, page domain.PageRequest) (domain.Page[*domain.Slide], error) {
	page = page.Normalize()
	if filter.BoardID != "" {
		if _, err := s.boards.FindByID(ctx, filter.BoardID); err != nil {
			return domain.Page[*domain.Slide]{}, err
		}
	}
	items, total, err := s.slides.List(ctx, filter, page)
	if err != nil {
		return domain.Page[*domain.Slide]{}, fmt.Errorf("list slides: %w", err)
	}
	return domain.NewPage(items, total, page), nil
}

func (s *slideService) Get(ctx context.Context, id string) (*domain.Slide, error) {
	return s.slides.FindByID(ctx, id)
}

func (s *slideService) Create(ctx context.Context, in ports.SlideInput, actor string) (*domain.Slide, error) {
	if err := checkSlideTime(in.Time); err != nil {
		return nil, err
	}
	if _, err := s.boards.FindByID(ctx, in.BoardID); err != nil {
		return nil, err
	}

	slide := &domain.Slide{
		BoardID: in.BoardID,
		Title:   strings.TrimSpace(in.Title),
		URL:     strings.TrimSpace(in.URL),
		Time:    in.Time,
		Active:  true,
		Audit:   domain.NewAudit(actor, s.now()),
	}
	if err := s.slides.Create(ctx, slide); err != nil {
		return nil, fmt.Errorf("create slide: %w", err)
	}
	s.log.Info().Str("slide_id", slide.ID).Str("board_id", slide.BoardID).Str("actor", actor).Msg("slide created")
	return slide, nil
}

func (s *slideService) Update(ctx context.Context, id string, in ports.SlidePatch, actor string) (*domain.Slide, error) {
	slide, err := s.slides.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Time != nil {
		if err := checkSlideTime(*in.Time); err != nil {
			return nil, err
		}
		slide.Time = *in.Time
	}
	if in.BoardID != nil && *in.BoardID != slide.BoardID {
		if _, err := s.boards.FindByID(ctx, *in.BoardID); err != nil {
			return nil, err
		}
		slide.BoardID = *in.BoardID
	}
	if in.Title != nil {
		slide.Title = strings.TrimSpace(*in.Title)
	}
	if in.URL != nil {
		slide.URL = strings.TrimSpace(*in.URL)
	}

	slide.Touch(actor, s.now())
	if err := s.slides.Update(ctx, slide); err != nil {
		return nil, fmt.Errorf("update slide: %w", err)
	}
	return slide, nil
}

func (s *slideService) SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.Slide, error) {
	slide, err := s.slides.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slide.Active = nextActive(slide.Active, active)
	slide.Touch(actor, s.now())
	if err := s.slides.Update(ctx, slide); err != nil {
		return nil, fmt.Errorf("toggle slide: %w", err)
	}
	return slide, nil
}

func checkSlideTime(t int) error {
	if t < minSlideTime || t > maxSlideTime {
		return domain.Invalid(fmt.Sprintf("El tiempo debe estar entre %d y %d segundos.", minSlideTime, maxSlideTime))
	}
	return nil
}
