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

type boardService struct {
	boards     ports.BoardRepository
	categories ports.CategoryRepository
	log        zerolog.Logger
	now        func() time.Time
}

// NewBoardService returns a BoardService implementation. Board titles are
// unique within their category and the category must exist.
func NewBoardService(boards ports.BoardRepository, categories ports.CategoryRepository, log zerolog.Logger) ports.BoardService {
	return &boardService{boards: boards, categories: categories, log: log, now: time.Now}
}

func (s *boardService) List(ctx context.Context, filter ports.BoardFilter, page domain.PageRequest) (domain.Page[*domain.Board], error) {
	page = page.Normalize()
	if filter.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, filter.CategoryID); err != nil {
			return domain.Page[*domain.Board]{}, err
		}
	}
	items, total, err := s.boards.List(ctx, filter, page)
	if err != nil {
		return domain.Page[*domain.Board]{}, fmt.Errorf("list boards: %w", err)
	}
	return domain.NewPage(items, total, page), nil
}

func (s *boardService) Get(ctx context.Context, id string) (*domain.Board, error) {
	return s.boards.FindByID(ctx, id)
}

func (s *boardService) Create(ctx context.Context, in ports.BoardInput, actor string) (*domain.Board, error) {
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if err := s.ensureUniqueTitle(ctx, in.CategoryID, title, ""); err != nil {
		return nil, err
	}

	board := &domain.Board{
		CategoryID:  in.CategoryID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Active:      true,
		Audit:       domain.NewAudit(actor, s.now()),
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	s.log.Info().Str("board_id", board.ID).Str("category_id", board.CategoryID).Str("actor", actor).Msg("board created")
	return board, nil
}

func (s *boardService) Update(ctx context.Context, id string, in ports.BoardPatch, actor string) (*domain.Board, error) {
	board, err := s.boards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	categoryID, title := board.CategoryID, board.Title
	if in.CategoryID != nil && *in.CategoryID != board.CategoryID {
		if _, err := s.categories.FindByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		categoryID = *in.CategoryID
	}
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
	}
	if categoryID != board.CategoryID || title != board.Title {
		if err := s.ensureUniqueTitle(ctx, categoryID, title, id); err != nil {
			return nil, err
		}
	}

	board.CategoryID = categoryID
	board.Title = title
	if in.Description != nil {
		board.Description = strings.TrimSpace(*in.Description)
	}

	board.Touch(actor, s.now())
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("update board: %w", err)
	}
	return board, nil
}

func (s *boardService) SetActive(ctx context.Context, id string, active *bool, actor string) (*domain.Board, error) {
	board, err := s.boards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	board.Active = nextActive(board.Active, active)
	board.Touch(actor, s.now())
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("toggle board: %w", err)
	}
	return board, nil
}

func (s *boardService) ensureUniqueTitle(ctx context.Context, categoryID, title, excludeID string) error {
	exists, err := s.boards.ExistsByTitle(ctx, categoryID, title, excludeID)
	if err != nil {
		return fmt.Errorf("check board title: %w", err)
	}
	if exists {
		return domain.Conflict("Ya existe un tablero con ese título en la categoría.")
	}
	return nil
}
