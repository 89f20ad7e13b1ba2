package domain

import (
	"errors"
	"testing"
	"time"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		in, want PageRequest
	}{
		{PageRequest{}, PageRequest{Number: 1, Size: DefaultPageSize}},
		{PageRequest{Number: -4, Size: 25}, PageRequest{Number: 1, Size: 25}},
		{PageRequest{Number: 3, Size: 1000}, PageRequest{Number: 3, Size: MaxPageSize}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestPageRequest_Skip(t *testing.T) {
	if got := (PageRequest{Number: 3, Size: 10}).Skip(); got != 20 {
		t.Fatalf("expected skip 20, got %d", got)
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage([]string{"a", "b"}, 21, PageRequest{Number: 2, Size: 10})
	if p.TotalPages != 3 || p.Total != 21 || p.PageNumber != 2 || p.PageSize != 10 {
		t.Fatalf("unexpected page: %+v", p)
	}

	empty := NewPage[string](nil, 0, PageRequest{Number: 1, Size: 10})
	if empty.Items == nil || empty.TotalPages != 0 {
		t.Fatalf("empty page must carry an empty slice and zero pages: %+v", empty)
	}
}

func TestResourceError_Classification(t *testing.T) {
	if !errors.Is(ErrBoardNotFound, ErrNotFound) {
		t.Fatalf("ErrBoardNotFound must classify as ErrNotFound")
	}
	if errors.Is(ErrBoardNotFound, ErrConflict) {
		t.Fatalf("ErrBoardNotFound must not classify as ErrConflict")
	}
	if ErrUnknownRole.Error() != "Rol no encontrado" {
		t.Fatalf("unexpected message: %q", ErrUnknownRole.Error())
	}
}

func TestAudit_Touch(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.FixedZone("COT", -5*3600))
	a := NewAudit("u-1", created)
	if a.CreatedAt.Location() != time.UTC || a.ModifiedAt != nil {
		t.Fatalf("unexpected audit: %+v", a)
	}

	a.Touch("u-2", created.Add(time.Hour))
	if a.ModifiedBy != "u-2" || a.ModifiedAt == nil || !a.ModifiedAt.Equal(created.Add(time.Hour)) {
		t.Fatalf("modifier not stamped: %+v", a)
	}
}
