package pagination

import "testing"

func TestValidateClampsParams(t *testing.T) {
	cases := []struct {
		name        string
		in          PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"zero values", PaginationParams{}, 1, 15},
		{"negative page", PaginationParams{Page: -3, PerPage: 10}, 1, 10},
		{"per page too large", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
	}
	for _, tc := range cases {
		tc.in.Validate()
		if tc.in.Page != tc.wantPage || tc.in.PerPage != tc.wantPerPage {
			t.Errorf("%s: got page=%d per_page=%d, want page=%d per_page=%d",
				tc.name, tc.in.Page, tc.in.PerPage, tc.wantPage, tc.wantPerPage)
		}
	}
}

func TestOffset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 35)
	if pag.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", pag.TotalPages)
	}
	if !pag.HasNext || !pag.HasPrev {
		t.Errorf("expected both has_next and has_prev on middle page")
	}
}
