package pagination

import "testing"

func TestNormalizeClampsBounds(t *testing.T) {
	cases := []struct {
		name     string
		in       Request
		wantPage int
		wantSize int
	}{
		{"defaults", Request{}, 0, 20},
		{"negative page", Request{Page: -3, Size: 10}, 0, 10},
		{"oversized", Request{Page: 1, Size: 500}, 1, 100},
		{"within bounds", Request{Page: 2, Size: 50}, 2, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize(20, 100)
			if got.Page != tc.wantPage || got.Size != tc.wantSize {
				t.Fatalf("Normalize(%+v) = %+v, want page=%d size=%d", tc.in, got, tc.wantPage, tc.wantSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := Request{Page: 3, Size: 25}
	if got := req.Offset(); got != 75 {
		t.Fatalf("Offset() = %d, want 75", got)
	}
}

func TestNewComputesTotalPages(t *testing.T) {
	page := New([]string{"a", "b"}, Request{Page: 0, Size: 2}, 5)
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if page.TotalItems != 5 {
		t.Fatalf("expected 5 total items, got %d", page.TotalItems)
	}

	empty := New[string](nil, Request{Page: 0, Size: 2}, 0)
	if empty.Items == nil {
		t.Fatalf("expected non-nil items slice")
	}
	if empty.TotalPages != 0 {
		t.Fatalf("expected 0 total pages, got %d", empty.TotalPages)
	}
}
