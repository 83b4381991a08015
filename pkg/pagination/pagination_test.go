package pagination

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults pass through", 1, 20, 1, 20, 0},
		{"zero page falls back", 0, 10, 1, 10, 0},
		{"negative page falls back", -3, 10, 1, 10, 0},
		{"zero limit falls back", 2, 0, 2, DefaultLimit, DefaultLimit},
		{"limit capped", 1, 500, 1, MaxLimit, 0},
		{"offset from page", 4, 25, 4, 25, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.page, tt.limit)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("Clamp(%d, %d) = %+v, want page %d limit %d offset %d",
					tt.page, tt.limit, got, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
