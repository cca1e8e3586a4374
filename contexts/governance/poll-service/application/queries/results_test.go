package queries

import "testing"

func TestYesPercentageRoundsHalfUp(t *testing.T) {
	cases := []struct {
		name string
		yes  int
		no   int
		want int
	}{
		{"two thirds rounds up", 2, 1, 67},
		{"one third rounds down", 1, 2, 33},
		{"exact half rounds up", 1, 1, 50},
		{"unanimous yes", 10, 0, 100},
		{"unanimous no", 0, 5, 0},
		{"no votes at all", 0, 0, 0},
		{"five eighths", 5, 3, 63},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := yesPercentage(tc.yes, tc.no); got != tc.want {
				t.Fatalf("yesPercentage(%d, %d) = %d, want %d", tc.yes, tc.no, got, tc.want)
			}
		})
	}
}
