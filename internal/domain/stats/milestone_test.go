package stats

import "testing"

func TestIsMilestone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     int
		threshold int
		want      bool
	}{
		{name: "exact multiple", total: 100, threshold: 50, want: true},
		{name: "one short", total: 99, threshold: 50, want: false},
		{name: "first milestone", total: 50, threshold: 50, want: true},
		{name: "zero total", total: 0, threshold: 50, want: false},
		{name: "zero threshold", total: 100, threshold: 0, want: false},
		{name: "negative threshold", total: 100, threshold: -50, want: false},
		{name: "custom threshold", total: 75, threshold: 25, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsMilestone(tc.total, tc.threshold); got != tc.want {
				t.Fatalf("IsMilestone(%d, %d) = %t, want %t", tc.total, tc.threshold, got, tc.want)
			}
		})
	}
}
