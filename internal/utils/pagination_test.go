package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		// typical query parameter values
		{"1", 1, 1},
		{"25", 20, 25},
		{"0012", 20, 12},
		// empty falls back
		{"", 20, 20},
		// junk falls back, no trimming
		{"twenty", 20, 20},
		{" 25", 20, 20},
		{"25 ", 20, 20},
		// negatives parse; the caller clamps
		{"-3", 1, -3},
		// overflow falls back
		{"99999999999999999999", 20, 20},
	}

	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}
