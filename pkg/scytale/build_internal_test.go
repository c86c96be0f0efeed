package scytale

import (
	"math"
	"testing"
)

func TestRowCount(t *testing.T) {
	tests := []struct {
		n, d, want int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{7, 3, 3},
		{2, math.MaxInt, 1},
		{math.MaxInt, math.MaxInt, 1},
		{math.MaxInt, 2, math.MaxInt/2 + 1},
	}
	for _, tt := range tests {
		if got := rowCount(tt.n, tt.d); got != tt.want {
			t.Errorf("rowCount(%d, %d) = %d, want %d", tt.n, tt.d, got, tt.want)
		}
	}
}

func TestBuildHugeDiameterEmptyText(t *testing.T) {
	g := Build("", math.MaxInt, Options{})
	if g.Rows() != 0 || g.Diameter() != math.MaxInt {
		t.Errorf("Build(\"\", MaxInt) = %d rows, diameter %d", g.Rows(), g.Diameter())
	}
}
