package geom

import (
	"math"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestDist(t *testing.T) {
	a := V(1, 2, 3)
	b := V(4, 6, 3)
	testutil.AssertEqual(t, "dist", a.Dist(b), 5.0)
	testutil.AssertEqual(t, "dist sq", a.DistSq(b), 25.0)
}

func TestNormalize(t *testing.T) {
	n := V(0, 3, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("expected unit length, got %v", n.Len())
	}
	testutil.AssertEqual(t, "zero", Zero.Normalize(), Zero)
}

func TestWrapDegrees(t *testing.T) {
	tests := map[string]struct {
		in, exp float64
	}{
		"in range": {in: 90, exp: 90},
		"overflow": {in: 370, exp: 10},
		"negative": {in: -30, exp: 330},
		"full":     {in: 360, exp: 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "deg", WrapDegrees(tt.in), tt.exp)
		})
	}
}
