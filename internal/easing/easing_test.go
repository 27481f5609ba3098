package easing

import (
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
	}{
		{"out", OutCubic},
		{"in", InCubic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(0); got != 0 {
				t.Errorf("f(0) = %f, want 0", got)
			}
			if got := tt.fn(1); got != 1 {
				t.Errorf("f(1) = %f, want 1", got)
			}
			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := tt.fn(float64(i) / 100)
				if v < prev {
					t.Fatalf("not monotonic at %d: %f < %f", i, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestEaseValues(t *testing.T) {
	if got := OutCubic(0.5); math.Abs(got-0.875) > 1e-9 {
		t.Errorf("OutCubic(0.5) = %f, want 0.875", got)
	}
	if got := InCubic(0.5); math.Abs(got-0.125) > 1e-9 {
		t.Errorf("InCubic(0.5) = %f, want 0.125", got)
	}
}

func TestClampAndLerp(t *testing.T) {
	if Clamp01(-0.2) != 0 || Clamp01(1.7) != 1 || Clamp01(0.3) != 0.3 {
		t.Error("Clamp01 out of range")
	}
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Lerp = %f, want 12.5", got)
	}
}
