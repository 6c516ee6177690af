package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestOutline(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 9, 9))
	src.SetNRGBA(4, 4, color.NRGBA{R: 255, A: 255})

	out := Outline(src, 1, color.NRGBA{G: 255, A: 255})

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"opaque pixel untouched", 4, 4, false},
		{"left neighbour", 3, 4, true},
		{"diagonal neighbour", 5, 5, true},
		{"two away", 2, 4, false},
		{"corner", 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := out.NRGBAAt(tc.x, tc.y).A != 0
			if got != tc.want {
				t.Fatalf("outline at (%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestScreenUVRoundTrip(t *testing.T) {
	for _, uv := range []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0.25, Y: 0.75}} {
		s := uvToScreen(uv)
		got, inside := screenToUV(s.X, s.Y)
		if !inside {
			t.Fatalf("%v mapped outside the texture", uv)
		}
		if got.Distance(uv) > 1e-9 {
			t.Fatalf("round trip %v -> %v", uv, got)
		}
	}

	if _, inside := screenToUV(0, 0); inside {
		t.Fatalf("screen origin should miss the texture")
	}
	if got := clampUV(cp.Vector{X: -1, Y: 2}); got != (cp.Vector{X: 0, Y: 1}) {
		t.Fatalf("clampUV = %v", got)
	}
}
