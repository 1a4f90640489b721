package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
)

func TestImageTarget_FromColor(t *testing.T) {
	target := NewImageTarget(2, 2)

	tests := []struct {
		name     string
		color    core.Vec3
		expected color.RGBA
	}{
		{name: "Black", color: core.NewVec3(0, 0, 0), expected: color.RGBA{0, 0, 0, 255}},
		{name: "White", color: core.NewVec3(1, 1, 1), expected: color.RGBA{255, 255, 255, 255}},
		{name: "Clamped", color: core.NewVec3(2, -1, 0.5), expected: color.RGBA{255, 0, 127, 255}},
		{name: "NaN", color: core.NewVec3(math.NaN(), 1, math.NaN()), expected: color.RGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := target.FromColor(tt.color); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImageTarget_Gamma(t *testing.T) {
	target := NewImageTarget(1, 1)
	target.SetGamma(2.0)

	// sqrt(0.25) = 0.5
	if got := target.FromColor(core.NewVec3(0.25, 0.25, 0.25)); got.R != 127 {
		t.Errorf("Expected gamma corrected 127, got %d", got.R)
	}
	if got := target.FromColor(core.NewVec3(-1, 0, 0)); got.R != 0 {
		t.Errorf("Expected negative channel clamped to 0, got %d", got.R)
	}
	if got := target.FromColor(core.NewVec3(math.NaN(), 0, 0)); got.R != 0 {
		t.Errorf("Expected NaN channel quantized to 0, got %d", got.R)
	}
}

func TestImageTarget_Indexing(t *testing.T) {
	target := NewImageTarget(3, 2)
	if target.Len() != 6 {
		t.Fatalf("Expected 6 elements, got %d", target.Len())
	}

	red := color.RGBA{255, 0, 0, 255}
	target.SetItem(4, red)
	if target.At(1, 1) != red {
		t.Errorf("Expected item 4 to map to (1,1), got %v", target.At(1, 1))
	}

	blue := color.RGBA{0, 0, 255, 255}
	target.Set(2, 0, blue)
	if target.Image().RGBAAt(2, 0) != blue {
		t.Errorf("Expected (2,0) to be blue")
	}
}

func TestBuffer_Indexing(t *testing.T) {
	buffer := NewBuffer(4, 3, func(c core.Vec3) float64 { return c.X })

	buffer.Set(1, 2, buffer.FromColor(core.NewVec3(0.75, 0, 0)))
	if buffer.Item(2*4+1) != 0.75 {
		t.Errorf("Expected row-major storage, got %v", buffer.Item(9))
	}
	if buffer.At(1, 2) != 0.75 {
		t.Errorf("Expected At(1,2)=0.75, got %v", buffer.At(1, 2))
	}
	if buffer.Width() != 4 || buffer.Height() != 3 || buffer.Len() != 12 {
		t.Errorf("Unexpected dimensions %dx%d (%d)", buffer.Width(), buffer.Height(), buffer.Len())
	}
}
