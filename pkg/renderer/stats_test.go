package renderer

import (
	"strings"
	"testing"
	"time"
)

func TestFrameStats_Ratios(t *testing.T) {
	stats := FrameStats{Pixels: 8, Hits: 2}

	if stats.Misses() != 6 {
		t.Errorf("Expected 6 misses, got %d", stats.Misses())
	}
	if stats.HitRatio() != 0.25 {
		t.Errorf("Expected hit ratio 0.25, got %f", stats.HitRatio())
	}
	if (FrameStats{}).HitRatio() != 0 {
		t.Error("Expected zero hit ratio for an empty frame")
	}
}

func TestFrameStats_Table(t *testing.T) {
	stats := FrameStats{
		Width:      4,
		Height:     2,
		Workers:    2,
		Volumes:    3,
		Pixels:     8,
		Hits:       2,
		RenderTime: 1500 * time.Millisecond,
	}

	table := stats.Table()
	for _, want := range []string{"4x2", "Workers", "25.0 %", "TOTAL", "1.5s"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, table)
		}
	}
}
