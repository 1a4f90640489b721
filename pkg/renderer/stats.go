package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// FrameStats contains statistics about one RayGeneration call
type FrameStats struct {
	Width, Height int
	Workers       int
	Volumes       int           // Bounding volumes in the acceleration structure
	Pixels        int           // Pixels written
	Hits          int           // Primary rays that resolved to geometry
	RenderTime    time.Duration // Wall clock time of the frame
}

// Misses returns the number of pixels shaded by the miss shader
func (s FrameStats) Misses() int {
	return s.Pixels - s.Hits
}

// HitRatio returns the fraction of pixels that hit geometry
func (s FrameStats) HitRatio() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Pixels)
}

// Table builds a tabular representation of the frame statistics.
func (s FrameStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resolution", "Workers", "Volumes", "Pixels", "Hits", "Misses", "% hit"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", s.Width, s.Height),
		fmt.Sprintf("%d", s.Workers),
		fmt.Sprintf("%d", s.Volumes),
		fmt.Sprintf("%d", s.Pixels),
		fmt.Sprintf("%d", s.Hits),
		fmt.Sprintf("%d", s.Misses()),
		fmt.Sprintf("%02.1f %%", 100*s.HitRatio()),
	})
	table.SetFooter([]string{"", "", "", "", "", "TOTAL", s.RenderTime.String()})

	table.Render()
	return buf.String()
}
