package geometry

import (
	"errors"
	"fmt"
)

// ErrMalformedVertexBuffer is returned when a vertex buffer cannot be split
// into whole triangles.
var ErrMalformedVertexBuffer = errors.New("vertex buffer length is not a multiple of 3")

// BuildBoxes builds the flat acceleration structure: one box per shape buffer,
// each holding the triangles formed by consecutive vertex triples. Buffers
// are validated up front so a failed build returns no partial result.
func BuildBoxes[V VertexRecord](buffers [][]V) ([]*Box, error) {
	for i, buffer := range buffers {
		if len(buffer)%3 != 0 {
			return nil, fmt.Errorf("shape %d has %d vertices: %w", i, len(buffer), ErrMalformedVertexBuffer)
		}
	}

	boxes := make([]*Box, 0, len(buffers))
	for _, buffer := range buffers {
		box := NewBox()
		for i := 0; i < len(buffer); i += 3 {
			box.AddTriangle(NewTriangle(buffer[i], buffer[i+1], buffer[i+2]))
		}
		boxes = append(boxes, box)
	}

	return boxes, nil
}

// CountTriangles returns the total number of triangles across boxes
func CountTriangles(boxes []*Box) int {
	total := 0
	for _, box := range boxes {
		total += box.Len()
	}
	return total
}
