package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/log"
)

var logger = log.New("loaders")

// Material holds the colors an OBJ material assigns to its vertices
type Material struct {
	Name     string
	Ambient  core.Vec3 // Ka
	Diffuse  core.Vec3 // Kd
	Emissive core.Vec3 // Ke
}

// DefaultMaterial is applied to faces that precede any usemtl statement
func DefaultMaterial() Material {
	return Material{
		Name:    "default",
		Ambient: core.NewVec3(0.05, 0.05, 0.05),
		Diffuse: core.NewVec3(0.8, 0.8, 0.8),
	}
}

// Shape is a named, triangulated group of faces. Every three consecutive
// vertices form a triangle.
type Shape struct {
	Name     string
	Vertices []geometry.Vertex
}

// Model contains the shapes read from an OBJ file
type Model struct {
	Shapes    []Shape
	Materials map[string]Material
}

// PerShapeBuffers returns the vertex buffers of all non-empty shapes in file order
func (m *Model) PerShapeBuffers() [][]geometry.Vertex {
	buffers := make([][]geometry.Vertex, 0, len(m.Shapes))
	for _, shape := range m.Shapes {
		if len(shape.Vertices) > 0 {
			buffers = append(buffers, shape.Vertices)
		}
	}
	return buffers
}

// TriangleCount returns the number of triangles across all shapes
func (m *Model) TriangleCount() int {
	count := 0
	for _, shape := range m.Shapes {
		count += len(shape.Vertices) / 3
	}
	return count
}

// Opener opens a file referenced from within an OBJ file, such as a material library
type Opener func(name string) (io.ReadCloser, error)

// LoadOBJ loads a Wavefront OBJ file. Material libraries are resolved
// relative to the directory of the OBJ file.
func LoadOBJ(filename string) (*Model, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	dir := filepath.Dir(filename)
	opener := func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, name))
	}

	model, err := ParseOBJ(file, filepath.Base(filename), opener)
	if err != nil {
		return nil, err
	}

	logger.Infof("Loaded OBJ file %s: %d shapes, %d triangles in %v",
		filename, len(model.Shapes), model.TriangleCount(), time.Since(startTime))
	return model, nil
}

type objParser struct {
	name   string
	line   int
	opener Opener

	positions []core.Vec3
	normals   []core.Vec3

	model    *Model
	shape    *Shape
	material Material
}

// ParseOBJ parses an OBJ stream. name is only used in error messages. A nil
// opener makes mtllib statements fail.
func ParseOBJ(r io.Reader, name string, opener Opener) (*Model, error) {
	p := &objParser{
		name:     name,
		opener:   opener,
		model:    &Model{Materials: make(map[string]Material)},
		material: DefaultMaterial(),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	p.closeShape()
	return p.model, nil
}

func (p *objParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d: %s", p.name, p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) parseLine(line string) error {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseVec3(fields)
		if err != nil {
			return p.errorf("%v", err)
		}
		p.positions = append(p.positions, v)
	case "vn":
		v, err := parseVec3(fields)
		if err != nil {
			return p.errorf("%v", err)
		}
		p.normals = append(p.normals, v.Normalize())
	case "o", "g":
		p.closeShape()
		name := ""
		if len(fields) > 1 {
			name = strings.Join(fields[1:], " ")
		}
		p.shape = &Shape{Name: name}
	case "usemtl":
		if len(fields) != 2 {
			return p.errorf("unsupported syntax for 'usemtl'; expected 1 argument; got %d", len(fields)-1)
		}
		material, ok := p.model.Materials[fields[1]]
		if !ok {
			return p.errorf("undefined material '%s'", fields[1])
		}
		p.material = material
	case "mtllib":
		if len(fields) != 2 {
			return p.errorf("unsupported syntax for 'mtllib'; expected 1 argument; got %d", len(fields)-1)
		}
		if err := p.loadMaterials(fields[1]); err != nil {
			return p.errorf("%v", err)
		}
	case "f":
		return p.parseFace(fields)
	}
	// vt, s, l and other statements carry nothing the raytracer consumes
	return nil
}

func (p *objParser) closeShape() {
	if p.shape != nil && len(p.shape.Vertices) > 0 {
		p.model.Shapes = append(p.model.Shapes, *p.shape)
	}
	p.shape = nil
}

type faceCorner struct {
	position  core.Vec3
	normal    core.Vec3
	hasNormal bool
}

// parseFace reads a polygon and appends it to the current shape as a
// triangle fan around its first corner
func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 4 {
		return p.errorf("unsupported syntax for 'f'; expected at least 3 vertices; got %d", len(fields)-1)
	}

	corners := make([]faceCorner, 0, len(fields)-1)
	for _, field := range fields[1:] {
		corner, err := p.parseCorner(field)
		if err != nil {
			return err
		}
		corners = append(corners, corner)
	}

	if p.shape == nil {
		p.shape = &Shape{Name: "default"}
	}

	for i := 1; i+1 < len(corners); i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		faceNormal := b.position.Subtract(a.position).Cross(c.position.Subtract(a.position)).Normalize()
		for _, corner := range []faceCorner{a, b, c} {
			normal := faceNormal
			if corner.hasNormal {
				normal = corner.normal
			}
			p.shape.Vertices = append(p.shape.Vertices, geometry.NewVertex(
				corner.position, normal, p.material.Ambient, p.material.Diffuse, p.material.Emissive))
		}
	}
	return nil
}

// parseCorner reads one of the forms v, v/vt, v//vn and v/vt/vn
func (p *objParser) parseCorner(field string) (faceCorner, error) {
	var corner faceCorner
	tokens := strings.Split(field, "/")
	if len(tokens) > 3 {
		return corner, p.errorf("unsupported face vertex syntax '%s'", field)
	}

	index, err := selectIndex(tokens[0], len(p.positions))
	if err != nil {
		return corner, p.errorf("vertex '%s': %v", field, err)
	}
	corner.position = p.positions[index]

	if len(tokens) == 3 && tokens[2] != "" {
		index, err := selectIndex(tokens[2], len(p.normals))
		if err != nil {
			return corner, p.errorf("normal '%s': %v", field, err)
		}
		corner.normal = p.normals[index]
		corner.hasNormal = true
	}
	return corner, nil
}

// selectIndex converts a 1-based or negative (relative to the end) OBJ index
// into a 0-based index into a list of size n
func selectIndex(token string, n int) (int, error) {
	index, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("invalid index '%s'", token)
	}
	if index < 0 {
		index = n + index
	} else {
		index--
	}
	if index < 0 || index >= n {
		return 0, fmt.Errorf("index out of bounds")
	}
	return index, nil
}

func (p *objParser) loadMaterials(name string) error {
	if p.opener == nil {
		return fmt.Errorf("cannot resolve material library '%s'", name)
	}
	file, err := p.opener(name)
	if err != nil {
		return fmt.Errorf("failed to open material library: %w", err)
	}
	defer file.Close()

	materials, err := ParseMTL(file, name)
	if err != nil {
		return err
	}
	for _, material := range materials {
		p.model.Materials[material.Name] = material
	}
	return nil
}

// ParseMTL parses a material library. Only the Ka, Kd and Ke colors are kept.
func ParseMTL(r io.Reader, name string) ([]Material, error) {
	var materials []Material
	var current *Material

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) != 2 {
				return nil, fmt.Errorf("%s:%d: unsupported syntax for 'newmtl'; expected 1 argument; got %d", name, line, len(fields)-1)
			}
			materials = append(materials, Material{Name: fields[1]})
			current = &materials[len(materials)-1]
			continue
		}

		var target *core.Vec3
		switch fields[0] {
		case "Ka":
			if current != nil {
				target = &current.Ambient
			}
		case "Kd":
			if current != nil {
				target = &current.Diffuse
			}
		case "Ke":
			if current != nil {
				target = &current.Emissive
			}
		default:
			continue
		}
		if target == nil {
			return nil, fmt.Errorf("%s:%d: '%s' before 'newmtl'", name, line, fields[0])
		}

		v, err := parseVec3(fields)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %v", name, line, err)
		}
		*target = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return materials, nil
}

// parseVec3 reads the three components following the statement keyword
func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 4 {
		return core.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", fields[0], len(fields)-1)
	}
	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid number '%s' for '%s'", fields[i+1], fields[0])
		}
		v[i] = f
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
