package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-raytracer-core/pkg/loaders"
)

// ErrUnknownScene is returned by Load for ids that are neither built in nor an OBJ file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Built-in name or path of the OBJ file
	Name        string // Display name
	Description string // Optional description
	Type        string // "builtin" or "obj"
	FilePath    string // Path to OBJ file (obj type only)
}

var builtInScenes = []struct {
	info SceneInfo
	new  func() *Scene
}{
	{
		info: SceneInfo{
			ID:          "cornell-box",
			Name:        "Cornell Box",
			Description: "Cornell box with two blocks and a ceiling light",
			Type:        "builtin",
		},
		new: NewCornellBoxScene,
	},
	{
		info: SceneInfo{
			ID:          "unit-square",
			Name:        "Unit Square",
			Description: "Single emissive square filling a 2x2 frame",
			Type:        "builtin",
		},
		new: NewUnitSquareScene,
	},
}

// ListBuiltInScenes returns the scenes that need no model file
func ListBuiltInScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	for i, s := range builtInScenes {
		scenes[i] = s.info
	}
	return scenes
}

// ListOBJScenes scans dir for OBJ files. A missing directory yields an empty list.
func ListOBJScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.obj"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseOBJMetadata(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse metadata for %s: %w", filePath, err)
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseOBJMetadata extracts metadata from the header comments of an OBJ file:
//
//	# Scene: Cornell Box
//	# Description: The original box
func ParseOBJMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "obj",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			sceneInfo.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			sceneInfo.Description = strings.TrimSpace(value)
		}
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the OBJ scenes in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	objScenes, err := ListOBJScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list OBJ scenes: %w", err)
	}
	return append(ListBuiltInScenes(), objScenes...), nil
}

// Load creates a scene from a built-in id or the path of an OBJ file
func Load(id string) (*Scene, error) {
	for _, s := range builtInScenes {
		if s.info.ID == id {
			return s.new(), nil
		}
	}

	if !strings.EqualFold(filepath.Ext(id), ".obj") {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownScene)
	}

	model, err := loaders.LoadOBJ(id)
	if err != nil {
		return nil, err
	}
	info, err := ParseOBJMetadata(id)
	if err != nil {
		return nil, err
	}
	return NewModelScene(info.Name, model), nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
