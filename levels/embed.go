package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/barkour/common"
	"github.com/milk9111/barkour/prefabs"
	"gopkg.in/yaml.v3"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrUnknownLevel = errors.New("levels: unknown level")

// Level is the static geometry the player collides against, plus the bacon
// spawn points.
type Level struct {
	Name      string
	Platforms []common.Rect
	Walls     []common.Rect
	Bacon     []prefabs.Point
}

// FromSpec copies a level spec so later edits to the spec do not leak into a
// running world.
func FromSpec(name string, spec prefabs.LevelSpec) *Level {
	return &Level{
		Name:      name,
		Platforms: append([]common.Rect(nil), spec.Platforms...),
		Walls:     append([]common.Rect(nil), spec.Walls...),
		Bacon:     append([]prefabs.Point(nil), spec.Bacon...),
	}
}

func LoadLevelFromFS(name string) (*Level, error) {
	base := strings.TrimSuffix(name, ".json")
	data, err := fs.ReadFile(LevelsFS, base+".json")
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var spec prefabs.LevelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", base, err)
	}
	return FromSpec(base, spec), nil
}

// Resolve finds a level by name: levels inlined in the game spec win over the
// embedded level files. An empty name means the spec's start level.
func Resolve(spec *prefabs.GameSpec, name string) (*Level, error) {
	if name == "" && spec != nil {
		name = spec.Game.StartLevel
	}
	if name == "" {
		name = prefabs.DefaultLevel
	}
	if lvl, ok := spec.Level(name); ok {
		return FromSpec(name, lvl), nil
	}
	lvl, err := LoadLevelFromFS(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, name)
		}
		return nil, err
	}
	return lvl, nil
}

// Names lists every level Resolve can find, sorted.
func Names(spec *prefabs.GameSpec) []string {
	seen := map[string]struct{}{}
	if spec != nil {
		for name := range spec.Levels {
			seen[name] = struct{}{}
		}
	}
	entries, _ := fs.ReadDir(LevelsFS, ".")
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		seen[strings.TrimSuffix(e.Name(), ".json")] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
