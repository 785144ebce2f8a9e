package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"kazari/internal/activity"
	"kazari/internal/geom"
)

// DefaultLayoutPath is the canonical room layout location relative to the
// working directory.
const DefaultLayoutPath = "room.yaml"

// LayoutPaths lists the paths searched (in priority order) when
// auto-discovering the room layout file.
var LayoutPaths = []string{
	DefaultLayoutPath,
	"config/room.yaml",
}

// ResolveLayoutPath discovers the room layout file location.
//
// Resolution order:
//  1. KAZARI_ROOM_LAYOUT environment variable (used as-is if set)
//  2. Explicit layoutPath parameter (if non-empty)
//  3. Auto-discovery under basePath via [LayoutPaths]
//  4. Falls back to [DefaultLayoutPath] (may not exist)
func ResolveLayoutPath(basePath, layoutPath string) string {
	if envPath := os.Getenv("KAZARI_ROOM_LAYOUT"); envPath != "" {
		return envPath
	}
	if layoutPath != "" {
		return layoutPath
	}
	for _, p := range LayoutPaths {
		fullPath := filepath.Join(basePath, p)
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath
		}
	}
	return filepath.Join(basePath, DefaultLayoutPath)
}

// PoseSpec is the YAML shape of a pose: position and orientation as
// [x, y, z] triples (orientation in Euler degrees).
type PoseSpec struct {
	Position    [3]float64 `yaml:"position"`
	Orientation [3]float64 `yaml:"orientation"`
}

// Pose converts the spec into a [geom.Pose].
func (p PoseSpec) Pose() geom.Pose {
	return geom.Pose{
		Position:    geom.Vec3{X: p.Position[0], Y: p.Position[1], Z: p.Position[2]},
		Orientation: geom.Vec3{X: p.Orientation[0], Y: p.Orientation[1], Z: p.Orientation[2]},
	}
}

// SpotSpec is the YAML shape of a placement spot definition.
type SpotSpec struct {
	// ID is the spot's stable identifier. Must be unique.
	ID string `yaml:"id"`
	// Activity is the bound activity type name.
	Activity string `yaml:"activity"`
	// Pose is the spot's own scene pose.
	Pose PoseSpec `yaml:"pose"`
	// Anchor is the optional precise placement pose.
	Anchor *PoseSpec `yaml:"anchor,omitempty"`
}

// Layout describes a room: the overview camera pose, the per-activity
// camera pose targets, and the placement spots.
type Layout struct {
	Overview      PoseSpec            `yaml:"overview"`
	ActivityPoses map[string]PoseSpec `yaml:"activity_poses"`
	Spots         []SpotSpec          `yaml:"spots"`
}

// Validate reports the first layout error, or nil. Every spot needs a
// unique ID, a known activity type, and a camera pose registered for that
// type.
func (l *Layout) Validate() error {
	if len(l.Spots) == 0 {
		return fmt.Errorf("layout: at least one spot is required")
	}

	seen := make(map[string]bool, len(l.Spots))
	for _, s := range l.Spots {
		if s.ID == "" {
			return fmt.Errorf("layout: spot with empty id")
		}
		if seen[s.ID] {
			return fmt.Errorf("layout: duplicate spot id %q", s.ID)
		}
		seen[s.ID] = true

		t, ok := activity.ParseType(s.Activity)
		if !ok {
			return fmt.Errorf("layout: spot %q has unknown activity %q", s.ID, s.Activity)
		}
		if _, ok := l.ActivityPoses[string(t)]; !ok {
			return fmt.Errorf("layout: no camera pose for activity %q (spot %q)", t, s.ID)
		}
	}
	return nil
}

// CameraPose returns the camera pose target for an activity type.
func (l *Layout) CameraPose(t activity.Type) (geom.Pose, bool) {
	spec, ok := l.ActivityPoses[string(t)]
	if !ok {
		return geom.Pose{}, false
	}
	return spec.Pose(), true
}

// LayoutReader reads room layouts from YAML files.
type LayoutReader struct {
	path string
}

// NewLayoutReader creates a reader that auto-discovers the layout file
// under basePath. Pass an empty string to use the working directory.
func NewLayoutReader(basePath string) *LayoutReader {
	return &LayoutReader{path: ResolveLayoutPath(basePath, "")}
}

// NewLayoutReaderWithPath creates a reader using the given layout file
// path. The KAZARI_ROOM_LAYOUT environment variable still takes priority.
func NewLayoutReaderWithPath(basePath, layoutPath string) *LayoutReader {
	return &LayoutReader{path: ResolveLayoutPath(basePath, layoutPath)}
}

// Path returns the resolved layout file path.
func (r *LayoutReader) Path() string { return r.path }

// Read parses and validates the layout file.
func (r *LayoutReader) Read() (*Layout, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read room layout: %w", err)
	}

	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse room layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// LoadLayout loads the room layout, falling back to [DefaultLayout] when
// no layout file exists and none was explicitly requested. An explicit
// path (parameter or environment variable) that fails to read is an error.
func LoadLayout(basePath, layoutPath string) (*Layout, error) {
	explicit := layoutPath != "" || os.Getenv("KAZARI_ROOM_LAYOUT") != ""
	reader := NewLayoutReaderWithPath(basePath, layoutPath)

	if !explicit {
		if _, err := os.Stat(reader.Path()); os.IsNotExist(err) {
			return DefaultLayout(), nil
		}
	}
	return reader.Read()
}

// DefaultLayout returns the built-in three-spot room used when no layout
// file is present: a lantern alcove, an origami table, and a calligraphy
// desk around a central overview.
func DefaultLayout() *Layout {
	return &Layout{
		Overview: PoseSpec{
			Position:    [3]float64{0, 2.5, -6},
			Orientation: [3]float64{15, 0, 0},
		},
		ActivityPoses: map[string]PoseSpec{
			string(activity.TypeLantern): {
				Position:    [3]float64{-3, 1.8, -1.5},
				Orientation: [3]float64{10, 40, 0},
			},
			string(activity.TypeOrigami): {
				Position:    [3]float64{0, 1.2, -1},
				Orientation: [3]float64{35, 0, 0},
			},
			string(activity.TypeCalligraphy): {
				Position:    [3]float64{3, 1.5, -1.5},
				Orientation: [3]float64{25, -40, 0},
			},
		},
		Spots: []SpotSpec{
			{
				ID:       "lantern-alcove",
				Activity: string(activity.TypeLantern),
				Pose: PoseSpec{
					Position:    [3]float64{-3.2, 1.6, 0.5},
					Orientation: [3]float64{0, 180, 0},
				},
				Anchor: &PoseSpec{
					Position:    [3]float64{-3.2, 2.1, 0.5},
					Orientation: [3]float64{0, 180, 0},
				},
			},
			{
				ID:       "origami-table",
				Activity: string(activity.TypeOrigami),
				Pose: PoseSpec{
					Position:    [3]float64{0, 0.8, 0.2},
					Orientation: [3]float64{0, 0, 0},
				},
			},
			{
				ID:       "calligraphy-desk",
				Activity: string(activity.TypeCalligraphy),
				Pose: PoseSpec{
					Position:    [3]float64{3.1, 0.9, 0.4},
					Orientation: [3]float64{0, -90, 0},
				},
				Anchor: &PoseSpec{
					Position:    [3]float64{3.1, 1.0, 0.4},
					Orientation: [3]float64{0, -90, 0},
				},
			},
		},
	}
}
