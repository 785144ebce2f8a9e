package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kazari/internal/activity"
)

const layoutYAML = `overview:
  position: [0, 2, -5]
  orientation: [10, 0, 0]
activity_poses:
  lantern:
    position: [-2, 1, 0]
    orientation: [0, 30, 0]
  origami:
    position: [0, 1, 0]
    orientation: [40, 0, 0]
spots:
  - id: alcove
    activity: lantern
    pose:
      position: [-2.5, 1.5, 1]
      orientation: [0, 180, 0]
    anchor:
      position: [-2.5, 2, 1]
      orientation: [0, 180, 0]
  - id: table
    activity: origami
    pose:
      position: [0, 0.8, 0.5]
      orientation: [0, 0, 0]
`

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "room.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLayoutReaderParsesYAML(t *testing.T) {
	t.Setenv("KAZARI_ROOM_LAYOUT", "")
	path := writeLayout(t, layoutYAML)

	layout, err := NewLayoutReaderWithPath("", path).Read()
	require.NoError(t, err)

	assert.Equal(t, [3]float64{0, 2, -5}, layout.Overview.Position)
	require.Len(t, layout.Spots, 2)

	alcove := layout.Spots[0]
	assert.Equal(t, "alcove", alcove.ID)
	assert.Equal(t, "lantern", alcove.Activity)
	require.NotNil(t, alcove.Anchor)
	assert.Equal(t, [3]float64{-2.5, 2, 1}, alcove.Anchor.Position)

	assert.Nil(t, layout.Spots[1].Anchor)

	pose, ok := layout.CameraPose(activity.TypeLantern)
	require.True(t, ok)
	assert.Equal(t, -2.0, pose.Position.X)
	assert.Equal(t, 30.0, pose.Orientation.Y)

	_, ok = layout.CameraPose(activity.TypeCalligraphy)
	assert.False(t, ok)
}

func TestLayoutValidate(t *testing.T) {
	base := func() *Layout {
		return &Layout{
			ActivityPoses: map[string]PoseSpec{"lantern": {}},
			Spots:         []SpotSpec{{ID: "a", Activity: "lantern"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Layout)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Layout) {}},
		{name: "no spots", mutate: func(l *Layout) { l.Spots = nil }, wantErr: true},
		{name: "empty id", mutate: func(l *Layout) { l.Spots[0].ID = "" }, wantErr: true},
		{
			name: "duplicate id",
			mutate: func(l *Layout) {
				l.Spots = append(l.Spots, SpotSpec{ID: "a", Activity: "lantern"})
			},
			wantErr: true,
		},
		{
			name:    "unknown activity",
			mutate:  func(l *Layout) { l.Spots[0].Activity = "pottery" },
			wantErr: true,
		},
		{
			name:    "missing camera pose",
			mutate:  func(l *Layout) { l.ActivityPoses = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := base()
			tt.mutate(layout)
			err := layout.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveLayoutPath(t *testing.T) {
	t.Run("environment variable wins", func(t *testing.T) {
		t.Setenv("KAZARI_ROOM_LAYOUT", "/tmp/env-room.yaml")
		assert.Equal(t, "/tmp/env-room.yaml", ResolveLayoutPath("", "explicit.yaml"))
	})

	t.Run("explicit path", func(t *testing.T) {
		t.Setenv("KAZARI_ROOM_LAYOUT", "")
		assert.Equal(t, "explicit.yaml", ResolveLayoutPath("", "explicit.yaml"))
	})

	t.Run("discovery finds config subdirectory", func(t *testing.T) {
		t.Setenv("KAZARI_ROOM_LAYOUT", "")
		dir := t.TempDir()
		sub := filepath.Join(dir, "config")
		require.NoError(t, os.MkdirAll(sub, 0o755))
		path := filepath.Join(sub, "room.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

		assert.Equal(t, path, ResolveLayoutPath(dir, ""))
	})

	t.Run("falls back to default path", func(t *testing.T) {
		t.Setenv("KAZARI_ROOM_LAYOUT", "")
		dir := t.TempDir()
		assert.Equal(t, filepath.Join(dir, DefaultLayoutPath), ResolveLayoutPath(dir, ""))
	})
}

func TestLoadLayoutFallsBackToBuiltIn(t *testing.T) {
	t.Setenv("KAZARI_ROOM_LAYOUT", "")
	dir := t.TempDir()

	layout, err := LoadLayout(dir, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout(), layout)
}

func TestLoadLayoutExplicitMissingFileIsError(t *testing.T) {
	t.Setenv("KAZARI_ROOM_LAYOUT", "")
	_, err := LoadLayout("", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadLayoutReadsExplicitFile(t *testing.T) {
	t.Setenv("KAZARI_ROOM_LAYOUT", "")
	path := writeLayout(t, layoutYAML)

	layout, err := LoadLayout("", path)
	require.NoError(t, err)
	assert.Len(t, layout.Spots, 2)
}

func TestDefaultLayoutIsValid(t *testing.T) {
	layout := DefaultLayout()
	require.NoError(t, layout.Validate())
	assert.Len(t, layout.Spots, 3)
	for _, typ := range activity.All() {
		_, ok := layout.CameraPose(typ)
		assert.True(t, ok, "missing camera pose for %s", typ)
	}
}
