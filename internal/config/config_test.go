package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gocube "github.com/SeamusWaldron/gocube_lattice"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	km, err := c.KeyMap()
	require.NoError(t, err)
	assert.Nil(t, km, "no override by default")
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
animation:
  duration_ms: 250
  easing: smoothstep
server:
  fps: 30
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, c.Animation.DurationMs)
	assert.Equal(t, "smoothstep", c.Animation.Easing)
	assert.Equal(t, 30, c.Server.FPS)
	assert.Equal(t, ":8080", c.Server.Addr, "unset values keep their defaults")
	assert.Equal(t, gocube.DefaultCubeSize, c.Lattice.CubeSize)

	opts, err := c.Options()
	require.NoError(t, err)
	ctrl, err := gocube.NewController(opts...)
	require.NoError(t, err)
	require.NoError(t, ctrl.Turn(gocube.R))
	frames := ctrl.Settle(10 * time.Millisecond)
	assert.Equal(t, 25, frames)
}

func TestLoadKeyOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keys:
  i: {axis: x, direction: cw}
  k: {axis: x, direction: ccw}
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)

	km, err := c.KeyMap()
	require.NoError(t, err)
	b, ok := km.Lookup("KeyI")
	require.True(t, ok)
	assert.Equal(t, gocube.AxisX, b.Axis)
	assert.Equal(t, gocube.Clockwise, b.Direction)

	opts, err := c.Options()
	require.NoError(t, err)
	ctrl, err := gocube.NewController(opts...)
	require.NoError(t, err)
	require.NoError(t, ctrl.SelectAt([3]int{0, 0, 0}))
	assert.True(t, errors.Is(ctrl.HandleKey("w"), gocube.ErrUnknownKey), "defaults are replaced")
	assert.NoError(t, ctrl.HandleKey("i"))
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"tolerance":  "lattice:\n  tolerance: 0.5\n",
		"easing":     "animation:\n  easing: bounce\n",
		"key axis":   "keys:\n  w: {axis: v, direction: cw}\n",
		"fps":        "server:\n  fps: 0\n",
		"window":     "window:\n  width: -1\n",
		"not yaml":   "lattice: [",
		"cube size":  "lattice:\n  cube_size: 0\n",
		"duration":   "animation:\n  duration_ms: -5\n",
		"key repeat": "keys:\n  KeyW: {axis: x, direction: cw}\n  w: {axis: y, direction: cw}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Journal = "/tmp/journal.db"
	c.Keys = map[string]Key{"u": {Axis: "y", Direction: "ccw"}}
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
