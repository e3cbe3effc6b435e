package debugdraw

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debugdraw.toml")

	cfg := DefaultConfig()
	cfg.FrustumCulling = false
	cfg.Text.Anchor = AnchorRightBottom
	cfg.Text.DefaultDuration = Duration{2 * time.Second}
	cfg.Graph.Size = [2]int{200, 50}
	cfg.Palette.Box = Color{0.25, 0.5, 0.75, 1}

	require.NoError(t, SaveConfigFile(path, cfg))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigFile_PartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	data := `
enabled = true
freeze_3d = true

[text]
anchor = "left_bottom"
default_duration = "1.5s"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Freeze3D)
	assert.Equal(t, AnchorLeftBottom, cfg.Text.Anchor)
	assert.Equal(t, 1500*time.Millisecond, cfg.Text.DefaultDuration.Duration)
	// untouched values keep their defaults
	assert.Equal(t, DefaultConfig().Graph, cfg.Graph)
	assert.Equal(t, DefaultConfig().Text.Padding, cfg.Text.Padding)
}

func TestConfigFile_Errors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[text]\nanchor = \"middle\"\n"), 0o644))
	cfg, err := LoadConfigFile(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestAnchor(t *testing.T) {
	assert.True(t, AnchorRightBottom.IsRight())
	assert.True(t, AnchorRightBottom.IsBottom())
	assert.False(t, AnchorLeftTop.IsRight())
	assert.Equal(t, "unknown", Anchor(42).String())

	_, err := Anchor(42).MarshalText()
	assert.Error(t, err)
}
