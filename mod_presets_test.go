package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsModule_UsesGivenStore(t *testing.T) {
	presets := NewPresets(newMapBackend(), nil)
	require.NoError(t, presets.Save("a", DefaultParameters()))

	app := NewAppBuilder().UseModule(PresetsModule{Presets: presets}).Build()
	got, ok := Resource[Presets](app)
	require.True(t, ok)
	assert.Same(t, presets, got)
}

func TestPanelModule_AddsDegradedPresets(t *testing.T) {
	app := NewAppBuilder().
		UseModule(GalaxyModule{Params: DefaultParameters()}).
		UseModule(PanelModule{Hidden: true}).
		Build()

	presets, ok := Resource[Presets](app)
	require.True(t, ok)
	assert.False(t, presets.Available())

	panel, ok := Resource[Panel](app)
	require.True(t, ok)
	assert.False(t, panel.Visible)
	_, ok = Resource[Hud](app)
	assert.True(t, ok)
}

func TestPanelModule_RequiresGalaxy(t *testing.T) {
	assert.PanicsWithValue(t, "PanelModule requires GalaxyModule", func() {
		NewAppBuilder().UseModule(PanelModule{}).Build()
	})
}
