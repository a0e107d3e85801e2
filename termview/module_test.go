package termview

import (
	"testing"
	"time"

	"github.com/gekko3d/galaxy"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) (*State, *galaxy.ParameterStore) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	store := galaxy.NewParameterStore(galaxy.DefaultParameters())
	return &State{
		Screen:    screen,
		Camera:    galaxy.NewOrbitCameraFromConfig(galaxy.DefaultConfig().Camera),
		Panel:     galaxy.NewPanel(store),
		burst:     editBurst{quiet: burstQuiet},
		quickSlot: "quick",
	}, store
}

func TestState_EditCommitsOncePerBurst(t *testing.T) {
	state, store := newTestState(t)
	commits := 0
	store.Subscribe(func(galaxy.GalaxyParameters) { commits++ })

	app := galaxy.NewApp()
	cmd := app.Commands()
	presets := galaxy.NewPresets(nil, nil)

	state.apply(actInc, presets, cmd)
	state.apply(actInc, presets, cmd)
	assert.Equal(t, 3000, store.Params().Count)
	assert.True(t, state.Panel.Editing())
	assert.Zero(t, commits)

	assert.True(t, state.burst.due(time.Now().Add(burstQuiet)))
	state.Panel.FinishEdit()
	assert.Equal(t, 1, commits)

	// Moving the selection closes an open edit first.
	state.apply(actDec, presets, cmd)
	state.apply(actNext, presets, cmd)
	assert.Equal(t, 2, commits)
	assert.Equal(t, galaxy.FieldSize, state.Panel.Selected)
}

func TestState_QuitAndCamera(t *testing.T) {
	state, _ := newTestState(t)
	app := galaxy.NewApp()
	cmd := app.Commands()
	presets := galaxy.NewPresets(nil, nil)

	yaw := state.Camera.Yaw
	state.apply(actRotateLeft, presets, cmd)
	state.Camera.Update()
	assert.NotEqual(t, yaw, state.Camera.Yaw)

	state.apply(actReset, presets, cmd)
	assert.Equal(t, yaw, state.Camera.Yaw)

	assert.False(t, app.Stopping())
	state.apply(actQuit, presets, cmd)
	assert.True(t, app.Stopping())
}

func TestState_PresetsUnavailableShowsStatus(t *testing.T) {
	state, store := newTestState(t)
	cmd := galaxy.NewApp().Commands()
	presets := galaxy.NewPresets(nil, nil)

	before := store.Params()
	state.apply(actLoad, presets, cmd)
	assert.Equal(t, before, store.Params())
	assert.Contains(t, state.Panel.Status(), galaxy.ErrPresetsUnavailable.Error())
}

func TestTerminalRenderSystem_DrawsCloud(t *testing.T) {
	state, store := newTestState(t)
	slot := galaxy.NewBufferSlot()
	regen := galaxy.NewRegenerator(slot, nil, galaxy.RegeneratorOptions{Seed: 7})
	_, err := regen.Regenerate(store.Params())
	require.NoError(t, err)

	terminalRenderSystem(state, slot, regen)
	assert.False(t, state.lastDraw.IsZero())
}
