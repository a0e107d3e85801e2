package galaxy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapBackend keeps props in memory the way gdata keeps them on disk.
type mapBackend struct {
	props   map[string][]byte
	failing bool
}

func newMapBackend() *mapBackend {
	return &mapBackend{props: make(map[string][]byte)}
}

func (m *mapBackend) SaveObjectProp(objectKey, propKey string, data []byte) error {
	if m.failing {
		return errors.New("disk full")
	}
	m.props[objectKey+"/"+propKey] = append([]byte(nil), data...)
	return nil
}

func (m *mapBackend) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	data, ok := m.props[objectKey+"/"+propKey]
	if !ok {
		return nil, errors.New("no such prop")
	}
	return data, nil
}

func (m *mapBackend) ObjectPropExists(objectKey, propKey string) bool {
	_, ok := m.props[objectKey+"/"+propKey]
	return ok
}

func TestPresets_SaveLoadList(t *testing.T) {
	presets := NewPresets(newMapBackend(), nil)
	require.True(t, presets.Available())

	names, err := presets.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	spiral := DefaultParameters()
	spiral.Branches = 3
	spiral.Spin = -1.5
	spiral.InsideColor = MustParseHexColor("#abcdef")
	require.NoError(t, presets.Save("spiral", spiral))
	require.NoError(t, presets.Save("andromeda", DefaultParameters()))
	require.NoError(t, presets.Save("spiral", spiral))

	names, err = presets.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"andromeda", "spiral"}, names)

	got, err := presets.Load("spiral")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Branches)
	assert.Equal(t, -1.5, got.Spin)
	assert.Equal(t, "#abcdef", got.InsideColor.Hex())
}

func TestPresets_LoadFillsMissingFieldsWithDefaults(t *testing.T) {
	backend := newMapBackend()
	presets := NewPresets(backend, nil)
	require.NoError(t, presets.Save("old", DefaultParameters()))
	backend.props["presets/old"] = []byte("count: 42\n")

	got, err := presets.Load("old")
	require.NoError(t, err)
	assert.Equal(t, 42, got.Count)
	assert.Equal(t, DefaultParameters().Radius, got.Radius)
}

func TestPresets_Delete(t *testing.T) {
	presets := NewPresets(newMapBackend(), nil)
	require.NoError(t, presets.Save("a", DefaultParameters()))
	require.NoError(t, presets.Delete("a"))

	names, err := presets.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = presets.Load("a")
	assert.ErrorIs(t, err, ErrPresetNotFound)
	assert.ErrorIs(t, presets.Delete("a"), ErrPresetNotFound)
}

func TestPresets_Errors(t *testing.T) {
	backend := newMapBackend()
	presets := NewPresets(backend, nil)

	_, err := presets.Load("missing")
	assert.ErrorIs(t, err, ErrPresetNotFound)

	for _, name := range []string{"", "_index", "a/b", `a\b`} {
		assert.Error(t, presets.Save(name, DefaultParameters()), "name %q", name)
	}

	backend.failing = true
	assert.ErrorContains(t, presets.Save("x", DefaultParameters()), "disk full")

	backend.failing = false
	backend.props["presets/_index"] = []byte("{not a list")
	_, err = presets.List()
	assert.ErrorContains(t, err, "decode preset index")
}

func TestPresets_Unavailable(t *testing.T) {
	presets := NewPresets(nil, nil)
	assert.False(t, presets.Available())
	assert.ErrorIs(t, presets.Save("a", DefaultParameters()), ErrPresetsUnavailable)
	_, err := presets.Load("a")
	assert.ErrorIs(t, err, ErrPresetsUnavailable)
	_, err = presets.List()
	assert.ErrorIs(t, err, ErrPresetsUnavailable)
	assert.ErrorIs(t, presets.Delete("a"), ErrPresetsUnavailable)

	var none *Presets
	assert.False(t, none.Available())
}
