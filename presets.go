package galaxy

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrPresetsUnavailable = errors.New("preset storage unavailable")
	ErrPresetNotFound     = errors.New("preset not found")
)

const (
	presetsObject = "presets"
	presetsIndex  = "_index"
)

// PresetBackend is the slice of gdata.Manager the presets need.
type PresetBackend interface {
	SaveObjectProp(objectKey, propKey string, data []byte) error
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	ObjectPropExists(objectKey, propKey string) bool
}

// Presets stores named GalaxyParameters. A Presets without a backend answers
// every call with ErrPresetsUnavailable.
type Presets struct {
	mu      sync.Mutex
	backend PresetBackend
	logger  Logger
}

// OpenPresets opens the gdata store for appName. When the platform has no
// usable data directory the returned Presets is degraded, never nil.
func OpenPresets(appName string, logger Logger) *Presets {
	if logger == nil {
		logger = NewNopLogger()
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warnf("presets disabled: %v", err)
		return &Presets{logger: logger}
	}
	return NewPresets(m, logger)
}

func NewPresets(backend PresetBackend, logger Logger) *Presets {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Presets{backend: backend, logger: logger}
}

func (p *Presets) Available() bool {
	return p != nil && p.backend != nil
}

func validPresetName(name string) error {
	if name == "" || strings.HasPrefix(name, "_") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("preset name %q is not allowed", name)
	}
	return nil
}

func (p *Presets) Save(name string, params GalaxyParameters) error {
	if !p.Available() {
		return ErrPresetsUnavailable
	}
	if err := validPresetName(name); err != nil {
		return err
	}
	data, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode preset %s: %w", name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.backend.SaveObjectProp(presetsObject, name, data); err != nil {
		return fmt.Errorf("save preset %s: %w", name, err)
	}
	names, err := p.loadIndex()
	if err != nil {
		return err
	}
	if !slices.Contains(names, name) {
		names = append(names, name)
		slices.Sort(names)
		if err := p.saveIndex(names); err != nil {
			return err
		}
	}
	p.logger.Infof("preset %q saved", name)
	return nil
}

func (p *Presets) Load(name string) (GalaxyParameters, error) {
	var params GalaxyParameters
	if !p.Available() {
		return params, ErrPresetsUnavailable
	}
	if err := validPresetName(name); err != nil {
		return params, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	names, err := p.loadIndex()
	if err != nil {
		return params, err
	}
	if !slices.Contains(names, name) || !p.backend.ObjectPropExists(presetsObject, name) {
		return params, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	data, err := p.backend.LoadObjectProp(presetsObject, name)
	if err != nil {
		return params, fmt.Errorf("load preset %s: %w", name, err)
	}
	// Start from defaults so presets written before a field existed still load.
	params = DefaultParameters()
	if err := yaml.Unmarshal(data, &params); err != nil {
		return GalaxyParameters{}, fmt.Errorf("decode preset %s: %w", name, err)
	}
	return params, nil
}

// List returns preset names in sorted order.
func (p *Presets) List() ([]string, error) {
	if !p.Available() {
		return nil, ErrPresetsUnavailable
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadIndex()
}

// Delete drops name from the index. The stored bytes stay behind until the
// name is saved again.
func (p *Presets) Delete(name string) error {
	if !p.Available() {
		return ErrPresetsUnavailable
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	names, err := p.loadIndex()
	if err != nil {
		return err
	}
	idx := slices.Index(names, name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	names = slices.Delete(names, idx, idx+1)
	if err := p.saveIndex(names); err != nil {
		return err
	}
	p.logger.Infof("preset %q deleted", name)
	return nil
}

func (p *Presets) loadIndex() ([]string, error) {
	if !p.backend.ObjectPropExists(presetsObject, presetsIndex) {
		return []string{}, nil
	}
	data, err := p.backend.LoadObjectProp(presetsObject, presetsIndex)
	if err != nil {
		return nil, fmt.Errorf("load preset index: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("decode preset index: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (p *Presets) saveIndex(names []string) error {
	data, err := yaml.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode preset index: %w", err)
	}
	if err := p.backend.SaveObjectProp(presetsObject, presetsIndex, data); err != nil {
		return fmt.Errorf("save preset index: %w", err)
	}
	return nil
}
