package galaxy

// PresetsModule publishes a Presets resource. Pass an already opened store
// in Presets, or leave it nil to open one for AppName.
type PresetsModule struct {
	AppName string
	Presets *Presets
}

func (mod PresetsModule) Install(app *App, cmd *Commands) {
	presets := mod.Presets
	if presets == nil {
		name := mod.AppName
		if name == "" {
			name = "galaxy"
		}
		presets = OpenPresets(name, app.Logger())
	}
	cmd.AddResources(presets)

	if !presets.Available() {
		return
	}
	if names, err := presets.List(); err != nil {
		app.Logger().Warnf("presets: %v", err)
	} else {
		app.Logger().Debugf("presets: %d stored %v", len(names), names)
	}
}
