package galaxy

// Commands is handed to modules and systems to change the App from inside a
// frame.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(spec SystemSpec) *Commands {
	cmd.app.UseSystem(spec)
	return cmd
}

// Stop ends the run loop after the current frame.
func (cmd *Commands) Stop() {
	cmd.app.Stop()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
