package galaxy

// AppBuilder collects modules and installs them in order. Modules that read
// other modules' resources must come after them.
type AppBuilder struct {
	app *App
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: NewApp()}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.app.UseModules(modules...)
	return b
}

// UseStage adds a custom stage before Build so modules can schedule into it.
func (b *AppBuilder) UseStage(stage Stage, at StagePlacement) *AppBuilder {
	b.app.UseStage(stage, at)
	return b
}

// UseRenderer queues the one renderer module of the App.
func (b *AppBuilder) UseRenderer(name RendererName, mod Module) *AppBuilder {
	b.app.UseRenderer(name, mod)
	return b
}

func (b *AppBuilder) Build() *App {
	b.app.build()
	return b.app
}
