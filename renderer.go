package galaxy

import (
	"fmt"
)

// RendererName identifies a renderer module. One App draws with exactly one.
type RendererName string

const (
	RendererPoints   RendererName = "points"
	RendererTerminal RendererName = "terminal"
)

// RendererTag is the resource a renderer leaves behind when it claims the
// App. Its presence tells later renderers the slot is taken.
type RendererTag struct {
	Name RendererName
}

// claimRenderer records name as the App's renderer. Claiming twice under the
// same name is a no-op; a second, different renderer panics.
func claimRenderer(app *App, name RendererName) {
	if app == nil {
		panic("claimRenderer: nil app")
	}
	if tag, ok := Resource[RendererTag](app); ok {
		if tag.Name == name {
			return
		}
		msg := fmt.Sprintf("renderer %s requested but %s is already installed", name, tag.Name)
		app.Logger().Errorf("%s", msg)
		panic(msg)
	}
	app.addResources(&RendererTag{Name: name})
}

// EnsureSingleRenderer lets renderer modules outside this package claim the
// renderer slot.
func EnsureSingleRenderer(app *App, name RendererName) {
	claimRenderer(app, name)
}

// UseRenderer claims the renderer slot for name and queues mod, so a second
// renderer fails while the App is still being assembled.
func (app *App) UseRenderer(name RendererName, mod Module) *App {
	claimRenderer(app, name)
	return app.UseModules(mod)
}

// ensureWindowResource installs a PlatformWindowModule unless a window
// already exists.
func ensureWindowResource(app *App, width, height int, title string) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}
	NewPlatformWindow(width, height, title).Install(app, app.Commands())
}
