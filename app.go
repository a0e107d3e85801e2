package galaxy

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module bundles resources and systems. Install runs once when the App is built.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	modules   []Module
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	built    bool
	stopping bool
	shutdown []func()
	frames   uint64
}

func NewApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

func (app *App) UseModules(modules ...Module) *App {
	app.modules = append(app.modules, modules...)
	return app
}

func (app *App) build() {
	if app.built {
		return
	}
	app.built = true

	cmd := app.Commands()
	for _, module := range app.modules {
		module.Install(app, cmd)
	}
}

// Run builds the app and ticks every stage until Stop is called. Shutdown
// hooks run in reverse registration order on the way out.
func (app *App) Run() {
	app.build()
	defer app.runShutdown()

	app.Logger().Debugf("running with %d stages", len(app.stages))
	for !app.stopping {
		app.Update()
	}
	app.Logger().Infof("stopped after %d frames", app.frames)
}

// Update runs a single frame.
func (app *App) Update() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
	}
	app.frames++
}

func (app *App) Stop() {
	app.stopping = true
}

func (app *App) Stopping() bool {
	return app.stopping
}

// OnShutdown registers fn to run after the last frame.
func (app *App) OnShutdown(fn func()) {
	app.shutdown = append(app.shutdown, fn)
}

func (app *App) runShutdown() {
	hooks := app.shutdown
	app.shutdown = nil
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource looks up a resource by its pointed-to type.
func Resource[T any](app *App) (*T, bool) {
	res, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("System %s: argument %d (%s) is not a pointer",
				runtime.FuncForPC(systemValue.Pointer()).Name(), i, argType))
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}
