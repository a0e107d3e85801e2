package galaxy

import (
	"fmt"
	"slices"
)

// Stage is a named slot in the frame. Every frame runs stages in order and
// the systems of a stage in registration order.
type Stage struct {
	Name string
}

var (
	Prelude    = Stage{Name: "Prelude"}
	PreUpdate  = Stage{Name: "PreUpdate"}
	Update     = Stage{Name: "Update"}
	PostUpdate = Stage{Name: "PostUpdate"}
	PreRender  = Stage{Name: "PreRender"}
	Render     = Stage{Name: "Render"}
	PostRender = Stage{Name: "PostRender"}
	Finale     = Stage{Name: "Finale"}
)

var defaultStages = []Stage{Prelude, PreUpdate, Update, PostUpdate, PreRender, Render, PostRender, Finale}

// SystemSpec pairs a system function with the stage it runs in.
type SystemSpec struct {
	fn    systemFn
	stage Stage
}

// System wraps a function whose pointer arguments are resolved from the
// App's resources each frame. Systems default to the Update stage.
func System(fn systemFn) SystemSpec {
	return SystemSpec{fn: fn, stage: Update}
}

func (s SystemSpec) InStage(stage Stage) SystemSpec {
	s.stage = stage
	return s
}

// StagePlacement positions a new stage next to an existing one.
type StagePlacement struct {
	anchor Stage
	after  bool
}

func BeforeStage(s Stage) StagePlacement { return StagePlacement{anchor: s} }

func AfterStage(s Stage) StagePlacement { return StagePlacement{anchor: s, after: true} }

func (app *App) stageIndex(name string) int {
	return slices.IndexFunc(app.stages, func(s Stage) bool { return s.Name == name })
}

func (app *App) UseStage(stage Stage, at StagePlacement) *App {
	idx := app.stageIndex(at.anchor.Name)
	if idx < 0 {
		panic(fmt.Sprintf("stage %s not found", at.anchor.Name))
	}
	if at.after {
		idx++
	}
	app.stages = slices.Insert(app.stages, idx, stage)
	app.systems[stage.Name] = nil
	return app
}

func (app *App) UseSystem(spec SystemSpec) *App {
	if _, ok := app.systems[spec.stage.Name]; !ok {
		panic(fmt.Sprintf("stage %s does not exist", spec.stage.Name))
	}
	app.systems[spec.stage.Name] = append(app.systems[spec.stage.Name], spec.fn)
	return app
}
