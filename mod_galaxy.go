package galaxy

import (
	"context"
	"errors"
	"sync"
)

// GalaxyModule owns the parameter store, the buffer slot and the
// regenerator. Every commit of the store regenerates the cloud.
type GalaxyModule struct {
	Params  GalaxyParameters
	Options RegeneratorOptions
	// Async moves generation to a worker goroutine. Finished buffers are
	// installed in PreRender.
	Async bool
}

func (mod GalaxyModule) Install(app *App, cmd *Commands) {
	logger := app.Logger()
	slot := NewBufferSlot()
	store := NewParameterStore(mod.Params)
	regen := NewRegenerator(slot, logger, mod.Options)
	cmd.AddResources(store, slot, regen)

	if mod.Async {
		ctx, cancel := context.WithCancel(context.Background())
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := regen.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("regenerator stopped: %v", err)
			}
		}()
		store.Subscribe(regen.Submit)
		app.UseSystem(
			System(galaxyInstallSystem).
				InStage(PreRender),
		)
		app.OnShutdown(func() {
			cancel()
			wg.Wait()
			regen.Close()
		})
	} else {
		store.Subscribe(func(p GalaxyParameters) {
			// Failures are logged by the regenerator and keep the old cloud.
			_, _ = regen.Regenerate(p)
		})
		app.OnShutdown(regen.Close)
	}

	logger.Infof("galaxy: seed %d, async %t, workers %d", mod.Options.Seed, mod.Async, mod.Options.Workers)
	store.Commit()
}

func galaxyInstallSystem(regen *Regenerator) {
	regen.InstallReady()
}
