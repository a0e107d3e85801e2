package galaxy

import (
	"reflect"
	"runtime"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// MaxPixelRatio caps the framebuffer density the renderer draws at.
const MaxPixelRatio = 2.0

type WindowState struct {
	// glfw
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	mu      sync.Mutex
	scrollY float64
	resized bool
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	s := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		s.mu.Lock()
		s.scrollY += yoff
		s.mu.Unlock()
	})
	win.SetSizeCallback(func(w *glfw.Window, width, height int) {
		s.mu.Lock()
		s.WindowWidth, s.WindowHeight = width, height
		s.resized = true
		s.mu.Unlock()
	})
	return s
}

func (s *WindowState) Glfw() *glfw.Window { return s.windowGlfw }

func (s *WindowState) takeScroll() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	y := s.scrollY
	s.scrollY = 0
	return y
}

// TakeResized reports a size change since the previous call.
func (s *WindowState) TakeResized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.resized
	s.resized = false
	return r
}

// PixelRatio is the framebuffer to window scale, capped at MaxPixelRatio.
func (s *WindowState) PixelRatio() float64 {
	fw, _ := s.windowGlfw.GetFramebufferSize()
	w, _ := s.windowGlfw.GetSize()
	return pixelRatio(fw, w)
}

// RenderSize is the window size scaled by the capped pixel ratio.
func (s *WindowState) RenderSize() (int, int) {
	w, h := s.windowGlfw.GetSize()
	r := s.PixelRatio()
	return int(float64(w) * r), int(float64(h) * r)
}

func pixelRatio(framebufferWidth, windowWidth int) float64 {
	if windowWidth <= 0 || framebufferWidth <= 0 {
		return 1
	}
	return min(float64(framebufferWidth)/float64(windowWidth), MaxPixelRatio)
}

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for any renderer or input module.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Galaxy"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

// Install provides the WindowState resource if missing.
func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	if _, ok := app.resources[t]; ok {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	app.addResources(ws)
	app.OnShutdown(func() {
		ws.windowGlfw.Destroy()
		glfw.Terminate()
	})
	app.UseSystem(
		System(windowCloseSystem).
			InStage(Finale),
	)
	app.Logger().Infof("window %dx%d %q", m.Width, m.Height, m.Title)
}

func windowCloseSystem(s *WindowState, input *Input, cmd *Commands) {
	if s.windowGlfw.ShouldClose() || input.JustPressed[KeyEscape] {
		cmd.Stop()
	}
}
