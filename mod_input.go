package galaxy

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyR int = iota
	KeyH
	KeyP
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF5
	KeyF9
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
	inputSlots
)

type InputModule struct{}

type Input struct {
	Pressed [inputSlots]bool

	JustPressed  [inputSlots]bool
	JustReleased [inputSlots]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	// ScrollY accumulates wheel movement for one frame.
	ScrollY float64
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{}
	cmd.AddResources(input)
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

// press records the current state of slot and derives the edge flags.
func (input *Input) press(slot int, down bool) {
	input.JustPressed[slot] = down && !input.Pressed[slot]
	input.JustReleased[slot] = !down && input.Pressed[slot]
	input.Pressed[slot] = down
}

// Any reports whether any of slots is held.
func (input *Input) Any(slots ...int) bool {
	for _, s := range slots {
		if input.Pressed[s] {
			return true
		}
	}
	return false
}

func inputSystem(s *WindowState, input *Input) {
	input.ScrollY = s.takeScroll()

	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.press(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}

	mx, my := s.windowGlfw.GetCursorPos()
	input.MouseDeltaX = mx - input.MouseX
	input.MouseDeltaY = my - input.MouseY
	input.MouseX = mx
	input.MouseY = my

	for btn, glfwBtn := range mouseToGlfw {
		input.press(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyR:       glfw.KeyR,
	KeyH:       glfw.KeyH,
	KeyP:       glfw.KeyP,
	KeySpace:   glfw.KeySpace,
	KeyEnter:   glfw.KeyEnter,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyRight:   glfw.KeyRight,
	KeyLeft:    glfw.KeyLeft,
	KeyDown:    glfw.KeyDown,
	KeyUp:      glfw.KeyUp,
	KeyF5:      glfw.KeyF5,
	KeyF9:      glfw.KeyF9,
	KeyMinus:   glfw.KeyMinus,
	KeyEqual:   glfw.KeyEqual,
	KeyKPPlus:  glfw.KeyKPAdd,
	KeyKPMinus: glfw.KeyKPSubtract,
	KeyShift:   glfw.KeyLeftShift,
}

var mouseToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
