package termview

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

type action int

const (
	actNone action = iota
	actQuit
	actPrev
	actNext
	actInc
	actDec
	actIncFast
	actDecFast
	actRotateLeft
	actRotateRight
	actRotateUp
	actRotateDown
	actZoomIn
	actZoomOut
	actReset
	actToggle
	actSave
	actLoad
)

// keyAction maps a key press to an action. Arrows edit the panel; WASD
// orbit the camera.
func keyAction(key tcell.Key, r rune, mod tcell.ModMask) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyUp:
		return actPrev
	case tcell.KeyDown:
		return actNext
	case tcell.KeyRight:
		if mod&tcell.ModShift != 0 {
			return actIncFast
		}
		return actInc
	case tcell.KeyLeft:
		if mod&tcell.ModShift != 0 {
			return actDecFast
		}
		return actDec
	case tcell.KeyF5:
		return actSave
	case tcell.KeyF9:
		return actLoad
	case tcell.KeyRune:
		switch r {
		case 'q':
			return actQuit
		case 'a':
			return actRotateLeft
		case 'd':
			return actRotateRight
		case 'w':
			return actRotateUp
		case 's':
			return actRotateDown
		case '+', '=':
			return actZoomIn
		case '-':
			return actZoomOut
		case 'r':
			return actReset
		case 'h':
			return actToggle
		case '>':
			return actIncFast
		case '<':
			return actDecFast
		}
	}
	return actNone
}

// editBurst ends an edit once no nudge arrived for quiet. Terminals report
// no key release, so a pause stands in for it.
type editBurst struct {
	quiet time.Duration
	last  time.Time
	open  bool
}

func (b *editBurst) touch(now time.Time) {
	b.last = now
	b.open = true
}

// due reports, once per burst, that the burst has ended.
func (b *editBurst) due(now time.Time) bool {
	if !b.open || now.Sub(b.last) < b.quiet {
		return false
	}
	b.open = false
	return true
}
