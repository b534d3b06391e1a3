package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to game actions.
// Shifted arrows yield the arrow action plus ActionModifier.
// Returns nil for unbound keys and whether the key is a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}

	switch key {
	case "left", "a":
		return []core.Action{core.ActionLeft}, false
	case "right", "d":
		return []core.Action{core.ActionRight}, false
	case "down", "s":
		return []core.Action{core.ActionDown}, false
	case "shift+left", "A":
		return []core.Action{core.ActionLeft, core.ActionModifier}, false
	case "shift+right", "D":
		return []core.Action{core.ActionRight, core.ActionModifier}, false
	case "shift+down", "S":
		return []core.Action{core.ActionDown, core.ActionModifier}, false
	case " ", "enter":
		return []core.Action{core.ActionConfirm}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	case "p":
		return []core.Action{core.ActionPause}, false
	case "r":
		return []core.Action{core.ActionRestart}, false
	}

	return nil, false
}

// IsHeld reports whether an action is a continuous control that should
// stay active between key repeats. Other actions fire for one tick.
func IsHeld(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionDown, core.ActionModifier:
		return true
	}
	return false
}

// KeyHold latches continuous actions for a number of ticks after their
// last key event. Terminals report key repeats but never key releases,
// so a thruster stays lit while repeats keep arriving and goes dark
// shortly after they stop.
type KeyHold struct {
	ticks     int
	remaining map[core.Action]int
}

// NewKeyHold creates a latch holding each press for the given ticks.
func NewKeyHold(ticks int) *KeyHold {
	if ticks < 1 {
		ticks = 1
	}
	return &KeyHold{
		ticks:     ticks,
		remaining: make(map[core.Action]int),
	}
}

// Press latches the actions produced by one key event. A plain arrow
// drops a latched modifier so the lower thruster takes over at once.
func (h *KeyHold) Press(actions ...core.Action) {
	modified := false
	directional := false
	for _, a := range actions {
		switch a {
		case core.ActionModifier:
			modified = true
		case core.ActionLeft, core.ActionRight, core.ActionDown:
			directional = true
		}
	}
	if directional && !modified {
		delete(h.remaining, core.ActionModifier)
	}
	for _, a := range actions {
		if IsHeld(a) {
			h.remaining[a] = h.ticks
		}
	}
}

// Apply sets every latched action on the frame and counts down one tick.
func (h *KeyHold) Apply(frame *core.InputFrame) {
	for a, n := range h.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
}

// Active reports whether an action is currently latched.
func (h *KeyHold) Active(a core.Action) bool {
	return h.remaining[a] > 0
}

// Release drops every latched action.
func (h *KeyHold) Release() {
	for a := range h.remaining {
		delete(h.remaining, a)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
