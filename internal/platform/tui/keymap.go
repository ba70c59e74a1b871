package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/horde/internal/core"
)

// binding ties a key binding to the action it produces.
type binding struct {
	key.Binding
	action core.Action
}

func bind(action core.Action, keys ...string) binding {
	return binding{Binding: key.NewBinding(key.WithKeys(keys...)), action: action}
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	quit  key.Binding
	game  []binding
	menus []menuBinding
}

// NewKeyMapper creates a key mapper with the default bindings: arrows,
// WASD and vim keys all steer the falling zombie.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		quit: key.NewBinding(key.WithKeys("ctrl+c", "q")),
		game: []binding{
			bind(core.ActionLeft, "left", "a", "h"),
			bind(core.ActionRight, "right", "d", "l"),
			bind(core.ActionRotate, "up", "w", "k", "x"),
			bind(core.ActionSoftDrop, "down", "s", "j"),
			bind(core.ActionHardDrop, " "),
			bind(core.ActionConfirm, "enter"),
			bind(core.ActionBack, "esc", "b"),
			bind(core.ActionPause, "p"),
			bind(core.ActionRestart, "r"),
		},
		menus: []menuBinding{
			{key.NewBinding(key.WithKeys("up", "w", "k")), MenuActionUp},
			{key.NewBinding(key.WithKeys("down", "s", "j")), MenuActionDown},
			{key.NewBinding(key.WithKeys("enter", " ")), MenuActionSelect},
			{key.NewBinding(key.WithKeys("esc", "b")), MenuActionBack},
			{key.NewBinding(key.WithKeys("tab")), MenuActionScoreboard},
		},
	}
}

// MapKey translates a key message to a game action. The second result
// reports a quit request, which is never a game action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.game {
		if key.Matches(msg, b.Binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame sets the key's action on frame and reports whether the key
// asked to quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a navigation action on the menu and between screens.
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

type menuBinding struct {
	key.Binding
	action MenuAction
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	if key.Matches(msg, km.quit) {
		return MenuActionQuit
	}
	for _, b := range km.menus {
		if key.Matches(msg, b.Binding) {
			return b.action
		}
	}
	return MenuActionNone
}
