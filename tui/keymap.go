package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/style"
)

type statefulKeymap struct {
	state state

	quit, forceQuit,
	submit,
	toggle,
	back,
	read,
	copy, downloadTxt, downloadDoc,
	openURL, openSource,
	clear,
	confirm, cancel,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp(style.Fg(color.Orange)("ctrl+s"), style.Fg(color.Orange)("transcribe")),
		),
		toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		read: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("read")),
		),
		copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		downloadTxt: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "save .txt"),
		),
		downloadDoc: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save .doc"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open video"),
		),
		openSource: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "open source"),
		),
		clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear results"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "yes"),
		),
		cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←", "prev page"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→", "next page"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case inputState:
		return to2(h(k.submit, k.toggle, k.forceQuit))
	case resultsState:
		return h(k.read, k.copy, k.downloadTxt, k.downloadDoc, k.toggle),
			h(k.read, k.copy, k.downloadTxt, k.downloadDoc, k.openURL, k.openSource, k.clear, k.toggle, k.quit)
	case transcriptState:
		return h(k.up, k.down, k.copy, k.back), h(k.up, k.down, k.top, k.bottom, k.copy, k.downloadTxt, k.downloadDoc, k.openURL, k.openSource, k.back)
	case confirmClearState:
		return to2(h(k.confirm, k.cancel))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		NextPage:      k.right,
		PrevPage:      k.left,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}
