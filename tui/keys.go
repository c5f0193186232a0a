package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Press key.Binding
	Shift key.Binding
	Next  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func newKeyMap(simulate bool) keyMap {
	k := keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Press: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "press pad")),
		Shift: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle shift")),
		Next:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next controller")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	if !simulate {
		for _, b := range []*key.Binding{&k.Up, &k.Down, &k.Left, &k.Right, &k.Press, &k.Shift} {
			b.SetEnabled(false)
		}
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.Shift, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Press, k.Shift},
		{k.Next, k.Help, k.Quit},
	}
}
