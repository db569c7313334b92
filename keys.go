package main

import (
	"github.com/charmbracelet/bubbles/key"
)

// --- Keys ---

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
	Tab        key.Binding
	Sidebar    key.Binding
	NewChat    key.Binding
	Delete     key.Binding
	Connect    key.Binding
	Disconnect key.Binding
	Results    key.Binding
	Search     key.Binding
	Sort       key.Binding
	Copy       key.Binding
	CopySQL    key.Binding
	ToggleSQL  key.Binding
	Export     key.Binding
	Editor     key.Binding
	Logout     key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.NewChat, k.Connect, k.Results, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back, k.Tab, k.Sidebar},
		{k.NewChat, k.Delete, k.Connect, k.Disconnect, k.Logout},
		{k.Results, k.Search, k.Sort, k.Copy, k.Export},
		{k.CopySQL, k.ToggleSQL, k.Editor, k.PrevPage, k.NextPage},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select/send"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Sidebar: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "toggle sidebar"),
	),
	NewChat: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "new chat"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "delete chat"),
	),
	Connect: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "connect database"),
	),
	Disconnect: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "disconnect"),
	),
	Results: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "open results"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search results"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort column"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy rows"),
	),
	CopySQL: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy SQL"),
	),
	ToggleSQL: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "toggle SQL"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export CSV"),
	),
	Editor: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "compose in $EDITOR"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "log out"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next page"),
	),
}
