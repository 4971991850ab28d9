package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap 终端观察器的按键绑定
type KeyMap struct {
	Up, Down, Left, Right key.Binding

	Wall        key.Binding
	Tower       key.Binding
	SpawnPoint  key.Binding
	Destination key.Binding
	Laser       key.Binding
	Mortar      key.Binding

	Pause   key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Paths   key.Binding
	NewGame key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp 实现 help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Wall, k.Tower, k.Pause, k.Help, k.Quit}
}

// FullHelp 实现 help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Wall, k.Tower, k.SpawnPoint, k.Destination},
		{k.Laser, k.Mortar, k.Pause, k.Faster, k.Slower},
		{k.Paths, k.NewGame, k.Help, k.Quit},
	}
}

// DefaultKeyMap 返回默认按键绑定
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "north")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "south")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "west")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "east")),
		Wall:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "wall")),
		Tower:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tower")),
		SpawnPoint:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "spawn point")),
		Destination: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "destination")),
		Laser:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "laser")),
		Mortar:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "mortar")),
		Pause:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Faster:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
		Paths:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paths")),
		NewGame:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "new game")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
