package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// DefaultTickRate 默认每秒模拟步数
const DefaultTickRate = 30

// Model 终端观察器的 Bubble Tea 模型
type Model struct {
	game     *game.Game
	tickRate int
	snapshot *game.Snapshot
	keys     KeyMap
	help     help.Model

	cursorX, cursorY int
	quitting         bool
}

// NewModel 创建模型，tickRate <= 0 时使用 DefaultTickRate
func NewModel(g *game.Game, tickRate int) Model {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	w, h := g.Board().Size()
	return Model{
		game:     g,
		tickRate: tickRate,
		snapshot: &game.Snapshot{},
		keys:     DefaultKeyMap(),
		help:     help.New(),
		cursorX:  w / 2,
		cursorY:  h / 2,
	}
}

// Init 启动定时器
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update 处理按键和定时消息
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		m.game.Tick(1 / float64(m.tickRate))
		return m, tickCmd(m.tickRate)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w, h := m.game.Board().Size()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursorY = min(m.cursorY+1, h-1)
	case key.Matches(msg, m.keys.Down):
		m.cursorY = max(m.cursorY-1, 0)
	case key.Matches(msg, m.keys.Left):
		m.cursorX = max(m.cursorX-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursorX = min(m.cursorX+1, w-1)
	case key.Matches(msg, m.keys.Wall):
		m.game.HandleTouch(m.cursorRay(), false)
	case key.Matches(msg, m.keys.Tower):
		m.game.HandleTouch(m.cursorRay(), true)
	case key.Matches(msg, m.keys.SpawnPoint):
		m.game.HandleAlternativeTouch(m.cursorRay(), false)
	case key.Matches(msg, m.keys.Destination):
		m.game.HandleAlternativeTouch(m.cursorRay(), true)
	case key.Matches(msg, m.keys.Laser):
		m.game.SelectTower(types.TowerLaser)
	case key.Matches(msg, m.keys.Mortar):
		m.game.SelectTower(types.TowerMortar)
	case key.Matches(msg, m.keys.Pause):
		m.game.TogglePause()
	case key.Matches(msg, m.keys.Faster):
		m.game.SetPlaySpeed(m.game.PlaySpeed() + 1)
	case key.Matches(msg, m.keys.Slower):
		m.game.SetPlaySpeed(m.game.PlaySpeed() - 1)
	case key.Matches(msg, m.keys.Paths):
		b := m.game.Board()
		b.SetShowPaths(!b.ShowPaths())
	case key.Matches(msg, m.keys.NewGame):
		m.game.BeginNewGame()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// cursorRay 返回从光标格子正上方垂直向下的射线
func (m Model) cursorRay() utils.Ray {
	b := m.game.Board()
	i, _ := b.TileAt(m.cursorX, m.cursorY)
	p := b.Tile(i).Position()
	return utils.Ray{
		Origin:    utils.Vec3{X: p.X, Y: 10, Z: p.Z},
		Direction: utils.Vec3{Y: -1},
	}
}

// View 渲染当前帧
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Publish(m.snapshot)
	g := buildGrid(m.snapshot, m.game.Board())

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("tower defense"))
	sb.WriteByte('\n')
	sb.WriteString(hud(m.snapshot.Info))
	sb.WriteByte('\n')
	sb.WriteString(boardStyle.Render(g.styled(m.cursorX, m.cursorY)))
	sb.WriteByte('\n')
	sb.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().Padding(0, 1).Render(sb.String())
}

// Run 启动终端观察器，直到用户退出
func Run(g *game.Game, tickRate int) error {
	p := tea.NewProgram(NewModel(g, tickRate), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
