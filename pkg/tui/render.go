package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gonewx/towerdefense/pkg/board"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// cellKind 决定单元格的颜色
type cellKind int

const (
	cellEmpty cellKind = iota
	cellArrow
	cellWall
	cellDestination
	cellSpawn
	cellTower
	cellEnemy
	cellDying
	cellShell
	cellExplosion
	cellCursor
)

var cellStyles = map[cellKind]lipgloss.Style{
	cellEmpty:       lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	cellArrow:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	cellWall:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	cellDestination: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	cellSpawn:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	cellTower:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	cellEnemy:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	cellDying:       lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	cellShell:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	cellExplosion:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	cellCursor:      lipgloss.NewStyle().Reverse(true),
}

var (
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

var arrowRunes = map[types.Direction]rune{
	types.North: '^',
	types.East:  '>',
	types.South: 'v',
	types.West:  '<',
}

var enemyRunes = map[types.EnemyType]rune{
	types.EnemySmall:  'o',
	types.EnemyMedium: 'O',
	types.EnemyLarge:  '@',
}

type cell struct {
	r    rune
	kind cellKind
}

// grid 快照的字符网格，第 0 行是最北边
type grid struct {
	width, height int
	cells         []cell
}

func (g *grid) set(x, y int, c cell) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	// 屏幕第一行对应最大的 y
	g.cells[(g.height-1-y)*g.width+x] = c
}

func (g *grid) at(x, y int) cell {
	return g.cells[(g.height-1-y)*g.width+x]
}

// buildGrid 把快照栅格化
//
// 优先级从低到高：格子内容和箭头、敌人、炮弹、爆炸。
func buildGrid(s *game.Snapshot, b *board.Board) *grid {
	g := &grid{width: s.Info.Width, height: s.Info.Height}
	g.cells = make([]cell, g.width*g.height)

	for _, t := range s.Tiles {
		g.set(t.X, t.Y, tileCell(t))
	}

	locate := func(p utils.Vec3) (int, int, bool) {
		i, ok := b.TileAtPoint(p)
		if !ok {
			return 0, 0, false
		}
		tx, ty := b.Tile(i).Coord()
		return tx, ty, true
	}

	for _, e := range s.Enemies {
		x, y, ok := locate(e.ModelPosition)
		if !ok {
			continue
		}
		c := cell{r: enemyRunes[e.Type], kind: cellEnemy}
		if c.r == 0 {
			c.r = 'o'
		}
		if e.Phase == components.EnemyPhaseDying {
			c = cell{r: 'x', kind: cellDying}
		}
		g.set(x, y, c)
	}
	for _, sh := range s.Shells {
		if x, y, ok := locate(sh.Position); ok {
			g.set(x, y, cell{r: '*', kind: cellShell})
		}
	}
	for _, ex := range s.Explosions {
		if x, y, ok := locate(ex.Position); ok {
			g.set(x, y, cell{r: '#', kind: cellExplosion})
		}
	}
	return g
}

func tileCell(t game.TileView) cell {
	switch t.Content {
	case board.ContentWall:
		return cell{r: '█', kind: cellWall}
	case board.ContentDestination:
		return cell{r: 'D', kind: cellDestination}
	case board.ContentSpawnPoint:
		return cell{r: 'S', kind: cellSpawn}
	case board.ContentTower:
		if t.Tower == types.TowerMortar {
			return cell{r: 'M', kind: cellTower}
		}
		return cell{r: 'L', kind: cellTower}
	}
	if t.HasArrow {
		if r, ok := arrowRunes[t.Arrow]; ok {
			return cell{r: r, kind: cellArrow}
		}
	}
	return cell{r: '·', kind: cellEmpty}
}

// plain 返回不带样式的网格文本，每行一个字符串
func (g *grid) plain() []string {
	lines := make([]string, g.height)
	for row := 0; row < g.height; row++ {
		var sb strings.Builder
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.cells[row*g.width+x].r)
		}
		lines[row] = sb.String()
	}
	return lines
}

// styled 返回带样式的网格文本，cursorX/cursorY 处反色显示
func (g *grid) styled(cursorX, cursorY int) string {
	var sb strings.Builder
	for row := 0; row < g.height; row++ {
		y := g.height - 1 - row
		for x := 0; x < g.width; x++ {
			c := g.at(x, y)
			style := cellStyles[c.kind]
			if x == cursorX && y == cursorY {
				style = style.Inherit(cellStyles[cellCursor])
			}
			// 每格两列宽，接近正方形
			sb.WriteString(style.Render(string(c.r) + " "))
		}
		if row < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hud(info game.FrameInfo) string {
	status := "running"
	if info.Paused {
		status = "paused"
	}
	return hudStyle.Render(fmt.Sprintf("health %d | tower %s | speed %.0fx | %s | cycle %d wave %d\nspawned %d killed %d reached %d games %d",
		info.PlayerHealth, info.SelectedTower, info.PlaySpeed, status, info.Cycle+1, info.Wave+1,
		info.Stats.Spawned, info.Stats.Killed, info.Stats.Reached, info.Stats.GamesStarted))
}
