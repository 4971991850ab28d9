package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/towerdefense/pkg/board"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// hudHeight 顶部状态栏高度（像素）
const hudHeight = 40

var (
	colorBackground  = color.RGBA{R: 30, G: 34, B: 40, A: 255}
	colorTile        = color.RGBA{R: 70, G: 110, B: 70, A: 255}
	colorTileAlt     = color.RGBA{R: 64, G: 102, B: 64, A: 255}
	colorWall        = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	colorDestination = color.RGBA{R: 230, G: 190, B: 60, A: 255}
	colorSpawnPoint  = color.RGBA{R: 200, G: 70, B: 70, A: 255}
	colorLaser       = color.RGBA{R: 80, G: 160, B: 240, A: 255}
	colorMortar      = color.RGBA{R: 150, G: 110, B: 80, A: 255}
	colorBeam        = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	colorArrow       = color.RGBA{R: 220, G: 230, B: 220, A: 160}
	colorEnemy       = color.RGBA{R: 240, G: 140, B: 40, A: 255}
	colorEnemyDying  = color.RGBA{R: 120, G: 70, B: 20, A: 255}
	colorShell       = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	colorHealthBar   = color.RGBA{R: 60, G: 220, B: 90, A: 255}
)

// screenRenderer 把 game.RenderSink 的快照画到 ebiten 屏幕
type screenRenderer struct {
	screen *ebiten.Image
	camera Camera
}

func (r *screenRenderer) BeginFrame(info game.FrameInfo) {
	r.screen.Fill(colorBackground)
	status := "running"
	if info.Paused {
		status = "paused"
	}
	ebitenutil.DebugPrintAt(r.screen, fmt.Sprintf("health %d  tower %s  speed %.0fx  %s  cycle %d wave %d",
		info.PlayerHealth, info.SelectedTower, info.PlaySpeed, status, info.Cycle+1, info.Wave+1), 4, 2)
	ebitenutil.DebugPrintAt(r.screen, fmt.Sprintf("spawned %d  killed %d  reached %d  games %d",
		info.Stats.Spawned, info.Stats.Killed, info.Stats.Reached, info.Stats.GamesStarted), 4, 20)
}

func (r *screenRenderer) SetTile(v game.TileView) {
	size := float32(r.camera.TileSize)
	x, y := r.camera.WorldToScreen(v.Position)
	left, top := float32(x)-size/2, float32(y)-size/2

	fill := colorTile
	if (v.X+v.Y)&1 == 1 {
		fill = colorTileAlt
	}
	vector.DrawFilledRect(r.screen, left+1, top+1, size-2, size-2, fill, false)

	switch v.Content {
	case board.ContentWall:
		vector.DrawFilledRect(r.screen, left+2, top+2, size-4, size-4, colorWall, false)
	case board.ContentDestination:
		vector.DrawFilledRect(r.screen, left+size/4, top+size/4, size/2, size/2, colorDestination, false)
	case board.ContentSpawnPoint:
		vector.StrokeRect(r.screen, left+size/4, top+size/4, size/2, size/2, 3, colorSpawnPoint, false)
	case board.ContentTower:
		vector.DrawFilledRect(r.screen, left+3, top+3, size-6, size-6, colorWall, false)
	}

	if v.HasArrow && v.Content != board.ContentWall && v.Content != board.ContentTower {
		r.drawArrow(x, y, v.Arrow)
	}
}

func (r *screenRenderer) drawArrow(x, y float64, d types.Direction) {
	half := d.HalfVector()
	l := r.camera.TileSize * 0.6
	// 屏幕 y 轴与世界 z 轴方向相反
	dx, dy := half.X*l, -half.Z*l
	x0, y0 := float32(x-dx*0.5), float32(y-dy*0.5)
	x1, y1 := float32(x+dx*0.5), float32(y+dy*0.5)
	vector.StrokeLine(r.screen, x0, y0, x1, y1, 2, colorArrow, true)
	vector.DrawFilledCircle(r.screen, x1, y1, 3, colorArrow, true)
}

func (r *screenRenderer) SetEnemy(v game.EnemyView) {
	x, y := r.camera.WorldToScreen(v.ModelPosition)
	radius := float32(r.camera.TileSize * 0.2 * v.Scale)

	clr := colorEnemy
	if v.Phase == components.EnemyPhaseDying {
		clr = colorEnemyDying
	}
	// 出场、退场和叠加片段通过透明度体现
	alpha := 1 - v.Weights[components.ClipIntro]*0.5 - v.Weights[components.ClipOutro]*0.5
	if v.Weights[components.ClipAppear] > 0 || v.Weights[components.ClipDisappear] > 0 {
		alpha *= 0.6
	}
	clr.A = uint8(255 * utils.Clamp01(alpha))
	vector.DrawFilledCircle(r.screen, float32(x), float32(y), radius, clr, true)

	// 朝向
	f := utils.YawForward(v.Yaw)
	vector.StrokeLine(r.screen, float32(x), float32(y),
		float32(x+f.X*float64(radius)*1.5), float32(y-f.Z*float64(radius)*1.5), 2, clr, true)

	if v.HealthRatio < 1 && v.HealthRatio > 0 {
		w := radius * 2
		vector.DrawFilledRect(r.screen, float32(x)-radius, float32(y)-radius-6, w*float32(v.HealthRatio), 3, colorHealthBar, false)
	}
}

func (r *screenRenderer) SetTower(v game.TowerView) {
	x, y := r.camera.WorldToScreen(v.Position)
	size := r.camera.TileSize
	clr := colorLaser
	if v.Type == types.TowerMortar {
		clr = colorMortar
	}
	vector.DrawFilledCircle(r.screen, float32(x), float32(y), float32(size*0.3), clr, true)

	f := utils.YawForward(v.Yaw)
	barrel := size * 0.35 * math.Cos(v.Pitch*math.Pi/180)
	vector.StrokeLine(r.screen, float32(x), float32(y),
		float32(x+f.X*barrel), float32(y-f.Z*barrel), 4, clr, true)

	if v.BeamLength > 0 {
		ex, ey := r.camera.WorldToScreen(v.BeamEnd)
		vector.StrokeLine(r.screen, float32(x), float32(y), float32(ex), float32(ey), 2, colorBeam, true)
	}
}

func (r *screenRenderer) SetShell(v game.ShellView) {
	x, y := r.camera.WorldToScreen(v.Position)
	// 离地越高画得越大
	radius := float32(3 + v.Position.Y*1.5)
	vector.DrawFilledCircle(r.screen, float32(x), float32(y), radius, colorShell, true)
}

func (r *screenRenderer) SetExplosion(v game.ExplosionView) {
	x, y := r.camera.WorldToScreen(v.Position)
	clr := color.RGBA{R: 255, G: 180, B: 40, A: uint8(200 * utils.Clamp01(v.Opacity))}
	vector.DrawFilledCircle(r.screen, float32(x), float32(y), float32(v.Scale*0.5*r.camera.TileSize), clr, true)
}

func (r *screenRenderer) EndFrame() {}
