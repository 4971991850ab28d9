// Package app 提供桌面端俯视观察器
//
// App 实现 ebiten.Game：每个 tick 把鼠标键盘输入转发给 game.Game，
// 再以固定步长推进模拟，绘制时通过 game.RenderSink 读取快照。
package app

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultTileSize 默认每格像素
const DefaultTileSize = 48

// fixedDeltaTime 固定模拟步长
const fixedDeltaTime = 1.0 / 60.0

// Config 定义观察器启动配置
type Config struct {
	// TileSize 每格像素，<= 0 时使用 DefaultTileSize
	TileSize float64
	// Logger 为 nil 时使用 log.Default()
	Logger *log.Logger
}

// App 桌面观察器，实现 ebiten.Game 接口
type App struct {
	game   *game.Game
	camera Camera
	logger *log.Logger

	pendingWindowSizeReset   bool // 退出全屏后延迟恢复窗口大小
	windowSizeResetCountdown int
}

// NewApp 创建观察器
func NewApp(g *game.Game, cfg Config) *App {
	if cfg.TileSize <= 0 {
		cfg.TileSize = DefaultTileSize
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	w, h := g.Board().Size()
	return &App{
		game:   g,
		camera: NewCamera(w, h, cfg.TileSize),
		logger: cfg.Logger.WithPrefix("app"),
	}
}

// WindowSize 返回容纳棋盘所需的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.camera.Width, a.camera.Height
}

// Update 处理输入并推进一个固定步长
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.camera.Width, a.camera.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.handleKeys()
	a.handleMouse()

	a.game.Tick(fixedDeltaTime)
	return nil
}

func (a *App) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		a.game.SelectTower(types.TowerLaser)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		a.game.SelectTower(types.TowerMortar)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.game.TogglePause()
		a.logger.Debug("pause toggled", "paused", a.game.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		a.game.BeginNewGame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		b := a.game.Board()
		b.SetShowPaths(!b.ShowPaths())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		a.game.SetPlaySpeed(a.game.PlaySpeed() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		a.game.SetPlaySpeed(a.game.PlaySpeed() - 1)
	}
}

func (a *App) handleMouse() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.game.HandleTouch(a.camera.ScreenToRay(x, y), shift)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		a.game.HandleAlternativeTouch(a.camera.ScreenToRay(x, y), shift)
	}
}

// Draw 绘制当前模拟状态
func (a *App) Draw(screen *ebiten.Image) {
	a.game.Publish(&screenRenderer{screen: screen, camera: a.camera})
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时用黑色 letterbox 并以线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，与窗口大小无关
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.camera.Width, a.camera.Height
}
