package game

import (
	"github.com/gonewx/towerdefense/pkg/board"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// FrameInfo 每帧的全局状态
type FrameInfo struct {
	Width, Height int
	PlayerHealth  int
	Paused        bool
	PlaySpeed     float64
	SelectedTower types.TowerType
	ShowPaths     bool
	Cycle, Wave   int
	Stats         Stats
}

// TileView 格子的渲染数据
type TileView struct {
	Index    int
	X, Y     int
	Position utils.Vec3
	Content  board.ContentType
	Tower    types.TowerType

	// HasArrow 为 false 时不画路径箭头（终点、不可达或路径显示关闭）
	HasArrow bool
	Arrow    types.Direction
}

// EnemyView 敌人的渲染数据
type EnemyView struct {
	ID            ecs.EntityID
	Type          types.EnemyType
	Phase         components.EnemyPhase
	ModelPosition utils.Vec3
	Yaw           float64
	Scale         float64
	HealthRatio   float64

	// Weights 各动画片段的混合权重，按 components.AnimationClip 索引
	Weights [components.ClipCount]float64
}

// TowerView 塔的渲染数据
type TowerView struct {
	ID        ecs.EntityID
	Type      types.TowerType
	TileIndex int
	Position  utils.Vec3

	// Yaw, Pitch 炮塔或炮管朝向（度）
	Yaw, Pitch float64

	// 激光：BeamLength > 0 时从炮塔画到 BeamEnd
	BeamLength float64
	BeamEnd    utils.Vec3
}

// ShellView 炮弹的渲染数据
type ShellView struct {
	ID         ecs.EntityID
	Position   utils.Vec3
	Yaw, Pitch float64
}

// ExplosionView 爆炸的渲染数据
type ExplosionView struct {
	ID       ecs.EntityID
	Position utils.Vec3
	Scale    float64
	Opacity  float64
}

// RenderSink 渲染协作者
//
// Game.Publish 每帧按 BeginFrame → Set* → EndFrame 的顺序推送只读快照，
// 核心不会从渲染层读取任何状态。
type RenderSink interface {
	BeginFrame(info FrameInfo)
	SetTile(v TileView)
	SetEnemy(v EnemyView)
	SetTower(v TowerView)
	SetShell(v ShellView)
	SetExplosion(v ExplosionView)
	EndFrame()
}

// Snapshot 记录一帧全部渲染数据的 RenderSink
// 终端视图和无界面模式都使用它
type Snapshot struct {
	Info       FrameInfo
	Tiles      []TileView
	Enemies    []EnemyView
	Towers     []TowerView
	Shells     []ShellView
	Explosions []ExplosionView
	Complete   bool
}

// BeginFrame 实现 RenderSink，清空上一帧数据
func (s *Snapshot) BeginFrame(info FrameInfo) {
	s.Info = info
	s.Tiles = s.Tiles[:0]
	s.Enemies = s.Enemies[:0]
	s.Towers = s.Towers[:0]
	s.Shells = s.Shells[:0]
	s.Explosions = s.Explosions[:0]
	s.Complete = false
}

// SetTile 实现 RenderSink
func (s *Snapshot) SetTile(v TileView) { s.Tiles = append(s.Tiles, v) }

// SetEnemy 实现 RenderSink
func (s *Snapshot) SetEnemy(v EnemyView) { s.Enemies = append(s.Enemies, v) }

// SetTower 实现 RenderSink
func (s *Snapshot) SetTower(v TowerView) { s.Towers = append(s.Towers, v) }

// SetShell 实现 RenderSink
func (s *Snapshot) SetShell(v ShellView) { s.Shells = append(s.Shells, v) }

// SetExplosion 实现 RenderSink
func (s *Snapshot) SetExplosion(v ExplosionView) { s.Explosions = append(s.Explosions, v) }

// EndFrame 实现 RenderSink
func (s *Snapshot) EndFrame() { s.Complete = true }

// Tile 返回网格坐标 (x, y) 的格子数据
func (s *Snapshot) Tile(x, y int) (TileView, bool) {
	i := x + y*s.Info.Width
	if x < 0 || y < 0 || x >= s.Info.Width || i >= len(s.Tiles) {
		return TileView{}, false
	}
	return s.Tiles[i], true
}
