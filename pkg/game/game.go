// Package game 把棋盘、敌人、塔和剧本组合成一个可逐帧推进的模拟
//
// Game 是唯一的模拟上下文，所有系统都通过它显式获得依赖。
// 每次 Tick 的顺序固定：剧本 → 敌人 → 物理同步 → 塔 → 炮弹/爆炸/限时实体 → 清理。
package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/board"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/systems"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// 播放速度范围
const (
	MinPlaySpeed = 1.0
	MaxPlaySpeed = 10.0
)

// Stats 模拟统计
type Stats struct {
	Spawned      int
	Killed       int
	Reached      int
	GamesStarted int
	Ticks        int
	SimTime      float64
}

// Game 模拟上下文
type Game struct {
	cfg    *config.GameConfig
	rng    *rand.Rand
	logger *log.Logger

	em             *ecs.EntityManager
	board          *board.Board
	content        *entities.TileContentFactory
	war            *entities.WarFactory
	enemyFactories map[string]*entities.EnemyFactory

	physics   *systems.PhysicsSystem
	targeting *systems.Targeting
	enemies   *systems.EnemySystem
	towers    *systems.TowerSystem
	shells    *systems.WarSystem
	lifetimes *systems.LifetimeSystem

	scenario *Scenario

	playerHealth  int
	playSpeed     float64
	paused        bool
	selectedTower types.TowerType

	stats Stats
}

// NewGame 按配置创建模拟
//
// 参数:
//   - cfg: 游戏配置，nil 时使用默认配置
//   - rng: 随机源（敌人属性、出生点、索敌），nil 时使用固定种子
//   - logger: 日志器，nil 时使用 log.Default()
//
// 返回:
//   - *Game: 已开始第一局的模拟
//   - error: 配置无效时返回错误
func NewGame(cfg *config.GameConfig, rng *rand.Rand, logger *log.Logger) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{
		cfg:            cfg,
		rng:            rng,
		logger:         logger.WithPrefix("game"),
		em:             ecs.NewEntityManager(),
		enemyFactories: make(map[string]*entities.EnemyFactory, len(cfg.EnemyFactories)),
		playSpeed:      clampPlaySpeed(cfg.Player.PlaySpeed),
		selectedTower:  types.TowerLaser,
	}

	g.content = entities.NewTileContentFactory(g.em, cfg.Towers, logger)
	b, err := board.NewBoard(cfg.Board.Width, cfg.Board.Height, g.content, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	g.board = b

	for name, fc := range cfg.EnemyFactories {
		f, err := entities.NewEnemyFactory(g.em, name, fc, cfg, rng, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create enemy factory: %w", err)
		}
		g.enemyFactories[name] = f
	}

	g.war = entities.NewWarFactory(g.em, cfg.Towers.Mortar.ExplosionDuration)
	g.physics = systems.NewPhysicsSystem(g.em)
	g.targeting = systems.NewTargeting(g.em, g.physics, rng, cfg.Targeting.BufferSize)
	g.enemies = systems.NewEnemySystem(g.em, g.board, g, logger)
	g.towers = systems.NewTowerSystem(g.em, g.targeting, g.war, logger)
	g.shells = systems.NewWarSystem(g.em, g.targeting, g.war)
	g.lifetimes = systems.NewLifetimeSystem(g.em)

	g.placeTowers()
	g.playerHealth = cfg.Player.StartingHealth
	g.scenario = BeginScenario(cfg.Scenario, g, logger)
	g.stats.GamesStarted = 1
	g.logger.Info("game created", "board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"health", g.playerHealth, "factories", len(g.enemyFactories))
	return g, nil
}

func clampPlaySpeed(v float64) float64 {
	if v < MinPlaySpeed {
		return MinPlaySpeed
	}
	if v > MaxPlaySpeed {
		return MaxPlaySpeed
	}
	return v
}

// Tick 推进一帧
//
// deltaTime 为真实时间，乘以时间倍率（暂停时为 0）后交给各系统。
func (g *Game) Tick(deltaTime float64) {
	dt := deltaTime * g.TimeScale()
	g.stats.Ticks++
	g.stats.SimTime += dt

	if g.playerHealth <= 0 && g.cfg.Player.StartingHealth > 0 {
		g.logger.Info("player defeated", "reached", g.stats.Reached)
		g.BeginNewGame()
	}

	if !g.scenario.Progress(dt) && g.EnemyCount() == 0 {
		g.logger.Info("scenario complete")
		g.BeginNewGame()
		g.scenario.Progress(dt)
	}

	g.enemies.Update(dt)
	g.physics.SyncTransforms()
	g.towers.Update(g.board, dt)
	g.shells.Update(dt)
	g.lifetimes.Update(dt)
	g.em.RemoveMarkedEntities()
}

// SpawnEnemy 实现 EnemySpawner：由指定工厂生成敌人，放到随机出生点
func (g *Game) SpawnEnemy(factory string, enemyType types.EnemyType) error {
	f, ok := g.enemyFactories[factory]
	if !ok {
		return fmt.Errorf("unknown enemy factory '%s'", factory)
	}
	spawn := g.board.SpawnPoint(g.rng.Intn(g.board.SpawnPointCount()))
	id, err := f.Get(enemyType)
	if err != nil {
		return fmt.Errorf("failed to spawn enemy: %w", err)
	}
	g.enemies.SpawnOn(id, spawn)
	g.stats.Spawned++
	return nil
}

// EnemyReachedDestination 实现 systems.DestinationReporter，玩家扣 1 点生命
func (g *Game) EnemyReachedDestination() {
	g.playerHealth--
	g.stats.Reached++
}

// EnemyDied 实现 systems.DeathReporter
func (g *Game) EnemyDied(ecs.EntityID) {
	g.stats.Killed++
}

// BeginNewGame 开始新的一局
// 回收所有敌人、炮弹和爆炸，棋盘恢复默认布局，剧本从头开始
func (g *Game) BeginNewGame() {
	g.playerHealth = g.cfg.Player.StartingHealth
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](g.em) {
		if g.em.IsAlive(id) {
			g.enemies.Recycle(id)
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ShellComponent](g.em) {
		g.em.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](g.em) {
		g.em.DestroyEntity(id)
	}
	g.board.Clear()
	g.em.RemoveMarkedEntities()
	g.placeTowers()
	g.scenario = BeginScenario(g.cfg.Scenario, g, g.logger)
	g.stats.GamesStarted++
	g.logger.Info("new game", "games", g.stats.GamesStarted)
}

// placeTowers 按配置的开局布局放置塔
// 已有塔、出生点、终点的格子以及会切断路径的位置被跳过
func (g *Game) placeTowers() {
	for _, p := range g.cfg.Board.Towers {
		index, ok := g.board.TileAt(p.X, p.Y)
		if !ok {
			continue
		}
		if g.board.Tile(index).Content().Type != board.ContentEmpty {
			g.logger.Warn("tower placement skipped, tile occupied", "x", p.X, "y", p.Y, "tower", p.Type)
			continue
		}
		g.board.ToggleTower(index, p.TowerType())
		if g.board.Tile(index).Content().Type != board.ContentTower {
			g.logger.Warn("tower placement rejected, it would block a path", "x", p.X, "y", p.Y, "tower", p.Type)
		}
	}
}

// EnemyCount 返回存活的敌人数量（包括正在退场和死亡的）
func (g *Game) EnemyCount() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](g.em) {
		if g.em.IsAlive(id) {
			n++
		}
	}
	return n
}

// HandleTouch 主按键点击：普通点击切换墙，按住 shift 切换当前类型的塔
func (g *Game) HandleTouch(ray utils.Ray, shift bool) {
	tile, ok := g.board.GetTile(ray)
	if !ok {
		return
	}
	if shift {
		g.board.ToggleTower(tile, g.selectedTower)
	} else {
		g.board.ToggleWall(tile)
	}
}

// HandleAlternativeTouch 副按键点击：普通点击切换出生点，按住 shift 切换终点
func (g *Game) HandleAlternativeTouch(ray utils.Ray, shift bool) {
	tile, ok := g.board.GetTile(ray)
	if !ok {
		return
	}
	if shift {
		g.board.ToggleDestination(tile)
	} else {
		g.board.ToggleSpawnPoint(tile)
	}
}

// SelectTower 选择放置的塔类型
func (g *Game) SelectTower(t types.TowerType) { g.selectedTower = t }

// SelectedTower 返回当前选择的塔类型
func (g *Game) SelectedTower() types.TowerType { return g.selectedTower }

// TogglePause 切换暂停
func (g *Game) TogglePause() { g.paused = !g.paused }

// Paused 是否暂停
func (g *Game) Paused() bool { return g.paused }

// SetPlaySpeed 设置播放速度，限制在 [MinPlaySpeed, MaxPlaySpeed]
func (g *Game) SetPlaySpeed(v float64) { g.playSpeed = clampPlaySpeed(v) }

// PlaySpeed 返回播放速度
func (g *Game) PlaySpeed() float64 { return g.playSpeed }

// TimeScale 返回当前时间倍率，暂停时为 0
func (g *Game) TimeScale() float64 {
	if g.paused {
		return 0
	}
	return g.playSpeed
}

// PlayerHealth 返回玩家剩余生命
func (g *Game) PlayerHealth() int { return g.playerHealth }

// Board 返回棋盘
func (g *Game) Board() *board.Board { return g.board }

// EntityManager 返回实体管理器
func (g *Game) EntityManager() *ecs.EntityManager { return g.em }

// Scenario 返回当前剧本状态
func (g *Game) Scenario() *Scenario { return g.scenario }

// Config 返回游戏配置
func (g *Game) Config() *config.GameConfig { return g.cfg }

// Stats 返回模拟统计
func (g *Game) Stats() Stats { return g.stats }

// EnemyFactory 返回指定名字的敌人工厂
func (g *Game) EnemyFactory(name string) (*entities.EnemyFactory, bool) {
	f, ok := g.enemyFactories[name]
	return f, ok
}

// EnemyFactoryNames 返回所有工厂名（排序后）
func (g *Game) EnemyFactoryNames() []string {
	names := make([]string, 0, len(g.enemyFactories))
	for name := range g.enemyFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
