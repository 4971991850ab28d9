package entities

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/board"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/systems"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// TileContentFactory 实现 board.ContentFactory
//
// 非塔内容不创建实体；塔在 GetTower 时创建实体，
// Place 时写入所在格子的位置，Reclaim 时销毁。
type TileContentFactory struct {
	em     *ecs.EntityManager
	towers config.TowersConfig
	logger *log.Logger
}

// NewTileContentFactory 创建格子内容工厂
func NewTileContentFactory(em *ecs.EntityManager, towers config.TowersConfig, logger *log.Logger) *TileContentFactory {
	if logger == nil {
		logger = log.Default()
	}
	return &TileContentFactory{
		em:     em,
		towers: towers,
		logger: logger.WithPrefix("content-factory"),
	}
}

// Get 实现 board.ContentFactory
func (f *TileContentFactory) Get(t board.ContentType) board.Content {
	return board.Content{Type: t}
}

// GetTower 实现 board.ContentFactory，创建塔实体
func (f *TileContentFactory) GetTower(t types.TowerType) board.Content {
	id := f.em.CreateEntity()
	tower := &components.TowerComponent{Type: t, TileIndex: board.NoTile}

	switch t {
	case types.TowerMortar:
		cfg := f.towers.Mortar
		tower.TargetingRange = cfg.TargetingRange
		ecs.AddComponent(f.em, id, &components.MortarComponent{
			ShotsPerSecond: cfg.ShotsPerSecond,
			BlastRadius:    cfg.BlastRadius,
			Damage:         cfg.Damage,
			MortarHeight:   cfg.MortarHeight,
			LaunchSpeed:    systems.MortarLaunchSpeed(cfg.TargetingRange, cfg.MortarHeight),
		})
	default:
		cfg := f.towers.Laser
		tower.TargetingRange = cfg.TargetingRange
		ecs.AddComponent(f.em, id, &components.LaserComponent{
			DamagePerSecond: cfg.DamagePerSecond,
			TurretHeight:    cfg.TurretHeight,
		})
	}
	ecs.AddComponent(f.em, id, tower)

	f.logger.Debug("tower created", "id", id, "type", t)
	return board.Content{Type: board.ContentTower, TowerType: t, Entity: id}
}

// Place 实现 board.ContentFactory，记录塔所在的格子和世界坐标
func (f *TileContentFactory) Place(c board.Content, tileIndex int, position utils.Vec3) {
	if c.Entity == ecs.InvalidEntity {
		return
	}
	if tower, ok := ecs.GetComponent[*components.TowerComponent](f.em, c.Entity); ok {
		tower.TileIndex = tileIndex
		tower.Position = position
	}
}

// Reclaim 实现 board.ContentFactory，销毁塔实体
func (f *TileContentFactory) Reclaim(c board.Content) {
	if c.Entity == ecs.InvalidEntity {
		return
	}
	f.em.DestroyEntity(c.Entity)
	f.logger.Debug("tower reclaimed", "id", c.Entity, "type", c.TowerType)
}
