package entities

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/systems"
	"github.com/gonewx/towerdefense/pkg/types"
)

// EnemyFactory 按配置生成敌人实体，并负责回收自己生成的敌人
//
// 每个敌人的缩放、速度、路径偏移和生命值在配置范围内独立随机。
// 生成的敌人处于 Intro 阶段但尚未放到棋盘上，由调用方调用
// EnemySystem.SpawnOn 指定出生格。
type EnemyFactory struct {
	name      string
	em        *ecs.EntityManager
	cfg       config.EnemyFactoryConfig
	rng       *rand.Rand
	anim      config.GlobalAnimationConfig
	targeting config.TargetingConfig
	logger    *log.Logger

	spawned   int
	reclaimed int
}

// NewEnemyFactory 创建敌人工厂
//
// 参数:
//   - em: 实体管理器
//   - name: 工厂名，剧本通过它引用工厂
//   - cfg: 各类型敌人的属性范围
//   - gameCfg: 全局配置，提供动画过渡速度和目标点尺寸
//   - rng: 随机源
//   - logger: 日志器，nil 时使用 log.Default()
//
// 返回:
//   - *EnemyFactory: 工厂实例
//   - error: 配置无效时返回错误
func NewEnemyFactory(em *ecs.EntityManager, name string, cfg config.EnemyFactoryConfig, gameCfg *config.GameConfig, rng *rand.Rand, logger *log.Logger) (*EnemyFactory, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid enemy factory '%s': %w", name, err)
	}
	if gameCfg == nil {
		gameCfg = config.DefaultGameConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = log.Default()
	}
	return &EnemyFactory{
		name:      name,
		em:        em,
		cfg:       cfg,
		rng:       rng,
		anim:      gameCfg.Animation,
		targeting: gameCfg.Targeting,
		logger:    logger.WithPrefix("enemy-factory").With("factory", name),
	}, nil
}

// Name 返回工厂名
func (f *EnemyFactory) Name() string { return f.name }

// Get 生成一个指定类型的敌人
//
// 返回:
//   - ecs.EntityID: 新敌人实体
//   - error: 工厂没有配置该类型时返回错误
func (f *EnemyFactory) Get(enemyType types.EnemyType) (ecs.EntityID, error) {
	cfg, ok := f.cfg.Get(enemyType)
	if !ok {
		return ecs.InvalidEntity, fmt.Errorf("factory '%s' has no enemy type '%s'", f.name, enemyType)
	}

	scale := cfg.Scale.RandomValueInRange(f.rng)
	speed := cfg.Speed.RandomValueInRange(f.rng)
	offset := cfg.PathOffset.RandomValueInRange(f.rng)
	health := cfg.Health.RandomValueInRange(f.rng)

	id := f.em.CreateEntity()
	ecs.AddComponent(f.em, id, &components.EnemyComponent{
		Type:               enemyType,
		OriginFactory:      f,
		Phase:              components.EnemyPhaseIntro,
		Speed:              speed,
		PathOffset:         offset,
		Scale:              scale,
		MoveAnimationSpeed: cfg.Animation.MoveAnimationSpeed,
	})
	ecs.AddComponent(f.em, id, &components.TransformComponent{Scale: scale})
	ecs.AddComponent(f.em, id, &components.HealthComponent{Health: health, MaxHealth: health})
	ecs.AddComponent(f.em, id, &components.TargetPointComponent{
		Height:     f.targeting.TargetPointHeight,
		BaseRadius: f.targeting.TargetPointRadius,
	})

	animator := &components.EnemyAnimatorComponent{}
	systems.ConfigureAnimator(animator, cfg.Animation, f.anim.TransitionSpeed)
	systems.PlayIntro(animator)
	ecs.AddComponent(f.em, id, animator)

	f.spawned++
	f.logger.Debug("enemy created", "id", id, "type", enemyType,
		"scale", scale, "speed", speed, "offset", offset, "health", health)
	return id, nil
}

// Reclaim 实现 components.EnemyReclaimer，销毁敌人实体
func (f *EnemyFactory) Reclaim(id ecs.EntityID) {
	if !f.em.IsAlive(id) {
		return
	}
	f.em.DestroyEntity(id)
	f.reclaimed++
	f.logger.Debug("enemy reclaimed", "id", id)
}

// Spawned 返回累计生成数量
func (f *EnemyFactory) Spawned() int { return f.spawned }

// Reclaimed 返回累计回收数量
func (f *EnemyFactory) Reclaimed() int { return f.reclaimed }

// Active 返回已生成但尚未回收的数量
func (f *EnemyFactory) Active() int { return f.spawned - f.reclaimed }
