package entities

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// WarFactory 实现 systems.WarSpawner，创建炮弹和爆炸实体
type WarFactory struct {
	em                *ecs.EntityManager
	explosionDuration float64
}

// NewWarFactory 创建战争实体工厂
//
// 参数:
//   - em: 实体管理器
//   - explosionDuration: 爆炸效果持续时间（秒），<= 0 时使用默认值
func NewWarFactory(em *ecs.EntityManager, explosionDuration float64) *WarFactory {
	if explosionDuration <= 0 {
		explosionDuration = config.DefaultExplosionDuration
	}
	return &WarFactory{em: em, explosionDuration: explosionDuration}
}

// SpawnShell 创建一枚炮弹
func (f *WarFactory) SpawnShell(launch, target, velocity utils.Vec3, blastRadius, damage float64) ecs.EntityID {
	id := f.em.CreateEntity()
	ecs.AddComponent(f.em, id, &components.ShellComponent{
		LaunchPoint:    launch,
		TargetPoint:    target,
		LaunchVelocity: velocity,
		BlastRadius:    blastRadius,
		Damage:         damage,
		Position:       launch,
	})
	return id
}

// SpawnExplosion 创建一个爆炸，由 LifetimeSystem 在持续时间结束后移除
func (f *WarFactory) SpawnExplosion(position utils.Vec3, radius, damage float64) ecs.EntityID {
	id := f.em.CreateEntity()
	ecs.AddComponent(f.em, id, &components.ExplosionComponent{
		Position: position,
		Radius:   radius,
		Damage:   damage,
		Opacity:  1,
	})
	ecs.AddComponent(f.em, id, &components.LifetimeComponent{MaxLifetime: f.explosionDuration})
	return id
}
