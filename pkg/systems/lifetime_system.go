package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// LifetimeSystem 推进限时实体并在到期时移除
//
// 爆炸的缩放和透明度随生命周期进度变化：
// 缩放按 EaseOutCubic 从 0 扩张到直径，透明度按 EaseInQuad 从 1 淡出到 0。
type LifetimeSystem struct {
	em      *ecs.EntityManager
	expired int
}

// NewLifetimeSystem 创建生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{em: em}
}

// Update 推进所有限时实体
// 到期的实体只做删除标记，帧末统一清理；最后一帧的视觉停在进度 1
func (s *LifetimeSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.em) {
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.em, id)
		if lifetime.IsExpired || !s.em.IsAlive(id) {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if explosion, ok := ecs.GetComponent[*components.ExplosionComponent](s.em, id); ok {
			fadeExplosion(explosion, lifetime.Progress())
		}

		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			s.expired++
			s.em.DestroyEntity(id)
		}
	}
}

// Expired 返回累计到期的实体数量
func (s *LifetimeSystem) Expired() int { return s.expired }

func fadeExplosion(explosion *components.ExplosionComponent, progress float64) {
	explosion.Scale = 2 * explosion.Radius * utils.EaseOutCubic(progress)
	explosion.Opacity = 1 - utils.EaseInQuad(progress)
}
