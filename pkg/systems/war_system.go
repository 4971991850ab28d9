package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// WarSystem 推进炮弹飞行和爆炸结算
type WarSystem struct {
	em        *ecs.EntityManager
	targeting *Targeting
	spawner   WarSpawner
}

// NewWarSystem 创建战争实体系统
func NewWarSystem(em *ecs.EntityManager, targeting *Targeting, spawner WarSpawner) *WarSystem {
	return &WarSystem{em: em, targeting: targeting, spawner: spawner}
}

// Update 先推进炮弹，再结算爆炸
// 同一帧落地产生的爆炸在本帧内结算伤害
func (s *WarSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ShellComponent](s.em) {
		if !s.em.IsAlive(id) {
			continue
		}
		shell, _ := ecs.GetComponent[*components.ShellComponent](s.em, id)
		s.updateShell(id, shell, deltaTime)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.em) {
		if !s.em.IsAlive(id) {
			continue
		}
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](s.em, id)
		s.updateExplosion(explosion)
	}
}

func (s *WarSystem) updateShell(id ecs.EntityID, shell *components.ShellComponent, deltaTime float64) {
	shell.Age += deltaTime
	p := shell.LaunchPoint.Add(shell.LaunchVelocity.Scale(shell.Age))
	p.Y -= 0.5 * Gravity * shell.Age * shell.Age

	if p.Y <= 0 {
		if s.spawner != nil {
			s.spawner.SpawnExplosion(shell.TargetPoint, shell.BlastRadius, shell.Damage)
		}
		s.em.DestroyEntity(id)
		return
	}

	shell.Position = p
	d := shell.LaunchVelocity
	d.Y -= Gravity * shell.Age
	shell.Yaw, shell.Pitch = utils.LookRotation(utils.Vec3{}, d)
}

// updateExplosion 首次更新时对爆炸范围内所有目标造成一次伤害
// 缩放和透明度由 LifetimeSystem 驱动
func (s *WarSystem) updateExplosion(explosion *components.ExplosionComponent) {
	if explosion.Applied {
		return
	}
	explosion.Applied = true
	if s.targeting.FillBuffer(explosion.Position, explosion.Radius) {
		for i := 0; i < s.targeting.BufferedCount(); i++ {
			ApplyDamage(s.em, s.targeting.Buffered(i), explosion.Damage)
		}
	}
}
