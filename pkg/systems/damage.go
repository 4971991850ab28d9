package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

// ApplyDamage 扣减敌人生命值
//
// 不做下限钳制，生命值可以变为负数；死亡在敌人下一次更新时判定。
// 返回: 实体存在且带有生命组件时返回 true
func ApplyDamage(em *ecs.EntityManager, id ecs.EntityID, damage float64) bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok {
		return false
	}
	health.Health -= damage
	return true
}
