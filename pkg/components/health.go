package components

// HealthComponent 存储敌人的生命值
//
// 伤害直接扣减，不做下限钳制，允许出现负值；
// 死亡判定在下一次敌人更新时进行。
type HealthComponent struct {
	Health    float64 // 当前生命值
	MaxHealth float64 // 初始生命值
}

// Ratio 返回剩余生命比例，负值按 0 处理
func (h *HealthComponent) Ratio() float64 {
	if h.MaxHealth <= 0 || h.Health <= 0 {
		return 0
	}
	if h.Health >= h.MaxHealth {
		return 1
	}
	return h.Health / h.MaxHealth
}
