package components

import "github.com/gonewx/towerdefense/pkg/utils"

// ShellComponent 迫击炮弹
//
// 位置按 launchPoint + velocity*age - 0.5*g*age² 计算，落地（y <= 0）时爆炸。
type ShellComponent struct {
	LaunchPoint    utils.Vec3
	TargetPoint    utils.Vec3
	LaunchVelocity utils.Vec3
	Age            float64

	BlastRadius float64
	Damage      float64

	Position utils.Vec3
	// Pitch 炮弹当前飞行方向的俯仰角（度）
	Yaw, Pitch float64
}

// ExplosionComponent 爆炸效果
//
// 伤害只在第一次更新时结算，缩放和透明度随 LifetimeComponent 的进度变化。
type ExplosionComponent struct {
	Position utils.Vec3
	Radius   float64
	Damage   float64
	Applied  bool

	// Scale, Opacity 视觉参数，由 LifetimeSystem 经缓动曲线写入
	Scale   float64
	Opacity float64
}
