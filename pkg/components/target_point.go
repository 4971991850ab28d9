package components

import "github.com/gonewx/towerdefense/pkg/utils"

// TargetPointComponent 塔可以锁定的目标点（球形碰撞体）
//
// 只有敌人处于移动阶段时 Enabled 为 true。
// Position 和 Radius 由物理同步写入，塔只在同步之后读取。
type TargetPointComponent struct {
	Enabled bool

	// Height 目标点相对模型的离地高度（未缩放）
	Height float64
	// BaseRadius 碰撞球半径（未缩放）
	BaseRadius float64

	// Position 目标点世界坐标
	Position utils.Vec3
	// Radius 缩放后的碰撞球半径
	Radius float64
}
