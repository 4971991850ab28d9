package components

import (
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// TowerComponent 塔的通用状态
type TowerComponent struct {
	Type      types.TowerType
	TileIndex int
	Position  utils.Vec3

	// TargetingRange 索敌半径
	TargetingRange float64

	// Target 当前锁定的敌人，ecs.InvalidEntity 表示没有目标
	Target ecs.EntityID
}

// HasTarget 塔是否持有目标
func (t *TowerComponent) HasTarget() bool {
	return t.Target != ecs.InvalidEntity
}

// LaserComponent 激光塔状态
type LaserComponent struct {
	DamagePerSecond float64
	TurretHeight    float64

	// 炮塔朝向（度）
	TurretYaw, TurretPitch float64

	// BeamLength 激光长度，0 表示未开火
	BeamLength float64
	// BeamEnd 激光终点（目标位置）
	BeamEnd utils.Vec3
}

// MortarComponent 迫击炮塔状态
type MortarComponent struct {
	ShotsPerSecond float64
	BlastRadius    float64
	Damage         float64
	MortarHeight   float64

	// LaunchSpeed 由射程和炮口高度推导出的发射速度
	LaunchSpeed float64
	// LaunchProgress 发射进度，达到 1 时发射一枚炮弹
	LaunchProgress float64

	// 炮管朝向（度）
	MortarYaw, MortarPitch float64

	ShellsFired int
}
