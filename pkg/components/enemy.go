package components

import (
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// EnemyPhase 敌人生命周期阶段
type EnemyPhase int

const (
	// EnemyPhaseIntro 出场动画播放中，不移动
	EnemyPhaseIntro EnemyPhase = iota
	// EnemyPhaseMoving 沿路径移动，可被锁定
	EnemyPhaseMoving
	// EnemyPhaseOutro 抵达终点后的退场动画
	EnemyPhaseOutro
	// EnemyPhaseDying 死亡动画
	EnemyPhaseDying
	// EnemyPhaseDestroyed 已交还工厂
	EnemyPhaseDestroyed
)

var enemyPhaseNames = map[EnemyPhase]string{
	EnemyPhaseIntro:     "intro",
	EnemyPhaseMoving:    "moving",
	EnemyPhaseOutro:     "outro",
	EnemyPhaseDying:     "dying",
	EnemyPhaseDestroyed: "destroyed",
}

// String 返回阶段名称
func (p EnemyPhase) String() string {
	if name, ok := enemyPhaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// PathSegment 当前这段路径的运动方式
type PathSegment int

const (
	// SegmentIntro 从出生格中心走到出口
	SegmentIntro PathSegment = iota
	// SegmentForward 直行
	SegmentForward
	// SegmentTurnRight 右转弧线
	SegmentTurnRight
	// SegmentTurnLeft 左转弧线
	SegmentTurnLeft
	// SegmentTurnAround 原地掉头
	SegmentTurnAround
	// SegmentOutro 从终点格边缘走到中心
	SegmentOutro
)

// IsTurn 该段是否通过旋转插值
func (s PathSegment) IsTurn() bool {
	return s == SegmentTurnRight || s == SegmentTurnLeft || s == SegmentTurnAround
}

// EnemyReclaimer 敌人的来源工厂
type EnemyReclaimer interface {
	Reclaim(id ecs.EntityID)
}

// EnemyComponent 敌人在路径上的运动状态
//
// 格子以棋盘索引保存。Progress 为当前段的完成比例，
// 每秒增加 ProgressFactor，由速度和该段弧长决定。
type EnemyComponent struct {
	Type          types.EnemyType
	OriginFactory EnemyReclaimer

	Phase   EnemyPhase
	Segment PathSegment

	TileFrom, TileTo         int
	PositionFrom, PositionTo utils.Vec3

	Progress       float64
	ProgressFactor float64

	Direction       types.Direction
	DirectionChange types.DirectionChange

	DirectionAngleFrom, DirectionAngleTo float64

	PathOffset float64
	Speed      float64
	Scale      float64

	// MoveAnimationSpeed 移动动画基础播放速度
	MoveAnimationSpeed float64

	// TilesTraveled 已经走过的格子数
	TilesTraveled int
}

// IsTargetable 敌人是否可被塔锁定
func (e *EnemyComponent) IsTargetable() bool {
	return e.Phase == EnemyPhaseMoving
}
