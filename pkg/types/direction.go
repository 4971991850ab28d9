package types

import "github.com/gonewx/towerdefense/pkg/utils"

// Direction 定义路径上的四个基本方向
// 顺序固定为顺时针（北、东、南、西），方向变化的判定依赖这个顺序
type Direction int

const (
	// DirectionNone 无方向，仅用于终点格子
	DirectionNone Direction = iota - 1
	North
	East
	South
	West
)

// DirectionChange 描述相邻两段路径之间的转向类型
type DirectionChange int

const (
	// DirectionChangeNone 直行
	DirectionChangeNone DirectionChange = iota
	// DirectionChangeTurnRight 右转 90°
	DirectionChangeTurnRight
	// DirectionChangeTurnLeft 左转 90°
	DirectionChangeTurnLeft
	// DirectionChangeTurnAround 掉头 180°
	DirectionChangeTurnAround
)

var directionNames = map[Direction]string{
	DirectionNone: "none",
	North:         "north",
	East:          "east",
	South:         "south",
	West:          "west",
}

// String 返回方向名称
func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "unknown"
}

// Angle 返回方向对应的偏航角（度），北=0，顺时针递增
// DirectionNone 视为北
func (d Direction) Angle() float64 {
	if d == DirectionNone {
		return 0
	}
	return float64(d) * 90.0
}

// HalfVector 返回沿该方向半个格子的偏移（世界坐标 x/z 平面）
func (d Direction) HalfVector() utils.Vec3 {
	switch d {
	case North:
		return utils.Vec3{Z: 0.5}
	case East:
		return utils.Vec3{X: 0.5}
	case South:
		return utils.Vec3{Z: -0.5}
	case West:
		return utils.Vec3{X: -0.5}
	default:
		return utils.Vec3{}
	}
}

// Opposite 返回相反方向
func (d Direction) Opposite() Direction {
	if d == DirectionNone {
		return DirectionNone
	}
	return (d + 2) % 4
}

// DirectionChangeTo 计算从当前方向切换到 next 需要的转向类型
//
// 参数:
//   - next: 下一段路径的方向
//
// 返回:
//   - DirectionChange: 直行、右转、左转或掉头
func (d Direction) DirectionChangeTo(next Direction) DirectionChange {
	if d == DirectionNone || next == DirectionNone || d == next {
		return DirectionChangeNone
	}
	if d+1 == next || d-3 == next {
		return DirectionChangeTurnRight
	}
	if d-1 == next || d+3 == next {
		return DirectionChangeTurnLeft
	}
	return DirectionChangeTurnAround
}

// String 返回转向类型名称
func (c DirectionChange) String() string {
	switch c {
	case DirectionChangeNone:
		return "none"
	case DirectionChangeTurnRight:
		return "turn_right"
	case DirectionChangeTurnLeft:
		return "turn_left"
	case DirectionChangeTurnAround:
		return "turn_around"
	default:
		return "unknown"
	}
}
