package utils

import "math"

// Vec3 三维向量（世界坐标）
//
// 坐标约定：棋盘位于 x/z 平面，y 轴向上。
// 偏航角（yaw）以度为单位，0° 朝向 +z（北），90° 朝向 +x（东）。
type Vec3 struct {
	X, Y, Z float64
}

// Add 返回 v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 返回 v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 返回 v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Distance 两点间距离
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalized 返回单位向量，零向量原样返回
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// LerpVec3 在 a、b 之间线性插值，t 不做钳制
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// YawForward 返回偏航角对应的前方单位向量
func YawForward(yawDeg float64) Vec3 {
	r := yawDeg * math.Pi / 180
	return Vec3{X: math.Sin(r), Z: math.Cos(r)}
}

// YawRight 返回偏航角对应的右方单位向量
func YawRight(yawDeg float64) Vec3 {
	r := yawDeg * math.Pi / 180
	return Vec3{X: math.Cos(r), Z: -math.Sin(r)}
}

// LookRotation 计算从 from 看向 to 的偏航角与俯仰角（度）
// 俯仰角向上为正；两点重合时返回 (0, 0)
func LookRotation(from, to Vec3) (yaw, pitch float64) {
	d := to.Sub(from)
	horizontal := math.Hypot(d.X, d.Z)
	if horizontal == 0 && d.Y == 0 {
		return 0, 0
	}
	yaw = math.Atan2(d.X, d.Z) * 180 / math.Pi
	pitch = math.Atan2(d.Y, horizontal) * 180 / math.Pi
	return yaw, pitch
}

// Ray 射线（由输入层把屏幕点击转换而来）
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// PointAt 返回射线上距离 t 处的点
func (r Ray) PointAt(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
