package board

import (
	"math"

	"github.com/gonewx/towerdefense/pkg/utils"
)

// Raycaster 射线检测协作者，返回射线与地面的交点
type Raycaster interface {
	Raycast(ray utils.Ray) (utils.Vec3, bool)
}

// GroundPlane 默认射线检测：与 y=0 平面求交
type GroundPlane struct{}

// Raycast 实现 Raycaster
func (GroundPlane) Raycast(ray utils.Ray) (utils.Vec3, bool) {
	if ray.Direction.Y == 0 {
		return utils.Vec3{}, false
	}
	t := -ray.Origin.Y / ray.Direction.Y
	if t < 0 {
		return utils.Vec3{}, false
	}
	return ray.PointAt(t), true
}

// GetTile 把射线命中点映射为格子索引
// 没有命中或命中点在棋盘外时返回 (NoTile, false)
func (b *Board) GetTile(ray utils.Ray) (int, bool) {
	hit, ok := b.raycaster.Raycast(ray)
	if !ok {
		return NoTile, false
	}
	return b.TileAtPoint(hit)
}

// TileAtPoint 把世界坐标映射为格子索引
func (b *Board) TileAtPoint(p utils.Vec3) (int, bool) {
	x := int(math.Floor(p.X + float64(b.width)*0.5))
	y := int(math.Floor(p.Z + float64(b.height)*0.5))
	return b.TileAt(x, y)
}
