package app

import "github.com/gonewx/towerdefense/pkg/utils"

// cameraHeight 俯视相机离地高度，只影响射线起点
const cameraHeight = 10.0

// Camera 正交俯视相机
//
// 世界 x 轴向右，世界 z 轴（北）朝屏幕上方，棋盘中心位于屏幕中心。
type Camera struct {
	TileSize      float64
	Width, Height int
}

// NewCamera 按棋盘尺寸创建刚好容纳棋盘的相机
func NewCamera(boardWidth, boardHeight int, tileSize float64) Camera {
	return Camera{
		TileSize: tileSize,
		Width:    int(float64(boardWidth) * tileSize),
		Height:   int(float64(boardHeight)*tileSize) + hudHeight,
	}
}

// WorldToScreen 把世界坐标投影到屏幕像素坐标
func (c Camera) WorldToScreen(p utils.Vec3) (x, y float64) {
	cx := float64(c.Width) * 0.5
	cy := float64(c.Height-hudHeight)*0.5 + hudHeight
	return cx + p.X*c.TileSize, cy - p.Z*c.TileSize
}

// ScreenToRay 把屏幕点击转换成垂直向下的射线
func (c Camera) ScreenToRay(x, y int) utils.Ray {
	cx := float64(c.Width) * 0.5
	cy := float64(c.Height-hudHeight)*0.5 + hudHeight
	return utils.Ray{
		Origin: utils.Vec3{
			X: (float64(x) - cx) / c.TileSize,
			Y: cameraHeight,
			Z: (cy - float64(y)) / c.TileSize,
		},
		Direction: utils.Vec3{Y: -1},
	}
}
