package board

import (
	"math"

	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// NoTile 表示不存在的格子索引
const NoTile = -1

// unreached 未到达格子的距离哨兵值
const unreached = math.MaxInt

// Tile 棋盘上的一个格子
//
// 邻居和下一跳都以棋盘数组索引表示（NoTile 表示不存在）。
// 路径字段只由 Board.FindPaths 写入。
type Tile struct {
	x, y     int
	index    int
	position utils.Vec3

	north, east, south, west int

	content Content

	distance      int
	nextOnPath    int
	exitPoint     utils.Vec3
	pathDirection types.Direction

	// IsAlternative 棋盘格标记，决定寻路时邻居的扩展顺序
	isAlternative bool
}

// Coord 返回格子坐标
func (t *Tile) Coord() (x, y int) { return t.x, t.y }

// Index 返回格子在棋盘数组中的索引
func (t *Tile) Index() int { return t.index }

// Position 返回格子中心世界坐标
func (t *Tile) Position() utils.Vec3 { return t.position }

// Content 返回格子内容
func (t *Tile) Content() Content { return t.content }

// IsAlternative 返回棋盘格标记
func (t *Tile) IsAlternative() bool { return t.isAlternative }

// Distance 返回到最近终点的步数，未到达时返回 math.MaxInt
func (t *Tile) Distance() int { return t.distance }

// HasPath 格子是否被寻路到达
func (t *Tile) HasPath() bool { return t.distance != unreached }

// NextTileOnPath 返回下一跳格子索引
// 终点和未到达格子返回 (NoTile, false)
func (t *Tile) NextTileOnPath() (int, bool) {
	if t.nextOnPath == NoTile {
		return NoTile, false
	}
	return t.nextOnPath, true
}

// ExitPoint 敌人离开此格进入下一跳时经过的世界坐标（格子边缘中点）
// 终点的出口为格子中心
func (t *Tile) ExitPoint() utils.Vec3 { return t.exitPoint }

// PathDirection 离开此格的方向，终点为 DirectionNone
func (t *Tile) PathDirection() types.Direction { return t.pathDirection }

// Neighbor 返回指定方向的邻居索引
func (t *Tile) Neighbor(d types.Direction) int {
	switch d {
	case types.North:
		return t.north
	case types.East:
		return t.east
	case types.South:
		return t.south
	case types.West:
		return t.west
	}
	return NoTile
}

// Arrow 路径箭头显示状态
// 终点和未到达格子不显示箭头，其余箭头指向下一跳
func (t *Tile) Arrow() (types.Direction, bool) {
	if t.distance == 0 || t.distance == unreached {
		return types.DirectionNone, false
	}
	switch t.nextOnPath {
	case t.north:
		return types.North, true
	case t.east:
		return types.East, true
	case t.south:
		return types.South, true
	}
	return types.West, true
}

func (t *Tile) clearPath() {
	t.distance = unreached
	t.nextOnPath = NoTile
	t.pathDirection = types.DirectionNone
}

func (t *Tile) becomeDestination() {
	t.distance = 0
	t.nextOnPath = NoTile
	t.exitPoint = t.position
	t.pathDirection = types.DirectionNone
}
