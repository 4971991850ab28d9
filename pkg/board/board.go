// Package board 实现格子棋盘、内容切换和多源寻路
//
// 棋盘以数组保存全部格子，邻居和下一跳都是数组索引。
// 每次改变阻挡关系的操作都会重新寻路，寻路失败时回滚并再次寻路。
package board

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// Board 塔防棋盘
type Board struct {
	width, height int
	tiles         []Tile

	searchFrontier []int

	factory   ContentFactory
	raycaster Raycaster

	// spawnPoints 出生点格子索引，始终至少有一个
	spawnPoints []int

	// updating 需要每帧更新的内容（塔）所在格子，按放置顺序
	updating []int

	showPaths bool

	logger *log.Logger
}

// NewBoard 创建棋盘并初始化为默认布局（中心终点 + 第一个格子出生点）
//
// 参数:
//   - width, height: 棋盘尺寸（格子数），至少两个格子
//   - factory: 内容工厂，nil 时使用 SimpleContentFactory
//   - logger: 日志器，nil 时使用 log.Default()
//
// 返回:
//   - *Board: 新棋盘
//   - error: 尺寸无效时返回错误
func NewBoard(width, height int, factory ContentFactory, logger *log.Logger) (*Board, error) {
	if width < 1 || height < 1 || width*height < 2 {
		return nil, fmt.Errorf("invalid board size %dx%d: need at least 2 tiles", width, height)
	}
	if factory == nil {
		factory = SimpleContentFactory{}
	}
	if logger == nil {
		logger = log.Default()
	}

	b := &Board{
		width:     width,
		height:    height,
		tiles:     make([]Tile, width*height),
		factory:   factory,
		raycaster: GroundPlane{},
		showPaths: true,
		logger:    logger.WithPrefix("board"),
	}

	offsetX := float64(width-1) * 0.5
	offsetZ := float64(height-1) * 0.5
	for i, y := 0, 0; y < height; y++ {
		for x := 0; x < width; x, i = x+1, i+1 {
			tile := &b.tiles[i]
			tile.x, tile.y, tile.index = x, y, i
			tile.position = utils.Vec3{X: float64(x) - offsetX, Z: float64(y) - offsetZ}
			tile.north, tile.east, tile.south, tile.west = NoTile, NoTile, NoTile, NoTile
			tile.content = Content{Type: ContentEmpty}
			tile.clearPath()

			if x > 0 {
				tile.west = i - 1
				b.tiles[i-1].east = i
			}
			if y > 0 {
				tile.south = i - width
				b.tiles[i-width].north = i
			}

			tile.isAlternative = (x & 1) == 0
			if (y & 1) == 0 {
				tile.isAlternative = !tile.isAlternative
			}
		}
	}

	b.Clear()
	return b, nil
}

// Size 返回棋盘尺寸
func (b *Board) Size() (width, height int) { return b.width, b.height }

// TileCount 返回格子总数
func (b *Board) TileCount() int { return len(b.tiles) }

// Tile 返回指定索引的格子，索引越界返回 nil
func (b *Board) Tile(index int) *Tile {
	if index < 0 || index >= len(b.tiles) {
		return nil
	}
	return &b.tiles[index]
}

// TileAt 返回网格坐标对应的格子索引
func (b *Board) TileAt(x, y int) (int, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return NoTile, false
	}
	return x + y*b.width, true
}

// SetRaycaster 替换射线检测协作者，nil 恢复为地面平面
func (b *Board) SetRaycaster(r Raycaster) {
	if r == nil {
		r = GroundPlane{}
	}
	b.raycaster = r
}

// ShowPaths 路径箭头是否显示
func (b *Board) ShowPaths() bool { return b.showPaths }

// SetShowPaths 切换路径箭头显示，不影响寻路结果
func (b *Board) SetShowPaths(show bool) { b.showPaths = show }

// setContent 替换格子内容，旧内容交给工厂回收
func (b *Board) setContent(index int, c Content) {
	tile := &b.tiles[index]
	b.factory.Reclaim(tile.content)
	tile.content = c
	b.factory.Place(c, index, tile.position)
}

// ToggleDestination 切换终点
//
// Destination→Empty 后若无法寻路（例如移除最后一个终点）则恢复；
// Empty→Destination 总是成功。其他内容不受影响。
func (b *Board) ToggleDestination(index int) {
	tile := b.Tile(index)
	if tile == nil {
		return
	}
	switch tile.content.Type {
	case ContentDestination:
		b.setContent(index, b.factory.Get(ContentEmpty))
		if !b.FindPaths() {
			b.logger.Debug("rejected destination removal", "tile", index)
			b.setContent(index, b.factory.Get(ContentDestination))
			b.FindPaths()
		}
	case ContentEmpty:
		b.setContent(index, b.factory.Get(ContentDestination))
		b.FindPaths()
	}
}

// ToggleWall 切换墙
//
// Empty→Wall 后若有格子无法到达终点则恢复为 Empty；Wall→Empty 总是成功。
func (b *Board) ToggleWall(index int) {
	tile := b.Tile(index)
	if tile == nil {
		return
	}
	switch tile.content.Type {
	case ContentWall:
		b.setContent(index, b.factory.Get(ContentEmpty))
		b.FindPaths()
	case ContentEmpty:
		b.setContent(index, b.factory.Get(ContentWall))
		if !b.FindPaths() {
			b.logger.Debug("rejected wall placement", "tile", index)
			b.setContent(index, b.factory.Get(ContentEmpty))
			b.FindPaths()
		}
	}
}

// ToggleSpawnPoint 切换出生点
// 只剩一个出生点时移除请求被忽略
func (b *Board) ToggleSpawnPoint(index int) {
	tile := b.Tile(index)
	if tile == nil {
		return
	}
	switch tile.content.Type {
	case ContentSpawnPoint:
		if len(b.spawnPoints) > 1 {
			b.spawnPoints = removeIndex(b.spawnPoints, index)
			b.setContent(index, b.factory.Get(ContentEmpty))
		} else {
			b.logger.Debug("rejected removal of last spawn point", "tile", index)
		}
	case ContentEmpty:
		b.setContent(index, b.factory.Get(ContentSpawnPoint))
		b.spawnPoints = append(b.spawnPoints, index)
	}
}

// ToggleTower 切换塔
//
//   - 同类型塔: 移除，重新寻路
//   - 不同类型塔: 直接替换（阻挡关系不变）
//   - Empty: 放置塔，寻路失败则恢复为 Empty
//   - Wall: 墙换成塔，阻挡关系不变，无需重新寻路
func (b *Board) ToggleTower(index int, towerType types.TowerType) {
	tile := b.Tile(index)
	if tile == nil {
		return
	}
	switch tile.content.Type {
	case ContentTower:
		b.updating = removeIndex(b.updating, index)
		if tile.content.TowerType == towerType {
			b.setContent(index, b.factory.Get(ContentEmpty))
			b.FindPaths()
		} else {
			b.setContent(index, b.factory.GetTower(towerType))
			b.updating = append(b.updating, index)
		}
	case ContentEmpty:
		b.setContent(index, b.factory.GetTower(towerType))
		if b.FindPaths() {
			b.updating = append(b.updating, index)
		} else {
			b.logger.Debug("rejected tower placement", "tile", index, "tower", towerType)
			b.setContent(index, b.factory.Get(ContentEmpty))
			b.FindPaths()
		}
	case ContentWall:
		b.setContent(index, b.factory.GetTower(towerType))
		b.updating = append(b.updating, index)
	}
}

// SpawnPointCount 返回出生点数量
func (b *Board) SpawnPointCount() int { return len(b.spawnPoints) }

// SpawnPoint 返回第 i 个出生点的格子索引
func (b *Board) SpawnPoint(i int) int { return b.spawnPoints[i] }

// UpdatingCount 返回需要每帧更新的内容数量
func (b *Board) UpdatingCount() int { return len(b.updating) }

// GameUpdate 按放置顺序访问每个需要更新的内容
func (b *Board) GameUpdate(fn func(tileIndex int, c Content)) {
	for i := 0; i < len(b.updating); i++ {
		index := b.updating[i]
		fn(index, b.tiles[index].content)
	}
}

// Clear 重置为默认布局
//
// 所有格子清空，中心格子设为终点，第一个格子设为出生点。
func (b *Board) Clear() {
	for i := range b.tiles {
		b.setContent(i, b.factory.Get(ContentEmpty))
	}
	b.spawnPoints = b.spawnPoints[:0]
	b.updating = b.updating[:0]
	b.ToggleDestination(len(b.tiles) / 2)
	b.ToggleSpawnPoint(0)
}

func removeIndex(list []int, value int) []int {
	for i, v := range list {
		if v == value {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
