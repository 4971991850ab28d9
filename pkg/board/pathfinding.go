package board

import "github.com/gonewx/towerdefense/pkg/types"

// FindPaths 从所有终点出发做多源广度优先搜索，重建每个格子的下一跳
//
// 终点距离为 0 并入队，其余格子重置为未到达。出队格子按棋盘格标记
// 选择扩展顺序：IsAlternative 为 N,S,E,W，否则为 W,E,S,N。
// 阻挡格子（墙、塔）会得到距离和出口，但不入队继续扩展。
//
// 返回:
//   - bool: 至少存在一个终点且所有格子都被到达时返回 true
func (b *Board) FindPaths() bool {
	frontier := b.searchFrontier[:0]
	for i := range b.tiles {
		tile := &b.tiles[i]
		if tile.content.Type == ContentDestination {
			tile.becomeDestination()
			frontier = append(frontier, i)
		} else {
			tile.clearPath()
		}
	}

	if len(frontier) == 0 {
		b.searchFrontier = frontier
		return false
	}

	for head := 0; head < len(frontier); head++ {
		tile := &b.tiles[frontier[head]]
		var order [4]int
		if tile.isAlternative {
			order = [4]int{
				b.growPathTo(tile, tile.north, types.South),
				b.growPathTo(tile, tile.south, types.North),
				b.growPathTo(tile, tile.east, types.West),
				b.growPathTo(tile, tile.west, types.East),
			}
		} else {
			order = [4]int{
				b.growPathTo(tile, tile.west, types.East),
				b.growPathTo(tile, tile.east, types.West),
				b.growPathTo(tile, tile.south, types.North),
				b.growPathTo(tile, tile.north, types.South),
			}
		}
		for _, next := range order {
			if next != NoTile {
				frontier = append(frontier, next)
			}
		}
	}
	b.searchFrontier = frontier[:0]

	for i := range b.tiles {
		if !b.tiles[i].HasPath() {
			return false
		}
	}
	return true
}

// RecomputePaths 是 FindPaths 的别名
func (b *Board) RecomputePaths() bool {
	return b.FindPaths()
}

// growPathTo 把路径从 tile 扩展到 neighbor
//
// direction 为敌人从 neighbor 走向 tile 的方向。
// 返回需要入队的邻居索引，邻居不存在、已到达或阻挡通行时返回 NoTile。
func (b *Board) growPathTo(tile *Tile, neighbor int, direction types.Direction) int {
	if !tile.HasPath() || neighbor == NoTile {
		return NoTile
	}
	n := &b.tiles[neighbor]
	if n.HasPath() {
		return NoTile
	}
	n.distance = tile.distance + 1
	n.nextOnPath = tile.index
	n.exitPoint = n.position.Add(direction.HalfVector())
	n.pathDirection = direction
	if n.content.BlocksPath() {
		return NoTile
	}
	return neighbor
}
