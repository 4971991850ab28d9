package board

import (
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// ContentType 格子内容类型
type ContentType int

const (
	ContentEmpty ContentType = iota
	ContentDestination
	ContentWall
	ContentSpawnPoint
	ContentTower
)

var contentTypeNames = map[ContentType]string{
	ContentEmpty:       "empty",
	ContentDestination: "destination",
	ContentWall:        "wall",
	ContentSpawnPoint:  "spawn",
	ContentTower:       "tower",
}

// String 返回内容类型名称
func (t ContentType) String() string {
	if name, ok := contentTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Content 格子内容（带标签的变体）
//
// 只有 ContentTower 使用 TowerType 和 Entity 字段。
// Entity 为 ecs.InvalidEntity 表示内容没有对应的实体（静态内容或测试工厂）。
type Content struct {
	Type      ContentType
	TowerType types.TowerType
	Entity    ecs.EntityID
}

// BlocksPath 内容是否阻挡敌人通行
func (c Content) BlocksPath() bool {
	return c.Type == ContentWall || c.Type == ContentTower
}

// NeedsUpdate 内容是否需要每帧更新（塔）
func (c Content) NeedsUpdate() bool {
	return c.Type == ContentTower
}

// ContentFactory 格子内容工厂
//
// Board 替换格子内容时先 Reclaim 旧内容，再 Place 新内容到格子位置。
type ContentFactory interface {
	// Get 创建非塔内容
	Get(t ContentType) Content
	// GetTower 创建指定类型的塔
	GetTower(t types.TowerType) Content
	// Place 内容被放到格子 tileIndex 上，position 为格子世界坐标
	Place(c Content, tileIndex int, position utils.Vec3)
	// Reclaim 回收被替换下来的内容
	Reclaim(c Content)
}

// SimpleContentFactory 不创建任何实体的内容工厂
// 用于纯寻路场景和测试
type SimpleContentFactory struct{}

// Get 实现 ContentFactory
func (SimpleContentFactory) Get(t ContentType) Content {
	return Content{Type: t}
}

// GetTower 实现 ContentFactory
func (SimpleContentFactory) GetTower(t types.TowerType) Content {
	return Content{Type: ContentTower, TowerType: t}
}

// Place 实现 ContentFactory
func (SimpleContentFactory) Place(Content, int, utils.Vec3) {}

// Reclaim 实现 ContentFactory
func (SimpleContentFactory) Reclaim(Content) {}
