package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// EnemyLayer 敌人目标点所在的碰撞层
const EnemyLayer = 9

// EnemyLayerMask 只查询敌人层的掩码
const EnemyLayerMask = 1 << EnemyLayer

// OverlapQuery 空间重叠查询协作者
type OverlapQuery interface {
	// OverlapCapsule 查询与胶囊体相交的碰撞体
	//
	// 参数:
	//   - bottom, top: 胶囊体中轴两端
	//   - radius: 胶囊体半径
	//   - layerMask: 碰撞层掩码
	//   - buffer: 结果缓冲区，最多写入 len(buffer) 个实体
	//
	// 返回:
	//   - int: 写入缓冲区的数量
	OverlapCapsule(bottom, top utils.Vec3, radius float64, layerMask int, buffer []ecs.EntityID) int
}

type sphereCollider struct {
	entity ecs.EntityID
	center utils.Vec3
	radius float64
	layer  int
}

// PhysicsSystem 目标点碰撞索引
//
// SyncTransforms 是敌人更新和塔更新之间的同步点：
// 它根据敌人变换刷新目标点位置，并重建可查询的碰撞体列表。
type PhysicsSystem struct {
	em        *ecs.EntityManager
	colliders []sphereCollider
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器，用于查询敌人的变换和目标点组件
//
// 返回:
//   - *PhysicsSystem: 物理系统实例
func NewPhysicsSystem(em *ecs.EntityManager) *PhysicsSystem {
	return &PhysicsSystem{em: em}
}

// SyncTransforms 刷新目标点世界坐标并重建碰撞体列表
// 只有启用的目标点参与查询
func (ps *PhysicsSystem) SyncTransforms() {
	ps.colliders = ps.colliders[:0]
	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.TargetPointComponent](ps.em)
	for _, id := range ids {
		tr, _ := ecs.GetComponent[*components.TransformComponent](ps.em, id)
		tp, _ := ecs.GetComponent[*components.TargetPointComponent](ps.em, id)

		scale := tr.Scale
		if scale <= 0 {
			scale = 1
		}
		tp.Position = tr.ModelPosition().Add(utils.Vec3{Y: tp.Height * scale})
		tp.Radius = tp.BaseRadius * scale

		if !tp.Enabled || !ps.em.IsAlive(id) {
			continue
		}
		ps.colliders = append(ps.colliders, sphereCollider{
			entity: id,
			center: tp.Position,
			radius: tp.Radius,
			layer:  EnemyLayer,
		})
	}
}

// ColliderCount 返回当前可查询的碰撞体数量
func (ps *PhysicsSystem) ColliderCount() int {
	return len(ps.colliders)
}

// OverlapCapsule 实现 OverlapQuery
// 结果按实体 ID 升序写入
func (ps *PhysicsSystem) OverlapCapsule(bottom, top utils.Vec3, radius float64, layerMask int, buffer []ecs.EntityID) int {
	n := 0
	for _, c := range ps.colliders {
		if n >= len(buffer) {
			break
		}
		if layerMask&(1<<c.layer) == 0 {
			continue
		}
		r := radius + c.radius
		if distanceSqToSegment(c.center, bottom, top) <= r*r {
			buffer[n] = c.entity
			n++
		}
	}
	return n
}

// distanceSqToSegment 点 p 到线段 ab 的距离平方
func distanceSqToSegment(p, a, b utils.Vec3) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	lenSq := ab.Dot(ab)
	t := 0.0
	if lenSq > 0 {
		t = utils.Clamp01(ap.Dot(ab) / lenSq)
	}
	d := ap.Sub(ab.Scale(t))
	return d.Dot(d)
}
