package systems

import (
	"math/rand"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// capsuleHeight 索敌胶囊体高度（从地面向上）
const capsuleHeight = 3.0

// trackScaleMargin 追踪目标时射程按目标缩放额外放宽的比例
const trackScaleMargin = 0.125

// Targeting 塔的索敌查询
//
// 每次查询结果写入同一个缓冲区，只在当前帧内有效。
type Targeting struct {
	em    *ecs.EntityManager
	query OverlapQuery
	rng   *rand.Rand

	buffer []ecs.EntityID
	count  int

	valid []ecs.EntityID
}

// NewTargeting 创建索敌查询
//
// 参数:
//   - em: 实体管理器
//   - query: 空间重叠查询协作者
//   - rng: 随机源，nil 时使用固定种子
//   - bufferSize: 单次查询的最大候选数量，<= 0 时使用默认值
func NewTargeting(em *ecs.EntityManager, query OverlapQuery, rng *rand.Rand, bufferSize int) *Targeting {
	if bufferSize <= 0 {
		bufferSize = config.DefaultTargetBufferSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Targeting{
		em:     em,
		query:  query,
		rng:    rng,
		buffer: make([]ecs.EntityID, bufferSize),
	}
}

// FillBuffer 查询以 position 为底、向上 3 个单位、半径 targetRange 的胶囊体内的目标点
// 返回: 至少有一个候选时返回 true
func (t *Targeting) FillBuffer(position utils.Vec3, targetRange float64) bool {
	top := position
	top.Y += capsuleHeight
	t.count = t.query.OverlapCapsule(position, top, targetRange, EnemyLayerMask, t.buffer)
	return t.count > 0
}

// BufferedCount 返回最近一次查询的候选数量
func (t *Targeting) BufferedCount() int {
	return t.count
}

// Buffered 返回最近一次查询的第 i 个候选
func (t *Targeting) Buffered(i int) ecs.EntityID {
	return t.buffer[i]
}

// AcquireTarget 在射程内随机选择一个有效目标
//
// 候选中只有处于移动阶段的敌人有效，在有效候选中均匀随机选择。
// 返回: 选中的敌人和是否成功
func (t *Targeting) AcquireTarget(position utils.Vec3, targetRange float64) (ecs.EntityID, bool) {
	if !t.FillBuffer(position, targetRange) {
		return ecs.InvalidEntity, false
	}
	t.valid = t.valid[:0]
	for i := 0; i < t.count; i++ {
		if t.IsValidTarget(t.buffer[i]) {
			t.valid = append(t.valid, t.buffer[i])
		}
	}
	if len(t.valid) == 0 {
		return ecs.InvalidEntity, false
	}
	return t.valid[t.rng.Intn(len(t.valid))], true
}

// TrackTarget 检查当前目标是否仍然可用
//
// 目标被销毁、不再处于移动阶段、或在 x/z 平面上离开射程
// （射程 + 0.125 × 目标缩放）时清空目标并返回 false。
func (t *Targeting) TrackTarget(target *ecs.EntityID, position utils.Vec3, targetRange float64) bool {
	if *target == ecs.InvalidEntity {
		return false
	}
	if !t.IsValidTarget(*target) {
		*target = ecs.InvalidEntity
		return false
	}
	tp, _ := ecs.GetComponent[*components.TargetPointComponent](t.em, *target)
	scale := 1.0
	if tr, ok := ecs.GetComponent[*components.TransformComponent](t.em, *target); ok {
		scale = tr.Scale
	}
	x := position.X - tp.Position.X
	z := position.Z - tp.Position.Z
	r := targetRange + trackScaleMargin*scale
	if x*x+z*z > r*r {
		*target = ecs.InvalidEntity
		return false
	}
	return true
}

// IsValidTarget 目标存在、处于移动阶段且目标点启用
func (t *Targeting) IsValidTarget(id ecs.EntityID) bool {
	if !t.em.IsAlive(id) {
		return false
	}
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](t.em, id)
	if !ok || !enemy.IsTargetable() {
		return false
	}
	tp, ok := ecs.GetComponent[*components.TargetPointComponent](t.em, id)
	return ok && tp.Enabled
}

// TargetPosition 返回目标点世界坐标
func (t *Targeting) TargetPosition(id ecs.EntityID) (utils.Vec3, bool) {
	tp, ok := ecs.GetComponent[*components.TargetPointComponent](t.em, id)
	if !ok {
		return utils.Vec3{}, false
	}
	return tp.Position, true
}
