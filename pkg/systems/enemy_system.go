package systems

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/board"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// DestinationReporter 接收敌人抵达终点的通知
type DestinationReporter interface {
	EnemyReachedDestination()
}

// DeathReporter 接收敌人开始死亡的通知
// DestinationReporter 同时实现该接口时才会收到
type DeathReporter interface {
	EnemyDied(id ecs.EntityID)
}

// EnemySystem 敌人路径运动状态机
//
// 每个敌人依次经历 Intro → Moving → Outro/Dying → Destroyed。
// 移动阶段把相邻格子之间的运动拆成直行、右转、左转和掉头四种段，
// 每段的进度速率由速度和该段弧长决定，跨格时余量按新速率折算。
type EnemySystem struct {
	entityManager *ecs.EntityManager
	board         *board.Board
	reporter      DestinationReporter
	logger        *log.Logger
}

// NewEnemySystem 创建敌人系统
//
// 参数:
//   - em: 实体管理器
//   - b: 棋盘，敌人每跨过一个格子读取一次下一跳
//   - reporter: 终点通知接收者，可以为 nil
//   - logger: 日志器，nil 时使用 log.Default()
func NewEnemySystem(em *ecs.EntityManager, b *board.Board, reporter DestinationReporter, logger *log.Logger) *EnemySystem {
	if logger == nil {
		logger = log.Default()
	}
	return &EnemySystem{
		entityManager: em,
		board:         b,
		reporter:      reporter,
		logger:        logger.WithPrefix("enemy"),
	}
}

// SetBoard 切换敌人所在的棋盘
func (s *EnemySystem) SetBoard(b *board.Board) {
	s.board = b
}

type enemyParts struct {
	enemy     *components.EnemyComponent
	transform *components.TransformComponent
	animator  *components.EnemyAnimatorComponent
	health    *components.HealthComponent
	target    *components.TargetPointComponent
}

func (s *EnemySystem) parts(id ecs.EntityID) (enemyParts, bool) {
	var p enemyParts
	var ok bool
	if p.enemy, ok = ecs.GetComponent[*components.EnemyComponent](s.entityManager, id); !ok {
		return p, false
	}
	if p.transform, ok = ecs.GetComponent[*components.TransformComponent](s.entityManager, id); !ok {
		return p, false
	}
	if p.animator, ok = ecs.GetComponent[*components.EnemyAnimatorComponent](s.entityManager, id); !ok {
		return p, false
	}
	if p.health, ok = ecs.GetComponent[*components.HealthComponent](s.entityManager, id); !ok {
		return p, false
	}
	// 目标点是可选的
	p.target, _ = ecs.GetComponent[*components.TargetPointComponent](s.entityManager, id)
	return p, true
}

// SpawnOn 把敌人放到出生格，开始 Intro
func (s *EnemySystem) SpawnOn(id ecs.EntityID, tileIndex int) {
	p, ok := s.parts(id)
	if !ok {
		return
	}
	tile := s.board.Tile(tileIndex)
	if tile == nil {
		return
	}
	e := p.enemy
	e.TileFrom = tileIndex
	e.TileTo, _ = tile.NextTileOnPath()
	e.Progress = 0
	e.TilesTraveled = 0
	e.Phase = components.EnemyPhaseIntro
	s.prepareIntro(p, tile)
	if p.target != nil {
		p.target.Enabled = false
	}
	s.logger.Debug("enemy spawned", "id", id, "type", e.Type, "tile", tileIndex)
}

// Update 推进所有敌人
// 返回: 本帧更新后仍然存活的敌人数量
func (s *EnemySystem) Update(deltaTime float64) int {
	alive := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		if s.UpdateEnemy(id, deltaTime) {
			alive++
		}
	}
	return alive
}

// UpdateEnemy 推进单个敌人
// 返回: 敌人仍然存活时返回 true，交还工厂后返回 false
func (s *EnemySystem) UpdateEnemy(id ecs.EntityID, deltaTime float64) bool {
	p, ok := s.parts(id)
	if !ok {
		return false
	}
	e := p.enemy

	UpdateAnimator(p.animator, deltaTime)

	switch e.Phase {
	case components.EnemyPhaseIntro:
		if !IsAnimatorDone(p.animator) {
			return true
		}
		PlayMove(p.animator, e.MoveAnimationSpeed*e.Speed/e.Scale)
		e.Phase = components.EnemyPhaseMoving
		if p.target != nil {
			p.target.Enabled = true
		}
	case components.EnemyPhaseOutro, components.EnemyPhaseDying:
		if IsAnimatorDone(p.animator) {
			s.Recycle(id)
			return false
		}
		return true
	case components.EnemyPhaseDestroyed:
		return false
	}

	if p.health.Health <= 0 {
		PlayDying(p.animator)
		e.Phase = components.EnemyPhaseDying
		if p.target != nil {
			p.target.Enabled = false
		}
		if d, ok := s.reporter.(DeathReporter); ok {
			d.EnemyDied(id)
		}
		s.logger.Debug("enemy dying", "id", id, "health", p.health.Health)
		return true
	}

	e.Progress += deltaTime * e.ProgressFactor
	for e.Progress >= 1 {
		if e.TileTo == board.NoTile {
			if s.reporter != nil {
				s.reporter.EnemyReachedDestination()
			}
			p.transform.Position = e.PositionTo
			PlayOutro(p.animator)
			e.Phase = components.EnemyPhaseOutro
			if p.target != nil {
				p.target.Enabled = false
			}
			s.logger.Debug("enemy reached destination", "id", id, "tile", e.TileFrom)
			return true
		}
		e.Progress = (e.Progress - 1) / e.ProgressFactor
		s.prepareNextState(p)
		e.Progress *= e.ProgressFactor
	}

	if e.Segment.IsTurn() {
		p.transform.Yaw = utils.Lerp(e.DirectionAngleFrom, e.DirectionAngleTo, e.Progress)
	} else {
		p.transform.Position = utils.LerpVec3(e.PositionFrom, e.PositionTo, e.Progress)
	}
	return true
}

// Recycle 停止动画并把敌人交还来源工厂
func (s *EnemySystem) Recycle(id ecs.EntityID) {
	p, ok := s.parts(id)
	if !ok {
		return
	}
	StopAnimator(p.animator)
	p.enemy.Phase = components.EnemyPhaseDestroyed
	if p.target != nil {
		p.target.Enabled = false
	}
	if p.enemy.OriginFactory != nil {
		p.enemy.OriginFactory.Reclaim(id)
	} else {
		s.entityManager.DestroyEntity(id)
	}
}

func (s *EnemySystem) prepareNextState(p enemyParts) {
	e := p.enemy
	e.TileFrom = e.TileTo
	from := s.board.Tile(e.TileFrom)
	e.TileTo, _ = from.NextTileOnPath()
	e.PositionFrom = e.PositionTo
	e.TilesTraveled++
	if e.TileTo == board.NoTile {
		s.prepareOutro(p, from)
		return
	}
	e.PositionTo = from.ExitPoint()
	e.DirectionChange = e.Direction.DirectionChangeTo(from.PathDirection())
	e.Direction = from.PathDirection()
	e.DirectionAngleFrom = e.DirectionAngleTo

	switch e.DirectionChange {
	case types.DirectionChangeNone:
		s.prepareForward(p)
	case types.DirectionChangeTurnRight:
		s.prepareTurnRight(p)
	case types.DirectionChangeTurnLeft:
		s.prepareTurnLeft(p)
	default:
		s.prepareTurnAround(p)
	}
}

func (s *EnemySystem) prepareIntro(p enemyParts, tile *board.Tile) {
	e := p.enemy
	e.PositionFrom = tile.Position()
	p.transform.Position = e.PositionFrom
	e.PositionTo = tile.ExitPoint()
	e.Direction = tile.PathDirection()
	e.DirectionChange = types.DirectionChangeNone
	e.DirectionAngleFrom = e.Direction.Angle()
	e.DirectionAngleTo = e.DirectionAngleFrom
	p.transform.ModelOffset = e.PathOffset
	p.transform.Yaw = e.Direction.Angle()
	e.ProgressFactor = 2 * e.Speed
	e.Segment = components.SegmentIntro
}

func (s *EnemySystem) prepareForward(p enemyParts) {
	e := p.enemy
	p.transform.Yaw = e.Direction.Angle()
	e.DirectionAngleTo = e.Direction.Angle()
	p.transform.ModelOffset = e.PathOffset
	e.ProgressFactor = e.Speed
	e.Segment = components.SegmentForward
}

// prepareTurnRight 以新方向半格处为圆心转 90°，转弯半径 0.5 - offset
func (s *EnemySystem) prepareTurnRight(p enemyParts) {
	e := p.enemy
	e.DirectionAngleTo = e.DirectionAngleFrom + 90
	p.transform.ModelOffset = e.PathOffset - 0.5
	p.transform.Position = e.PositionFrom.Add(e.Direction.HalfVector())
	e.ProgressFactor = e.Speed / (math.Pi * 0.5 * (0.5 - e.PathOffset))
	e.Segment = components.SegmentTurnRight
}

// prepareTurnLeft 转弯半径 0.5 + offset
func (s *EnemySystem) prepareTurnLeft(p enemyParts) {
	e := p.enemy
	e.DirectionAngleTo = e.DirectionAngleFrom - 90
	p.transform.ModelOffset = e.PathOffset + 0.5
	p.transform.Position = e.PositionFrom.Add(e.Direction.HalfVector())
	e.ProgressFactor = e.Speed / (math.Pi * 0.5 * (0.5 + e.PathOffset))
	e.Segment = components.SegmentTurnLeft
}

// prepareTurnAround 在格子边缘原地掉头，偏移在左侧时顺时针转
func (s *EnemySystem) prepareTurnAround(p enemyParts) {
	e := p.enemy
	if e.PathOffset < 0 {
		e.DirectionAngleTo = e.DirectionAngleFrom + 180
	} else {
		e.DirectionAngleTo = e.DirectionAngleFrom - 180
	}
	p.transform.ModelOffset = e.PathOffset
	p.transform.Position = e.PositionFrom
	e.ProgressFactor = e.Speed / (math.Pi * math.Max(math.Abs(e.PathOffset), 0.2))
	e.Segment = components.SegmentTurnAround
}

func (s *EnemySystem) prepareOutro(p enemyParts, tile *board.Tile) {
	e := p.enemy
	e.PositionTo = tile.Position()
	e.DirectionChange = types.DirectionChangeNone
	e.DirectionAngleTo = e.Direction.Angle()
	p.transform.ModelOffset = e.PathOffset
	p.transform.Yaw = e.Direction.Angle()
	e.ProgressFactor = 2 * e.Speed
	e.Segment = components.SegmentOutro
}
