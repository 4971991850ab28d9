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

// Gravity 炮弹重力加速度
const Gravity = 9.81

// WarSpawner 炮弹和爆炸的创建者
type WarSpawner interface {
	SpawnShell(launch, target, velocity utils.Vec3, blastRadius, damage float64) ecs.EntityID
	SpawnExplosion(position utils.Vec3, radius, damage float64) ecs.EntityID
}

// TowerSystem 塔的索敌和开火
type TowerSystem struct {
	em        *ecs.EntityManager
	targeting *Targeting
	war       WarSpawner
	logger    *log.Logger
}

// NewTowerSystem 创建塔系统
//
// 参数:
//   - em: 实体管理器
//   - targeting: 索敌查询
//   - war: 炮弹创建者，只有迫击炮需要，可以为 nil
//   - logger: 日志器，nil 时使用 log.Default()
func NewTowerSystem(em *ecs.EntityManager, targeting *Targeting, war WarSpawner, logger *log.Logger) *TowerSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &TowerSystem{
		em:        em,
		targeting: targeting,
		war:       war,
		logger:    logger.WithPrefix("tower"),
	}
}

// Update 按放置顺序更新棋盘上的所有塔
func (s *TowerSystem) Update(b *board.Board, deltaTime float64) {
	b.GameUpdate(func(_ int, c board.Content) {
		if c.Entity != ecs.InvalidEntity {
			s.UpdateTower(c.Entity, deltaTime)
		}
	})
}

// UpdateTower 更新单个塔
func (s *TowerSystem) UpdateTower(id ecs.EntityID, deltaTime float64) {
	tower, ok := ecs.GetComponent[*components.TowerComponent](s.em, id)
	if !ok {
		return
	}
	switch tower.Type {
	case types.TowerLaser:
		if laser, ok := ecs.GetComponent[*components.LaserComponent](s.em, id); ok {
			s.updateLaser(tower, laser, deltaTime)
		}
	case types.TowerMortar:
		if mortar, ok := ecs.GetComponent[*components.MortarComponent](s.em, id); ok {
			s.updateMortar(tower, mortar, deltaTime)
		}
	}
}

// updateLaser 持续追踪同一个目标，每帧造成 dps × dt 伤害
func (s *TowerSystem) updateLaser(tower *components.TowerComponent, laser *components.LaserComponent, deltaTime float64) {
	if !s.targeting.TrackTarget(&tower.Target, tower.Position, tower.TargetingRange) {
		target, ok := s.targeting.AcquireTarget(tower.Position, tower.TargetingRange)
		if !ok {
			laser.BeamLength = 0
			return
		}
		tower.Target = target
	}

	point, _ := s.targeting.TargetPosition(tower.Target)
	turret := tower.Position.Add(utils.Vec3{Y: laser.TurretHeight})
	laser.TurretYaw, laser.TurretPitch = utils.LookRotation(turret, point)
	laser.BeamLength = turret.Distance(point)
	laser.BeamEnd = point
	ApplyDamage(s.em, tower.Target, laser.DamagePerSecond*deltaTime)
}

// updateMortar 按射速积累发射进度，每满 1 向随机目标发射一枚炮弹
// 没有目标时进度停在 0.999，目标出现后立即开火
func (s *TowerSystem) updateMortar(tower *components.TowerComponent, mortar *components.MortarComponent, deltaTime float64) {
	mortar.LaunchProgress += mortar.ShotsPerSecond * deltaTime
	for mortar.LaunchProgress >= 1 {
		target, ok := s.targeting.AcquireTarget(tower.Position, tower.TargetingRange)
		if !ok {
			tower.Target = ecs.InvalidEntity
			mortar.LaunchProgress = 0.999
			return
		}
		tower.Target = target
		s.launch(tower, mortar, target)
		mortar.LaunchProgress--
	}
}

func (s *TowerSystem) launch(tower *components.TowerComponent, mortar *components.MortarComponent, target ecs.EntityID) {
	launchPoint := tower.Position.Add(utils.Vec3{Y: mortar.MortarHeight})
	targetPoint, _ := s.targeting.TargetPosition(target)
	targetPoint.Y = 0

	velocity, yaw, pitch := BallisticVelocity(launchPoint, targetPoint, mortar.LaunchSpeed)
	mortar.MortarYaw, mortar.MortarPitch = yaw, pitch
	mortar.ShellsFired++

	if s.war != nil {
		s.war.SpawnShell(launchPoint, targetPoint, velocity, mortar.BlastRadius, mortar.Damage)
	}
}

// MortarLaunchSpeed 计算刚好能打到射程边缘的发射速度
//
// 参数:
//   - targetingRange: 射程
//   - mortarHeight: 炮口离地高度
func MortarLaunchSpeed(targetingRange, mortarHeight float64) float64 {
	x := targetingRange + 0.25001
	y := -mortarHeight
	return math.Sqrt(Gravity * (y + math.Sqrt(x*x+y*y)))
}

// BallisticVelocity 计算以 speed 从 launch 打到 target 的高抛初速度
//
// 返回:
//   - velocity: 初速度
//   - yaw, pitch: 炮管朝向（度）
func BallisticVelocity(launch, target utils.Vec3, speed float64) (velocity utils.Vec3, yaw, pitch float64) {
	dx := target.X - launch.X
	dz := target.Z - launch.Z
	x := math.Sqrt(dx*dx + dz*dz)
	y := -(launch.Y - target.Y)

	if x < 1e-6 {
		return utils.Vec3{Y: speed}, 0, 90
	}
	dirX, dirZ := dx/x, dz/x

	s2 := speed * speed
	r := s2*s2 - Gravity*(Gravity*x*x+2*y*s2)
	if r < 0 {
		// 超出射程时判别式取 0，仍按最远距离的仰角发射
		r = 0
	}
	tanTheta := (s2 + math.Sqrt(r)) / (Gravity * x)
	cosTheta := math.Cos(math.Atan(tanTheta))
	sinTheta := cosTheta * tanTheta

	velocity = utils.Vec3{
		X: speed * cosTheta * dirX,
		Y: speed * sinTheta,
		Z: speed * cosTheta * dirZ,
	}
	yaw = math.Atan2(dirX, dirZ) * 180 / math.Pi
	pitch = math.Atan(tanTheta) * 180 / math.Pi
	return velocity, yaw, pitch
}
