package systems

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/board"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newBoard(t *testing.T, w, h int) *board.Board {
	t.Helper()
	b, err := board.NewBoard(w, h, nil, testLogger())
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return b
}

// quickAnimation Intro 时长为 0，敌人第一帧就开始移动
func quickAnimation() config.AnimationConfig {
	return config.AnimationConfig{
		MoveDuration:       1,
		IntroDuration:      0,
		OutroDuration:      1,
		DyingDuration:      1,
		MoveAnimationSpeed: 1,
	}
}

type reclaimRecorder struct {
	em        *ecs.EntityManager
	reclaimed []ecs.EntityID
}

func (r *reclaimRecorder) Reclaim(id ecs.EntityID) {
	r.reclaimed = append(r.reclaimed, id)
	r.em.DestroyEntity(id)
}

type reachedCounter struct{ n int }

func (c *reachedCounter) EnemyReachedDestination() { c.n++ }

type enemySpec struct {
	speed, offset, health, scale float64
	anim                         config.AnimationConfig
	factory                      components.EnemyReclaimer
}

func newEnemy(em *ecs.EntityManager, spec enemySpec) ecs.EntityID {
	if spec.scale == 0 {
		spec.scale = 1
	}
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Type:               types.EnemyMedium,
		OriginFactory:      spec.factory,
		Speed:              spec.speed,
		PathOffset:         spec.offset,
		Scale:              spec.scale,
		MoveAnimationSpeed: spec.anim.MoveAnimationSpeed,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{Scale: spec.scale})
	animator := &components.EnemyAnimatorComponent{}
	ConfigureAnimator(animator, spec.anim, config.DefaultTransitionSpeed)
	PlayIntro(animator)
	ecs.AddComponent(em, id, animator)
	ecs.AddComponent(em, id, &components.HealthComponent{Health: spec.health, MaxHealth: spec.health})
	ecs.AddComponent(em, id, &components.TargetPointComponent{
		Height:     config.DefaultTargetPointHeight,
		BaseRadius: config.DefaultTargetPointRadius,
	})
	return id
}

// placeMovingEnemy 直接把一个处于移动阶段的敌人放到世界坐标 pos
func placeMovingEnemy(em *ecs.EntityManager, pos utils.Vec3) ecs.EntityID {
	id := newEnemy(em, enemySpec{speed: 1, health: 100, anim: quickAnimation()})
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
	enemy.Phase = components.EnemyPhaseMoving
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	tr.Position = pos
	tp, _ := ecs.GetComponent[*components.TargetPointComponent](em, id)
	tp.Enabled = true
	return id
}

func healthOf(em *ecs.EntityManager, id ecs.EntityID) float64 {
	h, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	return h.Health
}

// fakeWar 直接在实体管理器中创建炮弹和爆炸
type fakeWar struct {
	em          *ecs.EntityManager
	shells      int
	explosions  int
	explodeTime float64
}

func (f *fakeWar) SpawnShell(launch, target, velocity utils.Vec3, blastRadius, damage float64) ecs.EntityID {
	f.shells++
	id := f.em.CreateEntity()
	ecs.AddComponent(f.em, id, &components.ShellComponent{
		LaunchPoint:    launch,
		TargetPoint:    target,
		LaunchVelocity: velocity,
		BlastRadius:    blastRadius,
		Damage:         damage,
		Position:       launch,
	})
	return id
}

func (f *fakeWar) SpawnExplosion(position utils.Vec3, radius, damage float64) ecs.EntityID {
	f.explosions++
	id := f.em.CreateEntity()
	ecs.AddComponent(f.em, id, &components.ExplosionComponent{Position: position, Radius: radius, Damage: damage})
	ecs.AddComponent(f.em, id, &components.LifetimeComponent{MaxLifetime: config.DefaultExplosionDuration})
	return id
}
