package entities

import (
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/board"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/systems"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newDefaultFactory(t *testing.T, em *ecs.EntityManager) *EnemyFactory {
	t.Helper()
	f, err := NewEnemyFactory(em, config.DefaultFactoryName, config.DefaultEnemyFactory(),
		config.DefaultGameConfig(), rand.New(rand.NewSource(42)), testLogger())
	if err != nil {
		t.Fatalf("NewEnemyFactory failed: %v", err)
	}
	return f
}

func TestEnemyFactoryGet(t *testing.T) {
	em := ecs.NewEntityManager()
	f := newDefaultFactory(t, em)
	ranges := config.DefaultEnemyFactory()

	for _, et := range types.AllEnemyTypes() {
		t.Run(et.String(), func(t *testing.T) {
			id, err := f.Get(et)
			if err != nil {
				t.Fatalf("Get(%s) failed: %v", et, err)
			}
			cfg := ranges[et.String()]

			enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, id)
			if !ok {
				t.Fatal("missing EnemyComponent")
			}
			if enemy.Type != et || enemy.OriginFactory != components.EnemyReclaimer(f) {
				t.Error("enemy should remember its type and origin factory")
			}
			if enemy.Phase != components.EnemyPhaseIntro {
				t.Errorf("phase = %v, want intro", enemy.Phase)
			}
			inRange := func(name string, v float64, r config.FloatRange) {
				if v < r.Min || v > r.Max {
					t.Errorf("%s %v outside [%v, %v]", name, v, r.Min, r.Max)
				}
			}
			inRange("scale", enemy.Scale, cfg.Scale)
			inRange("speed", enemy.Speed, cfg.Speed)
			inRange("path offset", enemy.PathOffset, cfg.PathOffset)

			health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
			inRange("health", health.Health, cfg.Health)
			if health.MaxHealth != health.Health {
				t.Error("new enemy should be at full health")
			}

			tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
			if tr.Scale != enemy.Scale {
				t.Error("transform scale should match enemy scale")
			}

			animator, _ := ecs.GetComponent[*components.EnemyAnimatorComponent](em, id)
			if animator.CurrentClip != components.ClipIntro || !animator.Playing {
				t.Error("animator should be playing intro")
			}

			tp, _ := ecs.GetComponent[*components.TargetPointComponent](em, id)
			if tp.Enabled {
				t.Error("target point should start disabled")
			}
		})
	}
	if f.Spawned() != 3 || f.Active() != 3 {
		t.Errorf("spawned=%d active=%d, want 3/3", f.Spawned(), f.Active())
	}
}

func TestEnemyFactoryUnknownType(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultEnemyFactory()
	delete(cfg, "large")
	f, err := NewEnemyFactory(em, "partial", cfg, nil, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Get(types.EnemyLarge)
	if err == nil || !strings.Contains(err.Error(), "no enemy type 'large'") {
		t.Errorf("expected missing type error, got %v", err)
	}
	if em.EntityCount() != 0 {
		t.Error("failed Get should not create an entity")
	}
}

func TestNewEnemyFactoryInvalid(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultEnemyFactory()
	bad := cfg["small"]
	bad.PathOffset = config.NewFloatRange(-0.5, 0)
	cfg["small"] = bad

	_, err := NewEnemyFactory(em, "bad", cfg, nil, nil, testLogger())
	if err == nil || !strings.Contains(err.Error(), "invalid enemy factory 'bad'") {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := NewEnemyFactory(nil, "x", config.DefaultEnemyFactory(), nil, nil, nil); err == nil {
		t.Error("nil entity manager should be rejected")
	}
}

func TestEnemyFactoryReclaim(t *testing.T) {
	em := ecs.NewEntityManager()
	f := newDefaultFactory(t, em)
	id, _ := f.Get(types.EnemySmall)

	f.Reclaim(id)
	f.Reclaim(id)
	if f.Reclaimed() != 1 || f.Active() != 0 {
		t.Errorf("reclaimed=%d active=%d, want 1/0", f.Reclaimed(), f.Active())
	}
	if em.IsAlive(id) {
		t.Error("reclaimed enemy should be marked for removal")
	}
}

// TestEnemyFactoryLifecycle 工厂生成的敌人走完整条路径后被交还
func TestEnemyFactoryLifecycle(t *testing.T) {
	em := ecs.NewEntityManager()
	f := newDefaultFactory(t, em)
	b, err := board.NewBoard(5, 5, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	enemies := systems.NewEnemySystem(em, b, nil, testLogger())

	id, _ := f.Get(types.EnemySmall)
	enemies.SpawnOn(id, b.SpawnPoint(0))
	for i := 0; i < 10000 && em.IsAlive(id); i++ {
		enemies.Update(0.02)
	}
	if em.IsAlive(id) || f.Reclaimed() != 1 {
		t.Fatal("enemy should be reclaimed by its factory")
	}
}

func TestTileContentFactoryTowers(t *testing.T) {
	em := ecs.NewEntityManager()
	towers := config.DefaultGameConfig().Towers
	f := NewTileContentFactory(em, towers, testLogger())
	b, err := board.NewBoard(3, 3, f, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	b.ToggleTower(3, types.TowerLaser)
	c := b.Tile(3).Content()
	if c.Type != board.ContentTower || c.Entity == ecs.InvalidEntity {
		t.Fatalf("expected laser tower entity, got %+v", c)
	}
	tower, _ := ecs.GetComponent[*components.TowerComponent](em, c.Entity)
	if tower.Position != b.Tile(3).Position() || tower.TileIndex != 3 {
		t.Errorf("tower position = %v, want %v", tower.Position, b.Tile(3).Position())
	}
	if tower.TargetingRange != towers.Laser.TargetingRange {
		t.Errorf("range = %v, want %v", tower.TargetingRange, towers.Laser.TargetingRange)
	}
	if _, ok := ecs.GetComponent[*components.LaserComponent](em, c.Entity); !ok {
		t.Error("laser tower should have a LaserComponent")
	}

	// 换成迫击炮：旧实体被回收
	laserID := c.Entity
	b.ToggleTower(3, types.TowerMortar)
	c = b.Tile(3).Content()
	if em.IsAlive(laserID) {
		t.Error("replaced laser should be reclaimed")
	}
	mortar, ok := ecs.GetComponent[*components.MortarComponent](em, c.Entity)
	if !ok {
		t.Fatal("mortar tower should have a MortarComponent")
	}
	want := systems.MortarLaunchSpeed(towers.Mortar.TargetingRange, towers.Mortar.MortarHeight)
	if mortar.LaunchSpeed != want {
		t.Errorf("launch speed = %v, want %v", mortar.LaunchSpeed, want)
	}

	// 同类型再次切换：移除
	mortarID := c.Entity
	b.ToggleTower(3, types.TowerMortar)
	if b.Tile(3).Content().Type != board.ContentEmpty || em.IsAlive(mortarID) {
		t.Error("toggling the same tower type should remove it")
	}
}

func TestTileContentFactoryRejectedTower(t *testing.T) {
	em := ecs.NewEntityManager()
	f := NewTileContentFactory(em, config.DefaultGameConfig().Towers, testLogger())
	b, err := board.NewBoard(5, 1, f, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	// 出生点不能被塔替换
	b.ToggleTower(0, types.TowerLaser)
	if b.Tile(0).Content().Type != board.ContentSpawnPoint {
		t.Fatal("spawn point should not be replaced")
	}

	// 格子 1 放塔会切断出生点，放置被撤销，塔实体被回收
	b.ToggleTower(1, types.TowerLaser)
	if b.Tile(1).Content().Type != board.ContentEmpty {
		t.Fatal("blocking tower should be rejected")
	}
	if b.UpdatingCount() != 0 {
		t.Error("rejected tower should not be updated")
	}
	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Errorf("entity count = %d, want 0", em.EntityCount())
	}

	b.ToggleTower(4, types.TowerLaser)
	if b.Tile(4).Content().Type != board.ContentTower {
		t.Fatal("tower on the board edge keeps every tile reachable")
	}
}

func TestWarFactory(t *testing.T) {
	em := ecs.NewEntityManager()
	f := NewWarFactory(em, 0)

	shell := f.SpawnShell(utils.Vec3{Y: 1}, utils.Vec3{X: 2}, utils.Vec3{Y: 3}, 1, 10)
	sc, ok := ecs.GetComponent[*components.ShellComponent](em, shell)
	if !ok || sc.Position != (utils.Vec3{Y: 1}) || sc.Damage != 10 {
		t.Errorf("unexpected shell %+v", sc)
	}

	ex := f.SpawnExplosion(utils.Vec3{X: 2}, 1, 10)
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, ex)
	if !ok || lifetime.MaxLifetime != config.DefaultExplosionDuration {
		t.Errorf("explosion lifetime = %+v", lifetime)
	}

	var _ systems.WarSpawner = f
}
