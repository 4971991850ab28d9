package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/gonewx/towerdefense/pkg/board"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// testConfig 7x3 棋盘，终点在中心 (3,1)，出生点在 (0,0)
// 敌人属性固定，剧本只有一轮三个敌人
func testConfig() *config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Board = config.BoardConfig{Width: 7, Height: 3}
	cfg.Player.StartingHealth = 2
	enemy := config.EnemyConfig{
		Scale:      config.Fixed(1),
		Speed:      config.Fixed(1),
		PathOffset: config.Fixed(0),
		Health:     config.Fixed(10),
		Animation: config.AnimationConfig{
			MoveDuration:       1,
			IntroDuration:      1,
			OutroDuration:      1,
			DyingDuration:      1,
			MoveAnimationSpeed: 1,
		},
	}
	cfg.EnemyFactories = map[string]config.EnemyFactoryConfig{
		config.DefaultFactoryName: {"small": enemy, "medium": enemy, "large": enemy},
	}
	cfg.Scenario = config.ScenarioConfig{
		Cycles: 1,
		Waves: []config.WaveConfig{{Sequences: []config.SpawnSequenceConfig{
			{Factory: config.DefaultFactoryName, Type: "small", Amount: 3, Cooldown: 1},
		}}},
	}
	return cfg
}

func newTestGame(t *testing.T, cfg *config.GameConfig) *Game {
	t.Helper()
	g, err := NewGame(cfg, rand.New(rand.NewSource(5)), testLogger())
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g
}

// rayAt 从正上方垂直射向格子中心
func rayAt(b *board.Board, index int) utils.Ray {
	p := b.Tile(index).Position()
	return utils.Ray{Origin: utils.Vec3{X: p.X, Y: 10, Z: p.Z}, Direction: utils.Vec3{Y: -1}}
}

func TestNewGameDefaults(t *testing.T) {
	g := newTestGame(t, nil)
	if w, h := g.Board().Size(); w != config.DefaultBoardWidth || h != config.DefaultBoardHeight {
		t.Errorf("board %dx%d, want default", w, h)
	}
	if g.PlayerHealth() != config.DefaultStartingHealth {
		t.Errorf("health = %d", g.PlayerHealth())
	}
	if names := g.EnemyFactoryNames(); len(names) != 1 || names[0] != config.DefaultFactoryName {
		t.Errorf("factories = %v", names)
	}
	if g.Stats().GamesStarted != 1 {
		t.Errorf("games started = %d, want 1", g.Stats().GamesStarted)
	}
}

func TestNewGameInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Scenario.Waves[0].Sequences[0].Factory = "missing"
	_, err := NewGame(cfg, nil, testLogger())
	if err == nil || !strings.Contains(err.Error(), "invalid game config") {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestSpawnEnemy(t *testing.T) {
	g := newTestGame(t, testConfig())
	if err := g.SpawnEnemy("nowhere", types.EnemySmall); err == nil {
		t.Error("unknown factory should fail")
	}
	if err := g.SpawnEnemy(config.DefaultFactoryName, types.EnemyLarge); err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	if g.EnemyCount() != 1 || g.Stats().Spawned != 1 {
		t.Errorf("enemies=%d spawned=%d, want 1/1", g.EnemyCount(), g.Stats().Spawned)
	}
}

func TestRandomSpawnPoint(t *testing.T) {
	g := newTestGame(t, testConfig())
	b := g.Board()
	b.ToggleSpawnPoint(20)
	if b.SpawnPointCount() != 2 {
		t.Fatal("setup: expected two spawn points")
	}
	for i := 0; i < 40; i++ {
		if err := g.SpawnEnemy(config.DefaultFactoryName, types.EnemySmall); err != nil {
			t.Fatal(err)
		}
	}
	var snap Snapshot
	g.Publish(&snap)
	used := map[float64]bool{}
	for _, e := range snap.Enemies {
		used[e.ModelPosition.X] = true
	}
	if len(used) != 2 {
		t.Errorf("enemies should spawn on both spawn points, got x positions %v", used)
	}
}

func TestEnemiesReachDestinationCostHealth(t *testing.T) {
	g := newTestGame(t, testConfig())

	const dt = 1.0 / 60
	for i := 0; i < 60*30 && g.Stats().GamesStarted < 2; i++ {
		g.Tick(dt)
	}
	st := g.Stats()
	if st.GamesStarted != 2 {
		t.Fatal("losing all health should start a new game")
	}
	if st.Reached != 2 || st.Killed != 0 {
		t.Errorf("reached=%d killed=%d, want 2/0", st.Reached, st.Killed)
	}
	if g.PlayerHealth() != 2 {
		t.Errorf("health should be reset, got %d", g.PlayerHealth())
	}
	// 新一局的剧本在同一帧开始生成
	if g.EnemyCount() != 1 {
		t.Errorf("enemies = %d, want 1 from the new scenario", g.EnemyCount())
	}
}

func TestTowersKillEnemies(t *testing.T) {
	cfg := testConfig()
	cfg.Towers.Laser.TargetingRange = 7
	g := newTestGame(t, cfg)

	// 右上角放激光塔，不影响寻路
	g.HandleTouch(rayAt(g.Board(), 20), true)
	if c := g.Board().Tile(20).Content(); c.Type != board.ContentTower || c.TowerType != types.TowerLaser {
		t.Fatalf("expected laser tower, got %+v", c)
	}

	const dt = 1.0 / 60
	for i := 0; i < 60*30 && g.Stats().GamesStarted < 2; i++ {
		g.Tick(dt)
	}
	st := g.Stats()
	if st.GamesStarted != 2 {
		t.Fatal("finishing the scenario should start a new game")
	}
	if st.Killed != 3 || st.Reached != 0 {
		t.Errorf("killed=%d reached=%d, want 3/0", st.Killed, st.Reached)
	}
	if st.Spawned != 4 {
		t.Errorf("spawned = %d, want 3 plus the first enemy of the new game", st.Spawned)
	}
	if g.Board().Tile(20).Content().Type != board.ContentEmpty {
		t.Error("new game should clear the board")
	}
}

func TestMortarGame(t *testing.T) {
	cfg := testConfig()
	cfg.Towers.Mortar.TargetingRange = 7
	cfg.Towers.Mortar.Damage = 20
	// 慢速敌人在炮弹飞行期间不会走出爆炸范围
	fc := cfg.EnemyFactories[config.DefaultFactoryName]
	small := fc["small"]
	small.Speed = config.Fixed(0.2)
	fc["small"] = small
	g := newTestGame(t, cfg)

	g.SelectTower(types.TowerMortar)
	g.HandleTouch(rayAt(g.Board(), 20), true)

	const dt = 1.0 / 60
	var snap Snapshot
	sawShell, sawExplosion := false, false
	for i := 0; i < 60*30 && g.Stats().GamesStarted < 2; i++ {
		g.Tick(dt)
		g.Publish(&snap)
		sawShell = sawShell || len(snap.Shells) > 0
		sawExplosion = sawExplosion || len(snap.Explosions) > 0
	}
	if !sawShell || !sawExplosion {
		t.Errorf("expected shells and explosions, shell=%v explosion=%v", sawShell, sawExplosion)
	}
	if g.Stats().Killed == 0 {
		t.Error("mortar should kill at least one enemy")
	}
}

func TestInputForwarding(t *testing.T) {
	g := newTestGame(t, testConfig())
	b := g.Board()

	g.HandleTouch(rayAt(b, 8), false)
	if b.Tile(8).Content().Type != board.ContentWall {
		t.Error("click should place a wall")
	}
	g.HandleAlternativeTouch(rayAt(b, 6), false)
	if b.Tile(6).Content().Type != board.ContentSpawnPoint {
		t.Error("right click should place a spawn point")
	}
	g.HandleAlternativeTouch(rayAt(b, 14), true)
	if b.Tile(14).Content().Type != board.ContentDestination {
		t.Error("shift right click should place a destination")
	}

	// 射线没有打到棋盘
	g.HandleTouch(utils.Ray{Origin: utils.Vec3{X: 100, Y: 10}, Direction: utils.Vec3{Y: -1}}, false)
	g.HandleTouch(utils.Ray{Origin: utils.Vec3{Y: 10}, Direction: utils.Vec3{Y: 1}}, false)
}

func TestPauseAndPlaySpeed(t *testing.T) {
	g := newTestGame(t, testConfig())

	g.SetPlaySpeed(20)
	if g.PlaySpeed() != MaxPlaySpeed {
		t.Errorf("play speed = %v, want %v", g.PlaySpeed(), MaxPlaySpeed)
	}
	g.SetPlaySpeed(0.5)
	if g.PlaySpeed() != MinPlaySpeed {
		t.Errorf("play speed = %v, want %v", g.PlaySpeed(), MinPlaySpeed)
	}

	g.SetPlaySpeed(2)
	g.Tick(0.5)
	if st := g.Stats(); st.SimTime != 1 {
		t.Errorf("sim time = %v, want 1", st.SimTime)
	}

	g.TogglePause()
	if !g.Paused() || g.TimeScale() != 0 {
		t.Fatal("game should be paused")
	}
	before := g.Stats()
	var a, b Snapshot
	g.Publish(&a)
	for i := 0; i < 10; i++ {
		g.Tick(0.1)
	}
	g.Publish(&b)
	if g.Stats().SimTime != before.SimTime {
		t.Error("paused game should not advance time")
	}
	if len(a.Enemies) != len(b.Enemies) {
		t.Fatalf("enemy count changed while paused")
	}
	for i := range a.Enemies {
		if a.Enemies[i].ModelPosition != b.Enemies[i].ModelPosition {
			t.Error("enemies should not move while paused")
		}
	}

	g.TogglePause()
	if g.TimeScale() != 2 {
		t.Errorf("time scale = %v, want 2 after unpausing", g.TimeScale())
	}
}

func TestPublish(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Board().ToggleTower(20, types.TowerLaser)
	g.Tick(0.1)

	var snap Snapshot
	g.Publish(&snap)
	if !snap.Complete {
		t.Fatal("snapshot should be complete")
	}
	if len(snap.Tiles) != 21 || snap.Info.Width != 7 || snap.Info.Height != 3 {
		t.Errorf("tiles=%d size=%dx%d", len(snap.Tiles), snap.Info.Width, snap.Info.Height)
	}
	if len(snap.Enemies) != g.EnemyCount() || len(snap.Enemies) != 1 {
		t.Errorf("enemies = %d, want 1", len(snap.Enemies))
	}
	if len(snap.Towers) != 1 || snap.Towers[0].TileIndex != 20 {
		t.Errorf("towers = %+v", snap.Towers)
	}
	e := snap.Enemies[0]
	if e.HealthRatio != 1 || e.Weights[0]+e.Weights[1]+e.Weights[2]+e.Weights[3] != 1 {
		t.Errorf("unexpected enemy view %+v", e)
	}

	tile, ok := snap.Tile(3, 1)
	if !ok || tile.Content != board.ContentDestination || tile.HasArrow {
		t.Errorf("destination tile = %+v", tile)
	}
	tile, _ = snap.Tile(0, 0)
	if !tile.HasArrow {
		t.Error("spawn tile should show its path arrow")
	}

	g.Board().SetShowPaths(false)
	g.Publish(&snap)
	if tile, _ := snap.Tile(0, 0); tile.HasArrow {
		t.Error("arrows hidden when path display is off")
	}
	if _, ok := snap.Tile(7, 0); ok {
		t.Error("out-of-range tile lookup should fail")
	}
}

func TestBeginNewGame(t *testing.T) {
	g := newTestGame(t, testConfig())
	b := g.Board()
	b.ToggleWall(8)
	b.ToggleTower(20, types.TowerMortar)
	for i := 0; i < 120; i++ {
		g.Tick(1.0 / 60)
	}
	g.EnemyReachedDestination()
	if g.EnemyCount() == 0 || g.PlayerHealth() != 1 {
		t.Fatalf("setup: enemies=%d health=%d", g.EnemyCount(), g.PlayerHealth())
	}

	g.BeginNewGame()
	if g.EnemyCount() != 0 {
		t.Errorf("enemies = %d, want 0", g.EnemyCount())
	}
	if g.PlayerHealth() != 2 {
		t.Errorf("health = %d, want 2", g.PlayerHealth())
	}
	if b.Tile(8).Content().Type != board.ContentEmpty || b.UpdatingCount() != 0 {
		t.Error("board should be cleared")
	}
	if g.EntityManager().EntityCount() != 0 {
		t.Errorf("entities left after new game: %d", g.EntityManager().EntityCount())
	}
	f, _ := g.EnemyFactory(config.DefaultFactoryName)
	if f.Active() != 0 {
		t.Errorf("factory still owns %d enemies", f.Active())
	}
}

func TestStartingTowerLayout(t *testing.T) {
	cfg := testConfig()
	cfg.Board.Towers = []config.TowerPlacement{
		{X: 6, Y: 2, Type: "laser"},
		{X: 1, Y: 0, Type: "mortar"},
		{X: 0, Y: 1, Type: "laser"}, // 与 (1,0) 一起切断出生点，被拒绝
		{X: 3, Y: 1, Type: "laser"}, // 终点，跳过
	}
	g := newTestGame(t, cfg)

	check := func(stage string) {
		t.Helper()
		b := g.Board()
		if c := b.Tile(20).Content(); c.Type != board.ContentTower || c.TowerType != types.TowerLaser {
			t.Errorf("%s: tile 20 = %+v, want laser", stage, c)
		}
		if c := b.Tile(1).Content(); c.Type != board.ContentTower || c.TowerType != types.TowerMortar {
			t.Errorf("%s: tile 1 = %+v, want mortar", stage, c)
		}
		if b.Tile(7).Content().Type != board.ContentEmpty {
			t.Errorf("%s: blocking tower on tile 7 should be rejected", stage)
		}
		if b.Tile(10).Content().Type != board.ContentDestination {
			t.Errorf("%s: destination should not be replaced", stage)
		}
		if b.UpdatingCount() != 2 {
			t.Errorf("%s: updating = %d, want 2", stage, b.UpdatingCount())
		}
		g.EntityManager().RemoveMarkedEntities()
		var snap Snapshot
		g.Publish(&snap)
		if len(snap.Towers) != 2 {
			t.Errorf("%s: towers = %d, want 2", stage, len(snap.Towers))
		}
	}

	check("first game")
	g.Board().ToggleTower(20, types.TowerLaser)
	g.BeginNewGame()
	check("new game")
}
