package game

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

// Publish 把当前状态推送给渲染协作者
func (g *Game) Publish(sink RenderSink) {
	w, h := g.board.Size()
	sink.BeginFrame(FrameInfo{
		Width:         w,
		Height:        h,
		PlayerHealth:  g.playerHealth,
		Paused:        g.paused,
		PlaySpeed:     g.playSpeed,
		SelectedTower: g.selectedTower,
		ShowPaths:     g.board.ShowPaths(),
		Cycle:         g.scenario.Cycle(),
		Wave:          g.scenario.Wave(),
		Stats:         g.stats,
	})

	for i := 0; i < g.board.TileCount(); i++ {
		tile := g.board.Tile(i)
		x, y := tile.Coord()
		c := tile.Content()
		v := TileView{Index: i, X: x, Y: y, Position: tile.Position(), Content: c.Type, Tower: c.TowerType}
		if g.board.ShowPaths() {
			v.Arrow, v.HasArrow = tile.Arrow()
		}
		sink.SetTile(v)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](g.em) {
		if !g.em.IsAlive(id) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](g.em, id)
		v := EnemyView{ID: id, Type: enemy.Type, Phase: enemy.Phase, Scale: enemy.Scale}
		if tr, ok := ecs.GetComponent[*components.TransformComponent](g.em, id); ok {
			v.ModelPosition = tr.ModelPosition()
			v.Yaw = tr.Yaw
		}
		if health, ok := ecs.GetComponent[*components.HealthComponent](g.em, id); ok {
			v.HealthRatio = health.Ratio()
		}
		if animator, ok := ecs.GetComponent[*components.EnemyAnimatorComponent](g.em, id); ok {
			for c := range animator.Clips {
				v.Weights[c] = animator.Clips[c].Weight
			}
		}
		sink.SetEnemy(v)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.TowerComponent](g.em) {
		if !g.em.IsAlive(id) {
			continue
		}
		tower, _ := ecs.GetComponent[*components.TowerComponent](g.em, id)
		v := TowerView{ID: id, Type: tower.Type, TileIndex: tower.TileIndex, Position: tower.Position}
		if laser, ok := ecs.GetComponent[*components.LaserComponent](g.em, id); ok {
			v.Yaw, v.Pitch = laser.TurretYaw, laser.TurretPitch
			v.BeamLength, v.BeamEnd = laser.BeamLength, laser.BeamEnd
		}
		if mortar, ok := ecs.GetComponent[*components.MortarComponent](g.em, id); ok {
			v.Yaw, v.Pitch = mortar.MortarYaw, mortar.MortarPitch
		}
		sink.SetTower(v)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ShellComponent](g.em) {
		if !g.em.IsAlive(id) {
			continue
		}
		shell, _ := ecs.GetComponent[*components.ShellComponent](g.em, id)
		sink.SetShell(ShellView{ID: id, Position: shell.Position, Yaw: shell.Yaw, Pitch: shell.Pitch})
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](g.em) {
		if !g.em.IsAlive(id) {
			continue
		}
		ex, _ := ecs.GetComponent[*components.ExplosionComponent](g.em, id)
		sink.SetExplosion(ExplosionView{ID: id, Position: ex.Position, Scale: ex.Scale, Opacity: ex.Opacity})
	}

	sink.EndFrame()
}
