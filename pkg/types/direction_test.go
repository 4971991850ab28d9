package types

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/utils"
)

func TestDirectionChangeTo(t *testing.T) {
	tests := []struct {
		name string
		from Direction
		to   Direction
		want DirectionChange
	}{
		{"north forward", North, North, DirectionChangeNone},
		{"north to east", North, East, DirectionChangeTurnRight},
		{"north to west", North, West, DirectionChangeTurnLeft},
		{"north to south", North, South, DirectionChangeTurnAround},
		{"west to north wraps right", West, North, DirectionChangeTurnRight},
		{"east to south", East, South, DirectionChangeTurnRight},
		{"south to east", South, East, DirectionChangeTurnLeft},
		{"east to west", East, West, DirectionChangeTurnAround},
		{"none is forward", DirectionNone, East, DirectionChangeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.DirectionChangeTo(tt.to); got != tt.want {
				t.Errorf("%v -> %v: expected %v, got %v", tt.from, tt.to, tt.want, got)
			}
		})
	}
}

func TestDirectionAngleAndHalfVector(t *testing.T) {
	angles := map[Direction]float64{North: 0, East: 90, South: 180, West: 270, DirectionNone: 0}
	for d, want := range angles {
		if got := d.Angle(); got != want {
			t.Errorf("%v: expected angle %v, got %v", d, want, got)
		}
	}

	// 半向量长度为 0.5，且与相反方向互为相反数
	for _, d := range []Direction{North, East, South, West} {
		v := d.HalfVector()
		if v.Length() != 0.5 {
			t.Errorf("%v: expected half vector length 0.5, got %v", d, v.Length())
		}
		o := d.Opposite().HalfVector()
		if v.Add(o) != (utils.Vec3{}) {
			t.Errorf("%v: half vector should cancel with opposite, got %v + %v", d, v, o)
		}
	}
}

func TestEnemyTypeStringRoundTrip(t *testing.T) {
	for _, et := range AllEnemyTypes() {
		if got := EnemyTypeFromString(et.String()); got != et {
			t.Errorf("expected %v, got %v", et, got)
		}
	}
	if EnemyTypeFromString("giant") != EnemyUnknown {
		t.Error("unknown string should map to EnemyUnknown")
	}
}
