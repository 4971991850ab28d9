package config

import (
	"fmt"

	"github.com/gonewx/towerdefense/pkg/types"
)

// EnemyFactoryConfig 一个敌人工厂的配置
// key: 敌人类型字符串（"small", "medium", "large"）
type EnemyFactoryConfig map[string]EnemyConfig

// EnemyConfig 单一敌人类型的属性范围
//
// 每次生成敌人时在各范围内独立取随机值。
type EnemyConfig struct {
	// Scale 模型缩放
	Scale FloatRange `yaml:"scale"`

	// Speed 移动速度（格/秒）
	Speed FloatRange `yaml:"speed"`

	// PathOffset 相对路径中线的横向偏移（格），必须落在 (-0.5, 0.5)
	PathOffset FloatRange `yaml:"pathOffset"`

	// Health 初始生命值
	Health FloatRange `yaml:"health"`

	// Animation 动画片段配置
	Animation AnimationConfig `yaml:"animation"`
}

// AnimationConfig 敌人动画片段时长（秒）
//
// Move 为循环片段，MoveDuration 仅用于显示时的时间折返。
// AppearDuration/DisappearDuration 为 0 表示没有该叠加片段。
type AnimationConfig struct {
	MoveDuration       float64 `yaml:"moveDuration"`
	IntroDuration      float64 `yaml:"introDuration"`
	OutroDuration      float64 `yaml:"outroDuration"`
	DyingDuration      float64 `yaml:"dyingDuration"`
	AppearDuration     float64 `yaml:"appearDuration"`
	DisappearDuration  float64 `yaml:"disappearDuration"`
	MoveAnimationSpeed float64 `yaml:"moveAnimationSpeed"`
}

// HasAppear 是否配置了出现叠加片段
func (c AnimationConfig) HasAppear() bool {
	return c.AppearDuration > 0
}

// HasDisappear 是否配置了消失叠加片段
func (c AnimationConfig) HasDisappear() bool {
	return c.DisappearDuration > 0
}

// Validate 验证工厂内每个类型的配置
func (f EnemyFactoryConfig) Validate() error {
	if len(f) == 0 {
		return fmt.Errorf("no enemy types configured")
	}
	for name, cfg := range f {
		if types.EnemyTypeFromString(name) == types.EnemyUnknown {
			return fmt.Errorf("unknown enemy type '%s'", name)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("enemy type '%s': %w", name, err)
		}
	}
	return nil
}

// Get 获取指定类型的配置
func (f EnemyFactoryConfig) Get(t types.EnemyType) (EnemyConfig, bool) {
	cfg, ok := f[t.String()]
	return cfg, ok
}

// Validate 验证敌人配置
func (c EnemyConfig) Validate() error {
	for _, r := range []struct {
		name string
		r    FloatRange
	}{
		{"scale", c.Scale},
		{"speed", c.Speed},
		{"pathOffset", c.PathOffset},
		{"health", c.Health},
	} {
		if err := r.r.validate(r.name); err != nil {
			return err
		}
	}

	if c.Scale.Min <= 0 {
		return fmt.Errorf("scale should be > 0, got min %.2f", c.Scale.Min)
	}
	if c.Speed.Min <= 0 {
		return fmt.Errorf("speed should be > 0, got min %.2f", c.Speed.Min)
	}
	if c.Health.Min <= 0 {
		return fmt.Errorf("health should be > 0, got min %.2f", c.Health.Min)
	}
	// 偏移必须留在格子内：转弯半径 0.5 ∓ offset 需要大于 0
	if c.PathOffset.Min <= -0.5 || c.PathOffset.Max >= 0.5 {
		return fmt.Errorf("pathOffset should be within (-0.5, 0.5), got [%.2f, %.2f]",
			c.PathOffset.Min, c.PathOffset.Max)
	}

	return c.Animation.Validate()
}

// Validate 验证动画时长
func (c AnimationConfig) Validate() error {
	durations := map[string]float64{
		"moveDuration":      c.MoveDuration,
		"introDuration":     c.IntroDuration,
		"outroDuration":     c.OutroDuration,
		"dyingDuration":     c.DyingDuration,
		"appearDuration":    c.AppearDuration,
		"disappearDuration": c.DisappearDuration,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("animation %s should be >= 0, got %.2f", name, d)
		}
	}
	if c.MoveAnimationSpeed <= 0 {
		return fmt.Errorf("animation moveAnimationSpeed should be > 0, got %.2f", c.MoveAnimationSpeed)
	}
	return nil
}
