package config

// 默认配置值
const (
	DefaultBoardWidth           = 11
	DefaultBoardHeight          = 11
	DefaultStartingHealth       = 10
	DefaultPlaySpeed            = 1.0
	DefaultTransitionSpeed      = 5.0
	DefaultTargetBufferSize     = 100
	DefaultTargetPointRadius    = 0.25
	DefaultTargetPointHeight    = 0.5
	DefaultLaserDamagePerSecond = 10.0
	DefaultLaserRange           = 1.5
	DefaultMortarShotsPerSecond = 1.0
	DefaultMortarBlastRadius    = 1.0
	DefaultMortarDamage         = 10.0
	DefaultMortarRange          = 3.5
	DefaultExplosionDuration    = 0.5
)

// DefaultFactoryName 默认敌人工厂名
const DefaultFactoryName = "default"

// DefaultGameConfig 返回内置默认配置
//
// LoadGameConfig 在此基础上覆盖 YAML 中出现的字段。
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Board: BoardConfig{
			Width:  DefaultBoardWidth,
			Height: DefaultBoardHeight,
		},
		Player: PlayerConfig{
			StartingHealth: DefaultStartingHealth,
			PlaySpeed:      DefaultPlaySpeed,
		},
		Animation: GlobalAnimationConfig{
			TransitionSpeed: DefaultTransitionSpeed,
		},
		Targeting: TargetingConfig{
			BufferSize:        DefaultTargetBufferSize,
			TargetPointRadius: DefaultTargetPointRadius,
			TargetPointHeight: DefaultTargetPointHeight,
		},
		EnemyFactories: map[string]EnemyFactoryConfig{
			DefaultFactoryName: DefaultEnemyFactory(),
		},
		Towers: TowersConfig{
			Laser: LaserConfig{
				TargetingRange:  DefaultLaserRange,
				DamagePerSecond: DefaultLaserDamagePerSecond,
				TurretHeight:    0.5,
			},
			Mortar: MortarConfig{
				TargetingRange:    DefaultMortarRange,
				ShotsPerSecond:    DefaultMortarShotsPerSecond,
				BlastRadius:       DefaultMortarBlastRadius,
				Damage:            DefaultMortarDamage,
				MortarHeight:      0.25,
				ExplosionDuration: DefaultExplosionDuration,
			},
		},
		Scenario: ScenarioConfig{
			Cycles:       0,
			CycleSpeedUp: 0.5,
			Waves: []WaveConfig{
				{Sequences: []SpawnSequenceConfig{
					{Factory: DefaultFactoryName, Type: "medium", Amount: 10, Cooldown: 1},
				}},
				{Sequences: []SpawnSequenceConfig{
					{Factory: DefaultFactoryName, Type: "small", Amount: 10, Cooldown: 0.5},
					{Factory: DefaultFactoryName, Type: "large", Amount: 3, Cooldown: 2},
				}},
			},
		},
	}
}

// DefaultEnemyFactory 返回三种体型的默认敌人配置
func DefaultEnemyFactory() EnemyFactoryConfig {
	anim := AnimationConfig{
		MoveDuration:       1.0,
		IntroDuration:      1.0,
		OutroDuration:      1.0,
		DyingDuration:      1.5,
		MoveAnimationSpeed: 1.0,
	}
	return EnemyFactoryConfig{
		"small": {
			Scale:      NewFloatRange(0.5, 0.7),
			Speed:      NewFloatRange(1.5, 2.0),
			PathOffset: NewFloatRange(-0.4, 0.4),
			Health:     NewFloatRange(10, 20),
			Animation:  anim,
		},
		"medium": {
			Scale:      NewFloatRange(0.8, 1.0),
			Speed:      NewFloatRange(1.0, 1.2),
			PathOffset: NewFloatRange(-0.25, 0.25),
			Health:     NewFloatRange(50, 100),
			Animation:  anim,
		},
		"large": {
			Scale:      NewFloatRange(1.3, 1.5),
			Speed:      NewFloatRange(0.5, 0.8),
			PathOffset: NewFloatRange(-0.1, 0.1),
			Health:     NewFloatRange(150, 200),
			Animation:  anim,
		},
	}
}
