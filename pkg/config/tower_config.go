package config

import "fmt"

// TowersConfig 塔配置
type TowersConfig struct {
	Laser  LaserConfig  `yaml:"laser"`
	Mortar MortarConfig `yaml:"mortar"`
}

// LaserConfig 激光塔配置
type LaserConfig struct {
	// TargetingRange 索敌半径（格）
	TargetingRange float64 `yaml:"targetingRange"`

	// DamagePerSecond 每秒伤害
	DamagePerSecond float64 `yaml:"damagePerSecond"`

	// TurretHeight 炮塔离地高度，激光从这里射出
	TurretHeight float64 `yaml:"turretHeight"`
}

// MortarConfig 迫击炮塔配置
type MortarConfig struct {
	// TargetingRange 索敌半径（格）
	TargetingRange float64 `yaml:"targetingRange"`

	// ShotsPerSecond 每秒发射次数
	ShotsPerSecond float64 `yaml:"shotsPerSecond"`

	// BlastRadius 爆炸半径
	BlastRadius float64 `yaml:"blastRadius"`

	// Damage 每次爆炸对范围内敌人造成的伤害
	Damage float64 `yaml:"damage"`

	// MortarHeight 炮口离地高度
	MortarHeight float64 `yaml:"mortarHeight"`

	// ExplosionDuration 爆炸效果持续时间（秒）
	ExplosionDuration float64 `yaml:"explosionDuration"`
}

// Validate 验证塔配置
func (c TowersConfig) Validate() error {
	if c.Laser.TargetingRange <= 0 {
		return fmt.Errorf("laser targetingRange should be > 0, got %.2f", c.Laser.TargetingRange)
	}
	if c.Laser.DamagePerSecond <= 0 {
		return fmt.Errorf("laser damagePerSecond should be > 0, got %.2f", c.Laser.DamagePerSecond)
	}
	if c.Mortar.TargetingRange <= 0 {
		return fmt.Errorf("mortar targetingRange should be > 0, got %.2f", c.Mortar.TargetingRange)
	}
	if c.Mortar.ShotsPerSecond <= 0 {
		return fmt.Errorf("mortar shotsPerSecond should be > 0, got %.2f", c.Mortar.ShotsPerSecond)
	}
	if c.Mortar.BlastRadius <= 0 {
		return fmt.Errorf("mortar blastRadius should be > 0, got %.2f", c.Mortar.BlastRadius)
	}
	if c.Mortar.Damage < 0 {
		return fmt.Errorf("mortar damage should be >= 0, got %.2f", c.Mortar.Damage)
	}
	if c.Mortar.MortarHeight <= 0 {
		return fmt.Errorf("mortar mortarHeight should be > 0, got %.2f", c.Mortar.MortarHeight)
	}
	if c.Mortar.ExplosionDuration <= 0 {
		return fmt.Errorf("mortar explosionDuration should be > 0, got %.2f", c.Mortar.ExplosionDuration)
	}
	return nil
}
