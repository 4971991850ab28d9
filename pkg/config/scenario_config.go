package config

import (
	"fmt"

	"github.com/gonewx/towerdefense/pkg/types"
)

// ScenarioConfig 关卡剧本
//
// 剧本由若干波次组成，每个波次由若干生成序列顺序执行。
// 所有波次结束后进入下一轮循环，时间倍率增加 CycleSpeedUp。
type ScenarioConfig struct {
	// Cycles 循环次数，0 表示无限循环
	Cycles int `yaml:"cycles"`

	// CycleSpeedUp 每轮循环增加的时间倍率
	CycleSpeedUp float64 `yaml:"cycleSpeedUp"`

	// Waves 波次列表
	Waves []WaveConfig `yaml:"waves"`
}

// WaveConfig 单个波次
type WaveConfig struct {
	Sequences []SpawnSequenceConfig `yaml:"sequences"`
}

// SpawnSequenceConfig 生成序列：按冷却时间生成 Amount 个同类敌人
type SpawnSequenceConfig struct {
	// Factory 敌人工厂名
	Factory string `yaml:"factory"`

	// Type 敌人类型字符串
	Type string `yaml:"type"`

	// Amount 生成数量
	Amount int `yaml:"amount"`

	// Cooldown 两次生成之间的间隔（秒）
	Cooldown float64 `yaml:"cooldown"`
}

// EnemyType 返回序列的敌人类型
func (s SpawnSequenceConfig) EnemyType() types.EnemyType {
	return types.EnemyTypeFromString(s.Type)
}

// Validate 验证剧本结构
func (c ScenarioConfig) Validate() error {
	if c.Cycles < 0 {
		return fmt.Errorf("scenario cycles should be >= 0, got %d", c.Cycles)
	}
	if c.CycleSpeedUp < 0 {
		return fmt.Errorf("scenario cycleSpeedUp should be >= 0, got %.2f", c.CycleSpeedUp)
	}
	if len(c.Waves) == 0 {
		return fmt.Errorf("scenario has no waves")
	}
	for wi, wave := range c.Waves {
		if len(wave.Sequences) == 0 {
			return fmt.Errorf("scenario wave %d has no sequences", wi)
		}
		for si, seq := range wave.Sequences {
			if seq.EnemyType() == types.EnemyUnknown {
				return fmt.Errorf("scenario wave %d sequence %d: unknown enemy type '%s'", wi, si, seq.Type)
			}
			if seq.Amount < 1 {
				return fmt.Errorf("scenario wave %d sequence %d: amount should be >= 1, got %d", wi, si, seq.Amount)
			}
			if seq.Cooldown <= 0 {
				return fmt.Errorf("scenario wave %d sequence %d: cooldown should be > 0, got %.2f", wi, si, seq.Cooldown)
			}
		}
	}
	return nil
}
