package config

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/gonewx/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// GameConfig 塔防模拟的全部外部配置
//
// 包含棋盘尺寸、玩家生命、动画过渡速度、敌人工厂、塔参数和关卡剧本。
// 所有值在敌人/塔的生命周期内保持不变。
//
// 配置文件位置: data/game.yaml
type GameConfig struct {
	// Board 棋盘配置
	Board BoardConfig `yaml:"board"`

	// Player 玩家配置
	Player PlayerConfig `yaml:"player"`

	// Animation 全局动画参数
	Animation GlobalAnimationConfig `yaml:"animation"`

	// Targeting 索敌参数
	Targeting TargetingConfig `yaml:"targeting"`

	// EnemyFactories 敌人工厂表
	// key: 工厂名（剧本中引用），value: 按敌人类型（small/medium/large）的配置
	EnemyFactories map[string]EnemyFactoryConfig `yaml:"enemyFactories"`

	// Towers 塔配置
	Towers TowersConfig `yaml:"towers"`

	// Scenario 关卡剧本
	Scenario ScenarioConfig `yaml:"scenario"`
}

// BoardConfig 棋盘尺寸（格子数）和开局布局
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Towers 每局开始时放置的塔，按顺序放置
	// 会切断路径的位置在放置时被拒绝
	Towers []TowerPlacement `yaml:"towers"`
}

// TowerPlacement 开局布局中的一座塔
type TowerPlacement struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Type string `yaml:"type"` // laser / mortar
}

// TowerType 返回放置的塔类型
func (p TowerPlacement) TowerType() types.TowerType {
	t, _ := types.TowerTypeFromString(p.Type)
	return t
}

// ParseTowerPlacement 解析 "laser@3,1" 形式的布局描述
func ParseTowerPlacement(s string) (TowerPlacement, error) {
	typ, pos, ok := strings.Cut(s, "@")
	if !ok {
		return TowerPlacement{}, fmt.Errorf("tower placement '%s' should look like type@x,y", s)
	}
	xs, ys, ok := strings.Cut(pos, ",")
	if !ok {
		return TowerPlacement{}, fmt.Errorf("tower placement '%s' should look like type@x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return TowerPlacement{}, fmt.Errorf("failed to parse tower x in '%s': %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return TowerPlacement{}, fmt.Errorf("failed to parse tower y in '%s': %w", s, err)
	}
	p := TowerPlacement{X: x, Y: y, Type: strings.TrimSpace(typ)}
	if _, ok := types.TowerTypeFromString(p.Type); !ok {
		return TowerPlacement{}, fmt.Errorf("unknown tower type '%s'", p.Type)
	}
	return p, nil
}

// PlayerConfig 玩家配置
type PlayerConfig struct {
	// StartingHealth 初始生命值，每个抵达终点的敌人扣 1
	// 0 表示不会因生命耗尽而重开
	StartingHealth int `yaml:"startingHealth"`

	// PlaySpeed 非暂停状态下的时间倍率
	PlaySpeed float64 `yaml:"playSpeed"`
}

// GlobalAnimationConfig 全局动画参数
type GlobalAnimationConfig struct {
	// TransitionSpeed 动画交叉淡化速度（每秒），过渡时长 = 1 / TransitionSpeed
	TransitionSpeed float64 `yaml:"transitionSpeed"`
}

// TargetingConfig 空间查询参数
type TargetingConfig struct {
	// BufferSize 单次重叠查询最多返回的候选数量
	BufferSize int `yaml:"bufferSize"`

	// TargetPointRadius 目标点碰撞球半径（乘以敌人缩放）
	TargetPointRadius float64 `yaml:"targetPointRadius"`

	// TargetPointHeight 目标点离地高度（乘以敌人缩放）
	TargetPointHeight float64 `yaml:"targetPointHeight"`
}

// LoadGameConfig 加载游戏配置
//
// 从指定路径加载 YAML 配置，未出现的字段保留 DefaultGameConfig 的值。
//
// 参数:
//   - path: 配置文件路径（如 "data/game.yaml"）
//
// 返回:
//   - *GameConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 从 YAML 数据解析游戏配置
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 棋盘至少两个格子（一个出生点 + 一个终点）
//   - 过渡速度、缓冲区大小为正
//   - 每个敌人工厂、塔配置和剧本自身有效
//   - 剧本引用的工厂存在
func (c *GameConfig) Validate() error {
	if c.Board.Width < 1 || c.Board.Height < 1 || c.Board.Width*c.Board.Height < 2 {
		return fmt.Errorf("board size invalid: %dx%d (need at least 2 tiles)", c.Board.Width, c.Board.Height)
	}
	for i, p := range c.Board.Towers {
		if p.X < 0 || p.X >= c.Board.Width || p.Y < 0 || p.Y >= c.Board.Height {
			return fmt.Errorf("board tower %d at (%d,%d) outside %dx%d board", i, p.X, p.Y, c.Board.Width, c.Board.Height)
		}
		if _, ok := types.TowerTypeFromString(p.Type); !ok {
			return fmt.Errorf("board tower %d: unknown tower type '%s'", i, p.Type)
		}
	}

	if c.Player.StartingHealth < 0 {
		return fmt.Errorf("player startingHealth should be >= 0, got %d", c.Player.StartingHealth)
	}
	if c.Player.PlaySpeed <= 0 {
		return fmt.Errorf("player playSpeed should be > 0, got %.2f", c.Player.PlaySpeed)
	}

	if c.Animation.TransitionSpeed <= 0 {
		return fmt.Errorf("animation transitionSpeed should be > 0, got %.2f", c.Animation.TransitionSpeed)
	}

	if c.Targeting.BufferSize < 1 {
		return fmt.Errorf("targeting bufferSize should be >= 1, got %d", c.Targeting.BufferSize)
	}
	if c.Targeting.TargetPointRadius <= 0 {
		return fmt.Errorf("targeting targetPointRadius should be > 0, got %.2f", c.Targeting.TargetPointRadius)
	}

	if len(c.EnemyFactories) == 0 {
		return fmt.Errorf("no enemy factories configured")
	}
	for name, factory := range c.EnemyFactories {
		if err := factory.Validate(); err != nil {
			return fmt.Errorf("enemy factory '%s': %w", name, err)
		}
	}

	if err := c.Towers.Validate(); err != nil {
		return err
	}

	if err := c.Scenario.Validate(); err != nil {
		return err
	}
	for wi, wave := range c.Scenario.Waves {
		for si, seq := range wave.Sequences {
			if _, ok := c.EnemyFactories[seq.Factory]; !ok {
				return fmt.Errorf("scenario wave %d sequence %d: unknown factory '%s'", wi, si, seq.Factory)
			}
		}
	}

	return nil
}

// FloatRange 浮点数范围，用于随机化敌人属性
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// NewFloatRange 创建范围，min > max 时交换
func NewFloatRange(min, max float64) FloatRange {
	if min > max {
		min, max = max, min
	}
	return FloatRange{Min: min, Max: max}
}

// Fixed 创建一个固定值范围
func Fixed(v float64) FloatRange {
	return FloatRange{Min: v, Max: v}
}

// RandomValueInRange 在 [Min, Max] 范围内取随机值
// rng 为 nil 时使用全局随机源
func (r FloatRange) RandomValueInRange(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	var f float64
	if rng != nil {
		f = rng.Float64()
	} else {
		f = rand.Float64()
	}
	return r.Min + (r.Max-r.Min)*f
}

func (r FloatRange) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s range invalid: min(%.2f) > max(%.2f)", name, r.Min, r.Max)
	}
	return nil
}
