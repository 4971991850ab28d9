package game

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/types"
)

// EnemySpawner 剧本生成敌人的入口
type EnemySpawner interface {
	SpawnEnemy(factory string, enemyType types.EnemyType) error
}

// Scenario 剧本运行状态
//
// 波次内的生成序列依次执行，一个序列用完后剩余时间立即交给下一个序列，
// 波次之间同理。全部波次结束后进入下一轮循环，时间倍率增加 CycleSpeedUp。
type Scenario struct {
	cfg     config.ScenarioConfig
	spawner EnemySpawner
	logger  *log.Logger

	cycle     int
	index     int
	timeScale float64
	wave      waveState
	finished  bool
}

type waveState struct {
	cfg      config.WaveConfig
	index    int
	sequence sequenceState
}

type sequenceState struct {
	cfg      config.SpawnSequenceConfig
	count    int
	cooldown float64
}

// BeginScenario 从第一轮第一个波次开始执行剧本
func BeginScenario(cfg config.ScenarioConfig, spawner EnemySpawner, logger *log.Logger) *Scenario {
	if logger == nil {
		logger = log.Default()
	}
	s := &Scenario{
		cfg:       cfg,
		spawner:   spawner,
		logger:    logger.WithPrefix("scenario"),
		timeScale: 1,
	}
	if len(cfg.Waves) == 0 {
		s.finished = true
		return s
	}
	s.wave = beginWave(cfg.Waves[0])
	return s
}

// Progress 推进剧本
// 返回: 剧本仍在进行时返回 true，所有循环结束后返回 false
func (s *Scenario) Progress(deltaTime float64) bool {
	if s.finished {
		return false
	}
	remaining := s.wave.progress(s, s.timeScale*deltaTime)
	for remaining >= 0 {
		s.index++
		if s.index >= len(s.cfg.Waves) {
			s.cycle++
			if s.cfg.Cycles > 0 && s.cycle >= s.cfg.Cycles {
				s.finished = true
				s.logger.Info("scenario finished", "cycles", s.cycle)
				return false
			}
			s.index = 0
			s.timeScale += s.cfg.CycleSpeedUp
			s.logger.Info("scenario cycle", "cycle", s.cycle, "timeScale", s.timeScale)
		}
		s.wave = beginWave(s.cfg.Waves[s.index])
		s.logger.Debug("wave started", "cycle", s.cycle, "wave", s.index)
		remaining = s.wave.progress(s, remaining)
	}
	return true
}

// Cycle 返回当前循环序号（从 0 开始）
func (s *Scenario) Cycle() int { return s.cycle }

// Wave 返回当前波次序号
func (s *Scenario) Wave() int { return s.index }

// TimeScale 返回当前循环的时间倍率
func (s *Scenario) TimeScale() float64 { return s.timeScale }

// Finished 剧本是否已经结束
func (s *Scenario) Finished() bool { return s.finished }

func (s *Scenario) spawn(seq config.SpawnSequenceConfig) {
	if s.spawner == nil {
		return
	}
	if err := s.spawner.SpawnEnemy(seq.Factory, seq.EnemyType()); err != nil {
		s.logger.Warn("failed to spawn enemy", "factory", seq.Factory, "type", seq.Type, "err", err)
	}
}

func beginWave(cfg config.WaveConfig) waveState {
	return waveState{cfg: cfg, sequence: beginSequence(cfg.Sequences[0])}
}

// progress 返回波次结束后剩余的时间，波次未结束时返回 -1
func (w *waveState) progress(s *Scenario, deltaTime float64) float64 {
	deltaTime = w.sequence.progress(s, deltaTime)
	for deltaTime >= 0 {
		w.index++
		if w.index >= len(w.cfg.Sequences) {
			return deltaTime
		}
		w.sequence = beginSequence(w.cfg.Sequences[w.index])
		deltaTime = w.sequence.progress(s, deltaTime)
	}
	return -1
}

// beginSequence 冷却从满值开始，第一个敌人立即生成
func beginSequence(cfg config.SpawnSequenceConfig) sequenceState {
	return sequenceState{cfg: cfg, cooldown: cfg.Cooldown}
}

// progress 返回序列结束后剩余的时间，序列未结束时返回 -1
func (q *sequenceState) progress(s *Scenario, deltaTime float64) float64 {
	q.cooldown += deltaTime
	for q.cooldown >= q.cfg.Cooldown {
		q.cooldown -= q.cfg.Cooldown
		if q.count >= q.cfg.Amount {
			return q.cooldown
		}
		q.count++
		s.spawn(q.cfg)
	}
	return -1
}
