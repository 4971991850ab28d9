package systems

import (
	"math"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
)

// 敌人动画混合控制
//
// 混合器包含 Move/Intro/Outro/Dying 四个基础片段，以及可选的
// Appear/Disappear 叠加片段。切换片段时当前片段和上一个片段
// 以 TransitionSpeed 线性交叉淡化，完成后上一个片段权重归零并暂停。

// ConfigureAnimator 按动画配置初始化混合器
//
// 参数:
//   - a: 混合器组件
//   - cfg: 片段时长配置，AppearDuration/DisappearDuration 为 0 表示没有叠加片段
//   - transitionSpeed: 过渡速度（每秒），<= 0 时使用默认值
func ConfigureAnimator(a *components.EnemyAnimatorComponent, cfg config.AnimationConfig, transitionSpeed float64) {
	if transitionSpeed <= 0 {
		transitionSpeed = config.DefaultTransitionSpeed
	}
	*a = components.EnemyAnimatorComponent{
		TransitionSpeed:    transitionSpeed,
		TransitionProgress: -1,
		HasAppear:          cfg.HasAppear(),
		HasDisappear:       cfg.HasDisappear(),
	}

	a.Clips[components.ClipMove] = components.ClipPlayable{
		Connected: true, Looping: true, Duration: cfg.MoveDuration, Speed: 1,
	}
	// Intro 创建时处于播放状态，其余片段暂停
	a.Clips[components.ClipIntro] = components.ClipPlayable{
		Connected: true, Duration: cfg.IntroDuration, Speed: 1, Playing: true,
	}
	a.Clips[components.ClipOutro] = components.ClipPlayable{
		Connected: true, Duration: cfg.OutroDuration, Speed: 1,
	}
	a.Clips[components.ClipDying] = components.ClipPlayable{
		Connected: true, Duration: cfg.DyingDuration, Speed: 1,
	}
	if a.HasAppear {
		a.Clips[components.ClipAppear] = components.ClipPlayable{
			Connected: true, Duration: cfg.AppearDuration, Speed: 1,
		}
	}
	if a.HasDisappear {
		a.Clips[components.ClipDisappear] = components.ClipPlayable{
			Connected: true, Duration: cfg.DisappearDuration, Speed: 1,
		}
	}
}

// PlayIntro 立即以满权重播放 Intro，有 Appear 片段时同时播放
func PlayIntro(a *components.EnemyAnimatorComponent) {
	for i := range a.Clips {
		a.Clips[i].Weight = 0
	}
	a.Clips[components.ClipIntro].Weight = 1
	a.Clips[components.ClipIntro].Playing = true
	a.CurrentClip = components.ClipIntro
	a.PreviousClip = components.ClipIntro
	a.Playing = true
	a.TransitionProgress = -1
	if a.HasAppear {
		appear := a.Clip(components.ClipAppear)
		appear.Playing = true
		appear.Weight = 1
	}
}

// PlayMove 以指定播放速度淡入移动动画，并关闭 Appear 叠加
func PlayMove(a *components.EnemyAnimatorComponent, speed float64) {
	a.Clip(components.ClipMove).Speed = speed
	beginTransition(a, components.ClipMove)
	if a.HasAppear {
		appear := a.Clip(components.ClipAppear)
		appear.Weight = 0
		appear.Playing = false
	}
}

// PlayOutro 淡入退场动画
func PlayOutro(a *components.EnemyAnimatorComponent) {
	beginTransition(a, components.ClipOutro)
	if a.HasDisappear {
		playDisappearFor(a, components.ClipOutro)
	}
}

// PlayDying 淡入死亡动画
func PlayDying(a *components.EnemyAnimatorComponent) {
	beginTransition(a, components.ClipDying)
	if a.HasDisappear {
		playDisappearFor(a, components.ClipDying)
	}
}

// StopAnimator 停止整个混合器
func StopAnimator(a *components.EnemyAnimatorComponent) {
	a.Playing = false
}

// IsAnimatorDone 当前片段是否播放完毕（Move 永远返回 false）
func IsAnimatorDone(a *components.EnemyAnimatorComponent) bool {
	return a.Clip(a.CurrentClip).IsDone()
}

// UpdateAnimator 推进过渡进度和片段时间
func UpdateAnimator(a *components.EnemyAnimatorComponent, deltaTime float64) {
	if !a.Playing {
		return
	}

	if a.TransitionProgress >= 0 {
		a.TransitionProgress += deltaTime * a.TransitionSpeed
		current := a.Clip(a.CurrentClip)
		previous := a.Clip(a.PreviousClip)
		if a.TransitionProgress >= 1 {
			a.TransitionProgress = -1
			current.Weight = 1
			previous.Weight = 0
			previous.Playing = false
		} else {
			current.Weight = a.TransitionProgress
			previous.Weight = 1 - a.TransitionProgress
		}
	}

	for i := range a.Clips {
		advanceClip(&a.Clips[i], deltaTime)
	}
}

// beginTransition 开始从当前片段过渡到 next
// 已有过渡进行中时，先把旧的上一个片段归零，保证基础片段权重和为 1
func beginTransition(a *components.EnemyAnimatorComponent, next components.AnimationClip) {
	if next == a.CurrentClip {
		return
	}
	if a.TransitionProgress >= 0 {
		stale := a.Clip(a.PreviousClip)
		stale.Weight = 0
		stale.Playing = false
		a.Clip(a.CurrentClip).Weight = 1
	}
	a.PreviousClip = a.CurrentClip
	a.CurrentClip = next
	a.TransitionProgress = 0
	a.Clip(next).Playing = true
}

// playDisappearFor 让 Disappear 与 other 同时结束
func playDisappearFor(a *components.EnemyAnimatorComponent, other components.AnimationClip) {
	clip := a.Clip(components.ClipDisappear)
	clip.Playing = true
	clip.Delay = math.Max(0, a.Clip(other).Duration-clip.Duration)
	clip.Weight = 1
}

func advanceClip(c *components.ClipPlayable, deltaTime float64) {
	if !c.Connected || !c.Playing {
		return
	}
	remaining := deltaTime
	if c.Delay > 0 {
		if remaining <= c.Delay {
			c.Delay -= remaining
			return
		}
		remaining -= c.Delay
		c.Delay = 0
	}
	c.Time += remaining * c.Speed
	if c.Looping && c.Duration > 0 && c.Time >= c.Duration {
		c.Time = math.Mod(c.Time, c.Duration)
	}
}
