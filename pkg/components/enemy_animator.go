package components

// AnimationClip 敌人动画片段
type AnimationClip int

const (
	ClipMove AnimationClip = iota
	ClipIntro
	ClipOutro
	ClipDying
	ClipAppear
	ClipDisappear

	ClipCount
)

// BaseClipCount 基础片段数量（Move/Intro/Outro/Dying），
// 权重守恒只针对这四个片段
const BaseClipCount = 4

var clipNames = [ClipCount]string{"move", "intro", "outro", "dying", "appear", "disappear"}

// String 返回片段名称
func (c AnimationClip) String() string {
	if c >= 0 && c < ClipCount {
		return clipNames[c]
	}
	return "unknown"
}

// IsOverlay 是否为出现/消失叠加片段
func (c AnimationClip) IsOverlay() bool {
	return c == ClipAppear || c == ClipDisappear
}

// ClipPlayable 单个片段的播放状态
type ClipPlayable struct {
	Connected bool    // 是否配置了该片段
	Looping   bool    // 循环片段永远不会完成
	Duration  float64 // 时长（秒）
	Time      float64 // 已播放时间
	Speed     float64 // 播放速度
	Delay     float64 // 剩余启动延迟
	Playing   bool
	Weight    float64
}

// IsDone 非循环片段是否已播放完毕
func (c *ClipPlayable) IsDone() bool {
	return !c.Looping && c.Time >= c.Duration
}

// EnemyAnimatorComponent 敌人动画混合器
//
// TransitionProgress 为 -1 时没有进行中的过渡；否则当前片段权重为
// TransitionProgress，上一个片段权重为 1 - TransitionProgress。
type EnemyAnimatorComponent struct {
	Clips [ClipCount]ClipPlayable

	CurrentClip  AnimationClip
	PreviousClip AnimationClip

	TransitionProgress float64
	TransitionSpeed    float64

	HasAppear    bool
	HasDisappear bool

	// Playing 整个混合器是否在播放（Stop 后为 false）
	Playing bool
}

// Clip 返回指定片段
func (a *EnemyAnimatorComponent) Clip(c AnimationClip) *ClipPlayable {
	return &a.Clips[c]
}

// InTransition 是否有进行中的过渡
func (a *EnemyAnimatorComponent) InTransition() bool {
	return a.TransitionProgress >= 0
}

// BaseWeightSum 返回四个基础片段的权重之和
func (a *EnemyAnimatorComponent) BaseWeightSum() float64 {
	sum := 0.0
	for i := 0; i < BaseClipCount; i++ {
		sum += a.Clips[i].Weight
	}
	return sum
}
