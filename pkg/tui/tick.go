// Package tui 提供终端观察器
//
// 基于 Bubble Tea：定时消息驱动模拟，键盘光标代替鼠标点击，
// 每帧把 game.Snapshot 栅格化为带样式的字符网格。
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg 触发一次模拟步进
type TickMsg time.Time

// tickCmd 按 tickRate 发送 TickMsg
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
